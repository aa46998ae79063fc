package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestTransport_Counters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewTransport(reg)

	m.ObserveResponse("general", 200)
	m.ObserveResponse("general", 401)
	m.ObserveResponse("general", 401)
	m.ObserveRefresh("student", RefreshFailure)
	m.ObserveReplay("general")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Requests.WithLabelValues("general", "401")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Refreshes.WithLabelValues("student", RefreshFailure)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Replays.WithLabelValues("general")))

	count, err := testutil.GatherAndCount(reg)
	assert.NoError(t, err)
	assert.Equal(t, 4, count)
}

func TestTransport_NilIsNoop(t *testing.T) {
	var m *Transport
	assert.NotPanics(t, func() {
		m.ObserveResponse("general", 500)
		m.ObserveRefresh("general", RefreshSuccess)
		m.ObserveReplay("general")
	})
}
