package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// Refresh outcomes
const (
	RefreshSuccess = "success"
	RefreshFailure = "failure"
)

// Transport holds the collectors updated by the authenticated transports
type Transport struct {
	Requests  *prometheus.CounterVec
	Refreshes *prometheus.CounterVec
	Replays   *prometheus.CounterVec
}

// NewTransport creates the collectors and registers them on reg when reg is not nil
func NewTransport(reg prometheus.Registerer) *Transport {
	t := &Transport{
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tutorportal",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Backend responses by client and status code.",
		}, []string{"client", "code"}),
		Refreshes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tutorportal",
			Subsystem: "session",
			Name:      "refreshes_total",
			Help:      "Silent token refresh attempts by client and outcome.",
		}, []string{"client", "outcome"}),
		Replays: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tutorportal",
			Subsystem: "http",
			Name:      "replays_total",
			Help:      "Requests replayed after a successful refresh.",
		}, []string{"client"}),
	}
	if reg != nil {
		reg.MustRegister(t.Requests, t.Refreshes, t.Replays)
	}
	return t
}

func (t *Transport) ObserveResponse(client string, code int) {
	if t == nil {
		return
	}
	t.Requests.WithLabelValues(client, strconv.Itoa(code)).Inc()
}

func (t *Transport) ObserveRefresh(client, outcome string) {
	if t == nil {
		return
	}
	t.Refreshes.WithLabelValues(client, outcome).Inc()
}

func (t *Transport) ObserveReplay(client string) {
	if t == nil {
		return
	}
	t.Replays.WithLabelValues(client).Inc()
}
