package logger

import (
	"fmt"

	"github.com/rollbar/rollbar-go"

	"github.com/you/tutorportal/domain"
)

// RollbarConfig configures the rollbar notifier
type RollbarConfig struct {
	Token       string
	Environment string
	CodeVersion string
}

// Rollbar reports to rollbar and mirrors every line to a Std logger
type Rollbar struct {
	std *Std
}

var _ Logger = (*Rollbar)(nil)

func NewRollbar(std *Std, conf RollbarConfig) *Rollbar {
	rollbar.SetToken(conf.Token)
	rollbar.SetEnvironment(conf.Environment)
	if conf.CodeVersion != "" {
		rollbar.SetCodeVersion(conf.CodeVersion)
	}
	rollbar.SetEnabled(conf.Token != "")
	return &Rollbar{std: std}
}

// Close flushes queued reports
func (l *Rollbar) Close() {
	rollbar.Close()
}

// prepare shapes args the way rollbar reads them: msg stays the only string,
// errors pass through, field maps merge into one extras map and any other value
// is listed under "args". A student profile becomes the rollbar person.
func (l *Rollbar) prepare(msg string, args []interface{}) []interface{} {
	var personSet bool
	out := []interface{}{msg}
	extras := map[string]interface{}{}
	var loose []string
	for _, arg := range args {
		switch v := arg.(type) {
		case nil:
		case *domain.StudentProfile:
			if v != nil && !personSet {
				rollbar.SetPerson(v.UserID.String(), v.StudentName, v.EmailID)
				personSet = true
			}
		case error:
			out = append(out, v)
		case map[string]interface{}:
			for k, val := range v {
				extras[k] = val
			}
		default:
			loose = append(loose, fmt.Sprint(v))
		}
	}
	if !personSet {
		rollbar.ClearPerson()
	}
	if len(loose) > 0 {
		extras["args"] = loose
	}
	if len(extras) > 0 {
		out = append(out, extras)
	}
	return out
}

func (l *Rollbar) Debug(msg string, args ...interface{}) {
	rollbar.Debug(l.prepare(msg, args)...)
	l.std.Debug(msg, args...)
}

func (l *Rollbar) Info(msg string, args ...interface{}) {
	rollbar.Info(l.prepare(msg, args)...)
	l.std.Info(msg, args...)
}

func (l *Rollbar) Warn(msg string, args ...interface{}) {
	rollbar.Warning(l.prepare(msg, args)...)
	l.std.Warn(msg, args...)
}

func (l *Rollbar) Error(msg string, args ...interface{}) {
	rollbar.Error(l.prepare(msg, args)...)
	l.std.Error(msg, args...)
}
