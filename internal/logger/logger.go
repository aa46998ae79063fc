package logger

import (
	"io"
	"log"
	"sync/atomic"
)

// Logger is the logging surface used across the client.
// args may carry errors, maps of fields, or a *domain.StudentProfile.
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
}

// Std writes through a standard library logger
type Std struct {
	std   *log.Logger
	debug atomic.Bool
}

var _ Logger = (*Std)(nil)

// NewStd wraps std. Debug lines are dropped unless debug is set.
func NewStd(std *log.Logger, debug bool) *Std {
	l := &Std{std: std}
	l.debug.Store(debug)
	return l
}

// New builds a Std logger writing to w with the given prefix
func New(w io.Writer, prefix string, debug bool) *Std {
	return NewStd(log.New(w, prefix, log.LstdFlags|log.Lmsgprefix), debug)
}

// Discard returns a logger that writes nowhere
func Discard() *Std {
	return NewStd(log.New(io.Discard, "", 0), false)
}

func (l *Std) SetDebug(enabled bool) { l.debug.Store(enabled) }

func (l *Std) print(level, msg string, args []interface{}) {
	l.std.Println(level + " " + msg)
	for _, arg := range args {
		l.std.Printf("%+v\n", arg)
	}
}

func (l *Std) Debug(msg string, args ...interface{}) {
	if l.debug.Load() {
		l.print("DEBUG", msg, args)
	}
}

func (l *Std) Info(msg string, args ...interface{})  { l.print("INFO", msg, args) }
func (l *Std) Warn(msg string, args ...interface{})  { l.print("WARN", msg, args) }
func (l *Std) Error(msg string, args ...interface{}) { l.print("ERROR", msg, args) }
