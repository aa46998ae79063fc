package domain

import "time"

// SessionEventType defines the kind of session change
type SessionEventType string

const (
	SessionLoginEvent         SessionEventType = "SESSION_LOGIN"
	SessionLogoutEvent        SessionEventType = "SESSION_LOGOUT"
	SessionProfileEvent       SessionEventType = "SESSION_PROFILE_SET"
	SessionRefreshedEvent     SessionEventType = "SESSION_REFRESHED"
	SessionRefreshFailedEvent SessionEventType = "SESSION_REFRESH_FAILED"
)

// SessionEvent describes a change of the session state
type SessionEvent struct {
	Type      SessionEventType
	Role      Role
	Timestamp time.Time
	// Client names the transport that triggered a refresh event
	Client   string
	ErrorMsg string
}

// SessionObserver is notified after every session mutation
type SessionObserver interface {
	OnSessionEvent(event SessionEvent)
}

// SessionObserverFunc adapts a function to SessionObserver
type SessionObserverFunc func(event SessionEvent)

func (f SessionObserverFunc) OnSessionEvent(event SessionEvent) { f(event) }

// NewSessionEvent creates an event stamped with the current time
func NewSessionEvent(eventType SessionEventType, role Role) SessionEvent {
	return SessionEvent{
		Type:      eventType,
		Role:      role,
		Timestamp: time.Now().UTC(),
	}
}

// WithError records a failure on the event
func (e SessionEvent) WithError(err error) SessionEvent {
	if err != nil {
		e.ErrorMsg = err.Error()
	}
	return e
}

// WithClient records which transport produced the event
func (e SessionEvent) WithClient(client string) SessionEvent {
	e.Client = client
	return e
}
