package logger

import (
	"sync"

	"github.com/you/tutorportal/domain"
)

// Notification is one toast-style message
type Notification struct {
	Success bool
	Message string
}

// Notifier records action outcomes and logs them. UI shells drain it with Drain.
type Notifier struct {
	log Logger

	mu      sync.Mutex
	pending []Notification
}

var _ domain.Notifier = (*Notifier)(nil)

func NewNotifier(log Logger) *Notifier {
	return &Notifier{log: log}
}

func (n *Notifier) Success(message string) {
	n.log.Info(message)
	n.push(Notification{Success: true, Message: message})
}

func (n *Notifier) Error(message string) {
	n.log.Warn(message)
	n.push(Notification{Message: message})
}

func (n *Notifier) push(item Notification) {
	n.mu.Lock()
	n.pending = append(n.pending, item)
	n.mu.Unlock()
}

// Drain returns and clears the pending notifications
func (n *Notifier) Drain() []Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := n.pending
	n.pending = nil
	return out
}
