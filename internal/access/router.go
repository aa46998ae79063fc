package access

import (
	"errors"
	"sync"

	"github.com/you/tutorportal/domain"
	"github.com/you/tutorportal/internal/logger"
)

// Router holds the current page. It is the redirect target of the request
// transport and consults the guard on every navigation.
type Router struct {
	guard *Guard
	log   logger.Logger

	mu       sync.Mutex
	current  string
	history  []string
	onChange func(route string)
}

func NewRouter(guard *Guard, log logger.Logger) *Router {
	if log == nil {
		log = logger.Discard()
	}
	return &Router{guard: guard, log: log, current: "/"}
}

// OnChange registers a callback fired after every route change
func (r *Router) OnChange(fn func(route string)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.onChange = fn
}

// Redirect performs a hard navigation without a permission check
func (r *Router) Redirect(route string) {
	r.mu.Lock()
	r.current = route
	r.history = append(r.history, route)
	fn := r.onChange
	r.mu.Unlock()

	r.log.Debug("redirect", map[string]interface{}{"route": route})
	if fn != nil {
		fn(route)
	}
}

// Navigate opens path for action. Anonymous visitors are sent to the matching
// login page; forbidden navigation leaves the current page in place.
func (r *Router) Navigate(path, action string) error {
	redirect, err := r.guard.Check(path, action)
	switch {
	case err == nil:
		r.Redirect(path)
		return nil
	case errors.Is(err, domain.ErrNotAuthenticated):
		r.Redirect(redirect)
		return err
	default:
		r.log.Warn("navigation denied", err, map[string]interface{}{"path": path})
		return err
	}
}

func (r *Router) Current() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}

// History lists every route entered, oldest first
func (r *Router) History() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.history...)
}

// Compile-time interface compliance verification
var _ domain.Redirector = (*Router)(nil)
