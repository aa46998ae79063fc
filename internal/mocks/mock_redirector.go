package mocks

import (
	"sync"

	"github.com/you/tutorportal/domain"
)

// MockRedirector implements domain.Redirector and records every route
type MockRedirector struct {
	RedirectFunc func(route string)

	mu     sync.Mutex
	routes []string
}

// NewMockRedirector creates a new MockRedirector
func NewMockRedirector() *MockRedirector {
	return &MockRedirector{}
}

// Redirect records the route
func (m *MockRedirector) Redirect(route string) {
	m.mu.Lock()
	m.routes = append(m.routes, route)
	m.mu.Unlock()
	if m.RedirectFunc != nil {
		m.RedirectFunc(route)
	}
}

// Routes returns the recorded routes in call order
func (m *MockRedirector) Routes() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.routes...)
}

// Compile-time interface compliance verification
var _ domain.Redirector = (*MockRedirector)(nil)
