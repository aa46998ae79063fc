package mocks

import (
	"sync"

	"github.com/you/tutorportal/domain"
)

// MockNotifier implements domain.Notifier interface for testing
type MockNotifier struct {
	mu        sync.Mutex
	Successes []string
	Errors    []string
}

// NewMockNotifier creates a new MockNotifier
func NewMockNotifier() *MockNotifier {
	return &MockNotifier{}
}

// Success records a success message
func (m *MockNotifier) Success(message string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Successes = append(m.Successes, message)
}

// Error records an error message
func (m *MockNotifier) Error(message string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Errors = append(m.Errors, message)
}

// Compile-time interface compliance verification
var _ domain.Notifier = (*MockNotifier)(nil)
