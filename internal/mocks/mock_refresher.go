package mocks

import (
	"context"

	"github.com/you/tutorportal/domain"
)

// MockRefresher implements domain.Refresher interface for testing
type MockRefresher struct {
	RefreshByRoleFunc  func(ctx context.Context) (*domain.AuthResult, error)
	RefreshStudentFunc func(ctx context.Context) (*domain.AuthResult, error)
}

// NewMockRefresher creates a new MockRefresher with default behaviors
func NewMockRefresher() *MockRefresher {
	return &MockRefresher{}
}

// RefreshByRole refreshes using the endpoint of the current role
func (m *MockRefresher) RefreshByRole(ctx context.Context) (*domain.AuthResult, error) {
	if m.RefreshByRoleFunc != nil {
		return m.RefreshByRoleFunc(ctx)
	}
	// Default behavior: refresh rejected
	return nil, domain.ErrRefreshFailed
}

// RefreshStudent refreshes using the student endpoint
func (m *MockRefresher) RefreshStudent(ctx context.Context) (*domain.AuthResult, error) {
	if m.RefreshStudentFunc != nil {
		return m.RefreshStudentFunc(ctx)
	}
	// Default behavior: refresh rejected
	return nil, domain.ErrRefreshFailed
}

// Compile-time interface compliance verification
var _ domain.Refresher = (*MockRefresher)(nil)
