package mocks

import (
	"context"

	"github.com/you/tutorportal/domain"
)

// MockLogService implements domain.LogService interface for testing
type MockLogService struct {
	ListFunc   func(ctx context.Context, level string, q domain.PageQuery) (*domain.ListResult[domain.LogEntry], error)
	CreateFunc func(ctx context.Context, in domain.LogInput) (*domain.LogEntry, error)
	DeleteFunc func(ctx context.Context, id domain.ID) error
	ClearFunc  func(ctx context.Context) error
}

// NewMockLogService creates a new MockLogService with default behaviors
func NewMockLogService() *MockLogService {
	return &MockLogService{}
}

func (m *MockLogService) List(ctx context.Context, level string, q domain.PageQuery) (*domain.ListResult[domain.LogEntry], error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, level, q)
	}
	return &domain.ListResult[domain.LogEntry]{}, nil
}

func (m *MockLogService) Create(ctx context.Context, in domain.LogInput) (*domain.LogEntry, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, in)
	}
	return &domain.LogEntry{ID: "log-1", Level: in.Level, Message: in.Message, Source: in.Source}, nil
}

func (m *MockLogService) Delete(ctx context.Context, id domain.ID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *MockLogService) Clear(ctx context.Context) error {
	if m.ClearFunc != nil {
		return m.ClearFunc(ctx)
	}
	return nil
}

// Compile-time interface compliance verification
var _ domain.LogService = (*MockLogService)(nil)
