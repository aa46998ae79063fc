package mocks

import (
	"context"

	"github.com/you/tutorportal/domain"
)

// MockAppUpdateService implements domain.AppUpdateService interface for testing
type MockAppUpdateService struct {
	ListFunc      func(ctx context.Context, q domain.PageQuery) (*domain.ListResult[domain.AppUpdate], error)
	CreateFunc    func(ctx context.Context, in domain.AppUpdateInput) (*domain.AppUpdate, error)
	UpdateFunc    func(ctx context.Context, id domain.ID, in domain.AppUpdateInput) (*domain.AppUpdate, error)
	SetActiveFunc func(ctx context.Context, id domain.ID, active bool) (*domain.AppUpdate, error)
	DeleteFunc    func(ctx context.Context, id domain.ID) error
}

// NewMockAppUpdateService creates a new MockAppUpdateService with default behaviors
func NewMockAppUpdateService() *MockAppUpdateService {
	return &MockAppUpdateService{}
}

func (m *MockAppUpdateService) List(ctx context.Context, q domain.PageQuery) (*domain.ListResult[domain.AppUpdate], error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, q)
	}
	return &domain.ListResult[domain.AppUpdate]{}, nil
}

func (m *MockAppUpdateService) Create(ctx context.Context, in domain.AppUpdateInput) (*domain.AppUpdate, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, in)
	}
	return &domain.AppUpdate{ID: "update-1", Version: in.Version, Platform: in.Platform, Notes: in.Notes}, nil
}

func (m *MockAppUpdateService) Update(ctx context.Context, id domain.ID, in domain.AppUpdateInput) (*domain.AppUpdate, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, in)
	}
	return nil, nil
}

func (m *MockAppUpdateService) SetActive(ctx context.Context, id domain.ID, active bool) (*domain.AppUpdate, error) {
	if m.SetActiveFunc != nil {
		return m.SetActiveFunc(ctx, id, active)
	}
	return nil, nil
}

func (m *MockAppUpdateService) Delete(ctx context.Context, id domain.ID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

// Compile-time interface compliance verification
var _ domain.AppUpdateService = (*MockAppUpdateService)(nil)
