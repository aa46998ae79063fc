package mocks

import (
	"context"

	"github.com/you/tutorportal/domain"
)

// MockStaffService implements domain.StaffService interface for testing
type MockStaffService struct {
	ListFunc   func(ctx context.Context, premium *bool, q domain.PageQuery) (*domain.ListResult[domain.Staff], error)
	CreateFunc func(ctx context.Context, in domain.StaffInput) (*domain.Staff, error)
	UpdateFunc func(ctx context.Context, id domain.ID, patch domain.StaffPatch) (*domain.Staff, error)
	DeleteFunc func(ctx context.Context, id domain.ID) error
}

// NewMockStaffService creates a new MockStaffService with default behaviors
func NewMockStaffService() *MockStaffService {
	return &MockStaffService{}
}

func (m *MockStaffService) List(ctx context.Context, premium *bool, q domain.PageQuery) (*domain.ListResult[domain.Staff], error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, premium, q)
	}
	return &domain.ListResult[domain.Staff]{}, nil
}

func (m *MockStaffService) Create(ctx context.Context, in domain.StaffInput) (*domain.Staff, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, in)
	}
	// Default behavior: echo the input with a fixed id
	return &domain.Staff{ID: "staff-1", Name: in.Name, Email: in.Email, PhoneNumber: in.PhoneNumber, Subject: in.Subject, IsPremium: in.IsPremium}, nil
}

func (m *MockStaffService) Update(ctx context.Context, id domain.ID, patch domain.StaffPatch) (*domain.Staff, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, patch)
	}
	return nil, nil
}

func (m *MockStaffService) Delete(ctx context.Context, id domain.ID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

// Compile-time interface compliance verification
var _ domain.StaffService = (*MockStaffService)(nil)
