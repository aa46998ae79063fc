package mocks

import (
	"context"

	"github.com/you/tutorportal/domain"
)

// MockTutorService implements domain.TutorService interface for testing
type MockTutorService struct {
	ListFunc          func(ctx context.Context, status domain.TutorRequestStatus, q domain.PageQuery) (*domain.ListResult[domain.TutorRequest], error)
	SetStatusFunc     func(ctx context.Context, id domain.ID, status domain.TutorRequestStatus) (*domain.TutorRequest, error)
	DeleteFunc        func(ctx context.Context, id domain.ID) error
	InitiateEmailFunc func(ctx context.Context, email string) error
	VerifyOTPFunc     func(ctx context.Context, email, otp string) error
	CompleteFunc      func(ctx context.Context, app domain.TutorApplication) (*domain.TutorRequest, error)
}

// NewMockTutorService creates a new MockTutorService with default behaviors
func NewMockTutorService() *MockTutorService {
	return &MockTutorService{}
}

func (m *MockTutorService) List(ctx context.Context, status domain.TutorRequestStatus, q domain.PageQuery) (*domain.ListResult[domain.TutorRequest], error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, status, q)
	}
	return &domain.ListResult[domain.TutorRequest]{}, nil
}

func (m *MockTutorService) SetStatus(ctx context.Context, id domain.ID, status domain.TutorRequestStatus) (*domain.TutorRequest, error) {
	if m.SetStatusFunc != nil {
		return m.SetStatusFunc(ctx, id, status)
	}
	return nil, nil
}

func (m *MockTutorService) Delete(ctx context.Context, id domain.ID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *MockTutorService) InitiateEmail(ctx context.Context, email string) error {
	if m.InitiateEmailFunc != nil {
		return m.InitiateEmailFunc(ctx, email)
	}
	return nil
}

func (m *MockTutorService) VerifyOTP(ctx context.Context, email, otp string) error {
	if m.VerifyOTPFunc != nil {
		return m.VerifyOTPFunc(ctx, email, otp)
	}
	return nil
}

func (m *MockTutorService) Complete(ctx context.Context, app domain.TutorApplication) (*domain.TutorRequest, error) {
	if m.CompleteFunc != nil {
		return m.CompleteFunc(ctx, app)
	}
	return &domain.TutorRequest{ID: "tutor-1", Name: app.Name, Email: app.Email, Status: domain.TutorPending}, nil
}

// Compile-time interface compliance verification
var _ domain.TutorService = (*MockTutorService)(nil)
