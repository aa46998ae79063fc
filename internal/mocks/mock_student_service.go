package mocks

import (
	"context"

	"github.com/you/tutorportal/domain"
)

// MockStudentService implements domain.StudentService interface for testing
type MockStudentService struct {
	SendOTPFunc       func(ctx context.Context, email string) error
	LoginFunc         func(ctx context.Context, email, otp string) (*domain.AuthResult, error)
	RegisterFunc      func(ctx context.Context, reg domain.StudentRegistration) error
	ProfileFunc       func(ctx context.Context) (*domain.StudentProfile, error)
	UpdateProfileFunc func(ctx context.Context, profile domain.StudentProfile) (*domain.StudentProfile, error)
	BookingsFunc      func(ctx context.Context, q domain.PageQuery) (*domain.ListResult[domain.Booking], error)
	CancelBookingFunc func(ctx context.Context, id domain.ID) error
}

// NewMockStudentService creates a new MockStudentService with default behaviors
func NewMockStudentService() *MockStudentService {
	return &MockStudentService{}
}

func (m *MockStudentService) SendOTP(ctx context.Context, email string) error {
	if m.SendOTPFunc != nil {
		return m.SendOTPFunc(ctx, email)
	}
	return nil
}

func (m *MockStudentService) Login(ctx context.Context, email, otp string) (*domain.AuthResult, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, email, otp)
	}
	// Default behavior: student token
	return &domain.AuthResult{Token: "mock_student_token", Role: domain.RoleStudent}, nil
}

func (m *MockStudentService) Register(ctx context.Context, reg domain.StudentRegistration) error {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, reg)
	}
	return nil
}

func (m *MockStudentService) Profile(ctx context.Context) (*domain.StudentProfile, error) {
	if m.ProfileFunc != nil {
		return m.ProfileFunc(ctx)
	}
	return &domain.StudentProfile{}, nil
}

func (m *MockStudentService) UpdateProfile(ctx context.Context, profile domain.StudentProfile) (*domain.StudentProfile, error) {
	if m.UpdateProfileFunc != nil {
		return m.UpdateProfileFunc(ctx, profile)
	}
	return &profile, nil
}

func (m *MockStudentService) Bookings(ctx context.Context, q domain.PageQuery) (*domain.ListResult[domain.Booking], error) {
	if m.BookingsFunc != nil {
		return m.BookingsFunc(ctx, q)
	}
	return &domain.ListResult[domain.Booking]{}, nil
}

func (m *MockStudentService) CancelBooking(ctx context.Context, id domain.ID) error {
	if m.CancelBookingFunc != nil {
		return m.CancelBookingFunc(ctx, id)
	}
	return nil
}

// Compile-time interface compliance verification
var _ domain.StudentService = (*MockStudentService)(nil)
