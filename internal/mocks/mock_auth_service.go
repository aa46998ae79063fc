package mocks

import (
	"context"

	"github.com/you/tutorportal/domain"
)

// MockAuthService implements domain.AuthService interface for testing
type MockAuthService struct {
	SendAdminOTPFunc   func(ctx context.Context, email string) error
	VerifyAdminOTPFunc func(ctx context.Context, email, otp string) (*domain.AuthResult, error)
	ExecutiveLoginFunc func(ctx context.Context, username, password string) (*domain.AuthResult, error)
	LogoutFunc         func(ctx context.Context) error
}

// NewMockAuthService creates a new MockAuthService with default behaviors
func NewMockAuthService() *MockAuthService {
	return &MockAuthService{}
}

// SendAdminOTP sends an admin OTP
func (m *MockAuthService) SendAdminOTP(ctx context.Context, email string) error {
	if m.SendAdminOTPFunc != nil {
		return m.SendAdminOTPFunc(ctx, email)
	}
	// Default behavior: success
	return nil
}

// VerifyAdminOTP verifies an admin OTP
func (m *MockAuthService) VerifyAdminOTP(ctx context.Context, email, otp string) (*domain.AuthResult, error) {
	if m.VerifyAdminOTPFunc != nil {
		return m.VerifyAdminOTPFunc(ctx, email, otp)
	}
	// Default behavior: admin token
	return &domain.AuthResult{Token: "mock_admin_token", Role: domain.RoleAdmin}, nil
}

// ExecutiveLogin logs an executive in with a password
func (m *MockAuthService) ExecutiveLogin(ctx context.Context, username, password string) (*domain.AuthResult, error) {
	if m.ExecutiveLoginFunc != nil {
		return m.ExecutiveLoginFunc(ctx, username, password)
	}
	// Default behavior: executive token
	return &domain.AuthResult{Token: "mock_executive_token", Role: domain.RoleExecutive}, nil
}

// Logout ends the backend session
func (m *MockAuthService) Logout(ctx context.Context) error {
	if m.LogoutFunc != nil {
		return m.LogoutFunc(ctx)
	}
	return nil
}

// Compile-time interface compliance verification
var _ domain.AuthService = (*MockAuthService)(nil)
