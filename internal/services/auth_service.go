package services

import (
	"context"
	"fmt"

	"github.com/you/tutorportal/domain"
)

// AuthServiceImpl implements domain.AuthService for admin and executive logins
type AuthServiceImpl struct {
	api   API
	store domain.SessionStore
}

// NewAuthService creates a new auth service
func NewAuthService(api API, store domain.SessionStore) domain.AuthService {
	return &AuthServiceImpl{api: api, store: store}
}

// SendAdminOTP implements domain.AuthService
func (s *AuthServiceImpl) SendAdminOTP(ctx context.Context, email string) error {
	if err := s.api.Post(ctx, "/send-otp", map[string]string{"email": email}, nil); err != nil {
		return fmt.Errorf("failed to send OTP: %w", err)
	}
	return nil
}

// VerifyAdminOTP implements domain.AuthService
func (s *AuthServiceImpl) VerifyAdminOTP(ctx context.Context, email, otp string) (*domain.AuthResult, error) {
	var payload authPayload
	if err := s.api.Post(ctx, "/verify-otp", map[string]string{"email": email, "otp": otp}, &payload); err != nil {
		return nil, fmt.Errorf("failed to verify OTP: %w", err)
	}
	return payload.result(domain.RoleAdmin)
}

// ExecutiveLogin implements domain.AuthService
func (s *AuthServiceImpl) ExecutiveLogin(ctx context.Context, username, password string) (*domain.AuthResult, error) {
	var payload authPayload
	body := map[string]string{"username": username, "password": password}
	if err := s.api.Post(ctx, "/executive/login", body, &payload); err != nil {
		return nil, fmt.Errorf("executive login failed: %w", err)
	}
	return payload.result(domain.RoleExecutive)
}

// Logout implements domain.AuthService. The local session is cleared even when the backend call fails.
func (s *AuthServiceImpl) Logout(ctx context.Context) error {
	err := s.api.Post(ctx, "/auth/logout", nil, nil)
	s.store.Logout()
	if err != nil {
		return fmt.Errorf("logout failed: %w", err)
	}
	return nil
}
