package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/you/tutorportal/domain"
	"github.com/you/tutorportal/internal/httpclient"
)

// StudentServiceImpl implements domain.StudentService over the student-scoped client
type StudentServiceImpl struct {
	api   API
	store domain.SessionStore
}

// NewStudentService creates a new student service
func NewStudentService(api API, store domain.SessionStore) domain.StudentService {
	return &StudentServiceImpl{api: api, store: store}
}

// SendOTP implements domain.StudentService. An unregistered email comes back as an
// *domain.APIError for which domain.IsUnregistered is true.
func (s *StudentServiceImpl) SendOTP(ctx context.Context, email string) error {
	if err := s.api.Post(ctx, "/students/send-otp", map[string]string{"emailId": email}, nil); err != nil {
		return fmt.Errorf("failed to send OTP: %w", err)
	}
	return nil
}

// Login implements domain.StudentService
func (s *StudentServiceImpl) Login(ctx context.Context, email, otp string) (*domain.AuthResult, error) {
	var payload authPayload
	if err := s.api.Post(ctx, "/students/login", map[string]string{"emailId": email, "otp": otp}, &payload); err != nil {
		return nil, fmt.Errorf("student login failed: %w", err)
	}
	return payload.result(domain.RoleStudent)
}

// Register implements domain.StudentService
func (s *StudentServiceImpl) Register(ctx context.Context, reg domain.StudentRegistration) error {
	if err := s.api.Post(ctx, "/students", reg, nil); err != nil {
		return fmt.Errorf("student registration failed: %w", err)
	}
	return nil
}

// Profile implements domain.StudentService and caches the result in the session
func (s *StudentServiceImpl) Profile(ctx context.Context) (*domain.StudentProfile, error) {
	var raw json.RawMessage
	if err := s.api.Get(ctx, "/students/profile", nil, &raw); err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	profile, err := decodeItem[domain.StudentProfile](raw, "student", "profile")
	if err != nil {
		return nil, err
	}
	if profile != nil {
		s.store.SetStudentProfile(profile)
	}
	return profile, nil
}

// UpdateProfile implements domain.StudentService
func (s *StudentServiceImpl) UpdateProfile(ctx context.Context, profile domain.StudentProfile) (*domain.StudentProfile, error) {
	var raw json.RawMessage
	if err := s.api.Put(ctx, "/students/profile", profile, &raw); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	updated, err := decodeItem[domain.StudentProfile](raw, "student", "profile")
	if err != nil {
		return nil, err
	}
	if updated == nil || updated.EmailID == "" {
		updated = &profile
	}
	s.store.SetStudentProfile(updated)
	return updated, nil
}

// Bookings implements domain.StudentService
func (s *StudentServiceImpl) Bookings(ctx context.Context, q domain.PageQuery) (*domain.ListResult[domain.Booking], error) {
	items, page, err := fetchList[domain.Booking](ctx, s.api, "/students/bookings", httpclient.PageValues(q), "bookings")
	if err != nil {
		return nil, fmt.Errorf("failed to load bookings: %w", err)
	}
	return &domain.ListResult[domain.Booking]{Items: items, Pagination: page}, nil
}

// CancelBooking implements domain.StudentService
func (s *StudentServiceImpl) CancelBooking(ctx context.Context, id domain.ID) error {
	if err := s.api.Delete(ctx, httpclient.PathID("/students/bookings", id), nil); err != nil {
		return fmt.Errorf("failed to cancel booking %s: %w", id, err)
	}
	return nil
}
