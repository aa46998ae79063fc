package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/you/tutorportal/domain"
	"github.com/you/tutorportal/internal/httpclient"
)

// TutorServiceImpl implements domain.TutorService: the public intake and its admin review
type TutorServiceImpl struct {
	api API
}

// NewTutorService creates a new tutor service
func NewTutorService(api API) domain.TutorService {
	return &TutorServiceImpl{api: api}
}

// List implements domain.TutorService. An empty status lists every request.
func (s *TutorServiceImpl) List(ctx context.Context, status domain.TutorRequestStatus, q domain.PageQuery) (*domain.ListResult[domain.TutorRequest], error) {
	query := httpclient.PageValues(q)
	setIf(query, "status", string(status))
	items, page, err := fetchList[domain.TutorRequest](ctx, s.api, "/tutors", query, "tutors")
	if err != nil {
		return nil, fmt.Errorf("failed to load tutor requests: %w", err)
	}
	return &domain.ListResult[domain.TutorRequest]{Items: items, Pagination: page}, nil
}

// SetStatus implements domain.TutorService
func (s *TutorServiceImpl) SetStatus(ctx context.Context, id domain.ID, status domain.TutorRequestStatus) (*domain.TutorRequest, error) {
	var raw json.RawMessage
	body := map[string]string{"status": string(status)}
	if err := s.api.Patch(ctx, httpclient.PathID("/tutors", id, "status"), body, &raw); err != nil {
		return nil, fmt.Errorf("failed to set tutor %s status: %w", id, err)
	}
	return decodeItem[domain.TutorRequest](raw, "tutor")
}

// Delete implements domain.TutorService
func (s *TutorServiceImpl) Delete(ctx context.Context, id domain.ID) error {
	if err := s.api.Delete(ctx, httpclient.PathID("/tutors", id), nil); err != nil {
		return fmt.Errorf("failed to delete tutor %s: %w", id, err)
	}
	return nil
}

// InitiateEmail implements domain.TutorService
func (s *TutorServiceImpl) InitiateEmail(ctx context.Context, email string) error {
	if err := s.api.Post(ctx, "/tutors/initiate-email", map[string]string{"email": email}, nil); err != nil {
		return fmt.Errorf("failed to start tutor application: %w", err)
	}
	return nil
}

// VerifyOTP implements domain.TutorService
func (s *TutorServiceImpl) VerifyOTP(ctx context.Context, email, otp string) error {
	if err := s.api.Post(ctx, "/tutors/verify-otp", map[string]string{"email": email, "otp": otp}, nil); err != nil {
		return fmt.Errorf("failed to verify tutor email: %w", err)
	}
	return nil
}

// Complete implements domain.TutorService
func (s *TutorServiceImpl) Complete(ctx context.Context, app domain.TutorApplication) (*domain.TutorRequest, error) {
	fields := map[string]string{
		"email":       app.Email,
		"name":        app.Name,
		"phoneNumber": app.PhoneNumber,
		"subjects":    strings.Join(app.Subjects, ","),
		"experience":  app.Experience,
	}
	var files []domain.FileUpload
	if app.Resume != nil {
		resume := *app.Resume
		resume.FieldName = "resume"
		files = append(files, resume)
	}

	var raw json.RawMessage
	if err := s.api.Multipart(ctx, http.MethodPost, "/tutors/complete", fields, files, &raw); err != nil {
		return nil, fmt.Errorf("failed to submit tutor application: %w", err)
	}
	return decodeItem[domain.TutorRequest](raw, "tutor")
}
