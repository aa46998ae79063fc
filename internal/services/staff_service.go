package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/you/tutorportal/domain"
	"github.com/you/tutorportal/internal/httpclient"
)

// StaffServiceImpl implements domain.StaffService
type StaffServiceImpl struct {
	api API
}

// NewStaffService creates a new staff service
func NewStaffService(api API) domain.StaffService {
	return &StaffServiceImpl{api: api}
}

// List implements domain.StaffService. A nil premium lists everyone.
func (s *StaffServiceImpl) List(ctx context.Context, premium *bool, q domain.PageQuery) (*domain.ListResult[domain.Staff], error) {
	query := httpclient.PageValues(q)
	if premium != nil {
		query.Set("isPremium", strconv.FormatBool(*premium))
	}
	items, page, err := fetchList[domain.Staff](ctx, s.api, "/staffs", query, "staffs", "staff")
	if err != nil {
		return nil, fmt.Errorf("failed to load staff: %w", err)
	}
	return &domain.ListResult[domain.Staff]{Items: items, Pagination: page}, nil
}

// Create implements domain.StaffService
func (s *StaffServiceImpl) Create(ctx context.Context, in domain.StaffInput) (*domain.Staff, error) {
	fields := map[string]string{
		"name":        in.Name,
		"email":       in.Email,
		"phoneNumber": in.PhoneNumber,
		"subject":     in.Subject,
		"isPremium":   strconv.FormatBool(in.IsPremium),
	}
	var files []domain.FileUpload
	if in.Photo != nil {
		photo := *in.Photo
		photo.FieldName = "photo"
		files = append(files, photo)
	}

	var raw json.RawMessage
	if err := s.api.Multipart(ctx, http.MethodPost, "/staffs/create", fields, files, &raw); err != nil {
		return nil, fmt.Errorf("failed to create staff: %w", err)
	}
	return decodeItem[domain.Staff](raw, "staff")
}

// Update implements domain.StaffService
func (s *StaffServiceImpl) Update(ctx context.Context, id domain.ID, patch domain.StaffPatch) (*domain.Staff, error) {
	var raw json.RawMessage
	if err := s.api.Patch(ctx, httpclient.PathID("/staffs", id), patch, &raw); err != nil {
		return nil, fmt.Errorf("failed to update staff %s: %w", id, err)
	}
	return decodeItem[domain.Staff](raw, "staff")
}

// Delete implements domain.StaffService
func (s *StaffServiceImpl) Delete(ctx context.Context, id domain.ID) error {
	if err := s.api.Delete(ctx, httpclient.PathID("/staffs", id), nil); err != nil {
		return fmt.Errorf("failed to delete staff %s: %w", id, err)
	}
	return nil
}
