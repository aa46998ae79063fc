package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/you/tutorportal/domain"
	"github.com/you/tutorportal/internal/httpclient"
)

// AppUpdateServiceImpl implements domain.AppUpdateService
type AppUpdateServiceImpl struct {
	api API
}

// NewAppUpdateService creates a new app-update service
func NewAppUpdateService(api API) domain.AppUpdateService {
	return &AppUpdateServiceImpl{api: api}
}

// List implements domain.AppUpdateService
func (s *AppUpdateServiceImpl) List(ctx context.Context, q domain.PageQuery) (*domain.ListResult[domain.AppUpdate], error) {
	items, page, err := fetchList[domain.AppUpdate](ctx, s.api, "/app-updates", httpclient.PageValues(q), "updates", "appUpdates")
	if err != nil {
		return nil, fmt.Errorf("failed to load app updates: %w", err)
	}
	return &domain.ListResult[domain.AppUpdate]{Items: items, Pagination: page}, nil
}

// Create implements domain.AppUpdateService
func (s *AppUpdateServiceImpl) Create(ctx context.Context, in domain.AppUpdateInput) (*domain.AppUpdate, error) {
	var raw json.RawMessage
	if err := s.api.Post(ctx, "/app-updates", in, &raw); err != nil {
		return nil, fmt.Errorf("failed to create app update: %w", err)
	}
	return decodeItem[domain.AppUpdate](raw, "update", "appUpdate")
}

// Update implements domain.AppUpdateService
func (s *AppUpdateServiceImpl) Update(ctx context.Context, id domain.ID, in domain.AppUpdateInput) (*domain.AppUpdate, error) {
	var raw json.RawMessage
	if err := s.api.Patch(ctx, httpclient.PathID("/app-updates", id), in, &raw); err != nil {
		return nil, fmt.Errorf("failed to update app update %s: %w", id, err)
	}
	return decodeItem[domain.AppUpdate](raw, "update", "appUpdate")
}

// SetActive implements domain.AppUpdateService
func (s *AppUpdateServiceImpl) SetActive(ctx context.Context, id domain.ID, active bool) (*domain.AppUpdate, error) {
	var raw json.RawMessage
	body := map[string]bool{"isActive": active}
	if err := s.api.Patch(ctx, httpclient.PathID("/app-updates", id, "status"), body, &raw); err != nil {
		return nil, fmt.Errorf("failed to set app update %s status: %w", id, err)
	}
	return decodeItem[domain.AppUpdate](raw, "update", "appUpdate")
}

// Delete implements domain.AppUpdateService
func (s *AppUpdateServiceImpl) Delete(ctx context.Context, id domain.ID) error {
	if err := s.api.Delete(ctx, httpclient.PathID("/app-updates", id), nil); err != nil {
		return fmt.Errorf("failed to delete app update %s: %w", id, err)
	}
	return nil
}
