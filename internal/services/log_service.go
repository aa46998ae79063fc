package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/you/tutorportal/domain"
	"github.com/you/tutorportal/internal/httpclient"
)

// LogServiceImpl implements domain.LogService
type LogServiceImpl struct {
	api API
}

// NewLogService creates a new audit log service
func NewLogService(api API) domain.LogService {
	return &LogServiceImpl{api: api}
}

// List implements domain.LogService
func (s *LogServiceImpl) List(ctx context.Context, level string, q domain.PageQuery) (*domain.ListResult[domain.LogEntry], error) {
	query := httpclient.PageValues(q)
	setIf(query, "level", level)
	items, page, err := fetchList[domain.LogEntry](ctx, s.api, "/logs", query, "logs")
	if err != nil {
		return nil, fmt.Errorf("failed to load logs: %w", err)
	}
	return &domain.ListResult[domain.LogEntry]{Items: items, Pagination: page}, nil
}

// Create implements domain.LogService
func (s *LogServiceImpl) Create(ctx context.Context, in domain.LogInput) (*domain.LogEntry, error) {
	var raw json.RawMessage
	if err := s.api.Post(ctx, "/logs", in, &raw); err != nil {
		return nil, fmt.Errorf("failed to create log: %w", err)
	}
	return decodeItem[domain.LogEntry](raw, "log")
}

// Delete implements domain.LogService
func (s *LogServiceImpl) Delete(ctx context.Context, id domain.ID) error {
	if err := s.api.Delete(ctx, httpclient.PathID("/logs", id), nil); err != nil {
		return fmt.Errorf("failed to delete log %s: %w", id, err)
	}
	return nil
}

// Clear implements domain.LogService
func (s *LogServiceImpl) Clear(ctx context.Context) error {
	if err := s.api.Delete(ctx, "/logs/clear", nil); err != nil {
		return fmt.Errorf("failed to clear logs: %w", err)
	}
	return nil
}
