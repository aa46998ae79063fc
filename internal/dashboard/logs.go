package dashboard

import (
	"context"

	"github.com/you/tutorportal/domain"
	"github.com/you/tutorportal/internal/logger"
	"github.com/you/tutorportal/internal/validation"
)

// Logs is the audit log slice
type Logs struct {
	slice[domain.LogEntry]
	svc      domain.LogService
	validate *validation.Validator
}

func NewLogs(svc domain.LogService, validate *validation.Validator, notifier domain.Notifier, log logger.Logger) *Logs {
	if validate == nil {
		validate = validation.New()
	}
	return &Logs{
		slice:    newSlice("logs", func(e domain.LogEntry) domain.ID { return e.ID }, notifier, log),
		svc:      svc,
		validate: validate,
	}
}

// Load fetches one page; an empty level lists every entry
func (l *Logs) Load(ctx context.Context, level string, q domain.PageQuery) error {
	return l.load(ctx, func(ctx context.Context) (*domain.ListResult[domain.LogEntry], error) {
		return l.svc.List(ctx, level, q)
	})
}

func (l *Logs) Create(ctx context.Context, in domain.LogInput) (*domain.LogEntry, error) {
	if err := l.validate.Struct(in); err != nil {
		return nil, err
	}
	item := domain.LogEntry{ID: pendingID(), Level: in.Level, Message: in.Message, Source: in.Source}
	return l.upsert(ctx, item, "Log entry added", "Failed to add log entry", func(ctx context.Context) (*domain.LogEntry, error) {
		return l.svc.Create(ctx, in)
	})
}

func (l *Logs) Delete(ctx context.Context, id domain.ID) error {
	return l.remove(ctx, id, "Log entry deleted", "Failed to delete log entry", func(ctx context.Context) error {
		return l.svc.Delete(ctx, id)
	})
}

// Clear empties the slice at once and restores it if the backend refuses
func (l *Logs) Clear(ctx context.Context) error {
	prev := l.list.Snapshot()
	l.list.Set(nil, &domain.Pagination{CurrentPage: 1, TotalPages: 1})

	if err := l.svc.Clear(ctx); err != nil {
		l.list.Set(prev.Items, prev.Pagination)
		l.failed("Failed to clear logs", err)
		return err
	}
	l.succeeded("Logs cleared")
	return nil
}
