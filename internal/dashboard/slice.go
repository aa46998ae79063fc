// Package dashboard holds the admin list slices: staff, tutor requests, logs
// and app updates. Each keeps its own items, pagination, loading flag and error,
// and applies mutations optimistically over its service.
package dashboard

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/you/tutorportal/domain"
	"github.com/you/tutorportal/internal/logger"
	"github.com/you/tutorportal/internal/state"
)

// pendingID marks an item shown before the backend assigned its id
func pendingID() domain.ID {
	return domain.ID("pending-" + uuid.NewString())
}

type slice[T any] struct {
	name     string
	key      func(T) domain.ID
	list     *state.List[T]
	notifier domain.Notifier
	log      logger.Logger
}

func newSlice[T any](name string, key func(T) domain.ID, notifier domain.Notifier, log logger.Logger) slice[T] {
	if log == nil {
		log = logger.Discard()
	}
	return slice[T]{name: name, key: key, list: state.NewList(key), notifier: notifier, log: log}
}

// State returns a copy of the slice
func (s *slice[T]) State() state.Snapshot[T] { return s.list.Snapshot() }

func (s *slice[T]) find(id domain.ID) (T, bool) {
	for _, it := range s.list.Snapshot().Items {
		if s.key(it) == id {
			return it, true
		}
	}
	var zero T
	return zero, false
}

func (s *slice[T]) load(ctx context.Context, fetch func(ctx context.Context) (*domain.ListResult[T], error)) error {
	applied, err := s.list.Load(ctx, fetch)
	if err != nil {
		if applied {
			s.failed("Failed to load "+s.name, err)
		}
		return fmt.Errorf("failed to load %s: %w", s.name, err)
	}
	return nil
}

func (s *slice[T]) upsert(ctx context.Context, item T, success, failure string, persist func(ctx context.Context) (*T, error)) (*T, error) {
	saved, err := s.list.Upsert(ctx, item, persist)
	if err != nil {
		s.failed(failure, err)
		return nil, err
	}
	s.succeeded(success)
	return saved, nil
}

// save shows item right away when it is listed on the current page; an unlisted
// item is only sent to the backend so it never appears on the wrong page.
func (s *slice[T]) save(ctx context.Context, listed bool, item T, success, failure string, persist func(ctx context.Context) (*T, error)) (*T, error) {
	if listed {
		return s.upsert(ctx, item, success, failure, persist)
	}
	saved, err := persist(ctx)
	if err != nil {
		s.failed(failure, err)
		return nil, err
	}
	s.succeeded(success)
	return saved, nil
}

func (s *slice[T]) remove(ctx context.Context, id domain.ID, success, failure string, persist func(ctx context.Context) error) error {
	if err := s.list.Remove(ctx, id, persist); err != nil {
		s.failed(failure, err)
		return err
	}
	s.succeeded(success)
	return nil
}

func (s *slice[T]) succeeded(message string) {
	if s.notifier != nil {
		s.notifier.Success(message)
	}
}

func (s *slice[T]) failed(prefix string, err error) {
	s.log.Error(prefix, err, map[string]interface{}{"slice": s.name})
	if s.notifier == nil {
		return
	}
	var apiErr *domain.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		s.notifier.Error(prefix + ": " + apiErr.Message)
		return
	}
	s.notifier.Error(prefix)
}
