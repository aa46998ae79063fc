// Package state holds the per-slice list state the UI renders from: items,
// pagination, loading flag and last error.
package state

import (
	"context"
	"sync"

	"github.com/you/tutorportal/domain"
)

// Snapshot is a copy of a list slice
type Snapshot[T any] struct {
	Items      []T
	Pagination *domain.Pagination
	Loading    bool
	Err        error
}

// List is the state of one list slice. Only the most recently issued Load may
// write its result; older results are dropped.
type List[T any] struct {
	key func(T) domain.ID

	mu         sync.RWMutex
	items      []T
	pagination *domain.Pagination
	loading    bool
	err        error
	seq        uint64
}

// NewList creates an empty slice; key extracts the identity of an item
func NewList[T any](key func(T) domain.ID) *List[T] {
	return &List[T]{key: key}
}

func (l *List[T]) Snapshot() Snapshot[T] {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return Snapshot[T]{
		Items:      append([]T(nil), l.items...),
		Pagination: copyPage(l.pagination),
		Loading:    l.loading,
		Err:        l.err,
	}
}

// Load runs fetch and stores its result. applied is false when a newer Load was
// issued meanwhile or ctx was cancelled; the result is then discarded.
func (l *List[T]) Load(ctx context.Context, fetch func(ctx context.Context) (*domain.ListResult[T], error)) (applied bool, err error) {
	l.mu.Lock()
	l.seq++
	seq := l.seq
	l.loading = true
	l.mu.Unlock()

	res, err := fetch(ctx)

	l.mu.Lock()
	defer l.mu.Unlock()
	if seq != l.seq {
		return false, err
	}
	l.loading = false
	if ctxErr := ctx.Err(); ctxErr != nil {
		return false, ctxErr
	}
	if err != nil {
		l.err = err
		return true, err
	}
	l.err = nil
	if res == nil {
		l.items, l.pagination = nil, nil
		return true, nil
	}
	l.items = append([]T(nil), res.Items...)
	l.pagination = copyPage(res.Pagination)
	return true, nil
}

// Set replaces the items without a fetch
func (l *List[T]) Set(items []T, page *domain.Pagination) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.seq++
	l.items = append([]T(nil), items...)
	l.pagination = copyPage(page)
	l.loading = false
	l.err = nil
}

func copyPage(p *domain.Pagination) *domain.Pagination {
	if p == nil {
		return nil
	}
	cp := *p
	return &cp
}

func (l *List[T]) indexOf(id domain.ID) int {
	for i, it := range l.items {
		if l.key(it) == id {
			return i
		}
	}
	return -1
}

// Upsert shows item immediately, then persists it. On failure the previous
// value (or absence) is restored. The persisted item replaces the optimistic one.
func (l *List[T]) Upsert(ctx context.Context, item T, persist func(ctx context.Context) (*T, error)) (*T, error) {
	id := l.key(item)

	l.mu.Lock()
	idx := l.indexOf(id)
	var prev T
	if idx >= 0 {
		prev = l.items[idx]
		l.items[idx] = item
	} else {
		l.items = append(l.items, item)
	}
	l.mu.Unlock()

	saved, err := persist(ctx)

	l.mu.Lock()
	defer l.mu.Unlock()
	cur := l.indexOf(id)
	if err != nil {
		l.err = err
		switch {
		case cur >= 0 && idx >= 0:
			l.items[cur] = prev
		case cur >= 0:
			l.items = append(l.items[:cur], l.items[cur+1:]...)
		}
		return nil, err
	}
	if saved == nil {
		return &item, nil
	}
	if cur >= 0 {
		if newID := l.key(*saved); newID != "" && newID != id && l.indexOf(newID) >= 0 {
			l.items = append(l.items[:cur], l.items[cur+1:]...)
		} else {
			l.items[cur] = *saved
		}
	}
	if idx < 0 && l.pagination != nil {
		l.pagination.TotalItems++
	}
	return saved, nil
}

// Remove hides the item immediately, then persists the removal. On failure the
// item is put back at its old position.
func (l *List[T]) Remove(ctx context.Context, id domain.ID, persist func(ctx context.Context) error) error {
	l.mu.Lock()
	idx := l.indexOf(id)
	var removed T
	if idx >= 0 {
		removed = l.items[idx]
		l.items = append(l.items[:idx:idx], l.items[idx+1:]...)
	}
	l.mu.Unlock()

	err := persist(ctx)

	l.mu.Lock()
	defer l.mu.Unlock()
	if err != nil {
		l.err = err
		if idx >= 0 && l.indexOf(id) < 0 {
			pos := idx
			if pos > len(l.items) {
				pos = len(l.items)
			}
			l.items = append(l.items[:pos], append([]T{removed}, l.items[pos:]...)...)
		}
		return err
	}
	if idx >= 0 && l.pagination != nil && l.pagination.TotalItems > 0 {
		l.pagination.TotalItems--
	}
	return nil
}
