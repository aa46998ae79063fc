package navigator

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/you/tutorportal/domain"
	"github.com/you/tutorportal/internal/logger"
	"github.com/you/tutorportal/internal/state"
	"github.com/you/tutorportal/internal/validation"
)

// Manager runs category tree mutations. Every mutation is the same cycle:
// call the backend, notify, re-fetch the whole tree, resync the navigator.
type Manager struct {
	service  domain.CategoryService
	nav      *Navigator
	tree     *state.List[*domain.Node]
	validate *validation.Validator
	notifier domain.Notifier
	log      logger.Logger

	mu    sync.Mutex
	query domain.PageQuery
}

func NewManager(service domain.CategoryService, nav *Navigator, validate *validation.Validator, notifier domain.Notifier, log logger.Logger) *Manager {
	if validate == nil {
		validate = validation.New()
	}
	if log == nil {
		log = logger.Discard()
	}
	return &Manager{
		service:  service,
		nav:      nav,
		tree:     state.NewList(func(n *domain.Node) domain.ID { return n.ID }),
		validate: validate,
		notifier: notifier,
		log:      log,
	}
}

func (m *Manager) Navigator() *Navigator { return m.nav }

// State exposes the loading flag and last error of the tree fetch
func (m *Manager) State() state.Snapshot[*domain.Node] { return m.tree.Snapshot() }

// Reload fetches the tree page selected by q and resyncs the navigator. The
// query is kept for the re-fetch after each mutation. A result superseded by a
// newer Reload is dropped without touching the navigator.
func (m *Manager) Reload(ctx context.Context, q domain.PageQuery) error {
	m.mu.Lock()
	m.query = q
	m.mu.Unlock()
	return m.reload(ctx, q)
}

func (m *Manager) reload(ctx context.Context, q domain.PageQuery) error {
	applied, err := m.tree.Load(ctx, func(ctx context.Context) (*domain.ListResult[*domain.Node], error) {
		return m.service.List(ctx, q)
	})
	if err != nil {
		if applied {
			m.notifyError("Failed to load categories", err)
		}
		return fmt.Errorf("failed to load category tree: %w", err)
	}
	if !applied {
		return nil
	}

	if err := m.nav.Resync(m.tree.Snapshot().Items); err != nil {
		m.log.Warn("navigation path lost after reload", err)
		m.notifyError("The item you were viewing no longer exists", err)
		return err
	}
	return nil
}

func (m *Manager) mutate(ctx context.Context, success, failure string, op func(ctx context.Context) error) error {
	if err := op(ctx); err != nil {
		m.notifyError(failure, err)
		return err
	}
	if m.notifier != nil {
		m.notifier.Success(success)
	}
	m.mu.Lock()
	q := m.query
	m.mu.Unlock()
	err := m.reload(ctx, q)
	if errors.Is(err, domain.ErrNodeNotFound) {
		// the mutation itself went through
		return nil
	}
	return err
}

func (m *Manager) notifyError(prefix string, err error) {
	m.log.Error(prefix, err)
	if m.notifier == nil {
		return
	}
	var apiErr *domain.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		m.notifier.Error(prefix + ": " + apiErr.Message)
		return
	}
	m.notifier.Error(prefix)
}

func (m *Manager) checkCategory(in domain.CategoryInput) error {
	if err := m.validate.Struct(in); err != nil {
		return err
	}
	return m.validate.Image("image", in.Image)
}

func (m *Manager) checkCourse(in domain.CourseInput) error {
	if err := m.validate.Struct(in); err != nil {
		return err
	}
	return m.validate.PDFs("pdfs", in.PDFs)
}

func (m *Manager) CreateCategory(ctx context.Context, in domain.CategoryInput) error {
	if err := m.checkCategory(in); err != nil {
		return err
	}
	return m.mutate(ctx, "Category created successfully", "Failed to create category", func(ctx context.Context) error {
		return m.service.CreateCategory(ctx, in)
	})
}

func (m *Manager) UpdateCategory(ctx context.Context, id domain.ID, in domain.CategoryInput) error {
	if err := m.checkCategory(in); err != nil {
		return err
	}
	return m.mutate(ctx, "Category updated successfully", "Failed to update category", func(ctx context.Context) error {
		return m.service.UpdateCategory(ctx, id, in)
	})
}

func (m *Manager) DeleteCategory(ctx context.Context, id domain.ID) error {
	return m.mutate(ctx, "Category deleted successfully", "Failed to delete category", func(ctx context.Context) error {
		return m.service.DeleteCategory(ctx, id)
	})
}

// CreateSubcategory adds a subcategory under the viewed node. The category and
// parent subcategory ids are taken from the path when the input leaves them empty.
func (m *Manager) CreateSubcategory(ctx context.Context, in domain.SubcategoryInput) error {
	if !m.nav.AtRoot() && !m.nav.AvailableActions().Subcategory {
		return fmt.Errorf("%w: subcategory cannot be added here", domain.ErrInvalidKind)
	}
	categoryID, subcategoryID := m.nav.ParentRefs()
	if in.CategoryID == "" {
		in.CategoryID = categoryID
	}
	if in.ParentSubcategoryID == "" {
		in.ParentSubcategoryID = subcategoryID
	}
	if err := m.validate.Struct(in); err != nil {
		return err
	}
	return m.mutate(ctx, "Subcategory created successfully", "Failed to create subcategory", func(ctx context.Context) error {
		return m.service.CreateSubcategory(ctx, in)
	})
}

func (m *Manager) UpdateSubcategory(ctx context.Context, id domain.ID, in domain.SubcategoryInput) error {
	if err := m.validate.Struct(in); err != nil {
		return err
	}
	return m.mutate(ctx, "Subcategory updated successfully", "Failed to update subcategory", func(ctx context.Context) error {
		return m.service.UpdateSubcategory(ctx, id, in)
	})
}

func (m *Manager) DeleteSubcategory(ctx context.Context, id domain.ID) error {
	return m.mutate(ctx, "Subcategory deleted successfully", "Failed to delete subcategory", func(ctx context.Context) error {
		return m.service.DeleteSubcategory(ctx, id)
	})
}

// CreateCourse adds a course under the viewed node, filling parent ids from the path
func (m *Manager) CreateCourse(ctx context.Context, in domain.CourseInput) error {
	if m.nav.AtRoot() || !m.nav.AvailableActions().Course {
		return fmt.Errorf("%w: course cannot be added here", domain.ErrInvalidKind)
	}
	categoryID, subcategoryID := m.nav.ParentRefs()
	if in.CategoryID == "" {
		in.CategoryID = categoryID
	}
	if in.SubcategoryID == "" {
		in.SubcategoryID = subcategoryID
	}
	if err := m.checkCourse(in); err != nil {
		return err
	}
	return m.mutate(ctx, "Course created successfully", "Failed to create course", func(ctx context.Context) error {
		return m.service.CreateCourse(ctx, in)
	})
}

func (m *Manager) UpdateCourse(ctx context.Context, id domain.ID, in domain.CourseInput) error {
	if err := m.checkCourse(in); err != nil {
		return err
	}
	return m.mutate(ctx, "Course updated successfully", "Failed to update course", func(ctx context.Context) error {
		return m.service.UpdateCourse(ctx, id, in)
	})
}

func (m *Manager) DeleteCourse(ctx context.Context, id domain.ID) error {
	return m.mutate(ctx, "Course deleted successfully", "Failed to delete course", func(ctx context.Context) error {
		return m.service.DeleteCourse(ctx, id)
	})
}
