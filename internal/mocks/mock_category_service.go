package mocks

import (
	"context"

	"github.com/you/tutorportal/domain"
)

// MockCategoryService implements domain.CategoryService interface for testing
type MockCategoryService struct {
	ListFunc              func(ctx context.Context, q domain.PageQuery) (*domain.ListResult[*domain.Node], error)
	CreateCategoryFunc    func(ctx context.Context, in domain.CategoryInput) error
	UpdateCategoryFunc    func(ctx context.Context, id domain.ID, in domain.CategoryInput) error
	DeleteCategoryFunc    func(ctx context.Context, id domain.ID) error
	CreateSubcategoryFunc func(ctx context.Context, in domain.SubcategoryInput) error
	UpdateSubcategoryFunc func(ctx context.Context, id domain.ID, in domain.SubcategoryInput) error
	DeleteSubcategoryFunc func(ctx context.Context, id domain.ID) error
	CreateCourseFunc      func(ctx context.Context, in domain.CourseInput) error
	UpdateCourseFunc      func(ctx context.Context, id domain.ID, in domain.CourseInput) error
	DeleteCourseFunc      func(ctx context.Context, id domain.ID) error
}

// NewMockCategoryService creates a new MockCategoryService with default behaviors
func NewMockCategoryService() *MockCategoryService {
	return &MockCategoryService{}
}

func (m *MockCategoryService) List(ctx context.Context, q domain.PageQuery) (*domain.ListResult[*domain.Node], error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, q)
	}
	// Default behavior: empty tree
	return &domain.ListResult[*domain.Node]{}, nil
}

func (m *MockCategoryService) CreateCategory(ctx context.Context, in domain.CategoryInput) error {
	if m.CreateCategoryFunc != nil {
		return m.CreateCategoryFunc(ctx, in)
	}
	return nil
}

func (m *MockCategoryService) UpdateCategory(ctx context.Context, id domain.ID, in domain.CategoryInput) error {
	if m.UpdateCategoryFunc != nil {
		return m.UpdateCategoryFunc(ctx, id, in)
	}
	return nil
}

func (m *MockCategoryService) DeleteCategory(ctx context.Context, id domain.ID) error {
	if m.DeleteCategoryFunc != nil {
		return m.DeleteCategoryFunc(ctx, id)
	}
	return nil
}

func (m *MockCategoryService) CreateSubcategory(ctx context.Context, in domain.SubcategoryInput) error {
	if m.CreateSubcategoryFunc != nil {
		return m.CreateSubcategoryFunc(ctx, in)
	}
	return nil
}

func (m *MockCategoryService) UpdateSubcategory(ctx context.Context, id domain.ID, in domain.SubcategoryInput) error {
	if m.UpdateSubcategoryFunc != nil {
		return m.UpdateSubcategoryFunc(ctx, id, in)
	}
	return nil
}

func (m *MockCategoryService) DeleteSubcategory(ctx context.Context, id domain.ID) error {
	if m.DeleteSubcategoryFunc != nil {
		return m.DeleteSubcategoryFunc(ctx, id)
	}
	return nil
}

func (m *MockCategoryService) CreateCourse(ctx context.Context, in domain.CourseInput) error {
	if m.CreateCourseFunc != nil {
		return m.CreateCourseFunc(ctx, in)
	}
	return nil
}

func (m *MockCategoryService) UpdateCourse(ctx context.Context, id domain.ID, in domain.CourseInput) error {
	if m.UpdateCourseFunc != nil {
		return m.UpdateCourseFunc(ctx, id, in)
	}
	return nil
}

func (m *MockCategoryService) DeleteCourse(ctx context.Context, id domain.ID) error {
	if m.DeleteCourseFunc != nil {
		return m.DeleteCourseFunc(ctx, id)
	}
	return nil
}

// Compile-time interface compliance verification
var _ domain.CategoryService = (*MockCategoryService)(nil)
