package services

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/you/tutorportal/domain"
	"github.com/you/tutorportal/internal/httpclient"
)

// nodeWire is the backend JSON of any tree node. The kind is told apart by which
// id field is set; this is the only place that looks at field presence.
type nodeWire struct {
	CategoryID    domain.ID `json:"categoryId"`
	SubcategoryID domain.ID `json:"subcategoryId"`
	ClassID       domain.ID `json:"classId"`

	CategoryName       string `json:"categoryName"`
	CategoryImageURL   string `json:"categoryImageUrl"`
	CategoryDefinition string `json:"categoryDefinition"`

	SubcategoryName       string `json:"subcategoryName"`
	SubcategoryDefinition string `json:"subcategoryDefinition"`

	ClassName     string `json:"className"`
	ClassFullname string `json:"classFullname"`
	PDFPath1      string `json:"pdfPath1"`
	PDFPath2      string `json:"pdfPath2"`
	PDFPath3      string `json:"pdfPath3"`
	PDFPath4      string `json:"pdfPath4"`

	Subcategories []nodeWire `json:"subcategories"`
	Children      []nodeWire `json:"children"`
	Courses       []nodeWire `json:"courses"`
	AllCourses    []nodeWire `json:"allCourses"`
}

// kind reports the node kind from the most specific id present. Courses and
// subcategories echo their parents' ids, so the order matters.
func (w nodeWire) kind() (domain.NodeKind, error) {
	switch {
	case w.ClassID != "":
		return domain.KindCourse, nil
	case w.SubcategoryID != "":
		return domain.KindSubcategory, nil
	case w.CategoryID != "":
		return domain.KindCategory, nil
	}
	return "", fmt.Errorf("%w: node has no id field", domain.ErrInvalidKind)
}

func (w nodeWire) node() (*domain.Node, error) {
	kind, err := w.kind()
	if err != nil {
		return nil, err
	}

	var n *domain.Node
	switch kind {
	case domain.KindCourse:
		return domain.NewCourse(w.ClassID, w.ClassName, domain.CourseFields{
			FullName: w.ClassFullname,
			PDFPaths: [4]string{w.PDFPath1, w.PDFPath2, w.PDFPath3, w.PDFPath4},
		}), nil
	case domain.KindSubcategory:
		n = domain.NewSubcategory(w.SubcategoryID, w.SubcategoryName, domain.SubcategoryFields{
			Definition: w.SubcategoryDefinition,
		})
		if n.Subcategories, err = convertNodes(w.Children, domain.KindSubcategory); err != nil {
			return nil, err
		}
	case domain.KindCategory:
		all, err := convertNodes(w.AllCourses, domain.KindCourse)
		if err != nil {
			return nil, err
		}
		n = domain.NewCategory(w.CategoryID, w.CategoryName, domain.CategoryFields{
			ImageURL:   w.CategoryImageURL,
			Definition: w.CategoryDefinition,
			AllCourses: all,
		})
		if n.Subcategories, err = convertNodes(w.Subcategories, domain.KindSubcategory); err != nil {
			return nil, err
		}
	}

	if n.Courses, err = convertNodes(w.Courses, domain.KindCourse); err != nil {
		return nil, err
	}
	return n, nil
}

// convertNodes converts a child array and checks every element has the expected kind
func convertNodes(wires []nodeWire, want domain.NodeKind) ([]*domain.Node, error) {
	if len(wires) == 0 {
		return nil, nil
	}
	out := make([]*domain.Node, 0, len(wires))
	for _, w := range wires {
		n, err := w.node()
		if err != nil {
			return nil, err
		}
		if n.Kind != want {
			return nil, fmt.Errorf("%w: expected %s, got %s %s", domain.ErrInvalidKind, want, n.Kind, n.ID)
		}
		out = append(out, n)
	}
	return out, nil
}

// CategoryServiceImpl implements domain.CategoryService
type CategoryServiceImpl struct {
	api API
}

// NewCategoryService creates a new category service
func NewCategoryService(api API) domain.CategoryService {
	return &CategoryServiceImpl{api: api}
}

// List implements domain.CategoryService
func (s *CategoryServiceImpl) List(ctx context.Context, q domain.PageQuery) (*domain.ListResult[*domain.Node], error) {
	wires, page, err := fetchList[nodeWire](ctx, s.api, "/categories", httpclient.PageValues(q), "categories")
	if err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}
	nodes, err := convertNodes(wires, domain.KindCategory)
	if err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}
	return &domain.ListResult[*domain.Node]{Items: nodes, Pagination: page}, nil
}

func categoryForm(in domain.CategoryInput) (map[string]string, []domain.FileUpload) {
	fields := map[string]string{"categoryName": in.Name}
	if in.Definition != "" {
		fields["categoryDefinition"] = in.Definition
	}
	var files []domain.FileUpload
	if in.Image != nil {
		img := *in.Image
		img.FieldName = "image"
		files = append(files, img)
	}
	return fields, files
}

// CreateCategory implements domain.CategoryService
func (s *CategoryServiceImpl) CreateCategory(ctx context.Context, in domain.CategoryInput) error {
	fields, files := categoryForm(in)
	if err := s.api.Multipart(ctx, http.MethodPost, "/categories/create", fields, files, nil); err != nil {
		return fmt.Errorf("failed to create category: %w", err)
	}
	return nil
}

// UpdateCategory implements domain.CategoryService
func (s *CategoryServiceImpl) UpdateCategory(ctx context.Context, id domain.ID, in domain.CategoryInput) error {
	fields, files := categoryForm(in)
	if err := s.api.Multipart(ctx, http.MethodPut, httpclient.PathID("/categories", id), fields, files, nil); err != nil {
		return fmt.Errorf("failed to update category %s: %w", id, err)
	}
	return nil
}

// DeleteCategory implements domain.CategoryService
func (s *CategoryServiceImpl) DeleteCategory(ctx context.Context, id domain.ID) error {
	if err := s.api.Delete(ctx, httpclient.PathID("/categories", id), nil); err != nil {
		return fmt.Errorf("failed to delete category %s: %w", id, err)
	}
	return nil
}

// CreateSubcategory implements domain.CategoryService
func (s *CategoryServiceImpl) CreateSubcategory(ctx context.Context, in domain.SubcategoryInput) error {
	if err := s.api.Post(ctx, "/subcategories/create", in, nil); err != nil {
		return fmt.Errorf("failed to create subcategory: %w", err)
	}
	return nil
}

// UpdateSubcategory implements domain.CategoryService
func (s *CategoryServiceImpl) UpdateSubcategory(ctx context.Context, id domain.ID, in domain.SubcategoryInput) error {
	if err := s.api.Put(ctx, httpclient.PathID("/subcategories", id), in, nil); err != nil {
		return fmt.Errorf("failed to update subcategory %s: %w", id, err)
	}
	return nil
}

// DeleteSubcategory implements domain.CategoryService
func (s *CategoryServiceImpl) DeleteSubcategory(ctx context.Context, id domain.ID) error {
	if err := s.api.Delete(ctx, httpclient.PathID("/subcategories", id), nil); err != nil {
		return fmt.Errorf("failed to delete subcategory %s: %w", id, err)
	}
	return nil
}

func courseForm(in domain.CourseInput) (map[string]string, []domain.FileUpload) {
	fields := map[string]string{
		"className":     in.ClassName,
		"classFullname": in.ClassFullname,
		"categoryId":    in.CategoryID.String(),
	}
	if in.SubcategoryID != "" {
		fields["subcategoryId"] = in.SubcategoryID.String()
	}
	files := make([]domain.FileUpload, 0, len(in.PDFs))
	for i, pdf := range in.PDFs {
		if i == 4 {
			break
		}
		pdf.FieldName = fmt.Sprintf("pdf%d", i+1)
		files = append(files, pdf)
	}
	return fields, files
}

// CreateCourse implements domain.CategoryService
func (s *CategoryServiceImpl) CreateCourse(ctx context.Context, in domain.CourseInput) error {
	fields, files := courseForm(in)
	if err := s.api.Multipart(ctx, http.MethodPost, "/courses/create", fields, files, nil); err != nil {
		return fmt.Errorf("failed to create course: %w", err)
	}
	return nil
}

// UpdateCourse implements domain.CategoryService
func (s *CategoryServiceImpl) UpdateCourse(ctx context.Context, id domain.ID, in domain.CourseInput) error {
	fields, files := courseForm(in)
	if err := s.api.Multipart(ctx, http.MethodPut, httpclient.PathID("/courses", id), fields, files, nil); err != nil {
		return fmt.Errorf("failed to update course %s: %w", id, err)
	}
	return nil
}

// DeleteCourse implements domain.CategoryService
func (s *CategoryServiceImpl) DeleteCourse(ctx context.Context, id domain.ID) error {
	if err := s.api.Delete(ctx, httpclient.PathID("/courses", id), nil); err != nil {
		return fmt.Errorf("failed to delete course %s: %w", id, err)
	}
	return nil
}

// CourseServiceImpl implements domain.CourseService
type CourseServiceImpl struct {
	api API
}

// NewCourseService creates a new course listing service
func NewCourseService(api API) domain.CourseService {
	return &CourseServiceImpl{api: api}
}

// List implements domain.CourseService
func (s *CourseServiceImpl) List(ctx context.Context, f domain.CourseFilter) (*domain.ListResult[*domain.Node], error) {
	q := httpclient.PageValues(f.PageQuery)
	setIf(q, "categoryId", f.CategoryID.String())
	setIf(q, "subcategoryId", f.SubcategoryID.String())
	setIf(q, "search", f.Search)
	setIf(q, "level", f.Level)
	setIf(q, "language", f.Language)

	wires, page, err := fetchList[nodeWire](ctx, s.api, "/courses", q, "courses")
	if err != nil {
		return nil, fmt.Errorf("failed to load courses: %w", err)
	}
	nodes, err := convertNodes(wires, domain.KindCourse)
	if err != nil {
		return nil, fmt.Errorf("failed to load courses: %w", err)
	}
	return &domain.ListResult[*domain.Node]{Items: nodes, Pagination: page}, nil
}

func setIf(q url.Values, key, value string) {
	if value != "" {
		q.Set(key, value)
	}
}
