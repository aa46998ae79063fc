package services

import (
	"context"
	"encoding/json"
	"errors"
	"mime"
	"mime/multipart"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/you/tutorportal/domain"
)

const categoryTree = `{
  "data": [
    {
      "categoryId": "c1",
      "categoryName": "Mathematics",
      "categoryImageUrl": "/img/math.png",
      "subcategories": [
        {
          "subcategoryId": "s1",
          "categoryId": "c1",
          "subcategoryName": "Algebra",
          "children": [
            {"subcategoryId": "s2", "subcategoryName": "Linear", "courses": [
              {"classId": 7, "categoryId": "c1", "subcategoryId": "s2", "className": "LIN-1", "classFullname": "Linear Algebra I", "pdfPath1": "/pdf/lin1.pdf"}
            ]}
          ]
        }
      ],
      "allCourses": [{"classId": 7, "className": "LIN-1"}]
    },
    {"categoryId": "c2", "categoryName": "Physics", "courses": [{"classId": "k9", "className": "PHY-1"}]}
  ],
  "pagination": {"currentPage": 1, "totalPages": 1, "totalItems": 2}
}`

func TestCategoryServiceImpl_List(t *testing.T) {
	backend, api := newTestBackend(t)
	backend.on("GET /categories", http.StatusOK, categoryTree)

	res, err := NewCategoryService(api).List(context.Background(), domain.PageQuery{Page: 1, Limit: 10})
	require.NoError(t, err)
	require.Len(t, res.Items, 2)

	math := res.Items[0]
	assert.Equal(t, domain.KindCategory, math.Kind)
	assert.Equal(t, "/img/math.png", math.Category.ImageURL)
	require.Len(t, math.Category.AllCourses, 1)

	algebra := math.Subcategories[0]
	assert.Equal(t, domain.KindSubcategory, algebra.Kind)
	assert.Equal(t, domain.ID("s1"), algebra.ID)

	linear := algebra.Subcategories[0]
	assert.Equal(t, domain.KindSubcategory, linear.Kind)
	course := linear.Courses[0]
	assert.Equal(t, domain.KindCourse, course.Kind)
	assert.Equal(t, domain.ID("7"), course.ID)
	assert.Equal(t, "Linear Algebra I", course.Course.FullName)
	assert.Equal(t, "/pdf/lin1.pdf", course.Course.PDFPaths[0])

	physics := res.Items[1]
	assert.Equal(t, domain.KindCourse, physics.Courses[0].Kind)
	assert.Equal(t, 2, res.Pagination.TotalItems)
}

func TestCategoryServiceImpl_List_RejectsMisplacedKinds(t *testing.T) {
	backend, api := newTestBackend(t)
	backend.on("GET /categories", http.StatusOK, `[{"categoryId":"c1","courses":[{"subcategoryId":"s1"}]}]`)

	_, err := NewCategoryService(api).List(context.Background(), domain.PageQuery{})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidKind))
}

func TestCategoryServiceImpl_CreateCategory_Multipart(t *testing.T) {
	backend, api := newTestBackend(t)
	backend.on("POST /categories/create", http.StatusCreated, nil)

	err := NewCategoryService(api).CreateCategory(context.Background(), domain.CategoryInput{
		Name:  "Chemistry",
		Image: &domain.FileUpload{FileName: "chem.jpg", ContentType: "image/jpeg", Content: []byte("jpeg")},
	})
	require.NoError(t, err)

	req := backend.last(t)
	_, params, err := mime.ParseMediaType(req.Header.Get("Content-Type"))
	require.NoError(t, err)
	form, err := multipart.NewReader(strings.NewReader(string(req.Body)), params["boundary"]).ReadForm(1 << 20)
	require.NoError(t, err)

	assert.Equal(t, []string{"Chemistry"}, form.Value["categoryName"])
	require.Len(t, form.File["image"], 1)
	assert.Equal(t, "chem.jpg", form.File["image"][0].Filename)
}

func TestCategoryServiceImpl_CreateCourse_PDFFields(t *testing.T) {
	backend, api := newTestBackend(t)
	backend.on("POST /courses/create", http.StatusCreated, nil)

	pdfs := make([]domain.FileUpload, 5)
	for i := range pdfs {
		pdfs[i] = domain.FileUpload{FileName: "part.pdf", ContentType: "application/pdf", Content: []byte("%PDF")}
	}
	err := NewCategoryService(api).CreateCourse(context.Background(), domain.CourseInput{
		ClassName: "LIN-2", ClassFullname: "Linear Algebra II", CategoryID: "c1", SubcategoryID: "s2", PDFs: pdfs,
	})
	require.NoError(t, err)

	req := backend.last(t)
	_, params, _ := mime.ParseMediaType(req.Header.Get("Content-Type"))
	form, err := multipart.NewReader(strings.NewReader(string(req.Body)), params["boundary"]).ReadForm(1 << 20)
	require.NoError(t, err)

	for _, field := range []string{"pdf1", "pdf2", "pdf3", "pdf4"} {
		assert.Len(t, form.File[field], 1, field)
	}
	assert.Empty(t, form.File["pdf5"])
	assert.Equal(t, []string{"s2"}, form.Value["subcategoryId"])
}

func TestCategoryServiceImpl_SubcategoryAndDeletes(t *testing.T) {
	backend, api := newTestBackend(t)
	backend.on("POST /subcategories/create", http.StatusCreated, nil)
	backend.on("PUT /subcategories/s1", http.StatusOK, nil)
	backend.on("DELETE /subcategories/s1", http.StatusOK, nil)
	backend.on("DELETE /categories/c1", http.StatusOK, nil)
	backend.on("DELETE /courses/k1", http.StatusOK, nil)

	svc := NewCategoryService(api)
	ctx := context.Background()

	require.NoError(t, svc.CreateSubcategory(ctx, domain.SubcategoryInput{Name: "Geometry", CategoryID: "c1"}))
	var sent map[string]string
	require.NoError(t, json.Unmarshal(backend.last(t).Body, &sent))
	assert.Equal(t, "Geometry", sent["subcategoryName"])
	assert.Equal(t, "c1", sent["categoryId"])

	require.NoError(t, svc.UpdateSubcategory(ctx, "s1", domain.SubcategoryInput{Name: "Geo", CategoryID: "c1"}))
	require.NoError(t, svc.DeleteSubcategory(ctx, "s1"))
	require.NoError(t, svc.DeleteCategory(ctx, "c1"))
	require.NoError(t, svc.DeleteCourse(ctx, "k1"))

	err := svc.DeleteCourse(ctx, "missing")
	assert.Equal(t, http.StatusNotFound, domain.StatusCode(err))
}

func TestCourseServiceImpl_List_Filters(t *testing.T) {
	backend, api := newTestBackend(t)
	backend.on("GET /courses", http.StatusOK, `[{"classId":"k1","className":"ALG-101"}]`)

	res, err := NewCourseService(api).List(context.Background(), domain.CourseFilter{
		CategoryID: "c1", Search: "alg", Language: "en", PageQuery: domain.PageQuery{Page: 2},
	})
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Nil(t, res.Pagination)
	assert.Equal(t, "categoryId=c1&language=en&page=2&search=alg", backend.last(t).Query)
}
