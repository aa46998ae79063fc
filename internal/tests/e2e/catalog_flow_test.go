package e2e

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/you/tutorportal/domain"
	"github.com/you/tutorportal/internal/navigator"
)

func TestCategoryTree_BuildNavigateAndResync(t *testing.T) {
	ts := NewTestServer(t)
	SeedUsers(ts)
	c := NewTestApp(t, ts)
	loginAdmin(t, ts, c)
	ctx := context.Background()
	m := c.Categories
	nav := m.Navigator()

	require.NoError(t, m.Reload(ctx, domain.PageQuery{}))
	assert.Empty(t, nav.Children())
	assert.Equal(t, domain.AddActions{Category: true}, nav.AvailableActions())

	require.NoError(t, m.CreateCategory(ctx, domain.CategoryInput{
		Name:  "Mathematics",
		Image: &domain.FileUpload{FileName: "maths.png", ContentType: "image/png", Content: []byte{0x89, 'P', 'N', 'G'}},
	}))
	require.Len(t, nav.Children(), 1)
	maths := nav.Children()[0]
	assert.Equal(t, domain.KindCategory, maths.Kind)

	require.NoError(t, nav.NavigateToChildren(maths))
	assert.Equal(t, domain.AddActions{Subcategory: true, Course: true}, nav.AvailableActions(), "empty parent offers both")

	require.NoError(t, m.CreateSubcategory(ctx, domain.SubcategoryInput{Name: "Algebra"}))
	require.Len(t, nav.Children(), 1)
	assert.Equal(t, domain.AddActions{Subcategory: true}, nav.AvailableActions())
	algebra := nav.Children()[0]
	assert.Equal(t, domain.KindSubcategory, algebra.Kind)

	require.NoError(t, nav.NavigateToChildren(algebra))
	require.NoError(t, m.CreateCourse(ctx, domain.CourseInput{
		ClassName:     "Linear",
		ClassFullname: "Linear Algebra",
		PDFs: []domain.FileUpload{
			{FileName: "syllabus.pdf", ContentType: "application/pdf", Content: []byte("%PDF-1.4")},
			{FileName: "week1.pdf", ContentType: "application/pdf", Content: []byte("%PDF-1.4")},
		},
	}))
	require.Len(t, nav.Children(), 1)
	linear := nav.Children()[0]
	assert.Equal(t, domain.KindCourse, linear.Kind)
	assert.Equal(t, "Linear Algebra", linear.Course.FullName)
	assert.Equal(t, []string{"syllabus.pdf", "week1.pdf"}, ts.CoursePDFs(linear.ID.String()))
	assert.Equal(t, domain.AddActions{Course: true}, nav.AvailableActions())
	assert.ErrorIs(t, nav.NavigateToChildren(linear), domain.ErrNotAParent)

	tree := nav.Tree()
	assert.Same(t, linear, navigator.FindNodeByID(tree, linear.ID, domain.KindCourse))
	assert.Len(t, tree[0].Category.AllCourses, 1)

	// deleting the viewed subcategory sends the view back to its category
	require.NoError(t, m.DeleteSubcategory(ctx, algebra.ID))
	assert.Equal(t, []domain.Crumb{{ID: maths.ID, Name: "Mathematics", Kind: domain.KindCategory}}, nav.Path())
	assert.Empty(t, nav.Children())
	assert.Contains(t, messages(c.Notifier.Drain()), "The item you were viewing no longer exists")
}

func TestCategoryTree_ValidationBeforeNetwork(t *testing.T) {
	ts := NewTestServer(t)
	SeedUsers(ts)
	c := NewTestApp(t, ts)
	loginAdmin(t, ts, c)
	before := len(ts.Calls())

	err := c.Categories.CreateCategory(context.Background(), domain.CategoryInput{
		Name:  "Arts",
		Image: &domain.FileUpload{FileName: "arts.exe"},
	})

	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.NotEmpty(t, vErr.Field("image"))
	assert.Len(t, ts.Calls(), before)
}
