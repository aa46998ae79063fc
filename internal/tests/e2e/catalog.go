package e2e

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// SeedCategory inserts a category directly and returns its id
func (ts *TestServer) SeedCategory(name string) string {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	id := ts.newID("cat")
	ts.categories = append(ts.categories, categoryRow{id: id, name: name})
	return id
}

// SeedSubcategory inserts a subcategory under a category or another subcategory
func (ts *TestServer) SeedSubcategory(name, categoryID, parentID string) string {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	id := ts.newID("sub")
	ts.subcategories = append(ts.subcategories, subcategoryRow{id: id, name: name, categoryID: categoryID, parentID: parentID})
	return id
}

// SeedCourse inserts a course under a category or subcategory
func (ts *TestServer) SeedCourse(name, categoryID, subcategoryID string) string {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	id := ts.newID("cls")
	ts.courses = append(ts.courses, courseRow{id: id, name: name, fullName: name, categoryID: categoryID, subcategoryID: subcategoryID})
	return id
}

// CoursePDFs returns the stored pdf names of a course
func (ts *TestServer) CoursePDFs(id string) []string {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	for _, c := range ts.courses {
		if c.id == id {
			return append([]string(nil), c.pdfs...)
		}
	}
	return nil
}

func (ts *TestServer) newID(prefix string) string {
	ts.nextID++
	return fmt.Sprintf("%s-%d", prefix, ts.nextID)
}

func (ts *TestServer) courseJSON(c courseRow) gin.H {
	out := gin.H{
		"classId":       c.id,
		"className":     c.name,
		"classFullname": c.fullName,
		"categoryId":    c.categoryID,
	}
	if c.subcategoryID != "" {
		out["subcategoryId"] = c.subcategoryID
	}
	for i, p := range c.pdfs {
		out[fmt.Sprintf("pdfPath%d", i+1)] = "/uploads/" + p
	}
	return out
}

func (ts *TestServer) subcategoryJSON(s subcategoryRow) gin.H {
	children := []gin.H{}
	for _, child := range ts.subcategories {
		if child.parentID == s.id {
			children = append(children, ts.subcategoryJSON(child))
		}
	}
	courses := []gin.H{}
	for _, c := range ts.courses {
		if c.subcategoryID == s.id {
			courses = append(courses, ts.courseJSON(c))
		}
	}
	return gin.H{
		"subcategoryId":   s.id,
		"subcategoryName": s.name,
		"categoryId":      s.categoryID,
		"children":        children,
		"courses":         courses,
	}
}

func (ts *TestServer) listCategories(c *gin.Context) {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	data := make([]gin.H, 0, len(ts.categories))
	for _, cat := range ts.categories {
		subs := []gin.H{}
		for _, s := range ts.subcategories {
			if s.categoryID == cat.id && s.parentID == "" {
				subs = append(subs, ts.subcategoryJSON(s))
			}
		}
		courses := []gin.H{}
		all := []gin.H{}
		for _, course := range ts.courses {
			if course.categoryID != cat.id {
				continue
			}
			all = append(all, ts.courseJSON(course))
			if course.subcategoryID == "" {
				courses = append(courses, ts.courseJSON(course))
			}
		}
		data = append(data, gin.H{
			"categoryId":         cat.id,
			"categoryName":       cat.name,
			"categoryDefinition": cat.definition,
			"subcategories":      subs,
			"courses":            courses,
			"allCourses":         all,
		})
	}
	c.JSON(http.StatusOK, gin.H{
		"data": data,
		"meta": gin.H{"page": 1, "pages": 1, "total": len(data)},
	})
}

func (ts *TestServer) createCategory(c *gin.Context) {
	name := c.PostForm("categoryName")
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "categoryName is required"})
		return
	}
	ts.mu.Lock()
	id := ts.newID("cat")
	ts.categories = append(ts.categories, categoryRow{id: id, name: name, definition: c.PostForm("categoryDefinition")})
	ts.mu.Unlock()
	c.JSON(http.StatusCreated, gin.H{"message": "Category created", "categoryId": id})
}

func (ts *TestServer) updateCategory(c *gin.Context) {
	id := c.Param("id")
	ts.mu.Lock()
	defer ts.mu.Unlock()
	for i := range ts.categories {
		if ts.categories[i].id == id {
			ts.categories[i].name = c.PostForm("categoryName")
			ts.categories[i].definition = c.PostForm("categoryDefinition")
			c.JSON(http.StatusOK, gin.H{"message": "Category updated"})
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"message": "Category not found"})
}

func (ts *TestServer) createSubcategory(c *gin.Context) {
	var body struct {
		Name                string `json:"subcategoryName"`
		CategoryID          string `json:"categoryId"`
		ParentSubcategoryID string `json:"parentSubcategoryId"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.Name == "" || body.CategoryID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "subcategoryName and categoryId are required"})
		return
	}
	ts.mu.Lock()
	id := ts.newID("sub")
	ts.subcategories = append(ts.subcategories, subcategoryRow{id: id, name: body.Name, categoryID: body.CategoryID, parentID: body.ParentSubcategoryID})
	ts.mu.Unlock()
	c.JSON(http.StatusCreated, gin.H{"message": "Subcategory created", "subcategoryId": id})
}

func (ts *TestServer) createCourse(c *gin.Context) {
	row := courseRow{
		name:          c.PostForm("className"),
		fullName:      c.PostForm("classFullname"),
		categoryID:    c.PostForm("categoryId"),
		subcategoryID: c.PostForm("subcategoryId"),
	}
	if row.name == "" || row.categoryID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "className and categoryId are required"})
		return
	}
	for i := 1; i <= 4; i++ {
		if fh, err := c.FormFile(fmt.Sprintf("pdf%d", i)); err == nil {
			row.pdfs = append(row.pdfs, fh.Filename)
		}
	}
	ts.mu.Lock()
	row.id = ts.newID("cls")
	ts.courses = append(ts.courses, row)
	ts.mu.Unlock()
	c.JSON(http.StatusCreated, gin.H{"message": "Course created", "classId": row.id})
}

func (ts *TestServer) deleteRow(kind string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		ts.mu.Lock()
		defer ts.mu.Unlock()
		found := false
		switch kind {
		case "category":
			ts.categories, found = without(ts.categories, func(r categoryRow) bool { return r.id == id })
		case "subcategory":
			ts.subcategories, found = without(ts.subcategories, func(r subcategoryRow) bool { return r.id == id })
		case "course":
			ts.courses, found = without(ts.courses, func(r courseRow) bool { return r.id == id })
		}
		if !found {
			c.JSON(http.StatusNotFound, gin.H{"message": kind + " not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": kind + " deleted"})
	}
}

func without[T any](rows []T, match func(T) bool) ([]T, bool) {
	out := rows[:0]
	found := false
	for _, r := range rows {
		if match(r) {
			found = true
			continue
		}
		out = append(out, r)
	}
	return out, found
}
