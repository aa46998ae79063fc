package domain

// NodeKind tags a category tree node
type NodeKind string

const (
	KindCategory    NodeKind = "category"
	KindSubcategory NodeKind = "subcategory"
	KindCourse      NodeKind = "course"
)

// Valid reports whether k is one of the three node kinds
func (k NodeKind) Valid() bool {
	switch k {
	case KindCategory, KindSubcategory, KindCourse:
		return true
	}
	return false
}

// CategoryFields holds the fields only a category carries
type CategoryFields struct {
	ImageURL   string
	Definition string
	// AllCourses is the flattened course list the backend attaches to a category
	AllCourses []*Node
}

// SubcategoryFields holds the fields only a subcategory carries
type SubcategoryFields struct {
	Definition string
}

// CourseFields holds the fields only a course carries
type CourseFields struct {
	FullName string
	PDFPaths [4]string
}

// Node is one element of the category -> subcategory -> course tree.
// Exactly one of Category, Subcategory, Course is set and it matches Kind.
type Node struct {
	Kind NodeKind
	ID   ID
	Name string

	Category    *CategoryFields
	Subcategory *SubcategoryFields
	Course      *CourseFields

	// Subcategories holds category.subcategories or subcategory.children
	Subcategories []*Node
	// Courses holds the direct course leaves
	Courses []*Node
}

// NewCategory builds a category node
func NewCategory(id ID, name string, f CategoryFields) *Node {
	return &Node{Kind: KindCategory, ID: id, Name: name, Category: &f}
}

// NewSubcategory builds a subcategory node
func NewSubcategory(id ID, name string, f SubcategoryFields) *Node {
	return &Node{Kind: KindSubcategory, ID: id, Name: name, Subcategory: &f}
}

// NewCourse builds a course leaf
func NewCourse(id ID, name string, f CourseFields) *Node {
	return &Node{Kind: KindCourse, ID: id, Name: name, Course: &f}
}

// ChildCount returns the number of direct children
func (n *Node) ChildCount() int {
	if n == nil {
		return 0
	}
	return len(n.Subcategories) + len(n.Courses)
}

// Leaf reports whether the node can have children
func (n *Node) Leaf() bool {
	return n == nil || n.Kind == KindCourse
}

// Crumb is one breadcrumb entry of the navigation path
type Crumb struct {
	ID   ID
	Name string
	Kind NodeKind
}

// CrumbOf returns the breadcrumb entry describing n
func CrumbOf(n *Node) Crumb {
	return Crumb{ID: n.ID, Name: n.Name, Kind: n.Kind}
}

// AddActions are the child-creation actions offered at a position in the tree
type AddActions struct {
	Category    bool
	Subcategory bool
	Course      bool
}
