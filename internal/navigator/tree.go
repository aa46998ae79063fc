package navigator

import "github.com/you/tutorportal/domain"

// FindNodeByID searches the tree depth first, through subcategories, nested
// children and courses, for the node with the given kind and id. It returns the
// first match or nil.
func FindNodeByID(tree []*domain.Node, id domain.ID, kind domain.NodeKind) *domain.Node {
	for _, n := range tree {
		if found := findIn(n, id, kind); found != nil {
			return found
		}
	}
	return nil
}

func findIn(n *domain.Node, id domain.ID, kind domain.NodeKind) *domain.Node {
	if n == nil {
		return nil
	}
	if n.Kind == kind && n.ID == id {
		return n
	}
	for _, sub := range n.Subcategories {
		if found := findIn(sub, id, kind); found != nil {
			return found
		}
	}
	if kind != domain.KindCourse {
		return nil
	}
	for _, c := range n.Courses {
		if c.Kind == kind && c.ID == id {
			return c
		}
	}
	return nil
}

// AvailableActions applies the homogeneity rule to a parent. A nil parent is the
// root view, where only categories can be added. Courses take no children.
func AvailableActions(parent *domain.Node) domain.AddActions {
	if parent == nil {
		return domain.AddActions{Category: true}
	}
	if parent.Leaf() {
		return domain.AddActions{}
	}

	hasSubs := len(parent.Subcategories) > 0
	hasCourses := len(parent.Courses) > 0
	switch {
	case hasSubs && !hasCourses:
		return domain.AddActions{Subcategory: true}
	case hasCourses && !hasSubs:
		return domain.AddActions{Course: true}
	default:
		return domain.AddActions{Subcategory: true, Course: true}
	}
}
