package navigator

import (
	"fmt"
	"sync"

	"github.com/you/tutorportal/domain"
)

// Navigator tracks the breadcrumb path through the category tree and the node
// whose children are on screen. An empty path is the root categories view.
type Navigator struct {
	mu      sync.RWMutex
	tree    []*domain.Node
	path    []domain.Crumb
	current *domain.Node
}

func New() *Navigator {
	return &Navigator{}
}

// SetTree replaces the in-memory tree without touching the path
func (n *Navigator) SetTree(tree []*domain.Node) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.tree = tree
}

func (n *Navigator) Tree() []*domain.Node {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.tree
}

// Path returns a copy of the breadcrumb path
func (n *Navigator) Path() []domain.Crumb {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return append([]domain.Crumb(nil), n.path...)
}

// Current returns the parent being viewed; nil at root or after a failed resolution
func (n *Navigator) Current() *domain.Node {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.current
}

func (n *Navigator) AtRoot() bool {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return len(n.path) == 0
}

// Children returns what the current view lists
func (n *Navigator) Children() []*domain.Node {
	n.mu.RLock()
	defer n.mu.RUnlock()
	if len(n.path) == 0 {
		return n.tree
	}
	if n.current == nil {
		return nil
	}
	out := make([]*domain.Node, 0, n.current.ChildCount())
	out = append(out, n.current.Subcategories...)
	return append(out, n.current.Courses...)
}

// AvailableActions returns the add-actions offered in the current view
func (n *Navigator) AvailableActions() domain.AddActions {
	n.mu.RLock()
	defer n.mu.RUnlock()
	if len(n.path) == 0 {
		return AvailableActions(nil)
	}
	if n.current == nil {
		return domain.AddActions{}
	}
	return AvailableActions(n.current)
}

// NavigateToChildren drills into node
func (n *Navigator) NavigateToChildren(node *domain.Node) error {
	if node == nil {
		return domain.ErrNodeNotFound
	}
	if node.Leaf() {
		return fmt.Errorf("%w: %s %s", domain.ErrNotAParent, node.Kind, node.ID)
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	n.path = append(n.path, domain.CrumbOf(node))
	n.current = node
	return nil
}

// NavigateBack pops one crumb and re-resolves the new parent in the in-memory
// tree. It reports false when that node no longer exists; the view is then empty.
func (n *Navigator) NavigateBack() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.path) == 0 {
		return true
	}
	return n.truncateLocked(len(n.path) - 1)
}

// NavigateTo truncates the path after the crumb at index, as a breadcrumb click
// does. Index -1 returns to root.
func (n *Navigator) NavigateTo(index int) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	if index < -1 || index >= len(n.path) {
		return false
	}
	return n.truncateLocked(index + 1)
}

// Reset returns to the root view
func (n *Navigator) Reset() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.path = nil
	n.current = nil
}

func (n *Navigator) truncateLocked(length int) bool {
	n.path = n.path[:length]
	if length == 0 {
		n.current = nil
		return true
	}
	last := n.path[length-1]
	n.current = FindNodeByID(n.tree, last.ID, last.Kind)
	return n.current != nil
}

// Resync installs a freshly fetched tree and re-resolves the whole path. When
// the viewed node is gone the path is cut back to its deepest surviving ancestor
// (or root) and an error wrapping domain.ErrNodeNotFound names the lost crumb.
func (n *Navigator) Resync(tree []*domain.Node) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.tree = tree
	if len(n.path) == 0 {
		n.current = nil
		return nil
	}

	lost := n.path[len(n.path)-1]
	for i := len(n.path) - 1; i >= 0; i-- {
		crumb := n.path[i]
		node := FindNodeByID(tree, crumb.ID, crumb.Kind)
		if node == nil {
			continue
		}
		n.current = node
		if i == len(n.path)-1 {
			n.path[i] = domain.CrumbOf(node)
			return nil
		}
		n.path = n.path[:i+1]
		n.path[i] = domain.CrumbOf(node)
		return fmt.Errorf("%w: %s %q", domain.ErrNodeNotFound, lost.Kind, lost.Name)
	}

	n.path = nil
	n.current = nil
	return fmt.Errorf("%w: %s %q", domain.ErrNodeNotFound, lost.Kind, lost.Name)
}

// ParentRefs returns the category and the innermost subcategory of the current
// path, used to attach new children to the viewed node.
func (n *Navigator) ParentRefs() (categoryID, subcategoryID domain.ID) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	for _, c := range n.path {
		switch c.Kind {
		case domain.KindCategory:
			categoryID = c.ID
		case domain.KindSubcategory:
			subcategoryID = c.ID
		}
	}
	return categoryID, subcategoryID
}
