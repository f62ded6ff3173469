// Package menu turns a category forest into the header dropdown structure.
package menu

import (
	"fmt"

	"lms-theme-renderer/internal/domain"
)

// BuildMenu produces dropdown items for the given top-level categories.
// Only root categories are emitted at this level. Input order is preserved.
func BuildMenu(categories []*domain.Category, policy domain.VisibilityPolicy) ([]domain.MenuItem, error) {
	if policy == domain.PolicyDisabled {
		return nil, nil
	}
	w := newWalker(policy)
	items := make([]domain.MenuItem, 0, len(categories))
	for _, cat := range categories {
		if cat == nil || !policy.Includes(cat.Visible) || !cat.IsRoot() {
			continue
		}
		item, err := w.item(cat)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

// BuildSubmenu produces dropdown items for the direct children of category.
func BuildSubmenu(category *domain.Category, policy domain.VisibilityPolicy) ([]domain.MenuItem, error) {
	if policy == domain.PolicyDisabled || category == nil {
		return nil, nil
	}
	w := newWalker(policy)
	if err := w.visit(category); err != nil {
		return nil, err
	}
	return w.children(category)
}

type walker struct {
	policy  domain.VisibilityPolicy
	visited map[int64]struct{}
}

func newWalker(policy domain.VisibilityPolicy) *walker {
	return &walker{policy: policy, visited: make(map[int64]struct{})}
}

func (w *walker) visit(cat *domain.Category) error {
	if _, seen := w.visited[cat.ID]; seen {
		return fmt.Errorf("%w: category %d reached twice", domain.ErrCorruptCategoryTree, cat.ID)
	}
	w.visited[cat.ID] = struct{}{}
	return nil
}

func (w *walker) item(cat *domain.Category) (domain.MenuItem, error) {
	if err := w.visit(cat); err != nil {
		return domain.MenuItem{}, err
	}
	item := domain.MenuItem{Name: cat.Name, URL: cat.URL}
	if !cat.HasChildren() {
		return item, nil
	}
	sub, err := w.children(cat)
	if err != nil {
		return domain.MenuItem{}, err
	}
	// An empty submenu is left nil so templates and JSON see no submenu at all.
	if len(sub) > 0 {
		item.Submenu = sub
	}
	return item, nil
}

func (w *walker) children(cat *domain.Category) ([]domain.MenuItem, error) {
	var items []domain.MenuItem
	for _, child := range cat.Children {
		if child == nil || !w.policy.Includes(child.Visible) {
			continue
		}
		item, err := w.item(child)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}
