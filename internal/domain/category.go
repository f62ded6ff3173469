package domain

import "strings"

// Category is a node of the course category tree as supplied by the category store.
type Category struct {
	ID        int64       `json:"id"`
	ParentID  *int64      `json:"parentId,omitempty"`
	Name      string      `json:"name"`
	Visible   bool        `json:"visible"`
	SortOrder int         `json:"sortOrder"`
	URL       string      `json:"url"`
	Children  []*Category `json:"children,omitempty"`
}

// IsRoot reports whether the category has no parent.
func (c *Category) IsRoot() bool {
	return c.ParentID == nil
}

// HasChildren reports whether the category has at least one direct child.
func (c *Category) HasChildren() bool {
	return len(c.Children) > 0
}

// MenuItem is one entry of the header category dropdown.
type MenuItem struct {
	Name    string     `json:"name"`
	URL     string     `json:"url"`
	Submenu []MenuItem `json:"submenu,omitempty"`
}

// VisibilityPolicy controls which categories reach the header dropdown.
type VisibilityPolicy string

const (
	PolicyShowAll       VisibilityPolicy = "show_all"
	PolicyExcludeHidden VisibilityPolicy = "exclude_hidden"
	PolicyDisabled      VisibilityPolicy = "disabled"
)

// ParseVisibilityPolicy maps the persisted menuheadercateg setting onto a policy.
// Unknown non-empty values enable the menu with every category shown.
func ParseVisibilityPolicy(v string) VisibilityPolicy {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "disabled":
		return PolicyDisabled
	case "excludehidden", "exclude_hidden":
		return PolicyExcludeHidden
	default:
		return PolicyShowAll
	}
}

// Includes reports whether a category with the given visibility passes the policy.
func (p VisibilityPolicy) Includes(visible bool) bool {
	switch p {
	case PolicyDisabled:
		return false
	case PolicyExcludeHidden:
		return visible
	default:
		return true
	}
}
