package service

import (
	"slices"

	"github.com/panelkit/admin-console/internal/core/domain"
)

// Authorizer answers navigation and access questions from the role menu table.
// A role may open exactly the literal paths its menu names.
type Authorizer struct{}

func NewAuthorizer() *Authorizer {
	return &Authorizer{}
}

// MenuFor returns the ordered menu for role. Unknown roles get an empty menu.
func (a *Authorizer) MenuFor(role domain.Role) []domain.MenuItem {
	items := domain.MenuTable(role)
	if items == nil {
		return []domain.MenuItem{}
	}
	return items
}

// HasRoute reports whether any menu entry for role, at any depth, names path.
func (a *Authorizer) HasRoute(role domain.Role, path string) bool {
	if path == "" {
		return false
	}
	return containsPath(domain.MenuTable(role), path)
}

// RoutesFor flattens the whitelist for role, in menu order without duplicates.
func (a *Authorizer) RoutesFor(role domain.Role) []string {
	var out []string
	var walk func([]domain.MenuItem)
	walk = func(items []domain.MenuItem) {
		for _, it := range items {
			if it.Path != "" && !slices.Contains(out, it.Path) {
				out = append(out, it.Path)
			}
			walk(it.Children)
		}
	}
	walk(domain.MenuTable(role))
	return out
}

func (a *Authorizer) HasRole(current, role domain.Role) bool {
	return current != "" && current == role
}

// HasAnyRole reports whether current is a member of roles. An empty set matches nothing.
func (a *Authorizer) HasAnyRole(current domain.Role, roles ...domain.Role) bool {
	return current != "" && slices.Contains(roles, current)
}

func containsPath(items []domain.MenuItem, path string) bool {
	for _, it := range items {
		if it.Path == path || containsPath(it.Children, path) {
			return true
		}
	}
	return false
}
