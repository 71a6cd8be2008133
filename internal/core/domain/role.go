package domain

import (
	"fmt"
	"slices"
)

// Role is one of the closed set of console roles.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
	RoleUser    Role = "user"
)

// DefaultRole is assigned to self-registered identities.
const DefaultRole = RoleUser

var roles = []Role{RoleAdmin, RoleManager, RoleUser}

// Roles returns every known role in display order.
func Roles() []Role {
	return slices.Clone(roles)
}

// Valid reports whether r belongs to the closed role set.
func (r Role) Valid() bool {
	return slices.Contains(roles, r)
}

func (r Role) String() string { return string(r) }

// ParseRole converts s into a Role, rejecting anything outside the closed set.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.Valid() {
		return "", fmt.Errorf("parse role %q: %w", s, ErrUnknownRole)
	}
	return r, nil
}
