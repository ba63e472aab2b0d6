package users

import (
	"fmt"
	"strings"
)

// Role gates access to pages.
type Role string

// Known roles, in increasing order of privilege.
const (
	RoleUser    Role = "USER"
	RoleClient  Role = "CLIENT"
	RoleManager Role = "MANAGER"
	RoleAdmin   Role = "ADMIN"
)

// DefaultRole is assigned to every newly created user.
const DefaultRole = RoleUser

// Roles returns all known roles.
func Roles() []Role {
	return []Role{RoleUser, RoleClient, RoleManager, RoleAdmin}
}

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleClient, RoleManager, RoleAdmin:
		return true
	}
	return false
}

func (r Role) String() string { return string(r) }

// ParseRole parses a role name case-insensitively.
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToUpper(strings.TrimSpace(s)))
	if !r.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidRole, s)
	}
	return r, nil
}
