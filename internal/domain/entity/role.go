// Package entity contains the core business objects of the project.
package entity

import (
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// RoleName is the canonical name of a role. The set of names is closed.
type RoleName string

const (
	// RoleUser is the default role attached when none is requested.
	RoleUser RoleName = "ROLE_USER"
	// RoleAdmin grants administrative access.
	RoleAdmin RoleName = "ROLE_ADMIN"
	// RoleSuperAdmin grants full access.
	RoleSuperAdmin RoleName = "ROLE_SUPER_ADMIN"
)

// ErrUnknownRole is returned when a requested role name has no canonical counterpart.
var ErrUnknownRole = errors.New("unknown role")

// roleAliases maps lower-cased request spellings to canonical role names.
var roleAliases = map[string]RoleName{
	"user":             RoleUser,
	"role_user":        RoleUser,
	"admin":            RoleAdmin,
	"role_admin":       RoleAdmin,
	"superadmin":       RoleSuperAdmin,
	"super_admin":      RoleSuperAdmin,
	"role_super_admin": RoleSuperAdmin,
}

// String returns the string representation of the RoleName.
func (r RoleName) String() string {
	return string(r)
}

// IsValid checks if the RoleName is one of the canonical names.
func (r RoleName) IsValid() bool {
	switch r {
	case RoleUser, RoleAdmin, RoleSuperAdmin:
		return true
	default:
		return false
	}
}

// ResolveRoleName maps a requested role name to its canonical form.
// Matching is case-insensitive and ignores surrounding whitespace.
func ResolveRoleName(raw string) (RoleName, bool) {
	name, ok := roleAliases[strings.ToLower(strings.TrimSpace(raw))]

	return name, ok
}

// ResolveRoleNames resolves a requested list of role names into a set.
// An empty request resolves to RoleUser. Duplicates collapse, keeping first-seen order.
// Any unresolvable name fails the whole request.
func ResolveRoleNames(requested []string) ([]RoleName, error) {
	if len(requested) == 0 {
		return []RoleName{RoleUser}, nil
	}

	resolved := make([]RoleName, 0, len(requested))
	seen := make(map[RoleName]struct{}, len(requested))
	for _, raw := range requested {
		name, ok := ResolveRoleName(raw)
		if !ok {
			return nil, errors.Wrapf(ErrUnknownRole, "role %q", raw)
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		resolved = append(resolved, name)
	}

	return resolved, nil
}

// Role is a role reference as stored alongside accounts.
type Role struct {
	ID   uuid.UUID
	Name RoleName
}

// Roles is an ordered set of roles.
type Roles []*Role

// Names returns the role names as strings, preserving attachment order.
func (rs Roles) Names() []string {
	result := make([]string, 0, len(rs))
	for _, r := range rs {
		result = append(result, r.Name.String())
	}

	return result
}
