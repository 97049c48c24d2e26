package repository

import (
	"context"

	"guardianmed/internal/domain/entity"
	"guardianmed/internal/errors"
)

// ErrRoleNotFound is returned when a canonical role is missing from reference data.
var ErrRoleNotFound = errors.New("role not found")

// RoleRepository reads role reference data. Roles are seeded out of band.
type RoleRepository interface {
	// FindByName returns the role entity for a canonical name.
	FindByName(ctx context.Context, name entity.RoleName) (*entity.Role, error)
}
