package postgres

import (
	"context"

	"guardianmed/internal/domain/entity"
	"guardianmed/internal/domain/repository"
	"guardianmed/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// roleRepository implements repository.RoleRepository using GORM.
type roleRepository struct {
	db *gorm.DB
}

// NewRoleRepository is the constructor for roleRepository.
func NewRoleRepository(db *gorm.DB) repository.RoleRepository {
	return &roleRepository{db: db}
}

// FindByName looks up a seeded role by canonical name.
func (repo *roleRepository) FindByName(ctx context.Context, name entity.RoleName) (*entity.Role, error) {
	var roleM model.RoleModel
	if err := repo.db.WithContext(ctx).Where("name = ?", name.String()).First(&roleM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.Wrapf(repository.ErrRoleNotFound, "role %s", name)
		}

		return nil, errors.Wrap(err, "failed to find role by name")
	}

	return toRoleDomain(&roleM), nil
}

func toRoleDomain(data *model.RoleModel) *entity.Role {
	return &entity.Role{
		ID:   data.ID,
		Name: entity.RoleName(data.Name),
	}
}
