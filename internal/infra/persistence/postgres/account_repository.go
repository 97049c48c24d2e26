package postgres

import (
	"context"

	"guardianmed/internal/domain/entity"
	domainerrors "guardianmed/internal/domain/errors"
	"guardianmed/internal/domain/repository"
	"guardianmed/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// accountRepository implements repository.AccountRepository using GORM.
type accountRepository struct {
	db *gorm.DB
}

// NewAccountRepository is the constructor for accountRepository.
func NewAccountRepository(db *gorm.DB) repository.AccountRepository {
	return &accountRepository{db: db}
}

// FindByUsername retrieves an account with its roles in attachment order.
func (repo *accountRepository) FindByUsername(ctx context.Context, username string) (*entity.Account, error) {
	var accountM model.AccountModel
	err := repo.db.WithContext(ctx).
		Preload("AccountRoles", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Preload("AccountRoles.Role").
		Where("username = ?", username).
		First(&accountM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrAccountNotFound
		}

		return nil, errors.Wrap(err, "failed to find account by username")
	}

	return toAccountDomain(&accountM), nil
}

// ExistsByUsername reports whether an account already uses username.
func (repo *accountRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	return repo.exists(ctx, "username = ?", username)
}

// ExistsByEmail reports whether an account already uses email.
func (repo *accountRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return repo.exists(ctx, "email = ?", email)
}

func (repo *accountRepository) exists(ctx context.Context, query string, arg any) (bool, error) {
	var count int64
	if err := repo.db.WithContext(ctx).
		Model(&model.AccountModel{}).
		Where(query, arg).
		Count(&count).Error; err != nil {
		return false, errors.Wrap(err, "failed to count accounts")
	}

	return count > 0, nil
}

// Create persists a new account and its role references.
// Callers should run it inside a transaction so both inserts commit together.
func (repo *accountRepository) Create(ctx context.Context, account *entity.Account) error {
	if account.ID == uuid.Nil {
		account.ID = uuid.New()
	}

	accountM := fromAccountDomain(account)
	if err := repo.db.WithContext(ctx).Omit(clause.Associations).Create(accountM).Error; err != nil {
		if constraint, ok := uniqueViolationConstraint(err); ok {
			switch constraint {
			case constraintAccountsEmail:
				return errors.WithStack(repository.ErrEmailTaken)
			default:
				return errors.WithStack(repository.ErrUsernameTaken)
			}
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create account")
	}

	if len(accountM.AccountRoles) > 0 {
		if err := repo.db.WithContext(ctx).Omit(clause.Associations).Create(&accountM.AccountRoles).Error; err != nil {
			if isForeignKeyConstraintViolation(err) {
				return errors.Wrap(repository.ErrRoleNotFound, "role reference missing")
			}

			return domainerrors.NewDatabaseExecuteError(err, "failed to attach account roles")
		}
	}

	account.CreatedAt = accountM.CreatedAt
	account.UpdatedAt = accountM.UpdatedAt

	return nil
}

// SetPendingCode overwrites the pending challenge in one single-row UPDATE.
func (repo *accountRepository) SetPendingCode(ctx context.Context, accountID uuid.UUID, pending entity.PendingCode) error {
	result := repo.db.WithContext(ctx).
		Model(&model.AccountModel{}).
		Where("id = ?", accountID).
		Updates(map[string]any{
			"pending_code":            pending.Code,
			"pending_code_expires_at": pending.ExpiresAt.UTC(),
		})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to set pending code")
	}
	if result.RowsAffected == 0 {
		return errors.WithStack(repository.ErrAccountNotFound)
	}

	return nil
}

// ClearPendingCode clears the pending pair only while it still holds expectedCode.
func (repo *accountRepository) ClearPendingCode(ctx context.Context, accountID uuid.UUID, expectedCode string) (bool, error) {
	result := repo.db.WithContext(ctx).
		Model(&model.AccountModel{}).
		Where("id = ? AND pending_code = ?", accountID, expectedCode).
		Updates(map[string]any{
			"pending_code":            nil,
			"pending_code_expires_at": nil,
		})
	if result.Error != nil {
		return false, domainerrors.NewDatabaseExecuteError(result.Error, "failed to clear pending code")
	}

	return result.RowsAffected == 1, nil
}

// --- Mapper Functions ---

func toAccountDomain(data *model.AccountModel) *entity.Account {
	if data == nil {
		return nil
	}

	account := &entity.Account{
		ID:         data.ID,
		Username:   data.Username,
		Email:      data.Email,
		SecretHash: data.SecretHash,
		Roles:      make(entity.Roles, 0, len(data.AccountRoles)),
		CreatedAt:  data.CreatedAt,
		UpdatedAt:  data.UpdatedAt,
	}

	for _, ar := range data.AccountRoles {
		if ar.Role == nil {
			continue
		}
		account.Roles = append(account.Roles, toRoleDomain(ar.Role))
	}

	// A half-set pair is treated as no challenge at all.
	if data.PendingCode != nil && data.PendingCodeExpiresAt != nil {
		account.Pending = &entity.PendingCode{
			Code:      *data.PendingCode,
			ExpiresAt: data.PendingCodeExpiresAt.UTC(),
		}
	}

	return account
}

func fromAccountDomain(data *entity.Account) *model.AccountModel {
	if data == nil {
		return nil
	}

	accountM := &model.AccountModel{
		ID:           data.ID,
		Username:     data.Username,
		Email:        data.Email,
		SecretHash:   data.SecretHash,
		AccountRoles: make([]model.AccountRoleModel, 0, len(data.Roles)),
	}

	for i, role := range data.Roles {
		accountM.AccountRoles = append(accountM.AccountRoles, model.AccountRoleModel{
			AccountID: data.ID,
			RoleID:    role.ID,
			Position:  i,
		})
	}

	if data.Pending != nil {
		code := data.Pending.Code
		expiresAt := data.Pending.ExpiresAt.UTC()
		accountM.PendingCode = &code
		accountM.PendingCodeExpiresAt = &expiresAt
	}

	return accountM
}
