// Package model holds the GORM persistence models mirroring the SQL schema.
package model

import (
	"time"

	"github.com/google/uuid"
)

// AccountModel mirrors the 'accounts' table. IDs are generated in Go on create.
// pending_code and pending_code_expires_at are NULL together (enforced by a CHECK constraint).
type AccountModel struct {
	ID                   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Username             string    `gorm:"type:varchar(50);not null;uniqueIndex:uq_accounts_username"`
	Email                string    `gorm:"type:varchar(255);not null;uniqueIndex:uq_accounts_email"`
	SecretHash           string    `gorm:"type:varchar(255);not null"`
	PendingCode          *string   `gorm:"type:varchar(6)"`
	PendingCodeExpiresAt *time.Time
	CreatedAt            time.Time
	UpdatedAt            time.Time

	AccountRoles []AccountRoleModel `gorm:"foreignKey:AccountID"`
}

// TableName explicitly sets the table name for GORM.
func (AccountModel) TableName() string {
	return "accounts"
}

// AccountRoleModel mirrors the 'account_roles' join table.
// Position keeps the order in which roles were attached at registration.
type AccountRoleModel struct {
	AccountID uuid.UUID  `gorm:"type:uuid;primaryKey"`
	RoleID    uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Position  int        `gorm:"not null"`
	Role      *RoleModel `gorm:"foreignKey:RoleID"`
}

// TableName explicitly sets the table name for GORM.
func (AccountRoleModel) TableName() string {
	return "account_roles"
}
