package model

import "github.com/google/uuid"

// RoleModel mirrors the 'roles' reference table seeded by migrations.
type RoleModel struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name string    `gorm:"type:varchar(32);not null;uniqueIndex"`
}

// TableName explicitly sets the table name for GORM.
func (RoleModel) TableName() string {
	return "roles"
}
