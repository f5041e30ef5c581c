package models

import "time"

// Role bundles a set of permissions that can be assigned to accounts. The
// seeded "admin" role is a system role and can not be deleted.
type Role struct {
	// ID is the unique identifier for the role.
	ID uint `gorm:"primaryKey"`
	// Name is the unique role name.
	Name string `gorm:"unique;size:100;not null"`
	// Description is a human-readable summary of what the role is for.
	Description string `gorm:"size:255"`
	// IsSystem marks roles created by the seeder that must not be removed.
	IsSystem bool `gorm:"default:false"`
	// CreatedAt is the timestamp when the role was created (managed by GORM).
	CreatedAt time.Time
	// UpdatedAt is the timestamp when the role was last updated (managed by GORM).
	UpdatedAt time.Time
}

// TableName overrides GORM's default table naming.
func (Role) TableName() string {
	return "roles"
}
