package models

import "time"

// Permission is one granular access right, named in resource.action form
// (for example "campaign.create"). Permissions belong to roles.
type Permission struct {
	// ID is the unique identifier for the permission.
	ID uint `gorm:"primaryKey"`
	// Name is the unique resource.action identifier.
	Name string `gorm:"unique;size:100;not null"`
	// Resource is the part before the dot (e.g. "campaign", "admin").
	Resource string `gorm:"size:100;not null"`
	// Action is the part after the dot (e.g. "create", "list").
	Action string `gorm:"size:50;not null"`
	// Description explains what the permission grants.
	Description string `gorm:"size:255"`
	// CreatedAt is the timestamp when the permission was created (managed by GORM).
	CreatedAt time.Time
	// UpdatedAt is the timestamp when the permission was last updated (managed by GORM).
	UpdatedAt time.Time
}

// TableName overrides GORM's default table naming.
func (Permission) TableName() string {
	return "permissions"
}
