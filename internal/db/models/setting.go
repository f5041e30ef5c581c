// Package models contains database model definitions.
package models

import "time"

// Setting represents one configuration category stored in the database.
// Each category holds an open-ended key/value bag; at most one row exists
// per category (enforced by the unique index).
type Setting struct {
	ID uint64 `gorm:"primaryKey"`
	// Category is the unique name of the configuration domain (e.g. "branding").
	Category string `gorm:"unique;size:100;not null"`
	// Values is the heterogeneous key/value bag for this category.
	Values JSONMap `gorm:"type:json"`
	// UpdatedBy references the administrator who last wrote this category.
	UpdatedBy *uint64
	// LastModified is set on every write.
	LastModified time.Time
	// IsActive is persisted for schema parity; no read path filters on it.
	IsActive bool `gorm:"default:true"`
}
