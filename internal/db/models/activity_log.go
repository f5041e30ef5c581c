package models

import "time"

// ActivityLog is an audit record of an administrative action.
// Records are append-only; nothing in the application updates or deletes them.
type ActivityLog struct {
	// ID is the unique identifier for the record.
	ID uint64 `gorm:"primaryKey"`
	// CorrelationID groups records belonging to one logical operation.
	CorrelationID string `gorm:"size:36;index"`
	// ActorID references the acting user, nil for system actions.
	ActorID *uint64 `gorm:"index"`
	// Action is the action kind in resource.action format (e.g. "settings.upsert").
	Action string `gorm:"size:100;not null"`
	// Description is a human-readable summary of what happened.
	Description string `gorm:"size:500"`
	// Metadata carries structured details (affected category, keys, ids).
	Metadata JSONMap `gorm:"type:json"`
	// CreatedAt is the timestamp when the record was written (managed by GORM).
	CreatedAt time.Time
}

// TableName specifies the database table name for the ActivityLog model.
func (ActivityLog) TableName() string {
	return "activity_logs"
}
