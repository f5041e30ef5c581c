// Package audit records administrative actions to the activity log.
// The Recorder is an injected collaborator: a failing recorder must never
// abort the primary operation, so implementations log and swallow errors.
package audit

import (
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/givehub-admin/givehub-admin/internal/db/models"
)

// Recorder writes audit records for administrative actions.
type Recorder interface {
	// Record writes one audit entry. Implementations must not fail the
	// caller: errors are handled internally (log-and-continue).
	Record(actorID *uint64, action, description string, metadata models.JSONMap)
}

// DBRecorder persists audit records to the activity_logs table.
type DBRecorder struct {
	db *gorm.DB
}

// NewDBRecorder creates a Recorder backed by the given database.
func NewDBRecorder(db *gorm.DB) *DBRecorder {
	return &DBRecorder{db: db}
}

// Record writes one activity log row. Failures are logged and swallowed so
// the primary operation is never aborted by a broken audit trail.
func (r *DBRecorder) Record(actorID *uint64, action, description string, metadata models.JSONMap) {
	if r.db == nil {
		log.Error().Str("action", action).Msg("audit recorder has no database, dropping record")
		return
	}

	entry := models.ActivityLog{
		CorrelationID: uuid.NewString(),
		ActorID:       actorID,
		Action:        action,
		Description:   description,
		Metadata:      metadata,
	}

	if err := r.db.Create(&entry).Error; err != nil {
		log.Error().Err(err).Str("action", action).Msg("failed to write audit record")
	}
}

// NopRecorder discards all records. Used in tests and as a safe default.
type NopRecorder struct{}

// Record implements Recorder by doing nothing.
func (NopRecorder) Record(_ *uint64, _, _ string, _ models.JSONMap) {}
