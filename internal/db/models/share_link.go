package models

import "time"

// ResourceType discriminates what a share link points at.
type ResourceType string

const (
	// ResourceTypeProfile references a user profile.
	ResourceTypeProfile ResourceType = "profile"
	// ResourceTypeCampaign references a donation campaign.
	ResourceTypeCampaign ResourceType = "campaign"
	// ResourceTypePortfolio references an NGO portfolio page.
	ResourceTypePortfolio ResourceType = "portfolio"
)

// Valid reports whether t is one of the known resource types.
func (t ResourceType) Valid() bool {
	switch t {
	case ResourceTypeProfile, ResourceTypeCampaign, ResourceTypePortfolio:
		return true
	default:
		return false
	}
}

// ShareLink maps a durable opaque token to a (resource type, resource id)
// pair for unauthenticated public resolution.
// The composite unique index on (resource_type, resource_id) is the
// concurrency-safety mechanism for idempotent creation: concurrent inserts
// for the same pair collide at the storage layer, not in application logic.
type ShareLink struct {
	ID uint64 `gorm:"primaryKey"`
	// ShareID is the opaque token, 16 random bytes hex-encoded.
	ShareID string `gorm:"uniqueIndex;size:64;not null"`
	// ResourceType is one of profile, campaign, portfolio.
	ResourceType ResourceType `gorm:"type:varchar(20);not null;uniqueIndex:idx_resource"`
	// ResourceID identifies the referenced resource; interpretation is up to the reader.
	ResourceID string `gorm:"size:100;not null;uniqueIndex:idx_resource"`
	// CustomDesign is an opaque payload (html/css/theming keys).
	// Persisted as {} when empty, never omitted.
	CustomDesign JSONMap `gorm:"type:json"`
	// IsActive gates public resolution.
	IsActive bool `gorm:"default:true"`
	// ViewCount is incremented exactly once per successful public resolution.
	ViewCount uint64 `gorm:"default:0"`
	// LastViewed is the timestamp of the most recent successful resolution.
	LastViewed *time.Time
	// ExpiresAt, when set, makes the link resolve as not found after this time.
	ExpiresAt *time.Time
	// CreatedBy references the administrator who created the link.
	CreatedBy *uint64
	// CreatedAt is the timestamp when the link was created (managed by GORM).
	CreatedAt time.Time
}

// TableName specifies the database table name for the ShareLink model.
func (ShareLink) TableName() string {
	return "share_links"
}

// Expired reports whether the link has an expiry in the past.
func (l *ShareLink) Expired(now time.Time) bool {
	return l.ExpiresAt != nil && now.After(*l.ExpiresAt)
}
