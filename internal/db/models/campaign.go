package models

import "time"

// CampaignStatus is the lifecycle state of a campaign.
type CampaignStatus string

const (
	// CampaignStatusDraft is a campaign that is not yet published.
	CampaignStatusDraft CampaignStatus = "draft"
	// CampaignStatusActive is a published campaign accepting donations.
	CampaignStatusActive CampaignStatus = "active"
	// CampaignStatusCompleted is a campaign that reached its end.
	CampaignStatusCompleted CampaignStatus = "completed"
	// CampaignStatusCancelled is a campaign withdrawn by its owner or an admin.
	CampaignStatusCancelled CampaignStatus = "cancelled"
)

// Campaign represents a fundraising campaign run by an NGO.
type Campaign struct {
	// ID is the unique identifier for the campaign.
	ID uint64 `gorm:"primaryKey"`
	// Title is the campaign headline.
	Title string `gorm:"size:255;not null"`
	// Description is the long-form campaign text.
	Description string `gorm:"type:text"`
	// OwnerID references the NGO user owning this campaign.
	OwnerID uint64 `gorm:"not null;index"`
	// Owner is the owning user account.
	Owner User `gorm:"foreignKey:OwnerID"`
	// GoalAmount is the fundraising target in minor currency units.
	GoalAmount int64 `gorm:"not null"`
	// RaisedAmount is the sum of completed donations in minor currency units.
	RaisedAmount int64 `gorm:"default:0"`
	// Currency is the ISO 4217 currency code.
	Currency string `gorm:"size:3;not null;default:'USD'"`
	// Status is the lifecycle state (draft, active, completed, cancelled).
	Status CampaignStatus `gorm:"type:varchar(20);not null;default:'draft'"`
	// EndsAt is the optional campaign deadline.
	EndsAt *time.Time
	// CreatedAt is the timestamp when the campaign was created (managed by GORM).
	CreatedAt time.Time
	// UpdatedAt is the timestamp when the campaign was last updated (managed by GORM).
	UpdatedAt time.Time
}
