package models

import "time"

// DonationStatus is the settlement state of a donation.
type DonationStatus string

const (
	// DonationStatusPending is a donation awaiting payment confirmation.
	DonationStatusPending DonationStatus = "pending"
	// DonationStatusCompleted is a settled donation.
	DonationStatusCompleted DonationStatus = "completed"
	// DonationStatusRefunded is a donation returned to the donor.
	DonationStatusRefunded DonationStatus = "refunded"
)

// Donation represents a single donation made towards a campaign.
type Donation struct {
	// ID is the unique identifier for the donation.
	ID uint64 `gorm:"primaryKey"`
	// ReceiptNo is the human-readable receipt number handed to the donor.
	ReceiptNo string `gorm:"uniqueIndex;size:32;not null"`
	// DonorID references the donating user.
	DonorID uint64 `gorm:"not null;index"`
	// Donor is the donating user account.
	Donor User `gorm:"foreignKey:DonorID"`
	// CampaignID references the target campaign.
	CampaignID uint64 `gorm:"not null;index"`
	// Campaign is the target campaign.
	Campaign Campaign `gorm:"foreignKey:CampaignID"`
	// Amount is the donated amount in minor currency units.
	Amount int64 `gorm:"not null"`
	// Currency is the ISO 4217 currency code.
	Currency string `gorm:"size:3;not null;default:'USD'"`
	// Status is the settlement state (pending, completed, refunded).
	Status DonationStatus `gorm:"type:varchar(20);not null;default:'pending'"`
	// Message is an optional public message from the donor.
	Message string `gorm:"size:500"`
	// CreatedAt is the timestamp when the donation was recorded (managed by GORM).
	CreatedAt time.Time
	// UpdatedAt is the timestamp when the donation was last updated (managed by GORM).
	UpdatedAt time.Time
}
