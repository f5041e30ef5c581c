// Package donation records donations made towards campaigns.
package donation

import (
	"errors"

	"gorm.io/gorm"

	"github.com/givehub-admin/givehub-admin/internal/db/controller/campaign"
	"github.com/givehub-admin/givehub-admin/internal/db/models"
	"github.com/givehub-admin/givehub-admin/internal/uniuri"
)

const (
	// receiptNoLen is the length of generated receipt numbers.
	receiptNoLen = 12
)

var (
	// ErrDonationNotFound is returned when a donation is not found.
	ErrDonationNotFound = errors.New("donation not found")
	// ErrAmountInvalid is returned when the donated amount is not positive.
	ErrAmountInvalid = errors.New("donation amount must be positive")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// Get retrieves a donation by its ID.
func Get(db *gorm.DB, id uint64) (*models.Donation, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var donation models.Donation
	result := db.First(&donation, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrDonationNotFound
		}
		return nil, result.Error
	}

	return &donation, nil
}

// GetAll retrieves all donations, newest first.
func GetAll(db *gorm.DB) ([]models.Donation, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var donations []models.Donation
	result := db.Order("created_at DESC").Find(&donations)
	if result.Error != nil {
		return nil, result.Error
	}

	return donations, nil
}

// GetByCampaign retrieves all donations for a campaign.
func GetByCampaign(db *gorm.DB, campaignID uint64) ([]models.Donation, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var donations []models.Donation
	result := db.Where("campaign_id = ?", campaignID).Order("created_at DESC").Find(&donations)
	if result.Error != nil {
		return nil, result.Error
	}

	return donations, nil
}

// Create records a new donation with a generated receipt number.
func Create(db *gorm.DB, donation *models.Donation) (*models.Donation, error) {
	if db == nil {
		return nil, ErrDBNil
	}
	if donation.Amount <= 0 {
		return nil, ErrAmountInvalid
	}

	if donation.ReceiptNo == "" {
		donation.ReceiptNo = "GH-" + uniuri.NewLen(receiptNoLen)
	}
	if donation.Status == "" {
		donation.Status = models.DonationStatusPending
	}

	if err := db.Create(donation).Error; err != nil {
		return nil, err
	}

	return donation, nil
}

// Complete marks a donation as settled and adds its amount to the campaign
// total. Completing an already completed donation is a no-op.
func Complete(db *gorm.DB, id uint64) (*models.Donation, error) {
	donation, err := Get(db, id)
	if err != nil {
		return nil, err
	}

	if donation.Status == models.DonationStatusCompleted {
		return donation, nil
	}

	donation.Status = models.DonationStatusCompleted
	if err := db.Save(donation).Error; err != nil {
		return nil, err
	}

	if err := campaign.AddRaised(db, donation.CampaignID, donation.Amount); err != nil {
		return nil, err
	}

	return donation, nil
}
