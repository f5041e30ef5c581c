// Package campaign provides CRUD operations for fundraising campaigns.
package campaign

import (
	"errors"

	"gorm.io/gorm"

	"github.com/givehub-admin/givehub-admin/internal/db/models"
)

var (
	// ErrCampaignNotFound is returned when a campaign is not found.
	ErrCampaignNotFound = errors.New("campaign not found")
	// ErrTitleEmpty is returned when attempting to create a campaign without a title.
	ErrTitleEmpty = errors.New("campaign title cannot be empty")
	// ErrGoalInvalid is returned when the goal amount is not positive.
	ErrGoalInvalid = errors.New("campaign goal must be positive")
	// ErrStatusInvalid is returned for an unknown campaign status.
	ErrStatusInvalid = errors.New("invalid campaign status")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

func validStatus(s models.CampaignStatus) bool {
	switch s {
	case models.CampaignStatusDraft, models.CampaignStatusActive,
		models.CampaignStatusCompleted, models.CampaignStatusCancelled:
		return true
	default:
		return false
	}
}

// Get retrieves a campaign by its ID.
func Get(db *gorm.DB, id uint64) (*models.Campaign, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var campaign models.Campaign
	result := db.First(&campaign, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrCampaignNotFound
		}
		return nil, result.Error
	}

	return &campaign, nil
}

// GetAll retrieves all campaigns, newest first.
func GetAll(db *gorm.DB) ([]models.Campaign, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var campaigns []models.Campaign
	result := db.Order("created_at DESC").Find(&campaigns)
	if result.Error != nil {
		return nil, result.Error
	}

	return campaigns, nil
}

// GetByOwner retrieves all campaigns owned by a user.
func GetByOwner(db *gorm.DB, ownerID uint64) ([]models.Campaign, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var campaigns []models.Campaign
	result := db.Where("owner_id = ?", ownerID).Order("created_at DESC").Find(&campaigns)
	if result.Error != nil {
		return nil, result.Error
	}

	return campaigns, nil
}

// Create creates a new campaign in draft state.
func Create(db *gorm.DB, campaign *models.Campaign) (*models.Campaign, error) {
	if db == nil {
		return nil, ErrDBNil
	}
	if campaign.Title == "" {
		return nil, ErrTitleEmpty
	}
	if campaign.GoalAmount <= 0 {
		return nil, ErrGoalInvalid
	}

	if campaign.Status == "" {
		campaign.Status = models.CampaignStatusDraft
	}
	if !validStatus(campaign.Status) {
		return nil, ErrStatusInvalid
	}

	if err := db.Create(campaign).Error; err != nil {
		return nil, err
	}

	return campaign, nil
}

// Update updates the editable fields of an existing campaign.
func Update(db *gorm.DB, id uint64, title, description string, goalAmount int64) (*models.Campaign, error) {
	if db == nil {
		return nil, ErrDBNil
	}
	if title == "" {
		return nil, ErrTitleEmpty
	}
	if goalAmount <= 0 {
		return nil, ErrGoalInvalid
	}

	campaign, err := Get(db, id)
	if err != nil {
		return nil, err
	}

	campaign.Title = title
	campaign.Description = description
	campaign.GoalAmount = goalAmount

	if err := db.Save(campaign).Error; err != nil {
		return nil, err
	}

	return campaign, nil
}

// SetStatus transitions a campaign to the given lifecycle state.
func SetStatus(db *gorm.DB, id uint64, status models.CampaignStatus) (*models.Campaign, error) {
	if db == nil {
		return nil, ErrDBNil
	}
	if !validStatus(status) {
		return nil, ErrStatusInvalid
	}

	campaign, err := Get(db, id)
	if err != nil {
		return nil, err
	}

	campaign.Status = status
	if err := db.Save(campaign).Error; err != nil {
		return nil, err
	}

	return campaign, nil
}

// AddRaised atomically adds a settled donation amount to the campaign total.
func AddRaised(db *gorm.DB, id uint64, amount int64) error {
	if db == nil {
		return ErrDBNil
	}

	result := db.Model(&models.Campaign{}).
		Where("id = ?", id).
		Update("raised_amount", gorm.Expr("raised_amount + ?", amount))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCampaignNotFound
	}

	return nil
}
