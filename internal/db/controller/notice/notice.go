// Package notice manages broadcast and targeted messages to user populations
// with per-user read tracking.
package notice

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/givehub-admin/givehub-admin/internal/db/models"
)

var (
	// ErrNoticeNotFound is returned when a notice is not found.
	ErrNoticeNotFound = errors.New("notice not found")
	// ErrTitleEmpty is returned when attempting to create a notice without a title.
	ErrTitleEmpty = errors.New("notice title cannot be empty")
	// ErrAudienceInvalid is returned for an unknown audience tag.
	ErrAudienceInvalid = errors.New("invalid notice audience")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

func validAudience(a models.NoticeAudience) bool {
	switch a {
	case models.NoticeAudienceAll, models.NoticeAudienceDonors,
		models.NoticeAudienceNGOs, models.NoticeAudienceCompanies:
		return true
	default:
		return false
	}
}

// audienceUserTypes maps an audience tag to the user types it targets.
// An empty slice means every user type.
func audienceUserTypes(a models.NoticeAudience) []models.UserType {
	switch a {
	case models.NoticeAudienceDonors:
		return []models.UserType{models.UserTypeDonor}
	case models.NoticeAudienceNGOs:
		return []models.UserType{models.UserTypeNGO}
	case models.NoticeAudienceCompanies:
		return []models.UserType{models.UserTypeCompany}
	default:
		return nil
	}
}

// Get retrieves a notice by its ID.
func Get(db *gorm.DB, id uint64) (*models.Notice, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var notice models.Notice
	result := db.First(&notice, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNoticeNotFound
		}
		return nil, result.Error
	}

	return &notice, nil
}

// GetAll retrieves all notices, newest first.
func GetAll(db *gorm.DB) ([]models.Notice, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var notices []models.Notice
	result := db.Order("created_at DESC").Find(&notices)
	if result.Error != nil {
		return nil, result.Error
	}

	return notices, nil
}

// Create publishes a new notice.
func Create(db *gorm.DB, notice *models.Notice) (*models.Notice, error) {
	if db == nil {
		return nil, ErrDBNil
	}
	if notice.Title == "" {
		return nil, ErrTitleEmpty
	}

	if notice.Audience == "" {
		notice.Audience = models.NoticeAudienceAll
	}
	if !validAudience(notice.Audience) {
		return nil, ErrAudienceInvalid
	}

	if err := db.Create(notice).Error; err != nil {
		return nil, err
	}

	return notice, nil
}

// Update replaces the title, body and audience of an existing notice.
func Update(db *gorm.DB, id uint64, title, body string, audience models.NoticeAudience) (*models.Notice, error) {
	if db == nil {
		return nil, ErrDBNil
	}
	if title == "" {
		return nil, ErrTitleEmpty
	}
	if !validAudience(audience) {
		return nil, ErrAudienceInvalid
	}

	notice, err := Get(db, id)
	if err != nil {
		return nil, err
	}

	notice.Title = title
	notice.Body = body
	notice.Audience = audience

	if err := db.Save(notice).Error; err != nil {
		return nil, err
	}

	return notice, nil
}

// Delete removes a notice and its read markers.
func Delete(db *gorm.DB, id uint64) error {
	if db == nil {
		return ErrDBNil
	}

	result := db.Delete(&models.Notice{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNoticeNotFound
	}

	db.Where("notice_id = ?", id).Delete(&models.NoticeRead{})

	return nil
}

// Targets returns the IDs of the active users a notice addresses,
// deduplicated.
func Targets(db *gorm.DB, notice *models.Notice) ([]uint64, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	query := db.Model(&models.User{}).Where("active = ?", true)

	if types := audienceUserTypes(notice.Audience); types != nil {
		query = query.Where("user_type IN ?", types)
	}

	var ids []uint64
	if err := query.Distinct().Pluck("id", &ids).Error; err != nil {
		return nil, err
	}

	return ids, nil
}

// MarkRead records that a user has read a notice. Repeated calls for the
// same (notice, user) pair are deduplicated by the composite primary key.
func MarkRead(db *gorm.DB, noticeID, userID uint64) error {
	if db == nil {
		return ErrDBNil
	}

	if _, err := Get(db, noticeID); err != nil {
		return err
	}

	read := models.NoticeRead{
		NoticeID: noticeID,
		UserID:   userID,
		ReadAt:   time.Now(),
	}

	// first read wins, later marks keep the original timestamp
	err := db.Where("notice_id = ? AND user_id = ?", noticeID, userID).
		FirstOrCreate(&read).Error
	if err != nil {
		return err
	}

	return nil
}

// ReadCount returns how many users have read a notice.
func ReadCount(db *gorm.DB, noticeID uint64) (int64, error) {
	if db == nil {
		return 0, ErrDBNil
	}

	var count int64
	err := db.Model(&models.NoticeRead{}).
		Where("notice_id = ?", noticeID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}
