// Package sharelink maps durable opaque tokens to shareable resources
// (profiles, campaigns, portfolios) and tracks their public usage.
// Creation is idempotent per (resource type, resource id): the composite
// unique index is the correctness mechanism, a duplicate-key insert means a
// concurrent request won the race and the existing row is reused.
package sharelink

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/givehub-admin/givehub-admin/internal/db/models"
)

const (
	// shareIDBytes is the token entropy: 16 random bytes, hex-encoded to 32 chars.
	shareIDBytes = 16

	pairQueryPattern    = "resource_type = ? AND resource_id = ?"
	shareIDQueryPattern = "share_id = ?"
)

var (
	// ErrLinkNotFound is returned when no resolvable share link exists.
	// Inactive and expired links read as not found as well, so the public
	// caller can not probe for deactivated links.
	ErrLinkNotFound = errors.New("share link not found")
	// ErrResourceTypeInvalid is returned for an unknown resource type tag.
	ErrResourceTypeInvalid = errors.New("invalid share resource type")
	// ErrResourceIDEmpty is returned when the resource id is empty.
	ErrResourceIDEmpty = errors.New("share resource id cannot be empty")
	// ErrShareIDEmpty is returned when the share id is empty.
	ErrShareIDEmpty = errors.New("share id cannot be empty")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// EmptyDesign returns the design payload reported for resources without a
// share link. Absence of a link is a normal state for that read path.
func EmptyDesign() models.JSONMap {
	return models.JSONMap{"html": "", "css": ""}
}

// GenerateShareID returns a fresh opaque token: 16 random bytes, hex-encoded.
func GenerateShareID() (string, error) {
	b := make([]byte, shareIDBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}

	return hex.EncodeToString(b), nil
}

// GetOrCreate looks up the link for a (resource type, resource id) pair and
// returns it unchanged when present. Otherwise a new link is persisted with a
// fresh share id, an empty design payload and a zero view count. The boolean
// reports whether this call created the link.
// Safe under concurrent calls for the same pair: at most one row survives.
func GetOrCreate(db *gorm.DB, resourceType models.ResourceType, resourceID string, actorID *uint64) (*models.ShareLink, bool, error) {
	if db == nil {
		return nil, false, ErrDBNil
	}
	if !resourceType.Valid() {
		return nil, false, ErrResourceTypeInvalid
	}
	if resourceID == "" {
		return nil, false, ErrResourceIDEmpty
	}

	var link models.ShareLink
	err := db.Where(pairQueryPattern, resourceType, resourceID).First(&link).Error
	if err == nil {
		return &link, false, nil
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	shareID, err := GenerateShareID()
	if err != nil {
		return nil, false, err
	}

	link = models.ShareLink{
		ShareID:      shareID,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		CustomDesign: models.JSONMap{},
		IsActive:     true,
		ViewCount:    0,
		CreatedBy:    actorID,
	}

	if createErr := db.Create(&link).Error; createErr != nil {
		// unique index violation: a concurrent request created the link
		// first, reuse the existing row
		var existing models.ShareLink
		if db.Where(pairQueryPattern, resourceType, resourceID).First(&existing).Error != nil {
			return nil, false, createErr
		}

		return &existing, false, nil
	}

	return &link, true, nil
}

// Resolve looks up an active, unexpired link by its opaque token, increments
// its view counter and stamps the view time. The returned link carries the
// post-increment count.
func Resolve(db *gorm.DB, shareID string) (*models.ShareLink, error) {
	if db == nil {
		return nil, ErrDBNil
	}
	if shareID == "" {
		return nil, ErrShareIDEmpty
	}

	var link models.ShareLink
	err := db.Where(shareIDQueryPattern+" AND is_active = ?", shareID, true).First(&link).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLinkNotFound
		}
		return nil, err
	}

	now := time.Now()
	if link.Expired(now) {
		return nil, ErrLinkNotFound
	}

	// increment in the database so concurrent resolutions do not lose counts
	err = db.Model(&models.ShareLink{}).
		Where("id = ?", link.ID).
		Updates(map[string]any{
			"view_count":  gorm.Expr("view_count + ?", 1),
			"last_viewed": now,
		}).Error
	if err != nil {
		return nil, err
	}

	link.ViewCount++
	link.LastViewed = &now

	return &link, nil
}

// SetCustomDesign replaces the design payload for the link of a resource
// pair. A missing link is created first (same idempotent path as
// GetOrCreate). The payload replaces the previous design entirely.
func SetCustomDesign(db *gorm.DB, resourceType models.ResourceType, resourceID string, payload models.JSONMap, actorID *uint64) (*models.ShareLink, error) {
	link, _, err := GetOrCreate(db, resourceType, resourceID, actorID)
	if err != nil {
		return nil, err
	}

	if payload == nil {
		payload = models.JSONMap{}
	}

	link.CustomDesign = payload
	if err := db.Model(link).Update("custom_design", payload).Error; err != nil {
		return nil, err
	}

	return link, nil
}

// SetCustomDesignByShareID replaces the design payload for an existing link
// located by its opaque token.
func SetCustomDesignByShareID(db *gorm.DB, shareID string, payload models.JSONMap) (*models.ShareLink, error) {
	if db == nil {
		return nil, ErrDBNil
	}
	if shareID == "" {
		return nil, ErrShareIDEmpty
	}

	var link models.ShareLink
	err := db.Where(shareIDQueryPattern, shareID).First(&link).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLinkNotFound
		}
		return nil, err
	}

	if payload == nil {
		payload = models.JSONMap{}
	}

	link.CustomDesign = payload
	if err := db.Model(&link).Update("custom_design", payload).Error; err != nil {
		return nil, err
	}

	return &link, nil
}

// GetCustomDesign returns the design payload for a resource pair.
// A resource without a link yields the empty design and a nil link, not an
// error.
func GetCustomDesign(db *gorm.DB, resourceType models.ResourceType, resourceID string) (models.JSONMap, *models.ShareLink, error) {
	if db == nil {
		return nil, nil, ErrDBNil
	}
	if !resourceType.Valid() {
		return nil, nil, ErrResourceTypeInvalid
	}
	if resourceID == "" {
		return nil, nil, ErrResourceIDEmpty
	}

	var link models.ShareLink
	err := db.Where(pairQueryPattern, resourceType, resourceID).First(&link).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return EmptyDesign(), nil, nil
		}
		return nil, nil, err
	}

	design := link.CustomDesign
	if len(design) == 0 {
		design = EmptyDesign()
	}

	return design, &link, nil
}

// Deactivate turns off public resolution for a link.
// The row is kept so the token and its view history survive.
func Deactivate(db *gorm.DB, shareID string) error {
	return setActive(db, shareID, false)
}

// Activate re-enables public resolution for a link.
func Activate(db *gorm.DB, shareID string) error {
	return setActive(db, shareID, true)
}

func setActive(db *gorm.DB, shareID string, active bool) error {
	if db == nil {
		return ErrDBNil
	}
	if shareID == "" {
		return ErrShareIDEmpty
	}

	result := db.Model(&models.ShareLink{}).
		Where(shareIDQueryPattern, shareID).
		Update("is_active", active)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrLinkNotFound
	}

	return nil
}
