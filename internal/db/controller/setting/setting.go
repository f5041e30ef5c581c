// Package setting persists and retrieves named configuration categories.
// Each category is an open-ended key/value bag; writes replace the whole bag
// (full overwrite, not a merge). A built-in defaults table covers bootstrap
// and reset-to-default.
package setting

import (
	"errors"
	"sort"
	"time"

	"gorm.io/gorm"

	"github.com/givehub-admin/givehub-admin/internal/db/models"
)

const (
	categoryQueryPattern = "category = ?"
)

var (
	// ErrCategoryNotFound is returned when a settings category is not found.
	ErrCategoryNotFound = errors.New("settings category not found")
	// ErrCategoryEmpty is returned when attempting to read/write a setting with an empty category.
	ErrCategoryEmpty = errors.New("settings category cannot be empty")
	// ErrValuesInvalid is returned when the values payload is missing or not an object.
	ErrValuesInvalid = errors.New("settings values must be a non-nil object")
	// ErrNoDefaults is returned when resetting a category that has no built-in defaults entry.
	ErrNoDefaults = errors.New("no built-in defaults for category")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// Get retrieves one category's value bag.
func Get(db *gorm.DB, category string) (models.JSONMap, error) {
	if db == nil {
		return nil, ErrDBNil
	}
	if category == "" {
		return nil, ErrCategoryEmpty
	}

	var setting models.Setting
	result := db.Where(categoryQueryPattern, category).First(&setting)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, result.Error
	}

	return setting.Values, nil
}

// GetAll retrieves every category's value bag, keyed by category name.
func GetAll(db *gorm.DB) (map[string]models.JSONMap, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var settings []models.Setting
	result := db.Find(&settings)
	if result.Error != nil {
		return nil, result.Error
	}

	out := make(map[string]models.JSONMap, len(settings))
	for _, s := range settings {
		out[s.Category] = s.Values
	}

	return out, nil
}

// Upsert replaces the entire value bag for a category (full overwrite, not a
// deep merge) and creates the row if absent. The acting administrator and the
// write time are stamped on the row. The resulting bag is returned.
func Upsert(db *gorm.DB, category string, values models.JSONMap, actorID *uint64) (models.JSONMap, error) {
	if db == nil {
		return nil, ErrDBNil
	}
	if category == "" {
		return nil, ErrCategoryEmpty
	}
	if values == nil {
		return nil, ErrValuesInvalid
	}

	var setting models.Setting
	result := db.Where(categoryQueryPattern, category).First(&setting)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		setting = models.Setting{
			Category:     category,
			Values:       values,
			UpdatedBy:    actorID,
			LastModified: time.Now(),
			IsActive:     true,
		}

		if err := db.Create(&setting).Error; err != nil {
			// a concurrent writer created the row first, fall through to update
			var existing models.Setting
			if db.Where(categoryQueryPattern, category).First(&existing).Error != nil {
				return nil, err
			}
			setting = existing
		} else {
			return setting.Values, nil
		}
	} else if result.Error != nil {
		return nil, result.Error
	}

	setting.Values = values
	setting.UpdatedBy = actorID
	setting.LastModified = time.Now()

	if err := db.Save(&setting).Error; err != nil {
		return nil, err
	}

	return setting.Values, nil
}

// BulkUpsert applies Upsert independently for each entry. There is no
// cross-category transaction: valid entries are applied even when other
// entries fail. Every failed category is reported in the returned map;
// the updated slice lists the categories that were written, sorted.
func BulkUpsert(db *gorm.DB, entries map[string]models.JSONMap, actorID *uint64) ([]string, map[string]error) {
	failed := make(map[string]error)

	if db == nil {
		failed[""] = ErrDBNil
		return nil, failed
	}

	updated := make([]string, 0, len(entries))

	for category, values := range entries {
		if _, err := Upsert(db, category, values, actorID); err != nil {
			failed[category] = err
			continue
		}

		updated = append(updated, category)
	}

	sort.Strings(updated)

	if len(failed) == 0 {
		return updated, nil
	}

	return updated, failed
}

// ResetToDefault overwrites a category's value bag with its built-in default.
// A category without a defaults table entry is rejected, even when a row with
// custom keys exists for it.
func ResetToDefault(db *gorm.DB, category string, actorID *uint64) (models.JSONMap, error) {
	if db == nil {
		return nil, ErrDBNil
	}
	if category == "" {
		return nil, ErrCategoryEmpty
	}

	defaults, ok := Defaults()[category]
	if !ok {
		return nil, ErrNoDefaults
	}

	return Upsert(db, category, defaults.Clone(), actorID)
}

// EnsureDefaults bootstraps the settings table: every defaults category
// without a row gets one with its default bag. Existing rows are never
// overwritten.
func EnsureDefaults(db *gorm.DB) error {
	if db == nil {
		return ErrDBNil
	}

	for category, values := range Defaults() {
		var setting models.Setting
		err := db.Where(categoryQueryPattern, category).First(&setting).Error

		if errors.Is(err, gorm.ErrRecordNotFound) {
			setting = models.Setting{
				Category:     category,
				Values:       values.Clone(),
				LastModified: time.Now(),
				IsActive:     true,
			}

			if err := db.Create(&setting).Error; err != nil {
				return err
			}

			continue
		}

		if err != nil {
			return err
		}
	}

	return nil
}
