package sharelink

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/givehub-admin/givehub-admin/internal/db/models"
)

// setupTestDB creates an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to create test database")

	err = db.AutoMigrate(&models.ShareLink{})
	require.NoError(t, err, "failed to migrate test database")

	return db
}

func TestGenerateShareID(t *testing.T) {
	seen := make(map[string]bool)

	for range 100 {
		id, err := GenerateShareID()
		require.NoError(t, err)
		assert.Len(t, id, 32, "16 random bytes hex-encode to 32 chars")
		assert.False(t, seen[id], "share ids must not repeat")
		seen[id] = true
	}
}

func TestGetOrCreate(t *testing.T) {
	db := setupTestDB(t)

	testCases := []struct {
		name          string
		dbParam       *gorm.DB
		resourceType  models.ResourceType
		resourceID    string
		expectedError error
	}{
		{
			name:          "nil database",
			dbParam:       nil,
			resourceType:  models.ResourceTypeProfile,
			resourceID:    "user123",
			expectedError: ErrDBNil,
		},
		{
			name:          "invalid resource type",
			dbParam:       db,
			resourceType:  "playlist",
			resourceID:    "user123",
			expectedError: ErrResourceTypeInvalid,
		},
		{
			name:          "empty resource id",
			dbParam:       db,
			resourceType:  models.ResourceTypeProfile,
			resourceID:    "",
			expectedError: ErrResourceIDEmpty,
		},
		{
			name:         "successful create",
			dbParam:      db,
			resourceType: models.ResourceTypeCampaign,
			resourceID:   "camp42",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if tc.dbParam != nil {
				tc.dbParam.Exec("DELETE FROM share_links")
			}

			link, created, err := GetOrCreate(tc.dbParam, tc.resourceType, tc.resourceID, nil)

			if tc.expectedError != nil {
				require.Error(t, err)
				require.ErrorIs(t, err, tc.expectedError)
				assert.Nil(t, link)
				assert.False(t, created)
			} else {
				require.NoError(t, err)
				require.NotNil(t, link)
				assert.True(t, created)
				assert.Len(t, link.ShareID, 32)
				assert.Equal(t, tc.resourceType, link.ResourceType)
				assert.Equal(t, tc.resourceID, link.ResourceID)
				assert.True(t, link.IsActive)
				assert.Zero(t, link.ViewCount)
				assert.NotNil(t, link.CustomDesign)
			}
		})
	}
}

func TestGetOrCreateIdempotent(t *testing.T) {
	db := setupTestDB(t)

	first, created, err := GetOrCreate(db, models.ResourceTypeProfile, "user123", nil)
	require.NoError(t, err)
	assert.True(t, created)

	second, created, err := GetOrCreate(db, models.ResourceTypeProfile, "user123", nil)
	require.NoError(t, err)
	assert.False(t, created, "second call must reuse the existing link")

	assert.Equal(t, first.ShareID, second.ShareID)
	assert.Equal(t, first.ID, second.ID)

	// only one row exists for the pair
	var count int64
	db.Model(&models.ShareLink{}).Count(&count)
	assert.EqualValues(t, 1, count)

	// a different pair gets its own link
	other, _, err := GetOrCreate(db, models.ResourceTypeCampaign, "user123", nil)
	require.NoError(t, err)
	assert.NotEqual(t, first.ShareID, other.ShareID)
}

func TestResolve(t *testing.T) {
	db := setupTestDB(t)

	link, _, err := GetOrCreate(db, models.ResourceTypeProfile, "user123", nil)
	require.NoError(t, err)

	// creation does not count as a view
	assert.Zero(t, link.ViewCount)

	resolved, err := Resolve(db, link.ShareID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, resolved.ViewCount, "resolve returns the post-increment count")
	require.NotNil(t, resolved.LastViewed)

	// N sequential resolutions leave viewCount == N+1
	for i := 2; i <= 5; i++ {
		resolved, err = Resolve(db, link.ShareID)
		require.NoError(t, err)
		assert.EqualValues(t, i, resolved.ViewCount)
	}
}

func TestResolveUnknown(t *testing.T) {
	db := setupTestDB(t)

	_, err := Resolve(db, "deadbeefdeadbeefdeadbeefdeadbeef")
	require.ErrorIs(t, err, ErrLinkNotFound)

	_, err = Resolve(db, "")
	require.ErrorIs(t, err, ErrShareIDEmpty)
}

func TestResolveInactive(t *testing.T) {
	db := setupTestDB(t)

	link, _, err := GetOrCreate(db, models.ResourceTypeProfile, "user123", nil)
	require.NoError(t, err)

	require.NoError(t, Deactivate(db, link.ShareID))

	// inactive reads as not found, indistinguishable from unknown
	_, err = Resolve(db, link.ShareID)
	require.ErrorIs(t, err, ErrLinkNotFound)

	// and does not mutate the document
	var row models.ShareLink
	require.NoError(t, db.Where("share_id = ?", link.ShareID).First(&row).Error)
	assert.Zero(t, row.ViewCount)
	assert.Nil(t, row.LastViewed)

	// reactivation restores resolution with the prior count
	require.NoError(t, Activate(db, link.ShareID))

	resolved, err := Resolve(db, link.ShareID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, resolved.ViewCount)
}

func TestResolveExpired(t *testing.T) {
	db := setupTestDB(t)

	link, _, err := GetOrCreate(db, models.ResourceTypeCampaign, "camp42", nil)
	require.NoError(t, err)

	past := time.Now().Add(-time.Hour)
	require.NoError(t, db.Model(&models.ShareLink{}).
		Where("id = ?", link.ID).
		Update("expires_at", past).Error)

	_, err = Resolve(db, link.ShareID)
	require.ErrorIs(t, err, ErrLinkNotFound)

	var row models.ShareLink
	require.NoError(t, db.First(&row, link.ID).Error)
	assert.Zero(t, row.ViewCount, "expired resolve must not mutate the row")
}

func TestDeactivateUnknown(t *testing.T) {
	db := setupTestDB(t)

	err := Deactivate(db, "deadbeefdeadbeefdeadbeefdeadbeef")
	require.ErrorIs(t, err, ErrLinkNotFound)
}

func TestSetCustomDesign(t *testing.T) {
	db := setupTestDB(t)

	payload := models.JSONMap{"html": "<b>hi</b>", "css": "b{color:red}"}

	// creates the link when absent
	link, err := SetCustomDesign(db, models.ResourceTypeProfile, "user123", payload, nil)
	require.NoError(t, err)
	assert.Equal(t, payload, link.CustomDesign)

	design, found, err := GetCustomDesign(db, models.ResourceTypeProfile, "user123")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, payload, design)

	// full replace, no merge artifacts
	replacement := models.JSONMap{"theme": "dark"}
	_, err = SetCustomDesign(db, models.ResourceTypeProfile, "user123", replacement, nil)
	require.NoError(t, err)

	design, _, err = GetCustomDesign(db, models.ResourceTypeProfile, "user123")
	require.NoError(t, err)
	assert.Equal(t, replacement, design)
	assert.NotContains(t, design, "html")
}

func TestSetCustomDesignByShareID(t *testing.T) {
	db := setupTestDB(t)

	link, _, err := GetOrCreate(db, models.ResourceTypeProfile, "user123", nil)
	require.NoError(t, err)

	payload := models.JSONMap{"html": "<i>x</i>", "css": ""}
	updated, err := SetCustomDesignByShareID(db, link.ShareID, payload)
	require.NoError(t, err)
	assert.Equal(t, payload, updated.CustomDesign)

	_, err = SetCustomDesignByShareID(db, "deadbeefdeadbeefdeadbeefdeadbeef", payload)
	require.ErrorIs(t, err, ErrLinkNotFound)
}

func TestGetCustomDesignAbsent(t *testing.T) {
	db := setupTestDB(t)

	design, link, err := GetCustomDesign(db, models.ResourceTypeProfile, "nonexistent-user")
	require.NoError(t, err, "missing link is a normal state for this read path")
	assert.Nil(t, link)
	assert.Equal(t, models.JSONMap{"html": "", "css": ""}, design)
}
