package campaign

import (
	"testing"

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

	err = db.AutoMigrate(&models.User{}, &models.Campaign{})
	require.NoError(t, err, "failed to migrate test database")

	return db
}

func TestCreate(t *testing.T) {
	db := setupTestDB(t)

	testCases := []struct {
		name        string
		dbParam     *gorm.DB
		campaign    models.Campaign
		expectedErr error
	}{
		{
			name:     "valid campaign",
			dbParam:  db,
			campaign: models.Campaign{Title: "Clean Water", OwnerID: 1, GoalAmount: 100000},
		},
		{
			name:        "empty title",
			dbParam:     db,
			campaign:    models.Campaign{OwnerID: 1, GoalAmount: 100000},
			expectedErr: ErrTitleEmpty,
		},
		{
			name:        "zero goal",
			dbParam:     db,
			campaign:    models.Campaign{Title: "Zero Goal", OwnerID: 1},
			expectedErr: ErrGoalInvalid,
		},
		{
			name:        "unknown status",
			dbParam:     db,
			campaign:    models.Campaign{Title: "Weird", OwnerID: 1, GoalAmount: 1, Status: "archived"},
			expectedErr: ErrStatusInvalid,
		},
		{
			name:        "nil database",
			dbParam:     nil,
			campaign:    models.Campaign{Title: "Clean Water", OwnerID: 1, GoalAmount: 100000},
			expectedErr: ErrDBNil,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			camp, err := Create(tc.dbParam, &tc.campaign)

			if tc.expectedErr != nil {
				require.ErrorIs(t, err, tc.expectedErr)
				return
			}

			require.NoError(t, err)
			assert.NotZero(t, camp.ID)
			assert.Equal(t, models.CampaignStatusDraft, camp.Status, "campaigns start in draft")
		})
	}
}

func TestUpdate(t *testing.T) {
	db := setupTestDB(t)

	camp, err := Create(db, &models.Campaign{Title: "Clean Water", OwnerID: 1, GoalAmount: 100000})
	require.NoError(t, err)

	updated, err := Update(db, camp.ID, "Clean Water 2026", "wells in three regions", 250000)
	require.NoError(t, err)
	assert.Equal(t, "Clean Water 2026", updated.Title)
	assert.Equal(t, int64(250000), updated.GoalAmount)

	_, err = Update(db, camp.ID, "", "", 250000)
	require.ErrorIs(t, err, ErrTitleEmpty)

	_, err = Update(db, camp.ID, "Clean Water", "", -1)
	require.ErrorIs(t, err, ErrGoalInvalid)

	_, err = Update(db, 9999, "Clean Water", "", 1000)
	require.ErrorIs(t, err, ErrCampaignNotFound)
}

func TestSetStatus(t *testing.T) {
	db := setupTestDB(t)

	camp, err := Create(db, &models.Campaign{Title: "Clean Water", OwnerID: 1, GoalAmount: 100000})
	require.NoError(t, err)

	active, err := SetStatus(db, camp.ID, models.CampaignStatusActive)
	require.NoError(t, err)
	assert.Equal(t, models.CampaignStatusActive, active.Status)

	_, err = SetStatus(db, camp.ID, "archived")
	require.ErrorIs(t, err, ErrStatusInvalid)

	_, err = SetStatus(db, 9999, models.CampaignStatusActive)
	require.ErrorIs(t, err, ErrCampaignNotFound)
}

func TestGetByOwner(t *testing.T) {
	db := setupTestDB(t)

	_, err := Create(db, &models.Campaign{Title: "Clean Water", OwnerID: 1, GoalAmount: 100000})
	require.NoError(t, err)
	_, err = Create(db, &models.Campaign{Title: "School Meals", OwnerID: 1, GoalAmount: 50000})
	require.NoError(t, err)
	_, err = Create(db, &models.Campaign{Title: "Reforestation", OwnerID: 2, GoalAmount: 75000})
	require.NoError(t, err)

	owned, err := GetByOwner(db, 1)
	require.NoError(t, err)
	assert.Len(t, owned, 2)

	all, err := GetAll(db)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestAddRaised(t *testing.T) {
	db := setupTestDB(t)

	camp, err := Create(db, &models.Campaign{Title: "Clean Water", OwnerID: 1, GoalAmount: 100000})
	require.NoError(t, err)

	require.NoError(t, AddRaised(db, camp.ID, 2500))
	require.NoError(t, AddRaised(db, camp.ID, 1500))

	got, err := Get(db, camp.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(4000), got.RaisedAmount)

	require.ErrorIs(t, AddRaised(db, 9999, 100), ErrCampaignNotFound)
}
