package donation

import (
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/givehub-admin/givehub-admin/internal/db/controller/campaign"
	"github.com/givehub-admin/givehub-admin/internal/db/models"
)

// setupTestDB creates an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to create test database")

	err = db.AutoMigrate(&models.User{}, &models.Campaign{}, &models.Donation{})
	require.NoError(t, err, "failed to migrate test database")

	return db
}

func seedCampaign(t *testing.T, db *gorm.DB) *models.Campaign {
	t.Helper()

	camp, err := campaign.Create(db, &models.Campaign{
		Title:      "Clean Water",
		OwnerID:    1,
		GoalAmount: 100000,
		Status:     models.CampaignStatusActive,
	})
	require.NoError(t, err)

	return camp
}

func TestCreate(t *testing.T) {
	db := setupTestDB(t)
	camp := seedCampaign(t, db)

	don, err := Create(db, &models.Donation{
		DonorID:    1,
		CampaignID: camp.ID,
		Amount:     2500,
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(don.ReceiptNo, "GH-"), "receipt numbers carry the GH- prefix")
	assert.Len(t, don.ReceiptNo, 15)
	assert.Equal(t, models.DonationStatusPending, don.Status)

	_, err = Create(db, &models.Donation{DonorID: 1, CampaignID: camp.ID, Amount: 0})
	require.ErrorIs(t, err, ErrAmountInvalid)

	_, err = Create(db, &models.Donation{DonorID: 1, CampaignID: camp.ID, Amount: -5})
	require.ErrorIs(t, err, ErrAmountInvalid)
}

func TestCompleteCreditsCampaign(t *testing.T) {
	db := setupTestDB(t)
	camp := seedCampaign(t, db)

	don, err := Create(db, &models.Donation{DonorID: 1, CampaignID: camp.ID, Amount: 2500})
	require.NoError(t, err)

	// pending donations do not count towards the campaign total
	current, err := campaign.Get(db, camp.ID)
	require.NoError(t, err)
	assert.Zero(t, current.RaisedAmount)

	completed, err := Complete(db, don.ID)
	require.NoError(t, err)
	assert.Equal(t, models.DonationStatusCompleted, completed.Status)

	current, err = campaign.Get(db, camp.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2500, current.RaisedAmount)

	// completing again must not double-credit
	_, err = Complete(db, don.ID)
	require.NoError(t, err)

	current, err = campaign.Get(db, camp.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2500, current.RaisedAmount)

	_, err = Complete(db, 9999)
	require.ErrorIs(t, err, ErrDonationNotFound)
}

func TestGetByCampaign(t *testing.T) {
	db := setupTestDB(t)
	camp := seedCampaign(t, db)
	other := seedCampaign(t, db)

	for range 3 {
		_, err := Create(db, &models.Donation{DonorID: 1, CampaignID: camp.ID, Amount: 100})
		require.NoError(t, err)
	}

	_, err := Create(db, &models.Donation{DonorID: 1, CampaignID: other.ID, Amount: 100})
	require.NoError(t, err)

	donations, err := GetByCampaign(db, camp.ID)
	require.NoError(t, err)
	assert.Len(t, donations, 3)

	all, err := GetAll(db)
	require.NoError(t, err)
	assert.Len(t, all, 4)
}
