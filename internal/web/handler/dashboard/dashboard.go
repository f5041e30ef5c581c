// Package dashboard provides the aggregated platform statistics endpoint.
package dashboard

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/givehub-admin/givehub-admin/internal/auth"
	"github.com/givehub-admin/givehub-admin/internal/config"
	"github.com/givehub-admin/givehub-admin/internal/db/models"
	"github.com/givehub-admin/givehub-admin/internal/web/handler"
)

const (
	// Path is the path to the dashboard statistics endpoint.
	Path = handler.APIRootPath + "/dashboard/stats"
)

// Stats is the aggregated platform snapshot returned to admins.
type Stats struct {
	Users     UserStats     `json:"users"`
	Campaigns CampaignStats `json:"campaigns"`
	Donations DonationStats `json:"donations"`
	Notices   int64         `json:"notices"`
	Shares    ShareStats    `json:"shares"`
}

// UserStats counts accounts by type.
type UserStats struct {
	Total  int64            `json:"total"`
	Active int64            `json:"active"`
	ByType map[string]int64 `json:"by_type"`
}

// CampaignStats counts campaigns by lifecycle state.
type CampaignStats struct {
	Total    int64            `json:"total"`
	ByStatus map[string]int64 `json:"by_status"`
}

// DonationStats sums completed donations.
type DonationStats struct {
	Total          int64 `json:"total"`
	Completed      int64 `json:"completed"`
	AmountComplete int64 `json:"amount_completed"`
}

// ShareStats counts share links and accumulated views.
type ShareStats struct {
	Total      int64 `json:"total"`
	Active     int64 `json:"active"`
	TotalViews int64 `json:"total_views"`
}

// Service is the dashboard handler service.
type Service struct {
	handler.Service
	cfg *config.Config
	db  *gorm.DB
}

// Handler is the dashboard handler.
var Handler = Service{}

// Init initializes the dashboard handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB, authService *auth.Service) {
	if app == nil || cfg == nil || db == nil {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)
		return
	}

	s.db = db
	s.cfg = cfg

	app.Get(Path,
		auth.RequirePermission(authService, auth.PermDashboardView),
		s.Get,
	)
}

// Get assembles the statistics snapshot.
func (s *Service) Get(c *fiber.Ctx) error {
	stats, err := s.collect()
	if err != nil {
		log.Error().Err(err).Msg("failed to collect dashboard statistics")

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}

	return c.JSON(stats)
}

type groupCount struct {
	Key   string `gorm:"column:key"`
	Count int64  `gorm:"column:count"`
}

func (s *Service) collect() (*Stats, error) {
	stats := &Stats{
		Users:     UserStats{ByType: make(map[string]int64)},
		Campaigns: CampaignStats{ByStatus: make(map[string]int64)},
	}

	if err := s.db.Model(&models.User{}).Count(&stats.Users.Total).Error; err != nil {
		return nil, err
	}

	if err := s.db.Model(&models.User{}).Where("active = ?", true).Count(&stats.Users.Active).Error; err != nil {
		return nil, err
	}

	var usersByType []groupCount
	if err := s.db.Model(&models.User{}).
		Select("user_type AS key, COUNT(*) AS count").
		Group("user_type").
		Scan(&usersByType).Error; err != nil {
		return nil, err
	}

	for _, row := range usersByType {
		stats.Users.ByType[row.Key] = row.Count
	}

	if err := s.db.Model(&models.Campaign{}).Count(&stats.Campaigns.Total).Error; err != nil {
		return nil, err
	}

	var campaignsByStatus []groupCount
	if err := s.db.Model(&models.Campaign{}).
		Select("status AS key, COUNT(*) AS count").
		Group("status").
		Scan(&campaignsByStatus).Error; err != nil {
		return nil, err
	}

	for _, row := range campaignsByStatus {
		stats.Campaigns.ByStatus[row.Key] = row.Count
	}

	if err := s.db.Model(&models.Donation{}).Count(&stats.Donations.Total).Error; err != nil {
		return nil, err
	}

	if err := s.db.Model(&models.Donation{}).
		Where("status = ?", models.DonationStatusCompleted).
		Count(&stats.Donations.Completed).Error; err != nil {
		return nil, err
	}

	if err := s.db.Model(&models.Donation{}).
		Where("status = ?", models.DonationStatusCompleted).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&stats.Donations.AmountComplete).Error; err != nil {
		return nil, err
	}

	if err := s.db.Model(&models.Notice{}).Count(&stats.Notices).Error; err != nil {
		return nil, err
	}

	if err := s.db.Model(&models.ShareLink{}).Count(&stats.Shares.Total).Error; err != nil {
		return nil, err
	}

	if err := s.db.Model(&models.ShareLink{}).
		Where("is_active = ?", true).
		Count(&stats.Shares.Active).Error; err != nil {
		return nil, err
	}

	if err := s.db.Model(&models.ShareLink{}).
		Select("COALESCE(SUM(view_count), 0)").
		Scan(&stats.Shares.TotalViews).Error; err != nil {
		return nil, err
	}

	return stats, nil
}
