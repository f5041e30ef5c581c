// Package donation provides the admin API for donation records.
package donation

import (
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/givehub-admin/givehub-admin/internal/audit"
	"github.com/givehub-admin/givehub-admin/internal/auth"
	"github.com/givehub-admin/givehub-admin/internal/config"
	"github.com/givehub-admin/givehub-admin/internal/db/controller/campaign"
	"github.com/givehub-admin/givehub-admin/internal/db/controller/donation"
	"github.com/givehub-admin/givehub-admin/internal/db/models"
	"github.com/givehub-admin/givehub-admin/internal/web/handler"
)

const (
	// Path is the base path for donation management.
	Path = handler.APIRootPath + "/donations"
)

// CreateRequest is the body for recording a donation.
type CreateRequest struct {
	DonorID    uint64 `json:"donor_id" validate:"required"`
	CampaignID uint64 `json:"campaign_id" validate:"required"`
	Amount     int64  `json:"amount" validate:"required,gt=0"`
}

// Service provides read and settle operations for donations.
type Service struct {
	handler.Service
	cfg       *config.Config
	db        *gorm.DB
	validator *validator.Validate
	audit     audit.Recorder
}

// Handler is the exported instance.
var Handler = Service{}

// Init registers routes.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB, authService *auth.Service, rec audit.Recorder) {
	if app == nil || cfg == nil || db == nil {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)
		return
	}

	s.db = db
	s.cfg = cfg
	s.validator = validator.New()
	s.audit = rec

	app.Get(Path,
		auth.RequirePermission(authService, auth.PermDonationRead),
		s.List,
	)
	app.Get(Path+"/:id",
		auth.RequirePermission(authService, auth.PermDonationRead),
		s.Get,
	)
	app.Post(Path,
		auth.RequirePermission(authService, auth.PermDonationManage),
		s.Create,
	)
	app.Put(Path+"/:id/complete",
		auth.RequirePermission(authService, auth.PermDonationManage),
		s.Complete,
	)
}

// List returns donations, optionally scoped to one campaign.
func (s *Service) List(c *fiber.Ctx) error {
	var (
		donations []models.Donation
		err       error
	)

	if campaignID := c.QueryInt("campaign", 0); campaignID > 0 {
		donations, err = donation.GetByCampaign(s.db, uint64(campaignID))
	} else {
		donations, err = donation.GetAll(s.db)
	}

	if err != nil {
		log.Error().Err(err).Msg("failed to list donations")

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}

	return c.JSON(fiber.Map{"donations": donations})
}

// Get returns a single donation.
func (s *Service) Get(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid donation id"})
	}

	don, err := donation.Get(s.db, id)
	if err != nil {
		if errors.Is(err, donation.ErrDonationNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}

		log.Error().Err(err).Uint64("donation_id", id).Msg("failed to load donation")

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}

	return c.JSON(don)
}

// Create records a pending donation and assigns it a receipt number.
func (s *Service) Create(c *fiber.Ctx) error {
	req := new(CreateRequest)

	if err := c.BodyParser(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	if err := s.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	// the campaign must exist before money is attached to it
	if _, err := campaign.Get(s.db, req.CampaignID); err != nil {
		if errors.Is(err, campaign.ErrCampaignNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}

	don, err := donation.Create(s.db, &models.Donation{
		DonorID:    req.DonorID,
		CampaignID: req.CampaignID,
		Amount:     req.Amount,
	})
	if err != nil {
		if errors.Is(err, donation.ErrAmountInvalid) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}

		log.Error().Err(err).Uint64("campaign_id", req.CampaignID).Msg("failed to record donation")

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}

	actorID := auth.ActorID(c)
	s.audit.Record(actorID, "donation.create", "recorded donation "+don.ReceiptNo,
		models.JSONMap{"donation_id": float64(don.ID), "campaign_id": float64(don.CampaignID), "amount": float64(don.Amount)})

	return c.Status(fiber.StatusCreated).JSON(don)
}

// Complete settles a pending donation and credits the campaign total.
func (s *Service) Complete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid donation id"})
	}

	don, err := donation.Complete(s.db, id)
	if err != nil {
		if errors.Is(err, donation.ErrDonationNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}

		log.Error().Err(err).Uint64("donation_id", id).Msg("failed to complete donation")

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}

	actorID := auth.ActorID(c)
	s.audit.Record(actorID, "donation.complete", "completed donation "+don.ReceiptNo,
		models.JSONMap{"donation_id": float64(don.ID), "campaign_id": float64(don.CampaignID)})

	return c.JSON(don)
}

func parseID(c *fiber.Ctx) (uint64, error) {
	return strconv.ParseUint(c.Params("id"), 10, 64)
}
