// Package campaign provides the admin API for fundraising campaigns.
package campaign

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
	"github.com/givehub-admin/givehub-admin/internal/db/models"
	"github.com/givehub-admin/givehub-admin/internal/web/handler"
)

const (
	// Path is the base path for campaign management.
	Path = handler.APIRootPath + "/campaigns"
)

// CreateRequest is the body for creating a campaign.
type CreateRequest struct {
	Title       string `json:"title" validate:"required,max=255"`
	Description string `json:"description"`
	OwnerID     uint64 `json:"owner_id" validate:"required"`
	GoalAmount  int64  `json:"goal_amount" validate:"required,gt=0"`
	Currency    string `json:"currency" validate:"omitempty,len=3"`
}

// UpdateRequest is the body for updating a campaign.
type UpdateRequest struct {
	Title       string `json:"title" validate:"required,max=255"`
	Description string `json:"description"`
	GoalAmount  int64  `json:"goal_amount" validate:"required,gt=0"`
}

// StatusRequest is the body for a status transition.
type StatusRequest struct {
	Status models.CampaignStatus `json:"status" validate:"required,oneof=draft active completed cancelled"`
}

// Service provides CRUD operations for campaigns.
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
		auth.RequirePermission(authService, auth.PermCampaignList),
		s.List,
	)
	app.Get(Path+"/:id",
		auth.RequirePermission(authService, auth.PermCampaignRead),
		s.Get,
	)
	app.Post(Path,
		auth.RequirePermission(authService, auth.PermCampaignCreate),
		s.Create,
	)
	app.Put(Path+"/:id",
		auth.RequirePermission(authService, auth.PermCampaignUpdate),
		s.Update,
	)
	app.Put(Path+"/:id/status",
		auth.RequirePermission(authService, auth.PermCampaignUpdate),
		s.SetStatus,
	)
}

// List returns campaigns, optionally filtered by owner.
func (s *Service) List(c *fiber.Ctx) error {
	var (
		campaigns []models.Campaign
		err       error
	)

	if owner := c.QueryInt("owner", 0); owner > 0 {
		campaigns, err = campaign.GetByOwner(s.db, uint64(owner))
	} else {
		campaigns, err = campaign.GetAll(s.db)
	}

	if err != nil {
		log.Error().Err(err).Msg("failed to list campaigns")

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}

	return c.JSON(fiber.Map{"campaigns": campaigns})
}

// Get returns a single campaign.
func (s *Service) Get(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid campaign id"})
	}

	camp, err := campaign.Get(s.db, id)
	if err != nil {
		if errors.Is(err, campaign.ErrCampaignNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}

		log.Error().Err(err).Uint64("campaign_id", id).Msg("failed to load campaign")

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}

	return c.JSON(camp)
}

// Create registers a new campaign in draft state.
func (s *Service) Create(c *fiber.Ctx) error {
	req := new(CreateRequest)

	if err := c.BodyParser(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	if err := s.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	currency := req.Currency
	if currency == "" {
		currency = "USD"
	}

	camp, err := campaign.Create(s.db, &models.Campaign{
		Title:       req.Title,
		Description: req.Description,
		OwnerID:     req.OwnerID,
		GoalAmount:  req.GoalAmount,
		Currency:    currency,
		Status:      models.CampaignStatusDraft,
	})
	if err != nil {
		if errors.Is(err, campaign.ErrTitleEmpty) || errors.Is(err, campaign.ErrGoalInvalid) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}

		log.Error().Err(err).Str("title", req.Title).Msg("failed to create campaign")

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}

	actorID := auth.ActorID(c)
	s.audit.Record(actorID, "campaign.create", "created campaign "+camp.Title,
		models.JSONMap{"campaign_id": float64(camp.ID)})

	return c.Status(fiber.StatusCreated).JSON(camp)
}

// Update changes title, description and goal.
func (s *Service) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid campaign id"})
	}

	req := new(UpdateRequest)

	if err := c.BodyParser(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	if err := s.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	camp, err := campaign.Update(s.db, id, req.Title, req.Description, req.GoalAmount)
	if err != nil {
		switch {
		case errors.Is(err, campaign.ErrCampaignNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, campaign.ErrTitleEmpty), errors.Is(err, campaign.ErrGoalInvalid):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		default:
			log.Error().Err(err).Uint64("campaign_id", id).Msg("failed to update campaign")

			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
		}
	}

	actorID := auth.ActorID(c)
	s.audit.Record(actorID, "campaign.update", "updated campaign "+strconv.FormatUint(id, 10),
		models.JSONMap{"campaign_id": float64(id)})

	return c.JSON(camp)
}

// SetStatus moves a campaign to another lifecycle state.
func (s *Service) SetStatus(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid campaign id"})
	}

	req := new(StatusRequest)

	if err := c.BodyParser(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	if err := s.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	camp, err := campaign.SetStatus(s.db, id, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, campaign.ErrCampaignNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, campaign.ErrStatusInvalid):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		default:
			log.Error().Err(err).Uint64("campaign_id", id).Msg("failed to change campaign status")

			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
		}
	}

	actorID := auth.ActorID(c)
	s.audit.Record(actorID, "campaign.status", "changed status of campaign "+strconv.FormatUint(id, 10),
		models.JSONMap{"campaign_id": float64(id), "status": string(req.Status)})

	return c.JSON(camp)
}

func parseID(c *fiber.Ctx) (uint64, error) {
	return strconv.ParseUint(c.Params("id"), 10, 64)
}
