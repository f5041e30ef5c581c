// Package notice provides the API for platform announcements.
package notice

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
	"github.com/givehub-admin/givehub-admin/internal/db/controller/notice"
	"github.com/givehub-admin/givehub-admin/internal/db/models"
	"github.com/givehub-admin/givehub-admin/internal/web/handler"
)

const (
	// Path is the base path for notice management.
	Path = handler.APIRootPath + "/notices"
)

// Request is the body for creating or updating a notice.
type Request struct {
	Title    string                `json:"title" validate:"required,max=255"`
	Body     string                `json:"body" validate:"required"`
	Audience models.NoticeAudience `json:"audience" validate:"required,oneof=all donors ngos companies"`
}

// Service provides CRUD and read-tracking operations for notices.
type Service struct {
	handler.Service
	cfg       *config.Config
	db        *gorm.DB
	validator *validator.Validate
	audit     audit.Recorder
}

// Handler is the exported instance.
var Handler = Service{}

// Init registers routes. Reading and acknowledging notices only needs a
// session; managing them needs the notice permission.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB, authService *auth.Service, rec audit.Recorder) {
	if app == nil || cfg == nil || db == nil {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)
		return
	}

	s.db = db
	s.cfg = cfg
	s.validator = validator.New()
	s.audit = rec

	manage := auth.RequirePermission(authService, auth.PermNoticeManage)

	app.Get(Path, s.List)
	app.Get(Path+"/:id", s.Get)
	app.Put(Path+"/:id/read", s.MarkRead)

	app.Post(Path, manage, s.Create)
	app.Put(Path+"/:id", manage, s.Update)
	app.Delete(Path+"/:id", manage, s.Delete)
	app.Get(Path+"/:id/reads", manage, s.ReadCount)
}

// List returns all notices.
func (s *Service) List(c *fiber.Ctx) error {
	notices, err := notice.GetAll(s.db)
	if err != nil {
		log.Error().Err(err).Msg("failed to list notices")

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}

	return c.JSON(fiber.Map{"notices": notices})
}

// Get returns a single notice.
func (s *Service) Get(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid notice id"})
	}

	n, err := notice.Get(s.db, id)
	if err != nil {
		if errors.Is(err, notice.ErrNoticeNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}

		log.Error().Err(err).Uint64("notice_id", id).Msg("failed to load notice")

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}

	return c.JSON(n)
}

// Create publishes a new notice.
func (s *Service) Create(c *fiber.Ctx) error {
	req := new(Request)

	if err := c.BodyParser(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	if err := s.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	actorID := auth.ActorID(c)

	var createdBy uint64
	if actorID != nil {
		createdBy = *actorID
	}

	n, err := notice.Create(s.db, &models.Notice{
		Title:     req.Title,
		Body:      req.Body,
		Audience:  req.Audience,
		CreatedBy: createdBy,
	})
	if err != nil {
		if errors.Is(err, notice.ErrTitleEmpty) || errors.Is(err, notice.ErrAudienceInvalid) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}

		log.Error().Err(err).Str("title", req.Title).Msg("failed to create notice")

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}

	s.audit.Record(actorID, "notice.create", "created notice "+n.Title,
		models.JSONMap{"notice_id": float64(n.ID), "audience": string(n.Audience)})

	return c.Status(fiber.StatusCreated).JSON(n)
}

// Update edits an existing notice.
func (s *Service) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid notice id"})
	}

	req := new(Request)

	if err := c.BodyParser(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	if err := s.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	n, err := notice.Update(s.db, id, req.Title, req.Body, req.Audience)
	if err != nil {
		switch {
		case errors.Is(err, notice.ErrNoticeNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, notice.ErrTitleEmpty), errors.Is(err, notice.ErrAudienceInvalid):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		default:
			log.Error().Err(err).Uint64("notice_id", id).Msg("failed to update notice")

			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
		}
	}

	actorID := auth.ActorID(c)
	s.audit.Record(actorID, "notice.update", "updated notice "+strconv.FormatUint(id, 10),
		models.JSONMap{"notice_id": float64(id)})

	return c.JSON(n)
}

// Delete removes a notice.
func (s *Service) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid notice id"})
	}

	if err := notice.Delete(s.db, id); err != nil {
		if errors.Is(err, notice.ErrNoticeNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}

		log.Error().Err(err).Uint64("notice_id", id).Msg("failed to delete notice")

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}

	actorID := auth.ActorID(c)
	s.audit.Record(actorID, "notice.delete", "deleted notice "+strconv.FormatUint(id, 10),
		models.JSONMap{"notice_id": float64(id)})

	return c.SendStatus(fiber.StatusNoContent)
}

// MarkRead records that the requesting user has seen a notice. Repeated
// acknowledgements are harmless.
func (s *Service) MarkRead(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid notice id"})
	}

	actorID := auth.ActorID(c)
	if actorID == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}

	if err := notice.MarkRead(s.db, id, *actorID); err != nil {
		if errors.Is(err, notice.ErrNoticeNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}

		log.Error().Err(err).Uint64("notice_id", id).Msg("failed to mark notice read")

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}

	return c.JSON(fiber.Map{"notice_id": id, "read": true})
}

// ReadCount returns how many users acknowledged a notice.
func (s *Service) ReadCount(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid notice id"})
	}

	count, err := notice.ReadCount(s.db, id)
	if err != nil {
		log.Error().Err(err).Uint64("notice_id", id).Msg("failed to count notice reads")

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}

	return c.JSON(fiber.Map{"notice_id": id, "reads": count})
}

func parseID(c *fiber.Ctx) (uint64, error) {
	return strconv.ParseUint(c.Params("id"), 10, 64)
}
