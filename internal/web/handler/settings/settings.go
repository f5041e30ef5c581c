// Package settings exposes the platform settings admin API.
package settings

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/givehub-admin/givehub-admin/internal/audit"
	"github.com/givehub-admin/givehub-admin/internal/auth"
	"github.com/givehub-admin/givehub-admin/internal/config"
	"github.com/givehub-admin/givehub-admin/internal/db/controller/setting"
	"github.com/givehub-admin/givehub-admin/internal/db/models"
	"github.com/givehub-admin/givehub-admin/internal/web/handler"
)

const (
	// Path is the base path of the settings API.
	Path = handler.APIRootPath + "/settings"
)

// UpsertRequest is the body for replacing a single category.
type UpsertRequest struct {
	Category string         `json:"category" validate:"required"`
	Values   models.JSONMap `json:"values" validate:"required"`
}

// BulkUpsertRequest is the body for replacing several categories at once.
type BulkUpsertRequest struct {
	Settings map[string]models.JSONMap `json:"settings" validate:"required,min=1"`
}

// Service is the settings handler service.
type Service struct {
	handler.Service
	cfg       *config.Config
	db        *gorm.DB
	validator *validator.Validate
	audit     audit.Recorder
}

// Handler is the settings handler.
var Handler = Service{}

// Init initializes the settings handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB, authService *auth.Service, rec audit.Recorder) {
	if app == nil || cfg == nil || db == nil {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)
		return
	}

	s.db = db
	s.cfg = cfg
	s.validator = validator.New()
	s.audit = rec

	// register routes with permission checks; the bulk route must precede the
	// :category wildcard
	app.Get(Path,
		auth.RequirePermission(authService, auth.PermSettingsManage),
		s.List,
	)
	app.Put(Path+"/bulk",
		auth.RequirePermission(authService, auth.PermSettingsManage),
		s.BulkUpsert,
	)
	app.Get(Path+"/:category",
		auth.RequirePermission(authService, auth.PermSettingsManage),
		s.Get,
	)
	app.Put(Path+"/:category/reset",
		auth.RequirePermission(authService, auth.PermSettingsManage),
		s.Reset,
	)
	app.Put(Path,
		auth.RequirePermission(authService, auth.PermSettingsManage),
		s.Upsert,
	)
}

// List returns every category with its full value bag.
func (s *Service) List(c *fiber.Ctx) error {
	all, err := setting.GetAll(s.db)
	if err != nil {
		log.Error().Err(err).Msg("failed to load settings")

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{"settings": all})
}

// Get returns the value bag of a single category.
func (s *Service) Get(c *fiber.Ctx) error {
	category := c.Params("category")

	values, err := setting.Get(s.db, category)
	if err != nil {
		if errors.Is(err, setting.ErrCategoryNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}

		log.Error().Err(err).Str("category", category).Msg("failed to load settings category")

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{"category": category, "values": values})
}

// Upsert replaces the full value bag of one category.
func (s *Service) Upsert(c *fiber.Ctx) error {
	req := new(UpsertRequest)

	if err := c.BodyParser(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	if err := s.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": validationMessage(err)})
	}

	actorID := auth.ActorID(c)

	values, err := setting.Upsert(s.db, req.Category, req.Values, actorID)
	if err != nil {
		switch {
		case errors.Is(err, setting.ErrCategoryEmpty), errors.Is(err, setting.ErrValuesInvalid):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		default:
			log.Error().Err(err).Str("category", req.Category).Msg("failed to save settings")

			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
	}

	s.audit.Record(actorID, "settings.update", "updated settings category "+req.Category,
		models.JSONMap{"category": req.Category, "key_count": float64(len(values))})

	return c.JSON(fiber.Map{"category": req.Category, "values": values})
}

// BulkUpsert replaces several categories in one request. Failing categories do
// not abort the rest; the response lists both outcomes.
func (s *Service) BulkUpsert(c *fiber.Ctx) error {
	req := new(BulkUpsertRequest)

	if err := c.BodyParser(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	if err := s.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": validationMessage(err)})
	}

	actorID := auth.ActorID(c)

	updated, failed := setting.BulkUpsert(s.db, req.Settings, actorID)

	failures := make(map[string]string, len(failed))
	for category, err := range failed {
		failures[category] = err.Error()
	}

	s.audit.Record(actorID, "settings.bulk_update", "bulk updated settings",
		models.JSONMap{"updated": updated, "failed": float64(len(failed))})

	status := fiber.StatusOK
	if len(failed) > 0 {
		status = fiber.StatusMultiStatus
	}

	return c.Status(status).JSON(fiber.Map{"updated": updated, "failed": failures})
}

// Reset restores a built-in category to its shipped defaults.
func (s *Service) Reset(c *fiber.Ctx) error {
	category := c.Params("category")
	actorID := auth.ActorID(c)

	values, err := setting.ResetToDefault(s.db, category, actorID)
	if err != nil {
		if errors.Is(err, setting.ErrNoDefaults) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}

		log.Error().Err(err).Str("category", category).Msg("failed to reset settings")

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	s.audit.Record(actorID, "settings.reset", "reset settings category "+category+" to defaults",
		models.JSONMap{"category": category})

	return c.JSON(fiber.Map{"category": category, "values": values})
}

// validationMessage flattens validator errors into one readable line.
func validationMessage(err error) string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err.Error()
	}

	msg := ""
	for i, ve := range validationErrors {
		if i > 0 {
			msg += "; "
		}

		msg += "field '" + ve.Field() + "' failed validation tag '" + ve.Tag() + "'"
	}

	return msg
}
