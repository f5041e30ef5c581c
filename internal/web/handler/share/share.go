// Package share exposes the share-link admin API: minting links for
// profiles, campaigns and portfolios, managing custom designs and toggling
// link activity.
package share

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/givehub-admin/givehub-admin/internal/audit"
	"github.com/givehub-admin/givehub-admin/internal/auth"
	"github.com/givehub-admin/givehub-admin/internal/config"
	"github.com/givehub-admin/givehub-admin/internal/db/controller/sharelink"
	"github.com/givehub-admin/givehub-admin/internal/db/models"
	"github.com/givehub-admin/givehub-admin/internal/web/handler"
)

const (
	// Path is the base path for share-link management by token.
	Path = handler.APIRootPath + "/share"
)

// Service is the share handler service.
type Service struct {
	handler.Service
	cfg   *config.Config
	db    *gorm.DB
	audit audit.Recorder
}

// Handler is the share handler.
var Handler = Service{}

// Init initializes the share handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB, authService *auth.Service, rec audit.Recorder) {
	if app == nil || cfg == nil || db == nil {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)
		return
	}

	s.db = db
	s.cfg = cfg
	s.audit = rec

	manage := auth.RequirePermission(authService, auth.PermShareManage)

	app.Post(handler.APIRootPath+"/profiles/:id/share", manage, s.forType(models.ResourceTypeProfile))
	app.Post(handler.APIRootPath+"/campaigns/:id/share", manage, s.forType(models.ResourceTypeCampaign))
	app.Post(handler.APIRootPath+"/portfolios/:id/share", manage, s.forType(models.ResourceTypePortfolio))

	app.Get(handler.APIRootPath+"/users/:id/customize", manage, s.GetCustomize)
	app.Put(handler.APIRootPath+"/users/:id/customize", manage, s.PutCustomize)

	app.Put(Path+"/:shareId/deactivate", manage, s.Deactivate)
	app.Put(Path+"/:shareId/activate", manage, s.Activate)
}

// URL composes the public share URL for a link.
func URL(base string, link *models.ShareLink) string {
	return strings.TrimSuffix(base, "/") +
		handler.PublicRootPath + "/share/" + string(link.ResourceType) + "/" + link.ShareID
}

// forType returns the get-or-create handler for one resource type.
func (s *Service) forType(resourceType models.ResourceType) fiber.Handler {
	return func(c *fiber.Ctx) error {
		resourceID := c.Params("id")
		actorID := auth.ActorID(c)

		link, created, err := sharelink.GetOrCreate(s.db, resourceType, resourceID, actorID)
		if err != nil {
			if errors.Is(err, sharelink.ErrResourceIDEmpty) || errors.Is(err, sharelink.ErrResourceTypeInvalid) {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
			}

			log.Error().Err(err).
				Str("resource_type", string(resourceType)).
				Str("resource_id", resourceID).
				Msg("failed to get or create share link")

			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}

		if created {
			s.audit.Record(actorID, "share.create", "created share link for "+string(resourceType)+" "+resourceID,
				models.JSONMap{"share_id": link.ShareID, "resource_type": string(resourceType), "resource_id": resourceID})
		}

		status := fiber.StatusOK
		if created {
			status = fiber.StatusCreated
		}

		return c.Status(status).JSON(fiber.Map{
			"share_id":  link.ShareID,
			"share_url": URL(s.cfg.Webserver.URL, link),
			"is_active": link.IsActive,
		})
	}
}

// GetCustomize returns the stored design payload for a user's profile link.
// A missing link yields the empty design rather than an error.
func (s *Service) GetCustomize(c *fiber.Ctx) error {
	userID := c.Params("id")

	design, link, err := sharelink.GetCustomDesign(s.db, models.ResourceTypeProfile, userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("failed to load custom design")

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	resp := fiber.Map{"design": design}
	if link != nil {
		resp["share_id"] = link.ShareID
		resp["share_url"] = URL(s.cfg.Webserver.URL, link)
	}

	return c.JSON(resp)
}

// PutCustomize replaces the design payload for a user's profile link,
// creating the link when absent. The body is the payload itself.
func (s *Service) PutCustomize(c *fiber.Ctx) error {
	userID := c.Params("id")

	payload := models.JSONMap{}
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	actorID := auth.ActorID(c)

	link, err := sharelink.SetCustomDesign(s.db, models.ResourceTypeProfile, userID, payload, actorID)
	if err != nil {
		if errors.Is(err, sharelink.ErrResourceIDEmpty) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}

		log.Error().Err(err).Str("user_id", userID).Msg("failed to save custom design")

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	s.audit.Record(actorID, "share.customize", "updated custom design for profile "+userID,
		models.JSONMap{"share_id": link.ShareID})

	return c.JSON(fiber.Map{
		"design":    link.CustomDesign,
		"share_id":  link.ShareID,
		"share_url": URL(s.cfg.Webserver.URL, link),
	})
}

// Deactivate turns a link off without deleting it.
func (s *Service) Deactivate(c *fiber.Ctx) error {
	return s.setActive(c, false, "share.deactivate")
}

// Activate turns a previously deactivated link back on.
func (s *Service) Activate(c *fiber.Ctx) error {
	return s.setActive(c, true, "share.activate")
}

func (s *Service) setActive(c *fiber.Ctx, active bool, action string) error {
	shareID := c.Params("shareId")
	actorID := auth.ActorID(c)

	var err error
	if active {
		err = sharelink.Activate(s.db, shareID)
	} else {
		err = sharelink.Deactivate(s.db, shareID)
	}

	if err != nil {
		if errors.Is(err, sharelink.ErrLinkNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}

		if errors.Is(err, sharelink.ErrShareIDEmpty) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}

		log.Error().Err(err).Str("share_id", shareID).Msg("failed to toggle share link")

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	s.audit.Record(actorID, action, action+" for share link "+shareID,
		models.JSONMap{"share_id": shareID, "is_active": active})

	return c.JSON(fiber.Map{"share_id": shareID, "is_active": active})
}
