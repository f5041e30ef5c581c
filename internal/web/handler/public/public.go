// Package public exposes the unauthenticated surface: the safe settings
// subset and share-link resolution.
package public

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/givehub-admin/givehub-admin/internal/config"
	"github.com/givehub-admin/givehub-admin/internal/db/controller/campaign"
	"github.com/givehub-admin/givehub-admin/internal/db/controller/setting"
	"github.com/givehub-admin/givehub-admin/internal/db/controller/sharelink"
	"github.com/givehub-admin/givehub-admin/internal/db/controller/user"
	"github.com/givehub-admin/givehub-admin/internal/db/models"
	"github.com/givehub-admin/givehub-admin/internal/web/handler"
)

const (
	// Path is the base path of the public API.
	Path = handler.PublicRootPath
)

// Service is the public handler service.
type Service struct {
	handler.Service
	cfg *config.Config
	db  *gorm.DB
}

// Handler is the public handler.
var Handler = Service{}

// Init initializes the public handler. No session is required on these routes.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB) {
	if app == nil || cfg == nil || db == nil {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)
		return
	}

	s.db = db
	s.cfg = cfg

	app.Get(Path+"/settings", s.Settings)
	app.Get(Path+"/share/profile/:shareId", s.shareResolver(models.ResourceTypeProfile))
	app.Get(Path+"/share/portfolio/:shareId", s.shareResolver(models.ResourceTypePortfolio))
	app.Get(Path+"/share/campaign/:shareId", s.shareResolver(models.ResourceTypeCampaign))
}

// Settings returns only the categories that are safe for anonymous readers.
// Secrets like SMTP credentials and payment keys never leave this filter.
func (s *Service) Settings(c *fiber.Ctx) error {
	out := make(map[string]models.JSONMap, len(setting.PublicCategories))

	for _, category := range setting.PublicCategories {
		values, err := setting.Get(s.db, category)
		if err != nil {
			if errors.Is(err, setting.ErrCategoryNotFound) {
				continue
			}

			log.Error().Err(err).Str("category", category).Msg("failed to load public settings")

			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
		}

		out[category] = values
	}

	return c.JSON(fiber.Map{"settings": out})
}

// shareResolver returns the resolve handler for one resource type. Resolution
// counts the view before the resource lookup, so a dangling link still shows
// up in its view counter.
func (s *Service) shareResolver(resourceType models.ResourceType) fiber.Handler {
	return func(c *fiber.Ctx) error {
		shareID := c.Params("shareId")

		link, err := sharelink.Resolve(s.db, shareID)
		if err != nil {
			if errors.Is(err, sharelink.ErrLinkNotFound) || errors.Is(err, sharelink.ErrShareIDEmpty) {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "share link not found"})
			}

			log.Error().Err(err).Str("share_id", shareID).Msg("failed to resolve share link")

			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
		}

		// a token minted for a different resource type does not resolve here
		if link.ResourceType != resourceType {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "share link not found"})
		}

		resource, err := s.loadResource(link)
		if err != nil {
			// the link survived its target; treat as unpublished
			log.Warn().
				Str("share_id", link.ShareID).
				Str("resource_type", string(link.ResourceType)).
				Str("resource_id", link.ResourceID).
				Msg("share link references a missing resource")

			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "share link target not found"})
		}

		return c.JSON(fiber.Map{
			"share_id":      link.ShareID,
			"resource_type": link.ResourceType,
			"view_count":    link.ViewCount,
			"custom_design": link.CustomDesign,
			"resource":      resource,
		})
	}
}

// loadResource fetches the public projection of the linked resource.
func (s *Service) loadResource(link *models.ShareLink) (fiber.Map, error) {
	id, err := strconv.ParseUint(link.ResourceID, 10, 64)
	if err != nil {
		return nil, err
	}

	switch link.ResourceType {
	case models.ResourceTypeProfile, models.ResourceTypePortfolio:
		u, err := user.Get(s.db, id)
		if err != nil {
			return nil, err
		}

		return fiber.Map{
			"id":        u.ID,
			"username":  u.Username,
			"user_type": u.UserType,
			"org_name":  u.OrgName,
		}, nil
	case models.ResourceTypeCampaign:
		camp, err := campaign.Get(s.db, id)
		if err != nil {
			return nil, err
		}

		return fiber.Map{
			"id":            camp.ID,
			"title":         camp.Title,
			"description":   camp.Description,
			"goal_amount":   camp.GoalAmount,
			"raised_amount": camp.RaisedAmount,
			"currency":      camp.Currency,
			"status":        camp.Status,
		}, nil
	default:
		return nil, sharelink.ErrResourceTypeInvalid
	}
}
