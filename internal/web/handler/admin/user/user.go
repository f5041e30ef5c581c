// Package user provides the admin API for managing user accounts.
package user

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
	"github.com/givehub-admin/givehub-admin/internal/db/controller/user"
	"github.com/givehub-admin/givehub-admin/internal/db/models"
	"github.com/givehub-admin/givehub-admin/internal/web/handler"
)

const (
	// Path is the base path for user management.
	Path = handler.APIRootPath + "/users"
)

// CreateRequest is the body for creating an account.
type CreateRequest struct {
	Username  string          `json:"username" validate:"required,min=3,max=100"`
	Email     string          `json:"email" validate:"required,email"`
	Password  string          `json:"password" validate:"required,min=8"`
	FirstName string          `json:"first_name"`
	LastName  string          `json:"last_name"`
	UserType  models.UserType `json:"user_type" validate:"required,oneof=donor ngo company admin"`
	RoleID    uint            `json:"role_id" validate:"required"`
}

// UpdateRequest is the body for updating an account.
type UpdateRequest struct {
	Email     string `json:"email" validate:"required,email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	RoleID    uint   `json:"role_id" validate:"required"`
}

// Service provides CRUD operations for users.
type Service struct {
	handler.Service
	cfg       *config.Config
	db        *gorm.DB
	validator *validator.Validate
	provider  *auth.LocalProvider
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
	s.provider = auth.NewLocalProvider(db)
	s.audit = rec

	manage := auth.RequirePermission(authService, auth.PermAdminUsers)

	app.Get(Path, manage, s.List)
	app.Post(Path, manage, s.Create)
	app.Get(Path+"/:id", manage, s.Get)
	app.Put(Path+"/:id", manage, s.Update)
	app.Put(Path+"/:id/activate", manage, s.Activate)
	app.Put(Path+"/:id/deactivate", manage, s.Deactivate)
}

// view is the API projection of an account; the password hash never leaves.
func view(u *models.User) fiber.Map {
	return fiber.Map{
		"id":         u.ID,
		"username":   u.Username,
		"email":      u.Email,
		"first_name": u.FirstName,
		"last_name":  u.LastName,
		"org_name":   u.OrgName,
		"user_type":  u.UserType,
		"role_id":    u.RoleID,
		"active":     u.Active,
		"created_at": u.CreatedAt,
	}
}

// List returns all accounts, optionally filtered by type.
func (s *Service) List(c *fiber.Ctx) error {
	var (
		users []models.User
		err   error
	)

	if userType := c.Query("type", ""); userType != "" {
		users, err = user.GetByType(s.db, models.UserType(userType))
	} else {
		users, err = user.GetAll(s.db)
	}

	if err != nil {
		log.Error().Err(err).Msg("failed to list users")

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}

	out := make([]fiber.Map, len(users))
	for i := range users {
		out[i] = view(&users[i])
	}

	return c.JSON(fiber.Map{"users": out})
}

// Get returns a single account.
func (s *Service) Get(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid user id"})
	}

	u, err := user.Get(s.db, id)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}

		log.Error().Err(err).Uint64("user_id", id).Msg("failed to load user")

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}

	return c.JSON(view(u))
}

// Create provisions a new account.
func (s *Service) Create(c *fiber.Ctx) error {
	req := new(CreateRequest)

	if err := c.BodyParser(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	if err := s.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	actorID := auth.ActorID(c)

	u, err := s.provider.CreateUser(req.Username, req.Email, req.Password, req.FirstName, req.LastName, req.UserType, req.RoleID)
	if err != nil {
		if errors.Is(err, auth.ErrUserNameOrEmailExists) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
		}

		log.Error().Err(err).Str("username", req.Username).Msg("failed to create user")

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}

	s.audit.Record(actorID, "user.create", "created user "+u.Username,
		models.JSONMap{"user_id": float64(u.ID), "user_type": string(u.UserType)})

	return c.Status(fiber.StatusCreated).JSON(view(u))
}

// Update changes profile fields and role of an account.
func (s *Service) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid user id"})
	}

	req := new(UpdateRequest)

	if err := c.BodyParser(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	if err := s.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if _, err := user.Get(s.db, id); err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}

	if err := s.provider.UpdateUser(id, req.Email, req.FirstName, req.LastName, req.RoleID); err != nil {
		log.Error().Err(err).Uint64("user_id", id).Msg("failed to update user")

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}

	actorID := auth.ActorID(c)
	s.audit.Record(actorID, "user.update", "updated user "+strconv.FormatUint(id, 10),
		models.JSONMap{"user_id": float64(id)})

	u, err := user.Get(s.db, id)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}

	return c.JSON(view(u))
}

// Activate re-enables a disabled account.
func (s *Service) Activate(c *fiber.Ctx) error {
	return s.setActive(c, true, "user.activate")
}

// Deactivate disables an account without deleting it.
func (s *Service) Deactivate(c *fiber.Ctx) error {
	return s.setActive(c, false, "user.deactivate")
}

func (s *Service) setActive(c *fiber.Ctx, active bool, action string) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid user id"})
	}

	if err := user.SetActive(s.db, id, active); err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}

		log.Error().Err(err).Uint64("user_id", id).Msg("failed to toggle user")

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}

	actorID := auth.ActorID(c)
	s.audit.Record(actorID, action, action+" for user "+strconv.FormatUint(id, 10),
		models.JSONMap{"user_id": float64(id), "active": active})

	return c.JSON(fiber.Map{"id": id, "active": active})
}

func parseID(c *fiber.Ctx) (uint64, error) {
	return strconv.ParseUint(c.Params("id"), 10, 64)
}
