package handler

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/givehub-admin/givehub-admin/internal/config"
)

// Service is the minimal contract for a web handler package: register your
// own routes on the app during Init.
type Service interface {
	Init(app *fiber.App, cfg *config.Config, db *gorm.DB) error
}
