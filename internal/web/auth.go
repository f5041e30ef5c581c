package web

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/givehub-admin/givehub-admin/internal/auth"
	"github.com/givehub-admin/givehub-admin/internal/web/handler"
	"github.com/givehub-admin/givehub-admin/internal/web/handler/login"
)

// AuthMiddleware rejects unauthenticated requests to the admin API. The
// public surface, the health probe and the login endpoint stay open.
func AuthMiddleware(c *fiber.Ctx) error {
	if isOpenPath(c) {
		return c.Next()
	}

	if auth.SessionUser(c) == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}

	return c.Next()
}

// isOpenPath reports whether the request may pass without a session.
func isOpenPath(c *fiber.Ctx) bool {
	path := strings.ToLower(c.Path())

	return path == login.Path ||
		path == "/healthz" ||
		strings.HasPrefix(path, handler.PublicRootPath+"/")
}
