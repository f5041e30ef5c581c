package daemon

import (
	"strings"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/givehub-admin/givehub-admin/internal/auth"
	"github.com/givehub-admin/givehub-admin/internal/config"
	"github.com/givehub-admin/givehub-admin/internal/db/controller/setting"
	"github.com/givehub-admin/givehub-admin/internal/db/models"
)

// seed provisions the data a fresh install needs: the permission catalog,
// the admin role, one admin account and the default settings. All steps are
// idempotent, existing rows are never overwritten.
func seed(_ *config.Config, db *gorm.DB) {
	seedPermissions(db)
	adminRole := seedAdminRole(db)
	seedAdminUser(db, adminRole)

	if err := setting.EnsureDefaults(db); err != nil {
		log.Error().Err(err).Msg("failed to seed default settings")
	}
}

func seedPermissions(db *gorm.DB) {
	for _, name := range auth.AllPermissions {
		resource, action, _ := strings.Cut(name, ".")

		perm := models.Permission{
			Name:     name,
			Resource: resource,
			Action:   action,
		}

		if err := db.Where("name = ?", name).FirstOrCreate(&perm).Error; err != nil {
			log.Error().Err(err).Str("permission", name).Msg("failed to seed permission")
		}
	}
}

func seedAdminRole(db *gorm.DB) *models.Role {
	role := models.Role{
		Name:        "admin",
		Description: "Full platform administration",
		IsSystem:    true,
	}

	if err := db.Where("name = ?", role.Name).FirstOrCreate(&role).Error; err != nil {
		log.Error().Err(err).Msg("failed to seed admin role")
		return nil
	}

	// attach every permission to the admin role
	var permissions []models.Permission
	if err := db.Find(&permissions).Error; err != nil {
		log.Error().Err(err).Msg("failed to load permissions for admin role")
		return &role
	}

	for _, perm := range permissions {
		mapping := models.RolePermission{
			RoleID:       role.ID,
			PermissionID: perm.ID,
		}

		if err := db.Where("role_id = ? AND permission_id = ?", role.ID, perm.ID).
			FirstOrCreate(&mapping).Error; err != nil {
			log.Error().Err(err).Str("permission", perm.Name).Msg("failed to map permission to admin role")
		}
	}

	return &role
}

func seedAdminUser(db *gorm.DB, adminRole *models.Role) {
	if adminRole == nil {
		return
	}

	var count int64

	db.Model(&models.User{}).Count(&count)
	if count > 0 {
		return
	}

	// initial credentials, change them right after the first login
	user := models.User{
		Username: "admin",
		Email:    "admin@localhost",
		Password: models.HashPassword("changeme"),
		Active:   true,
		UserType: models.UserTypeAdmin,
		RoleID:   adminRole.ID,
	}

	if err := db.Create(&user).Error; err != nil {
		log.Error().Err(err).Msg("failed to seed admin user")
		return
	}

	log.Warn().Msg("seeded initial admin user with default password, change it immediately")
}
