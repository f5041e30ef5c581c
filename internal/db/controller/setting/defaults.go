package setting

import (
	"github.com/givehub-admin/givehub-admin/internal/db/models"
)

// Default category names.
const (
	CategoryEmail         = "email"
	CategorySecurity      = "security"
	CategoryGeneral       = "general"
	CategoryBranding      = "branding"
	CategoryPayment       = "payment"
	CategoryNotifications = "notifications"
	CategoryRateLimiting  = "rate_limiting"
	CategoryLegal         = "legal"
	CategorySocial        = "social"
	CategoryEnvironment   = "environment"
	CategoryFeatures      = "features"
)

// defaults is the built-in configuration table, fixed at compile time.
// Numeric values are float64 so a bag read back from the JSON column compares
// equal to its default.
var defaults = map[string]models.JSONMap{
	CategoryEmail: {
		"smtp_host":    "",
		"smtp_port":    587.0,
		"smtp_tls":     true,
		"from_address": "no-reply@givehub.org",
		"from_name":    "GiveHub",
		"enabled":      false,
	},
	CategorySecurity: {
		"session_timeout_minutes": 60.0,
		"password_min_length":     10.0,
		"max_login_attempts":      5.0,
		"lockout_minutes":         15.0,
	},
	CategoryGeneral: {
		"site_name":        "GiveHub",
		"contact_email":    "support@givehub.org",
		"default_language": "en",
		"timezone":         "UTC",
	},
	CategoryBranding: {
		"logo_url":        "/assets/logo.png",
		"favicon_url":     "/assets/favicon.ico",
		"primary_color":   "#2f6f4f",
		"secondary_color": "#f4a259",
	},
	CategoryPayment: {
		"provider":            "stripe",
		"currency":            "USD",
		"min_donation_amount": 100.0,
		"fee_percent":         2.5,
	},
	CategoryNotifications: {
		"email_enabled":         true,
		"notice_fanout_enabled": true,
		"digest_frequency":      "weekly",
	},
	CategoryRateLimiting: {
		"enabled":             true,
		"requests_per_minute": 120.0,
		"burst":               40.0,
	},
	CategoryLegal: {
		"terms_url":   "/legal/terms",
		"privacy_url": "/legal/privacy",
		"imprint":     "",
	},
	CategorySocial: {
		"facebook_url":  "",
		"twitter_url":   "",
		"instagram_url": "",
		"linkedin_url":  "",
	},
	CategoryEnvironment: {
		"name":             "production",
		"maintenance_mode": false,
	},
	CategoryFeatures: {
		"campaigns_enabled":        true,
		"share_links_enabled":      true,
		"notices_enabled":          true,
		"company_accounts_enabled": true,
	},
}

// Defaults returns the built-in defaults table.
// Callers must not mutate the returned bags; use Clone before writing.
func Defaults() map[string]models.JSONMap {
	return defaults
}

// PublicCategories lists the categories safe to expose without authentication.
var PublicCategories = []string{CategoryGeneral, CategoryBranding, CategorySocial, CategoryLegal}
