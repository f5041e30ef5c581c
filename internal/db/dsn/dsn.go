// Package dsn composes the MySQL data source name from the loaded
// configuration.
package dsn

import (
	"fmt"

	"github.com/givehub-admin/givehub-admin/internal/config"
)

// Create returns the DSN for the configured database. Extras carries the
// driver parameters (charset, parseTime, loc) verbatim from the config file.
func Create(cfg *config.Config) string {
	db := cfg.DB

	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s", db.User, db.Password, db.Host, db.Port, db.Name)
	if db.Extras != "" {
		dsn += "?" + db.Extras
	}

	return dsn
}
