package config

// DB holds the database connection settings.
type DB struct {
	Host     string // database server host
	Port     int    // database server port
	User     string
	Password string
	Name     string // database (schema) name
	Extras   string // extra driver parameters appended to the DSN

	// GormEngine selects the gorm driver. Only "mysql" is wired in the
	// daemon; tests run on in-memory sqlite.
	GormEngine string
}
