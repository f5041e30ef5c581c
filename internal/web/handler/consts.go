package handler

const (
	// RootPath is the root path the route group.
	RootPath = "/"

	// RouterRootPath is the root path inside a route group.
	RouterRootPath = "/"

	// APIRootPath is the prefix for authenticated admin API routes.
	APIRootPath = "/api"

	// PublicRootPath is the prefix for unauthenticated public routes.
	PublicRootPath = "/public"

	// ErrNilACDFatalLogMsg is used if app or cfg or db var pointer is nil.
	ErrNilACDFatalLogMsg = "app, cfg or db is nil"
)
