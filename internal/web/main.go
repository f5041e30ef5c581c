// Package web assembles the HTTP API: middleware chain, handler
// registration and server lifecycle.
package web

import (
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/givehub-admin/givehub-admin/internal/audit"
	"github.com/givehub-admin/givehub-admin/internal/auth"
	"github.com/givehub-admin/givehub-admin/internal/config"
	fiberlogger "github.com/givehub-admin/givehub-admin/internal/logger/adapter/fiber"
	campaignhandler "github.com/givehub-admin/givehub-admin/internal/web/handler/admin/campaign"
	donationhandler "github.com/givehub-admin/givehub-admin/internal/web/handler/admin/donation"
	userhandler "github.com/givehub-admin/givehub-admin/internal/web/handler/admin/user"
	"github.com/givehub-admin/givehub-admin/internal/web/handler/dashboard"
	"github.com/givehub-admin/givehub-admin/internal/web/handler/login"
	"github.com/givehub-admin/givehub-admin/internal/web/handler/logout"
	noticehandler "github.com/givehub-admin/givehub-admin/internal/web/handler/notice"
	publichandler "github.com/givehub-admin/givehub-admin/internal/web/handler/public"
	settingshandler "github.com/givehub-admin/givehub-admin/internal/web/handler/settings"
	sharehandler "github.com/givehub-admin/givehub-admin/internal/web/handler/share"
)

const checkAlivePath = "/healthz"

// Service represents the web service.
type Service struct {
	App          *fiber.App
	cfg          *config.Config
	fastShutDown bool
	alive        atomic.Bool
	db           *gorm.DB
	authService  *auth.Service
}

// Start starts the web service on the given address.
func (s *Service) Start(addr string) error {
	var doneFiber = make(chan bool)

	go func() {
		if err := s.App.Listen(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Msgf("fiber listen error: %v", err)
		}

		doneFiber <- true
	}()

	<-doneFiber // wait for fiber to stop

	return nil
}

// WaitShutdown waits for graceful shutdown of the web service.
func (s *Service) WaitShutdown() {
	irqSig := make(chan os.Signal, 1)
	signal.Notify(irqSig, syscall.SIGINT, syscall.SIGTERM)

	sig := <-irqSig
	log.Info().Msgf("shutdown request (signal: %v)", sig)

	// Graceful shutdown for reverse proxies: set status to fail, so checkalive returns fail.
	if !s.fastShutDown {
		log.Info().Msgf(
			"graceful shutdown: return 503 while %d seconds to let LB to remove this pod from active targets",
			s.cfg.Webserver.ShutDownTime,
		)

		s.alive.Store(false)
		time.Sleep(time.Duration(s.cfg.Webserver.ShutDownTime) * time.Second)
	}

	// stop fiber http server
	serverShutdown := make(chan struct{})

	go func() {
		log.Info().Msg("stopping http server ...")

		err := s.App.Shutdown()
		if err != nil {
			log.Error().Err(err).Msg("")
		}

		serverShutdown <- struct{}{}
	}()

	<-serverShutdown
	log.Info().Msg("http server was stopped ... good bye...")
}

// New creates a new web service with the given configuration.
func New(cfg *config.Config, db *gorm.DB) *Service {
	if cfg == nil {
		panic("config cannot be nil")
	}

	if db == nil {
		panic("db cannot be nil")
	}

	// create fiber app
	app := fiber.New(
		fiber.Config{
			ReadBufferSize: 8192,
			AppName:        "GiveHub-Admin",
			CaseSensitive:  true,
			Prefork:        false,
			Immutable:      true,
		},
	)

	if !cfg.Webserver.DisableRecover {
		app.Use(recover.New())
	}

	// access logging
	app.Use(fiberlogger.New(fiberlogger.Config{
		Config:        cfg.Log,
		CheckAliveURI: checkAlivePath,
	}))

	// session auth middleware
	app.Use(AuthMiddleware)

	// Initialize auth service and audit trail
	authService := auth.NewService(db)
	recorder := audit.NewDBRecorder(db)

	// init web service
	service := &Service{
		cfg:         cfg,
		App:         app,
		db:          db,
		authService: authService,
	}
	service.alive.Store(true)

	// health probe for load balancers
	app.Get(checkAlivePath, func(c *fiber.Ctx) error {
		if !service.alive.Load() {
			return c.SendStatus(fiber.StatusServiceUnavailable)
		}

		return c.SendStatus(fiber.StatusOK)
	})

	// init handlers (they register their own routes with permission checks)
	if err := login.Handler.Init(app, cfg, db); err != nil {
		log.Fatal().Err(err).Msg("failed to init login handler")
	}

	logout.Handler.Init(app, cfg)
	dashboard.Handler.Init(app, cfg, db, authService)
	settingshandler.Handler.Init(app, cfg, db, authService, recorder)
	sharehandler.Handler.Init(app, cfg, db, authService, recorder)
	publichandler.Handler.Init(app, cfg, db)
	userhandler.Handler.Init(app, cfg, db, authService, recorder)
	campaignhandler.Handler.Init(app, cfg, db, authService, recorder)
	donationhandler.Handler.Init(app, cfg, db, authService, recorder)
	noticehandler.Handler.Init(app, cfg, db, authService, recorder)

	return service
}
