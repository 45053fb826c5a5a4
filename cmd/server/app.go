package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/cityinfo-api/internal/api/middleware"
	"github.com/phrazzld/cityinfo-api/internal/config"
	"github.com/phrazzld/cityinfo-api/internal/notify"
	"github.com/phrazzld/cityinfo-api/internal/platform/memory"
	"github.com/phrazzld/cityinfo-api/internal/platform/metrics"
	"github.com/phrazzld/cityinfo-api/internal/platform/postgres"
	"github.com/phrazzld/cityinfo-api/internal/service"
	"github.com/phrazzld/cityinfo-api/internal/service/auth"
	"github.com/phrazzld/cityinfo-api/internal/store"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger

	// db is nil when the memory driver is configured.
	db    *sql.DB
	store store.Store

	cityService  service.CityService
	pointService service.PointOfInterestService
	jwtService   auth.JWTService
	notifier     notify.Notifier

	metrics     *metrics.Metrics
	rateLimiter *middleware.RateLimiter
}

// newApplication creates a new application instance with all dependencies initialized.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application, error) {
	if logger == nil {
		logger = slog.Default()
	}

	app := &application{
		config:  cfg,
		logger:  logger,
		metrics: metrics.New(),
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		"issuer", cfg.Auth.Issuer,
		"token_lifetime", cfg.Auth.TokenLifetime.String())

	switch cfg.Database.Driver {
	case "postgres":
		app.db, err = setupAppDatabase(ctx, cfg.Database, logger)
		if err != nil {
			return nil, err
		}
		app.store = postgres.NewStore(app.db, logger)
	default:
		app.store = memory.NewSeededStore(logger)
		logger.Info("Using seeded in-memory store")
	}

	dispatcher := notify.NewDispatcher(logger, notify.NewLocalMailService(cfg.Mail, logger))
	app.notifier = app.metrics.InstrumentNotifier(dispatcher)

	app.cityService, err = service.NewCityService(app.store, logger)
	if err != nil {
		app.cleanup()
		return nil, fmt.Errorf("failed to create city service: %w", err)
	}

	app.pointService, err = service.NewPointOfInterestService(app.store, app.notifier, logger)
	if err != nil {
		app.cleanup()
		return nil, fmt.Errorf("failed to create point of interest service: %w", err)
	}

	if cfg.Server.RateLimitRPS > 0 {
		app.rateLimiter = middleware.NewRateLimiter(cfg.Server.RateLimitRPS, cfg.Server.RateLimitBurst, logger)
	}

	logger.Info("Application initialized successfully")
	return app, nil
}

// Run starts the application server and blocks until ctx is cancelled or
// the server fails.
func (app *application) Run(ctx context.Context) error {
	if err := app.startHTTPServer(ctx, app.setupRouter()); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.db != nil {
		app.logger.Info("Closing database connection")
		if err := app.db.Close(); err != nil {
			app.logger.Error("Failed to close database connection", "error", err)
		}
		app.db = nil
	}
}
