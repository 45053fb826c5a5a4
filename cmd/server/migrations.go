package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/cityinfo-api/internal/config"
	"github.com/phrazzld/cityinfo-api/internal/platform/postgres/migrations"
)

// handleMigrations executes a migration command against the configured
// database. Migrations only apply to the postgres driver.
func handleMigrations(ctx context.Context, cfg *config.Config, command string, logger *slog.Logger) error {
	if cfg.Database.Driver != "postgres" {
		return fmt.Errorf("migrations require the postgres driver, configured driver is %q", cfg.Database.Driver)
	}

	switch command {
	case "up", "down", "status", "version":
	default:
		return fmt.Errorf("unknown migration command %q", command)
	}

	dbCfg := cfg.Database
	dbCfg.AutoMigrate = false
	db, err := setupAppDatabase(ctx, dbCfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("failed to close database", "error", err)
		}
	}()

	logger.Info("Executing migrations", "command", command)

	switch command {
	case "up":
		return migrations.Up(ctx, db, logger)
	case "down":
		return migrations.Down(ctx, db, logger)
	case "status":
		return migrations.Status(ctx, db, logger)
	default:
		version, err := migrations.Version(ctx, db, logger)
		if err != nil {
			return err
		}
		logger.Info("Current migration version", "version", version)
		return nil
	}
}
