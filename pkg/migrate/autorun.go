package migrate

import (
	"context"
	"fmt"

	"github.com/angelmondragon/glowshop-backend/pkg/config"
	"github.com/angelmondragon/glowshop-backend/pkg/db"
	"github.com/angelmondragon/glowshop-backend/pkg/logger"
)

// MaybeRun applies pending migrations on boot when auto-migrate is enabled, or when the
// service runs on a local SQLite file in dev.
func MaybeRun(ctx context.Context, cfg *config.Config, logg *logger.Logger, client *db.Client) error {
	localSQLite := cfg.App.IsDev() && cfg.FeatureFlags.UseSQLite
	if !cfg.FeatureFlags.AutoMigrate && !localSQLite {
		return nil
	}

	sqlDB, err := client.DB().DB()
	if err != nil {
		return fmt.Errorf("extracting sql.DB: %w", err)
	}

	ctx = logg.WithFields(ctx, map[string]any{"env": cfg.App.Env, "dialect": client.Dialect()})
	logg.Info(ctx, "running goose migrations on boot")

	if err := Run(ctx, sqlDB, client.Dialect(), "up"); err != nil {
		return fmt.Errorf("running goose up: %w", err)
	}

	logg.Info(ctx, "goose migrations completed")
	return nil
}
