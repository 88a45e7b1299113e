package main

import (
	"context"
	"fmt"
	"io"

	"github.com/angelmondragon/glowshop-backend/api/controllers"
	"github.com/angelmondragon/glowshop-backend/pkg/config"
	"github.com/angelmondragon/glowshop-backend/pkg/db"
	"github.com/angelmondragon/glowshop-backend/pkg/logger"
	"github.com/angelmondragon/glowshop-backend/pkg/migrate"
	"github.com/angelmondragon/glowshop-backend/pkg/redis"
	"github.com/angelmondragon/glowshop-backend/pkg/storage"
)

// snapshotBackend is the cart store plus whatever it holds open.
type snapshotBackend struct {
	store     storage.KeyValue
	closers   []io.Closer
	readiness map[string]controllers.Pinger
}

func openSnapshotBackend(ctx context.Context, cfg *config.Config, logg *logger.Logger) (*snapshotBackend, error) {
	backend := &snapshotBackend{readiness: map[string]controllers.Pinger{}}

	switch cfg.Snapshot.Kind() {
	case config.SnapshotBackendNone:
		backend.store = storage.Discard{}

	case config.SnapshotBackendRedis:
		client, err := redis.New(ctx, cfg.Redis, logg)
		if err != nil {
			return nil, fmt.Errorf("bootstrap redis: %w", err)
		}
		backend.closers = append(backend.closers, client)
		backend.readiness["redis"] = client
		backend.store = storage.NewRedis(client, cfg.Snapshot.TTL)

	case config.SnapshotBackendDB:
		client, err := db.New(ctx, cfg.DB, cfg.FeatureFlags.UseSQLite, logg)
		if err != nil {
			return nil, fmt.Errorf("bootstrap database: %w", err)
		}
		backend.closers = append(backend.closers, client)
		backend.readiness["db"] = client
		if err := migrate.MaybeRun(ctx, cfg, logg, client); err != nil {
			return backend, fmt.Errorf("run migrations: %w", err)
		}
		table := storage.NewTable(client.DB(), cfg.Snapshot.TTL)
		purged, err := table.PurgeExpired(ctx)
		if err != nil {
			logg.Warn(logg.WithField(ctx, "error", err.Error()), "failed to purge expired cart snapshots")
		} else if purged > 0 {
			logg.Info(logg.WithField(ctx, "purged", purged), "purged expired cart snapshots")
		}
		backend.store = table

	default:
		backend.store = storage.NewMemory()
	}
	return backend, nil
}
