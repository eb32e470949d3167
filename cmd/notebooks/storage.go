package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"notekeeper/internal/notes/adapters/storage/memory"
	pgstore "notekeeper/internal/notes/adapters/storage/postgres"
	redisstore "notekeeper/internal/notes/adapters/storage/redis"
	"notekeeper/internal/notes/config"
	"notekeeper/internal/notes/db"
	"notekeeper/internal/notes/ports/storage"
	"notekeeper/pkg/db/redis"
	"notekeeper/pkg/logger"
	"notekeeper/pkg/shutdown"
)

// openBlobStore открывает хранилище, выбранное NOTES_STORAGE_DRIVER, и возвращает хук его закрытия.
func openBlobStore(ctx context.Context, cfg *config.Config) (storage.BlobStore, shutdown.Hook, error) {
	switch cfg.Storage.Driver {
	case config.DriverRedis:
		client, err := redis.NewClient(ctx, cfg.Redis.ClientConfig())
		if err != nil {
			return nil, nil, err
		}
		closeFn := func(ctx context.Context) error {
			logger.Log(ctx).Info(ctx, "closing Redis connection", zap.String("addr", cfg.Redis.Addr))
			return client.Close()
		}
		return redisstore.NewBlobStore(client, cfg.Redis.KeyPrefix), closeFn, nil

	case config.DriverPostgres:
		database, err := db.New(ctx, &cfg.Postgres)
		if err != nil {
			return nil, nil, err
		}
		closeFn := func(ctx context.Context) error {
			database.Close(ctx)
			return nil
		}
		return pgstore.NewBlobStore(database.Pool()), closeFn, nil

	case config.DriverMemory:
		logger.Log(ctx).Warn(ctx, "notes are kept in memory and will be lost on restart")
		return memory.NewBlobStore(), func(context.Context) error { return nil }, nil

	default:
		return nil, nil, fmt.Errorf("%w: %q", config.ErrUnknownDriver, cfg.Storage.Driver)
	}
}
