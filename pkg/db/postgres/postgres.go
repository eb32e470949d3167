// Package postgres открывает пул соединений pgx и применяет миграции.
package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"notekeeper/pkg/logger"
)

const (
	LogConnecting = "connecting to Postgres"
	LogConnected  = "connected to Postgres"
	LogClosing    = "closing Postgres connection pool"

	ErrParseConfig  = "failed to parse connection config"
	ErrCreatePool   = "failed to create connection pool"
	ErrPingDatabase = "failed to ping database"
)

// Database владеет пулом соединений.
type Database struct {
	pool *pgxpool.Pool
}

// New создает пул и проверяет соединение.
func New(ctx context.Context, dsn string, minConn, maxConn int) (*Database, error) {
	log := logger.Log(ctx).With(zap.String("component", "postgres"))
	log.Info(ctx, LogConnecting, zap.Int("min_conn", minConn), zap.Int("max_conn", maxConn))

	poolCfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrParseConfig, err)
	}
	if minConn > 0 {
		poolCfg.MinConns = int32(minConn)
	}
	if maxConn > 0 {
		poolCfg.MaxConns = int32(maxConn)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrCreatePool, err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("%s: %w", ErrPingDatabase, err)
	}

	log.Info(ctx, LogConnected)
	return &Database{pool: pool}, nil
}

// Pool возвращает пул соединений.
func (db *Database) Pool() *pgxpool.Pool {
	return db.pool
}

// Close закрывает пул.
func (db *Database) Close(ctx context.Context) {
	logger.Log(ctx).Info(ctx, LogClosing)
	db.pool.Close()
}
