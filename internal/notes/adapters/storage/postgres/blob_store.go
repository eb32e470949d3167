// Package postgres хранит коллекцию заметок в таблице note_blobs.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"notekeeper/internal/notes/ports/storage"
	"notekeeper/pkg/logger"
)

const (
	ErrGetBlob = "failed to get blob"
	ErrSetBlob = "failed to set blob"
)

// PgxPoolInterface - часть pgxpool.Pool, нужная хранилищу. Позволяет подставить pgxmock.
type PgxPoolInterface interface {
	QueryRow(ctx context.Context, query string, args ...any) pgx.Row
	Exec(ctx context.Context, query string, args ...any) (pgconn.CommandTag, error)
}

// BlobStore реализует storage.BlobStore поверх Postgres.
type BlobStore struct {
	pool PgxPoolInterface
}

// NewBlobStore создает хранилище.
func NewBlobStore(pool PgxPoolInterface) *BlobStore {
	return &BlobStore{pool: pool}
}

// Get читает значение по ключу.
func (s *BlobStore) Get(ctx context.Context, key string) ([]byte, error) {
	log := logger.Log(ctx).With(zap.String("repository", "note_blobs"), zap.String("method", "Get"))

	var value []byte
	err := s.pool.QueryRow(ctx,
		`SELECT value FROM note_blobs WHERE key = $1`,
		key,
	).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "blob not found", zap.String("key", key))
			return nil, storage.ErrBlobNotFound
		}
		log.Error(ctx, ErrGetBlob, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrGetBlob, err)
	}
	return value, nil
}

// Set заменяет значение целиком.
func (s *BlobStore) Set(ctx context.Context, key string, value []byte) error {
	log := logger.Log(ctx).With(zap.String("repository", "note_blobs"), zap.String("method", "Set"))

	_, err := s.pool.Exec(ctx,
		`INSERT INTO note_blobs (key, value, updated_at) VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`,
		key, value,
	)
	if err != nil {
		log.Error(ctx, ErrSetBlob, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrSetBlob, err)
	}

	log.Debug(ctx, "blob stored", zap.String("key", key), zap.Int("bytes", len(value)))
	return nil
}
