// Package redis хранит коллекцию заметок строковым значением в Redis.
package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"notekeeper/internal/notes/ports/storage"
	"notekeeper/pkg/logger"
)

const (
	ErrGetBlob = "failed to get blob from redis"
	ErrSetBlob = "failed to set blob in redis"
)

// BlobStore реализует storage.BlobStore поверх go-redis.
type BlobStore struct {
	client redis.Cmdable
	prefix string
}

// NewBlobStore создает хранилище. prefix добавляется к каждому ключу.
func NewBlobStore(client redis.Cmdable, prefix string) *BlobStore {
	return &BlobStore{client: client, prefix: prefix}
}

// Get читает значение. Отсутствующий ключ - storage.ErrBlobNotFound.
func (s *BlobStore) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := s.client.Get(ctx, s.prefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, storage.ErrBlobNotFound
		}
		logger.Log(ctx).Error(ctx, ErrGetBlob, zap.String("key", s.prefix+key), zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrGetBlob, err)
	}
	return value, nil
}

// Set записывает значение без срока жизни.
func (s *BlobStore) Set(ctx context.Context, key string, value []byte) error {
	if err := s.client.Set(ctx, s.prefix+key, value, 0).Err(); err != nil {
		logger.Log(ctx).Error(ctx, ErrSetBlob, zap.String("key", s.prefix+key), zap.Error(err))
		return fmt.Errorf("%s: %w", ErrSetBlob, err)
	}
	return nil
}
