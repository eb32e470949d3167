// Package storage defines the key/value port used to persist the note collection.
package storage

import (
	"context"
	"errors"
)

// ErrBlobNotFound возвращается, когда ключ отсутствует в хранилище.
var ErrBlobNotFound = errors.New("blob not found")

// BlobStore хранит непрозрачные значения по ключу. Запись полностью заменяет значение.
type BlobStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}
