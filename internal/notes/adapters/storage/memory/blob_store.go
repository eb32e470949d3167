// Package memory хранит блобы в памяти процесса. Используется в тестах и при запуске без внешнего хранилища.
package memory

import (
	"context"
	"slices"
	"sync"

	"notekeeper/internal/notes/ports/storage"
)

// BlobStore - потокобезопасная карта ключ -> значение.
type BlobStore struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

// NewBlobStore создает пустое хранилище.
func NewBlobStore() *BlobStore {
	return &BlobStore{blobs: make(map[string][]byte)}
}

// Get возвращает копию значения.
func (s *BlobStore) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.blobs[key]
	if !ok {
		return nil, storage.ErrBlobNotFound
	}
	return slices.Clone(value), nil
}

// Set заменяет значение целиком.
func (s *BlobStore) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.blobs[key] = slices.Clone(value)
	return nil
}
