package app_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"notekeeper/internal/notes/app"
	"notekeeper/internal/notes/ports/storage"
)

var errStorageDown = errors.New("storage is down")

type fakeBlobs struct {
	mu      sync.Mutex
	data    map[string][]byte
	getErr  error
	setErr  error
	setCall int
}

func newFakeBlobs() *fakeBlobs {
	return &fakeBlobs{data: map[string][]byte{}}
}

func (f *fakeBlobs) Get(_ context.Context, key string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	v, ok := f.data[key]
	if !ok {
		return nil, storage.ErrBlobNotFound
	}
	return append([]byte(nil), v...), nil
}

func (f *fakeBlobs) Set(_ context.Context, key string, value []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.setCall++
	if f.setErr != nil {
		return f.setErr
	}
	f.data[key] = append([]byte(nil), value...)
	return nil
}

type ticker struct {
	now time.Time
}

func (t *ticker) Now() time.Time {
	t.now = t.now.Add(time.Second)
	return t.now
}

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("note-%d", n)
	}
}

func newStore(t *testing.T, blobs storage.BlobStore) *app.NoteStore {
	t.Helper()

	validator, err := app.NewNoteValidator()
	require.NoError(t, err)

	clock := &ticker{now: time.UnixMilli(1_700_000_000_000)}
	return app.NewNoteStore(blobs, validator,
		app.WithClock(clock.Now),
		app.WithIDGenerator(sequentialIDs()))
}
