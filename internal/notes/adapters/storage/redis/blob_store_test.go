package redis_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notekeeper/internal/notes/adapters/storage/redis"
	"notekeeper/internal/notes/ports/storage"
)

func newClient(t *testing.T) (*miniredis.Miniredis, *goredis.Client) {
	t.Helper()

	server := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return server, client
}

func TestBlobStore_GetMissing(t *testing.T) {
	_, client := newClient(t)
	store := redis.NewBlobStore(client, "notekeeper:")

	_, err := store.Get(context.Background(), "notes")
	require.ErrorIs(t, err, storage.ErrBlobNotFound)
}

func TestBlobStore_SetGet(t *testing.T) {
	ctx := context.Background()
	server, client := newClient(t)
	store := redis.NewBlobStore(client, "notekeeper:")

	require.NoError(t, store.Set(ctx, "notes", []byte(`[{"id":"a"}]`)))

	stored, err := server.Get("notekeeper:notes")
	require.NoError(t, err)
	assert.Equal(t, `[{"id":"a"}]`, stored)
	assert.Zero(t, server.TTL("notekeeper:notes"))

	got, err := store.Get(ctx, "notes")
	require.NoError(t, err)
	assert.Equal(t, `[{"id":"a"}]`, string(got))

	require.NoError(t, store.Set(ctx, "notes", []byte(`[]`)))
	got, err = store.Get(ctx, "notes")
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(got))
}

func TestBlobStore_ServerDown(t *testing.T) {
	ctx := context.Background()
	server, client := newClient(t)
	store := redis.NewBlobStore(client, "")

	server.Close()

	_, err := store.Get(ctx, "notes")
	require.Error(t, err)
	assert.NotErrorIs(t, err, storage.ErrBlobNotFound)
	assert.Contains(t, err.Error(), redis.ErrGetBlob)

	err = store.Set(ctx, "notes", []byte(`[]`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), redis.ErrSetBlob)
}
