package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notekeeper/pkg/db/redis"
)

func TestNewClient(t *testing.T) {
	srv := miniredis.RunT(t)

	client, err := redis.NewClient(context.Background(), redis.Config{Addr: srv.Addr()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	assert.Equal(t, redis.DefaultPoolSize, client.Options().PoolSize)
}

func TestNewClientUnreachable(t *testing.T) {
	client, err := redis.NewClient(context.Background(), redis.Config{
		Addr:    "127.0.0.1:1",
		Timeout: 100 * time.Millisecond,
	})

	require.Error(t, err)
	assert.Nil(t, client)
	assert.Contains(t, err.Error(), "failed to connect to redis")
}
