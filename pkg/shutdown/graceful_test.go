package shutdown_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"notekeeper/pkg/shutdown"
)

func TestRunExecutesAllHooks(t *testing.T) {
	var calls atomic.Int32
	hook := func(context.Context) error {
		calls.Add(1)
		return nil
	}
	failing := func(context.Context) error {
		calls.Add(1)
		return errors.New("boom")
	}

	shutdown.Run(context.Background(), time.Second, hook, failing, hook)

	assert.Equal(t, int32(3), calls.Load())
}

func TestRunRespectsTimeout(t *testing.T) {
	slow := func(ctx context.Context) error {
		select {
		case <-time.After(5 * time.Second):
		case <-ctx.Done():
		}
		return nil
	}

	start := time.Now()
	shutdown.Run(context.Background(), 50*time.Millisecond, slow)

	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestWaitReturnsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	hookCalled := make(chan struct{})

	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	shutdown.Wait(ctx, time.Second, func(context.Context) error {
		close(hookCalled)
		return nil
	})

	select {
	case <-hookCalled:
	case <-time.After(time.Second):
		t.Fatal("hook was not called")
	}
}
