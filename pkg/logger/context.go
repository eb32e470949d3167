package logger

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"
)

// ErrLoggerNotFound возвращается, когда в контексте нет логгера.
var ErrLoggerNotFound = errors.New("logger not found in context")

var (
	globalMu sync.RWMutex
	global   *Logger
	fallback = func() *Logger {
		zl, err := zap.NewProduction()
		if err != nil {
			return NewNop()
		}
		return &Logger{l: zl.With(zap.String("logger", "fallback"))}
	}()
)

type loggerKey struct{}

// NewContext кладет логгер в контекст.
func NewContext(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

// FromContext достает логгер из контекста.
func FromContext(ctx context.Context) (*Logger, error) {
	if ctx == nil {
		return nil, ErrLoggerNotFound
	}
	l, ok := ctx.Value(loggerKey{}).(*Logger)
	if !ok || l == nil {
		return nil, ErrLoggerNotFound
	}
	return l, nil
}

// SetGlobalLogger заменяет глобальный логгер. nil сбрасывает его.
func SetGlobalLogger(l *Logger) {
	globalMu.Lock()
	defer globalMu.Unlock()
	global = l
}

// Log возвращает логгер из контекста, затем глобальный, затем резервный.
func Log(ctx context.Context) *Logger {
	if l, err := FromContext(ctx); err == nil {
		return l
	}

	globalMu.RLock()
	defer globalMu.RUnlock()
	if global != nil {
		return global
	}
	return fallback
}
