package logger

import (
	"context"

	"github.com/google/uuid"
)

type requestIDKey struct{}

// NewRequestIDContext сохраняет идентификатор запроса в контексте, генерируя его при пустом id.
func NewRequestIDContext(ctx context.Context, id string) context.Context {
	if id == "" {
		id = GenerateRequestID()
	}
	return context.WithValue(ctx, requestIDKey{}, id)
}

// GetRequestID извлекает идентификатор запроса.
func GetRequestID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(requestIDKey{}).(string)
	return id, ok && id != ""
}

// GenerateRequestID генерирует новый идентификатор.
func GenerateRequestID() string {
	return uuid.NewString()
}
