// Package middleware содержит промежуточное ПО для HTTP обработчиков.
package middleware

import (
	"github.com/gofiber/fiber/v3"

	"notekeeper/pkg/logger"
)

// NewRequestIDMiddleware берет X-Request-ID из запроса или генерирует новый и кладет его в контекст.
func NewRequestIDMiddleware() fiber.Handler {
	return func(ctx fiber.Ctx) error {
		requestCtx := logger.NewRequestIDContext(ctx.Context(), ctx.Get(fiber.HeaderXRequestID))
		id, _ := logger.GetRequestID(requestCtx)

		ctx.SetContext(requestCtx)
		ctx.Set(fiber.HeaderXRequestID, id)
		return ctx.Next()
	}
}
