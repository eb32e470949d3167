// Package response формирует JSON-ответы с ошибками.
package response

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v3"

	"notekeeper/internal/notes/api"
	"notekeeper/internal/notes/domain/entities"
)

// MsgInternalError - текст ответа для непредвиденных ошибок.
const MsgInternalError = "internal server error"

// JSON отправляет тело со статусом.
func JSON(ctx fiber.Ctx, status int, body any) error {
	if err := ctx.Status(status).JSON(body); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// Error отправляет {"error": msg}.
func Error(ctx fiber.Ctx, status int, msg string) error {
	return JSON(ctx, status, api.ErrorResponse{Error: msg})
}

// FromError выбирает статус по доменной ошибке.
func FromError(ctx fiber.Ctx, err error) error {
	var verr *entities.ValidationError
	switch {
	case errors.As(err, &verr):
		return JSON(ctx, fiber.StatusBadRequest, api.ErrorResponse{
			Error:  entities.ErrInvalidNote.Error(),
			Fields: verr.Fields,
		})
	case errors.Is(err, entities.ErrNotFound), errors.Is(err, entities.ErrNotebookNotFound):
		return Error(ctx, fiber.StatusNotFound, err.Error())
	case errors.Is(err, entities.ErrInvalidNotebook):
		return Error(ctx, fiber.StatusBadRequest, err.Error())
	default:
		return Error(ctx, fiber.StatusInternalServerError, MsgInternalError)
	}
}
