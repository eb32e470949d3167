// Package notebooks содержит HTTP-обработчики списка блокнотов.
package notebooks

import (
	"context"
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"notekeeper/internal/notes/adapters/directory/file"
	"notekeeper/internal/notes/adapters/http/response"
	"notekeeper/internal/notes/api"
	"notekeeper/internal/notes/domain/entities"
	"notekeeper/pkg/logger"
)

// Константы ошибок и сообщений для логирования.
const (
	LogHandlerList   = "handling list notebooks request"
	LogHandlerAppend = "handling append notebook request"
	LogHandlerRemove = "handling remove notebook request"

	ErrMsgReadNotebooks      = "error reading notebooks file"
	ErrMsgWriteNotebooks     = "error writing notebooks file"
	ErrMsgDeleteNotes        = "failed to delete notes of notebook"
	ErrMsgInvalidRequestBody = "invalid request body"
	ErrMsgFieldsRequired     = "id and title are required"
)

// Catalog - кэш блокнотов, общий с обработчиками заметок.
type Catalog interface {
	Refresh(ctx context.Context) ([]entities.Notebook, error)
}

// Writer дополняет и сокращает список блокнотов.
type Writer interface {
	Append(ctx context.Context, nb entities.Notebook) (entities.Notebook, error)
	Remove(ctx context.Context, id string) error
}

// NoteCleaner удаляет заметки блокнота.
type NoteCleaner interface {
	DeleteByNotebook(ctx context.Context, notebookID string) (int, error)
}

// Handler обработчик HTTP-запросов для блокнотов.
type Handler struct {
	catalog Catalog
	writer  Writer
	notes   NoteCleaner
}

// NewHandler создает обработчик.
func NewHandler(catalog Catalog, writer Writer, notes NoteCleaner) *Handler {
	return &Handler{catalog: catalog, writer: writer, notes: notes}
}

// ListNotebooks перечитывает и отдает список блокнотов.
func (h *Handler) ListNotebooks(ctx fiber.Ctx) error {
	reqCtx := ctx.Context()
	log := logger.Log(reqCtx).With(zap.String("handler", "Handler.ListNotebooks"))
	log.Debug(reqCtx, LogHandlerList)

	notebooks, err := h.catalog.Refresh(reqCtx)
	if err != nil {
		log.Error(reqCtx, ErrMsgReadNotebooks, zap.Error(err))
		return response.Error(ctx, fiber.StatusInternalServerError, ErrMsgReadNotebooks)
	}
	if notebooks == nil {
		notebooks = []entities.Notebook{}
	}
	return response.JSON(ctx, fiber.StatusOK, notebooks)
}

// AppendNotebook добавляет блокнот в файл.
func (h *Handler) AppendNotebook(ctx fiber.Ctx) error {
	reqCtx := ctx.Context()
	log := logger.Log(reqCtx).With(zap.String("handler", "Handler.AppendNotebook"))
	log.Debug(reqCtx, LogHandlerAppend)

	var req entities.Notebook
	if err := ctx.Bind().Body(&req); err != nil {
		log.Debug(reqCtx, ErrMsgInvalidRequestBody, zap.Error(err))
		return response.Error(ctx, fiber.StatusBadRequest, ErrMsgInvalidRequestBody)
	}

	nb, err := h.writer.Append(reqCtx, req)
	switch {
	case errors.Is(err, entities.ErrInvalidNotebook):
		return response.Error(ctx, fiber.StatusBadRequest, ErrMsgFieldsRequired)
	case errors.Is(err, file.ErrDuplicateNotebook):
		return response.Error(ctx, fiber.StatusBadRequest, err.Error())
	case err != nil:
		log.Error(reqCtx, ErrMsgWriteNotebooks, zap.Error(err))
		return response.Error(ctx, fiber.StatusInternalServerError, ErrMsgWriteNotebooks)
	}

	h.refresh(reqCtx, log)
	return response.JSON(ctx, fiber.StatusOK, api.NotebookCreatedResponse{
		ID:      nb.ID,
		Title:   nb.Title,
		Message: api.MessageNotebookAdded,
	})
}

// RemoveNotebook удаляет заметки блокнота, затем сам блокнот. Если каскад не удался,
// блокнот остается в файле и запрос можно повторить.
func (h *Handler) RemoveNotebook(ctx fiber.Ctx) error {
	reqCtx := ctx.Context()
	log := logger.Log(reqCtx).With(zap.String("handler", "Handler.RemoveNotebook"))
	log.Debug(reqCtx, LogHandlerRemove)

	id := ctx.Params("id")
	notebooks, err := h.catalog.Refresh(reqCtx)
	if err != nil {
		log.Error(reqCtx, ErrMsgReadNotebooks, zap.Error(err))
		return response.Error(ctx, fiber.StatusInternalServerError, ErrMsgReadNotebooks)
	}
	if _, ok := entities.FindNotebook(notebooks, id); !ok {
		return response.Error(ctx, fiber.StatusNotFound, fmt.Sprintf("%s: %s", entities.ErrNotebookNotFound, id))
	}

	deleted, err := h.notes.DeleteByNotebook(reqCtx, id)
	if err != nil {
		log.Error(reqCtx, ErrMsgDeleteNotes, zap.Error(err))
		return response.FromError(ctx, err)
	}

	if err := h.writer.Remove(reqCtx, id); err != nil {
		if errors.Is(err, entities.ErrNotebookNotFound) {
			return response.Error(ctx, fiber.StatusNotFound, err.Error())
		}
		log.Error(reqCtx, ErrMsgWriteNotebooks, zap.Error(err))
		return response.Error(ctx, fiber.StatusInternalServerError, ErrMsgWriteNotebooks)
	}
	h.refresh(reqCtx, log)

	return response.JSON(ctx, fiber.StatusOK, api.NotebookDeletedResponse{ID: id, DeletedNotes: deleted})
}

func (h *Handler) refresh(ctx context.Context, log *logger.Logger) {
	if _, err := h.catalog.Refresh(ctx); err != nil {
		log.Warn(ctx, "failed to refresh notebook catalog", zap.Error(err))
	}
}
