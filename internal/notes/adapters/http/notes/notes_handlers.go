// Package notes содержит HTTP-обработчики для управления заметками.
package notes

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"notekeeper/internal/notes/adapters/http/response"
	"notekeeper/internal/notes/api"
	"notekeeper/internal/notes/domain/entities"
	"notekeeper/internal/notes/domain/query"
	"notekeeper/pkg/logger"
)

// Константы ошибок и сообщений для логирования.
const (
	LogHandlerCreateNote = "handling create note request"
	LogHandlerGetNote    = "handling get note request"
	LogHandlerListNotes  = "handling list notes request"
	LogHandlerUpdateNote = "handling update note request"
	LogHandlerDeleteNote = "handling delete note request"
	LogHandlerVersions   = "handling note versions request"
	LogHandlerTags       = "handling tags request"

	ErrMsgInvalidRequestBody = "invalid request body"
	ErrMsgInvalidVersionID   = "invalid version id"
	ErrMsgUnknownNotebook    = "notebookId must reference an existing notebook"
	ErrMsgReadNotebooks      = "error reading notebooks file"
)

// Store - операции над заметками, нужные обработчикам.
type Store interface {
	Query(ctx context.Context, cfg query.Config) []entities.Note
	Tags(ctx context.Context) []string
	Get(ctx context.Context, noteID string) (entities.Note, error)
	Versions(ctx context.Context, noteID string) ([]entities.NoteVersion, error)
	Version(ctx context.Context, noteID string, versionID int) (entities.NoteVersion, error)
	Create(ctx context.Context, notebookID, title, content string, tags []string) (entities.Note, error)
	Update(ctx context.Context, noteID, title, content string, tags []string) (entities.Note, error)
	Delete(ctx context.Context, noteID string) error
}

// Notebooks разрешает id блокнота в заголовок.
type Notebooks interface {
	Title(id string) (string, bool)
	Refresh(ctx context.Context) ([]entities.Notebook, error)
}

// Handler обработчик HTTP-запросов для работы с заметками.
type Handler struct {
	store     Store
	notebooks Notebooks
}

// NewHandler создает новый экземпляр обработчика заметок.
func NewHandler(store Store, notebooks Notebooks) *Handler {
	return &Handler{store: store, notebooks: notebooks}
}

// ListNotes отдает видимый список заметок для фильтров из строки запроса.
func (h *Handler) ListNotes(ctx fiber.Ctx) error {
	reqCtx := ctx.Context()
	log := logger.Log(reqCtx).With(zap.String("handler", "Handler.ListNotes"))
	log.Debug(reqCtx, LogHandlerListNotes)

	params := api.ListParams{
		Notebook: ctx.Query(api.ParamNotebook),
		Search:   ctx.Query(api.ParamSearch),
		Tags:     api.SplitTags(ctx.Query(api.ParamTags)),
		TagMode:  ctx.Query(api.ParamTagMode),
		Sort:     ctx.Query(api.ParamSort),
	}
	cfg, err := params.Config()
	if err != nil {
		log.Debug(reqCtx, "invalid list parameters", zap.Error(err))
		return response.Error(ctx, fiber.StatusBadRequest, err.Error())
	}

	res := api.NotesResponse{
		Notes: h.store.Query(reqCtx, cfg),
		Tags:  h.store.Tags(reqCtx),
	}
	if res.Notes == nil {
		res.Notes = []entities.Note{}
	}
	if cfg.NotebookID != "" {
		if title, ok := h.notebooks.Title(cfg.NotebookID); ok {
			res.Notebook = &entities.Notebook{ID: cfg.NotebookID, Title: title}
		}
	}

	return response.JSON(ctx, fiber.StatusOK, res)
}

// GetNote отдает заметку по id.
func (h *Handler) GetNote(ctx fiber.Ctx) error {
	reqCtx := ctx.Context()
	log := logger.Log(reqCtx).With(zap.String("handler", "Handler.GetNote"))
	log.Debug(reqCtx, LogHandlerGetNote)

	note, err := h.store.Get(reqCtx, ctx.Params("id"))
	if err != nil {
		return h.fail(ctx, log, err)
	}
	return response.JSON(ctx, fiber.StatusOK, note)
}

// CreateNote создает заметку.
func (h *Handler) CreateNote(ctx fiber.Ctx) error {
	reqCtx := ctx.Context()
	log := logger.Log(reqCtx).With(zap.String("handler", "Handler.CreateNote"))
	log.Debug(reqCtx, LogHandlerCreateNote)

	var req api.CreateNoteRequest
	if err := ctx.Bind().Body(&req); err != nil {
		log.Debug(reqCtx, ErrMsgInvalidRequestBody, zap.Error(err))
		return response.Error(ctx, fiber.StatusBadRequest, ErrMsgInvalidRequestBody)
	}

	if req.NotebookID != "" {
		known, err := h.knownNotebook(reqCtx, req.NotebookID)
		if err != nil {
			log.Error(reqCtx, ErrMsgReadNotebooks, zap.Error(err))
			return response.Error(ctx, fiber.StatusInternalServerError, ErrMsgReadNotebooks)
		}
		if !known {
			return response.JSON(ctx, fiber.StatusBadRequest, api.ErrorResponse{
				Error:  fmt.Sprintf("%s: %s", entities.ErrNotebookNotFound, req.NotebookID),
				Fields: map[string]string{"notebookId": ErrMsgUnknownNotebook},
			})
		}
	}

	note, err := h.store.Create(reqCtx, req.NotebookID, req.Title, req.Content, req.Tags)
	if err != nil {
		return h.fail(ctx, log, err)
	}
	return response.JSON(ctx, fiber.StatusCreated, note)
}

// knownNotebook ищет блокнот в кэше каталога, при промахе перечитывает каталог.
func (h *Handler) knownNotebook(ctx context.Context, id string) (bool, error) {
	if _, ok := h.notebooks.Title(id); ok {
		return true, nil
	}
	notebooks, err := h.notebooks.Refresh(ctx)
	if err != nil {
		return false, err
	}
	_, ok := entities.FindNotebook(notebooks, id)
	return ok, nil
}

// UpdateNote редактирует заметку, сохраняя прежнее состояние в истории.
func (h *Handler) UpdateNote(ctx fiber.Ctx) error {
	reqCtx := ctx.Context()
	log := logger.Log(reqCtx).With(zap.String("handler", "Handler.UpdateNote"))
	log.Debug(reqCtx, LogHandlerUpdateNote)

	var req api.UpdateNoteRequest
	if err := ctx.Bind().Body(&req); err != nil {
		log.Debug(reqCtx, ErrMsgInvalidRequestBody, zap.Error(err))
		return response.Error(ctx, fiber.StatusBadRequest, ErrMsgInvalidRequestBody)
	}

	note, err := h.store.Update(reqCtx, ctx.Params("id"), req.Title, req.Content, req.Tags)
	if err != nil {
		return h.fail(ctx, log, err)
	}
	return response.JSON(ctx, fiber.StatusOK, note)
}

// DeleteNote удаляет заметку. Повторное удаление тоже отвечает 204.
func (h *Handler) DeleteNote(ctx fiber.Ctx) error {
	reqCtx := ctx.Context()
	log := logger.Log(reqCtx).With(zap.String("handler", "Handler.DeleteNote"))
	log.Debug(reqCtx, LogHandlerDeleteNote)

	if err := h.store.Delete(reqCtx, ctx.Params("id")); err != nil {
		return h.fail(ctx, log, err)
	}
	if err := ctx.SendStatus(fiber.StatusNoContent); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// ListVersions отдает историю заметки.
func (h *Handler) ListVersions(ctx fiber.Ctx) error {
	reqCtx := ctx.Context()
	log := logger.Log(reqCtx).With(zap.String("handler", "Handler.ListVersions"))
	log.Debug(reqCtx, LogHandlerVersions)

	versions, err := h.store.Versions(reqCtx, ctx.Params("id"))
	if err != nil {
		return h.fail(ctx, log, err)
	}
	return response.JSON(ctx, fiber.StatusOK, versions)
}

// GetVersion отдает один снимок. История не меняется.
func (h *Handler) GetVersion(ctx fiber.Ctx) error {
	reqCtx := ctx.Context()
	log := logger.Log(reqCtx).With(zap.String("handler", "Handler.GetVersion"))
	log.Debug(reqCtx, LogHandlerVersions)

	versionID, err := strconv.Atoi(ctx.Params("versionId"))
	if err != nil || versionID < 1 {
		return response.Error(ctx, fiber.StatusBadRequest, ErrMsgInvalidVersionID)
	}

	version, err := h.store.Version(reqCtx, ctx.Params("id"), versionID)
	if err != nil {
		return h.fail(ctx, log, err)
	}
	return response.JSON(ctx, fiber.StatusOK, version)
}

// ListTags отдает все используемые теги.
func (h *Handler) ListTags(ctx fiber.Ctx) error {
	reqCtx := ctx.Context()
	logger.Log(reqCtx).Debug(reqCtx, LogHandlerTags)

	return response.JSON(ctx, fiber.StatusOK, h.store.Tags(reqCtx))
}

func (h *Handler) fail(ctx fiber.Ctx, log *logger.Logger, err error) error {
	var verr *entities.ValidationError
	if errors.As(err, &verr) || errors.Is(err, entities.ErrNotFound) {
		log.Debug(ctx.Context(), "request rejected", zap.Error(err))
	} else {
		log.Error(ctx.Context(), "request failed", zap.Error(err))
	}
	return response.FromError(ctx, err)
}
