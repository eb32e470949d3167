// Package http содержит компоненты для HTTP сервера.
package http

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v3"

	"notekeeper/internal/notes/adapters/http/middleware"
	"notekeeper/internal/notes/adapters/http/notebooks"
	"notekeeper/internal/notes/adapters/http/notes"
	"notekeeper/internal/notes/adapters/http/response"
	"notekeeper/internal/notes/api"
)

// ServerConfig - параметры fiber.App.
type ServerConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	BodyLimit    int
}

// NewApp создает fiber.App, который отвечает JSON на любые ошибки.
func NewApp(cfg ServerConfig) *fiber.App {
	return fiber.New(fiber.Config{
		AppName:      "notekeeper",
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		BodyLimit:    cfg.BodyLimit,
		ErrorHandler: errorHandler,
	})
}

// SetupRouter настраивает маршрутизацию для HTTP сервера.
func SetupRouter(app *fiber.App, port int, notebooksHandler *notebooks.Handler, notesHandler *notes.Handler) {
	// Middleware для всех запросов.
	app.Use(middleware.NewRequestIDMiddleware())
	app.Use(middleware.NewLoggerMiddleware())
	app.Use(middleware.NewRecoveryMiddleware())

	app.Get("/", func(c fiber.Ctx) error {
		return c.SendString(fmt.Sprintf("Server running on PORT %d", port))
	})

	notebookRoutes := app.Group(api.PathNotebooks)
	notebookRoutes.Get("/", notebooksHandler.ListNotebooks)
	notebookRoutes.Post("/", notebooksHandler.AppendNotebook)
	notebookRoutes.Delete("/:id", notebooksHandler.RemoveNotebook)

	noteRoutes := app.Group(api.PathNotes)
	noteRoutes.Get("/", notesHandler.ListNotes)
	noteRoutes.Post("/", notesHandler.CreateNote)
	noteRoutes.Get("/:id", notesHandler.GetNote)
	noteRoutes.Put("/:id", notesHandler.UpdateNote)
	noteRoutes.Delete("/:id", notesHandler.DeleteNote)
	noteRoutes.Get("/:id/versions", notesHandler.ListVersions)
	noteRoutes.Get("/:id/versions/:versionId", notesHandler.GetVersion)

	app.Get(api.PathTags, notesHandler.ListTags)

	// Обработчик для несуществующих маршрутов.
	app.Use(func(c fiber.Ctx) error {
		return response.Error(c, fiber.StatusNotFound, "route not found")
	})
}

func errorHandler(c fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return response.Error(c, fe.Code, fe.Message)
	}
	return response.Error(c, fiber.StatusInternalServerError, response.MsgInternalError)
}
