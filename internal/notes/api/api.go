// Package api описывает тела запросов и ответов HTTP API заметок. Пакет общий для сервера и CLI.
package api

import (
	"net/url"
	"strings"

	"notekeeper/internal/notes/domain/entities"
	"notekeeper/internal/notes/domain/query"
)

// Пути API.
const (
	PathNotebooks = "/api/notebooks"
	PathNotes     = "/api/notes"
	PathTags      = "/api/tags"
)

// Параметры запроса списка заметок.
const (
	ParamNotebook = "notebook"
	ParamSearch   = "search"
	ParamTags     = "tags"
	ParamTagMode  = "tagMode"
	ParamSort     = "sort"
)

// MessageNotebookAdded - сообщение об успешном добавлении блокнота.
const MessageNotebookAdded = "Notebook added successfully"

// CreateNoteRequest - тело POST /api/notes.
type CreateNoteRequest struct {
	NotebookID string   `json:"notebookId"`
	Title      string   `json:"title"`
	Content    string   `json:"content"`
	Tags       []string `json:"tags"`
}

// UpdateNoteRequest - тело PUT /api/notes/:id.
type UpdateNoteRequest struct {
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Tags    []string `json:"tags"`
}

// NotesResponse - видимый список заметок и все используемые теги.
type NotesResponse struct {
	Notebook *entities.Notebook `json:"notebook,omitempty"`
	Notes    []entities.Note    `json:"notes"`
	Tags     []string           `json:"tags"`
}

// NotebookCreatedResponse - ответ POST /api/notebooks.
type NotebookCreatedResponse struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Message string `json:"message"`
}

// NotebookDeletedResponse - ответ DELETE /api/notebooks/:id.
type NotebookDeletedResponse struct {
	ID           string `json:"id"`
	DeletedNotes int    `json:"deletedNotes"`
}

// ErrorResponse - тело любого ответа с ошибкой.
type ErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

// ListParams - фильтры списка заметок в виде параметров URL.
type ListParams struct {
	Notebook string
	Search   string
	Tags     []string
	TagMode  string
	Sort     string
}

// Values кодирует параметры для строки запроса.
func (p ListParams) Values() url.Values {
	v := url.Values{}
	set := func(key, value string) {
		if value != "" {
			v.Set(key, value)
		}
	}
	set(ParamNotebook, p.Notebook)
	set(ParamSearch, p.Search)
	set(ParamTags, strings.Join(query.NormalizeTags(p.Tags), ","))
	set(ParamTagMode, p.TagMode)
	set(ParamSort, p.Sort)
	return v
}

// SplitTags разбирает список тегов через запятую.
func SplitTags(raw string) []string {
	if raw == "" {
		return nil
	}
	return query.NormalizeTags(strings.Split(raw, ","))
}

// Config строит конфигурацию запроса. Если теги переданы без режима, включается режим выбранных тегов.
func (p ListParams) Config() (query.Config, error) {
	key, order, err := query.ParseSortOption(p.Sort)
	if err != nil {
		return query.Config{}, err
	}

	mode, err := query.ParseTagMode(p.TagMode)
	if err != nil {
		return query.Config{}, err
	}

	tags := query.NormalizeTags(p.Tags)
	if strings.TrimSpace(p.TagMode) == "" && len(tags) > 0 {
		mode = query.TagModeSelected
	}

	cfg := query.NewConfig().
		SelectNotebook(p.Notebook).
		WithSearch(p.Search).
		WithSort(key, order)
	cfg.Tags = tags
	cfg.TagMode = mode
	return cfg.Normalize(), nil
}
