// Package remote - HTTP-клиент API заметок на resty. Реализует directory.Directory для CLI.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"resty.dev/v3"

	"notekeeper/internal/notes/api"
	"notekeeper/internal/notes/domain/entities"
	"notekeeper/internal/notes/ports/directory"
)

// DefaultTimeout - таймаут одного запроса.
const DefaultTimeout = 10 * time.Second

var errNotArray = errors.New("response body is not a JSON array")

// APIError - ответ сервера со статусом не 2xx.
type APIError struct {
	Status  int
	Message string
	Fields  map[string]string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server responded with status %d", e.Status)
	}
	return fmt.Sprintf("server responded with status %d: %s", e.Status, e.Message)
}

// Unwrap сопоставляет статус с доменной ошибкой.
func (e *APIError) Unwrap() error {
	switch e.Status {
	case http.StatusNotFound:
		return entities.ErrNotFound
	case http.StatusBadRequest:
		if len(e.Fields) > 0 {
			return &entities.ValidationError{Fields: e.Fields}
		}
	}
	return nil
}

// Client обращается к серверу заметок. Повторов нет: повтор выполняет пользователь.
type Client struct {
	rest *resty.Client
}

var _ directory.Directory = (*Client)(nil)

// NewClient создает клиент для baseURL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")
	return &Client{rest: client}
}

// Close освобождает ресурсы resty.
func (c *Client) Close() error {
	return c.rest.Close()
}

// FetchNotebooks загружает список блокнотов. Любая ошибка - *directory.FetchError.
func (c *Client) FetchNotebooks(ctx context.Context) ([]entities.Notebook, error) {
	res, err := c.rest.R().SetContext(ctx).Get(api.PathNotebooks)
	if err != nil {
		return nil, &directory.FetchError{Err: err}
	}
	if res.IsError() {
		return nil, &directory.FetchError{Status: res.StatusCode(), Err: errors.New(res.Status())}
	}

	body := bytes.TrimSpace([]byte(res.String()))
	if len(body) == 0 || body[0] != '[' {
		return nil, &directory.FetchError{Status: res.StatusCode(), Err: errNotArray}
	}

	var notebooks []entities.Notebook
	if err := json.Unmarshal(body, &notebooks); err != nil {
		return nil, &directory.FetchError{Status: res.StatusCode(), Err: err}
	}
	return notebooks, nil
}

// AddNotebook вызывает POST /api/notebooks.
func (c *Client) AddNotebook(ctx context.Context, nb entities.Notebook) (api.NotebookCreatedResponse, error) {
	var out api.NotebookCreatedResponse
	err := c.do(ctx, http.MethodPost, api.PathNotebooks, nil, nb, &out)
	return out, err
}

// RemoveNotebook удаляет блокнот вместе с его заметками.
func (c *Client) RemoveNotebook(ctx context.Context, id string) (api.NotebookDeletedResponse, error) {
	var out api.NotebookDeletedResponse
	err := c.do(ctx, http.MethodDelete, api.PathNotebooks+"/"+id, nil, nil, &out)
	return out, err
}

// ListNotes возвращает отфильтрованный список заметок.
func (c *Client) ListNotes(ctx context.Context, params api.ListParams) (api.NotesResponse, error) {
	var out api.NotesResponse
	err := c.do(ctx, http.MethodGet, api.PathNotes, params.Values(), nil, &out)
	return out, err
}

// GetNote возвращает заметку.
func (c *Client) GetNote(ctx context.Context, id string) (entities.Note, error) {
	var out entities.Note
	err := c.do(ctx, http.MethodGet, notePath(id), nil, nil, &out)
	return out, err
}

// CreateNote создает заметку.
func (c *Client) CreateNote(ctx context.Context, req api.CreateNoteRequest) (entities.Note, error) {
	var out entities.Note
	err := c.do(ctx, http.MethodPost, api.PathNotes, nil, req, &out)
	return out, err
}

// UpdateNote редактирует заметку.
func (c *Client) UpdateNote(ctx context.Context, id string, req api.UpdateNoteRequest) (entities.Note, error) {
	var out entities.Note
	err := c.do(ctx, http.MethodPut, notePath(id), nil, req, &out)
	return out, err
}

// DeleteNote удаляет заметку.
func (c *Client) DeleteNote(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, notePath(id), nil, nil, nil)
}

// Versions возвращает историю заметки.
func (c *Client) Versions(ctx context.Context, id string) ([]entities.NoteVersion, error) {
	var out []entities.NoteVersion
	err := c.do(ctx, http.MethodGet, notePath(id)+"/versions", nil, nil, &out)
	return out, err
}

// Version возвращает один снимок.
func (c *Client) Version(ctx context.Context, id string, versionID int) (entities.NoteVersion, error) {
	var out entities.NoteVersion
	err := c.do(ctx, http.MethodGet, notePath(id)+"/versions/"+strconv.Itoa(versionID), nil, nil, &out)
	return out, err
}

// Tags возвращает все используемые теги.
func (c *Client) Tags(ctx context.Context) ([]string, error) {
	var out []string
	err := c.do(ctx, http.MethodGet, api.PathTags, nil, nil, &out)
	return out, err
}

func (c *Client) do(ctx context.Context, method, path string, params map[string][]string, body, result any) error {
	req := c.rest.R().
		SetContext(ctx).
		SetError(&api.ErrorResponse{})
	if params != nil {
		req.SetQueryParamsFromValues(params)
	}
	if body != nil {
		req.SetBody(body)
	}
	if result != nil {
		req.SetResult(result)
	}

	res, err := req.Execute(method, path)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	if res.IsError() {
		apiErr := &APIError{Status: res.StatusCode()}
		if e, ok := res.Error().(*api.ErrorResponse); ok && e != nil {
			apiErr.Message = e.Error
			apiErr.Fields = e.Fields
		}
		return apiErr
	}
	return nil
}

func notePath(id string) string {
	return api.PathNotes + "/" + id
}
