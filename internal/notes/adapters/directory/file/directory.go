// Package file хранит список блокнотов в JSON-файле на диске сервера.
package file

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"go.uber.org/zap"

	"notekeeper/internal/notes/domain/entities"
	"notekeeper/internal/notes/ports/directory"
	"notekeeper/pkg/logger"
)

const (
	LogSeeded          = "notebook file created with default notebooks"
	LogNotebookAdded   = "notebook appended"
	LogNotebookRemoved = "notebook removed"

	ErrReadFile  = "failed to read notebooks file"
	ErrWriteFile = "failed to write notebooks file"
)

// ErrDuplicateNotebook возвращается, если блокнот с таким id уже есть.
var ErrDuplicateNotebook = errors.New("notebook already exists")

// DefaultNotebooks - содержимое файла при первом запуске.
var DefaultNotebooks = []entities.Notebook{
	{ID: "nb1", Title: "Work Notes"},
	{ID: "nb2", Title: "Personal Projects"},
	{ID: "nb3", Title: "Shopping Lists"},
	{ID: "nb4", Title: "University"},
}

// Directory читает и дополняет файл блокнотов. Запись сериализуется мьютексом.
type Directory struct {
	path string
	mu   sync.RWMutex
}

var _ directory.Writer = (*Directory)(nil)

// New создает каталог поверх файла path.
func New(path string) *Directory {
	return &Directory{path: path}
}

// Seed создает файл со стандартными блокнотами, если его еще нет.
func (d *Directory) Seed(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, err := os.Stat(d.path); err == nil {
		return nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%s: %w", ErrReadFile, err)
	}

	if err := d.write(DefaultNotebooks); err != nil {
		return err
	}
	logger.Log(ctx).Info(ctx, LogSeeded, zap.String("path", d.path))
	return nil
}

// FetchNotebooks читает файл. Ошибка чтения или тело, не являющееся массивом, - *directory.FetchError.
func (d *Directory) FetchNotebooks(_ context.Context) ([]entities.Notebook, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return d.read()
}

// Append добавляет блокнот в конец файла.
func (d *Directory) Append(ctx context.Context, nb entities.Notebook) (entities.Notebook, error) {
	nb.ID = strings.TrimSpace(nb.ID)
	nb.Title = strings.TrimSpace(nb.Title)
	if nb.ID == "" || nb.Title == "" {
		return entities.Notebook{}, fmt.Errorf("%w: id and title are required", entities.ErrInvalidNotebook)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	notebooks, err := d.read()
	if err != nil {
		return entities.Notebook{}, err
	}
	if _, exists := entities.FindNotebook(notebooks, nb.ID); exists {
		return entities.Notebook{}, fmt.Errorf("%w: %s", ErrDuplicateNotebook, nb.ID)
	}

	if err := d.write(append(notebooks, nb)); err != nil {
		return entities.Notebook{}, err
	}

	logger.Log(ctx).Info(ctx, LogNotebookAdded, zap.String("notebook_id", nb.ID))
	return nb, nil
}

// Remove удаляет блокнот. Неизвестный id - entities.ErrNotebookNotFound.
func (d *Directory) Remove(ctx context.Context, id string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	notebooks, err := d.read()
	if err != nil {
		return err
	}

	i := slices.IndexFunc(notebooks, func(nb entities.Notebook) bool { return nb.ID == id })
	if i < 0 {
		return fmt.Errorf("%w: %s", entities.ErrNotebookNotFound, id)
	}

	if err := d.write(slices.Delete(notebooks, i, i+1)); err != nil {
		return err
	}

	logger.Log(ctx).Info(ctx, LogNotebookRemoved, zap.String("notebook_id", id))
	return nil
}

func (d *Directory) read() ([]entities.Notebook, error) {
	data, err := os.ReadFile(d.path)
	if err != nil {
		return nil, &directory.FetchError{Err: fmt.Errorf("%s: %w", ErrReadFile, err)}
	}

	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '[' {
		return nil, &directory.FetchError{Err: errors.New("notebooks file is not a JSON array")}
	}

	var notebooks []entities.Notebook
	if err := json.Unmarshal(data, &notebooks); err != nil {
		return nil, &directory.FetchError{Err: fmt.Errorf("%s: %w", ErrReadFile, err)}
	}
	if notebooks == nil {
		notebooks = []entities.Notebook{}
	}
	return notebooks, nil
}

// write заменяет файл через временный файл в том же каталоге.
func (d *Directory) write(notebooks []entities.Notebook) error {
	data, err := json.MarshalIndent(notebooks, "", "  ")
	if err != nil {
		return fmt.Errorf("%s: %w", ErrWriteFile, err)
	}

	if err := os.MkdirAll(filepath.Dir(d.path), 0o755); err != nil {
		return fmt.Errorf("%s: %w", ErrWriteFile, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(d.path), ".notebooks-*.json")
	if err != nil {
		return fmt.Errorf("%s: %w", ErrWriteFile, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(append(data, '\n')); err != nil {
		tmp.Close()
		return fmt.Errorf("%s: %w", ErrWriteFile, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%s: %w", ErrWriteFile, err)
	}
	if err := os.Rename(tmp.Name(), d.path); err != nil {
		return fmt.Errorf("%s: %w", ErrWriteFile, err)
	}
	return nil
}
