package app

import (
	"context"
	"slices"
	"sync"

	"go.uber.org/zap"

	"notekeeper/internal/notes/domain/entities"
	"notekeeper/internal/notes/ports/directory"
	"notekeeper/pkg/logger"
)

const (
	LogNotebooksFetched = "notebooks fetched"
	LogNotebooksFailed  = "failed to fetch notebooks"
)

// Catalog хранит последний полученный список блокнотов и последнюю ошибку загрузки.
// Повтор выполняется только явным вызовом Refresh. Если запросы пересекаются,
// побеждает тот, что завершился последним.
type Catalog struct {
	dir directory.Directory

	mu        sync.RWMutex
	notebooks []entities.Notebook
	err       error
}

// NewCatalog создает каталог поверх directory.
func NewCatalog(dir directory.Directory) *Catalog {
	return &Catalog{dir: dir}
}

// Refresh загружает блокноты. При ошибке прежний список сохраняется.
func (c *Catalog) Refresh(ctx context.Context) ([]entities.Notebook, error) {
	notebooks, err := c.dir.FetchNotebooks(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()

	c.err = err
	if err != nil {
		logger.Log(ctx).Warn(ctx, LogNotebooksFailed, zap.Error(err))
		return slices.Clone(c.notebooks), err
	}

	c.notebooks = slices.Clone(notebooks)
	logger.Log(ctx).Debug(ctx, LogNotebooksFetched, zap.Int("count", len(notebooks)))
	return slices.Clone(c.notebooks), nil
}

// Notebooks возвращает последний успешно загруженный список.
func (c *Catalog) Notebooks() []entities.Notebook {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.notebooks)
}

// Err возвращает ошибку последней загрузки или nil.
func (c *Catalog) Err() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.err
}

// Title возвращает заголовок блокнота.
func (c *Catalog) Title(id string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	nb, ok := entities.FindNotebook(c.notebooks, id)
	return nb.Title, ok
}
