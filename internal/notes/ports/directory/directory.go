// Package directory defines the notebook directory port.
package directory

import (
	"context"
	"errors"
	"fmt"

	"notekeeper/internal/notes/domain/entities"
)

// ErrFetch - общая причина всех ошибок загрузки списка блокнотов.
var ErrFetch = errors.New("failed to fetch notebooks")

// FetchError описывает неудачную загрузку: сеть, статус не 2xx или тело не JSON-массив.
// Ошибка восстанавливаемая, повтор выполняется только по явному действию пользователя.
type FetchError struct {
	Status int
	Err    error
}

func (e *FetchError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: status %d: %v", ErrFetch, e.Status, e.Err)
	}
	return fmt.Sprintf("%s: %v", ErrFetch, e.Err)
}

// Unwrap возвращает исходную ошибку.
func (e *FetchError) Unwrap() []error {
	return []error{ErrFetch, e.Err}
}

// Directory отдает список блокнотов на время сессии.
type Directory interface {
	FetchNotebooks(ctx context.Context) ([]entities.Notebook, error)
}

// Writer - блокноты, которые можно дополнять и удалять (файловый каталог сервера).
type Writer interface {
	Directory
	Append(ctx context.Context, nb entities.Notebook) (entities.Notebook, error)
	Remove(ctx context.Context, id string) error
}
