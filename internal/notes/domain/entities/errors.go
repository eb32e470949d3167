package entities

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
)

// Доменные ошибки.
var (
	ErrNotFound         = errors.New("note not found")
	ErrInvalidNote      = errors.New("invalid note")
	ErrNotebookNotFound = errors.New("notebook not found")
	ErrInvalidNotebook  = errors.New("invalid notebook")
)

// ValidationError перечисляет поля, не прошедшие проверку.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := slices.Sorted(maps.Keys(e.Fields))
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return fmt.Sprintf("%s: %s", ErrInvalidNote, strings.Join(parts, "; "))
}

// Unwrap позволяет сравнивать ошибку с ErrInvalidNote.
func (e *ValidationError) Unwrap() error {
	return ErrInvalidNote
}
