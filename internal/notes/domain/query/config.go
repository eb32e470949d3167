// Package query строит видимый список заметок из полной коллекции и неизменяемой
// конфигурации фильтров. Пакет не хранит состояния: каждый вызов считает результат заново.
package query

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// SortKey - поле сортировки.
type SortKey string

// SortOrder - направление сортировки.
type SortOrder string

// TagMode - режим фильтра по тегам.
type TagMode string

const (
	SortByDate  SortKey = "date"
	SortByTitle SortKey = "title"

	Asc  SortOrder = "asc"
	Desc SortOrder = "desc"

	// TagModeAll отключает фильтр по тегам целиком.
	TagModeAll TagMode = "all"
	// TagModeSelected оставляет заметки, содержащие все выбранные теги.
	TagModeSelected TagMode = "selected"
)

// Значения по умолчанию: сначала новые.
const (
	DefaultSortKey   = SortByDate
	DefaultSortOrder = Desc
)

// Ошибки разбора параметров.
var (
	ErrInvalidSort    = errors.New("invalid sort option")
	ErrInvalidTagMode = errors.New("invalid tag mode")
)

// Config - неизменяемый снимок фильтров интерфейса. Методы-переходы возвращают новое значение.
type Config struct {
	NotebookID string
	Search     string
	Tags       []string
	TagMode    TagMode
	SortKey    SortKey
	SortOrder  SortOrder
}

// NewConfig возвращает начальное состояние: блокнот не выбран, все теги, сортировка по дате.
func NewConfig() Config {
	return Config{
		TagMode:   TagModeAll,
		SortKey:   DefaultSortKey,
		SortOrder: DefaultSortOrder,
	}
}

// SelectNotebook переключает блокнот и сбрасывает поиск и выбор тегов.
func (c Config) SelectNotebook(id string) Config {
	c.NotebookID = id
	c.Search = ""
	c.Tags = nil
	c.TagMode = TagModeAll
	return c
}

// WithSearch задает строку поиска.
func (c Config) WithSearch(text string) Config {
	c.Search = text
	return c
}

// WithSort задает ключ и направление сортировки.
func (c Config) WithSort(key SortKey, order SortOrder) Config {
	c.SortKey = key
	c.SortOrder = order
	return c
}

// ToggleTag добавляет или убирает тег и переводит фильтр в режим выбранных тегов.
func (c Config) ToggleTag(tag string) Config {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return c
	}

	tags := slices.Clone(c.Tags)
	if i := slices.Index(tags, tag); i >= 0 {
		tags = slices.Delete(tags, i, i+1)
	} else {
		tags = append(tags, tag)
	}

	c.Tags = tags
	c.TagMode = TagModeSelected
	return c
}

// ToggleAllTags переключает режим "все теги" и очищает выбранные теги.
func (c Config) ToggleAllTags() Config {
	if c.TagMode == TagModeAll {
		c.TagMode = TagModeSelected
	} else {
		c.TagMode = TagModeAll
	}
	c.Tags = nil
	return c
}

// Normalize подставляет значения по умолчанию, обрезает строку поиска и чистит теги.
func (c Config) Normalize() Config {
	c.Search = strings.TrimSpace(c.Search)
	c.NotebookID = strings.TrimSpace(c.NotebookID)
	if c.SortKey != SortByTitle {
		c.SortKey = SortByDate
	}
	if c.SortOrder != Asc {
		c.SortOrder = Desc
	}
	if c.TagMode != TagModeAll {
		c.TagMode = TagModeSelected
	}
	c.Tags = NormalizeTags(c.Tags)
	return c
}

// SortOption возвращает сортировку в виде "date-desc".
func (c Config) SortOption() string {
	n := c.Normalize()
	return string(n.SortKey) + "-" + string(n.SortOrder)
}

// ParseSortOption разбирает значения date-asc, date-desc, title-asc, title-desc.
// Пустая строка дает сортировку по умолчанию.
func ParseSortOption(option string) (SortKey, SortOrder, error) {
	option = strings.ToLower(strings.TrimSpace(option))
	if option == "" {
		return DefaultSortKey, DefaultSortOrder, nil
	}

	key, order, ok := strings.Cut(option, "-")
	if !ok {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidSort, option)
	}

	sk := SortKey(key)
	so := SortOrder(order)
	if (sk != SortByDate && sk != SortByTitle) || (so != Asc && so != Desc) {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidSort, option)
	}
	return sk, so, nil
}

// ParseTagMode разбирает режим тегов. Пустая строка означает "all".
func ParseTagMode(mode string) (TagMode, error) {
	switch TagMode(strings.ToLower(strings.TrimSpace(mode))) {
	case "", TagModeAll:
		return TagModeAll, nil
	case TagModeSelected:
		return TagModeSelected, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidTagMode, mode)
	}
}

// NormalizeTags обрезает пробелы, выбрасывает пустые значения и дубликаты, сохраняя порядок.
// Регистр не меняется.
func NormalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" || slices.Contains(out, tag) {
			continue
		}
		out = append(out, tag)
	}
	return out
}
