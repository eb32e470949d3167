package query

import (
	"cmp"
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"notekeeper/internal/notes/domain/entities"
)

// Apply возвращает упорядоченный список заметок для отображения.
// Входной срез не изменяется, результат содержит копии.
func Apply(notes []entities.Note, cfg Config) []entities.Note {
	cfg = cfg.Normalize()

	view := Scope(notes, cfg.NotebookID, cfg.Search)
	view = FilterText(view, cfg.Search)
	view = FilterTags(view, cfg.Tags, cfg.TagMode)
	Sort(view, cfg.SortKey, cfg.SortOrder)
	return view
}

// Scope выбирает заметки, участвующие в фильтрации. Непустой поиск идет по всем блокнотам,
// иначе берутся заметки активного блокнота. Заметки без блокнота в блокнотный вид не попадают.
func Scope(notes []entities.Note, notebookID, search string) []entities.Note {
	global := strings.TrimSpace(search) != ""
	out := make([]entities.Note, 0, len(notes))
	for _, n := range notes {
		if global || (notebookID != "" && n.NotebookID == notebookID) {
			out = append(out, n.Clone())
		}
	}
	return out
}

// FilterText оставляет заметки, у которых заголовок или текст содержит search без учета регистра.
func FilterText(notes []entities.Note, search string) []entities.Note {
	needle := strings.ToLower(strings.TrimSpace(search))
	if needle == "" {
		return notes
	}

	out := make([]entities.Note, 0, len(notes))
	for _, n := range notes {
		if strings.Contains(strings.ToLower(n.Title), needle) ||
			strings.Contains(strings.ToLower(n.Content), needle) {
			out = append(out, n)
		}
	}
	return out
}

// FilterTags оставляет заметки, содержащие все теги из tags. В режиме TagModeAll и при
// пустом наборе фильтр пропускает все.
func FilterTags(notes []entities.Note, tags []string, mode TagMode) []entities.Note {
	if mode == TagModeAll || len(tags) == 0 {
		return notes
	}

	out := make([]entities.Note, 0, len(notes))
	for _, n := range notes {
		if n.HasTags(tags) {
			out = append(out, n)
		}
	}
	return out
}

// Sort упорядочивает заметки на месте. Сортировка устойчивая.
func Sort(notes []entities.Note, key SortKey, order SortOrder) {
	var compare func(a, b entities.Note) int
	switch key {
	case SortByTitle:
		col := newCollator()
		compare = func(a, b entities.Note) int {
			return col.CompareString(a.Title, b.Title)
		}
	default:
		compare = func(a, b entities.Note) int {
			return cmp.Compare(a.UpdatedAt, b.UpdatedAt)
		}
	}

	if order == Asc {
		slices.SortStableFunc(notes, compare)
		return
	}
	slices.SortStableFunc(notes, func(a, b entities.Note) int {
		return -compare(a, b)
	})
}

// newCollator создает регистронезависимый коллатор. Коллатор не потокобезопасен,
// поэтому создается на каждый вызов.
func newCollator() *collate.Collator {
	return collate.New(language.Und, collate.IgnoreCase)
}
