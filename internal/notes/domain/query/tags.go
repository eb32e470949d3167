package query

import (
	"slices"
	"strings"

	"notekeeper/internal/notes/domain/entities"
)

// Tags собирает все используемые теги: без пробелов по краям, без пустых и дубликатов,
// по возрастанию без учета регистра.
func Tags(notes []entities.Note) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, n := range notes {
		for _, tag := range n.Tags {
			tag = strings.TrimSpace(tag)
			if tag == "" {
				continue
			}
			if _, ok := seen[tag]; ok {
				continue
			}
			seen[tag] = struct{}{}
			out = append(out, tag)
		}
	}

	col := newCollator()
	slices.SortFunc(out, func(a, b string) int {
		if c := col.CompareString(a, b); c != 0 {
			return c
		}
		return strings.Compare(a, b)
	})
	return out
}
