package app

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"notekeeper/internal/notes/domain/entities"
	"notekeeper/internal/notes/domain/query"
)

// StorageParseError означает, что сохраненная коллекция повреждена. Наружу не выходит:
// хранилище считается пустым.
type StorageParseError struct {
	Err error
}

func (e *StorageParseError) Error() string {
	return fmt.Sprintf("corrupt note storage: %v", e.Err)
}

func (e *StorageParseError) Unwrap() error {
	return e.Err
}

// DecodeNotes разбирает сохраненный JSON-массив и приводит каждую запись к модели:
// id становятся строками, отсутствующие tags/versions - пустыми списками, updatedAt - нулем.
// Элементы, не являющиеся объектами, отбрасываются. Записи без id или с повторным id
// получают новый id от newID.
func DecodeNotes(data []byte, newID func() string) ([]entities.Note, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw []any
	if err := dec.Decode(&raw); err != nil {
		return nil, &StorageParseError{Err: err}
	}

	notes := make([]entities.Note, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	for _, item := range raw {
		record, ok := item.(map[string]any)
		if !ok {
			continue
		}

		note := normalizeNote(record)
		if _, dup := seen[note.ID]; note.ID == "" || dup {
			note.ID = newID()
			for i := range note.Versions {
				note.Versions[i].ParentID = note.ID
			}
		}
		seen[note.ID] = struct{}{}
		notes = append(notes, note)
	}
	return notes, nil
}

// EncodeNotes сериализует коллекцию для записи в хранилище.
func EncodeNotes(notes []entities.Note) ([]byte, error) {
	if notes == nil {
		notes = []entities.Note{}
	}
	data, err := json.Marshal(notes)
	if err != nil {
		return nil, fmt.Errorf("failed to encode notes: %w", err)
	}
	return data, nil
}

func normalizeNote(record map[string]any) entities.Note {
	note := entities.Note{
		ID:         strings.TrimSpace(coerceString(record["id"])),
		NotebookID: strings.TrimSpace(coerceString(record["notebookId"])),
		NoteFields: normalizeFields(record),
	}

	rawVersions, _ := record["versions"].([]any)
	note.Versions = make([]entities.NoteVersion, 0, len(rawVersions))
	last := 0
	for _, item := range rawVersions {
		vr, ok := item.(map[string]any)
		if !ok {
			continue
		}
		id := int(coerceInt64(vr["versionId"]))
		if id <= last {
			id = last + 1
		}
		last = id
		note.Versions = append(note.Versions, entities.NoteVersion{
			VersionID:  id,
			ParentID:   note.ID,
			NoteFields: normalizeFields(vr),
		})
	}
	return note
}

func normalizeFields(record map[string]any) entities.NoteFields {
	var tags []string
	if rawTags, ok := record["tags"].([]any); ok {
		for _, t := range rawTags {
			if s, ok := t.(string); ok {
				tags = append(tags, s)
			}
		}
	}

	return entities.NoteFields{
		Title:     strings.TrimSpace(coerceString(record["title"])),
		Content:   strings.TrimSpace(coerceString(record["content"])),
		Tags:      query.NormalizeTags(tags),
		UpdatedAt: coerceInt64(record["updatedAt"]),
	}
}

func coerceString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case json.Number:
		return t.String()
	default:
		return ""
	}
}

func coerceInt64(v any) int64 {
	var s string
	switch t := v.(type) {
	case json.Number:
		s = t.String()
	case string:
		s = strings.TrimSpace(t)
	default:
		return 0
	}

	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int64(f)
	}
	return 0
}
