package entities_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notekeeper/internal/notes/domain/entities"
)

func sampleNote() entities.Note {
	return entities.Note{
		ID:         "n1",
		NotebookID: "nb1",
		NoteFields: entities.NoteFields{
			Title:     "Daily Standup",
			Content:   "Update team on the API integration progress",
			Tags:      []string{"work"},
			UpdatedAt: 100,
		},
	}
}

func TestNoteRevise(t *testing.T) {
	note := sampleNote()

	revised := note.Revise(entities.NoteFields{Title: "Standup", Content: "Moved to 10am", UpdatedAt: 200})

	require.Len(t, revised.Versions, 1)
	assert.Equal(t, 1, revised.Versions[0].VersionID)
	assert.Equal(t, "n1", revised.Versions[0].ParentID)
	assert.Equal(t, "Daily Standup", revised.Versions[0].Title)
	assert.Equal(t, int64(100), revised.Versions[0].UpdatedAt)
	assert.Equal(t, "Standup", revised.Title)
	assert.Empty(t, note.Versions, "original note must not change")
}

func TestNoteSnapshotIsDetached(t *testing.T) {
	note := sampleNote()
	revised := note.Revise(entities.NoteFields{Title: "Standup", Content: "Moved", Tags: []string{"x"}})

	note.Tags[0] = "mutated"

	assert.Equal(t, []string{"work"}, revised.Versions[0].Tags)
}

func TestNextVersionIDSkipsTakenNumbers(t *testing.T) {
	note := sampleNote()
	note.Versions = []entities.NoteVersion{{VersionID: 1}, {VersionID: 5}}

	assert.Equal(t, 6, note.NextVersionID())
}

func TestNoteHasTags(t *testing.T) {
	note := sampleNote()
	note.Tags = []string{"fitness", "health"}

	assert.True(t, note.HasTags(nil))
	assert.True(t, note.HasTags([]string{"fitness"}))
	assert.True(t, note.HasTags([]string{"health", "fitness"}))
	assert.False(t, note.HasTags([]string{"fitness", "diet"}))
	assert.False(t, note.HasTags([]string{"Fitness"}))
}

func TestNoteVersionLookup(t *testing.T) {
	note := sampleNote().Revise(entities.NoteFields{Title: "Second"})

	v, ok := note.Version(1)
	require.True(t, ok)
	assert.Equal(t, "Daily Standup", v.Title)

	_, ok = note.Version(2)
	assert.False(t, ok)
}

func TestValidationError(t *testing.T) {
	err := &entities.ValidationError{Fields: map[string]string{"title": "too short", "content": "required"}}

	assert.ErrorIs(t, err, entities.ErrInvalidNote)
	assert.Equal(t, "invalid note: content: required; title: too short", err.Error())
}

func TestFindNotebook(t *testing.T) {
	notebooks := []entities.Notebook{{ID: "nb1", Title: "Work Notes"}, {ID: "nb2", Title: "Personal Projects"}}

	nb, ok := entities.FindNotebook(notebooks, "nb2")
	assert.True(t, ok)
	assert.Equal(t, "Personal Projects", nb.Title)

	_, ok = entities.FindNotebook(notebooks, "nb9")
	assert.False(t, ok)
}
