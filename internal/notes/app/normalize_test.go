package app_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notekeeper/internal/notes/app"
	"notekeeper/internal/notes/domain/entities"
)

func TestDecodeNotes_Normalizes(t *testing.T) {
	raw := `[
		{"id": 1712345678901, "notebookId": "nb1", "title": " Daily Standup ", "content": "Update team", "tags": ["work", " work ", "", 7, "meetings"], "updatedAt": 1700000000000},
		{"id": "abc", "notebookId": 2, "title": "No extras", "content": "Nothing else"},
		"garbage",
		null,
		{"notebookId": "nb3", "title": "No id", "content": "Gets one", "updatedAt": "1700000000005"},
		{"id": "abc", "notebookId": "nb4", "title": "Duplicate", "content": "Gets a new id", "versions": [{"versionId": 1, "title": "Old", "content": "Older"}]}
	]`

	notes, err := app.DecodeNotes([]byte(raw), sequentialIDs())
	require.NoError(t, err)
	require.Len(t, notes, 4)

	assert.Equal(t, "1712345678901", notes[0].ID)
	assert.Equal(t, "Daily Standup", notes[0].Title)
	assert.Equal(t, []string{"work", "meetings"}, notes[0].Tags)
	assert.Equal(t, int64(1_700_000_000_000), notes[0].UpdatedAt)
	assert.NotNil(t, notes[0].Versions)

	assert.Equal(t, "abc", notes[1].ID)
	assert.Equal(t, "2", notes[1].NotebookID)
	assert.Empty(t, notes[1].Tags)
	assert.NotNil(t, notes[1].Tags)
	assert.Empty(t, notes[1].Versions)
	assert.Zero(t, notes[1].UpdatedAt)

	assert.Equal(t, "note-1", notes[2].ID)
	assert.Equal(t, int64(1_700_000_000_005), notes[2].UpdatedAt)

	assert.Equal(t, "note-2", notes[3].ID)
	require.Len(t, notes[3].Versions, 1)
	assert.Equal(t, "note-2", notes[3].Versions[0].ParentID)
	assert.Equal(t, "Old", notes[3].Versions[0].Title)
}

func TestDecodeNotes_VersionIDsIncrease(t *testing.T) {
	raw := `[{"id": "n", "notebookId": "nb1", "title": "T", "content": "C",
		"versions": [{"versionId": 3}, {"versionId": 2}, {}, "bad", {"versionId": "9"}]}]`

	notes, err := app.DecodeNotes([]byte(raw), sequentialIDs())
	require.NoError(t, err)
	require.Len(t, notes, 1)

	var ids []int
	for _, v := range notes[0].Versions {
		ids = append(ids, v.VersionID)
	}
	assert.Equal(t, []int{3, 4, 5, 9}, ids)
	assert.Equal(t, 10, notes[0].NextVersionID())
}

func TestDecodeNotes_Invalid(t *testing.T) {
	for _, raw := range []string{``, `{}`, `"notes"`, `[{"id": 1}`, `42`} {
		_, err := app.DecodeNotes([]byte(raw), sequentialIDs())

		var perr *app.StorageParseError
		assert.ErrorAs(t, err, &perr, raw)
	}
}

func TestEncodeNotes(t *testing.T) {
	data, err := app.EncodeNotes(nil)
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(data))

	note := entities.Note{
		ID:         "n1",
		NotebookID: "nb1",
		NoteFields: entities.NoteFields{Title: "Title", Content: "Content", Tags: []string{"a"}, UpdatedAt: 5},
		Versions: []entities.NoteVersion{{
			VersionID:  1,
			ParentID:   "n1",
			NoteFields: entities.NoteFields{Title: "Old", Content: "Older", Tags: []string{}, UpdatedAt: 1},
		}},
	}
	data, err = app.EncodeNotes([]entities.Note{note})
	require.NoError(t, err)

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, "nb1", decoded[0]["notebookId"])
	assert.Equal(t, "Title", decoded[0]["title"])

	again, err := app.DecodeNotes(data, sequentialIDs())
	require.NoError(t, err)
	assert.Equal(t, []entities.Note{note}, again)
}
