package app_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notekeeper/internal/notes/app"
	"notekeeper/internal/notes/domain/entities"
)

func TestNoteValidator_Create(t *testing.T) {
	v, err := app.NewNoteValidator()
	require.NoError(t, err)

	notebookID, fields, err := v.Create(" nb1 ", "  Hi ", "\tOk\n", []string{"b", "a", "b", "  "})
	require.NoError(t, err)
	assert.Equal(t, "nb1", notebookID)
	assert.Equal(t, "Hi", fields.Title)
	assert.Equal(t, "Ok", fields.Content)
	assert.Equal(t, []string{"b", "a"}, fields.Tags)
	assert.Zero(t, fields.UpdatedAt)
}

func TestNoteValidator_Messages(t *testing.T) {
	v, err := app.NewNoteValidator()
	require.NoError(t, err)

	_, _, err = v.Create("", "x", "  y  ", nil)

	var verr *entities.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "notebookId is a required field", verr.Fields["notebookId"])
	assert.Equal(t, "title must be at least 2 characters in length", verr.Fields["title"])
	assert.Equal(t, "content must be at least 2 characters in length", verr.Fields["content"])
	assert.Contains(t, err.Error(), "invalid note: content: ")
}

func TestNoteValidator_UpdateCountsRunes(t *testing.T) {
	v, err := app.NewNoteValidator()
	require.NoError(t, err)

	fields, err := v.Update("Éa", "ok", nil)
	require.NoError(t, err)
	assert.Equal(t, "Éa", fields.Title)
	assert.NotNil(t, fields.Tags)

	_, err = v.Update("É", "ok", nil)
	require.ErrorIs(t, err, entities.ErrInvalidNote)
}
