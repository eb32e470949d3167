package app_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notekeeper/internal/notes/app"
	"notekeeper/internal/notes/domain/entities"
	"notekeeper/internal/notes/ports/directory"
)

type scriptedDirectory struct {
	responses []func() ([]entities.Notebook, error)
	calls     int
}

func (d *scriptedDirectory) FetchNotebooks(context.Context) ([]entities.Notebook, error) {
	r := d.responses[d.calls]
	d.calls++
	return r()
}

func ok(nbs ...entities.Notebook) func() ([]entities.Notebook, error) {
	return func() ([]entities.Notebook, error) { return nbs, nil }
}

func fail(status int) func() ([]entities.Notebook, error) {
	return func() ([]entities.Notebook, error) {
		return nil, &directory.FetchError{Status: status, Err: errors.New("boom")}
	}
}

func TestCatalog_Refresh(t *testing.T) {
	ctx := context.Background()
	work := entities.Notebook{ID: "nb1", Title: "Work Notes"}
	personal := entities.Notebook{ID: "nb2", Title: "Personal Projects"}

	dir := &scriptedDirectory{responses: []func() ([]entities.Notebook, error){
		fail(0),
		ok(work, personal),
		fail(502),
		ok(personal),
	}}
	catalog := app.NewCatalog(dir)

	_, err := catalog.Refresh(ctx)
	require.ErrorIs(t, err, directory.ErrFetch)
	assert.Empty(t, catalog.Notebooks())
	assert.ErrorIs(t, catalog.Err(), directory.ErrFetch)

	nbs, err := catalog.Refresh(ctx)
	require.NoError(t, err)
	assert.Equal(t, []entities.Notebook{work, personal}, nbs)
	assert.NoError(t, catalog.Err())

	title, found := catalog.Title("nb1")
	assert.True(t, found)
	assert.Equal(t, "Work Notes", title)

	nbs, err = catalog.Refresh(ctx)
	var ferr *directory.FetchError
	require.ErrorAs(t, err, &ferr)
	assert.Equal(t, 502, ferr.Status)
	assert.Equal(t, []entities.Notebook{work, personal}, nbs)
	assert.Equal(t, []entities.Notebook{work, personal}, catalog.Notebooks())

	_, err = catalog.Refresh(ctx)
	require.NoError(t, err)
	assert.Equal(t, []entities.Notebook{personal}, catalog.Notebooks())

	_, found = catalog.Title("nb1")
	assert.False(t, found)
	assert.Equal(t, 4, dir.calls)
}
