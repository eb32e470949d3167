package file_test

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notekeeper/internal/notes/adapters/directory/file"
	"notekeeper/internal/notes/domain/entities"
	"notekeeper/internal/notes/ports/directory"
)

func seeded(t *testing.T) (*file.Directory, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data", "notebooks.json")
	dir := file.New(path)
	require.NoError(t, dir.Seed(context.Background()))
	return dir, path
}

func TestDirectory_SeedAndFetch(t *testing.T) {
	ctx := context.Background()
	dir, path := seeded(t)

	notebooks, err := dir.FetchNotebooks(ctx)
	require.NoError(t, err)
	assert.Equal(t, file.DefaultNotebooks, notebooks)

	require.NoError(t, os.WriteFile(path, []byte(`[{"id":"x","title":"Custom"}]`), 0o600))
	require.NoError(t, dir.Seed(ctx))

	notebooks, err = dir.FetchNotebooks(ctx)
	require.NoError(t, err)
	assert.Equal(t, []entities.Notebook{{ID: "x", Title: "Custom"}}, notebooks)
}

func TestDirectory_FetchErrors(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		content *string
	}{
		{name: "missing file"},
		{name: "object body", content: ptr(`{"id":"nb1"}`)},
		{name: "broken json", content: ptr(`[{"id":`)},
		{name: "empty file", content: ptr(``)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "notebooks.json")
			if tt.content != nil {
				require.NoError(t, os.WriteFile(path, []byte(*tt.content), 0o600))
			}

			_, err := file.New(path).FetchNotebooks(ctx)

			var ferr *directory.FetchError
			require.ErrorAs(t, err, &ferr)
			assert.ErrorIs(t, err, directory.ErrFetch)
		})
	}
}

func TestDirectory_Append(t *testing.T) {
	ctx := context.Background()
	dir, _ := seeded(t)

	nb, err := dir.Append(ctx, entities.Notebook{ID: " nb5 ", Title: " Recipes "})
	require.NoError(t, err)
	assert.Equal(t, entities.Notebook{ID: "nb5", Title: "Recipes"}, nb)

	_, err = dir.Append(ctx, entities.Notebook{ID: "nb5", Title: "Again"})
	require.ErrorIs(t, err, file.ErrDuplicateNotebook)

	_, err = dir.Append(ctx, entities.Notebook{ID: "nb6"})
	require.ErrorIs(t, err, entities.ErrInvalidNotebook)

	_, err = dir.Append(ctx, entities.Notebook{Title: "No id"})
	require.ErrorIs(t, err, entities.ErrInvalidNotebook)

	notebooks, err := dir.FetchNotebooks(ctx)
	require.NoError(t, err)
	require.Len(t, notebooks, 5)
	assert.Equal(t, "nb5", notebooks[4].ID)
}

func TestDirectory_Remove(t *testing.T) {
	ctx := context.Background()
	dir, _ := seeded(t)

	require.NoError(t, dir.Remove(ctx, "nb2"))
	require.ErrorIs(t, dir.Remove(ctx, "nb2"), entities.ErrNotebookNotFound)

	notebooks, err := dir.FetchNotebooks(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"nb1", "nb3", "nb4"}, ids(notebooks))
}

func TestDirectory_ConcurrentAppend(t *testing.T) {
	ctx := context.Background()
	dir, _ := seeded(t)

	var wg sync.WaitGroup
	for _, id := range []string{"a", "b", "c", "d", "e", "f"} {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := dir.Append(ctx, entities.Notebook{ID: id, Title: "Notebook " + id})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	notebooks, err := dir.FetchNotebooks(ctx)
	require.NoError(t, err)
	assert.Len(t, notebooks, len(file.DefaultNotebooks)+6)
}

func ids(notebooks []entities.Notebook) []string {
	out := make([]string, 0, len(notebooks))
	for _, nb := range notebooks {
		out = append(out, nb.ID)
	}
	return out
}

func ptr(s string) *string {
	return &s
}
