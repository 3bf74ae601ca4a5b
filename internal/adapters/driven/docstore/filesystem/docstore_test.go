package filesystem

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sercha-chat/internal/core/domain"
)

func setupDocStore(t *testing.T) *DocStore {
	t.Helper()
	store, err := NewDocStore(t.TempDir())
	require.NoError(t, err)
	return store
}

func TestDocStore_SaveAndList(t *testing.T) {
	store := setupDocStore(t)
	ctx := context.Background()

	doc, err := store.Save(ctx, "notes.txt", []byte("hello"))
	require.NoError(t, err)
	assert.Equal(t, "notes.txt", doc.Filename)
	assert.Equal(t, domain.FormatText, doc.Format)
	assert.Equal(t, int64(5), doc.Size)
	assert.False(t, doc.CreatedAt.IsZero())

	_, err = store.Save(ctx, "alpha.csv", []byte("a,b\n1,2\n"))
	require.NoError(t, err)

	docs, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "alpha.csv", docs[0].Filename)
	assert.Equal(t, "notes.txt", docs[1].Filename)
}

func TestDocStore_SaveDuplicate(t *testing.T) {
	store := setupDocStore(t)
	ctx := context.Background()

	_, err := store.Save(ctx, "notes.txt", []byte("first"))
	require.NoError(t, err)

	_, err = store.Save(ctx, "notes.txt", []byte("second"))
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)

	// Original content untouched.
	path, err := store.Path(ctx, "notes.txt")
	require.NoError(t, err)
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "first", string(content))
}

func TestDocStore_SaveRejectsUnsafeFilenames(t *testing.T) {
	store := setupDocStore(t)
	ctx := context.Background()

	for _, name := range []string{"", "../escape.txt", "nested/file.txt", ".hidden"} {
		_, err := store.Save(ctx, name, []byte("x"))
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "filename %q", name)
	}
}

func TestDocStore_Delete(t *testing.T) {
	store := setupDocStore(t)
	ctx := context.Background()

	_, err := store.Save(ctx, "notes.txt", []byte("hello"))
	require.NoError(t, err)

	require.NoError(t, store.Delete(ctx, "notes.txt"))

	docs, err := store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, docs)

	assert.ErrorIs(t, store.Delete(ctx, "notes.txt"), domain.ErrNotFound)
}

func TestDocStore_Path(t *testing.T) {
	store := setupDocStore(t)
	ctx := context.Background()

	_, err := store.Save(ctx, "notes.txt", []byte("hello"))
	require.NoError(t, err)

	path, err := store.Path(ctx, "notes.txt")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(store.Dir(), "notes.txt"), path)

	_, err = store.Path(ctx, "ghost.txt")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDocStore_ListIgnoresHiddenAndDirs(t *testing.T) {
	store := setupDocStore(t)
	ctx := context.Background()

	_, err := store.Save(ctx, "notes.txt", []byte("hello"))
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(store.Dir(), ".DS_Store"), []byte("junk"), 0o600))
	require.NoError(t, os.Mkdir(filepath.Join(store.Dir(), "subdir"), 0o700))

	docs, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "notes.txt", docs[0].Filename)
}
