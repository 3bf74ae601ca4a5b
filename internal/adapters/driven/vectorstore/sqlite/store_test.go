package sqlite

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sercha-chat/internal/core/domain"
	"github.com/custodia-labs/sercha-chat/internal/core/ports/driven"
)

// setupTestStore creates a SQLite vector store in a temp directory.
func setupTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	require.NotNil(t, store)

	t.Cleanup(func() {
		assert.NoError(t, store.Close())
	})
	return store
}

func testRecords() []driven.VectorRecord {
	return []driven.VectorRecord{
		{ID: "a", Source: "alpha.txt", Content: "alpha content", Embedding: []float32{1, 0, 0}},
		{ID: "b", Source: "beta.txt", Content: "beta content", Embedding: []float32{0, 1, 0}},
		{ID: "c", Source: "gamma.txt", Content: "gamma content", Embedding: []float32{0.9, 0.1, 0}},
	}
}

func TestStore_BuildAndSearch(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Build(ctx, "collection_1", testRecords()))

	hits, err := store.Search(ctx, "collection_1", []float32{1, 0, 0}, 2)
	require.NoError(t, err)
	require.Len(t, hits, 2)

	// Exact match first, then the nearby vector.
	assert.Equal(t, "alpha.txt", hits[0].Source)
	assert.Equal(t, "alpha content", hits[0].Content)
	assert.InDelta(t, 1.0, hits[0].Similarity, 1e-6)
	assert.Equal(t, "gamma.txt", hits[1].Source)
	assert.Greater(t, hits[0].Similarity, hits[1].Similarity)
}

func TestStore_SearchKLargerThanCollection(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Build(ctx, "collection_1", testRecords()))

	hits, err := store.Search(ctx, "collection_1", []float32{1, 0, 0}, 10)
	require.NoError(t, err)
	assert.Len(t, hits, 3)
}

func TestStore_BuildEmptyFails(t *testing.T) {
	store := setupTestStore(t)

	err := store.Build(context.Background(), "collection_1", nil)
	assert.ErrorIs(t, err, domain.ErrIndexBuild)
}

func TestStore_SearchUnknownCollection(t *testing.T) {
	store := setupTestStore(t)

	_, err := store.Search(context.Background(), "collection_missing", []float32{1, 0, 0}, 3)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStore_Drop(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Build(ctx, "collection_1", testRecords()))
	require.NoError(t, store.Drop(ctx, "collection_1"))

	_, err := store.Search(ctx, "collection_1", []float32{1, 0, 0}, 3)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStore_DropUnknownCollectionIsNoop(t *testing.T) {
	store := setupTestStore(t)

	assert.NoError(t, store.Drop(context.Background(), "collection_missing"))
}

func TestStore_PersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	store, err := NewStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.Build(ctx, "collection_1", testRecords()))
	require.NoError(t, store.Close())

	reopened, err := NewStore(dir)
	require.NoError(t, err)
	defer reopened.Close()

	hits, err := reopened.Search(ctx, "collection_1", []float32{0, 1, 0}, 1)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "beta.txt", hits[0].Source)
}

func TestStore_Collections(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	names, err := store.Collections(ctx)
	require.NoError(t, err)
	assert.Empty(t, names)

	for i := 1; i <= 3; i++ {
		name := fmt.Sprintf("collection_%d", i)
		require.NoError(t, store.Build(ctx, name, testRecords()))
	}

	names, err = store.Collections(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"collection_1", "collection_2", "collection_3"}, names)
}

func TestStore_DropAll(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Build(ctx, "collection_1", testRecords()))
	require.NoError(t, store.Build(ctx, "collection_2", testRecords()))

	require.NoError(t, store.DropAll(ctx))

	names, err := store.Collections(ctx)
	require.NoError(t, err)
	assert.Empty(t, names)

	// The cascade wiped the vectors too.
	_, err = store.Search(ctx, "collection_1", []float32{1, 0, 0}, 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStore_DropAllEmptyIsNoop(t *testing.T) {
	store := setupTestStore(t)

	assert.NoError(t, store.DropAll(context.Background()))
}

func TestStore_EmbeddingRoundTrip(t *testing.T) {
	original := []float32{0.1, -2.5, 3.75, 0}
	assert.Equal(t, original, bytesToFloat32Slice(float32SliceToBytes(original)))
}

func TestCosineSimilarity(t *testing.T) {
	assert.InDelta(t, 1.0, cosineSimilarity([]float32{1, 2}, []float32{2, 4}), 1e-6)
	assert.InDelta(t, 0.0, cosineSimilarity([]float32{1, 0}, []float32{0, 1}), 1e-6)
	assert.InDelta(t, -1.0, cosineSimilarity([]float32{1, 0}, []float32{-1, 0}), 1e-6)

	// Degenerate inputs score zero instead of NaN.
	assert.Zero(t, cosineSimilarity([]float32{1, 0}, []float32{1, 0, 0}))
	assert.Zero(t, cosineSimilarity([]float32{0, 0}, []float32{1, 0}))
}
