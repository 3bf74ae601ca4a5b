package driven

import "context"

// VectorRecord is an (embedding, content, source) triple persisted in a
// vector collection. Every record's embedding must have the owning
// EmbeddingService's dimensionality.
type VectorRecord struct {
	// ID is the unique record identifier.
	ID string

	// Source is the filename of the originating document.
	Source string

	// Content is the chunk text the embedding was computed from.
	Content string

	// Embedding is the vector representation.
	Embedding []float32
}

// VectorHit is a similarity search result.
type VectorHit struct {
	// Source is the filename of the originating document.
	Source string

	// Content is the matched chunk text.
	Content string

	// Similarity is the cosine similarity score (higher is closer).
	Similarity float64
}

// VectorStore persists vector collections and searches them.
//
// Collections are write-once: a rebuild creates a fresh collection under a
// new name, and the superseded collection is dropped after the swap. There
// is no incremental patching of a live collection.
type VectorStore interface {
	// Build persists all records under the named collection, durably,
	// before returning. An empty record set fails with domain.ErrIndexBuild:
	// an empty collection would be unqueryable.
	Build(ctx context.Context, collection string, records []VectorRecord) error

	// Search returns up to k records nearest to the query vector, ordered
	// by descending similarity. Tie order is arbitrary but stable within
	// one process run.
	Search(ctx context.Context, collection string, query []float32, k int) ([]VectorHit, error)

	// Drop removes a collection and its persisted data.
	Drop(ctx context.Context, collection string) error

	// Close releases resources.
	Close() error
}
