// Package memory provides an in-memory vector store.
//
// Nothing survives a restart; the store exists for tests and for
// throwaway sessions where persisting an index is not worth the disk.
package memory

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/custodia-labs/sercha-chat/internal/core/domain"
	"github.com/custodia-labs/sercha-chat/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.VectorStore = (*Store)(nil)

// Store is an in-memory vector store.
type Store struct {
	mu          sync.RWMutex
	collections map[string][]driven.VectorRecord
}

// NewStore creates an empty in-memory vector store.
func NewStore() *Store {
	return &Store{collections: make(map[string][]driven.VectorRecord)}
}

// Build stores all records under the named collection.
func (s *Store) Build(_ context.Context, collection string, records []driven.VectorRecord) error {
	if len(records) == 0 {
		return fmt.Errorf("%w: empty record set for collection %s", domain.ErrIndexBuild, collection)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.collections[collection] = append([]driven.VectorRecord(nil), records...)
	return nil
}

// Search returns up to k records nearest to the query vector, ordered by
// descending cosine similarity.
func (s *Store) Search(_ context.Context, collection string, query []float32, k int) ([]driven.VectorHit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records, ok := s.collections[collection]
	if !ok {
		return nil, fmt.Errorf("%w: collection %s", domain.ErrNotFound, collection)
	}

	hits := make([]driven.VectorHit, 0, len(records))
	for _, record := range records {
		hits = append(hits, driven.VectorHit{
			Source:     record.Source,
			Content:    record.Content,
			Similarity: cosineSimilarity(query, record.Embedding),
		})
	}

	sort.SliceStable(hits, func(i, j int) bool { return hits[i].Similarity > hits[j].Similarity })
	if k > 0 && len(hits) > k {
		hits = hits[:k]
	}
	return hits, nil
}

// Drop removes a collection.
func (s *Store) Drop(_ context.Context, collection string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.collections, collection)
	return nil
}

// Close releases resources.
func (s *Store) Close() error {
	return nil
}

func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
