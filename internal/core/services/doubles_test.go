package services

import (
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/custodia-labs/sercha-chat/internal/core/domain"
	"github.com/custodia-labs/sercha-chat/internal/core/ports/driven"
)

// stubEmbedder produces deterministic keyword vectors: each known topic
// word lights up one dimension, so texts about the same topic are close
// and texts about different topics are orthogonal.
type stubEmbedder struct {
	mu        sync.Mutex
	failAfter int // fail calls once this many have succeeded; -1 never fails
	calls     int
}

func newStubEmbedder() *stubEmbedder {
	return &stubEmbedder{failAfter: -1}
}

var stubTopics = []string{"sky", "grass", "ocean"}

func keywordVector(text string) []float32 {
	v := make([]float32, len(stubTopics)+1)
	lower := strings.ToLower(text)
	for i, topic := range stubTopics {
		if strings.Contains(lower, topic) {
			v[i] = 1
		}
	}
	v[len(stubTopics)] = 0.1
	return v
}

func (e *stubEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.failAfter >= 0 && e.calls >= e.failAfter {
		return nil, errors.New("embedder down")
	}
	e.calls++
	return keywordVector(text), nil
}

func (e *stubEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, 0, len(texts))
	for _, text := range texts {
		v, err := e.Embed(ctx, text)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func (e *stubEmbedder) Dimensions() int            { return len(stubTopics) + 1 }
func (e *stubEmbedder) ModelName() string          { return "stub-embed" }
func (e *stubEmbedder) Ping(context.Context) error { return nil }
func (e *stubEmbedder) Close() error               { return nil }

// stubLLM replies with a fixed answer and records the messages it was
// given, so tests can assert on prompt composition.
type stubLLM struct {
	mu       sync.Mutex
	reply    string
	fail     bool
	lastMsgs []driven.ChatMessage
	closed   bool
}

func (l *stubLLM) Chat(_ context.Context, messages []driven.ChatMessage, _ driven.ChatOptions) (string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.fail {
		return "", errors.New("llm down")
	}
	l.lastMsgs = append([]driven.ChatMessage(nil), messages...)
	if l.reply == "" {
		return "stub answer", nil
	}
	return l.reply, nil
}

func (l *stubLLM) ModelName() string          { return "stub-llm" }
func (l *stubLLM) Ping(context.Context) error { return nil }
func (l *stubLLM) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.closed = true
	return nil
}

// stubVectorStore is an in-memory brute-force cosine store.
type stubVectorStore struct {
	mu          sync.Mutex
	collections map[string][]driven.VectorRecord
	dropped     []string
	buildErr    error
}

func newStubVectorStore() *stubVectorStore {
	return &stubVectorStore{collections: make(map[string][]driven.VectorRecord)}
}

func (s *stubVectorStore) Build(_ context.Context, collection string, records []driven.VectorRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.buildErr != nil {
		return s.buildErr
	}
	if len(records) == 0 {
		return domain.ErrIndexBuild
	}
	s.collections[collection] = append([]driven.VectorRecord(nil), records...)
	return nil
}

func (s *stubVectorStore) Search(_ context.Context, collection string, query []float32, k int) ([]driven.VectorHit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	records, ok := s.collections[collection]
	if !ok {
		return nil, domain.ErrNotFound
	}
	hits := make([]driven.VectorHit, 0, len(records))
	for _, r := range records {
		hits = append(hits, driven.VectorHit{
			Source:     r.Source,
			Content:    r.Content,
			Similarity: cosine(query, r.Embedding),
		})
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].Similarity > hits[j].Similarity })
	if len(hits) > k {
		hits = hits[:k]
	}
	return hits, nil
}

func (s *stubVectorStore) Drop(_ context.Context, collection string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.collections, collection)
	s.dropped = append(s.dropped, collection)
	return nil
}

func (s *stubVectorStore) Close() error { return nil }

func (s *stubVectorStore) collectionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.collections)
}

// dirDocStore is a minimal document store over a throwaway directory.
type dirDocStore struct {
	dir string
}

func (d *dirDocStore) Save(_ context.Context, filename string, content []byte) (domain.Document, error) {
	path := filepath.Join(d.dir, filename)
	if _, err := os.Stat(path); err == nil {
		return domain.Document{}, domain.ErrAlreadyExists
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return domain.Document{}, err
	}
	format, _ := domain.FormatForFilename(filename)
	return domain.Document{
		ID:        filename,
		Filename:  filename,
		Format:    format,
		Size:      int64(len(content)),
		CreatedAt: time.Now(),
	}, nil
}

func (d *dirDocStore) Delete(_ context.Context, filename string) error {
	path := filepath.Join(d.dir, filename)
	if _, err := os.Stat(path); err != nil {
		return domain.ErrNotFound
	}
	return os.Remove(path)
}

func (d *dirDocStore) List(_ context.Context) ([]domain.Document, error) {
	entries, err := os.ReadDir(d.dir)
	if err != nil {
		return nil, err
	}
	var docs []domain.Document
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			return nil, err
		}
		format, _ := domain.FormatForFilename(entry.Name())
		docs = append(docs, domain.Document{
			ID:        entry.Name(),
			Filename:  entry.Name(),
			Format:    format,
			Size:      info.Size(),
			CreatedAt: info.ModTime(),
		})
	}
	sort.Slice(docs, func(i, j int) bool { return docs[i].Filename < docs[j].Filename })
	return docs, nil
}

func (d *dirDocStore) Path(_ context.Context, filename string) (string, error) {
	path := filepath.Join(d.dir, filename)
	if _, err := os.Stat(path); err != nil {
		return "", domain.ErrNotFound
	}
	return path, nil
}

func (d *dirDocStore) Dir() string { return d.dir }

func cosine(a, b []float32) float64 {
	if len(a) != len(b) {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
