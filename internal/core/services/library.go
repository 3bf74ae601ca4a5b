package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/custodia-labs/sercha-chat/internal/core/domain"
	"github.com/custodia-labs/sercha-chat/internal/core/ports/driven"
	"github.com/custodia-labs/sercha-chat/internal/logger"
)

// embedBatchSize caps the number of chunks sent per embedding request.
const embedBatchSize = 64

// Library owns the full document-to-answer pipeline: the stored document
// set, the index built from it, and the conversation chain that answers
// questions against that index.
//
// Mutations (Add, Remove, Rebuild) take the write lock, so rebuilds are
// serialized and questions never observe a half-built index. Ask takes
// the read lock: concurrent questions are fine, but they block while a
// rebuild is in flight.
type Library struct {
	docs     driven.DocumentStore
	loaders  driven.LoaderRegistry
	splitter driven.Splitter
	embedder driven.EmbeddingService
	vectors  driven.VectorStore
	llm      driven.LLMService

	topK         int
	systemPrompt string
	limiter      *rate.Limiter

	mu    sync.RWMutex
	chain *Chain
}

// NewLibrary wires the pipeline. The library starts unready; call Rebuild
// (or Add) to build the first index.
func NewLibrary(
	docs driven.DocumentStore,
	loaders driven.LoaderRegistry,
	splitter driven.Splitter,
	embedder driven.EmbeddingService,
	vectors driven.VectorStore,
	llm driven.LLMService,
) *Library {
	return &Library{
		docs:     docs,
		loaders:  loaders,
		splitter: splitter,
		embedder: embedder,
		vectors:  vectors,
		llm:      llm,
		topK:     DefaultTopK,
	}
}

// SetTopK overrides the number of chunks retrieved per question.
// Takes effect on the next rebuild.
func (l *Library) SetTopK(k int) {
	if k > 0 {
		l.topK = k
	}
}

// SetSystemPrompt overrides the system prompt used when answering.
// Takes effect on the next rebuild.
func (l *Library) SetSystemPrompt(prompt string) {
	l.systemPrompt = prompt
}

// SetEmbedLimit throttles embedding requests during rebuilds to the given
// number of batch calls per second. Zero or negative disables the limit.
func (l *Library) SetEmbedLimit(perSecond float64) {
	if perSecond > 0 {
		l.limiter = rate.NewLimiter(rate.Limit(perSecond), 1)
	} else {
		l.limiter = nil
	}
}

// Add stores a document and rebuilds the index over the enlarged set.
// The format check runs before anything is written, so an unsupported
// file never lands in the document directory.
func (l *Library) Add(ctx context.Context, filename string, content []byte) (domain.Document, error) {
	if _, ok := domain.FormatForFilename(filename); !ok {
		return domain.Document{}, fmt.Errorf("%w: %s", domain.ErrUnsupportedFormat, filename)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	doc, err := l.docs.Save(ctx, filename, content)
	if err != nil {
		return domain.Document{}, fmt.Errorf("storing %s: %w", filename, err)
	}

	if err := l.rebuildLocked(ctx); err != nil {
		return domain.Document{}, err
	}
	return doc, nil
}

// Remove deletes a document and rebuilds over the remaining set.
// Removing the last document unbinds the chain and drops its collection:
// the library goes back to unready rather than serving a stale index.
func (l *Library) Remove(ctx context.Context, filename string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.docs.Delete(ctx, filename); err != nil {
		return fmt.Errorf("deleting %s: %w", filename, err)
	}

	remaining, err := l.docs.List(ctx)
	if err != nil {
		return fmt.Errorf("listing documents: %w", err)
	}
	if len(remaining) == 0 {
		l.unbindLocked(ctx)
		return nil
	}
	return l.rebuildLocked(ctx)
}

// Rebuild re-derives the index and chain from the current document set.
func (l *Library) Rebuild(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.rebuildLocked(ctx)
}

// List returns the stored documents.
func (l *Library) List(ctx context.Context) ([]domain.Document, error) {
	return l.docs.List(ctx)
}

// Ready reports whether an index has been built.
func (l *Library) Ready() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.chain != nil
}

// Ask answers a question against the current index.
func (l *Library) Ask(ctx context.Context, question string) (string, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.chain == nil {
		return "", domain.ErrNotReady
	}
	return l.chain.Answer(ctx, question)
}

// History returns the current chain's conversation turns, or nil when no
// index has been built.
func (l *Library) History() []domain.Turn {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.chain == nil {
		return nil
	}
	return l.chain.History()
}

// Close releases the external service clients and the vector store.
func (l *Library) Close() error {
	return errors.Join(
		l.embedder.Close(),
		l.llm.Close(),
		l.vectors.Close(),
	)
}

// rebuildLocked runs the full pipeline under the write lock: load every
// document, chunk, embed, build a fresh collection and swap the chain.
// On any failure the prior chain stays bound, so a bad rebuild never
// costs the caller a working index.
func (l *Library) rebuildLocked(ctx context.Context) error {
	start := time.Now()

	docs, err := l.docs.List(ctx)
	if err != nil {
		return fmt.Errorf("listing documents: %w", err)
	}
	logger.Section("Rebuild")
	logger.Debug("Rebuilding index over %d documents", len(docs))

	chunks := l.chunkDocuments(ctx, docs)
	if len(chunks) == 0 {
		return domain.ErrEmptyCorpus
	}
	logger.Debug("Chunked %d documents into %d chunks", len(docs), len(chunks))

	records, err := l.embedChunks(ctx, chunks)
	if err != nil {
		return err
	}

	collection := fmt.Sprintf("collection_%d", time.Now().UnixNano())
	if err := l.vectors.Build(ctx, collection, records); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrIndexBuild, err)
	}

	old := l.chain
	l.chain = NewChain(l.embedder, l.vectors, l.llm, collection, l.topK, l.systemPrompt)
	if old != nil {
		// Best effort: the new collection is already live.
		if err := l.vectors.Drop(ctx, old.Collection()); err != nil {
			logger.Warn("Failed to drop superseded collection %s: %v", old.Collection(), err)
		}
	}

	logger.Info("Index rebuilt: %d chunks in %s (collection %s)", len(records), time.Since(start).Round(time.Millisecond), collection)
	return nil
}

// chunkDocuments extracts and splits every stored document. Files that
// cannot be parsed are skipped with a warning; a rebuild only fails when
// nothing at all survives.
func (l *Library) chunkDocuments(ctx context.Context, docs []domain.Document) []domain.Chunk {
	var chunks []domain.Chunk
	for _, doc := range docs {
		path, err := l.docs.Path(ctx, doc.Filename)
		if err != nil {
			logger.Warn("Skipping %s: %v", doc.Filename, err)
			continue
		}

		units, err := l.loaders.Load(ctx, path)
		if err != nil {
			logger.Warn("Skipping %s: %v", doc.Filename, err)
			continue
		}
		if len(units) == 0 {
			logger.Debug("No text content in %s", doc.Filename)
			continue
		}

		position := 0
		for _, unit := range units {
			for _, segment := range l.splitter.Split(unit) {
				chunks = append(chunks, domain.Chunk{
					ID:       uuid.NewString(),
					Source:   doc.Filename,
					Content:  segment,
					Position: position,
				})
				position++
			}
		}
	}
	return chunks
}

// embedChunks turns chunks into vector records, batching requests to the
// embedding service and honouring the configured rate limit.
func (l *Library) embedChunks(ctx context.Context, chunks []domain.Chunk) ([]driven.VectorRecord, error) {
	dims := l.embedder.Dimensions()
	records := make([]driven.VectorRecord, 0, len(chunks))

	for lo := 0; lo < len(chunks); lo += embedBatchSize {
		hi := lo + embedBatchSize
		if hi > len(chunks) {
			hi = len(chunks)
		}
		batch := chunks[lo:hi]

		if l.limiter != nil {
			if err := l.limiter.Wait(ctx); err != nil {
				return nil, fmt.Errorf("waiting for embed rate limit: %w", err)
			}
		}

		texts := make([]string, len(batch))
		for i, chunk := range batch {
			texts[i] = chunk.Content
		}

		vectors, err := l.embedder.EmbedBatch(ctx, texts)
		if err != nil {
			return nil, fmt.Errorf("%w: %w: embedding batch %d-%d: %v", domain.ErrIndexBuild, domain.ErrExternalService, lo, hi, err)
		}
		if len(vectors) != len(batch) {
			return nil, fmt.Errorf("%w: embedding count mismatch: got %d for %d chunks", domain.ErrIndexBuild, len(vectors), len(batch))
		}

		for i, chunk := range batch {
			if dims > 0 && len(vectors[i]) != dims {
				return nil, fmt.Errorf("%w: embedding dimension mismatch: got %d, want %d", domain.ErrIndexBuild, len(vectors[i]), dims)
			}
			records = append(records, driven.VectorRecord{
				ID:        chunk.ID,
				Source:    chunk.Source,
				Content:   chunk.Content,
				Embedding: vectors[i],
			})
		}
	}
	return records, nil
}

// unbindLocked tears down the current chain and drops its collection.
func (l *Library) unbindLocked(ctx context.Context) {
	if l.chain == nil {
		return
	}
	if err := l.vectors.Drop(ctx, l.chain.Collection()); err != nil {
		logger.Warn("Failed to drop collection %s: %v", l.chain.Collection(), err)
	}
	l.chain = nil
	logger.Info("Document set empty, assistant unready")
}
