package driving

import (
	"context"

	"github.com/custodia-labs/sercha-chat/internal/core/domain"
)

// LibraryService manages the document set behind the assistant.
// Every mutation triggers a full index rebuild: all documents are
// reloaded, re-chunked and re-embedded into a fresh collection. This is a
// deliberate simplicity/cost tradeoff - no per-chunk provenance is
// tracked, so targeted deletion is not possible.
type LibraryService interface {
	// Add stores a new document and rebuilds the index.
	// The filename's extension must map to a supported format.
	Add(ctx context.Context, filename string, content []byte) (domain.Document, error)

	// Remove deletes a document and rebuilds the index if documents
	// remain; removing the last document leaves the assistant unready.
	Remove(ctx context.Context, filename string) error

	// Rebuild re-derives the index and conversation chain from the
	// current document set. The prior chain stays active until the new
	// one is fully constructed, so a failed rebuild never leaves the
	// assistant without a usable chain.
	Rebuild(ctx context.Context) error

	// List returns the stored documents.
	List(ctx context.Context) ([]domain.Document, error)

	// Ready reports whether an index has been built and questions can be
	// answered. This is a status, not an error: callers use it to prompt
	// for upload instead of retrying.
	Ready() bool

	// Close releases resources.
	Close() error
}
