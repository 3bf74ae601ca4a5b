package driven

import (
	"context"

	"github.com/custodia-labs/sercha-chat/internal/core/domain"
)

// DocumentStore owns the on-disk document directory: one file per uploaded
// document, original filename preserved. Files are only mutated under the
// rebuild exclusion scope of the owning service.
type DocumentStore interface {
	// Save writes a document's bytes under its filename.
	// Returns domain.ErrAlreadyExists if the filename is taken.
	Save(ctx context.Context, filename string, content []byte) (domain.Document, error)

	// Delete removes the named document.
	// Returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, filename string) error

	// List returns metadata for every stored document, ordered by filename.
	List(ctx context.Context) ([]domain.Document, error)

	// Path returns the absolute path of a stored document for loaders.
	// Returns domain.ErrNotFound if it does not exist.
	Path(ctx context.Context, filename string) (string, error)

	// Dir returns the managed directory path.
	Dir() string
}
