package driven

import (
	"context"

	"github.com/custodia-labs/sercha-chat/internal/core/domain"
)

// Loader extracts raw text units from one document format.
//
// Implementations must distinguish two non-fatal outcomes: a document with
// no extractable non-blank text returns an empty slice and a nil error,
// while an unreadable or malformed file returns domain.ErrExtraction. The
// caller skips both without aborting the batch, but only the latter is a
// parse failure.
type Loader interface {
	// Formats returns the document formats this loader handles.
	Formats() []domain.Format

	// Load reads the file at path and returns its raw text units.
	// A unit is a coherent block of text (a file, a PDF page, a CSV row
	// group) that the splitter later divides into chunks.
	Load(ctx context.Context, path string) ([]string, error)
}

// LoaderRegistry dispatches to the loader registered for a file's format.
type LoaderRegistry interface {
	// Register adds a loader for each format it reports.
	Register(loader Loader)

	// Load extracts text from the file at path, selecting the loader by
	// the filename's extension. Returns domain.ErrUnsupportedFormat when
	// no loader matches.
	Load(ctx context.Context, path string) ([]string, error)

	// Supported returns the formats with a registered loader.
	Supported() []domain.Format
}
