package loaders

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"

	"github.com/custodia-labs/sercha-chat/internal/core/domain"
	"github.com/custodia-labs/sercha-chat/internal/core/ports/driven"
)

// Ensure Registry implements the interface.
var _ driven.LoaderRegistry = (*Registry)(nil)

// Registry maps document formats to their loaders.
type Registry struct {
	loaders map[domain.Format]driven.Loader
}

// NewRegistry creates an empty loader registry.
func NewRegistry() *Registry {
	return &Registry{
		loaders: make(map[domain.Format]driven.Loader),
	}
}

// Register adds a loader for each format it reports.
// A later registration for the same format replaces the earlier one.
func (r *Registry) Register(loader driven.Loader) {
	for _, format := range loader.Formats() {
		r.loaders[format] = loader
	}
}

// Load extracts text from the file at path, selecting the loader by the
// filename's extension.
func (r *Registry) Load(ctx context.Context, path string) ([]string, error) {
	format, ok := domain.FormatForFilename(path)
	if !ok {
		return nil, fmt.Errorf("%q: %w", filepath.Ext(path), domain.ErrUnsupportedFormat)
	}

	loader, ok := r.loaders[format]
	if !ok {
		return nil, fmt.Errorf("%s: %w", format, domain.ErrUnsupportedFormat)
	}

	return loader.Load(ctx, path)
}

// Supported returns the formats with a registered loader, sorted.
func (r *Registry) Supported() []domain.Format {
	formats := make([]domain.Format, 0, len(r.loaders))
	for format := range r.loaders {
		formats = append(formats, format)
	}
	sort.Slice(formats, func(i, j int) bool { return formats[i] < formats[j] })
	return formats
}
