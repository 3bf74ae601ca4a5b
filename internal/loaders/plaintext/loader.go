// Package plaintext provides text extraction for plain text and markdown.
package plaintext

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/custodia-labs/sercha-chat/internal/core/domain"
	"github.com/custodia-labs/sercha-chat/internal/core/ports/driven"
)

// Ensure Loader implements the interface.
var _ driven.Loader = (*Loader)(nil)

// Loader handles plain text documents. Markdown is treated as plain text:
// the markup survives into chunks and reads fine in a prompt context.
type Loader struct{}

// New creates a new plain text loader.
func New() *Loader {
	return &Loader{}
}

// Formats returns the document formats this loader handles.
func (l *Loader) Formats() []domain.Format {
	return []domain.Format{domain.FormatText}
}

// Load reads the whole file as one text unit.
// A file with no non-blank content yields zero units.
func (l *Loader) Load(_ context.Context, path string) ([]string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %q: %w", path, domain.ErrExtraction)
	}

	text := string(content)
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}
	return []string{text}, nil
}
