// Package pdf provides text extraction for PDF documents.
package pdf

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/custodia-labs/sercha-chat/internal/core/domain"
	"github.com/custodia-labs/sercha-chat/internal/core/ports/driven"
)

// Ensure Loader implements the interface.
var _ driven.Loader = (*Loader)(nil)

// pdfHeader is the magic prefix every well-formed PDF starts with.
var pdfHeader = []byte("%PDF-")

// Loader handles PDF documents. The file header is checked before the
// expensive extraction runs, so renamed or truncated files are rejected
// cheaply.
type Loader struct{}

// New creates a new PDF loader.
func New() *Loader {
	return &Loader{}
}

// Formats returns the document formats this loader handles.
func (l *Loader) Formats() []domain.Format {
	return []domain.Format{domain.FormatPDF}
}

// Load extracts text from the PDF at path, one unit per page.
// Pages without extractable non-blank text are skipped; a PDF with no
// such pages yields zero units and a nil error, which is distinct from
// an unreadable file.
func (l *Loader) Load(_ context.Context, path string) (units []string, err error) {
	header := make([]byte, len(pdfHeader))
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %q: %w", path, domain.ErrExtraction)
	}
	_, readErr := f.Read(header)
	f.Close()
	if readErr != nil || !bytes.Equal(header, pdfHeader) {
		return nil, fmt.Errorf("%q is not a well-formed PDF: %w", path, domain.ErrExtraction)
	}

	// The parser panics on some malformed files that pass the header check.
	defer func() {
		if r := recover(); r != nil {
			units = nil
			err = fmt.Errorf("parsing %q: %v: %w", path, r, domain.ErrExtraction)
		}
	}()

	file, reader, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("parsing %q: %w", path, domain.ErrExtraction)
	}
	defer file.Close()

	for pageNum := 1; pageNum <= reader.NumPage(); pageNum++ {
		page := reader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			// One broken page does not void the rest of the document.
			continue
		}
		if strings.TrimSpace(text) == "" {
			continue
		}
		units = append(units, text)
	}

	return units, nil
}
