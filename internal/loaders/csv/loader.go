// Package csv provides text extraction for delimited files.
package csv

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"github.com/custodia-labs/sercha-chat/internal/core/domain"
	"github.com/custodia-labs/sercha-chat/internal/core/ports/driven"
)

// Ensure Loader implements the interface.
var _ driven.Loader = (*Loader)(nil)

// Loader handles CSV documents. Each data row becomes one text unit of
// "header: value" lines, so a retrieved chunk carries its column context.
type Loader struct{}

// New creates a new CSV loader.
func New() *Loader {
	return &Loader{}
}

// Formats returns the document formats this loader handles.
func (l *Loader) Formats() []domain.Format {
	return []domain.Format{domain.FormatCSV}
}

// Load extracts one text unit per data row.
// A file with only a header row (or nothing) yields zero units.
func (l *Loader) Load(_ context.Context, path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %q: %w", path, domain.ErrExtraction)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1 // tolerate ragged rows

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing %q: %w", path, domain.ErrExtraction)
	}
	if len(records) < 2 {
		return nil, nil
	}

	header := records[0]
	units := make([]string, 0, len(records)-1)

	for _, row := range records[1:] {
		var lines []string
		for i, value := range row {
			if strings.TrimSpace(value) == "" {
				continue
			}
			name := fmt.Sprintf("column %d", i+1)
			if i < len(header) && strings.TrimSpace(header[i]) != "" {
				name = strings.TrimSpace(header[i])
			}
			lines = append(lines, name+": "+strings.TrimSpace(value))
		}
		if len(lines) == 0 {
			continue
		}
		units = append(units, strings.Join(lines, "\n"))
	}

	return units, nil
}
