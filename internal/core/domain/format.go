package domain

import (
	"path/filepath"
	"strings"
)

// Format identifies a supported document format.
// Formats are derived from file extensions; there is no content sniffing.
type Format string

// Supported document formats.
const (
	// FormatText is plain text (.txt) and markdown (.md).
	FormatText Format = "text"

	// FormatPDF is a PDF document (.pdf).
	FormatPDF Format = "pdf"

	// FormatWord is a Word document (.docx).
	FormatWord Format = "docx"

	// FormatCSV is comma-separated values (.csv).
	FormatCSV Format = "csv"
)

// formatsByExtension is the fixed extension-to-format mapping.
var formatsByExtension = map[string]Format{
	".txt":  FormatText,
	".md":   FormatText,
	".pdf":  FormatPDF,
	".docx": FormatWord,
	".csv":  FormatCSV,
}

// FormatForFilename returns the format for a filename based on its
// extension. The second return value is false for unsupported extensions.
func FormatForFilename(filename string) (Format, bool) {
	ext := strings.ToLower(filepath.Ext(filename))
	f, ok := formatsByExtension[ext]
	return f, ok
}

// SupportedExtensions returns the recognised file extensions.
func SupportedExtensions() []string {
	exts := make([]string, 0, len(formatsByExtension))
	for ext := range formatsByExtension {
		exts = append(exts, ext)
	}
	return exts
}

// IsValid returns true if the format is recognised.
func (f Format) IsValid() bool {
	switch f {
	case FormatText, FormatPDF, FormatWord, FormatCSV:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (f Format) String() string {
	return string(f)
}
