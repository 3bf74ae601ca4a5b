package docx

import (
	"archive/zip"
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sercha-chat/internal/core/domain"
)

const documentXMLBody = `<?xml version="1.0" encoding="UTF-8"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>The sky is blue.</w:t></w:r></w:p>
    <w:p><w:r><w:t>Water is </w:t></w:r><w:r><w:t>wet.</w:t></w:r></w:p>
  </w:body>
</w:document>`

// writeDocx assembles a minimal .docx archive on disk.
func writeDocx(t *testing.T, files map[string]string) string {
	t.Helper()

	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for name, content := range files {
		f, err := w.Create(name)
		require.NoError(t, err)
		_, err = f.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	path := filepath.Join(t.TempDir(), "thesis.docx")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0600))
	return path
}

func TestLoader_Formats(t *testing.T) {
	assert.Equal(t, []domain.Format{domain.FormatWord}, New().Formats())
}

func TestLoader_Load(t *testing.T) {
	path := writeDocx(t, map[string]string{
		"word/document.xml": documentXMLBody,
	})

	units, err := New().Load(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, units, 1)
	assert.Contains(t, units[0], "The sky is blue.")
	assert.Contains(t, units[0], "Water is wet.")
}

func TestLoader_Load_NoDocumentXML(t *testing.T) {
	path := writeDocx(t, map[string]string{
		"word/other.xml": "<x/>",
	})

	units, err := New().Load(context.Background(), path)
	require.NoError(t, err)
	assert.Empty(t, units)
}

func TestLoader_Load_NotAZip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.docx")
	require.NoError(t, os.WriteFile(path, []byte("this is not a zip archive"), 0600))

	_, err := New().Load(context.Background(), path)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrExtraction)
}

func TestParseDocumentXML_Invalid(t *testing.T) {
	assert.Empty(t, parseDocumentXML([]byte("<unclosed")))
}
