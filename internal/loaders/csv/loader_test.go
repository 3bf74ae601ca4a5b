package csv

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sercha-chat/internal/core/domain"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "table.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoader_Formats(t *testing.T) {
	assert.Equal(t, []domain.Format{domain.FormatCSV}, New().Formats())
}

func TestLoader_Load_RowPerUnit(t *testing.T) {
	path := writeCSV(t, "name,colour\nsky,blue\ngrass,green\n")

	units, err := New().Load(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, units, 2)
	assert.Equal(t, "name: sky\ncolour: blue", units[0])
	assert.Equal(t, "name: grass\ncolour: green", units[1])
}

func TestLoader_Load_HeaderOnly(t *testing.T) {
	path := writeCSV(t, "name,colour\n")

	units, err := New().Load(context.Background(), path)
	require.NoError(t, err)
	assert.Empty(t, units)
}

func TestLoader_Load_RaggedRows(t *testing.T) {
	path := writeCSV(t, "a,b\n1,2,3\n4\n")

	units, err := New().Load(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, units, 2)
	assert.Equal(t, "a: 1\nb: 2\ncolumn 3: 3", units[0])
	assert.Equal(t, "a: 4", units[1])
}

func TestLoader_Load_Malformed(t *testing.T) {
	path := writeCSV(t, "a,b\n\"unterminated,1\n")

	_, err := New().Load(context.Background(), path)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrExtraction)
}

func TestLoader_Load_MissingFile(t *testing.T) {
	_, err := New().Load(context.Background(), filepath.Join(t.TempDir(), "gone.csv"))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrExtraction)
}
