package loaders

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sercha-chat/internal/core/domain"
)

// fakeLoader records calls and returns canned units.
type fakeLoader struct {
	formats []domain.Format
	units   []string
	err     error
	calls   int
}

func (f *fakeLoader) Formats() []domain.Format { return f.formats }

func (f *fakeLoader) Load(_ context.Context, _ string) ([]string, error) {
	f.calls++
	return f.units, f.err
}

func TestRegistry_Load_Dispatch(t *testing.T) {
	text := &fakeLoader{formats: []domain.Format{domain.FormatText}, units: []string{"hello"}}
	csv := &fakeLoader{formats: []domain.Format{domain.FormatCSV}, units: []string{"a: 1"}}

	r := NewRegistry()
	r.Register(text)
	r.Register(csv)

	units, err := r.Load(context.Background(), "/docs/notes.txt")
	require.NoError(t, err)
	assert.Equal(t, []string{"hello"}, units)
	assert.Equal(t, 1, text.calls)
	assert.Equal(t, 0, csv.calls)

	units, err = r.Load(context.Background(), "/docs/table.csv")
	require.NoError(t, err)
	assert.Equal(t, []string{"a: 1"}, units)
	assert.Equal(t, 1, csv.calls)
}

func TestRegistry_Load_UnsupportedExtension(t *testing.T) {
	r := NewRegistry()
	r.Register(&fakeLoader{formats: []domain.Format{domain.FormatText}})

	_, err := r.Load(context.Background(), "/docs/image.png")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnsupportedFormat)
}

func TestRegistry_Load_NoLoaderForFormat(t *testing.T) {
	r := NewRegistry()
	r.Register(&fakeLoader{formats: []domain.Format{domain.FormatText}})

	// .pdf maps to a known format, but nothing is registered for it.
	_, err := r.Load(context.Background(), "/docs/report.pdf")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnsupportedFormat)
}

func TestRegistry_Supported(t *testing.T) {
	r := NewRegistry()
	assert.Empty(t, r.Supported())

	r.Register(&fakeLoader{formats: []domain.Format{domain.FormatWord}})
	r.Register(&fakeLoader{formats: []domain.Format{domain.FormatCSV, domain.FormatText}})

	supported := r.Supported()
	assert.Equal(t, []domain.Format{domain.FormatCSV, domain.FormatWord, domain.FormatText}, supported)
}
