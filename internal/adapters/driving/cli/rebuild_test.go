package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/sercha-chat/internal/core/domain"
)

func TestRebuildCmd_Use(t *testing.T) {
	assert.Equal(t, "rebuild", rebuildCmd.Use)
}

func TestRebuildCmd_RebuildsIndex(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"rebuild"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "Index rebuilt.")
	assert.Equal(t, 1, libraryService.(*mockLibraryService).rebuilds)
}

func TestRebuildCmd_EmptyCorpus(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	libraryService.(*mockLibraryService).err = domain.ErrEmptyCorpus

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"rebuild"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "nothing to index")
}
