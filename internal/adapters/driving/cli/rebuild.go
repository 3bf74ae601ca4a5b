package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sercha-chat/internal/core/domain"
)

var rebuildCmd = &cobra.Command{
	Use:   "rebuild",
	Short: "Rebuild the index from the stored documents",
	Long: `Re-derive the index from the current document set.

All documents are reloaded, re-chunked and re-embedded. The conversation
history is discarded. Useful after changing the embedding provider or
when files in the document directory were edited directly.`,
	Args: cobra.NoArgs,
	RunE: runRebuild,
}

func init() {
	rootCmd.AddCommand(rebuildCmd)
}

func runRebuild(cmd *cobra.Command, _ []string) error {
	if libraryService == nil {
		return errors.New("library service not configured")
	}

	if err := libraryService.Rebuild(cmd.Context()); err != nil {
		if errors.Is(err, domain.ErrEmptyCorpus) {
			return errors.New("nothing to index, add documents with: sercha-chat add <file>")
		}
		return fmt.Errorf("rebuild failed: %w", err)
	}

	cmd.Println("Index rebuilt.")
	return nil
}
