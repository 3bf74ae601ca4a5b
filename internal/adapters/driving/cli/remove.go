package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sercha-chat/internal/core/domain"
)

var removeCmd = &cobra.Command{
	Use:   "remove [filename]",
	Short: "Remove a document from the library",
	Long: `Remove a document from the library and rebuild the index.

Removing the last document leaves the assistant without an index until
new documents are added.`,
	Args: cobra.ExactArgs(1),
	RunE: runRemove,
}

func init() {
	rootCmd.AddCommand(removeCmd)
}

func runRemove(cmd *cobra.Command, args []string) error {
	if libraryService == nil {
		return errors.New("library service not configured")
	}

	filename := args[0]
	if err := libraryService.Remove(cmd.Context(), filename); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("no document named %s (use 'sercha-chat list' to see the library)", filename)
		}
		return fmt.Errorf("failed to remove %s: %w", filename, err)
	}

	cmd.Printf("Removed %s\n", filename)
	return nil
}
