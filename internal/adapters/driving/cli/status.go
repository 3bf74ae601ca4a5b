package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show library and assistant status",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, _ []string) error {
	if libraryService == nil {
		return errors.New("library service not configured")
	}

	docs, err := libraryService.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list documents: %w", err)
	}

	cmd.Println("Sercha Chat Status")
	cmd.Println("==================")
	cmd.Println()
	cmd.Printf("  Documents: %d\n", len(docs))

	if libraryService.Ready() {
		cmd.Println("  Index:     ready")
	} else {
		cmd.Println("  Index:     not built")
	}

	if configStore != nil {
		cmd.Printf("  Config:    %s\n", configStore.Path())
	}
	if promptStore != nil {
		cmd.Printf("  Prompts:   %s\n", promptStore.Dir())
	}

	if len(docs) == 0 {
		cmd.Println()
		cmd.Println("Add documents with: sercha-chat add <file>")
	}

	return nil
}
