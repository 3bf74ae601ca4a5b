package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sercha-chat/internal/core/domain"
)

var addCmd = &cobra.Command{
	Use:   "add [file...]",
	Short: "Add documents to the library",
	Long: `Add one or more documents to the library and rebuild the index.

Supported formats: .txt, .md, .pdf, .docx, .csv`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAdd,
}

func init() {
	rootCmd.AddCommand(addCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	if libraryService == nil {
		return errors.New("library service not configured")
	}

	for _, path := range args {
		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}

		filename := filepath.Base(path)
		doc, err := libraryService.Add(cmd.Context(), filename, content)
		if err != nil {
			switch {
			case errors.Is(err, domain.ErrUnsupportedFormat):
				return fmt.Errorf("%s: unsupported format (supported: .txt, .md, .pdf, .docx, .csv)", filename)
			case errors.Is(err, domain.ErrAlreadyExists):
				return fmt.Errorf("%s: a document with this name already exists (remove it first)", filename)
			default:
				return fmt.Errorf("failed to add %s: %w", filename, err)
			}
		}

		cmd.Printf("Added %s (%s, %d bytes)\n", doc.Filename, doc.Format, doc.Size)
	}

	return nil
}
