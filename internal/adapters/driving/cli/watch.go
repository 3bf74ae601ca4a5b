package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sercha-chat/internal/watcher"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the document directory and rebuild on changes",
	Long: `Watch the managed document directory and rebuild the index whenever
supported files are created, modified or removed.

Runs until interrupted. Changes are debounced so a burst of writes
triggers a single rebuild.`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, _ []string) error {
	if libraryService == nil {
		return errors.New("library service not configured")
	}
	if chatConfig == nil || chatConfig.WatchDir == "" {
		return errors.New("watch directory not configured")
	}

	w, err := watcher.New(chatConfig.WatchDir, libraryService)
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}

	cmd.Printf("Watching %s (ctrl+c to stop)\n", chatConfig.WatchDir)
	return w.Run(cmd.Context())
}
