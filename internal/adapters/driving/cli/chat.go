package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/sercha-chat/internal/adapters/driving/tui"
	"github.com/custodia-labs/sercha-chat/internal/watcher"
)

// ChatConfig holds configuration for the chat command.
type ChatConfig struct {
	// WatchDir is the document directory watched for changes when
	// --watch is set.
	WatchDir string
}

// chatConfig holds the current chat configuration.
var chatConfig *ChatConfig

var chatWatch bool

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive chat session",
	Long: `Start an interactive terminal chat session with your documents.

Controls:
  Enter - Ask the typed question
  Esc   - Quit`,
	RunE: runChat,
}

// SetChatConfig sets the configuration for the chat command.
func SetChatConfig(config *ChatConfig) {
	chatConfig = config
}

func init() {
	chatCmd.Flags().BoolVar(&chatWatch, "watch", false, "rebuild the index when files in the document directory change")
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, _ []string) error {
	if assistantService == nil {
		return errors.New("assistant service not configured")
	}

	// Add panic recovery to get stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in chat: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	if err := ensureIndex(cmd.Context()); err != nil {
		return err
	}

	// The chat session is long-running, so the document watcher runs
	// alongside it when requested.
	if chatWatch {
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

		watchCtx, watchCancel := context.WithCancel(context.Background())
		defer watchCancel()

		go func() {
			if err := w.Run(watchCtx); err != nil {
				// Watcher errors shouldn't block the chat session
				fmt.Fprintf(os.Stderr, "watcher stopped: %v\n", err)
			}
		}()
	}

	app, err := tui.NewApp(&tui.Ports{
		Assistant: assistantService,
		Library:   libraryService,
	})
	if err != nil {
		return fmt.Errorf("failed to create chat UI: %w", err)
	}

	app.WithContext(cmd.Context())

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("chat UI error: %w", err)
	}

	return nil
}
