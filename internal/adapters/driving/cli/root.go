// Package cli implements the command line interface for Sercha Chat.
package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sercha-chat/internal/core/domain"
	"github.com/custodia-labs/sercha-chat/internal/core/ports/driven"
	"github.com/custodia-labs/sercha-chat/internal/core/ports/driving"
	"github.com/custodia-labs/sercha-chat/internal/logger"
)

// version is set at build time via ldflags.
var version = "dev"

// Services injected by the composition root. Commands check for nil and
// fail with a clear message, so tests can exercise commands without a
// full wiring.
var (
	libraryService   driving.LibraryService
	assistantService driving.AssistantService
	configStore      driven.ConfigStore
	promptStore      driven.PromptStore
)

// Services aggregates everything the commands depend on.
// This provides a single injection point for dependency injection.
type Services struct {
	Library   driving.LibraryService
	Assistant driving.AssistantService
	Config    driven.ConfigStore
	Prompts   driven.PromptStore
}

// SetServices wires the core services into the command tree.
func SetServices(s *Services) {
	if s == nil {
		return
	}
	libraryService = s.Library
	assistantService = s.Assistant
	configStore = s.Config
	promptStore = s.Prompts
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

var verboseFlag bool

var rootCmd = &cobra.Command{
	Use:   "sercha-chat",
	Short: "Chat with your documents from the terminal",
	Long: `Sercha Chat is a local retrieval-augmented assistant.

Add text, Markdown, PDF, Word or CSV documents to the library and ask
questions about them. Answers are grounded in the most relevant document
excerpts and the conversation so far.`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verboseFlag)
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable verbose logging")
}

// ensureIndex builds the index when documents are stored but no chain is
// bound yet. Each process starts unready, so commands that answer
// questions call this first.
func ensureIndex(ctx context.Context) error {
	if libraryService == nil || libraryService.Ready() {
		return nil
	}

	docs, err := libraryService.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list documents: %w", err)
	}
	if len(docs) == 0 {
		return nil
	}

	logger.Info("Building index over %d documents", len(docs))
	if err := libraryService.Rebuild(ctx); err != nil && !errors.Is(err, domain.ErrEmptyCorpus) {
		return fmt.Errorf("failed to build index: %w", err)
	}
	return nil
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// ExecuteContext runs the root command with the given context.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}
