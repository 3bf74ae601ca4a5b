package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sercha-chat/internal/core/domain"
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a single question",
	Long: `Ask a question answered from the indexed documents.

The question and answer are recorded in the conversation for this
process only; use 'sercha-chat chat' for a multi-turn session.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

func init() {
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	if assistantService == nil {
		return errors.New("assistant service not configured")
	}

	if err := ensureIndex(cmd.Context()); err != nil {
		return err
	}

	question := strings.Join(args, " ")

	answer, err := assistantService.Ask(cmd.Context(), question)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotReady):
			return errors.New("no documents indexed yet, add some with: sercha-chat add <file>")
		case errors.Is(err, domain.ErrExternalService):
			return fmt.Errorf("model service unavailable: %w", err)
		default:
			return fmt.Errorf("failed to answer: %w", err)
		}
	}

	cmd.Println(answer)
	return nil
}
