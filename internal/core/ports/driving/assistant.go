package driving

import (
	"context"

	"github.com/custodia-labs/sercha-chat/internal/core/domain"
)

// AssistantService answers questions grounded in the indexed documents.
type AssistantService interface {
	// Ask embeds the question, retrieves the most similar chunks,
	// composes a prompt with the conversation so far and invokes the
	// language model. The completed turn is recorded in conversation
	// memory; a failed call records nothing.
	//
	// Returns domain.ErrNotReady when no index has been built yet.
	Ask(ctx context.Context, question string) (string, error)

	// History returns the conversation turns of the current chain in
	// call order. The history is discarded whenever the index is rebuilt.
	History() []domain.Turn
}
