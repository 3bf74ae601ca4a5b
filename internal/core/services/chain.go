package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/sercha-chat/internal/core/domain"
	"github.com/custodia-labs/sercha-chat/internal/core/ports/driven"
	"github.com/custodia-labs/sercha-chat/internal/logger"
)

// DefaultTopK is the number of chunks retrieved per question.
const DefaultTopK = 3

// DefaultSystemPrompt frames retrieved excerpts for the answering model.
// A PromptStore may supply a user-customised prompt instead.
const DefaultSystemPrompt = `You are a helpful assistant that answers questions using only the provided document excerpts. If the excerpts do not contain the answer, say so instead of guessing. Cite the source filename when it helps the user locate the information.`

// Chain binds one vector collection to one conversation.
// It is constructed by a successful rebuild and answers questions against
// that collection until the next rebuild replaces it. The conversation
// memory is owned by the chain, so a rebuild also resets the conversation.
type Chain struct {
	embedder     driven.EmbeddingService
	vectors      driven.VectorStore
	llm          driven.LLMService
	collection   string
	memory       *Memory
	topK         int
	systemPrompt string
}

// NewChain creates a chain over an already-built collection.
// An empty systemPrompt falls back to DefaultSystemPrompt.
func NewChain(embedder driven.EmbeddingService, vectors driven.VectorStore, llm driven.LLMService, collection string, topK int, systemPrompt string) *Chain {
	if topK <= 0 {
		topK = DefaultTopK
	}
	if systemPrompt == "" {
		systemPrompt = DefaultSystemPrompt
	}
	return &Chain{
		embedder:     embedder,
		vectors:      vectors,
		llm:          llm,
		collection:   collection,
		memory:       NewMemory(),
		topK:         topK,
		systemPrompt: systemPrompt,
	}
}

// Collection returns the name of the collection this chain queries.
func (c *Chain) Collection() string {
	return c.collection
}

// History returns the conversation turns recorded so far.
func (c *Chain) History() []domain.Turn {
	return c.memory.History()
}

// Answer embeds the question, retrieves the nearest chunks, composes a
// prompt with the conversation so far and asks the language model. The
// turn is appended to memory only when the model call succeeds.
func (c *Chain) Answer(ctx context.Context, question string) (string, error) {
	query, err := c.embedder.Embed(ctx, question)
	if err != nil {
		return "", fmt.Errorf("%w: embedding question: %v", domain.ErrExternalService, err)
	}

	hits, err := c.vectors.Search(ctx, c.collection, query, c.topK)
	if err != nil {
		return "", fmt.Errorf("searching collection %s: %w", c.collection, err)
	}
	logger.Debug("Retrieved %d chunks for question", len(hits))

	reply, err := c.llm.Chat(ctx, c.composeMessages(question, hits), driven.ChatOptions{Temperature: 0})
	if err != nil {
		return "", fmt.Errorf("%w: chat completion: %v", domain.ErrExternalService, err)
	}

	answer := strings.TrimSpace(reply)
	c.memory.Append(question, answer)
	return answer, nil
}

func (c *Chain) composeMessages(question string, hits []driven.VectorHit) []driven.ChatMessage {
	var sb strings.Builder
	sb.WriteString(c.systemPrompt)
	sb.WriteString("\n\nDocument excerpts:\n")
	for i, hit := range hits {
		fmt.Fprintf(&sb, "\n[%d] (source: %s)\n%s\n", i+1, hit.Source, hit.Content)
	}

	messages := make([]driven.ChatMessage, 0, 2*c.memory.Len()+2)
	messages = append(messages, driven.ChatMessage{Role: "system", Content: sb.String()})
	for _, turn := range c.memory.History() {
		messages = append(messages,
			driven.ChatMessage{Role: "user", Content: turn.Question},
			driven.ChatMessage{Role: "assistant", Content: turn.Answer},
		)
	}
	return append(messages, driven.ChatMessage{Role: "user", Content: question})
}
