package mcp

import (
	"context"
	"encoding/base64"
	"errors"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sercha-chat/internal/core/domain"
)

func TestServer_handleAsk(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the answer", func(t *testing.T) {
		assistant := &mockAssistantService{answer: "The sky scatters blue light."}
		server, err := NewServer(&Ports{Assistant: assistant})
		require.NoError(t, err)

		_, output, err := server.handleAsk(ctx, nil, AskInput{Question: "Why is the sky blue?"})

		require.NoError(t, err)
		assert.Equal(t, "The sky scatters blue light.", output.Answer)
		assert.Equal(t, []string{"Why is the sky blue?"}, assistant.asked)
	})

	t.Run("empty library is a tool result, not a protocol error", func(t *testing.T) {
		assistant := &mockAssistantService{err: domain.ErrNotReady}
		server, err := NewServer(&Ports{Assistant: assistant})
		require.NoError(t, err)

		result, _, err := server.handleAsk(ctx, nil, AskInput{Question: "anything"})

		require.NoError(t, err)
		require.NotNil(t, result)
		assert.True(t, result.IsError)
		require.Len(t, result.Content, 1)
		text, ok := result.Content[0].(*mcp.TextContent)
		require.True(t, ok)
		assert.Contains(t, text.Text, "No documents indexed")
	})

	t.Run("other errors propagate", func(t *testing.T) {
		assistant := &mockAssistantService{err: domain.ErrExternalService}
		server, err := NewServer(&Ports{Assistant: assistant})
		require.NoError(t, err)

		_, _, err = server.handleAsk(ctx, nil, AskInput{Question: "anything"})

		assert.ErrorIs(t, err, domain.ErrExternalService)
	})
}

func TestServer_handleAddDocument(t *testing.T) {
	ctx := context.Background()

	t.Run("adds a document", func(t *testing.T) {
		library := &mockLibraryService{
			document: domain.Document{
				Filename: "notes.md",
				Format:   domain.FormatText,
				Size:     12,
			},
		}
		server, err := NewServer(&Ports{Assistant: &mockAssistantService{}, Library: library})
		require.NoError(t, err)

		input := AddDocumentInput{
			Filename: "notes.md",
			Content:  base64.StdEncoding.EncodeToString([]byte("hello world\n")),
		}
		_, output, err := server.handleAddDocument(ctx, nil, input)

		require.NoError(t, err)
		assert.Equal(t, "notes.md", output.Filename)
		assert.Equal(t, string(domain.FormatText), output.Format)
		assert.Equal(t, int64(12), output.Size)
	})

	t.Run("rejects invalid base64", func(t *testing.T) {
		server, err := NewServer(&Ports{Assistant: &mockAssistantService{}, Library: &mockLibraryService{}})
		require.NoError(t, err)

		input := AddDocumentInput{Filename: "notes.md", Content: "not base64!!!"}
		_, _, err = server.handleAddDocument(ctx, nil, input)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "decoding content")
	})

	t.Run("propagates library errors", func(t *testing.T) {
		library := &mockLibraryService{err: domain.ErrUnsupportedFormat}
		server, err := NewServer(&Ports{Assistant: &mockAssistantService{}, Library: library})
		require.NoError(t, err)

		input := AddDocumentInput{Filename: "notes.xyz", Content: ""}
		_, _, err = server.handleAddDocument(ctx, nil, input)

		assert.ErrorIs(t, err, domain.ErrUnsupportedFormat)
	})
}

func TestServer_handleRemoveDocument(t *testing.T) {
	ctx := context.Background()

	t.Run("removes a document", func(t *testing.T) {
		library := &mockLibraryService{}
		server, err := NewServer(&Ports{Assistant: &mockAssistantService{}, Library: library})
		require.NoError(t, err)

		_, output, err := server.handleRemoveDocument(ctx, nil, RemoveDocumentInput{Filename: "notes.md"})

		require.NoError(t, err)
		assert.Equal(t, "notes.md", output.Removed)
		assert.Equal(t, []string{"notes.md"}, library.removed)
	})

	t.Run("returns error for missing document", func(t *testing.T) {
		library := &mockLibraryService{err: domain.ErrNotFound}
		server, err := NewServer(&Ports{Assistant: &mockAssistantService{}, Library: library})
		require.NoError(t, err)

		_, _, err = server.handleRemoveDocument(ctx, nil, RemoveDocumentInput{Filename: "ghost.md"})

		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestServer_handleStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("reports readiness and documents", func(t *testing.T) {
		library := &mockLibraryService{
			ready: true,
			documents: []domain.Document{
				{Filename: "a.md"},
				{Filename: "b.txt"},
			},
		}
		server, err := NewServer(&Ports{Assistant: &mockAssistantService{}, Library: library})
		require.NoError(t, err)

		_, output, err := server.handleStatus(ctx, nil, StatusInput{})

		require.NoError(t, err)
		assert.True(t, output.Ready)
		assert.Equal(t, []string{"a.md", "b.txt"}, output.Documents)
		assert.Equal(t, 2, output.Count)
	})

	t.Run("empty library is unready", func(t *testing.T) {
		library := &mockLibraryService{}
		server, err := NewServer(&Ports{Assistant: &mockAssistantService{}, Library: library})
		require.NoError(t, err)

		_, output, err := server.handleStatus(ctx, nil, StatusInput{})

		require.NoError(t, err)
		assert.False(t, output.Ready)
		assert.Equal(t, 0, output.Count)
	})

	t.Run("propagates list errors", func(t *testing.T) {
		library := &mockLibraryService{err: errors.New("disk gone")}
		server, err := NewServer(&Ports{Assistant: &mockAssistantService{}, Library: library})
		require.NoError(t, err)

		_, _, err = server.handleStatus(ctx, nil, StatusInput{})

		assert.Error(t, err)
	})
}
