package mcp

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/sercha-chat/internal/core/domain"
)

// AskInput is the input schema for the ask tool.
type AskInput struct {
	Question string `json:"question" jsonschema:"the question to answer from the indexed documents"`
}

// AskOutput is the output schema for the ask tool.
type AskOutput struct {
	Answer string `json:"answer"`
}

// AddDocumentInput is the input schema for the add_document tool.
type AddDocumentInput struct {
	Filename string `json:"filename" jsonschema:"the document filename, including its extension"`
	Content  string `json:"content" jsonschema:"the document content, base64-encoded"`
}

// AddDocumentOutput is the output schema for the add_document tool.
type AddDocumentOutput struct {
	Filename string `json:"filename"`
	Format   string `json:"format"`
	Size     int64  `json:"size"`
}

// RemoveDocumentInput is the input schema for the remove_document tool.
type RemoveDocumentInput struct {
	Filename string `json:"filename" jsonschema:"the filename of the document to remove"`
}

// RemoveDocumentOutput is the output schema for the remove_document tool.
type RemoveDocumentOutput struct {
	Removed string `json:"removed"`
}

// StatusInput is the input schema for the status tool.
type StatusInput struct{}

// StatusOutput is the output schema for the status tool.
type StatusOutput struct {
	Ready     bool     `json:"ready"`
	Documents []string `json:"documents"`
	Count     int      `json:"count"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "ask",
		Description: "Ask a question answered from the indexed documents",
	}, s.handleAsk)

	if s.ports.Library == nil {
		return
	}

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "add_document",
		Description: "Add a document to the library and rebuild the index",
	}, s.handleAddDocument)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "remove_document",
		Description: "Remove a document from the library and rebuild the index",
	}, s.handleRemoveDocument)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "status",
		Description: "Report library readiness and the indexed documents",
	}, s.handleStatus)
}

// handleAsk handles the ask tool invocation.
func (s *Server) handleAsk(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AskInput,
) (*mcp.CallToolResult, AskOutput, error) {
	answer, err := s.ports.Assistant.Ask(ctx, input.Question)
	if err != nil {
		// An empty library is a state the caller can fix, not a
		// protocol failure.
		if errors.Is(err, domain.ErrNotReady) {
			return &mcp.CallToolResult{
				IsError: true,
				Content: []mcp.Content{&mcp.TextContent{
					Text: "No documents indexed yet. Add documents with the add_document tool first.",
				}},
			}, AskOutput{}, nil
		}
		return nil, AskOutput{}, err
	}
	return nil, AskOutput{Answer: answer}, nil
}

// handleAddDocument handles the add_document tool invocation.
func (s *Server) handleAddDocument(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AddDocumentInput,
) (*mcp.CallToolResult, AddDocumentOutput, error) {
	content, err := base64.StdEncoding.DecodeString(input.Content)
	if err != nil {
		return nil, AddDocumentOutput{}, fmt.Errorf("decoding content: %w", err)
	}

	doc, err := s.ports.Library.Add(ctx, input.Filename, content)
	if err != nil {
		return nil, AddDocumentOutput{}, err
	}

	return nil, AddDocumentOutput{
		Filename: doc.Filename,
		Format:   string(doc.Format),
		Size:     doc.Size,
	}, nil
}

// handleRemoveDocument handles the remove_document tool invocation.
func (s *Server) handleRemoveDocument(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input RemoveDocumentInput,
) (*mcp.CallToolResult, RemoveDocumentOutput, error) {
	if err := s.ports.Library.Remove(ctx, input.Filename); err != nil {
		return nil, RemoveDocumentOutput{}, err
	}
	return nil, RemoveDocumentOutput{Removed: input.Filename}, nil
}

// handleStatus handles the status tool invocation.
func (s *Server) handleStatus(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ StatusInput,
) (*mcp.CallToolResult, StatusOutput, error) {
	docs, err := s.ports.Library.List(ctx)
	if err != nil {
		return nil, StatusOutput{}, err
	}

	names := make([]string, len(docs))
	for i := range docs {
		names[i] = docs[i].Filename
	}

	return nil, StatusOutput{
		Ready:     s.ports.Library.Ready(),
		Documents: names,
		Count:     len(names),
	}, nil
}
