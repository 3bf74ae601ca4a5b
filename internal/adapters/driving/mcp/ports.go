package mcp

import (
	"github.com/custodia-labs/sercha-chat/internal/core/ports/driving"
)

// Ports aggregates the driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Assistant answers questions over the indexed documents.
	Assistant driving.AssistantService

	// Library manages the document set behind the assistant.
	Library driving.LibraryService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Assistant == nil {
		return ErrMissingAssistantService
	}
	// Library is optional; document tools are skipped without it.
	return nil
}
