// Package mcp provides an MCP (Model Context Protocol) server adapter.
// It lets AI assistants ask questions against the local document library
// and manage its contents.
package mcp

import "errors"

// ErrMissingAssistantService is returned when the assistant service is not provided.
var ErrMissingAssistantService = errors.New("mcp: assistant service is required")
