// Package domain defines the core business entities for Sercha Chat.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Document: A file held in the managed document directory
//   - Chunk: A bounded text segment used for embedding and retrieval
//   - Turn: One question/answer exchange in a conversation
//   - Format: A supported document format
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
