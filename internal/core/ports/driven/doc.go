// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - Loader: Extracts raw text from one document format
//   - LoaderRegistry: Selects the loader for a file by extension
//   - DocumentStore: Owns the on-disk document directory
//   - EmbeddingService: Generates vector embeddings
//   - VectorStore: Persists vector collections and searches them
//   - LLMService: Language model chat completion
//
// # Optional Interfaces
//
//   - ConfigStore: Application configuration (commands fall back to defaults)
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or loader package
package driven
