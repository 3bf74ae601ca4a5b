package driven

// Prompt names used with PromptStore.
const (
	// PromptRAGSystem is the system prompt framing retrieved excerpts
	// for the answering model.
	PromptRAGSystem = "rag_system"
)

// PromptStore loads prompt templates for LLM operations.
// Implementations may load from user-editable files with embedded
// defaults as fallback.
type PromptStore interface {
	// Load returns the prompt template for the given name.
	Load(name string) (string, error)

	// Reload clears any cached prompts, forcing fresh loads.
	Reload()

	// Dir returns the directory prompts are loaded from.
	Dir() string
}
