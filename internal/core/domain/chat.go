package domain

// Turn is one completed question/answer exchange.
// Turns are appended to conversation memory in call order and discarded
// when the owning chain is torn down.
type Turn struct {
	// Question is the user's question as asked.
	Question string

	// Answer is the assistant's reply.
	Answer string
}

// RetrievedChunk is a chunk surfaced by similarity search, with the
// similarity score assigned by the vector store.
type RetrievedChunk struct {
	// Source is the filename of the originating document.
	Source string

	// Content is the chunk text.
	Content string

	// Similarity is the cosine similarity to the query (higher is closer).
	Similarity float64
}
