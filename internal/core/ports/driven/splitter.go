package driven

// Splitter divides extracted text into bounded, overlapping segments
// suitable for embedding. Splitting is pure and deterministic: the same
// text with the same configuration always yields the same segments.
type Splitter interface {
	// Split returns the text's segments in document order.
	// Empty or blank text yields zero segments.
	Split(text string) []string

	// ChunkSize returns the configured target segment length in characters.
	ChunkSize() int

	// Overlap returns the configured overlap between adjacent segments.
	Overlap() int
}
