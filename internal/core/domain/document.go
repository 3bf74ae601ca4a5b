package domain

import "time"

// Document describes a file held in the managed document directory.
// The bytes themselves stay on disk; this is the metadata view used by
// listings and rebuild bookkeeping. Documents are never mutated in place:
// they are created on upload and deleted on explicit removal.
type Document struct {
	// ID is the unique identifier for the document.
	ID string

	// Filename is the original upload filename, preserved on disk.
	Filename string

	// Format is the document format derived from the file extension.
	Format Format

	// Size is the stored size in bytes.
	Size int64

	// CreatedAt is when the document was uploaded.
	CreatedAt time.Time
}

// Chunk is a bounded-length text segment derived from a document.
// Chunks are the atomic unit of embedding and retrieval. They are
// created during splitting, embedded once, and then discarded; only the
// vector store retains their content.
type Chunk struct {
	// ID is the unique identifier for the chunk.
	ID string

	// Source is the filename of the document the chunk came from.
	Source string

	// Content is the text content of this chunk.
	Content string

	// Position is the ordinal position within the source document.
	Position int
}
