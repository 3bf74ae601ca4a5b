package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates an entity already exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedFormat indicates a file extension with no registered
	// loader. During a batch rebuild the file is skipped and logged,
	// never fatal.
	ErrUnsupportedFormat = errors.New("unsupported document format")

	// ErrExtraction indicates a specific file failed to parse.
	// The file is skipped and the rest of the batch continues.
	ErrExtraction = errors.New("text extraction failed")

	// ErrEmptyCorpus indicates chunking produced zero chunks across the
	// whole document set. The rebuild aborts and any prior index binding
	// is retained.
	ErrEmptyCorpus = errors.New("no text content extracted from documents")

	// ErrIndexBuild indicates embedding or persistence failed while
	// constructing a vector collection. The rebuild aborts and any prior
	// binding is retained.
	ErrIndexBuild = errors.New("vector index build failed")

	// ErrNotReady indicates a question was asked before any index has
	// been built. This is a recoverable status, not a server fault: the
	// caller should prompt for document upload rather than retry.
	ErrNotReady = errors.New("no documents indexed")

	// ErrExternalService indicates an embedding or language-model call
	// failed. The enclosing answer or rebuild aborts; no retry is
	// attempted at this layer.
	ErrExternalService = errors.New("external service call failed")
)
