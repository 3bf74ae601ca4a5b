// Package loaders provides format-specific text extraction.
//
// Each subpackage handles one document format and implements the
// driven.Loader interface. The Registry dispatches by file extension and
// reports unsupported extensions as domain.ErrUnsupportedFormat so a
// single unrecognised file never aborts an ingestion batch.
package loaders
