// Package splitter provides recursive character text splitting.
//
// Text is divided along a prioritised list of boundaries (paragraph break,
// line break, word break, hard cut) so chunks avoid splitting mid-word or
// mid-paragraph where possible. Adjacent chunks overlap to preserve context
// continuity for retrieval. Splitting is deterministic: the same text and
// configuration always produce the same chunk sequence.
package splitter

import (
	"strings"
	"unicode/utf8"
)

// DefaultChunkSize is the default number of characters per chunk.
const DefaultChunkSize = 1000

// DefaultOverlap is the default number of overlapping characters.
const DefaultOverlap = 200

// defaultSeparators are tried in order. The empty string means a hard cut
// at the chunk size and is always the last resort.
var defaultSeparators = []string{"\n\n", "\n", " ", ""}

// Splitter divides text into bounded, overlapping segments.
type Splitter struct {
	chunkSize  int
	overlap    int
	separators []string
}

// Option configures the splitter.
type Option func(*Splitter)

// WithChunkSize sets the target chunk size in characters.
func WithChunkSize(size int) Option {
	return func(s *Splitter) {
		if size > 0 {
			s.chunkSize = size
		}
	}
}

// WithOverlap sets the overlap between adjacent chunks in characters.
func WithOverlap(overlap int) Option {
	return func(s *Splitter) {
		if overlap >= 0 {
			s.overlap = overlap
		}
	}
}

// WithSeparators sets the prioritised boundary list.
func WithSeparators(separators []string) Option {
	return func(s *Splitter) {
		if len(separators) > 0 {
			s.separators = separators
		}
	}
}

// New creates a splitter with the given options.
func New(opts ...Option) *Splitter {
	s := &Splitter{
		chunkSize:  DefaultChunkSize,
		overlap:    DefaultOverlap,
		separators: defaultSeparators,
	}

	for _, opt := range opts {
		opt(s)
	}

	// Ensure overlap doesn't exceed chunk size
	if s.overlap >= s.chunkSize {
		s.overlap = s.chunkSize / 4
	}

	return s
}

// ChunkSize returns the configured target chunk length.
func (s *Splitter) ChunkSize() int {
	return s.chunkSize
}

// Overlap returns the configured overlap length.
func (s *Splitter) Overlap() int {
	return s.overlap
}

// Split returns the text's chunks in document order.
// Blank text yields no chunks; text shorter than the chunk size yields
// exactly one.
func (s *Splitter) Split(text string) []string {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil
	}
	if len(trimmed) <= s.chunkSize {
		return []string{trimmed}
	}

	return s.merge(s.atomise(trimmed, s.separators))
}

// atomise recursively divides text into units no longer than the chunk
// size, preferring the highest-priority boundary that makes progress.
// Separators stay attached to the preceding unit, so concatenating the
// units reproduces the input exactly.
func (s *Splitter) atomise(text string, separators []string) []string {
	if len(text) <= s.chunkSize {
		return []string{text}
	}
	if len(separators) == 0 || separators[0] == "" {
		return hardCut(text, s.chunkSize)
	}

	sep := separators[0]
	rest := separators[1:]

	parts := strings.SplitAfter(text, sep)
	atoms := make([]string, 0, len(parts))
	for _, part := range parts {
		if part == "" {
			continue
		}
		if len(part) <= s.chunkSize {
			atoms = append(atoms, part)
			continue
		}
		atoms = append(atoms, s.atomise(part, rest)...)
	}
	return atoms
}

// merge assembles atoms into chunks of at most chunkSize characters,
// carrying the tail of each emitted chunk into the next for overlap.
// The carry is dropped when the next atom would not fit alongside it.
func (s *Splitter) merge(atoms []string) []string {
	var chunks []string
	var cur string

	for _, atom := range atoms {
		if cur == "" {
			cur = atom
			continue
		}
		if len(cur)+len(atom) <= s.chunkSize {
			cur += atom
			continue
		}

		chunks = append(chunks, cur)

		carry := tail(cur, s.overlap)
		// The size cap wins over overlap: a near-chunk-sized atom
		// starts its chunk without carry, so adjacent chunks may
		// share nothing.
		if len(carry)+len(atom) > s.chunkSize {
			carry = ""
		}
		cur = carry + atom
	}

	if strings.TrimSpace(cur) != "" {
		chunks = append(chunks, cur)
	}
	return chunks
}

// tail returns the last n bytes of text, aligned to a rune boundary.
func tail(text string, n int) string {
	if len(text) <= n {
		return text
	}
	start := len(text) - n
	for start < len(text) && !utf8.RuneStart(text[start]) {
		start++
	}
	return text[start:]
}

// hardCut slices text into pieces of exactly size bytes (the last may be
// shorter), aligned to rune boundaries. Used when no boundary exists, e.g.
// one unbroken word longer than the chunk size.
func hardCut(text string, size int) []string {
	var pieces []string
	for len(text) > size {
		end := size
		for end > 0 && !utf8.RuneStart(text[end]) {
			end--
		}
		if end == 0 {
			end = size
		}
		pieces = append(pieces, text[:end])
		text = text[end:]
	}
	if text != "" {
		pieces = append(pieces, text)
	}
	return pieces
}
