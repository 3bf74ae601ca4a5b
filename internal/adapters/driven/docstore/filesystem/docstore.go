// Package filesystem provides a document store over a managed directory.
//
// Each uploaded document is one file, stored under its original
// filename. Filenames are unique within the directory, so the filename
// doubles as the document ID.
package filesystem

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/custodia-labs/sercha-chat/internal/core/domain"
	"github.com/custodia-labs/sercha-chat/internal/core/ports/driven"
)

// Ensure DocStore implements the interface.
var _ driven.DocumentStore = (*DocStore)(nil)

// DocStore stores documents as files in a single directory.
type DocStore struct {
	dir string
}

// NewDocStore creates a document store at the specified directory.
// If dir is empty, defaults to ~/.sercha-chat/documents.
func NewDocStore(dir string) (*DocStore, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dir = filepath.Join(home, ".sercha-chat", "documents")
	}

	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("creating document directory: %w", err)
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving document directory: %w", err)
	}
	return &DocStore{dir: abs}, nil
}

// Save writes a document's bytes under its filename.
func (d *DocStore) Save(_ context.Context, filename string, content []byte) (domain.Document, error) {
	if err := validateFilename(filename); err != nil {
		return domain.Document{}, err
	}

	path := filepath.Join(d.dir, filename)
	if _, err := os.Stat(path); err == nil {
		return domain.Document{}, fmt.Errorf("%w: %s", domain.ErrAlreadyExists, filename)
	}

	if err := os.WriteFile(path, content, 0600); err != nil {
		return domain.Document{}, fmt.Errorf("writing %s: %w", filename, err)
	}

	info, err := os.Stat(path)
	if err != nil {
		return domain.Document{}, fmt.Errorf("stat %s: %w", filename, err)
	}
	return documentFromInfo(filename, info), nil
}

// Delete removes the named document.
func (d *DocStore) Delete(_ context.Context, filename string) error {
	if err := validateFilename(filename); err != nil {
		return err
	}

	path := filepath.Join(d.dir, filename)
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("%w: %s", domain.ErrNotFound, filename)
	}
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("removing %s: %w", filename, err)
	}
	return nil
}

// List returns metadata for every stored document, ordered by filename.
// Hidden files and subdirectories are ignored.
func (d *DocStore) List(_ context.Context) ([]domain.Document, error) {
	entries, err := os.ReadDir(d.dir)
	if err != nil {
		return nil, fmt.Errorf("reading document directory: %w", err)
	}

	var docs []domain.Document
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", entry.Name(), err)
		}
		docs = append(docs, documentFromInfo(entry.Name(), info))
	}

	sort.Slice(docs, func(i, j int) bool { return docs[i].Filename < docs[j].Filename })
	return docs, nil
}

// Path returns the absolute path of a stored document.
func (d *DocStore) Path(_ context.Context, filename string) (string, error) {
	if err := validateFilename(filename); err != nil {
		return "", err
	}

	path := filepath.Join(d.dir, filename)
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("%w: %s", domain.ErrNotFound, filename)
	}
	return path, nil
}

// Dir returns the managed directory path.
func (d *DocStore) Dir() string {
	return d.dir
}

// validateFilename rejects names that would escape the directory.
func validateFilename(filename string) error {
	if filename == "" || filename != filepath.Base(filename) || strings.HasPrefix(filename, ".") {
		return fmt.Errorf("%w: invalid filename %q", domain.ErrInvalidInput, filename)
	}
	return nil
}

func documentFromInfo(filename string, info os.FileInfo) domain.Document {
	format, _ := domain.FormatForFilename(filename)
	return domain.Document{
		ID:        filename,
		Filename:  filename,
		Format:    format,
		Size:      info.Size(),
		CreatedAt: info.ModTime(),
	}
}
