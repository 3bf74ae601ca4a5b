package mcp

import (
	"context"

	"github.com/custodia-labs/sercha-chat/internal/core/domain"
)

// mockAssistantService is a mock implementation of driving.AssistantService.
type mockAssistantService struct {
	answer string
	turns  []domain.Turn
	err    error
	asked  []string
}

func (m *mockAssistantService) Ask(_ context.Context, question string) (string, error) {
	m.asked = append(m.asked, question)
	if m.err != nil {
		return "", m.err
	}
	return m.answer, nil
}

func (m *mockAssistantService) History() []domain.Turn {
	return m.turns
}

// mockLibraryService is a mock implementation of driving.LibraryService.
type mockLibraryService struct {
	document  domain.Document
	documents []domain.Document
	ready     bool
	err       error
	removed   []string
}

func (m *mockLibraryService) Add(_ context.Context, _ string, _ []byte) (domain.Document, error) {
	return m.document, m.err
}

func (m *mockLibraryService) Remove(_ context.Context, filename string) error {
	if m.err == nil {
		m.removed = append(m.removed, filename)
	}
	return m.err
}

func (m *mockLibraryService) Rebuild(_ context.Context) error {
	return m.err
}

func (m *mockLibraryService) List(_ context.Context) ([]domain.Document, error) {
	return m.documents, m.err
}

func (m *mockLibraryService) Ready() bool {
	return m.ready
}

func (m *mockLibraryService) Close() error {
	return nil
}
