package cli

import (
	"context"
	"time"

	"github.com/custodia-labs/sercha-chat/internal/core/domain"
)

// mockLibraryService is a mock implementation of driving.LibraryService.
type mockLibraryService struct {
	document  domain.Document
	documents []domain.Document
	ready     bool
	err       error
	removed   []string
	rebuilds  int
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
	m.rebuilds++
	return m.err
}

func (m *mockLibraryService) List(_ context.Context) ([]domain.Document, error) {
	return m.documents, m.err
}

func (m *mockLibraryService) Ready() bool { return m.ready }

func (m *mockLibraryService) Close() error { return nil }

// mockAssistantService is a mock implementation of driving.AssistantService.
type mockAssistantService struct {
	answer string
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

func (m *mockAssistantService) History() []domain.Turn { return nil }

// mockConfigStore is a map-backed mock of driven.ConfigStore.
type mockConfigStore struct {
	values map[string]any
	path   string
}

func newMockConfigStore() *mockConfigStore {
	return &mockConfigStore{
		values: make(map[string]any),
		path:   "/tmp/sercha-chat/config.toml",
	}
}

func (m *mockConfigStore) Get(key string) (any, bool) {
	v, ok := m.values[key]
	return v, ok
}

func (m *mockConfigStore) GetString(key string) string {
	if v, ok := m.values[key].(string); ok {
		return v
	}
	return ""
}

func (m *mockConfigStore) GetInt(key string) int {
	if v, ok := m.values[key].(int); ok {
		return v
	}
	return 0
}

func (m *mockConfigStore) GetBool(key string) bool {
	if v, ok := m.values[key].(bool); ok {
		return v
	}
	return false
}

func (m *mockConfigStore) Set(key string, value any) error {
	m.values[key] = value
	return nil
}

func (m *mockConfigStore) Save() error { return nil }

func (m *mockConfigStore) Load() error { return nil }

func (m *mockConfigStore) Path() string { return m.path }

// setupTestServices installs mock services and returns a cleanup that
// restores the previous ones.
func setupTestServices() func() {
	oldLibrary := libraryService
	oldAssistant := assistantService
	oldConfig := configStore
	oldPrompts := promptStore

	libraryService = &mockLibraryService{
		document: domain.Document{
			ID:        "notes.md",
			Filename:  "notes.md",
			Format:    domain.FormatText,
			Size:      12,
			CreatedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		},
		documents: []domain.Document{
			{
				ID:        "notes.md",
				Filename:  "notes.md",
				Format:    domain.FormatText,
				Size:      12,
				CreatedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
			},
		},
		ready: true,
	}
	assistantService = &mockAssistantService{answer: "mock answer"}
	configStore = newMockConfigStore()
	promptStore = nil

	return func() {
		libraryService = oldLibrary
		assistantService = oldAssistant
		configStore = oldConfig
		promptStore = oldPrompts
	}
}
