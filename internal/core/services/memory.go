package services

import (
	"sync"

	"github.com/custodia-labs/sercha-chat/internal/core/domain"
)

// Memory is the append-only conversation log of one chain.
// It lives exactly as long as its chain: a rebuild constructs a fresh
// chain with a fresh, empty memory, and the old log is discarded.
// Appends are guarded because answer calls may run concurrently.
type Memory struct {
	mu    sync.Mutex
	turns []domain.Turn
}

// NewMemory creates an empty conversation memory.
func NewMemory() *Memory {
	return &Memory{}
}

// Append records a completed question/answer turn.
func (m *Memory) Append(question, answer string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.turns = append(m.turns, domain.Turn{Question: question, Answer: answer})
}

// History returns the recorded turns in call order.
// The returned slice is a copy; callers cannot mutate the log.
func (m *Memory) History() []domain.Turn {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.Turn, len(m.turns))
	copy(out, m.turns)
	return out
}

// Len returns the number of recorded turns.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.turns)
}
