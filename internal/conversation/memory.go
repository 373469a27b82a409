// Package conversation keeps bounded per-sender chat history.
//
// The history exists to ground the AI prompt: the last few turns are
// rendered into the prompt so follow-up questions ("y el precio?") keep
// their context. The buffer is deeper than what is surfaced: ten turns
// retained, six rendered into the prompt.
package conversation

import (
	"strings"
	"sync"
)

const (
	// Capacity is the maximum number of turns kept per sender. Older
	// turns are evicted first.
	Capacity = 10

	// RecentTurns is how many of the retained turns are rendered into
	// the AI prompt.
	RecentTurns = 6

	// firstContact is rendered when a sender has no history yet.
	firstContact = "Primera conversación con este usuario."
)

// Tags identifying who produced a turn.
const (
	tagUser = "Usuario"
	tagBot  = "Bot"
)

// Memory stores conversation history keyed by sender identifier.
// Safe for concurrent use.
type Memory struct {
	mu    sync.Mutex
	turns map[string][]string
}

// NewMemory creates an empty Memory.
func NewMemory() *Memory {
	return &Memory{turns: make(map[string][]string)}
}

// Append records one turn for the sender. When the buffer exceeds
// Capacity the oldest turns are dropped.
func (m *Memory) Append(id, text string, isUser bool) {
	tag := tagBot
	if isUser {
		tag = tagUser
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	turns := append(m.turns[id], tag+": "+text)
	if len(turns) > Capacity {
		turns = turns[len(turns)-Capacity:]
	}
	m.turns[id] = turns
}

// FormatRecent renders the last RecentTurns turns as a labeled block for
// the AI prompt, or the first-contact marker when the sender has no
// history.
func (m *Memory) FormatRecent(id string) string {
	m.mu.Lock()
	defer m.mu.Unlock()

	turns := m.turns[id]
	if len(turns) == 0 {
		return firstContact
	}
	if len(turns) > RecentTurns {
		turns = turns[len(turns)-RecentTurns:]
	}
	return "HISTORIAL DE CONVERSACIÓN:\n" + strings.Join(turns, "\n") + "\n\n"
}

// Clear removes all history for the sender. Called when their session
// ends.
func (m *Memory) Clear(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.turns, id)
}

// Count returns how many senders currently have history. Exposed on the
// status endpoint.
func (m *Memory) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.turns)
}

// Len returns the number of turns retained for the sender.
func (m *Memory) Len(id string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.turns[id])
}
