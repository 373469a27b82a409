// Package session tracks which senders have an active inventory session.
//
// A session is a per-sender toggle: started with the start command, ended
// with the stop command, and never expired by time. The bot stays
// reachable for a sender who opened a session hours ago, and stays
// completely silent for everyone else.
package session

import "sync"

// Tracker is the set of senders with an active session.
// Safe for concurrent use.
type Tracker struct {
	mu     sync.Mutex
	active map[string]struct{}
}

// NewTracker creates an empty Tracker.
func NewTracker() *Tracker {
	return &Tracker{active: make(map[string]struct{})}
}

// Start activates a session for the sender. Idempotent: re-starting an
// active session is not an error.
func (t *Tracker) Start(id string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.active[id] = struct{}{}
}

// End deactivates the sender's session. Returns true if a session was
// active, false if there was nothing to end.
func (t *Tracker) End(id string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, ok := t.active[id]
	delete(t.active, id)
	return ok
}

// Active reports whether the sender has an active session.
func (t *Tracker) Active(id string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, ok := t.active[id]
	return ok
}

// Count returns the number of active sessions. Exposed on the status
// endpoint.
func (t *Tracker) Count() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.active)
}
