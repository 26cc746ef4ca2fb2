package chat

import (
	"fmt"
	"sync"
)

// Registry manages the set of open sessions (tabs) and which one is active.
// It is never empty: closing the last remaining session synchronously creates
// a fresh replacement.
type Registry struct {
	mu       sync.Mutex
	sessions []*Session
	activeID string
}

// NewRegistry creates a registry holding one empty active session.
func NewRegistry(defaultName string) *Registry {
	if defaultName == "" {
		defaultName = "Chat 1"
	}
	first := NewSession(defaultName)
	return &Registry{sessions: []*Session{first}, activeID: first.ID}
}

// Create adds a new empty session to the registry and returns it. The new
// session is not activated; the caller decides.
func (r *Registry) Create(name string) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()
	if name == "" {
		name = fmt.Sprintf("Chat %d", len(r.sessions)+1)
	}
	s := NewSession(name)
	r.sessions = append(r.sessions, s)
	return s
}

// Close removes the session with the given id. When the active session is
// closed and others remain, the first remaining session in registry order
// becomes active. Closing the last session replaces it with a fresh empty one.
// Unknown ids are a no-op.
func (r *Registry) Close(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	idx := -1
	for i, s := range r.sessions {
		if s.ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return
	}
	r.sessions = append(r.sessions[:idx], r.sessions[idx+1:]...)
	if len(r.sessions) == 0 {
		repl := NewSession("Chat 1")
		r.sessions = []*Session{repl}
		r.activeID = repl.ID
		return
	}
	if r.activeID == id {
		r.activeID = r.sessions[0].ID
	}
}

// SetActive marks the session with the given id as active. Unknown ids are a
// no-op.
func (r *Registry) SetActive(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.sessions {
		if s.ID == id {
			r.activeID = id
			return
		}
	}
}

// Active returns the active session. The invariant that the active id refers
// to a registered session makes the result always non-nil.
func (r *Registry) Active() *Session {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.sessions {
		if s.ID == r.activeID {
			return s
		}
	}
	// Unreachable while the invariant holds; fall back to the first session.
	return r.sessions[0]
}

// Get returns the session with the given id.
func (r *Registry) Get(id string) (*Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.sessions {
		if s.ID == id {
			return s, true
		}
	}
	return nil, false
}

// Rename updates the name of the session with the given id.
func (r *Registry) Rename(id, name string) {
	if s, ok := r.Get(id); ok {
		s.Rename(name)
	}
}

// ClearMessages empties the message sequence of the session with the given
// id, preserving its identity and name.
func (r *Registry) ClearMessages(id string) {
	if s, ok := r.Get(id); ok {
		s.Clear()
	}
}

// Sessions returns the open sessions in registry order.
func (r *Registry) Sessions() []*Session {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*Session, len(r.sessions))
	copy(out, r.sessions)
	return out
}

// Len returns the number of open sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}
