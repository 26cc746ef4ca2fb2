package chat

import "sync"

// PinSet tracks message ids the user marked as favorites. Membership is
// independent of which session owns a message, and it is intentionally
// ephemeral: pins live in memory and do not survive a restart.
type PinSet struct {
	mu  sync.Mutex
	ids map[string]struct{}
}

// NewPinSet creates an empty pin set.
func NewPinSet() *PinSet {
	return &PinSet{ids: make(map[string]struct{})}
}

// Toggle flips membership for the given message id.
func (p *PinSet) Toggle(id string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.ids[id]; ok {
		delete(p.ids, id)
		return
	}
	p.ids[id] = struct{}{}
}

// IsPinned reports whether the given message id is pinned.
func (p *PinSet) IsPinned(id string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, ok := p.ids[id]
	return ok
}

// Pinned returns the session's pinned messages in conversation order,
// restricted to assistant turns (the only ones the UI offers a pin for).
func (p *PinSet) Pinned(s *Session) []Message {
	var out []Message
	for _, m := range s.Messages() {
		if m.Role != RoleAssistant {
			continue
		}
		if p.IsPinned(m.ID) {
			out = append(out, m)
		}
	}
	return out
}
