package chat

import (
	"sync"

	"github.com/google/uuid"
)

// Session is one independent, ordered conversation thread (a tab in the UI).
// The message sequence is append-only except for in-place text replacement.
// A mutex guards the sequence because typing-effect reveals write from a
// timer goroutine while the owner keeps interacting.
type Session struct {
	ID string

	mu   sync.Mutex
	name string
	msgs []Message
}

// NewSession creates an empty session with a fresh unique id.
func NewSession(name string) *Session {
	return &Session{ID: uuid.NewString(), name: name}
}

// Name returns the session's display name.
func (s *Session) Name() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.name
}

// Rename updates the display name only.
func (s *Session) Rename(name string) {
	s.mu.Lock()
	s.name = name
	s.mu.Unlock()
}

// Append adds a message to the end of the sequence.
func (s *Session) Append(msg Message) {
	s.mu.Lock()
	s.msgs = append(s.msgs, msg)
	s.mu.Unlock()
}

// ReplaceText updates the text of the message with the given id, preserving
// id and role. Unknown ids are a no-op; the return reports whether a message
// was updated.
func (s *Session) ReplaceText(id, text string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.msgs {
		if s.msgs[i].ID == id {
			s.msgs[i].Text = text
			return true
		}
	}
	return false
}

// Find returns the message with the given id.
func (s *Session) Find(id string) (Message, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, m := range s.msgs {
		if m.ID == id {
			return m, true
		}
	}
	return Message{}, false
}

// IndexOf returns the position of the message with the given id, or -1.
func (s *Session) IndexOf(id string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, m := range s.msgs {
		if m.ID == id {
			return i
		}
	}
	return -1
}

// At returns the message at position i.
func (s *Session) At(i int) (Message, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i < 0 || i >= len(s.msgs) {
		return Message{}, false
	}
	return s.msgs[i], true
}

// Len returns the number of messages.
func (s *Session) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.msgs)
}

// Clear resets the message sequence to empty, preserving id and name.
func (s *Session) Clear() {
	s.mu.Lock()
	s.msgs = nil
	s.mu.Unlock()
}

// Messages returns a copy of the message sequence in conversation order.
func (s *Session) Messages() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Message, len(s.msgs))
	copy(out, s.msgs)
	return out
}

// Snapshot returns the name and a deep copy of the messages, for archiving.
func (s *Session) Snapshot() (string, []Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Message, len(s.msgs))
	copy(out, s.msgs)
	return s.name, out
}

// Restore overwrites the session's name and messages with the given snapshot.
// This is destructive to whatever the session held before.
func (s *Session) Restore(name string, msgs []Message) {
	s.mu.Lock()
	s.name = name
	s.msgs = make([]Message, len(msgs))
	copy(s.msgs, msgs)
	s.mu.Unlock()
}
