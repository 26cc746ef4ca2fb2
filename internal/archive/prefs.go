package archive

import "github.com/aimentor/mentor-go/internal/logger"

// Preference keys shared with the frontend's local storage.
const (
	prefDraft = "draftInput"
	prefTheme = "appTheme"
)

// setPref writes a preference synchronously, memory first, then the database.
func (s *Store) setPref(key, value string) {
	s.once.Do(s.initDB)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prefs[key] = value
	if s.initErr != nil || s.db == nil {
		return
	}
	if _, err := s.db.Exec(`INSERT INTO prefs (key, value) VALUES (?,?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value;`, key, value); err != nil {
		logger.L.Error("failed to persist preference", "key", key, "error", err)
	}
}

func (s *Store) pref(key string) string {
	s.once.Do(s.initDB)
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.prefs[key]
}

// SetDraft persists the chat input draft so a reload restores it.
func (s *Store) SetDraft(text string) { s.setPref(prefDraft, text) }

// Draft returns the persisted input draft.
func (s *Store) Draft() string { return s.pref(prefDraft) }

// SetTheme persists the selected theme name.
func (s *Store) SetTheme(name string) { s.setPref(prefTheme, name) }

// Theme returns the persisted theme name.
func (s *Store) Theme() string { return s.pref(prefTheme) }
