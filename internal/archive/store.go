// Package archive persists named snapshots of chat sessions ("saved chats").
// The SQLite database is opened lazily and created on first use; if opening
// the DB or executing queries fails, the store falls back to in-memory
// operation. Every mutation rewrites the whole collection, matching the
// original overwrite-the-blob persistence contract.
package archive

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	_ "github.com/glebarez/go-sqlite"
	"github.com/google/uuid"

	"github.com/aimentor/mentor-go/internal/chat"
	"github.com/aimentor/mentor-go/internal/logger"
)

// ErrMalformedArchive reports an import payload whose top-level value is not
// a JSON array of archive entries. The existing collection is left untouched.
var ErrMalformedArchive = errors.New("malformed archive")

// ErrEntryNotFound reports an unknown archive entry id.
var ErrEntryNotFound = errors.New("archive entry not found")

// Entry is a frozen, named copy of a session's messages at save time.
// Later edits to the live session do not propagate.
type Entry struct {
	ID       string         `json:"id"`
	Name     string         `json:"name"`
	Messages []chat.Message `json:"messages"`
}

// Store holds the archive collection and mirrors it to SQLite.
type Store struct {
	path string

	once    sync.Once
	db      *sql.DB
	initErr error

	mu      sync.Mutex
	entries []Entry
	prefs   map[string]string
}

// Open creates a store backed by the SQLite database at path. The database
// is not touched until the first operation.
func Open(path string) *Store {
	return &Store{path: path, prefs: make(map[string]string)}
}

// initDB lazily opens the database, creates tables, and loads the persisted
// collection and preferences into memory.
func (s *Store) initDB() {
	db, err := sql.Open("sqlite", "file:"+s.path+"?_busy_timeout=10000&_fk=1")
	if err != nil {
		s.initErr = err
		logger.L.Warn("sqlite open failed; archive store is in-memory only", "error", err)
		return
	}
	if _, err = db.Exec(`CREATE TABLE IF NOT EXISTS archives (
		pos INTEGER PRIMARY KEY AUTOINCREMENT,
		id TEXT NOT NULL,
		name TEXT NOT NULL,
		messages TEXT NOT NULL
	);`); err != nil {
		s.initErr = err
		logger.L.Warn("sqlite table creation failed; archive store is in-memory only", "error", err)
		return
	}
	if _, err = db.Exec(`CREATE TABLE IF NOT EXISTS prefs (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);`); err != nil {
		s.initErr = err
		logger.L.Warn("sqlite table creation failed; archive store is in-memory only", "error", err)
		return
	}
	s.db = db

	rows, err := db.Query(`SELECT id, name, messages FROM archives ORDER BY pos ASC;`)
	if err == nil {
		defer rows.Close()
		for rows.Next() {
			var e Entry
			var raw string
			if err := rows.Scan(&e.ID, &e.Name, &raw); err != nil {
				continue
			}
			if err := json.Unmarshal([]byte(raw), &e.Messages); err != nil {
				logger.L.Warn("skipping archive row with unreadable messages", "id", e.ID, "error", err)
				continue
			}
			s.entries = append(s.entries, e)
		}
	}

	prows, err := db.Query(`SELECT key, value FROM prefs;`)
	if err == nil {
		defer prows.Close()
		for prows.Next() {
			var k, v string
			if err := prows.Scan(&k, &v); err == nil {
				s.prefs[k] = v
			}
		}
	}
	logger.L.Info("archive store initialized", "path", s.path, "entries", len(s.entries))
}

// persist rewrites the archives table from the in-memory collection.
// Callers hold s.mu. Persistence failures are logged and survived: the
// in-memory collection stays authoritative for the running client.
func (s *Store) persist() {
	if s.initErr != nil || s.db == nil {
		return
	}
	tx, err := s.db.Begin()
	if err != nil {
		logger.L.Error("archive persist failed to begin tx", "error", err)
		return
	}
	if _, err := tx.Exec(`DELETE FROM archives;`); err != nil {
		logger.L.Error("archive persist failed to clear", "error", err)
		_ = tx.Rollback()
		return
	}
	for _, e := range s.entries {
		raw, err := json.Marshal(e.Messages)
		if err != nil {
			logger.L.Error("archive persist failed to encode messages", "id", e.ID, "error", err)
			_ = tx.Rollback()
			return
		}
		if _, err := tx.Exec(`INSERT INTO archives (id, name, messages) VALUES (?,?,?);`, e.ID, e.Name, string(raw)); err != nil {
			logger.L.Error("archive persist failed to insert", "id", e.ID, "error", err)
			_ = tx.Rollback()
			return
		}
	}
	if err := tx.Commit(); err != nil {
		logger.L.Error("archive persist failed to commit", "error", err)
	}
}

// Save freezes the session's current name and messages into a new entry.
// Sessions with no messages are a no-op and return (nil, nil).
func (s *Store) Save(sess *chat.Session) (*Entry, error) {
	s.once.Do(s.initDB)
	name, msgs := sess.Snapshot()
	if len(msgs) == 0 {
		return nil, nil
	}
	e := Entry{ID: uuid.NewString(), Name: name, Messages: msgs}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, e)
	s.persist()
	return &e, nil
}

// Load returns a copy of the entry's name and messages. The caller installs
// them into a session; the archive entry itself is untouched.
func (s *Store) Load(entryID string) (string, []chat.Message, error) {
	s.once.Do(s.initDB)
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.entries {
		if e.ID == entryID {
			out := make([]chat.Message, len(e.Messages))
			copy(out, e.Messages)
			return e.Name, out, nil
		}
	}
	return "", nil, fmt.Errorf("%w: %s", ErrEntryNotFound, entryID)
}

// Rename updates an entry's name in place. A blank name is silently ignored.
func (s *Store) Rename(entryID, name string) error {
	s.once.Do(s.initDB)
	if name == "" {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.entries {
		if s.entries[i].ID == entryID {
			s.entries[i].Name = name
			s.persist()
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrEntryNotFound, entryID)
}

// ClearAll empties the collection and erases the persisted rows.
func (s *Store) ClearAll() {
	s.once.Do(s.initDB)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = nil
	s.persist()
}

// Entries returns a copy of the collection in save order.
func (s *Store) Entries() []Entry {
	s.once.Do(s.initDB)
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// ExportAll serializes the whole collection as a canonical JSON array.
func (s *Store) ExportAll() ([]byte, error) {
	s.once.Do(s.initDB)
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.entries) == 0 {
		return []byte("[]"), nil
	}
	return json.MarshalIndent(s.entries, "", "  ")
}

// ImportAll replaces the entire collection, in memory and on disk, with the
// parsed payload. Anything whose top-level value is not a JSON array fails
// with ErrMalformedArchive and leaves the existing collection unchanged.
// Replacement, not merge: callers must warn the user before invoking this.
func (s *Store) ImportAll(data []byte) error {
	s.once.Do(s.initDB)
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return fmt.Errorf("%w: top-level value is not an array", ErrMalformedArchive)
	}
	var entries []Entry
	if err := json.Unmarshal(trimmed, &entries); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedArchive, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = entries
	s.persist()
	return nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
