package archive

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aimentor/mentor-go/internal/chat"
)

func tempStore(t *testing.T) *Store {
	t.Helper()
	s := Open(filepath.Join(t.TempDir(), "mentor.db"))
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func sessionWithMessages(name string, texts ...string) *chat.Session {
	s := chat.NewSession(name)
	for i, txt := range texts {
		role := chat.RoleUser
		if i%2 == 1 {
			role = chat.RoleAssistant
		}
		s.Append(chat.NewMessage(role, txt))
	}
	return s
}

func TestSave_EmptySessionIsNoop(t *testing.T) {
	s := tempStore(t)
	_, err := s.Save(chat.NewSession("Chat 1"))
	require.NoError(t, err)
	require.Empty(t, s.Entries())
}

func TestSave_FreezesSnapshot(t *testing.T) {
	s := tempStore(t)
	sess := sessionWithMessages("Chat 1", "Hello", "Hi!")

	entry, err := s.Save(sess)
	require.NoError(t, err)
	require.NotNil(t, entry)
	require.Equal(t, "Chat 1", entry.Name)
	require.Len(t, entry.Messages, 2)

	// later session mutation must not reach the saved entry
	sess.ReplaceText(sess.Messages()[0].ID, "changed")
	got := s.Entries()
	require.Len(t, got, 1)
	require.Equal(t, "Hello", got[0].Messages[0].Text)
}

func TestSave_EntryIDsAreUnique(t *testing.T) {
	s := tempStore(t)
	sess := sessionWithMessages("Chat 1", "Hello")
	seen := map[string]bool{}
	for i := 0; i < 10; i++ {
		e, err := s.Save(sess)
		require.NoError(t, err)
		require.False(t, seen[e.ID])
		seen[e.ID] = true
	}
}

func TestLoad(t *testing.T) {
	s := tempStore(t)
	entry, err := s.Save(sessionWithMessages("Chat 1", "Hello", "Hi!"))
	require.NoError(t, err)

	name, msgs, err := s.Load(entry.ID)
	require.NoError(t, err)
	require.Equal(t, "Chat 1", name)
	require.Len(t, msgs, 2)

	_, _, err = s.Load("missing")
	require.ErrorIs(t, err, ErrEntryNotFound)
}

func TestRename(t *testing.T) {
	s := tempStore(t)
	entry, err := s.Save(sessionWithMessages("Chat 1", "Hello", "Hi!"))
	require.NoError(t, err)

	require.NoError(t, s.Rename(entry.ID, "Greeting"))
	got := s.Entries()[0]
	require.Equal(t, "Greeting", got.Name)
	require.Len(t, got.Messages, 2, "rename must not touch messages")

	require.NoError(t, s.Rename(entry.ID, ""), "blank name is silently ignored")
	require.Equal(t, "Greeting", s.Entries()[0].Name)

	require.ErrorIs(t, s.Rename("missing", "x"), ErrEntryNotFound)
}

func TestClearAll(t *testing.T) {
	s := tempStore(t)
	_, err := s.Save(sessionWithMessages("Chat 1", "Hello"))
	require.NoError(t, err)

	s.ClearAll()
	require.Empty(t, s.Entries())
}

func TestExportImportRoundTrip(t *testing.T) {
	s := tempStore(t)
	_, err := s.Save(sessionWithMessages("Chat 1", "Hello", "Hi!"))
	require.NoError(t, err)
	_, err = s.Save(sessionWithMessages("Chat 2", "More"))
	require.NoError(t, err)
	want := s.Entries()

	data, err := s.ExportAll()
	require.NoError(t, err)

	other := tempStore(t)
	require.NoError(t, other.ImportAll(data))
	require.Equal(t, want, other.Entries())
}

func TestImportAll_NonArrayIsRejected(t *testing.T) {
	s := tempStore(t)
	_, err := s.Save(sessionWithMessages("Chat 1", "Hello"))
	require.NoError(t, err)
	before := s.Entries()

	for _, payload := range []string{`{"id":"x"}`, `"text"`, `42`, `null`, ``, `not json`} {
		err := s.ImportAll([]byte(payload))
		require.ErrorIs(t, err, ErrMalformedArchive, "payload %q", payload)
	}
	require.Equal(t, before, s.Entries(), "failed import must leave the collection unchanged")
}

func TestImportAll_ReplacesNotMerges(t *testing.T) {
	s := tempStore(t)
	_, err := s.Save(sessionWithMessages("Chat 1", "Hello"))
	require.NoError(t, err)

	require.NoError(t, s.ImportAll([]byte(`[{"id":"imported","name":"Imported","messages":[]}]`)))
	got := s.Entries()
	require.Len(t, got, 1)
	require.Equal(t, "imported", got[0].ID)
}

func TestPersistenceSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mentor.db")

	s := Open(path)
	_, err := s.Save(sessionWithMessages("Chat 1", "Hello", "Hi!"))
	require.NoError(t, err)
	s.SetDraft("half-typed thought")
	s.SetTheme("Aurora")
	want := s.Entries()
	require.NoError(t, s.Close())

	re := Open(path)
	defer re.Close()
	require.Equal(t, want, re.Entries())
	require.Equal(t, "half-typed thought", re.Draft())
	require.Equal(t, "Aurora", re.Theme())
}
