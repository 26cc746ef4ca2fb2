package chat

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRegistry_StartsWithOneActiveSession(t *testing.T) {
	r := NewRegistry("Chat 1")
	require.Equal(t, 1, r.Len())
	require.Equal(t, "Chat 1", r.Active().Name())
}

func TestRegistry_CreateDoesNotActivate(t *testing.T) {
	r := NewRegistry("Chat 1")
	first := r.Active()

	s := r.Create("")
	require.Equal(t, "Chat 2", s.Name())
	require.Equal(t, first.ID, r.Active().ID)

	r.SetActive(s.ID)
	require.Equal(t, s.ID, r.Active().ID)
}

func TestRegistry_SetActive_MissingIDIsNoop(t *testing.T) {
	r := NewRegistry("Chat 1")
	active := r.Active()
	r.SetActive("nope")
	require.Equal(t, active.ID, r.Active().ID)
}

func TestRegistry_CloseNonActiveKeepsActive(t *testing.T) {
	r := NewRegistry("Chat 1")
	other := r.Create("")
	active := r.Active()

	r.Close(other.ID)
	require.Equal(t, 1, r.Len())
	require.Equal(t, active.ID, r.Active().ID)
}

func TestRegistry_CloseActiveTransfersToFirstRemaining(t *testing.T) {
	r := NewRegistry("Chat 1")
	second := r.Create("")
	third := r.Create("")
	r.SetActive(third.ID)

	first := r.Sessions()[0]
	r.Close(third.ID)
	require.Equal(t, 2, r.Len())
	require.Equal(t, first.ID, r.Active().ID)
	_, stillThere := r.Get(second.ID)
	require.True(t, stillThere)
}

func TestRegistry_CloseLastCreatesReplacement(t *testing.T) {
	r := NewRegistry("Chat 1")
	old := r.Active()
	old.Append(NewMessage(RoleUser, "hello"))

	r.Close(old.ID)
	require.Equal(t, 1, r.Len())
	repl := r.Active()
	require.NotEqual(t, old.ID, repl.ID)
	require.Equal(t, 0, repl.Len())
}

func TestRegistry_RenameAndClearMessages(t *testing.T) {
	r := NewRegistry("Chat 1")
	s := r.Active()
	s.Append(NewMessage(RoleUser, "hello"))

	r.Rename(s.ID, "Greeting")
	require.Equal(t, "Greeting", s.Name())

	r.ClearMessages(s.ID)
	require.Equal(t, 0, s.Len())
	require.Equal(t, "Greeting", s.Name())
}
