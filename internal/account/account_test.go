package account

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func tempService(t *testing.T) *Service {
	t.Helper()
	s := Open(filepath.Join(t.TempDir(), "mentor.db"), "test-secret", time.Hour)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSignupAndLogin(t *testing.T) {
	s := tempService(t)
	ctx := context.Background()

	require.NoError(t, s.Signup(ctx, "Ada", "ada@example.com", "hunter2"))

	token, err := s.Login(ctx, "ada@example.com", "hunter2")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := s.VerifyToken(token)
	require.NoError(t, err)
	require.NotEmpty(t, userID)
}

func TestSignup_DuplicateEmail(t *testing.T) {
	s := tempService(t)
	ctx := context.Background()

	require.NoError(t, s.Signup(ctx, "Ada", "ada@example.com", "hunter2"))
	require.ErrorIs(t, s.Signup(ctx, "Ada Again", "ada@example.com", "other"), ErrAlreadyExists)
}

func TestLogin_Failures(t *testing.T) {
	s := tempService(t)
	ctx := context.Background()

	_, err := s.Login(ctx, "nobody@example.com", "pw")
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Signup(ctx, "Ada", "ada@example.com", "hunter2"))
	_, err = s.Login(ctx, "ada@example.com", "wrong")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestVerifyToken_Invalid(t *testing.T) {
	s := tempService(t)
	_, err := s.VerifyToken("not-a-token")
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyToken_Expired(t *testing.T) {
	s := Open(filepath.Join(t.TempDir(), "mentor.db"), "test-secret", time.Nanosecond)
	defer s.Close()
	ctx := context.Background()

	require.NoError(t, s.Signup(ctx, "Ada", "ada@example.com", "hunter2"))
	token, err := s.Login(ctx, "ada@example.com", "hunter2")
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)
	_, err = s.VerifyToken(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}
