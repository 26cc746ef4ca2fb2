// Package account implements signup and login over a SQLite users table.
// Passwords are stored as bcrypt hashes; logins mint signed, time-limited
// JWT session tokens. As with the archive store, the database is opened
// lazily and the service degrades to in-memory users if SQLite fails.
package account

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"time"

	_ "github.com/glebarez/go-sqlite"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/aimentor/mentor-go/internal/logger"
)

var (
	ErrAlreadyExists      = errors.New("user already exists")
	ErrNotFound           = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
)

const bcryptCost = 10

type user struct {
	ID           string
	Name         string
	Email        string
	PasswordHash []byte
}

// Service issues and verifies credentials.
type Service struct {
	path   string
	secret []byte
	ttl    time.Duration

	once    sync.Once
	db      *sql.DB
	initErr error

	mu    sync.Mutex
	users map[string]user // keyed by email, fallback when SQLite is down
}

// Open creates a service backed by the SQLite database at path. Tokens are
// signed with secret and expire after ttl (1 hour when zero).
func Open(path, secret string, ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &Service{
		path:   path,
		secret: []byte(secret),
		ttl:    ttl,
		users:  make(map[string]user),
	}
}

func (s *Service) initDB() {
	db, err := sql.Open("sqlite", "file:"+s.path+"?_busy_timeout=10000&_fk=1")
	if err != nil {
		s.initErr = err
		logger.L.Warn("sqlite open failed; account store is in-memory only", "error", err)
		return
	}
	if _, err = db.Exec(`CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		password_hash BLOB NOT NULL,
		created_at DATETIME NOT NULL
	);`); err != nil {
		s.initErr = err
		logger.L.Warn("sqlite table creation failed; account store is in-memory only", "error", err)
		return
	}
	s.db = db
}

func (s *Service) findByEmail(ctx context.Context, email string) (user, bool, error) {
	if s.initErr == nil && s.db != nil {
		var u user
		row := s.db.QueryRowContext(ctx, `SELECT id, name, email, password_hash FROM users WHERE email = ?;`, email)
		switch err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash); {
		case err == nil:
			return u, true, nil
		case errors.Is(err, sql.ErrNoRows):
			return user{}, false, nil
		default:
			return user{}, false, err
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[email]
	return u, ok, nil
}

// Signup registers a new user. Duplicate emails fail with ErrAlreadyExists.
func (s *Service) Signup(ctx context.Context, name, email, password string) error {
	s.once.Do(s.initDB)

	_, exists, err := s.findByEmail(ctx, email)
	if err != nil {
		return err
	}
	if exists {
		return ErrAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return err
	}
	u := user{ID: uuid.NewString(), Name: name, Email: email, PasswordHash: hash}

	if s.initErr == nil && s.db != nil {
		_, err := s.db.ExecContext(ctx, `INSERT INTO users (id, name, email, password_hash, created_at) VALUES (?,?,?,?,?);`,
			u.ID, u.Name, u.Email, u.PasswordHash, time.Now().UTC())
		if err != nil {
			logger.L.Error("failed to store user in sqlite; falling back to memory", "error", err)
		} else {
			return nil
		}
	}

	s.mu.Lock()
	s.users[email] = u
	s.mu.Unlock()
	return nil
}

// Login checks the credentials and returns a signed session token.
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	s.once.Do(s.initDB)

	u, exists, err := s.findByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if !exists {
		return "", ErrNotFound
	}
	if err := bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   u.ID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// VerifyToken validates a session token and returns the user id it names.
func (s *Service) VerifyToken(token string) (string, error) {
	parsed, err := jwt.ParseWithClaims(token, &jwt.RegisteredClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return "", ErrInvalidToken
	}
	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}

// Close releases the database handle.
func (s *Service) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
