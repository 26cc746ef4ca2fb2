// Package server exposes the REST surface of the backend: account signup and
// login, and the prompt-forwarding chat endpoint.
package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/aimentor/mentor-go/internal/account"
	"github.com/aimentor/mentor-go/internal/llm"
	"github.com/aimentor/mentor-go/internal/logger"
)

// Server holds the handler dependencies.
type Server struct {
	accounts     *account.Service
	client       llm.Client
	requireToken bool
}

// New creates a server. When requireToken is set, /api/ask demands a valid
// bearer token; the observed deployment leaves the chat endpoint open, so
// callers normally pass the config default (false).
func New(accounts *account.Service, client llm.Client, requireToken bool) *Server {
	return &Server{accounts: accounts, client: client, requireToken: requireToken}
}

// Handler returns the route mux.
func (s *Server) Handler() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/signup", s.handleSignup)
	mux.HandleFunc("POST /api/login", s.handleLogin)
	mux.HandleFunc("POST /api/ask", s.handleAsk)
	return mux
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.L.Error("failed to encode response", "error", err)
	}
}

type errorBody struct {
	Error string `json:"error"`
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{"Invalid request body"})
		return
	}

	err := s.accounts.Signup(r.Context(), req.Name, req.Email, req.Password)
	switch {
	case errors.Is(err, account.ErrAlreadyExists):
		writeJSON(w, http.StatusBadRequest, errorBody{"User already exists"})
	case err != nil:
		logger.L.Error("signup failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorBody{"Signup failed"})
	default:
		writeJSON(w, http.StatusOK, map[string]string{"message": "Signup successful"})
	}
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{"Invalid request body"})
		return
	}

	token, err := s.accounts.Login(r.Context(), req.Email, req.Password)
	switch {
	case errors.Is(err, account.ErrNotFound):
		writeJSON(w, http.StatusBadRequest, errorBody{"User not found"})
	case errors.Is(err, account.ErrInvalidCredentials):
		writeJSON(w, http.StatusBadRequest, errorBody{"Invalid credentials"})
	case err != nil:
		logger.L.Error("login failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorBody{"Login failed"})
	default:
		writeJSON(w, http.StatusOK, map[string]string{"message": "Login successful", "token": token})
	}
}

func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	if s.requireToken {
		raw := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		if _, err := s.accounts.VerifyToken(raw); err != nil {
			writeJSON(w, http.StatusUnauthorized, errorBody{"Unauthorized"})
			return
		}
	}

	var req struct {
		Prompt string `json:"prompt"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{"Invalid request body"})
		return
	}
	logger.L.Info("completion request", "length", len(req.Prompt))

	response, err := s.client.Complete(r.Context(), req.Prompt)
	if err != nil {
		logger.L.Error("completion failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorBody{err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"response": response})
}
