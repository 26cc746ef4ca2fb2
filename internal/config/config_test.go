package config

import (
	"os"
	"testing"
	"time"
)

const sampleConfig = `
llm:
  base_url: https://api.example.com/v1
  api_key: dummy
  model: gpt-4o-mini
server:
  host: 0.0.0.0
  port: "5000"
auth:
  jwt_secret: sekrit
  require_token: true
  token_ttl: 2h
chat:
  default_tone: Friendly
  typing_effect: false
  typing_step: 20
`

// TestLoad verifies that Load unmarshals nested sections and applies defaults
// for keys the file omits.
func TestLoad(t *testing.T) {
	tmp, err := os.CreateTemp(t.TempDir(), "cfg-*.yaml")
	if err != nil {
		t.Fatalf("temp file: %v", err)
	}
	if _, err := tmp.WriteString(sampleConfig); err != nil {
		t.Fatalf("write: %v", err)
	}
	tmp.Close()

	t.Setenv("CONFIG_PATH", tmp.Name())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.LLM.Model != "gpt-4o-mini" {
		t.Fatalf("unexpected model: %s", cfg.LLM.Model)
	}
	if !cfg.Auth.RequireToken {
		t.Fatal("require_token not parsed")
	}
	if cfg.Auth.TokenTTL != 2*time.Hour {
		t.Fatalf("unexpected token ttl: %s", cfg.Auth.TokenTTL)
	}
	if cfg.Chat.DefaultTone != "Friendly" {
		t.Fatalf("unexpected tone: %s", cfg.Chat.DefaultTone)
	}
	if cfg.Chat.TypingStep != 20 {
		t.Fatalf("unexpected typing step: %d", cfg.Chat.TypingStep)
	}
	// defaulted keys
	if cfg.Storage.Path != "mentor.db" {
		t.Fatalf("storage path default not applied: %s", cfg.Storage.Path)
	}
	if cfg.Chat.DefaultSessionName != "Chat 1" {
		t.Fatalf("session name default not applied: %s", cfg.Chat.DefaultSessionName)
	}
}
