package config

import (
	"os"
	"time"

	"github.com/spf13/viper"
)

// Config holds the application configuration
type Config struct {
	Server  ServerConfig
	LLM     LLMConfig
	Auth    AuthConfig
	Storage StorageConfig
	Chat    ChatConfig
	Log     LogConfig
}

// ServerConfig holds the HTTP server configuration
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

// LLMConfig holds the completion service configuration
type LLMConfig struct {
	BaseURL string `mapstructure:"base_url"`
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
}

// AuthConfig holds token signing configuration.
// RequireToken gates whether /api/ask demands a bearer token; the observed
// deployment left the chat endpoint open, so the default is false.
type AuthConfig struct {
	JWTSecret    string        `mapstructure:"jwt_secret"`
	RequireToken bool          `mapstructure:"require_token"`
	TokenTTL     time.Duration `mapstructure:"token_ttl"`
}

// StorageConfig holds the SQLite database location
type StorageConfig struct {
	Path string `mapstructure:"path"`
}

// ChatConfig holds client-side exchange defaults
type ChatConfig struct {
	DefaultTone        string `mapstructure:"default_tone"`
	TypingEffect       bool   `mapstructure:"typing_effect"`
	TypingStep         int    `mapstructure:"typing_step"`
	DefaultSessionName string `mapstructure:"default_session_name"`
}

// LogConfig holds the logging configuration
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// Load loads the configuration from config.yaml, or from the file named by
// the CONFIG_PATH environment variable when set.
func Load() (*Config, error) {
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		viper.SetConfigFile(path)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
	}

	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", "5000")
	viper.SetDefault("auth.token_ttl", time.Hour)
	viper.SetDefault("chat.default_tone", "Default")
	viper.SetDefault("chat.typing_effect", true)
	viper.SetDefault("chat.typing_step", 12)
	viper.SetDefault("chat.default_session_name", "Chat 1")
	viper.SetDefault("storage.path", "mentor.db")
	viper.SetDefault("log.level", "info")

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}
