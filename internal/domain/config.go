// Package domain defines core business entities and value objects for Desktop Commander.
//
// The domain layer is independent of infrastructure concerns and represents pure
// business logic and data structures.
package domain

import (
	"os"
	"strconv"
	"time"
)

// Config mirrors ~/.deskcommander/config.json.
type Config struct {
	OllamaURL      string `json:"ollama_url"`
	OllamaModel    string `json:"ollama_model"`
	TimeoutSeconds int    `json:"command_timeout"`
}

// DefaultConfig builds a config from environment variables with built-in fallbacks.
func DefaultConfig() Config {
	cfg := Config{
		OllamaURL:      DefaultOllamaURL,
		OllamaModel:    DefaultOllamaModel,
		TimeoutSeconds: int(DefaultCommandTimeout / time.Second),
	}
	if url := os.Getenv("OLLAMA_URL"); url != "" {
		cfg.OllamaURL = url
	}
	if model := os.Getenv("OLLAMA_MODEL"); model != "" {
		cfg.OllamaModel = model
	}
	if raw := os.Getenv("COMMAND_TIMEOUT"); raw != "" {
		if seconds, err := strconv.Atoi(raw); err == nil && seconds > 0 {
			cfg.TimeoutSeconds = seconds
		}
	}
	return cfg
}

// Timeout returns the command timeout as a duration.
func (c Config) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return DefaultCommandTimeout
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Hydrate fills zero-valued fields with defaults.
func (c Config) Hydrate() Config {
	if c.OllamaURL == "" {
		c.OllamaURL = DefaultOllamaURL
	}
	if c.OllamaModel == "" {
		c.OllamaModel = DefaultOllamaModel
	}
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = int(DefaultCommandTimeout / time.Second)
	}
	return c
}
