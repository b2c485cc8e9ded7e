// Package config loads application configuration from environment variables.
package config

import (
	"fmt"

	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	// Port is the HTTP listen port.
	// Environment variable: PORT
	Port string `koanf:"PORT"`

	// UseMemoryStore switches the mapping table to the in-memory store,
	// used for local development without Firestore credentials.
	// Environment variable: USE_MEMORY_STORE
	UseMemoryStore bool `koanf:"USE_MEMORY_STORE"`

	// ProjectID is the Google Cloud project hosting Firestore.
	// Environment variable: GOOGLE_CLOUD_PROJECT
	ProjectID string `koanf:"GOOGLE_CLOUD_PROJECT"`

	// AIParsingEnabled turns the Gemini statement extractor on.
	// Environment variable: AI_PARSING_ENABLED
	AIParsingEnabled bool `koanf:"AI_PARSING_ENABLED"`

	// AIModel overrides the default Gemini model name.
	// Environment variable: AI_MODEL
	AIModel string `koanf:"AI_MODEL"`

	// AIPromptBudget caps the number of statement characters sent to the
	// model in one request.
	// Environment variable: AI_PROMPT_BUDGET
	AIPromptBudget int `koanf:"AI_PROMPT_BUDGET"`

	// LogLevel sets the minimum log level (debug, info, warn, error).
	// Environment variable: LOG_LEVEL
	LogLevel string `koanf:"LOG_LEVEL"`
}

// Load reads configuration from the process environment and applies defaults.
func Load() (Config, error) {
	k := koanf.New(".")
	if err := k.Load(env.Provider("", ".", nil), nil); err != nil {
		return Config{}, fmt.Errorf("failed to load environment: %w", err)
	}

	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf", FlatPaths: true}); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	return cfg, nil
}
