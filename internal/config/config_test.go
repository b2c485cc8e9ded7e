package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("LOG_LEVEL", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.UseMemoryStore)
	assert.False(t, cfg.AIParsingEnabled)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("USE_MEMORY_STORE", "true")
	t.Setenv("GOOGLE_CLOUD_PROJECT", "spendlens-dev")
	t.Setenv("AI_PARSING_ENABLED", "true")
	t.Setenv("AI_MODEL", "gemini-2.5-flash")
	t.Setenv("AI_PROMPT_BUDGET", "9000")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.True(t, cfg.UseMemoryStore)
	assert.Equal(t, "spendlens-dev", cfg.ProjectID)
	assert.True(t, cfg.AIParsingEnabled)
	assert.Equal(t, "gemini-2.5-flash", cfg.AIModel)
	assert.Equal(t, 9000, cfg.AIPromptBudget)
	assert.Equal(t, "debug", cfg.LogLevel)
}
