package config

import (
	"testing"
	"time"

	"github.com/go-playground/assert/v2"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("SWEEP_INTERVAL", "")
	t.Setenv("SWEEP_PACE", "")
	t.Setenv("LLM_PROVIDER", "")
	t.Setenv("NEWS_PROVIDER", "")

	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "openrouter", cfg.LLMProvider)
	assert.Equal(t, "newsapi", cfg.NewsProvider)
	assert.Equal(t, time.Hour, cfg.SweepInterval)
	assert.Equal(t, 2*time.Second, cfg.SweepPace)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("LLM_PROVIDER", "Anthropic")
	t.Setenv("NEWS_PROVIDER", "FINNHUB")
	t.Setenv("SWEEP_INTERVAL", "30m")
	t.Setenv("SWEEP_PACE", "500ms")
	t.Setenv("OPENROUTER_TITLE", "Budget Buddy")

	cfg := Load()

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "anthropic", cfg.LLMProvider)
	assert.Equal(t, "finnhub", cfg.NewsProvider)
	assert.Equal(t, 30*time.Minute, cfg.SweepInterval)
	assert.Equal(t, 500*time.Millisecond, cfg.SweepPace)
	assert.Equal(t, "Budget Buddy", cfg.OpenRouter.Title)
}

func TestGetEnvAsDurationInvalid(t *testing.T) {
	t.Setenv("SWEEP_PACE", "soon")

	assert.Equal(t, 2*time.Second, getEnvAsDuration("SWEEP_PACE", 2*time.Second))
}
