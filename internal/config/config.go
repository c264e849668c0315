package config

import (
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	DatabaseURL string
	RedisURL    string
	LogLevel    string
	FrontendURL string

	LLMProvider string
	OpenRouter  OpenRouterConfig
	Anthropic   AnthropicConfig

	MarketAPIKey  string
	MarketBaseURL string

	NewsProvider  string
	NewsAPIKey    string
	NewsBaseURL   string
	FinnhubAPIKey string

	SweepInterval time.Duration
	SweepPace     time.Duration
}

type OpenRouterConfig struct {
	APIKey  string
	BaseURL string
	Model   string
	Referer string
	Title   string
}

type AnthropicConfig struct {
	APIKey string
	Model  string
}

// Load reads .env when present, then the process environment.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file loaded, using environment", "error", err)
	}

	return &Config{
		Port:        getEnv("PORT", "8080"),
		DatabaseURL: getEnv("DATABASE_URL", ""),
		RedisURL:    getEnv("REDIS_URL", "redis://localhost:6379/0"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		FrontendURL: getEnv("FRONTEND_URL", ""),

		LLMProvider: strings.ToLower(getEnv("LLM_PROVIDER", "openrouter")),
		OpenRouter: OpenRouterConfig{
			APIKey:  getEnv("OPENROUTER_API_KEY", ""),
			BaseURL: getEnv("OPENROUTER_BASE_URL", ""),
			Model:   getEnv("OPENROUTER_MODEL", ""),
			Referer: getEnv("OPENROUTER_REFERER", ""),
			Title:   getEnv("OPENROUTER_TITLE", "Expense Tracker AI"),
		},
		Anthropic: AnthropicConfig{
			APIKey: getEnv("ANTHROPIC_API_KEY", ""),
			Model:  getEnv("ANTHROPIC_MODEL", ""),
		},

		MarketAPIKey:  getEnv("MARKET_API_KEY", ""),
		MarketBaseURL: getEnv("MARKET_BASE_URL", ""),

		NewsProvider:  strings.ToLower(getEnv("NEWS_PROVIDER", "newsapi")),
		NewsAPIKey:    getEnv("NEWS_API_KEY", ""),
		NewsBaseURL:   getEnv("NEWS_BASE_URL", ""),
		FinnhubAPIKey: getEnv("FINNHUB_API_KEY", ""),

		SweepInterval: getEnvAsDuration("SWEEP_INTERVAL", time.Hour),
		SweepPace:     getEnvAsDuration("SWEEP_PACE", 2*time.Second),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return fallback
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		slog.Warn("invalid duration, using default", "key", key, "value", valueStr, "default", fallback.String())
		return fallback
	}
	return value
}
