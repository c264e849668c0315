package di

import (
	"database/sql"
	"fmt"

	"fintrack/internal/advisor"
	"fintrack/internal/config"
	"fintrack/internal/repository"
	"fintrack/pkg/llm"
	"fintrack/pkg/market"
	"fintrack/pkg/news"
)

// ProvideCompleter picks the model backend named by LLM_PROVIDER.
func ProvideCompleter(cfg *config.Config) (llm.Completer, error) {
	switch cfg.LLMProvider {
	case "", "openrouter", "openai":
		return llm.NewOpenAIClient(llm.OpenAIConfig{
			APIKey:  cfg.OpenRouter.APIKey,
			BaseURL: cfg.OpenRouter.BaseURL,
			Model:   cfg.OpenRouter.Model,
			Referer: cfg.OpenRouter.Referer,
			Title:   cfg.OpenRouter.Title,
		}), nil
	case "anthropic":
		return llm.NewAnthropicClient(cfg.Anthropic.APIKey, cfg.Anthropic.Model), nil
	default:
		return nil, fmt.Errorf("unknown LLM_PROVIDER %q", cfg.LLMProvider)
	}
}

// ProvideNewsClient picks the headline source named by NEWS_PROVIDER.
func ProvideNewsClient(cfg *config.Config) (news.NewsClient, error) {
	switch cfg.NewsProvider {
	case "", "newsapi":
		return news.NewNewsAPIClient(cfg.NewsAPIKey, cfg.NewsBaseURL), nil
	case "finnhub":
		return news.NewFinnHubClient(cfg.FinnhubAPIKey), nil
	default:
		return nil, fmt.Errorf("unknown NEWS_PROVIDER %q", cfg.NewsProvider)
	}
}

func ProvideMarketClient(cfg *config.Config) *market.AlphaVantageClient {
	return market.NewAlphaVantageClient(cfg.MarketAPIKey, cfg.MarketBaseURL)
}

// ProvideAdvisor wires the recommendation pipeline on top of an open pool.
func ProvideAdvisor(cfg *config.Config, db *sql.DB) (*advisor.Advisor, error) {
	completer, err := ProvideCompleter(cfg)
	if err != nil {
		return nil, fmt.Errorf("model client: %w", err)
	}

	newsClient, err := ProvideNewsClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("news client: %w", err)
	}

	return advisor.New(
		ProvideMarketClient(cfg),
		newsClient,
		completer,
		repository.NewRecommendationRepository(db),
	), nil
}
