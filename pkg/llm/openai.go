package llm

import (
	"context"
	"log/slog"
	"time"

	"fintrack/pkg/metrics"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const (
	defaultOpenRouterURL   = "https://openrouter.ai/api/v1/"
	defaultOpenRouterModel = "meta-llama/llama-3-8b-instruct"
	requestTimeout         = 60 * time.Second
)

type OpenAIConfig struct {
	APIKey  string
	BaseURL string
	Model   string
	Referer string
	Title   string
}

// OpenAIClient talks to any OpenAI-compatible chat completion endpoint,
// OpenRouter by default.
type OpenAIClient struct {
	client    *openai.Client
	model     openai.ChatModel
	modelName string
}

func NewOpenAIClient(cfg OpenAIConfig) *OpenAIClient {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultOpenRouterURL
	}
	if cfg.Model == "" {
		cfg.Model = defaultOpenRouterModel
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithBaseURL(cfg.BaseURL),
		option.WithRequestTimeout(requestTimeout),
		option.WithMaxRetries(0),
	}
	if cfg.Referer != "" {
		opts = append(opts, option.WithHeader("HTTP-Referer", cfg.Referer))
	}
	if cfg.Title != "" {
		opts = append(opts, option.WithHeader("X-Title", cfg.Title))
	}

	client := openai.NewClient(opts...)
	return &OpenAIClient{
		client:    &client,
		model:     openai.ChatModel(cfg.Model),
		modelName: cfg.Model,
	}
}

func (c *OpenAIClient) Name() string {
	return c.modelName
}

func (c *OpenAIClient) Complete(ctx context.Context, prompt string) (string, error) {
	slog.Info("requesting financial recommendation", "model", c.modelName)
	start := time.Now()

	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: c.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(prompt),
		},
		Temperature: openai.Float(temperature),
		MaxTokens:   openai.Int(maxTokens),
	})

	if err != nil {
		metrics.RecordModelCall("openai", "error", time.Since(start).Seconds())
		slog.Error("model request failed", "model", c.modelName, "error", err)
		return "", ErrAIRequestFailed
	}

	metrics.RecordModelCall("openai", "ok", time.Since(start).Seconds())

	if len(resp.Choices) == 0 {
		return "", nil
	}

	return resp.Choices[0].Message.Content, nil
}
