package llm

import (
	"context"
	"errors"
)

// ErrAIRequestFailed hides provider failure detail from callers. The detail is
// logged where the failure happens.
var ErrAIRequestFailed = errors.New("AI request failed. Check model name or API key.")

const (
	temperature = 0.3
	maxTokens   = 700
)

const systemPrompt = "You are a financial advisory AI. Always respond strictly in JSON format with clear, structured data."

// Completer sends one prompt to a remote model and returns its raw reply text.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
	Name() string
}
