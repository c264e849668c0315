package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/go-playground/assert/v2"
)

func TestAnthropicComplete(t *testing.T) {
	var got struct {
		Model     string `json:"model"`
		MaxTokens int    `json:"max_tokens"`
		System    []struct {
			Text string `json:"text"`
		} `json:"system"`
		Temperature float64 `json:"temperature"`
	}
	var path string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		json.NewDecoder(r.Body).Decode(&got)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"id": "msg_1",
			"type": "message",
			"role": "assistant",
			"model": "claude-haiku-4-5",
			"content": [{"type": "text", "text": "{\"notes\": \"ok\"}"}],
			"stop_reason": "end_turn",
			"stop_sequence": null,
			"usage": {"input_tokens": 10, "output_tokens": 5}
		}`))
	}))
	defer srv.Close()

	client := NewAnthropicClient("test-key", "", option.WithBaseURL(srv.URL+"/"))

	content, err := client.Complete(context.Background(), "user prompt")

	assert.Equal(t, nil, err)
	assert.Equal(t, `{"notes": "ok"}`, content)
	assert.Equal(t, "/v1/messages", path)
	assert.Equal(t, defaultAnthropicModel, got.Model)
	assert.Equal(t, 700, got.MaxTokens)
	assert.Equal(t, 0.3, got.Temperature)
	assert.Equal(t, 1, len(got.System))
	assert.Equal(t, systemPrompt, got.System[0].Text)
}

func TestAnthropicCompleteFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"type": "error", "error": {"type": "authentication_error", "message": "invalid x-api-key"}}`))
	}))
	defer srv.Close()

	client := NewAnthropicClient("bad-key", "", option.WithBaseURL(srv.URL+"/"))

	content, err := client.Complete(context.Background(), "p")

	assert.Equal(t, ErrAIRequestFailed, err)
	assert.Equal(t, "", content)
}
