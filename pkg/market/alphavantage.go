package market

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"fintrack/pkg/metrics"
)

const (
	defaultBaseURL = "https://www.alphavantage.co/query"
	requestTimeout = 15 * time.Second
)

type AlphaVantageClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

func NewAlphaVantageClient(apiKey, baseURL string) *AlphaVantageClient {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &AlphaVantageClient{
		apiKey:     apiKey,
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: requestTimeout},
	}
}

func (c *AlphaVantageClient) Name() string {
	return "AlphaVantage"
}

// FetchDaily requests the daily series of each symbol in turn. A failing
// symbol is recorded in the snapshot and never stops the others.
func (c *AlphaVantageClient) FetchDaily(ctx context.Context, symbols []string) Snapshot {
	snapshot := make(Snapshot, 0, len(symbols))

	for _, symbol := range symbols {
		data, err := c.fetchSymbol(ctx, symbol)
		if err != nil {
			slog.Warn("market fetch failed", "source", c.Name(), "symbol", symbol, "error", err)
			metrics.RecordFetchFailure("market")
			snapshot.Set(Quote{Symbol: symbol, Err: err.Error()})
			continue
		}
		snapshot.Set(Quote{Symbol: symbol, Data: data})
	}

	return snapshot
}

func (c *AlphaVantageClient) fetchSymbol(ctx context.Context, symbol string) (json.RawMessage, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	params := url.Values{}
	params.Set("function", "TIME_SERIES_DAILY_ADJUSTED")
	params.Set("symbol", symbol)
	params.Set("apikey", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("alphavantage request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("alphavantage fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("alphavantage fetch: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("alphavantage read: %w", err)
	}

	if !json.Valid(body) {
		return nil, errors.New("alphavantage decode: invalid JSON body")
	}

	return json.RawMessage(body), nil
}
