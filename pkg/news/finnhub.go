package news

import (
	"context"
	"net/http"
	"time"

	finnhub "github.com/Finnhub-Stock-API/finnhub-go/v2"
)

type FinnHubClient struct {
	client *finnhub.DefaultApiService
}

func NewFinnHubClient(apiKey string) *FinnHubClient {
	cfg := finnhub.NewConfiguration()
	cfg.AddDefaultHeader("X-Finnhub-Token", apiKey)
	cfg.HTTPClient = &http.Client{Timeout: 10 * time.Second}
	client := finnhub.NewAPIClient(cfg).DefaultApi
	return &FinnHubClient{client: client}
}

// Fetch returns up to limit general market headlines in provider order.
func (c *FinnHubClient) Fetch(ctx context.Context, limit int) ([]Article, error) {
	res, _, err := c.client.MarketNews(ctx).Category("general").Execute()
	if err != nil {
		return nil, err
	}

	if limit > 0 && len(res) > limit {
		res = res[:limit]
	}

	articles := make([]Article, 0, len(res))
	for _, item := range res {
		var a Article

		if item.Headline != nil {
			a.Title = *item.Headline
		}

		if item.Summary != nil {
			a.Description = *item.Summary
		}

		if item.Url != nil {
			a.URL = *item.Url
		}

		if item.Source != nil {
			a.Source = *item.Source
		}

		if item.Datetime != nil {
			a.PublishedAt = time.Unix(*item.Datetime, 0).UTC()
		}

		articles = append(articles, a)
	}

	return articles, nil
}

func (c *FinnHubClient) Name() string {
	return "FinnHub"
}
