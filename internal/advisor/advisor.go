package advisor

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"fintrack/internal/model"
	"fintrack/pkg/llm"
	"fintrack/pkg/market"
	"fintrack/pkg/metrics"
	"fintrack/pkg/news"

	"github.com/google/uuid"
)

const (
	maxWatchlist = 6
	newsLimit    = 5
	recDateFmt   = "2006-01-02"
)

var defaultWatchlist = []string{"RELIANCE.NS", "TCS.NS", "INFY.NS"}

type MarketFetcher interface {
	FetchDaily(ctx context.Context, symbols []string) market.Snapshot
}

type RecommendationStore interface {
	Save(ctx context.Context, rec *model.Recommendation) error
}

// Result is what a run hands back to its caller.
type Result struct {
	ID     int64 `json:"id"`
	Parsed any   `json:"parsed"`
}

type Advisor struct {
	market MarketFetcher
	news   news.NewsClient
	model  llm.Completer
	store  RecommendationStore
	now    func() time.Time
}

func New(marketFetcher MarketFetcher, newsClient news.NewsClient, completer llm.Completer, store RecommendationStore) *Advisor {
	return &Advisor{
		market: marketFetcher,
		news:   newsClient,
		model:  completer,
		store:  store,
		now:    time.Now,
	}
}

// Generate runs the pipeline for one user and stores exactly one
// recommendation row when it succeeds. Nothing is written on failure.
func (a *Advisor) Generate(ctx context.Context, user model.UserProfile) (*Result, error) {
	runID := uuid.NewString()
	log := slog.With("run_id", runID, "user_id", user.ID)

	watchlist := resolveWatchlist(user.Watchlist)
	log.Info("generating recommendation", "symbols", watchlist)

	snapshot, articles := a.fetch(ctx, log, watchlist)

	prompt := BuildPrompt(user, snapshot, articles)

	content, err := a.model.Complete(ctx, prompt)
	if err != nil {
		metrics.RecordRun("error")
		log.Error("recommendation generation failed", "model", a.model.Name(), "error", err)
		return nil, err
	}

	parsed := llm.ParseDraft(content)

	rec := &model.Recommendation{
		UserID:     user.ID,
		RecDate:    a.now().UTC().Format(recDateFmt),
		Summary:    summarize(parsed, content),
		Details:    parsed,
		Source:     auditSource{MarketData: snapshot, News: articles},
		Confidence: confidence(parsed),
	}

	if err := a.store.Save(ctx, rec); err != nil {
		metrics.RecordRun("error")
		log.Error("error saving recommendation", "error", err)
		return nil, fmt.Errorf("save recommendation: %w", err)
	}

	metrics.RecordRun("ok")
	log.Info("saved recommendation", "user", user.Label(), "recommendation_id", rec.ID)

	return &Result{ID: rec.ID, Parsed: parsed}, nil
}

type auditSource struct {
	MarketData market.Snapshot `json:"marketData"`
	News       []news.Article  `json:"news"`
}

// fetch runs the market batch and the news request side by side.
func (a *Advisor) fetch(ctx context.Context, log *slog.Logger, symbols []string) (market.Snapshot, []news.Article) {
	var (
		wg       sync.WaitGroup
		snapshot market.Snapshot
		articles []news.Article
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		snapshot = a.market.FetchDaily(ctx, symbols)
	}()
	go func() {
		defer wg.Done()
		articles = a.fetchNews(ctx, log)
	}()
	wg.Wait()

	if snapshot == nil {
		snapshot = market.Snapshot{}
	}
	return snapshot, articles
}

func (a *Advisor) fetchNews(ctx context.Context, log *slog.Logger) []news.Article {
	if a.news == nil {
		return []news.Article{}
	}

	articles, err := a.news.Fetch(ctx, newsLimit)
	if err != nil {
		log.Warn("news fetch failed", "source", a.news.Name(), "error", err)
		metrics.RecordFetchFailure("news")
		return []news.Article{}
	}
	if articles == nil {
		return []news.Article{}
	}
	if len(articles) > newsLimit {
		articles = articles[:newsLimit]
	}
	return articles
}

func resolveWatchlist(watchlist []string) []string {
	if len(watchlist) == 0 {
		return append([]string(nil), defaultWatchlist...)
	}
	if len(watchlist) > maxWatchlist {
		watchlist = watchlist[:maxWatchlist]
	}
	return append([]string(nil), watchlist...)
}
