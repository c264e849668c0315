package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"fintrack/db"
	"fintrack/internal/advisor"
	"fintrack/internal/model"

	"golang.org/x/time/rate"
)

const popTimeout = 5 * time.Second

type Queue interface {
	Push(ctx context.Context, data ...string) error
	Pop(ctx context.Context, timeout time.Duration) (string, error)
}

type UserStore interface {
	GetProfile(ctx context.Context, id int64) (*model.UserProfile, error)
	ListUserIDs(ctx context.Context) ([]int64, error)
}

type Generator interface {
	Generate(ctx context.Context, user model.UserProfile) (*advisor.Result, error)
}

// Enqueue pushes every user id onto the queue and returns how many were queued.
func Enqueue(ctx context.Context, users UserStore, queue Queue) (int, error) {
	ids, err := users.ListUserIDs(ctx)
	if err != nil {
		return 0, fmt.Errorf("list users: %w", err)
	}

	payload := make([]string, len(ids))
	for i, id := range ids {
		payload[i] = strconv.FormatInt(id, 10)
	}

	if err := queue.Push(ctx, payload...); err != nil {
		return 0, fmt.Errorf("enqueue users: %w", err)
	}
	return len(ids), nil
}

type Worker struct {
	queue      Queue
	deadLetter Queue
	users      UserStore
	generator  Generator
	limiter    *rate.Limiter
}

// New builds a worker that runs at most one recommendation per pace.
func New(queue, deadLetter Queue, users UserStore, generator Generator, pace time.Duration) *Worker {
	limit := rate.Inf
	if pace > 0 {
		limit = rate.Every(pace)
	}
	return &Worker{
		queue:      queue,
		deadLetter: deadLetter,
		users:      users,
		generator:  generator,
		limiter:    rate.NewLimiter(limit, 1),
	}
}

// Run drains the queue until ctx is cancelled. A failing user is logged,
// parked on the dead-letter queue and skipped.
func (w *Worker) Run(ctx context.Context) error {
	slog.Info("worker started")
	for {
		err := w.ProcessOne(ctx)
		switch {
		case err == nil, errors.Is(err, db.ErrQueueEmpty):
		case ctx.Err() != nil:
			slog.Info("worker stopped")
			return nil
		default:
			slog.Error("worker queue error", "error", err)
			select {
			case <-ctx.Done():
			case <-time.After(time.Second):
			}
		}
		if ctx.Err() != nil {
			slog.Info("worker stopped")
			return nil
		}
	}
}

// ProcessOne handles a single queued user id. Only queue errors are returned.
func (w *Worker) ProcessOne(ctx context.Context) error {
	payload, err := w.queue.Pop(ctx, popTimeout)
	if err != nil {
		return err
	}

	if err := w.limiter.Wait(ctx); err != nil {
		return err
	}

	userID, err := strconv.ParseInt(payload, 10, 64)
	if err != nil {
		slog.Warn("dropping malformed queue entry", "payload", payload, "error", err)
		return nil
	}

	if err := w.process(ctx, userID); err != nil {
		slog.Error("recommendation failed for user", "user_id", userID, "error", err)
		if dlErr := w.deadLetter.Push(ctx, payload); dlErr != nil {
			slog.Error("error recording failed user", "user_id", userID, "error", dlErr)
		}
	}
	return nil
}

func (w *Worker) process(ctx context.Context, userID int64) error {
	user, err := w.users.GetProfile(ctx, userID)
	if err != nil {
		return fmt.Errorf("load profile: %w", err)
	}
	if user == nil {
		slog.Warn("queued user no longer exists", "user_id", userID)
		return nil
	}

	res, err := w.generator.Generate(ctx, *user)
	if err != nil {
		return err
	}

	slog.Info("recommendation generated", "user_id", userID, "recommendation_id", res.ID)
	return nil
}
