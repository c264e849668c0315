package db

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	AdviseQueueKey = "fintrack:queue:advise"
	DeadLetterKey  = "fintrack:queue:failed"
)

// ErrQueueEmpty is returned by Pop when the wait timed out with nothing queued.
var ErrQueueEmpty = errors.New("queue empty")

func ConnectRedis(ctx context.Context, redisURL string) (*redis.Client, error) {
	if redisURL == "" {
		return nil, errors.New("REDIS_URL is not set")
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		opt = &redis.Options{Addr: redisURL}
	}

	client := redis.NewClient(opt)

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, err
	}
	return client, nil
}

// Queue is a FIFO list of string payloads on top of a Redis list.
type Queue struct {
	client *redis.Client
	key    string
}

func NewQueue(client *redis.Client, key string) *Queue {
	return &Queue{client: client, key: key}
}

func (q *Queue) Push(ctx context.Context, data ...string) error {
	if len(data) == 0 {
		return nil
	}
	values := make([]interface{}, len(data))
	for i, d := range data {
		values[i] = d
	}
	return q.client.LPush(ctx, q.key, values...).Err()
}

func (q *Queue) Pop(ctx context.Context, timeout time.Duration) (string, error) {
	result, err := q.client.BRPop(ctx, timeout, q.key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrQueueEmpty
	}
	if err != nil {
		return "", err
	}
	return result[1], nil
}

func (q *Queue) Len(ctx context.Context) (int64, error) {
	return q.client.LLen(ctx, q.key).Result()
}
