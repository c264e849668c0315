package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fintrack/db"
	"fintrack/internal/config"
	"fintrack/internal/logger"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
)

const connectTimeout = 10 * time.Second

func main() {
	cfg := config.Load()
	logger.Init(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := &cobra.Command{
		Use:           "advisor",
		Short:         "Generate AI financial recommendations",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(runCmd(cfg), sweepCmd(cfg), workCmd(cfg))

	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func openDB(ctx context.Context, cfg *config.Config) (*sql.DB, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	pool, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect to DB: %w", err)
	}
	return pool, nil
}

func openRedis(ctx context.Context, cfg *config.Config) (*redis.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := db.ConnectRedis(ctx, cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("connect to Redis: %w", err)
	}
	return client, nil
}
