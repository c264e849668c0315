package main

import (
	"log/slog"
	"time"

	"fintrack/db"
	"fintrack/internal/config"
	"fintrack/internal/repository"
	"fintrack/internal/worker"

	"github.com/spf13/cobra"
)

func sweepCmd(cfg *config.Config) *cobra.Command {
	var every time.Duration

	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Queue every user for a recommendation run",
		Long: `Push every user id onto the advise queue, then repeat on the
--every interval (SWEEP_INTERVAL) until interrupted. --every 0 sweeps once.

Example:
  advisor sweep
  advisor sweep --every 0`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			pool, err := openDB(ctx, cfg)
			if err != nil {
				return err
			}
			defer pool.Close()

			rdb, err := openRedis(ctx, cfg)
			if err != nil {
				return err
			}
			defer rdb.Close()

			users := repository.NewUserRepository(pool)
			queue := db.NewQueue(rdb, db.AdviseQueueKey)

			sweep := func() error {
				n, err := worker.Enqueue(ctx, users, queue)
				if err != nil {
					return err
				}
				slog.Info("sweep queued users", "count", n)
				return nil
			}

			if err := sweep(); err != nil {
				return err
			}
			if every <= 0 {
				return nil
			}

			ticker := time.NewTicker(every)
			defer ticker.Stop()

			for {
				select {
				case <-ctx.Done():
					slog.Info("sweep stopped")
					return nil
				case <-ticker.C:
					if err := sweep(); err != nil {
						slog.Error("sweep failed", "error", err)
					}
				}
			}
		},
	}

	cmd.Flags().DurationVar(&every, "every", cfg.SweepInterval, "Repeat the sweep on this interval; 0 runs once")
	return cmd
}
