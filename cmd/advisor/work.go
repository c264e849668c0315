package main

import (
	"fintrack/db"
	"fintrack/internal/config"
	"fintrack/internal/di"
	"fintrack/internal/repository"
	"fintrack/internal/worker"

	"github.com/spf13/cobra"
)

func workCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "work",
		Short: "Process queued users one at a time",
		Args:  cobra.NoArgs,
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

			adv, err := di.ProvideAdvisor(cfg, pool)
			if err != nil {
				return err
			}

			w := worker.New(
				db.NewQueue(rdb, db.AdviseQueueKey),
				db.NewQueue(rdb, db.DeadLetterKey),
				repository.NewUserRepository(pool),
				adv,
				cfg.SweepPace,
			)
			return w.Run(ctx)
		},
	}

	cmd.Flags().DurationVar(&cfg.SweepPace, "pace", cfg.SweepPace, "Minimum delay between two users")
	return cmd
}
