package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"fintrack/internal/config"
	"fintrack/internal/di"
	"fintrack/internal/repository"

	"github.com/spf13/cobra"
)

func runCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "run <userID>",
		Short: "Generate one recommendation for a user and print it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid user id %q", args[0])
			}

			ctx := cmd.Context()

			pool, err := openDB(ctx, cfg)
			if err != nil {
				return err
			}
			defer pool.Close()

			user, err := repository.NewUserRepository(pool).GetProfile(ctx, userID)
			if err != nil {
				return fmt.Errorf("load user %d: %w", userID, err)
			}
			if user == nil {
				return fmt.Errorf("user %d not found", userID)
			}

			adv, err := di.ProvideAdvisor(cfg, pool)
			if err != nil {
				return err
			}

			res, err := adv.Generate(ctx, *user)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(res)
		},
	}
}
