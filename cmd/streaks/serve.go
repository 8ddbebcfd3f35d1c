package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/preston-bernstein/mlb-streaks-service/internal/server"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Refresh the season periodically and serve reports over HTTP",
		Long: `Re-run the configured season every REFRESH_INTERVAL and serve the latest report
on PORT (/health, /ready, /streaks, /streaks/{season}). Stops on SIGINT or SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			logger := newLogger(cfg, cmd.ErrOrStderr())

			ctx, stop := context.WithCancel(cmd.Context())
			defer stop()

			srv, err := server.New(ctx, cfg, logger)
			if err != nil {
				return err
			}
			srv.Run(ctx, stop)
			return nil
		},
	}
	addSeasonFlags(cmd)
	return cmd
}
