// Package main implements the streaks CLI: one-shot season runs, historical analysis, and serve mode.
package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/preston-bernstein/mlb-streaks-service/internal/config"
	"github.com/preston-bernstein/mlb-streaks-service/internal/logging"
)

const appVersion = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "streaks",
		Short: "Find MLB winning and losing streaks",
		Long: `streaks scans every active MLB team's regular season for runs of consecutive
wins or losses, ranks them, and writes console, CSV and JSON reports.

Configuration comes from the environment (SEASON, PROVIDER, OUTPUT_DIR, ...);
flags override the season, threshold and output directory.`,
		Version:      appVersion,
		SilenceUsage: true,
	}
	root.AddCommand(newRunCmd(), newAnalyzeCmd(), newServeCmd())
	return root
}

// loadConfig reads the environment and applies any flags the user set explicitly.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg := config.Load()
	flags := cmd.Flags()
	if flags.Changed("season") {
		season, err := flags.GetInt("season")
		if err != nil {
			return cfg, err
		}
		cfg.Season.Season = season
	}
	if flags.Changed("threshold") {
		threshold, err := flags.GetInt("threshold")
		if err != nil {
			return cfg, err
		}
		cfg.Season.Threshold = threshold
	}
	if flags.Changed("output") {
		dir, err := flags.GetString("output")
		if err != nil {
			return cfg, err
		}
		cfg.Output.Dir = dir
	}
	if flags.Changed("provider") {
		provider, err := flags.GetString("provider")
		if err != nil {
			return cfg, err
		}
		cfg.Provider = provider
	}
	return cfg, nil
}

func addSeasonFlags(cmd *cobra.Command) {
	cmd.Flags().Int("season", 0, "season year (default from SEASON or the current year)")
	cmd.Flags().Int("threshold", 0, "minimum streak length (default from STREAK_THRESHOLD or 5)")
	cmd.Flags().StringP("output", "o", "", "output directory (default from OUTPUT_DIR or data)")
	cmd.Flags().String("provider", "", "data provider: mlbstats or fixture")
}

func newLogger(cfg config.Config, out io.Writer) *slog.Logger {
	return logging.NewLogger(logging.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Service: cfg.Metrics.ServiceName,
		Version: appVersion,
		Output:  out,
	})
}
