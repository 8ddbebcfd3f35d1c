package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/preston-bernstein/mlb-streaks-service/internal/config"
	"github.com/preston-bernstein/mlb-streaks-service/internal/logging"
	"github.com/preston-bernstein/mlb-streaks-service/internal/metrics"
	"github.com/preston-bernstein/mlb-streaks-service/internal/report"
	"github.com/preston-bernstein/mlb-streaks-service/internal/server"
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Scan one season and write the streak reports",
		Long: `Fetch every active team's regular-season results, report streaks at or above the
threshold, and write them to the console, CSV and JSON report sinks.

Examples:
  streaks run --season 2024
  PROVIDER=fixture streaks run --threshold 4 -o /tmp/streaks`,
		Args: cobra.NoArgs,
		RunE: runSeason,
	}
	addSeasonFlags(cmd)
	return cmd
}

func runSeason(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger := newLogger(cfg, cmd.ErrOrStderr())

	recorder, flush := runMetrics(ctx, cfg)
	defer func() {
		if err := flush(context.WithoutCancel(ctx)); err != nil {
			logging.Warn(logger, "metrics flush failed", "error", err)
		}
	}()

	console := report.NewConsole(cmd.OutOrStdout())
	pipeline, err := server.NewPipeline(ctx, cfg, logger, recorder, console)
	if err != nil {
		return err
	}
	defer pipeline.Close()
	pipeline.Service.OnProgress(console.Progress)

	rep, err := pipeline.Service.Run(ctx)
	if err != nil && rep.Partial {
		return fmt.Errorf("season %d interrupted, %d streaks kept: %w", rep.Season, len(rep.Streaks), err)
	}
	return err
}

// runMetrics builds an exporter only when OTLP is configured; a one-shot run never serves a scrape endpoint.
func runMetrics(ctx context.Context, cfg config.Config) (*metrics.Recorder, func(context.Context) error) {
	noop := func(context.Context) error { return nil }
	rec, _, shutdown, err := metrics.Setup(ctx, cfg.Metrics.Telemetry(false))
	if err != nil || shutdown == nil {
		return metrics.NewRecorder(), noop
	}
	return rec, shutdown
}
