package server

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/preston-bernstein/mlb-streaks-service/internal/app/runs"
	"github.com/preston-bernstein/mlb-streaks-service/internal/config"
	"github.com/preston-bernstein/mlb-streaks-service/internal/logging"
	"github.com/preston-bernstein/mlb-streaks-service/internal/metrics"
	"github.com/preston-bernstein/mlb-streaks-service/internal/report"
	"github.com/preston-bernstein/mlb-streaks-service/internal/store"
)

var openPostgres = func(ctx context.Context, dsn string) (postgresSink, error) {
	return store.OpenPostgres(ctx, dsn)
}

type postgresSink interface {
	runs.Sink
	EnsureSchema(ctx context.Context) error
	Close() error
}

// Pipeline is a fully wired season run plus the resources it holds open.
type Pipeline struct {
	Service *runs.Service
	closers []func()
}

// Close releases cache and database connections.
func (p *Pipeline) Close() {
	for i := len(p.closers) - 1; i >= 0; i-- {
		p.closers[i]()
	}
}

// NewPipeline wires provider, sinks and run service from cfg. lead sinks run before the
// configured file and database sinks.
func NewPipeline(ctx context.Context, cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder, lead ...runs.Sink) (*Pipeline, error) {
	window, err := cfg.Season.Window()
	if err != nil {
		return nil, fmt.Errorf("season window: %w", err)
	}

	provider, closeCache := newProviderFactory(logger, recorder).build(ctx, cfg)
	p := &Pipeline{closers: []func(){closeCache}}

	sinks := append([]runs.Sink{}, lead...)
	if cfg.Output.CSVEnabled {
		sinks = append(sinks, report.NewCSVWriter(cfg.Output.Dir))
	}
	sinks = append(sinks, report.NewWriter(cfg.Output.Dir, cfg.Output.Retention))

	if cfg.Storage.DatabaseURL != "" {
		pg, err := openPostgres(ctx, cfg.Storage.DatabaseURL)
		if err != nil {
			p.Close()
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		p.closers = append(p.closers, func() {
			if err := pg.Close(); err != nil {
				logging.Warn(logger, "postgres close failed", "error", err)
			}
		})
		if err := pg.EnsureSchema(ctx); err != nil {
			p.Close()
			return nil, fmt.Errorf("ensure schema: %w", err)
		}
		sinks = append(sinks, pg)
	}

	p.Service = runs.NewService(provider, runs.Config{
		Season:      cfg.Season.Season,
		Window:      window,
		Threshold:   cfg.Season.Threshold,
		Workers:     cfg.Season.Workers,
		TeamTimeout: cfg.Season.TeamTimeout,
	}, logger, recorder, sinks...)

	names := make([]string, 0, len(sinks))
	for _, s := range sinks {
		names = append(names, s.Name())
	}
	logging.Info(logger, "pipeline ready",
		logging.FieldProvider, cfg.Provider,
		logging.FieldSeason, cfg.Season.Season,
		"sinks", names,
	)
	return p, nil
}
