package runs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/preston-bernstein/mlb-streaks-service/internal/logging"
	"github.com/preston-bernstein/mlb-streaks-service/internal/metrics"
	"github.com/preston-bernstein/mlb-streaks-service/internal/providers"
	"github.com/preston-bernstein/mlb-streaks-service/internal/report"
	"github.com/preston-bernstein/mlb-streaks-service/internal/streaks"
	"github.com/preston-bernstein/mlb-streaks-service/internal/timeutil"
)

// ErrEmptyRoster is returned when the roster holds no active, well-formed teams.
var ErrEmptyRoster = errors.New("no active teams in roster")

// Sink receives the finished report of a run.
type Sink interface {
	Name() string
	Write(ctx context.Context, rep report.Report) error
}

// Config describes one season run.
type Config struct {
	Season      int
	Window      timeutil.Window
	Threshold   int
	Workers     int
	TeamTimeout time.Duration
}

// Service runs a season end to end: roster, per-team scans, ranking, then every sink.
type Service struct {
	provider providers.DataProvider
	cfg      Config
	sinks    []Sink
	progress streaks.ProgressFunc
	logger   *slog.Logger
	metrics  *metrics.Recorder
	now      func() time.Time
}

// NewService constructs a Service that writes to sinks in order.
func NewService(provider providers.DataProvider, cfg Config, logger *slog.Logger, recorder *metrics.Recorder, sinks ...Sink) *Service {
	return &Service{
		provider: provider,
		cfg:      cfg,
		sinks:    sinks,
		logger:   logger,
		metrics:  recorder,
		now:      time.Now,
	}
}

// OnProgress registers a per-team completion callback for subsequent runs.
func (s *Service) OnProgress(fn streaks.ProgressFunc) {
	s.progress = fn
}

// Season returns the configured season.
func (s *Service) Season() int {
	return s.cfg.Season
}

// Run executes one season. A roster failure aborts the run with no report. Otherwise the
// report is always produced; a cancelled run yields a partial report alongside ctx's error.
func (s *Service) Run(ctx context.Context) (rep report.Report, err error) {
	start := s.now()
	defer func() {
		s.metrics.RecordRun(s.cfg.Season, s.now().Sub(start), err)
	}()

	if s.provider == nil {
		return report.Report{}, providers.ErrProviderUnavailable
	}
	entries, err := s.provider.FetchRoster(ctx, s.cfg.Season)
	if err != nil {
		logging.Error(s.logger, "roster fetch failed", err, logging.FieldSeason, s.cfg.Season)
		return report.Report{}, fmt.Errorf("fetch roster: %w", err)
	}
	roster := streaks.ActiveRoster(entries, s.logger)
	if len(roster) == 0 {
		return report.Report{}, ErrEmptyRoster
	}
	logging.Info(s.logger, "season run started",
		logging.FieldSeason, s.cfg.Season,
		"teams", len(roster),
		"window", s.cfg.Window.String(),
		logging.FieldThreshold, s.cfg.Threshold,
	)

	agg := streaks.NewAggregator(s.provider, streaks.AggregatorConfig{
		Window:      s.cfg.Window,
		Threshold:   s.cfg.Threshold,
		Workers:     s.cfg.Workers,
		TeamTimeout: s.cfg.TeamTimeout,
	}, s.logger, s.metrics)
	if s.progress != nil {
		agg.OnProgress(s.progress)
	}
	collection, teamFailures, aggErr := agg.Aggregate(ctx, roster)

	failures := make([]report.Failure, 0, len(teamFailures))
	for _, f := range teamFailures {
		failures = append(failures, report.Failure{TeamID: f.Team.ID, Team: f.Team.Name, Error: f.Err.Error()})
	}
	rep = report.New(s.cfg.Season, s.cfg.Window, streaks.NormalizeThreshold(s.cfg.Threshold), streaks.Rank(collection), failures, s.now())
	rep.Teams = len(roster)
	rep.Partial = aggErr != nil

	runLogger := s.logger
	if runLogger != nil {
		runLogger = runLogger.With(logging.FieldRunID, rep.RunID)
	}
	// Sinks still get the partial report after cancellation.
	sinkErr := s.writeSinks(context.WithoutCancel(ctx), rep, runLogger)

	logging.Info(runLogger, "season run finished",
		logging.FieldSeason, s.cfg.Season,
		logging.FieldCount, len(rep.Streaks),
		"failures", len(rep.Failures),
		"partial", rep.Partial,
		logging.FieldDurationMS, s.now().Sub(start).Milliseconds(),
	)
	return rep, errors.Join(aggErr, sinkErr)
}

func (s *Service) writeSinks(ctx context.Context, rep report.Report, logger *slog.Logger) error {
	var errs []error
	for _, sink := range s.sinks {
		if err := sink.Write(ctx, rep); err != nil {
			logging.Error(logger, "sink write failed", err, "sink", sink.Name())
			errs = append(errs, fmt.Errorf("%s sink: %w", sink.Name(), err))
		}
	}
	return errors.Join(errs...)
}
