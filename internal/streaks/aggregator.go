package streaks

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/preston-bernstein/mlb-streaks-service/internal/domain/games"
	domainstreaks "github.com/preston-bernstein/mlb-streaks-service/internal/domain/streaks"
	"github.com/preston-bernstein/mlb-streaks-service/internal/domain/teams"
	"github.com/preston-bernstein/mlb-streaks-service/internal/logging"
	"github.com/preston-bernstein/mlb-streaks-service/internal/metrics"
	"github.com/preston-bernstein/mlb-streaks-service/internal/providers"
	"github.com/preston-bernstein/mlb-streaks-service/internal/timeutil"
)

const (
	defaultWorkers     = 4
	defaultTeamTimeout = 30 * time.Second
)

// TeamFailure records a team whose results could not be fetched.
type TeamFailure struct {
	Team teams.Team
	Err  error
}

func (f TeamFailure) Error() string {
	return fmt.Sprintf("%s (%s): %v", f.Team.Name, f.Team.ID, f.Err)
}

func (f TeamFailure) Unwrap() error {
	return f.Err
}

// ProgressFunc is called once per team as soon as it finishes, successfully or not.
// Calls are serialized.
type ProgressFunc func(team teams.Team, found []domainstreaks.Streak, err error)

// AggregatorConfig bounds an aggregation run.
type AggregatorConfig struct {
	Window      timeutil.Window
	Threshold   int
	Workers     int
	TeamTimeout time.Duration
}

// Aggregator scans every team of a roster concurrently and collects their streaks.
type Aggregator struct {
	provider    providers.ResultsProvider
	window      timeutil.Window
	threshold   int
	workers     int
	teamTimeout time.Duration
	logger      *slog.Logger
	metrics     *metrics.Recorder

	progressMu sync.Mutex
	progress   ProgressFunc
}

// NewAggregator builds an aggregator with defaults for unset limits.
func NewAggregator(provider providers.ResultsProvider, cfg AggregatorConfig, logger *slog.Logger, recorder *metrics.Recorder) *Aggregator {
	cfg.Threshold = NormalizeThreshold(cfg.Threshold)
	if cfg.Workers < 1 {
		cfg.Workers = defaultWorkers
	}
	if cfg.TeamTimeout <= 0 {
		cfg.TeamTimeout = defaultTeamTimeout
	}
	return &Aggregator{
		provider:    provider,
		window:      cfg.Window,
		threshold:   cfg.Threshold,
		workers:     cfg.Workers,
		teamTimeout: cfg.TeamTimeout,
		logger:      logger,
		metrics:     recorder,
	}
}

// OnProgress registers fn to receive per-team completions.
func (a *Aggregator) OnProgress(fn ProgressFunc) {
	a.progressMu.Lock()
	defer a.progressMu.Unlock()
	a.progress = fn
}

type teamOutcome struct {
	found []domainstreaks.Streak
	err   error
}

// Aggregate scans the roster and returns the collected streaks in roster order, then chronological
// order within a team, along with the teams that failed.
//
// Per-team errors never abort the run. When ctx ends, teams that already finished stay in the
// collection, the rest are reported as failures, and ctx's error is returned with the partial result.
func (a *Aggregator) Aggregate(ctx context.Context, roster []teams.Team) (*domainstreaks.Collection, []TeamFailure, error) {
	outcomes := make([]teamOutcome, len(roster))

	var g errgroup.Group
	g.SetLimit(a.workers)
	for i, team := range roster {
		if ctx.Err() != nil {
			outcomes[i] = teamOutcome{err: ctx.Err()}
			continue
		}
		g.Go(func() error {
			outcomes[i] = a.scanTeam(ctx, team)
			return nil
		})
	}
	_ = g.Wait()

	collection := domainstreaks.NewCollection()
	var failures []TeamFailure
	for i, team := range roster {
		if outcomes[i].err != nil {
			failures = append(failures, TeamFailure{Team: team, Err: outcomes[i].err})
			continue
		}
		collection.Append(outcomes[i].found...)
	}

	logging.Info(a.logger, "aggregation finished",
		logging.FieldCount, collection.Len(),
		"teams", len(roster),
		"failures", len(failures),
	)
	return collection, failures, ctx.Err()
}

func (a *Aggregator) scanTeam(ctx context.Context, team teams.Team) teamOutcome {
	if err := ctx.Err(); err != nil {
		return teamOutcome{err: err}
	}

	start := time.Now()
	results, err := a.fetch(ctx, team)
	if err != nil {
		a.metrics.RecordTeamScan(metrics.OutcomeFailed, time.Since(start))
		logging.Warn(a.logger, "team fetch failed",
			logging.FieldTeam, team.Name,
			logging.FieldTeamID, team.ID,
			"error", err,
		)
		a.report(team, nil, err)
		return teamOutcome{err: err}
	}

	seq := BuildSequence(results)
	found := Scan(team, seq, a.threshold)

	outcome := metrics.OutcomeOK
	if seq.Len() == 0 {
		outcome = metrics.OutcomeEmpty
	}
	a.metrics.RecordTeamScan(outcome, time.Since(start))
	for _, s := range found {
		a.metrics.RecordStreaks(string(s.Type), 1)
	}
	logging.Debug(a.logger, "team scanned",
		logging.FieldTeam, team.Name,
		logging.FieldCount, len(found),
		"games", seq.Len(),
		logging.FieldDurationMS, time.Since(start).Milliseconds(),
	)
	a.report(team, found, nil)
	return teamOutcome{found: found}
}

// fetch bounds a single team's fetch by the per-team timeout even if the provider ignores ctx.
func (a *Aggregator) fetch(ctx context.Context, team teams.Team) ([]games.Result, error) {
	if a.provider == nil {
		return nil, providers.ErrProviderUnavailable
	}
	teamCtx, cancel := context.WithTimeout(ctx, a.teamTimeout)
	defer cancel()

	type fetched struct {
		results []games.Result
		err     error
	}
	done := make(chan fetched, 1)
	go func() {
		results, err := a.provider.FetchResults(teamCtx, team.ID, a.window)
		done <- fetched{results: results, err: err}
	}()

	select {
	case f := <-done:
		if f.err != nil {
			return nil, fmt.Errorf("fetch results: %w", f.err)
		}
		return f.results, nil
	case <-teamCtx.Done():
		return nil, fmt.Errorf("fetch results: %w", teamCtx.Err())
	}
}

func (a *Aggregator) report(team teams.Team, found []domainstreaks.Streak, err error) {
	a.progressMu.Lock()
	defer a.progressMu.Unlock()
	if a.progress != nil {
		a.progress(team, found, err)
	}
}
