package refresher

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/preston-bernstein/mlb-streaks-service/internal/logging"
	"github.com/preston-bernstein/mlb-streaks-service/internal/metrics"
	"github.com/preston-bernstein/mlb-streaks-service/internal/report"
)

// DefaultInterval applies when no refresh interval is configured.
const DefaultInterval = 6 * time.Hour

// Runner executes one season run.
type Runner interface {
	Run(ctx context.Context) (report.Report, error)
}

// Refresher re-runs the season on an interval so serve mode always has a recent report.
type Refresher struct {
	runner   Runner
	logger   *slog.Logger
	metrics  *metrics.Recorder
	interval time.Duration
	now      func() time.Time

	ticker   *time.Ticker
	done     chan struct{}
	stopOnce sync.Once
	startMu  sync.Mutex
	started  bool

	statusMu sync.RWMutex
	status   Status
}

// Status describes the recent health of the refresh loop.
type Status struct {
	ConsecutiveFailures int
	LastError           string
	LastAttempt         time.Time
	LastSuccess         time.Time
	LastRunID           string
}

// IsReady reports whether a run has succeeded and the loop is not failing repeatedly.
func (s Status) IsReady() bool {
	if s.LastSuccess.IsZero() {
		return false
	}
	return s.ConsecutiveFailures < 3
}

// New constructs a Refresher with sane defaults.
func New(runner Runner, logger *slog.Logger, recorder *metrics.Recorder, interval time.Duration) *Refresher {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Refresher{
		runner:   runner,
		logger:   logger,
		metrics:  recorder,
		interval: interval,
		now:      time.Now,
		done:     make(chan struct{}),
	}
}

// Start runs immediately, then on every tick until the context is cancelled or Stop is called.
func (r *Refresher) Start(ctx context.Context) {
	r.startMu.Lock()
	if r.started {
		r.startMu.Unlock()
		return
	}
	r.started = true
	r.startMu.Unlock()

	r.ticker = time.NewTicker(r.interval)

	go func() {
		logging.Info(r.logger, "refresher started", slog.Int64(logging.FieldDurationMS, r.interval.Milliseconds()))
		r.refreshOnce(ctx)

		for {
			select {
			case <-ctx.Done():
				r.stopTicker()
				logging.Info(r.logger, "refresher stopped")
				return
			case <-r.done:
				r.stopTicker()
				logging.Info(r.logger, "refresher stopped")
				return
			case <-r.ticker.C:
				r.refreshOnce(ctx)
			}
		}
	}()
}

// Stop halts the refresh loop.
func (r *Refresher) Stop(ctx context.Context) error {
	_ = ctx
	r.stopOnce.Do(func() {
		close(r.done)
		r.stopTicker()
	})
	return nil
}

func (r *Refresher) refreshOnce(ctx context.Context) {
	start := r.now()
	r.recordAttempt(start)

	rep, err := r.runner.Run(ctx)
	r.metrics.RecordRefreshCycle(r.now().Sub(start), err)
	if err != nil {
		logging.Error(r.logger, "season refresh failed", err,
			logging.FieldDurationMS, r.now().Sub(start).Milliseconds(),
		)
		r.recordFailure(err, start)
		return
	}

	r.recordSuccess(start, rep.RunID)
	logging.Info(r.logger, "season refreshed",
		logging.FieldSeason, rep.Season,
		logging.FieldRunID, rep.RunID,
		logging.FieldCount, len(rep.Streaks),
		logging.FieldDurationMS, r.now().Sub(start).Milliseconds(),
	)
}

func (r *Refresher) stopTicker() {
	if r.ticker != nil {
		r.ticker.Stop()
	}
}

func (r *Refresher) recordAttempt(at time.Time) {
	r.statusMu.Lock()
	defer r.statusMu.Unlock()
	r.status.LastAttempt = at
}

func (r *Refresher) recordSuccess(at time.Time, runID string) {
	r.statusMu.Lock()
	defer r.statusMu.Unlock()
	r.status.ConsecutiveFailures = 0
	r.status.LastError = ""
	r.status.LastSuccess = at
	r.status.LastRunID = runID
}

func (r *Refresher) recordFailure(err error, at time.Time) {
	r.statusMu.Lock()
	defer r.statusMu.Unlock()
	r.status.ConsecutiveFailures++
	if err != nil {
		r.status.LastError = err.Error()
	}
	r.status.LastAttempt = at
}

// Status returns a snapshot of the refresher's recent health.
func (r *Refresher) Status() Status {
	r.statusMu.RLock()
	defer r.statusMu.RUnlock()
	return r.status
}
