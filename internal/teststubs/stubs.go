package teststubs

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/preston-bernstein/mlb-streaks-service/internal/domain/games"
	"github.com/preston-bernstein/mlb-streaks-service/internal/domain/teams"
	"github.com/preston-bernstein/mlb-streaks-service/internal/report"
	"github.com/preston-bernstein/mlb-streaks-service/internal/timeutil"
)

// StubProvider is a test double for providers.DataProvider.
// Results and ResultErrs are keyed by team id. Delays hold a team's fetch until the
// delay passes or the context ends.
type StubProvider struct {
	Roster     []teams.RosterEntry
	RosterErr  error
	Results    map[string][]games.Result
	ResultErrs map[string]error
	Delays     map[string]time.Duration

	RosterCalls atomic.Int32
	ResultCalls atomic.Int32
	Notify      chan struct{}

	mu      sync.Mutex
	fetched []string
}

// FetchRoster returns the configured roster and error while tracking calls.
func (s *StubProvider) FetchRoster(ctx context.Context, season int) ([]teams.RosterEntry, error) {
	_ = ctx
	_ = season
	s.notify()
	s.RosterCalls.Add(1)
	return s.Roster, s.RosterErr
}

// FetchResults returns the configured results for teamID.
func (s *StubProvider) FetchResults(ctx context.Context, teamID string, window timeutil.Window) ([]games.Result, error) {
	_ = window
	s.notify()
	s.ResultCalls.Add(1)
	s.mu.Lock()
	s.fetched = append(s.fetched, teamID)
	s.mu.Unlock()

	if d := s.Delays[teamID]; d > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(d):
		}
	}
	if err := s.ResultErrs[teamID]; err != nil {
		return nil, err
	}
	return s.Results[teamID], nil
}

// Fetched lists the team ids requested so far, in call order.
func (s *StubProvider) Fetched() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.fetched))
	copy(out, s.fetched)
	return out
}

func (s *StubProvider) notify() {
	if s.Notify != nil {
		select {
		case <-s.Notify:
		default:
			close(s.Notify)
		}
	}
}

// StubSink is a test double for run sinks; it records every report written.
type StubSink struct {
	SinkName string
	Err      error

	mu      sync.Mutex
	Written []report.Report
}

// Name identifies the sink in logs.
func (s *StubSink) Name() string {
	if s.SinkName == "" {
		return "stub"
	}
	return s.SinkName
}

// Write records the report, or returns Err when set.
func (s *StubSink) Write(ctx context.Context, rep report.Report) error {
	_ = ctx
	if s.Err != nil {
		return s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Written = append(s.Written, rep)
	return nil
}

// Reports returns a copy of the recorded reports.
func (s *StubSink) Reports() []report.Report {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]report.Report, len(s.Written))
	copy(out, s.Written)
	return out
}

// StubRunner is a test double for a season runner.
type StubRunner struct {
	mu     sync.Mutex
	Rep    report.Report
	Err    error
	Calls  atomic.Int32
	Notify chan struct{}
}

// Run returns the configured report and error.
func (s *StubRunner) Run(ctx context.Context) (report.Report, error) {
	_ = ctx
	s.Calls.Add(1)
	if s.Notify != nil {
		select {
		case <-s.Notify:
		default:
			close(s.Notify)
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Rep, s.Err
}

// SetErr swaps the error returned by later runs.
func (s *StubRunner) SetErr(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Err = err
}
