package runs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/preston-bernstein/mlb-streaks-service/internal/domain/games"
	domainstreaks "github.com/preston-bernstein/mlb-streaks-service/internal/domain/streaks"
	"github.com/preston-bernstein/mlb-streaks-service/internal/domain/teams"
	"github.com/preston-bernstein/mlb-streaks-service/internal/metrics"
	"github.com/preston-bernstein/mlb-streaks-service/internal/teststubs"
	"github.com/preston-bernstein/mlb-streaks-service/internal/timeutil"
)

var seasonStart = time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)

func resultsFrom(pattern string) []games.Result {
	out := make([]games.Result, 0, len(pattern))
	for i, c := range pattern {
		out = append(out, games.Result{Date: seasonStart.AddDate(0, 0, i), GameNumber: 1, Won: c == 'W'})
	}
	return out
}

func testConfig() Config {
	return Config{
		Season:      2024,
		Window:      timeutil.SeasonWindow(2024),
		Threshold:   5,
		Workers:     2,
		TeamTimeout: time.Second,
	}
}

func roster() []teams.RosterEntry {
	return []teams.RosterEntry{
		{ID: "1", Name: "Team A", Active: true},
		{ID: "2", Name: "Team B", Active: true},
		{ID: "3", Name: "Team C", Active: false},
		{ID: "", Name: "Broken", Active: true},
	}
}

func TestRunWritesRankedReportToEverySink(t *testing.T) {
	p := &teststubs.StubProvider{
		Roster: roster(),
		Results: map[string][]games.Result{
			"1": resultsFrom("WWWWWLL"),
			"2": resultsFrom("LLLLLLLW"),
		},
	}
	first := &teststubs.StubSink{SinkName: "first"}
	second := &teststubs.StubSink{SinkName: "second"}
	recorder := metrics.NewRecorder()

	svc := NewService(p, testConfig(), nil, recorder, first, second)
	var progressed []string
	svc.OnProgress(func(team teams.Team, found []domainstreaks.Streak, err error) {
		progressed = append(progressed, team.ID)
	})

	rep, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rep.Teams != 2 || rep.Partial || len(rep.Failures) != 0 {
		t.Fatalf("unexpected report summary %+v", rep)
	}
	if len(rep.Streaks) != 2 || rep.Streaks[0].Length != 7 || rep.Streaks[0].Type != domainstreaks.TypeLoss {
		t.Fatalf("expected ranked streaks, got %+v", rep.Streaks)
	}
	if rep.RunID == "" || rep.Threshold != 5 || rep.StartDate != "2024-03-01" {
		t.Fatalf("unexpected report metadata %+v", rep)
	}
	for _, sink := range []*teststubs.StubSink{first, second} {
		if got := sink.Reports(); len(got) != 1 || got[0].RunID != rep.RunID {
			t.Fatalf("expected %s sink to receive the report, got %+v", sink.Name(), got)
		}
	}
	if len(progressed) != 2 {
		t.Fatalf("expected progress per active team, got %v", progressed)
	}
	if p.ResultCalls.Load() != 2 {
		t.Fatalf("expected inactive and malformed teams to be skipped, got %d fetches", p.ResultCalls.Load())
	}
	if runs, _ := recorder.Runs(); runs != 1 {
		t.Fatalf("expected run to be recorded, got %d", runs)
	}
}

func TestRunRosterFailureIsFatal(t *testing.T) {
	boom := errors.New("upstream down")
	sink := &teststubs.StubSink{}
	svc := NewService(&teststubs.StubProvider{RosterErr: boom}, testConfig(), nil, nil, sink)

	if _, err := svc.Run(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("expected roster error, got %v", err)
	}
	if len(sink.Reports()) != 0 {
		t.Fatal("expected no report after a roster failure")
	}
}

func TestRunEmptyRoster(t *testing.T) {
	p := &teststubs.StubProvider{Roster: []teams.RosterEntry{{ID: "9", Name: "Gone", Active: false}}}
	if _, err := NewService(p, testConfig(), nil, nil).Run(context.Background()); !errors.Is(err, ErrEmptyRoster) {
		t.Fatalf("expected ErrEmptyRoster, got %v", err)
	}
}

func TestRunNilProvider(t *testing.T) {
	if _, err := NewService(nil, testConfig(), nil, nil).Run(context.Background()); err == nil {
		t.Fatal("expected an error without a provider")
	}
}

func TestRunRecordsTeamFailures(t *testing.T) {
	boom := errors.New("schedule 500")
	p := &teststubs.StubProvider{
		Roster:     roster(),
		Results:    map[string][]games.Result{"2": resultsFrom("WWWWW")},
		ResultErrs: map[string]error{"1": boom},
	}
	sink := &teststubs.StubSink{}

	rep, err := NewService(p, testConfig(), nil, nil, sink).Run(context.Background())
	if err != nil {
		t.Fatalf("team failures should not fail the run: %v", err)
	}
	if len(rep.Failures) != 1 || rep.Failures[0].TeamID != "1" || rep.Failures[0].Team != "Team A" {
		t.Fatalf("unexpected failures %+v", rep.Failures)
	}
	if len(rep.Streaks) != 1 || rep.Streaks[0].Team.ID != "2" {
		t.Fatalf("expected the healthy team's streak, got %+v", rep.Streaks)
	}
}

func TestRunCancelledWritesPartialReport(t *testing.T) {
	p := &teststubs.StubProvider{
		Roster:  roster(),
		Results: map[string][]games.Result{"1": resultsFrom("WWWWW"), "2": resultsFrom("LLLLL")},
		Delays:  map[string]time.Duration{"2": time.Minute},
	}
	cfg := testConfig()
	cfg.Workers = 1
	cfg.TeamTimeout = time.Minute
	sink := &teststubs.StubSink{}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	svc := NewService(p, cfg, nil, nil, sink)
	svc.OnProgress(func(team teams.Team, found []domainstreaks.Streak, err error) {
		if team.ID == "1" {
			go func() {
				time.Sleep(20 * time.Millisecond)
				cancel()
			}()
		}
	})

	rep, err := svc.Run(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected cancellation error, got %v", err)
	}
	if !rep.Partial || len(rep.Streaks) != 1 || rep.Streaks[0].Team.ID != "1" {
		t.Fatalf("expected partial report with the finished team, got %+v", rep)
	}
	if len(rep.Failures) != 1 || rep.Failures[0].TeamID != "2" {
		t.Fatalf("expected the unfinished team as a failure, got %+v", rep.Failures)
	}
	if len(sink.Reports()) != 1 {
		t.Fatal("expected the partial report to reach the sink")
	}
}

func TestRunSinkErrorsAreJoined(t *testing.T) {
	boom := errors.New("disk full")
	p := &teststubs.StubProvider{Roster: roster(), Results: map[string][]games.Result{}}
	failing := &teststubs.StubSink{SinkName: "csv", Err: boom}
	ok := &teststubs.StubSink{SinkName: "json"}

	rep, err := NewService(p, testConfig(), nil, nil, failing, ok).Run(context.Background())
	if !errors.Is(err, boom) {
		t.Fatalf("expected sink error, got %v", err)
	}
	if len(ok.Reports()) != 1 {
		t.Fatal("expected later sinks to still run")
	}
	if rep.Teams != 2 {
		t.Fatalf("expected report alongside sink error, got %+v", rep)
	}
}

func TestRunDefaultsThreshold(t *testing.T) {
	cfg := testConfig()
	cfg.Threshold = 0
	p := &teststubs.StubProvider{Roster: roster(), Results: map[string][]games.Result{}}
	rep, err := NewService(p, cfg, nil, nil).Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rep.Threshold != 5 {
		t.Fatalf("expected default threshold 5 on the report, got %d", rep.Threshold)
	}

	cfg.Threshold = -1
	rep, err = NewService(p, cfg, nil, nil).Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rep.Threshold != 1 {
		t.Fatalf("expected negative threshold clamped to 1 on the report, got %d", rep.Threshold)
	}
}
