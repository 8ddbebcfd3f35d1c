package providers

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/preston-bernstein/mlb-streaks-service/internal/cache"
	"github.com/preston-bernstein/mlb-streaks-service/internal/domain/games"
	"github.com/preston-bernstein/mlb-streaks-service/internal/domain/teams"
	"github.com/preston-bernstein/mlb-streaks-service/internal/metrics"
	"github.com/preston-bernstein/mlb-streaks-service/internal/teststubs"
	"github.com/preston-bernstein/mlb-streaks-service/internal/timeutil"
)

type failingCache struct{}

func (failingCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return nil, false, errors.New("cache down")
}

func (failingCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return errors.New("cache down")
}

func TestCachedProviderServesSecondCallFromCache(t *testing.T) {
	day := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
	inner := &teststubs.StubProvider{
		Results: map[string][]games.Result{"1": {{Date: day, Won: true}}},
	}
	rec := metrics.NewRecorder()
	p := NewCachedProvider(inner, cache.NewMemoryCache(), time.Hour, "mlbstats", rec, nil)
	window := timeutil.SeasonWindow(2024)

	for i := 0; i < 2; i++ {
		results, err := p.FetchResults(context.Background(), "1", window)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(results) != 1 || !results[0].Date.Equal(day) || !results[0].Won {
			t.Fatalf("unexpected results %+v", results)
		}
	}
	if inner.ResultCalls.Load() != 1 {
		t.Fatalf("expected a single upstream call, got %d", inner.ResultCalls.Load())
	}
	if rec.Snapshot("mlbstats").CacheHits != 1 {
		t.Fatalf("expected one cache hit")
	}
}

func TestCachedProviderKeysBySeason(t *testing.T) {
	inner := &teststubs.StubProvider{Roster: []teams.RosterEntry{{ID: "1", Name: "A", Active: true}}}
	p := NewCachedProvider(inner, cache.NewMemoryCache(), 0, "mlbstats", nil, nil)

	_, _ = p.FetchRoster(context.Background(), 2023)
	_, _ = p.FetchRoster(context.Background(), 2024)
	_, _ = p.FetchRoster(context.Background(), 2024)
	if inner.RosterCalls.Load() != 2 {
		t.Fatalf("expected one upstream call per season, got %d", inner.RosterCalls.Load())
	}
}

func TestCachedProviderFallsThroughOnCacheErrors(t *testing.T) {
	inner := &teststubs.StubProvider{Roster: []teams.RosterEntry{{ID: "1", Name: "A", Active: true}}}
	p := NewCachedProvider(inner, failingCache{}, time.Hour, "mlbstats", nil, nil)

	roster, err := p.FetchRoster(context.Background(), 2024)
	if err != nil || len(roster) != 1 {
		t.Fatalf("expected roster despite cache failure, got %v %v", roster, err)
	}
}

func TestCachedProviderDoesNotCacheErrors(t *testing.T) {
	inner := &teststubs.StubProvider{RosterErr: errors.New("boom")}
	p := NewCachedProvider(inner, cache.NewMemoryCache(), time.Hour, "mlbstats", nil, nil)

	if _, err := p.FetchRoster(context.Background(), 2024); err == nil {
		t.Fatal("expected error")
	}
	inner.RosterErr = nil
	if _, err := p.FetchRoster(context.Background(), 2024); err != nil {
		t.Fatalf("expected recovery, got %v", err)
	}
	if inner.RosterCalls.Load() != 2 {
		t.Fatalf("expected both calls to reach upstream")
	}
}

func TestNewCachedProviderNilCacheReturnsNext(t *testing.T) {
	inner := &teststubs.StubProvider{}
	if got := NewCachedProvider(inner, nil, time.Hour, "x", nil, nil); got != DataProvider(inner) {
		t.Fatalf("expected inner provider when cache is nil")
	}
}
