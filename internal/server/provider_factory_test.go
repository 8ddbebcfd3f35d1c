package server

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/preston-bernstein/mlb-streaks-service/internal/app/runs"
	"github.com/preston-bernstein/mlb-streaks-service/internal/cache"
	"github.com/preston-bernstein/mlb-streaks-service/internal/config"
	"github.com/preston-bernstein/mlb-streaks-service/internal/providers"
	"github.com/preston-bernstein/mlb-streaks-service/internal/providers/fixture"
	"github.com/preston-bernstein/mlb-streaks-service/internal/providers/mlbstats"
	"github.com/preston-bernstein/mlb-streaks-service/internal/report"
	"github.com/preston-bernstein/mlb-streaks-service/internal/teststubs"
	"github.com/preston-bernstein/mlb-streaks-service/internal/timeutil"
)

func TestProviderFactoryBuildsFixtureChain(t *testing.T) {
	factory := newProviderFactory(nil, nil)
	prov, cleanup := factory.build(context.Background(), config.Config{Provider: "fixture"})
	defer cleanup()
	if prov == nil {
		t.Fatalf("expected provider")
	}
	roster, err := prov.FetchRoster(context.Background(), 2024)
	if err != nil || len(roster) == 0 {
		t.Fatalf("expected fixture roster through wrappers, got %v err %v", roster, err)
	}
}

func TestRefreshCyclesReachProviderAfterCacheExpiry(t *testing.T) {
	upstream := &teststubs.StubProvider{}
	factory := newProviderFactory(nil, nil)
	factory.base = func(config.Config, *slog.Logger) providers.DataProvider { return upstream }

	cfg := config.Config{
		Provider:        "fixture",
		RefreshInterval: 60 * time.Millisecond,
		MLBStats:        config.MLBStatsConfig{RatePerSec: 1000, Burst: 10, Retries: 1},
		Storage:         config.StorageConfig{CacheTTL: 12 * time.Hour},
	}
	cfg = boundCacheTTL(cfg, nil)
	prov, cleanup := factory.build(context.Background(), cfg)
	defer cleanup()

	window := timeutil.SeasonWindow(2024)
	if _, err := prov.FetchResults(context.Background(), "147", window); err != nil {
		t.Fatalf("first fetch: %v", err)
	}
	if _, err := prov.FetchResults(context.Background(), "147", window); err != nil {
		t.Fatalf("cached fetch: %v", err)
	}
	if got := upstream.ResultCalls.Load(); got != 1 {
		t.Fatalf("expected second fetch within one cycle served from cache, got %d upstream calls", got)
	}

	time.Sleep(cfg.RefreshInterval)
	if _, err := prov.FetchResults(context.Background(), "147", window); err != nil {
		t.Fatalf("next cycle fetch: %v", err)
	}
	if got := upstream.ResultCalls.Load(); got != 2 {
		t.Fatalf("expected next refresh cycle to reach the provider, got %d upstream calls", got)
	}
}

func TestSelectProviderChoosesMLBStats(t *testing.T) {
	for _, name := range []string{"", "MLBStats"} {
		if _, ok := selectProvider(config.Config{Provider: name}, nil).(*mlbstats.Client); !ok {
			t.Fatalf("expected mlbstats client for %q", name)
		}
	}
}

func TestSelectProviderFallsBackToFixture(t *testing.T) {
	if _, ok := selectProvider(config.Config{Provider: "unknown"}, nil).(*fixture.Provider); !ok {
		t.Fatalf("expected fixture fallback")
	}
}

func TestNormalizeProviderName(t *testing.T) {
	if got := normalizeProviderName("Fixture", nil); got != "fixture" {
		t.Fatalf("expected lower-cased name, got %q", got)
	}
	if got := normalizeProviderName("", fixture.New()); got != "*fixture.provider" {
		t.Fatalf("expected derived type name, got %q", got)
	}
	if got := normalizeProviderName("", nil); got != "provider" {
		t.Fatalf("expected generic name, got %q", got)
	}
}

func TestBuildCacheFallsBackWhenRedisUnavailable(t *testing.T) {
	factory := newProviderFactory(nil, nil)
	called := false
	factory.newRedis = func(ctx context.Context, url, prefix string) (*cache.RedisCache, error) {
		called = true
		if prefix != cachePrefix {
			t.Fatalf("unexpected prefix %q", prefix)
		}
		return nil, errors.New("dial refused")
	}

	c, cleanup := factory.buildCache(context.Background(), config.Config{Storage: config.StorageConfig{RedisURL: "redis://nowhere:6379/0"}})
	defer cleanup()
	if !called {
		t.Fatalf("expected redis constructor to be tried")
	}
	if _, ok := c.(*cache.MemoryCache); !ok {
		t.Fatalf("expected memory cache fallback, got %T", c)
	}
}

type stubPostgres struct {
	teststubs.StubSink
	schemaErr error
	closed    bool
}

func (s *stubPostgres) EnsureSchema(ctx context.Context) error { return s.schemaErr }
func (s *stubPostgres) Close() error {
	s.closed = true
	return nil
}

func TestNewPipelineAddsPostgresSink(t *testing.T) {
	orig := openPostgres
	defer func() { openPostgres = orig }()

	pg := &stubPostgres{StubSink: teststubs.StubSink{SinkName: "postgres"}}
	openPostgres = func(ctx context.Context, dsn string) (postgresSink, error) {
		return pg, nil
	}

	cfg := fixtureConfig(t)
	cfg.Storage.DatabaseURL = "postgres://localhost/streaks"
	p, err := NewPipeline(context.Background(), cfg, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	rep, err := p.Service.Run(ctx)
	if err != nil {
		t.Fatalf("unexpected run error: %v", err)
	}
	got := pg.Reports()
	if len(got) != 1 || got[0].RunID != rep.RunID {
		t.Fatalf("expected postgres sink to receive the report, got %+v", got)
	}
	if _, err := report.NewFSStore(cfg.Output.Dir).LoadReport(2024); err != nil {
		t.Fatalf("expected JSON report on disk, got %v", err)
	}

	p.Close()
	if !pg.closed {
		t.Fatalf("expected postgres to be closed with the pipeline")
	}
}

func TestNewPipelineFailsOnSchemaError(t *testing.T) {
	orig := openPostgres
	defer func() { openPostgres = orig }()

	pg := &stubPostgres{schemaErr: errors.New("permission denied")}
	openPostgres = func(ctx context.Context, dsn string) (postgresSink, error) {
		return pg, nil
	}

	cfg := fixtureConfig(t)
	cfg.Storage.DatabaseURL = "postgres://localhost/streaks"
	if _, err := NewPipeline(context.Background(), cfg, nil, nil); err == nil {
		t.Fatalf("expected schema error")
	}
	if !pg.closed {
		t.Fatalf("expected postgres closed after schema failure")
	}
}

var _ runs.Sink = (*stubPostgres)(nil)
