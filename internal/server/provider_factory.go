package server

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/preston-bernstein/mlb-streaks-service/internal/cache"
	"github.com/preston-bernstein/mlb-streaks-service/internal/config"
	"github.com/preston-bernstein/mlb-streaks-service/internal/logging"
	"github.com/preston-bernstein/mlb-streaks-service/internal/metrics"
	"github.com/preston-bernstein/mlb-streaks-service/internal/providers"
	"github.com/preston-bernstein/mlb-streaks-service/internal/providers/fixture"
	"github.com/preston-bernstein/mlb-streaks-service/internal/providers/mlbstats"
)

const (
	providerMLBStats = "mlbstats"
	providerFixture  = "fixture"
	cachePrefix      = "mlb-streaks:"
)

// providerFactory assembles the provider with shared wrappers: cache, then retry, then rate limit.
type providerFactory struct {
	logger  *slog.Logger
	metrics *metrics.Recorder

	newRedis func(ctx context.Context, url, prefix string) (*cache.RedisCache, error)
	base     func(cfg config.Config, logger *slog.Logger) providers.DataProvider
}

func newProviderFactory(logger *slog.Logger, recorder *metrics.Recorder) providerFactory {
	return providerFactory{logger: logger, metrics: recorder, newRedis: cache.NewRedisCache, base: selectProvider}
}

// build returns the wrapped provider and a cleanup for any cache connection it opened.
func (f providerFactory) build(ctx context.Context, cfg config.Config) (providers.DataProvider, func()) {
	base := f.base(cfg, f.logger)
	name := normalizeProviderName(cfg.Provider, base)

	limited := providers.NewRateLimitedProvider(base, cfg.MLBStats.RatePerSec, cfg.MLBStats.Burst, f.logger)
	retrying := providers.NewRetryingProvider(limited, f.logger, f.metrics, name, cfg.MLBStats.Retries, 0)

	c, cleanup := f.buildCache(ctx, cfg)
	return providers.NewCachedProvider(retrying, c, cfg.Storage.CacheTTL, name, f.metrics, f.logger), cleanup
}

// buildCache prefers Redis when configured and falls back to an in-process cache.
func (f providerFactory) buildCache(ctx context.Context, cfg config.Config) (providers.Cache, func()) {
	noop := func() {}
	if cfg.Storage.RedisURL == "" {
		return cache.NewMemoryCache(), noop
	}
	rc, err := f.newRedis(ctx, cfg.Storage.RedisURL, cachePrefix)
	if err != nil {
		logging.Warn(f.logger, "redis unavailable, using in-memory cache", "error", err)
		return cache.NewMemoryCache(), noop
	}
	return rc, func() {
		if err := rc.Close(); err != nil {
			logging.Warn(f.logger, "redis close failed", "error", err)
		}
	}
}

func selectProvider(cfg config.Config, logger *slog.Logger) providers.DataProvider {
	switch strings.ToLower(cfg.Provider) {
	case providerMLBStats, "":
		return mlbstats.NewClient(mlbstats.Config{
			BaseURL: cfg.MLBStats.BaseURL,
			SportID: cfg.MLBStats.SportID,
		})
	case providerFixture:
		return fixture.New()
	default:
		logging.Warn(logger, "unknown provider, falling back to fixture", slog.String(logging.FieldProvider, cfg.Provider))
		return fixture.New()
	}
}

// normalizeProviderName returns a lower-cased provider name, deriving from instance when not explicitly configured.
func normalizeProviderName(raw string, provider providers.DataProvider) string {
	if raw != "" {
		return strings.ToLower(raw)
	}
	if provider != nil {
		return strings.ToLower(fmt.Sprintf("%T", provider))
	}
	return "provider"
}
