package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/preston-bernstein/mlb-streaks-service/internal/domain/games"
	"github.com/preston-bernstein/mlb-streaks-service/internal/domain/teams"
	"github.com/preston-bernstein/mlb-streaks-service/internal/metrics"
	"github.com/preston-bernstein/mlb-streaks-service/internal/timeutil"
)

const defaultCacheTTL = time.Hour

// Cache is the byte store used to memoize provider responses.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// cachedProvider serves roster and results from a cache before calling the next provider.
// Cache failures are logged and fall through to the provider.
type cachedProvider struct {
	next    DataProvider
	cache   Cache
	ttl     time.Duration
	name    string
	metrics *metrics.Recorder
	logger  *slog.Logger
}

// NewCachedProvider wraps next with a read-through cache. A nil cache returns next unchanged.
func NewCachedProvider(next DataProvider, c Cache, ttl time.Duration, name string, recorder *metrics.Recorder, logger *slog.Logger) DataProvider {
	if c == nil {
		return next
	}
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &cachedProvider{
		next:    next,
		cache:   c,
		ttl:     ttl,
		name:    name,
		metrics: recorder,
		logger:  logger,
	}
}

func (p *cachedProvider) FetchRoster(ctx context.Context, season int) ([]teams.RosterEntry, error) {
	key := fmt.Sprintf("%s:roster:%d", p.name, season)
	return readThrough(ctx, p, key, func() ([]teams.RosterEntry, error) {
		return p.next.FetchRoster(ctx, season)
	})
}

func (p *cachedProvider) FetchResults(ctx context.Context, teamID string, window timeutil.Window) ([]games.Result, error) {
	key := fmt.Sprintf("%s:results:%s:%s", p.name, teamID, window)
	return readThrough(ctx, p, key, func() ([]games.Result, error) {
		return p.next.FetchResults(ctx, teamID, window)
	})
}

func readThrough[T any](ctx context.Context, p *cachedProvider, key string, load func() ([]T, error)) ([]T, error) {
	if p.next == nil {
		return nil, ErrProviderUnavailable
	}

	raw, ok, err := p.cache.Get(ctx, key)
	if err != nil {
		logWithProvider(ctx, p.logger, slog.LevelWarn, p.name, "cache read failed", "key", key, "error", err)
	}
	if ok {
		var cached []T
		if decodeErr := json.Unmarshal(raw, &cached); decodeErr == nil {
			p.metrics.RecordCacheHit(p.name)
			return cached, nil
		}
		logWithProvider(ctx, p.logger, slog.LevelWarn, p.name, "cache entry corrupt", "key", key)
	}

	items, err := load()
	if err != nil {
		return nil, err
	}
	if data, encodeErr := json.Marshal(items); encodeErr == nil {
		if setErr := p.cache.Set(ctx, key, data, p.ttl); setErr != nil {
			logWithProvider(ctx, p.logger, slog.LevelWarn, p.name, "cache write failed", "key", key, "error", setErr)
		}
	}
	return items, nil
}
