package providers

import (
	"context"
	"log/slog"

	"golang.org/x/time/rate"

	"github.com/preston-bernstein/mlb-streaks-service/internal/domain/games"
	"github.com/preston-bernstein/mlb-streaks-service/internal/domain/teams"
	"github.com/preston-bernstein/mlb-streaks-service/internal/timeutil"
)

const (
	defaultRatePerSecond = 5
	defaultBurst         = 1
)

// rateLimitedProvider wraps a DataProvider with a token bucket shared by every caller.
// Concurrent team workers all draw from the same bucket, which keeps the upstream under quota.
type rateLimitedProvider struct {
	next    DataProvider
	limiter *rate.Limiter
	logger  *slog.Logger
}

// NewRateLimitedProvider returns a DataProvider that allows perSecond calls with the given burst.
// Calls block until a token is available or ctx is done.
func NewRateLimitedProvider(next DataProvider, perSecond float64, burst int, logger *slog.Logger) DataProvider {
	if perSecond <= 0 {
		perSecond = defaultRatePerSecond
	}
	if burst <= 0 {
		burst = defaultBurst
	}
	return &rateLimitedProvider{
		next:    next,
		limiter: rate.NewLimiter(rate.Limit(perSecond), burst),
		logger:  logger,
	}
}

func (p *rateLimitedProvider) FetchRoster(ctx context.Context, season int) ([]teams.RosterEntry, error) {
	if err := p.wait(ctx); err != nil {
		return nil, err
	}
	return p.next.FetchRoster(ctx, season)
}

func (p *rateLimitedProvider) FetchResults(ctx context.Context, teamID string, window timeutil.Window) ([]games.Result, error) {
	if err := p.wait(ctx); err != nil {
		return nil, err
	}
	return p.next.FetchResults(ctx, teamID, window)
}

func (p *rateLimitedProvider) wait(ctx context.Context) error {
	if p == nil || p.next == nil {
		return ErrProviderUnavailable
	}
	if err := p.limiter.Wait(ctx); err != nil {
		logWithProvider(ctx, p.logger, slog.LevelWarn, "rate-limited", "rate-limited fetch canceled", "error", err)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return err
	}
	return nil
}
