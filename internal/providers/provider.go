package providers

import (
	"context"

	"github.com/preston-bernstein/mlb-streaks-service/internal/domain/games"
	"github.com/preston-bernstein/mlb-streaks-service/internal/domain/teams"
	"github.com/preston-bernstein/mlb-streaks-service/internal/timeutil"
)

// RosterProvider lists the teams of a season, including inactive ones.
// Filtering to active, well-formed entries happens in the core.
type RosterProvider interface {
	FetchRoster(ctx context.Context, season int) ([]teams.RosterEntry, error)
}

// ResultsProvider fetches finalized regular-season results for one team inside a date window.
// Implementations must drop non-final games, other game types and games without a winner.
// A team with no finalized games returns an empty slice and a nil error.
type ResultsProvider interface {
	FetchResults(ctx context.Context, teamID string, window timeutil.Window) ([]games.Result, error)
}

// DataProvider combines all provider capabilities.
type DataProvider interface {
	RosterProvider
	ResultsProvider
}
