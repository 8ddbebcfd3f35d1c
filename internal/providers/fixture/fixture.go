package fixture

import (
	"context"

	"github.com/preston-bernstein/mlb-streaks-service/internal/domain/games"
	"github.com/preston-bernstein/mlb-streaks-service/internal/domain/teams"
	"github.com/preston-bernstein/mlb-streaks-service/internal/timeutil"
)

// Provider returns a static roster and season useful for local runs and demos.
type Provider struct {
	roster   []teams.RosterEntry
	patterns map[string]string
}

// New creates a fixture provider.
func New() *Provider {
	return &Provider{
		roster: []teams.RosterEntry{
			{ID: "147", Name: "New York Yankees", Active: true},
			{ID: "111", Name: "Boston Red Sox", Active: true},
			{ID: "119", Name: "Los Angeles Dodgers", Active: true},
			{ID: "137", Name: "San Francisco Giants", Active: true},
			{ID: "120", Name: "Washington Nationals", Active: true},
			{ID: "9999", Name: "Montreal Expos", Active: false},
			{ID: "", Name: "Unnamed Club", Active: true},
		},
		// one character per game, one game per day from the window start; '2' marks a
		// doubleheader day that is played as a loss then a win.
		patterns: map[string]string{
			"147": "WWWWWWWLWLLWWLWWWWWLLW",
			"111": "LLWLLLLLLWWLW2WLLWLLLL",
			"119": "WLWLWLWWLWLLWLWWLWLWLW",
			"137": "LWWWWW2WWLLLLLWLWWWWWW",
			"120": "",
		},
	}
}

// FetchRoster returns the fixture roster, including one inactive and one malformed entry.
func (p *Provider) FetchRoster(ctx context.Context, season int) ([]teams.RosterEntry, error) {
	_ = ctx
	_ = season
	out := make([]teams.RosterEntry, len(p.roster))
	copy(out, p.roster)
	return out, nil
}

// FetchResults expands the team's pattern into dated results inside the window.
func (p *Provider) FetchResults(ctx context.Context, teamID string, window timeutil.Window) ([]games.Result, error) {
	_ = ctx
	pattern := p.patterns[teamID]
	results := make([]games.Result, 0, len(pattern))

	day := window.Start
	for _, c := range pattern {
		if !window.Contains(day) {
			break
		}
		switch c {
		case 'W', 'L':
			results = append(results, games.Result{Date: day, GameNumber: 1, Won: c == 'W'})
		case '2':
			// listed out of order to exercise game-number sorting
			results = append(results,
				games.Result{Date: day, GameNumber: 2, Won: true},
				games.Result{Date: day, GameNumber: 1, Won: false},
			)
		}
		day = day.AddDate(0, 0, 1)
	}
	return results, nil
}
