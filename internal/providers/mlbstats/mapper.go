package mlbstats

import (
	"strconv"
	"strings"
	"time"

	"github.com/preston-bernstein/mlb-streaks-service/internal/domain/games"
	"github.com/preston-bernstein/mlb-streaks-service/internal/domain/teams"
	"github.com/preston-bernstein/mlb-streaks-service/internal/timeutil"
)

func mapRosterEntry(t teamPayload) teams.RosterEntry {
	id := ""
	if t.ID > 0 {
		id = strconv.Itoa(t.ID)
	}
	return teams.RosterEntry{
		ID:     id,
		Name:   strings.TrimSpace(t.Name),
		Active: t.Active,
	}
}

// mapResult turns a schedule game into a result for teamID.
// ok is false for games that are not finalized regular-season decisions involving the team.
func mapResult(g gamePayload, teamID int, loc *time.Location) (games.Result, bool) {
	if g.GameType != gameTypeRegular || g.Status.AbstractGameState != stateFinal {
		return games.Result{}, false
	}
	for _, state := range excludedStates {
		if strings.Contains(g.Status.DetailedState, state) {
			return games.Result{}, false
		}
	}

	var own, opp sidePayload
	switch teamID {
	case g.Teams.Home.Team.ID:
		own, opp = g.Teams.Home, g.Teams.Away
	case g.Teams.Away.Team.ID:
		own, opp = g.Teams.Away, g.Teams.Home
	default:
		return games.Result{}, false
	}

	won, decided := decision(own, opp)
	if !decided {
		return games.Result{}, false
	}

	date, ok := gameDate(g, loc)
	if !ok {
		return games.Result{}, false
	}
	return games.Result{Date: date, GameNumber: g.GameNumber, Won: won}, true
}

// decision prefers the isWinner flags and falls back to the score. Ties are undecided.
func decision(own, opp sidePayload) (won bool, decided bool) {
	if own.IsWinner != nil && *own.IsWinner {
		return true, true
	}
	if opp.IsWinner != nil && *opp.IsWinner {
		return false, true
	}
	if own.Score != nil && opp.Score != nil && *own.Score != *opp.Score {
		return *own.Score > *opp.Score, true
	}
	return false, false
}

func gameDate(g gamePayload, loc *time.Location) (time.Time, bool) {
	if g.OfficialDate != "" {
		if d, err := timeutil.ParseDate(g.OfficialDate); err == nil {
			return d, true
		}
	}
	if g.GameDate != "" {
		if ts, err := time.Parse(time.RFC3339, g.GameDate); err == nil {
			return timeutil.CalendarDate(ts.In(loc)), true
		}
	}
	return time.Time{}, false
}
