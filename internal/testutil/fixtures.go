package testutil

import (
	"time"

	domainstreaks "github.com/preston-bernstein/mlb-streaks-service/internal/domain/streaks"
	"github.com/preston-bernstein/mlb-streaks-service/internal/domain/teams"
)

// SampleTeam returns a team fixture with the provided id.
func SampleTeam(id string) teams.Team {
	return teams.Team{ID: id, Name: "Team " + id}
}

// SampleStreak builds a streak of the given length ending on end.
func SampleStreak(team teams.Team, typ domainstreaks.Type, length int, end time.Time) domainstreaks.Streak {
	return domainstreaks.Streak{
		Team:   team,
		Type:   typ,
		Length: length,
		Start:  end.AddDate(0, 0, -(length - 1)),
		End:    end,
	}
}
