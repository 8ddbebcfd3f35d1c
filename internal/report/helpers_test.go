package report

import (
	"testing"
	"time"

	domainstreaks "github.com/preston-bernstein/mlb-streaks-service/internal/domain/streaks"
	"github.com/preston-bernstein/mlb-streaks-service/internal/domain/teams"
	"github.com/preston-bernstein/mlb-streaks-service/internal/timeutil"
)

var opening = time.Date(2023, 4, 1, 0, 0, 0, 0, time.UTC)

func sampleStreaks() []domainstreaks.Streak {
	return []domainstreaks.Streak{
		{Team: teams.Team{ID: "1", Name: "Team A"}, Type: domainstreaks.TypeWin, Length: 7, Start: opening, End: opening.AddDate(0, 0, 6)},
		{Team: teams.Team{ID: "2", Name: "Team B"}, Type: domainstreaks.TypeLoss, Length: 5, Start: opening.AddDate(0, 1, 0), End: opening.AddDate(0, 1, 4)},
	}
}

func sampleReport(season int) Report {
	return New(season, timeutil.SeasonWindow(season), 5, sampleStreaks(), nil, opening)
}

func writeReport(t *testing.T, w *Writer, rep Report) {
	t.Helper()
	if err := w.WriteReport(rep); err != nil {
		t.Fatalf("failed to write report %d: %v", rep.Season, err)
	}
}
