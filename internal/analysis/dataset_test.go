package analysis

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/preston-bernstein/mlb-streaks-service/internal/report"
)

func row(team, kind string, length int) report.Row {
	return report.Row{Team: team, Type: kind, Length: length}
}

func TestDatasetAddBucketsByThreshold(t *testing.T) {
	d := NewDataset([]int{5, 6}, map[int]bool{})
	d.Add(2023, []report.Row{
		row("A", "WIN", 5),
		row("A", "loss ", 6),
		row("", "WIN", 7),
		row("B", "TIE", 9),
	})

	if got := d.yearCounts[5][2023]; got != 4 {
		t.Fatalf("expected 4 streaks at 5+, got %d", got)
	}
	if got := d.yearCounts[6][2023]; got != 3 {
		t.Fatalf("expected 3 streaks at 6+, got %d", got)
	}
	a := TeamSeason{Team: "A", Season: 2023}
	if got := d.winLoss[5][a]; got.Win != 1 || got.Loss != 1 {
		t.Fatalf("expected normalized WIN/LOSS counts, got %+v", got)
	}
	if got := d.winLoss[6][a]; got.Win != 0 || got.Loss != 1 {
		t.Fatalf("expected only the loss at 6+, got %+v", got)
	}
	if got := d.streakGames[5][a]; got != 11 {
		t.Fatalf("expected 11 streak games, got %d", got)
	}
	if got := d.streakGames[5][TeamSeason{Team: unknownTeam, Season: 2023}]; got != 7 {
		t.Fatalf("expected blank team to fall back to %q, got %d", unknownTeam, got)
	}
	b := TeamSeason{Team: "B", Season: 2023}
	if got := d.streakGames[5][b]; got != 9 {
		t.Fatalf("expected other types to count toward totals, got %d", got)
	}
	if _, ok := d.winLoss[5][b]; ok {
		t.Fatal("expected other types to stay out of win/loss counts")
	}
}

func TestDatasetIgnoredSeasonOnlyCountsYearly(t *testing.T) {
	d := NewDataset([]int{5}, nil)
	d.Add(2020, []report.Row{row("A", "WIN", 8)})

	if got := d.yearCounts[5][2020]; got != 1 {
		t.Fatalf("expected yearly count for ignored season, got %d", got)
	}
	if len(d.streakGames[5]) != 0 || len(d.winLoss[5]) != 0 {
		t.Fatal("expected ignored season to skip team-season stats")
	}
	if seasons := d.Seasons(); len(seasons) != 1 || seasons[0] != 2020 {
		t.Fatalf("unexpected seasons %v", seasons)
	}
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	header := "Team,StreakType,Length,StartDate,EndDate\n"
	files := map[string]string{
		"mlb_streaks_2022.csv": header + "A,WIN,6,2022-04-01,2022-04-06\nA,WIN,abc,,\n",
		"mlb_streaks_2023.csv": header + "B,LOSS,7,2023-05-01,2023-05-07\nB,WIN,5,2023-06-01,2023-06-05\n",
		"mlb_streaks_abcd.csv": header + "C,WIN,9,,\n",
		"notes.csv":            header + "D,WIN,9,,\n",
	}
	for name, body := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}

	d, err := LoadDir(dir, []int{5}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	seasons := d.Seasons()
	if len(seasons) != 2 || seasons[0] != 2022 || seasons[1] != 2023 {
		t.Fatalf("unexpected seasons %v", seasons)
	}
	if got := d.yearCounts[5][2022]; got != 1 {
		t.Fatalf("expected bad length row skipped, got %d", got)
	}
	if got := d.winLoss[5][TeamSeason{Team: "B", Season: 2023}]; got.Win != 1 || got.Loss != 1 {
		t.Fatalf("unexpected 2023 counts %+v", got)
	}
}

func TestLoadDirEmpty(t *testing.T) {
	d, err := LoadDir(t.TempDir(), nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(d.Seasons()) != 0 {
		t.Fatalf("expected no seasons, got %v", d.Seasons())
	}
	if len(d.Thresholds()) != 6 {
		t.Fatalf("expected default thresholds, got %v", d.Thresholds())
	}
}
