package testutil

import (
	"fmt"
	"testing"
	"time"

	domainstreaks "github.com/preston-bernstein/mlb-streaks-service/internal/domain/streaks"
	"github.com/preston-bernstein/mlb-streaks-service/internal/report"
	"github.com/preston-bernstein/mlb-streaks-service/internal/timeutil"
)

const sampleThreshold = 5

// NewTempWriter returns a report writer rooted in a temp dir.
func NewTempWriter(t *testing.T, retention int) *report.Writer {
	t.Helper()
	return report.NewWriter(t.TempDir(), retention)
}

// SampleReport returns a season report holding the provided streaks.
func SampleReport(season int, items ...domainstreaks.Streak) report.Report {
	return report.New(season, timeutil.SeasonWindow(season), sampleThreshold, items, nil,
		time.Date(season, time.October, 1, 0, 0, 0, 0, time.UTC))
}

// WriteReport persists a report for season with a single sample streak.
func WriteReport(t *testing.T, w *report.Writer, season int) report.Report {
	t.Helper()
	end := MustParseDate(fmt.Sprintf("%d-05-10", season))
	rep := SampleReport(season, SampleStreak(SampleTeam("147"), domainstreaks.TypeWin, 6, end))
	if err := w.WriteReport(rep); err != nil {
		t.Fatalf("failed to write report %d: %v", season, err)
	}
	return rep
}

// ReportPath returns the expected file path for a season report.
func ReportPath(w *report.Writer, season int) string {
	return report.ReportPath(w.BasePath(), season)
}
