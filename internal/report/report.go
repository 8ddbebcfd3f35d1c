package report

import (
	"time"

	"github.com/google/uuid"

	domainstreaks "github.com/preston-bernstein/mlb-streaks-service/internal/domain/streaks"
	"github.com/preston-bernstein/mlb-streaks-service/internal/timeutil"
)

// Failure is a team that contributed nothing because its results could not be fetched.
type Failure struct {
	TeamID string `json:"teamId"`
	Team   string `json:"team"`
	Error  string `json:"error"`
}

// Report is the outcome of one season run: ranked streaks plus the teams that failed.
type Report struct {
	RunID       string                 `json:"runId"`
	Season      int                    `json:"season"`
	StartDate   string                 `json:"startDate"`
	EndDate     string                 `json:"endDate"`
	Threshold   int                    `json:"threshold"`
	GeneratedAt time.Time              `json:"generatedAt"`
	Teams       int                    `json:"teams"`
	Partial     bool                   `json:"partial,omitempty"`
	Streaks     []domainstreaks.Streak `json:"streaks"`
	Failures    []Failure              `json:"failures"`
}

// New stamps a report with a fresh run id.
func New(season int, window timeutil.Window, threshold int, ranked []domainstreaks.Streak, failures []Failure, generatedAt time.Time) Report {
	if ranked == nil {
		ranked = []domainstreaks.Streak{}
	}
	if failures == nil {
		failures = []Failure{}
	}
	return Report{
		RunID:       uuid.NewString(),
		Season:      season,
		StartDate:   timeutil.FormatDate(window.Start),
		EndDate:     timeutil.FormatDate(window.End),
		Threshold:   threshold,
		GeneratedAt: generatedAt.UTC(),
		Streaks:     ranked,
		Failures:    failures,
	}
}
