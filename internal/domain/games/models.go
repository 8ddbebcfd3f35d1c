package games

import (
	"time"

	"github.com/preston-bernstein/mlb-streaks-service/internal/timeutil"
)

// Outcome is the result of one finalized game from a single team's point of view.
type Outcome string

const (
	OutcomeWin  Outcome = "WIN"
	OutcomeLoss Outcome = "LOSS"
)

// OutcomeFor converts the provider's winner flag into an Outcome.
func OutcomeFor(won bool) Outcome {
	if won {
		return OutcomeWin
	}
	return OutcomeLoss
}

// Result is one finalized regular-season game for a team.
// GameNumber orders doubleheaders played on the same date (1, 2); zero means unknown.
type Result struct {
	Date       time.Time `json:"date"`
	GameNumber int       `json:"gameNumber,omitempty"`
	Won        bool      `json:"won"`
}

// Outcome reports the result as WIN or LOSS.
func (r Result) Outcome() Outcome {
	return OutcomeFor(r.Won)
}

// NewResult builds a Result from a YYYY-MM-DD date string.
func NewResult(date string, gameNumber int, won bool) (Result, error) {
	parsed, err := timeutil.ParseDate(date)
	if err != nil {
		return Result{}, err
	}
	return Result{Date: parsed, GameNumber: gameNumber, Won: won}, nil
}

// Entry is a single element of an outcome sequence.
type Entry struct {
	Date    time.Time
	Outcome Outcome
}

// Sequence is a team's outcomes sorted ascending by date.
type Sequence []Entry

// Len returns the number of games in the sequence.
func (s Sequence) Len() int {
	return len(s)
}
