package streaks

import (
	"time"

	"github.com/preston-bernstein/mlb-streaks-service/internal/domain/games"
	domainstreaks "github.com/preston-bernstein/mlb-streaks-service/internal/domain/streaks"
	"github.com/preston-bernstein/mlb-streaks-service/internal/domain/teams"
)

// DefaultThreshold is the minimum streak length reported when none is configured.
const DefaultThreshold = 5

// NormalizeThreshold maps an unset threshold to DefaultThreshold and clamps negatives to 1.
func NormalizeThreshold(threshold int) int {
	switch {
	case threshold == 0:
		return DefaultThreshold
	case threshold < 1:
		return 1
	}
	return threshold
}

// Scan walks seq once and returns every maximal run of identical outcomes at least threshold long,
// in chronological order. A threshold below 1 is treated as 1.
func Scan(team teams.Team, seq games.Sequence, threshold int) []domainstreaks.Streak {
	if threshold < 1 {
		threshold = 1
	}
	var (
		found   []domainstreaks.Streak
		current games.Outcome
		length  int
		start   time.Time
		prev    time.Time
	)

	emit := func() {
		if length >= threshold {
			found = append(found, domainstreaks.Streak{
				Team:   team,
				Type:   domainstreaks.TypeOf(current),
				Length: length,
				Start:  start,
				End:    prev,
			})
		}
	}

	for i, entry := range seq {
		if i > 0 && entry.Outcome == current {
			length++
			prev = entry.Date
			continue
		}
		if i > 0 {
			emit()
		}
		current = entry.Outcome
		length = 1
		start = entry.Date
		prev = entry.Date
	}
	if len(seq) > 0 {
		emit()
	}
	return found
}
