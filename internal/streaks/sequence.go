package streaks

import (
	"sort"

	"github.com/preston-bernstein/mlb-streaks-service/internal/domain/games"
)

// BuildSequence orders a team's results by date, then game number, keeping input order for
// anything still tied. The input slice is not modified. Empty input yields an empty sequence.
func BuildSequence(results []games.Result) games.Sequence {
	ordered := make([]games.Result, len(results))
	copy(ordered, results)
	sort.SliceStable(ordered, func(i, j int) bool {
		a, b := ordered[i], ordered[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		return a.GameNumber < b.GameNumber
	})

	seq := make(games.Sequence, 0, len(ordered))
	for _, r := range ordered {
		seq = append(seq, games.Entry{Date: r.Date, Outcome: r.Outcome()})
	}
	return seq
}
