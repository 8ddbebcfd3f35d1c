package streaks

import (
	"time"

	"github.com/preston-bernstein/mlb-streaks-service/internal/domain/games"
	"github.com/preston-bernstein/mlb-streaks-service/internal/domain/teams"
)

var (
	seasonStart = time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
	teamA       = teams.Team{ID: "1", Name: "Team A"}
	teamB       = teams.Team{ID: "2", Name: "Team B"}
)

func day(n int) time.Time {
	return seasonStart.AddDate(0, 0, n)
}

// resultsFrom turns a W/L pattern into one result per day starting at seasonStart.
func resultsFrom(pattern string) []games.Result {
	out := make([]games.Result, 0, len(pattern))
	for i, c := range pattern {
		out = append(out, games.Result{Date: day(i), GameNumber: 1, Won: c == 'W'})
	}
	return out
}

func seqFrom(pattern string) games.Sequence {
	return BuildSequence(resultsFrom(pattern))
}

// runLengths splits a sequence into its maximal runs.
func runLengths(seq games.Sequence) []int {
	var runs []int
	for i, e := range seq {
		if i == 0 || e.Outcome != seq[i-1].Outcome {
			runs = append(runs, 1)
			continue
		}
		runs[len(runs)-1]++
	}
	return runs
}

// lcgPatterns returns deterministic pseudo-random W/L patterns.
func lcgPatterns(count, maxLen int) []string {
	state := uint32(42)
	next := func() uint32 {
		state = state*1664525 + 1013904223
		return state >> 16
	}
	out := make([]string, 0, count)
	for i := 0; i < count; i++ {
		n := int(next()) % (maxLen + 1)
		b := make([]byte, n)
		for j := range b {
			// bias toward repeats to get long runs
			if j > 0 && next()%4 != 0 {
				b[j] = b[j-1]
				continue
			}
			if next()%2 == 0 {
				b[j] = 'W'
			} else {
				b[j] = 'L'
			}
		}
		out = append(out, string(b))
	}
	return out
}
