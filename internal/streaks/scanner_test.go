package streaks

import (
	"reflect"
	"testing"

	"github.com/preston-bernstein/mlb-streaks-service/internal/domain/games"
	domainstreaks "github.com/preston-bernstein/mlb-streaks-service/internal/domain/streaks"
)

func TestScanScenarios(t *testing.T) {
	cases := []struct {
		name    string
		pattern string
		want    []domainstreaks.Streak
	}{
		{
			name:    "six straight wins",
			pattern: "WWWWWW",
			want:    []domainstreaks.Streak{{Team: teamA, Type: domainstreaks.TypeWin, Length: 6, Start: day(0), End: day(5)}},
		},
		{
			name:    "loss run between short win runs",
			pattern: "WWLLLLLW",
			want:    []domainstreaks.Streak{{Team: teamA, Type: domainstreaks.TypeLoss, Length: 5, Start: day(2), End: day(6)}},
		},
		{
			name:    "alternating",
			pattern: "WLWL",
			want:    nil,
		},
		{
			name:    "two qualifying runs",
			pattern: "LLLLLWWWWWW",
			want: []domainstreaks.Streak{
				{Team: teamA, Type: domainstreaks.TypeLoss, Length: 5, Start: day(0), End: day(4)},
				{Team: teamA, Type: domainstreaks.TypeWin, Length: 6, Start: day(5), End: day(10)},
			},
		},
		{
			name:    "short identical run",
			pattern: "WWWW",
			want:    nil,
		},
		{
			name:    "empty",
			pattern: "",
			want:    nil,
		},
	}

	for _, tc := range cases {
		got := Scan(teamA, seqFrom(tc.pattern), 5)
		if !reflect.DeepEqual(got, tc.want) {
			t.Fatalf("%s: expected %+v, got %+v", tc.name, tc.want, got)
		}
	}
}

func TestScanThresholdIsAParameter(t *testing.T) {
	got := Scan(teamA, seqFrom("WWLW"), 2)
	if len(got) != 1 || got[0].Length != 2 || got[0].Type != domainstreaks.TypeWin {
		t.Fatalf("unexpected streaks %+v", got)
	}

	every := Scan(teamA, seqFrom("WLW"), 1)
	if len(every) != 3 {
		t.Fatalf("expected every game to be its own streak, got %d", len(every))
	}
	if clamped := Scan(teamA, seqFrom("WLW"), 0); !reflect.DeepEqual(clamped, every) {
		t.Fatalf("expected threshold below 1 to behave like 1, got %+v", clamped)
	}
}

func TestNormalizeThreshold(t *testing.T) {
	cases := map[int]int{0: DefaultThreshold, -3: 1, 1: 1, 8: 8}
	for in, want := range cases {
		if got := NormalizeThreshold(in); got != want {
			t.Fatalf("NormalizeThreshold(%d) = %d, want %d", in, got, want)
		}
	}
}

func TestScanDoubleheaderOrderedByGameNumber(t *testing.T) {
	results := resultsFrom("WWWW")
	results = append(results,
		games.Result{Date: day(4), GameNumber: 2, Won: true},
		games.Result{Date: day(4), GameNumber: 1, Won: false},
	)
	for i := 5; i <= 8; i++ {
		results = append(results, games.Result{Date: day(i), GameNumber: 1, Won: true})
	}

	got := Scan(teamA, BuildSequence(results), 5)
	want := []domainstreaks.Streak{{Team: teamA, Type: domainstreaks.TypeWin, Length: 5, Start: day(4), End: day(8)}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected the nightcap to open the streak, got %+v", got)
	}
}

func TestScanProperties(t *testing.T) {
	for _, pattern := range lcgPatterns(200, 60) {
		seq := seqFrom(pattern)
		for threshold := 1; threshold <= 8; threshold++ {
			found := Scan(teamA, seq, threshold)

			// every game is accounted for exactly once
			total := 0
			for _, run := range runLengths(seq) {
				total += run
			}
			emitted, dropped := 0, 0
			for _, run := range runLengths(seq) {
				if run >= threshold {
					emitted += run
				} else {
					dropped += run
				}
			}
			sum := 0
			for _, s := range found {
				if s.Length < threshold {
					t.Fatalf("%q t=%d: streak shorter than threshold %+v", pattern, threshold, s)
				}
				if s.End.Before(s.Start) {
					t.Fatalf("%q: end before start %+v", pattern, s)
				}
				sum += s.Length
			}
			if sum != emitted || sum+dropped != total || total != seq.Len() {
				t.Fatalf("%q t=%d: accounting mismatch sum=%d dropped=%d len=%d", pattern, threshold, sum, dropped, seq.Len())
			}

			// chronological and non-overlapping
			for i := 1; i < len(found); i++ {
				if !found[i].Start.After(found[i-1].End) {
					t.Fatalf("%q: overlapping streaks %+v %+v", pattern, found[i-1], found[i])
				}
			}

			// idempotent
			if again := Scan(teamA, seq, threshold); !reflect.DeepEqual(again, found) {
				t.Fatalf("%q: scan not idempotent", pattern)
			}

			// raising the threshold only removes streaks
			higher := Scan(teamA, seq, threshold+1)
			if len(higher) > len(found) {
				t.Fatalf("%q: higher threshold emitted more streaks", pattern)
			}
			for _, h := range higher {
				if !containsStreak(found, h) {
					t.Fatalf("%q: streak %+v changed when threshold rose", pattern, h)
				}
			}
		}
	}
}

func containsStreak(items []domainstreaks.Streak, want domainstreaks.Streak) bool {
	for _, s := range items {
		if reflect.DeepEqual(s, want) {
			return true
		}
	}
	return false
}
