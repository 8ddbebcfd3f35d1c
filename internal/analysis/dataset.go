package analysis

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/preston-bernstein/mlb-streaks-service/internal/report"
)

const unknownTeam = "Unknown Team"

var seasonFile = regexp.MustCompile(`^mlb_streaks_(\d{4})\.csv$`)

// TeamSeason identifies one team's season.
type TeamSeason struct {
	Team   string
	Season int
}

// WinLoss counts win and loss streaks.
type WinLoss struct {
	Win  int
	Loss int
}

// Pairs is the number of matched win and loss streaks.
func (c WinLoss) Pairs() int {
	return min(c.Win, c.Loss)
}

// Diff is wins minus losses.
func (c WinLoss) Diff() int {
	return c.Win - c.Loss
}

// Total is wins plus losses.
func (c WinLoss) Total() int {
	return c.Win + c.Loss
}

// Dataset accumulates streak rows from many seasons, bucketed by threshold.
type Dataset struct {
	thresholds []int
	ignored    map[int]bool
	seasons    map[int]bool

	// yearCounts[threshold][season] counts every streak of at least threshold.
	yearCounts map[int]map[int]int
	// streakGames[threshold][team-season] sums the games spent in those streaks.
	streakGames map[int]map[TeamSeason]int
	// winLoss[threshold][team-season] counts WIN and LOSS streaks only.
	winLoss map[int]map[TeamSeason]WinLoss
	// firstSeen[threshold][team-season] records when the pair first entered winLoss.
	firstSeen map[int]map[TeamSeason]int
	seq       int
}

// NewDataset returns an empty dataset. Nil arguments use the defaults.
func NewDataset(thresholds []int, ignored map[int]bool) *Dataset {
	if len(thresholds) == 0 {
		thresholds = DefaultThresholds()
	}
	if ignored == nil {
		ignored = DefaultIgnoredSeasons()
	}
	d := &Dataset{
		thresholds:  append([]int(nil), thresholds...),
		ignored:     ignored,
		seasons:     make(map[int]bool),
		yearCounts:  make(map[int]map[int]int),
		streakGames: make(map[int]map[TeamSeason]int),
		winLoss:     make(map[int]map[TeamSeason]WinLoss),
		firstSeen:   make(map[int]map[TeamSeason]int),
	}
	for _, t := range d.thresholds {
		d.yearCounts[t] = make(map[int]int)
		d.streakGames[t] = make(map[TeamSeason]int)
		d.winLoss[t] = make(map[TeamSeason]WinLoss)
		d.firstSeen[t] = make(map[TeamSeason]int)
	}
	return d
}

// Add folds one season's rows into the dataset. Ignored seasons still count toward yearly
// totals but not toward team-season statistics; types other than WIN and LOSS only count
// toward totals.
func (d *Dataset) Add(season int, rows []report.Row) {
	d.seasons[season] = true
	teamStats := !d.ignored[season]

	for _, row := range rows {
		team := row.Team
		if team == "" {
			team = unknownTeam
		}
		key := TeamSeason{Team: team, Season: season}
		kind := strings.ToUpper(strings.TrimSpace(row.Type))

		for _, t := range d.thresholds {
			if row.Length < t {
				continue
			}
			d.yearCounts[t][season]++
			if !teamStats {
				continue
			}
			d.streakGames[t][key] += row.Length
			if kind == "WIN" || kind == "LOSS" {
				wl, ok := d.winLoss[t][key]
				if !ok {
					d.seq++
					d.firstSeen[t][key] = d.seq
				}
				if kind == "WIN" {
					wl.Win++
				} else {
					wl.Loss++
				}
				d.winLoss[t][key] = wl
			}
		}
	}
}

// Thresholds returns the thresholds the dataset buckets by.
func (d *Dataset) Thresholds() []int {
	return append([]int(nil), d.thresholds...)
}

// Seasons lists every season added, ascending.
func (d *Dataset) Seasons() []int {
	out := make([]int, 0, len(d.seasons))
	for s := range d.seasons {
		out = append(out, s)
	}
	sort.Ints(out)
	return out
}

// LoadDir reads every mlb_streaks_<YYYY>.csv file in dir.
func LoadDir(dir string, thresholds []int, ignored map[int]bool) (*Dataset, error) {
	files, err := findSeasonFiles(dir)
	if err != nil {
		return nil, err
	}
	d := NewDataset(thresholds, ignored)
	for _, f := range files {
		rows, err := readRows(f.path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", f.path, err)
		}
		d.Add(f.season, rows)
	}
	return d, nil
}

type seasonCSV struct {
	path   string
	season int
}

func findSeasonFiles(dir string) ([]seasonCSV, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "mlb_streaks_*.csv"))
	if err != nil {
		return nil, err
	}
	sort.Strings(matches)
	out := make([]seasonCSV, 0, len(matches))
	for _, m := range matches {
		sub := seasonFile.FindStringSubmatch(filepath.Base(m))
		if sub == nil {
			continue
		}
		season, _ := strconv.Atoi(sub[1])
		out = append(out, seasonCSV{path: m, season: season})
	}
	return out, nil
}

func readRows(path string) ([]report.Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return report.ReadCSV(f)
}
