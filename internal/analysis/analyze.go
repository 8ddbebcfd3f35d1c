package analysis

import (
	"sort"
	"strconv"
)

const topN = 10

// Options tunes Analyze. A zero CurrentSeason selects the latest season in the dataset.
type Options struct {
	CurrentSeason int
}

// Analysis is the computed result of every section, ready to render.
type Analysis struct {
	CurrentSeason int
	Thresholds    []int
	Yearly        []YearlySection
	// NoTeamData is set when the base threshold has no team-season totals; the remaining
	// sections are left empty.
	NoTeamData bool
	Share      []ShareSection
	Balanced   []BalancedSection
	WinLeaders []WinLeaderSection
	Asymmetry  []AsymmetrySection
}

// Context places the current season's value against all of history.
type Context struct {
	Annotation string
	Chart      []string
}

// YearlySection counts streaks per season at one threshold.
type YearlySection struct {
	Threshold     int
	HasData       bool
	RecordCount   int
	RecordSeasons []int
	Current       *YearlyCurrent
}

// YearlyCurrent is the current season's tally.
type YearlyCurrent struct {
	Count int
	Context
}

// TeamShare is the share of a team-season's schedule spent inside long streaks.
type TeamShare struct {
	TeamSeason
	Games       int
	SeasonGames int
	Percent     float64
}

// ShareSection reports the highest share at one threshold.
type ShareSection struct {
	Threshold int
	HasData   bool
	Best      TeamShare
	Current   *ShareCurrent
}

// ShareCurrent is the current season's leader.
type ShareCurrent struct {
	TeamShare
	Context
}

// TeamCounts pairs a team-season with its win and loss streak counts.
type TeamCounts struct {
	TeamSeason
	WinLoss

	seen int
}

// BalancedSection reports the most matched win and loss streaks at one threshold.
type BalancedSection struct {
	Threshold int
	HasData   bool
	// Leader is nil when no team-season has both kinds of streak.
	Leader  *TeamCounts
	Pairs   int
	Tied    int
	Current *BalancedCurrent
}

// BalancedCurrent is the current season's most balanced team.
type BalancedCurrent struct {
	TeamCounts
	Pairs int
	Context
}

// WinLeaderSection reports the team-seasons with the most win streaks at one threshold.
type WinLeaderSection struct {
	Threshold int
	HasData   bool
	MaxWins   int
	Leaders   []TeamSeason
	Current   *WinLeaderCurrent
}

// WinLeaderCurrent lists the current season's leaders.
type WinLeaderCurrent struct {
	Teams []string
	Wins  int
	Context
}

// AsymmetrySection reports the most lopsided team-seasons at one threshold.
type AsymmetrySection struct {
	Threshold        int
	HasData          bool
	WinHeavy         *TeamCounts
	LossHeavy        *TeamCounts
	CurrentWinHeavy  *SkewCurrent
	CurrentLossHeavy *SkewCurrent
}

// SkewCurrent is a current-season asymmetry leader.
type SkewCurrent struct {
	TeamCounts
	Context
}

// Analyze computes every report section from d.
func Analyze(d *Dataset, opts Options) Analysis {
	current := opts.CurrentSeason
	if current == 0 {
		if seasons := d.Seasons(); len(seasons) > 0 {
			current = seasons[len(seasons)-1]
		}
	}
	a := Analysis{CurrentSeason: current, Thresholds: d.Thresholds()}

	for _, t := range d.thresholds {
		a.Yearly = append(a.Yearly, yearlySection(t, d.yearCounts[t], current))
	}

	if len(d.thresholds) == 0 || len(d.streakGames[d.thresholds[0]]) == 0 {
		a.NoTeamData = true
		return a
	}

	for _, t := range d.thresholds {
		a.Share = append(a.Share, shareSection(t, d.streakGames[t], current))
	}
	for _, t := range d.thresholds {
		a.Balanced = append(a.Balanced, balancedSection(t, sortedCounts(d.winLoss[t], d.firstSeen[t]), current))
	}
	for _, t := range d.thresholds {
		a.WinLeaders = append(a.WinLeaders, winLeaderSection(t, sortedCounts(d.winLoss[t], d.firstSeen[t]), current))
	}
	for _, t := range d.thresholds {
		a.Asymmetry = append(a.Asymmetry, asymmetrySection(t, sortedCounts(d.winLoss[t], d.firstSeen[t]), current))
	}
	return a
}

func yearlySection(threshold int, counts map[int]int, current int) YearlySection {
	sec := YearlySection{Threshold: threshold}
	if len(counts) == 0 {
		return sec
	}
	sec.HasData = true

	values := make([]float64, 0, len(counts))
	for season, c := range counts {
		values = append(values, float64(c))
		switch {
		case c > sec.RecordCount:
			sec.RecordCount = c
			sec.RecordSeasons = []int{season}
		case c == sec.RecordCount:
			sec.RecordSeasons = append(sec.RecordSeasons, season)
		}
	}
	sort.Ints(sec.RecordSeasons)

	if c, ok := counts[current]; ok {
		sec.Current = &YearlyCurrent{
			Count:   c,
			Context: contextFor(float64(c), values, seasonLabel(current), false),
		}
	}
	return sec
}

func shareSection(threshold int, totals map[TeamSeason]int, current int) ShareSection {
	sec := ShareSection{Threshold: threshold}
	if len(totals) == 0 {
		return sec
	}
	sec.HasData = true

	values := make([]float64, 0, len(totals))
	first := true
	var best TeamShare
	for key, games := range totals {
		share := newTeamShare(key, games)
		values = append(values, share.Percent)
		if first || shareBetter(share, best) {
			best = share
			first = false
		}
	}
	sec.Best = best

	found := false
	var lead TeamShare
	for key, games := range totals {
		if key.Season != current {
			continue
		}
		if !found || games > lead.Games || (games == lead.Games && key.Team > lead.Team) {
			lead = newTeamShare(key, games)
			found = true
		}
	}
	if found {
		sec.Current = &ShareCurrent{
			TeamShare: lead,
			Context:   contextFor(lead.Percent, values, seasonLabel(current)+" %", false),
		}
	}
	return sec
}

func newTeamShare(key TeamSeason, games int) TeamShare {
	seasonGames := GamesInSeason(key.Season)
	return TeamShare{
		TeamSeason:  key,
		Games:       games,
		SeasonGames: seasonGames,
		Percent:     float64(games) / float64(seasonGames) * 100,
	}
}

// shareBetter orders by share, then later season, then team name, highest wins.
func shareBetter(a, b TeamShare) bool {
	ra := float64(a.Games) / float64(a.SeasonGames)
	rb := float64(b.Games) / float64(b.SeasonGames)
	if ra != rb {
		return ra > rb
	}
	if a.Season != b.Season {
		return a.Season > b.Season
	}
	return a.Team > b.Team
}

func balancedSection(threshold int, counts []TeamCounts, current int) BalancedSection {
	sec := BalancedSection{Threshold: threshold}
	if len(counts) == 0 {
		return sec
	}
	sec.HasData = true

	values := make([]float64, 0, len(counts))
	var leaders []TeamCounts
	for _, c := range counts {
		p := c.Pairs()
		values = append(values, float64(p))
		switch {
		case p > sec.Pairs:
			sec.Pairs = p
			leaders = []TeamCounts{c}
		case p == sec.Pairs && p > 0:
			leaders = append(leaders, c)
		}
	}
	if sec.Pairs > 0 {
		sortTeamCounts(leaders)
		lead := leaders[0]
		sec.Leader = &lead
		sec.Tied = len(leaders)
	}

	// Ties for the current season go to the team listed first in the season file.
	var best *TeamCounts
	for i := range counts {
		c := counts[i]
		if c.Season != current || c.Pairs() == 0 {
			continue
		}
		if best == nil || c.Pairs() > best.Pairs() || (c.Pairs() == best.Pairs() && c.seen < best.seen) {
			best = &c
		}
	}
	if best != nil {
		sec.Current = &BalancedCurrent{
			TeamCounts: *best,
			Pairs:      best.Pairs(),
			Context:    contextFor(float64(best.Pairs()), values, seasonLabel(current), true),
		}
	}
	return sec
}

func winLeaderSection(threshold int, counts []TeamCounts, current int) WinLeaderSection {
	sec := WinLeaderSection{Threshold: threshold}
	if len(counts) == 0 {
		return sec
	}
	sec.HasData = true

	values := make([]float64, 0, len(counts))
	for _, c := range counts {
		values = append(values, float64(c.Win))
		switch {
		case c.Win > sec.MaxWins:
			sec.MaxWins = c.Win
			sec.Leaders = []TeamSeason{c.TeamSeason}
		case c.Win == sec.MaxWins && c.Win > 0:
			sec.Leaders = append(sec.Leaders, c.TeamSeason)
		}
	}
	if sec.MaxWins == 0 {
		sec.Leaders = nil
		return sec
	}

	wins := 0
	var teams []string
	for _, c := range counts {
		if c.Season != current {
			continue
		}
		switch {
		case c.Win > wins:
			wins = c.Win
			teams = []string{c.Team}
		case c.Win == wins && c.Win > 0:
			teams = append(teams, c.Team)
		}
	}
	if wins > 0 {
		sort.Strings(teams)
		sec.Current = &WinLeaderCurrent{
			Teams:   teams,
			Wins:    wins,
			Context: contextFor(float64(wins), values, seasonLabel(current), true),
		}
	}
	return sec
}

func asymmetrySection(threshold int, counts []TeamCounts, current int) AsymmetrySection {
	sec := AsymmetrySection{Threshold: threshold}
	if len(counts) == 0 {
		return sec
	}
	sec.HasData = true

	var positive, negative []float64
	var curWin, curLoss *TeamCounts
	for i := range counts {
		c := counts[i]
		switch d := c.Diff(); {
		case d > 0:
			positive = append(positive, float64(d))
			if sec.WinHeavy == nil || winHeavier(c, *sec.WinHeavy, true) {
				sec.WinHeavy = &c
			}
			if c.Season == current && (curWin == nil || winHeavier(c, *curWin, false)) {
				curWin = &c
			}
		case d < 0:
			negative = append(negative, float64(-d))
			if sec.LossHeavy == nil || lossHeavier(c, *sec.LossHeavy, true) {
				sec.LossHeavy = &c
			}
			if c.Season == current && (curLoss == nil || lossHeavier(c, *curLoss, false)) {
				curLoss = &c
			}
		}
	}

	label := seasonLabel(current)
	if curWin != nil {
		sec.CurrentWinHeavy = &SkewCurrent{
			TeamCounts: *curWin,
			Context:    contextFor(float64(curWin.Diff()), positive, label+" diff", true),
		}
	}
	if curLoss != nil {
		sec.CurrentLossHeavy = &SkewCurrent{
			TeamCounts: *curLoss,
			Context:    contextFor(float64(-curLoss.Diff()), negative, label+" |diff|", true),
		}
	}
	return sec
}

// winHeavier ranks by larger diff, then more streaks, then later season, then team name.
func winHeavier(a, b TeamCounts, bySeason bool) bool {
	if a.Diff() != b.Diff() {
		return a.Diff() > b.Diff()
	}
	if a.Total() != b.Total() {
		return a.Total() > b.Total()
	}
	if bySeason && a.Season != b.Season {
		return a.Season > b.Season
	}
	return a.Team > b.Team
}

// lossHeavier ranks by more negative diff, then more streaks, then earlier season, then
// team name ascending.
func lossHeavier(a, b TeamCounts, bySeason bool) bool {
	if a.Diff() != b.Diff() {
		return a.Diff() < b.Diff()
	}
	if a.Total() != b.Total() {
		return a.Total() > b.Total()
	}
	if bySeason && a.Season != b.Season {
		return a.Season < b.Season
	}
	return a.Team < b.Team
}

func contextFor(value float64, values []float64, label string, discrete bool) Context {
	annotation, _ := TopRankAnnotation(value, values, true, topN)
	pct, ok := PercentileRank(value, values)
	hl := &Highlight{Value: value, Label: label, Percentile: pct, HasPercentile: ok}
	return Context{
		Annotation: annotation,
		Chart:      DistributionChart(values, hl, ChartOptions{PreferDiscrete: discrete}),
	}
}

// sortedCounts flattens a win/loss map ordered by season then team.
func sortedCounts(m map[TeamSeason]WinLoss, seen map[TeamSeason]int) []TeamCounts {
	out := make([]TeamCounts, 0, len(m))
	for k, v := range m {
		out = append(out, TeamCounts{TeamSeason: k, WinLoss: v, seen: seen[k]})
	}
	sortTeamCounts(out)
	return out
}

func sortTeamCounts(items []TeamCounts) {
	sort.Slice(items, func(i, j int) bool {
		if items[i].Season != items[j].Season {
			return items[i].Season < items[j].Season
		}
		return items[i].Team < items[j].Team
	})
}

func seasonLabel(season int) string {
	return strconv.Itoa(season)
}
