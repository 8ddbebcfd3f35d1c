package analysis

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Render writes a as plain text.
func Render(w io.Writer, a Analysis) error {
	p := &printer{w: w}
	cur := a.CurrentSeason

	p.line("Yearly streak counts:")
	p.line("  Seasons with the most total streaks (win or loss) at or above each length, plus the current %d tally for context.", cur)
	for i, sec := range a.Yearly {
		if i > 0 {
			p.line("")
		}
		p.line("%d+ win/loss streaks:", sec.Threshold)
		p.line("")
		if !sec.HasData {
			p.line("* Record: No data available")
			p.line("* %d: No data", cur)
			continue
		}
		p.line("* Record: %s (%d streaks)", joinInts(sec.RecordSeasons), sec.RecordCount)
		if sec.Current == nil {
			p.line("* %d: No data", cur)
			continue
		}
		p.line("* %d: %d streaks%s", cur, sec.Current.Count, annotate(sec.Current.Annotation))
		p.chart("  Distribution:", "    ", sec.Current.Chart)
	}

	if a.NoTeamData {
		p.line("")
		base := 0
		if len(a.Thresholds) > 0 {
			base = a.Thresholds[0]
		}
		p.line("No team streak data available for %d+ game analysis.", base)
		return p.err
	}

	p.line("")
	p.line("Highest percentage of season's games in long streaks:")
	p.line("  Highlights the team-seasons that spent the largest share of their schedule inside long streaks (win or loss).")
	for _, sec := range a.Share {
		if !sec.HasData {
			p.line("  %d+: No data available", sec.Threshold)
			continue
		}
		b := sec.Best
		p.line("  %d+: %s in %d: %d of %d games (%.1f%%)", sec.Threshold, b.Team, b.Season, b.Games, b.SeasonGames, b.Percent)
		if sec.Current == nil {
			p.line("    %d: No data", cur)
			continue
		}
		c := sec.Current
		p.line("    %d leader: %s with %d of %d games (%.1f%%)%s", cur, c.Team, c.Games, c.SeasonGames, c.Percent, annotate(c.Annotation))
		p.chart("    Distribution:", "      ", c.Chart)
	}

	p.line("")
	p.line("Balanced win/loss streak counts:")
	p.line("  Shows which team-seasons logged the most matched win AND loss streaks of each length; ties note how many team-seasons share the record.")
	for _, sec := range a.Balanced {
		if !sec.HasData {
			p.line("  %d+: No eligible win/loss pairs", sec.Threshold)
			continue
		}
		if sec.Leader == nil {
			p.line("  %d+: No team recorded both win and loss streaks", sec.Threshold)
			continue
		}
		tie := ""
		if sec.Tied > 1 {
			tie = fmt.Sprintf(" [tied %d seasons]", sec.Tied)
		}
		l := sec.Leader
		p.line("  %d+: %s in %d (wins=%d, losses=%d) with %d matched streaks%s", sec.Threshold, l.Team, l.Season, l.Win, l.Loss, sec.Pairs, tie)
		if sec.Current == nil {
			p.line("    %d: No matched win/loss streaks", cur)
			continue
		}
		c := sec.Current
		p.line("    %d: %s in %d with %d matched streaks (wins=%d, losses=%d)%s", cur, c.Team, c.Season, c.Pairs, c.Win, c.Loss, annotate(c.Annotation))
		p.chart("    Distribution:", "      ", c.Chart)
	}

	p.line("")
	p.line("Win streak dominance across thresholds:")
	p.line("  Identifies the teams with the most win streaks at each length and highlights the current season leaders.")
	for _, sec := range a.WinLeaders {
		if !sec.HasData {
			p.line("  %d+: No data available", sec.Threshold)
			continue
		}
		if sec.MaxWins == 0 {
			p.line("  %d+: No win streaks recorded", sec.Threshold)
			p.line("    %d: No win streaks recorded", cur)
			continue
		}
		leaders := make([]string, 0, len(sec.Leaders))
		for _, l := range sec.Leaders {
			leaders = append(leaders, fmt.Sprintf("%s in %d", l.Team, l.Season))
		}
		p.line("  %d+: %s (%d win streaks)", sec.Threshold, strings.Join(leaders, ", "), sec.MaxWins)
		if sec.Current == nil {
			p.line("    %d: No win streaks recorded", cur)
			continue
		}
		c := sec.Current
		p.line("    %d: %s (%d win streaks)%s", cur, strings.Join(c.Teams, ", "), c.Wins, annotate(c.Annotation))
		p.chart("    Distribution:", "      ", c.Chart)
	}

	for _, sec := range a.Asymmetry {
		p.line("")
		p.line("Asymmetry in %d+ game streaks:", sec.Threshold)
		p.line("  Measures how lopsided seasons were between long win and loss streaks, including the most skewed %d results.", cur)
		if !sec.HasData {
			p.line("  No streak data available")
			continue
		}
		if w := sec.WinHeavy; w != nil {
			p.line("  Biggest win-heavy season: %s in %d (wins=%d, losses=%d, diff=+%d)", w.Team, w.Season, w.Win, w.Loss, w.Diff())
		} else {
			p.line("  No seasons skewed toward win streaks")
		}
		if l := sec.LossHeavy; l != nil {
			p.line("  Biggest loss-heavy season: %s in %d (wins=%d, losses=%d, diff=%d)", l.Team, l.Season, l.Win, l.Loss, l.Diff())
		} else {
			p.line("  No seasons skewed toward loss streaks")
		}
		if c := sec.CurrentWinHeavy; c != nil {
			p.line("  %d win-heavy: %s (wins=%d, losses=%d, diff=+%d)%s", cur, c.Team, c.Win, c.Loss, c.Diff(), annotate(c.Annotation))
			p.chart("  Distribution (win-heavy):", "    ", c.Chart)
		} else {
			p.line("  %d win-heavy: None", cur)
		}
		if c := sec.CurrentLossHeavy; c != nil {
			p.line("  %d loss-heavy: %s (wins=%d, losses=%d, diff=%d)%s", cur, c.Team, c.Win, c.Loss, c.Diff(), annotate(c.Annotation))
			p.chart("  Distribution (loss-heavy):", "    ", c.Chart)
		} else {
			p.line("  %d loss-heavy: None", cur)
		}
	}
	return p.err
}

// printer keeps the first write error so Render can stay linear.
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) line(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format+"\n", args...)
}

func (p *printer) chart(title, indent string, lines []string) {
	if len(lines) == 0 {
		return
	}
	p.line("%s", title)
	for _, l := range lines {
		p.line("%s%s", indent, l)
	}
}

func annotate(a string) string {
	if a == "" {
		return ""
	}
	return ", " + a
}

func joinInts(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ", ")
}
