package report

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"text/tabwriter"

	domainstreaks "github.com/preston-bernstein/mlb-streaks-service/internal/domain/streaks"
	"github.com/preston-bernstein/mlb-streaks-service/internal/domain/teams"
	"github.com/preston-bernstein/mlb-streaks-service/internal/timeutil"
)

// Console prints per-team progress as teams finish and the ranked table at the end.
type Console struct {
	mu  sync.Mutex
	out io.Writer
}

// NewConsole writes to out, or stdout when out is nil.
func NewConsole(out io.Writer) *Console {
	if out == nil {
		out = os.Stdout
	}
	return &Console{out: out}
}

// Name identifies the sink in logs.
func (c *Console) Name() string {
	return "console"
}

// Progress prints one team's outcome. It matches the aggregator's progress callback.
func (c *Console) Progress(team teams.Team, found []domainstreaks.Streak, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		fmt.Fprintf(c.out, "%s: failed: %v\n", team.Name, err)
		return
	}
	fmt.Fprintf(c.out, "%s: %d streaks\n", team.Name, len(found))
	for _, s := range found {
		fmt.Fprintf(c.out, "  %s %d (%s to %s)\n", s.Type, s.Length, timeutil.FormatDate(s.Start), timeutil.FormatDate(s.End))
	}
}

// Write prints the ranked table and any failed teams.
func (c *Console) Write(ctx context.Context, rep Report) error {
	_ = ctx
	c.mu.Lock()
	defer c.mu.Unlock()

	fmt.Fprintf(c.out, "\nSeason %d streaks of %d+ games (%s..%s)\n", rep.Season, rep.Threshold, rep.StartDate, rep.EndDate)
	tw := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tTeam\tType\tLength\tStart\tEnd")
	for i, s := range rep.Streaks {
		row := s.Row()
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n", i+1, row[0], row[1], row[2], row[3], row[4])
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if len(rep.Failures) > 0 {
		fmt.Fprintf(c.out, "\n%d teams failed:\n", len(rep.Failures))
		for _, f := range rep.Failures {
			fmt.Fprintf(c.out, "  %s (%s): %s\n", f.Team, f.TeamID, f.Error)
		}
	}
	if rep.Partial {
		fmt.Fprintln(c.out, "\nrun interrupted; results are partial")
	}
	return nil
}
