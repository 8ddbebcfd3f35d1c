package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/preston-bernstein/mlb-streaks-service/internal/analysis"
	"github.com/preston-bernstein/mlb-streaks-service/internal/config"
)

func newAnalyzeCmd() *cobra.Command {
	var current int
	cmd := &cobra.Command{
		Use:   "analyze [dir]",
		Short: "Summarize historical streak CSVs",
		Long: `Read every mlb_streaks_<YYYY>.csv in a directory (default OUTPUT_DIR) and print
yearly counts, share of games in streaks, balanced teams, win leaders and
win/loss asymmetry, each with the current season placed in context.

Examples:
  streaks analyze data
  streaks analyze --current 2023 ./history`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := config.Load().Output.Dir
			if len(args) == 1 {
				dir = args[0]
			}
			d, err := analysis.LoadDir(dir, nil, nil)
			if err != nil {
				return err
			}
			if len(d.Seasons()) == 0 {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), "No CSV files found matching pattern 'mlb_streaks_*.csv'.")
				return err
			}
			return analysis.Render(cmd.OutOrStdout(), analysis.Analyze(d, analysis.Options{CurrentSeason: current}))
		},
	}
	cmd.Flags().IntVar(&current, "current", 0, "season to highlight (default latest season found)")
	return cmd
}
