package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/traderater/weekly"
)

var weeksCmd = &cobra.Command{
	Use:   "weeks",
	Short: "List the ISO weeks that have trades",
	Args:  cobra.NoArgs,
	RunE:  runWeeks,
}

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show the weekly dashboard",
	Long: `Rank the trades of one ISO week by score and summarise them: score
distribution, score statistics, and win rates of the taken trades by pair,
direction and session.

Without --week the current week is shown if it has trades, otherwise the
most recent week that does.

Examples:
  traderater dashboard
  traderater dashboard --week 2025-W1
  traderater dashboard --format org -o week.org`,
	Args: cobra.NoArgs,
	RunE: runDashboard,
}

var (
	dashboardWeek   string
	dashboardFormat string
	dashboardOutput string
)

func init() {
	rootCmd.AddCommand(weeksCmd)
	rootCmd.AddCommand(dashboardCmd)

	dashboardCmd.Flags().StringVarP(&dashboardWeek, "week", "w", "", "ISO week, e.g. 2025-W1")
	dashboardCmd.Flags().StringVar(&dashboardFormat, "format", "text", "output format: text or org")
	dashboardCmd.Flags().StringVarP(&dashboardOutput, "output", "o", "", "write to file instead of stdout")
}

func runWeeks(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	_, l, _, done, err := openJournal(ctx)
	if err != nil {
		return err
	}
	defer done()

	recs, err := l.LoadAll(ctx)
	if err != nil {
		return fmt.Errorf("load trades: %w", err)
	}

	out := cmd.OutOrStdout()
	buckets := weekly.Buckets(recs)
	if len(buckets) == 0 {
		fmt.Fprintln(out, "No trades recorded yet.")
		return nil
	}
	def, _ := weekly.DefaultWeek(buckets, time.Now())
	for _, w := range buckets {
		mark := " "
		if w == def {
			mark = "*"
		}
		fmt.Fprintf(out, "%s %-9s %3d trade(s)\n", mark, w, len(weekly.Filter(recs, w)))
	}
	return nil
}

func runDashboard(cmd *cobra.Command, args []string) error {
	if dashboardFormat != "text" && dashboardFormat != "org" {
		return fmt.Errorf("unknown format %q (want text or org)", dashboardFormat)
	}

	ctx := cmd.Context()
	_, l, _, done, err := openJournal(ctx)
	if err != nil {
		return err
	}
	defer done()

	recs, err := l.LoadAll(ctx)
	if err != nil {
		return fmt.Errorf("load trades: %w", err)
	}

	var week weekly.Week
	if dashboardWeek != "" {
		if week, err = weekly.ParseWeek(dashboardWeek); err != nil {
			return err
		}
	} else {
		var ok bool
		week, ok = weekly.DefaultWeek(weekly.Buckets(recs), time.Now())
		if !ok {
			fmt.Fprintln(cmd.OutOrStdout(), "No trades recorded yet.")
			return nil
		}
	}

	report := weekly.Build(recs, week)

	out := cmd.OutOrStdout()
	if dashboardOutput != "" {
		f, err := os.Create(dashboardOutput)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer f.Close()
		out = f
	}

	if dashboardFormat == "org" {
		if err := weekly.WriteOrg(out, report); err != nil {
			return fmt.Errorf("write org: %w", err)
		}
	} else {
		weekly.WriteText(out, report)
	}

	if dashboardOutput != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote %s dashboard for %s to %s\n", dashboardFormat, week, dashboardOutput)
	}
	return nil
}
