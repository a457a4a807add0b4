package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rustyeddy/traderater/journal"
	"github.com/rustyeddy/traderater/scoring"
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Score a trade setup and save it to the journal",
	Long: `Score a setup like "score" does and append it to the journal.

Every call appends a new row, even for a setup that was saved before.
The setup is saved whatever the verdict.

Examples:
  traderater add -f setup.yaml
  traderater add -f setup.yaml --date 2025-03-14 --comment "clean retest"
  traderater add -f setup.yaml --taken yes
  traderater add -f setup.yaml --taken yes --result win`,
	Args: cobra.NoArgs,
	RunE: runAdd,
}

var (
	addSetup  setupFlags
	addTaken  string
	addResult string
)

func init() {
	rootCmd.AddCommand(addCmd)
	addSetup.register(addCmd)
	addCmd.Flags().StringVar(&addTaken, "taken", "", "mark the trade as taken: yes or no")
	addCmd.Flags().StringVar(&addResult, "result", "", "trade result: win, loss, be or nottaken")
}

func runAdd(cmd *cobra.Command, args []string) error {
	setup, err := addSetup.load(cmd)
	if err != nil {
		return err
	}
	taken, err := journal.ParseTaken(addTaken)
	if err != nil {
		return err
	}
	result, err := journal.ParseResult(addResult)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	cfg, l, log, done, err := openJournal(ctx)
	if err != nil {
		return err
	}
	defer done()

	policy, err := cfg.Policy()
	if err != nil {
		return err
	}
	res, err := scoring.NewEngine(policy).Compute(setup.Answers)
	if err != nil {
		return fmt.Errorf("score: %w", err)
	}

	now := time.Now()
	date, err := setup.tradeDate(now)
	if err != nil {
		return err
	}

	rec := journal.TradeRecord{
		SubmittedAt:  now,
		TradeDate:    date,
		Instrument:   strings.TrimSpace(setup.Instrument),
		Direction:    setup.Direction,
		Timeframe:    setup.Timeframe,
		Session:      setup.Session,
		RiskReward:   journal.Float(setup.RiskReward),
		ScorePercent: journal.Float(res.Score),
		Comment:      setup.Comment,
		Taken:        taken,
		Result:       result,
	}
	row, err := l.Append(ctx, rec)
	if err != nil {
		return fmt.Errorf("save trade: %w", err)
	}
	log.Info("trade saved",
		zap.Int64("row", int64(row)),
		zap.String("pair", rec.Instrument),
		zap.Float64("score", res.Score),
		zap.Bool("accepted", res.Accepted))

	out := cmd.OutOrStdout()
	printScore(out, res)
	fmt.Fprintln(out)
	fmt.Fprintf(out, "✓ Saved to %s journal as row %d\n", cfg.Journal.Type, row)
	return nil
}
