package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/traderater/scoring"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score a trade setup without saving it",
	Long: `Compute the quality score of a setup from an answers file and/or flags.

The score is printed with its notes and the accept/reject verdict of the
active policy. Nothing is written to the journal.

Examples:
  traderater score -f setup.yaml
  traderater score -f setup.yaml --rr 3.5 --session london
  traderater score -f setup.yaml --policy bonus_sliders --liquidity 8`,
	Args: cobra.NoArgs,
	RunE: runScore,
}

var scoreSetup setupFlags

func init() {
	rootCmd.AddCommand(scoreCmd)
	scoreSetup.register(scoreCmd)
}

func runScore(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	policy, err := cfg.Policy()
	if err != nil {
		return err
	}

	setup, err := scoreSetup.load(cmd)
	if err != nil {
		return err
	}

	res, err := scoring.NewEngine(policy).Compute(setup.Answers)
	if err != nil {
		return fmt.Errorf("score: %w", err)
	}

	printScore(cmd.OutOrStdout(), res)
	return nil
}

func printScore(w io.Writer, res scoring.Result) {
	fmt.Fprintf(w, "Score:         %.1f%%\n", res.Score)
	fmt.Fprintf(w, "Policy:        %s (accept at %.0f%%)\n", res.Policy, res.Threshold)
	fmt.Fprintf(w, "Verdict:       %s\n", res.Verdict())

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Notes")
	fmt.Fprintln(w, "--------------------------------------------------")
	for _, n := range res.Notes {
		fmt.Fprintf(w, "- %s\n", n)
	}
}
