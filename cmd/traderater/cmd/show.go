package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/traderater/journal"
)

var showCmd = &cobra.Command{
	Use:   "show <row>",
	Short: "Print one journaled trade as an Org entry",
	Long: `Print the trade stored at the given row with all of its fields.

Examples:
  traderater show 12
  traderater -j sqlite show 3`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		row, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("row %q: %w", args[0], err)
		}

		ctx := cmd.Context()
		_, l, _, done, err := openJournal(ctx)
		if err != nil {
			return err
		}
		defer done()

		rec, err := journal.Find(ctx, l, journal.RowID(row))
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), journal.FormatTradeOrg(rec))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}
