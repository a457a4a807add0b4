package cmd

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/rustyeddy/traderater/journal"
)

var updateCmd = &cobra.Command{
	Use:   "update [row]",
	Short: "Record whether trades were taken and their result",
	Long: `Set the taken and result fields of journaled trades. Nothing else
about a trade can change; its score stays as it was saved.

A single row is patched from flags. Several rows are patched at once from
a YAML file holding a list of {row, taken, result}; either all of them are
applied or none.

The CSV journal has no taken/result columns and cannot be updated.

Examples:
  traderater update 12 --taken yes --result win
  traderater update 12 --result be
  traderater update -f week-results.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runUpdate,
}

var (
	updateTaken  string
	updateResult string
	updateFile   string
)

func init() {
	rootCmd.AddCommand(updateCmd)

	updateCmd.Flags().StringVar(&updateTaken, "taken", "", "yes or no")
	updateCmd.Flags().StringVar(&updateResult, "result", "", "win, loss, be or nottaken")
	updateCmd.Flags().StringVarP(&updateFile, "file", "f", "", "YAML list of patches")
}

// patchEntry is one item of an update file.
type patchEntry struct {
	Row    int64  `yaml:"row"`
	Taken  string `yaml:"taken"`
	Result string `yaml:"result"`
}

func (e patchEntry) patch() (journal.Patch, error) {
	p := journal.Patch{RowID: journal.RowID(e.Row)}
	if e.Taken != "" {
		t, err := journal.ParseTaken(e.Taken)
		if err != nil {
			return p, fmt.Errorf("row %d: %w", e.Row, err)
		}
		p.Taken = &t
	}
	if e.Result != "" {
		r, err := journal.ParseResult(e.Result)
		if err != nil {
			return p, fmt.Errorf("row %d: %w", e.Row, err)
		}
		p.Result = &r
	}
	if p.Taken == nil && p.Result == nil {
		return p, fmt.Errorf("row %d: nothing to update", e.Row)
	}
	return p, nil
}

func readPatches(cmd *cobra.Command, args []string) ([]journal.Patch, error) {
	var entries []patchEntry
	switch {
	case updateFile != "" && len(args) > 0:
		return nil, errors.New("give either a row or --file, not both")
	case updateFile != "":
		data, err := os.ReadFile(updateFile)
		if err != nil {
			return nil, fmt.Errorf("read patches: %w", err)
		}
		if err := yaml.Unmarshal(data, &entries); err != nil {
			return nil, fmt.Errorf("parse patches %s: %w", updateFile, err)
		}
	case len(args) == 1:
		row, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("row %q: %w", args[0], err)
		}
		entries = []patchEntry{{Row: row, Taken: updateTaken, Result: updateResult}}
	default:
		return nil, errors.New("give a row or --file")
	}

	patches := make([]journal.Patch, 0, len(entries))
	for _, e := range entries {
		p, err := e.patch()
		if err != nil {
			return nil, err
		}
		patches = append(patches, p)
	}
	return patches, nil
}

func runUpdate(cmd *cobra.Command, args []string) error {
	patches, err := readPatches(cmd, args)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	_, l, _, done, err := openJournal(ctx)
	if err != nil {
		return err
	}
	defer done()

	if err := l.UpdateFields(ctx, patches); err != nil {
		return fmt.Errorf("update: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Updated %d trade(s)\n", len(patches))
	return nil
}
