package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rustyeddy/traderater/journal"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the journal to an xz archive or org file",
	Long: `Write every journaled trade to a file. The default format is an
xz-compressed CSV archive that import reads back into any backend, which
is how a journal moves between Sheets, CSV, SQLite and Postgres.

Examples:
  traderater export -o trades.csv.xz
  traderater export --format org -o trades.org
  traderater -j sqlite export -o backup.csv.xz`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

var importCmd = &cobra.Command{
	Use:   "import <archive>",
	Short: "Append the trades of an xz archive to the journal",
	Long: `Read an archive written by export and append every trade to the
configured journal. Row ids and trade ids are assigned by the target
journal; taken and result are kept where the backend stores them.

Examples:
  traderater -j postgres import trades.csv.xz`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

var (
	exportOutput string
	exportFormat string
)

func init() {
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)

	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file (required)")
	exportCmd.Flags().StringVar(&exportFormat, "format", "xz", "output format: xz or org")
	_ = exportCmd.MarkFlagRequired("output")
}

func runExport(cmd *cobra.Command, args []string) error {
	if exportFormat != "xz" && exportFormat != "org" {
		return fmt.Errorf("unknown format %q (want xz or org)", exportFormat)
	}

	ctx := cmd.Context()
	cfg, l, _, done, err := openJournal(ctx)
	if err != nil {
		return err
	}
	defer done()

	f, err := os.Create(exportOutput)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer f.Close()

	var n int
	if exportFormat == "org" {
		n, err = exportOrg(cmd, l, f)
	} else {
		n, err = journal.ExportArchive(ctx, l, f)
	}
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close output: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✓ Exported %d trade(s) from %s journal to %s\n", n, cfg.Journal.Type, exportOutput)
	return nil
}

func exportOrg(cmd *cobra.Command, l journal.Ledger, w io.Writer) (int, error) {
	recs, err := l.LoadAll(cmd.Context())
	if err != nil {
		return 0, err
	}
	if _, err := io.WriteString(w, journal.FormatTradesOrg(recs)); err != nil {
		return 0, err
	}
	return len(recs), nil
}

func runImport(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("open archive: %w", err)
	}
	defer f.Close()

	recs, err := journal.ReadArchive(f)
	if err != nil {
		return fmt.Errorf("read archive: %w", err)
	}

	ctx := cmd.Context()
	cfg, l, log, done, err := openJournal(ctx)
	if err != nil {
		return err
	}
	defer done()

	var skipped int
	for _, rec := range recs {
		rec.RowID = 0
		rec.TradeID = ""
		if _, err := l.Append(ctx, rec); err != nil {
			if errors.Is(err, journal.ErrInvalidRecord) {
				log.Warn("skipping invalid trade", zap.Error(err))
				skipped++
				continue
			}
			return fmt.Errorf("import: %w", err)
		}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✓ Imported %d trade(s) into %s journal\n", len(recs)-skipped, cfg.Journal.Type)
	if skipped > 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "  skipped %d invalid trade(s)\n", skipped)
	}
	return nil
}
