package journal

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/rustyeddy/traderater/config"
	"github.com/rustyeddy/traderater/sheets"
)

// Open builds the ledger selected by cfg.Type.
func Open(ctx context.Context, cfg config.JournalConfig, log *zap.Logger) (Ledger, error) {
	if log == nil {
		log = zap.NewNop()
	}

	switch cfg.Type {
	case config.JournalSheets:
		timeout, err := cfg.Sheets.TimeoutDuration()
		if err != nil {
			return nil, fmt.Errorf("journal: sheets timeout: %w", err)
		}
		client, err := sheets.NewClient(ctx, cfg.Sheets.Token, timeout, cfg.Sheets.BaseURL)
		if err != nil {
			return nil, unavailable("sheets", err)
		}
		return NewSheets(client, cfg.Sheets.SpreadsheetID, cfg.Sheets.Sheet, log), nil

	case config.JournalCSV:
		return NewCSV(cfg.CSVPath, log), nil

	case config.JournalSQLite:
		j, err := NewSQLite(ctx, cfg.DBPath, log)
		if err != nil {
			return nil, err
		}
		return j, nil

	case config.JournalPostgres:
		j, err := NewPostgres(ctx, cfg.PostgresDSN, log)
		if err != nil {
			return nil, err
		}
		return j, nil
	}
	return nil, fmt.Errorf("journal: unknown type %q", cfg.Type)
}
