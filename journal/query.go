package journal

import (
	"context"
	"fmt"
)

// Find loads the ledger and returns the record with the given RowID.
func Find(ctx context.Context, l Ledger, row RowID) (TradeRecord, error) {
	recs, err := l.LoadAll(ctx)
	if err != nil {
		return TradeRecord{}, err
	}
	for _, r := range recs {
		if r.RowID == row {
			return r, nil
		}
	}
	return TradeRecord{}, fmt.Errorf("journal: row %d: %w", row, ErrNotFound)
}
