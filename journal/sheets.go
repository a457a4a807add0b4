// journal/sheets.go
package journal

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/rustyeddy/traderater/sheets"
)

// SheetsAPI is the part of the Sheets values API the journal needs.
// *sheets.Client implements it.
type SheetsAPI interface {
	Get(ctx context.Context, spreadsheetID, rng string) ([][]string, error)
	Append(ctx context.Context, spreadsheetID, rng string, rows [][]string) (sheets.AppendResult, error)
	Update(ctx context.Context, spreadsheetID, rng string, rows [][]string) error
	BatchUpdate(ctx context.Context, spreadsheetID string, data []sheets.ValueRange) error
	Clear(ctx context.Context, spreadsheetID, rng string) error
}

// SheetsJournal keeps one record per spreadsheet row below a header row.
// RowID is the spreadsheet row number, so the first record is row 2.
type SheetsJournal struct {
	api   SheetsAPI
	id    string
	sheet string
	log   *zap.Logger
	now   func() time.Time

	mu      sync.Mutex
	checked bool
}

func NewSheets(api SheetsAPI, spreadsheetID, sheet string, log *zap.Logger) *SheetsJournal {
	if log == nil {
		log = zap.NewNop()
	}
	if sheet == "" {
		sheet = "Sheet1"
	}
	return &SheetsJournal{
		api:   api,
		id:    spreadsheetID,
		sheet: sheet,
		log:   log.With(zap.String("journal", "sheets"), zap.String("sheet", sheet)),
		now:   time.Now,
	}
}

// ensureHeader checks row 1 once per journal and rewrites the sheet when
// it does not hold Columns.
func (j *SheetsJournal) ensureHeader(ctx context.Context) error {
	if j.checked {
		return nil
	}

	rows, err := j.api.Get(ctx, j.id, sheets.Range(j.sheet, "1:1"))
	if err != nil {
		return unavailable("sheets header", err)
	}
	var header []string
	if len(rows) > 0 {
		header = rows[0]
	}

	if !HeaderMatches(header, Columns) {
		j.log.Warn("resetting sheet with unexpected header",
			zap.Strings("header", header),
			zap.Error(ErrSchemaMismatch))
		if err := j.api.Clear(ctx, j.id, sheets.Quote(j.sheet)); err != nil {
			return unavailable("sheets clear", err)
		}
		if err := j.api.Update(ctx, j.id, sheets.Range(j.sheet, "A1"), [][]string{Columns}); err != nil {
			return unavailable("sheets header", err)
		}
	}
	j.checked = true
	return nil
}

func (j *SheetsJournal) Append(ctx context.Context, rec TradeRecord) (RowID, error) {
	rec, err := prepare(rec, j.now())
	if err != nil {
		return 0, err
	}

	j.mu.Lock()
	defer j.mu.Unlock()

	if err := j.ensureHeader(ctx); err != nil {
		return 0, err
	}

	res, err := j.api.Append(ctx, j.id, sheets.Range(j.sheet, "A1"), [][]string{toRow(rec, Columns)})
	if err != nil {
		return 0, unavailable("sheets append", err)
	}
	row, err := sheets.StartRow(res.Updates.UpdatedRange)
	if err != nil {
		return 0, unavailable("sheets append", err)
	}

	j.log.Debug("trade appended", zap.Int("row", row), zap.String("pair", rec.Instrument))
	return RowID(row), nil
}

func (j *SheetsJournal) LoadAll(ctx context.Context) ([]TradeRecord, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	if err := j.ensureHeader(ctx); err != nil {
		return nil, err
	}
	rows, err := j.api.Get(ctx, j.id, sheets.Quote(j.sheet))
	if err != nil {
		return nil, unavailable("sheets load", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	idx := columnIndex(rows[0])
	out := make([]TradeRecord, 0, len(rows)-1)
	for i, row := range rows[1:] {
		if blank(row) {
			continue
		}
		rec := fromRow(row, idx)
		rec.RowID = RowID(i + 2)
		out = append(out, rec)
	}
	return out, nil
}

// UpdateFields checks every patch against the current sheet before sending
// a single batch update.
func (j *SheetsJournal) UpdateFields(ctx context.Context, patches []Patch) error {
	if err := checkPatches(patches); err != nil {
		return err
	}
	if len(patches) == 0 {
		return nil
	}

	j.mu.Lock()
	defer j.mu.Unlock()

	if err := j.ensureHeader(ctx); err != nil {
		return err
	}
	rows, err := j.api.Get(ctx, j.id, sheets.Quote(j.sheet))
	if err != nil {
		return unavailable("sheets load", err)
	}
	if len(rows) == 0 {
		return fmt.Errorf("journal: sheet %q has no header: %w", j.sheet, ErrSchemaMismatch)
	}
	idx := columnIndex(rows[0])
	takenCol, ok1 := idx["taken"]
	resultCol, ok2 := idx["result"]
	if !ok1 || !ok2 {
		return fmt.Errorf("journal: sheet %q lacks taken/result: %w", j.sheet, ErrSchemaMismatch)
	}

	var data []sheets.ValueRange
	for _, p := range patches {
		row := int(p.RowID)
		if row < 2 || row > len(rows) || blank(rows[row-1]) {
			return fmt.Errorf("journal: row %d: %w", p.RowID, ErrNotFound)
		}
		if p.Taken != nil {
			data = append(data, j.cell(takenCol, row, string(*p.Taken)))
		}
		if p.Result != nil {
			data = append(data, j.cell(resultCol, row, string(*p.Result)))
		}
	}
	if len(data) == 0 {
		return nil
	}

	if err := j.api.BatchUpdate(ctx, j.id, data); err != nil {
		return unavailable("sheets update", err)
	}
	j.log.Info("trades updated", zap.Int("patches", len(patches)), zap.Int("cells", len(data)))
	return nil
}

func (j *SheetsJournal) cell(col, row int, v string) sheets.ValueRange {
	return sheets.ValueRange{
		Range:  sheets.Range(j.sheet, sheets.ColumnLetter(col)+strconv.Itoa(row)),
		Values: [][]string{{v}},
	}
}

func (j *SheetsJournal) Close() error { return nil }

func blank(row []string) bool {
	for _, c := range row {
		if c != "" {
			return false
		}
	}
	return true
}
