package journal

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/ulikunitz/xz"
)

// ArchiveColumns is the layout of an exported archive: the row number
// followed by Columns.
var ArchiveColumns = append([]string{"row"}, Columns...)

// ExportArchive writes every record of l to w as an xz-compressed CSV and
// returns how many records were written.
func ExportArchive(ctx context.Context, l Ledger, w io.Writer) (int, error) {
	recs, err := l.LoadAll(ctx)
	if err != nil {
		return 0, err
	}
	if err := WriteArchive(w, recs); err != nil {
		return 0, err
	}
	return len(recs), nil
}

// WriteArchive encodes recs as an xz-compressed CSV.
func WriteArchive(w io.Writer, recs []TradeRecord) error {
	xw, err := xz.NewWriter(w)
	if err != nil {
		return fmt.Errorf("journal: archive: %w", err)
	}

	cw := csv.NewWriter(xw)
	if err := cw.Write(ArchiveColumns); err != nil {
		return fmt.Errorf("journal: archive: %w", err)
	}
	for _, r := range recs {
		row := append([]string{strconv.FormatInt(int64(r.RowID), 10)}, toRow(r, Columns)...)
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("journal: archive: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("journal: archive: %w", err)
	}
	if err := xw.Close(); err != nil {
		return fmt.Errorf("journal: archive: %w", err)
	}
	return nil
}

// ReadArchive decodes an archive written by WriteArchive. Records keep
// the row number they had in the exporting ledger.
func ReadArchive(r io.Reader) ([]TradeRecord, error) {
	xr, err := xz.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("journal: archive: %w", err)
	}

	cr := csv.NewReader(xr)
	cr.FieldsPerRecord = -1
	header, err := cr.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("journal: archive: %w", err)
	}
	if len(header) == 0 || canonicalColumn(header[0]) != "row" || !HeaderMatches(header[1:], Columns) {
		return nil, fmt.Errorf("journal: archive header %v: %w", header, ErrSchemaMismatch)
	}
	idx := columnIndex(header[1:])

	var out []TradeRecord
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("journal: archive: %w", err)
		}
		if len(row) == 0 {
			continue
		}
		rec := fromRow(row[1:], idx)
		if n, err := strconv.ParseInt(row[0], 10, 64); err == nil {
			rec.RowID = RowID(n)
		}
		out = append(out, rec)
	}
	return out, nil
}
