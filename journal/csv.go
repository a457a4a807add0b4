// journal/csv.go
package journal

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"sync"
	"time"

	"go.uber.org/zap"
)

// CSVJournal keeps records in a local CSV file laid out as FileColumns.
// It cannot patch records in place.
type CSVJournal struct {
	path string
	log  *zap.Logger
	now  func() time.Time

	mu      sync.Mutex
	checked bool
}

func NewCSV(path string, log *zap.Logger) *CSVJournal {
	if log == nil {
		log = zap.NewNop()
	}
	return &CSVJournal{
		path: path,
		log:  log.With(zap.String("journal", "csv"), zap.String("path", path)),
		now:  time.Now,
	}
}

func (j *CSVJournal) Append(ctx context.Context, rec TradeRecord) (RowID, error) {
	rec, err := prepare(rec, j.now())
	if err != nil {
		return 0, err
	}

	j.mu.Lock()
	defer j.mu.Unlock()

	n, err := j.ensureHeader()
	if err != nil {
		return 0, err
	}

	f, err := os.OpenFile(j.path, os.O_RDWR|os.O_APPEND, 0o644)
	if err != nil {
		return 0, unavailable("append", err)
	}
	defer f.Close()

	if err := terminateLastLine(f); err != nil {
		return 0, unavailable("append", err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(toRow(rec, FileColumns)); err != nil {
		return 0, unavailable("append", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return 0, unavailable("append", err)
	}

	id := RowID(n + 2)
	j.log.Debug("trade appended", zap.Int64("row", int64(id)), zap.String("pair", rec.Instrument))
	return id, nil
}

func (j *CSVJournal) LoadAll(ctx context.Context) ([]TradeRecord, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	rows, err := j.read()
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}

	idx := columnIndex(rows[0])
	out := make([]TradeRecord, 0, len(rows)-1)
	for i, row := range rows[1:] {
		rec := fromRow(row, idx)
		rec.RowID = RowID(i + 2)
		out = append(out, rec)
	}
	return out, nil
}

// UpdateFields always fails: the file layout has no taken/result columns.
func (j *CSVJournal) UpdateFields(ctx context.Context, patches []Patch) error {
	return fmt.Errorf("journal: csv: %w", ErrUnsupported)
}

func (j *CSVJournal) Close() error { return nil }

func (j *CSVJournal) read() ([][]string, error) {
	st, err := os.Stat(j.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
		return nil, unavailable("read", err)
	}
	if st.IsDir() {
		return nil, fmt.Errorf("journal: %s is a directory: %w", j.path, ErrSchemaMismatch)
	}

	f, err := os.Open(j.path)
	if err != nil {
		return nil, unavailable("read", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	var rows [][]string
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, unavailable("read", err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// ensureHeader makes sure the file starts with a known header, resetting
// it on the first call if it does not. It returns the number of records
// already stored.
func (j *CSVJournal) ensureHeader() (int, error) {
	rows, err := j.read()
	switch {
	case errors.Is(err, fs.ErrNotExist):
		rows = nil
	case err != nil:
		return 0, err
	}

	if len(rows) > 0 && (HeaderMatches(rows[0], FileColumns) || HeaderMatches(rows[0], Columns)) {
		j.checked = true
		return len(rows) - 1, nil
	}
	if j.checked && len(rows) > 0 {
		return 0, fmt.Errorf("journal: csv header changed under us: %w", ErrSchemaMismatch)
	}

	if len(rows) > 0 {
		j.log.Warn("resetting journal with unexpected header",
			zap.Strings("header", rows[0]),
			zap.Error(ErrSchemaMismatch))
	}
	if err := j.writeHeader(); err != nil {
		return 0, err
	}
	j.checked = true
	return 0, nil
}

// terminateLastLine adds the line break a hand-edited file may lack, so
// the next record starts on its own line.
func terminateLastLine(f *os.File) error {
	st, err := f.Stat()
	if err != nil || st.Size() == 0 {
		return err
	}
	last := make([]byte, 1)
	if _, err := f.ReadAt(last, st.Size()-1); err != nil {
		return err
	}
	if last[0] == '\n' {
		return nil
	}
	_, err = f.Write([]byte{'\n'})
	return err
}

func (j *CSVJournal) writeHeader() error {
	f, err := os.Create(j.path)
	if err != nil {
		return unavailable("init", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(FileColumns); err != nil {
		return unavailable("init", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return unavailable("init", err)
	}
	return nil
}
