// journal/journal.go
package journal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/rustyeddy/traderater/market"
)

// RowID identifies a stored record for the lifetime of the ledger. It is
// assigned on append and never reused.
type RowID int64

// Taken records whether a scored setup was actually traded.
type Taken string

const (
	TakenUnset Taken = ""
	TakenYes   Taken = "Yes"
	TakenNo    Taken = "No"
)

func (t Taken) Valid() bool {
	return t == TakenUnset || t == TakenYes || t == TakenNo
}

// Result is the outcome of a trade.
type Result string

const (
	ResultUnset     Result = ""
	ResultWin       Result = "Win"
	ResultLoss      Result = "Loss"
	ResultBreakEven Result = "BE"
	ResultNotTaken  Result = "NotTaken"
)

func (r Result) Valid() bool {
	switch r {
	case ResultUnset, ResultWin, ResultLoss, ResultBreakEven, ResultNotTaken:
		return true
	}
	return false
}

// Evaluated reports whether r counts towards a win rate.
func (r Result) Evaluated() bool {
	return r == ResultWin || r == ResultLoss || r == ResultBreakEven
}

// TradeRecord is one journaled setup. ScorePercent is written once when the
// record is appended; only Taken and Result change afterwards.
type TradeRecord struct {
	RowID   RowID
	TradeID string

	SubmittedAt time.Time
	TradeDate   time.Time

	Instrument string
	Direction  market.Direction
	Timeframe  market.Timeframe
	Session    market.Session

	RiskReward   sql.NullFloat64
	ScorePercent sql.NullFloat64

	Comment string
	Taken   Taken
	Result  Result
}

// Patch changes the mutable fields of one record. Nil fields are left as
// they are.
type Patch struct {
	RowID  RowID
	Taken  *Taken
	Result *Result
}

// Ledger is an append-only store of trade records.
type Ledger interface {
	// Append stores rec as a new row and returns its identity. Calling it
	// twice with the same record stores two rows.
	Append(ctx context.Context, rec TradeRecord) (RowID, error)
	// LoadAll returns every stored record in storage order.
	LoadAll(ctx context.Context) ([]TradeRecord, error)
	// UpdateFields applies all patches or none of them.
	UpdateFields(ctx context.Context, patches []Patch) error
	Close() error
}

var (
	// ErrStorageUnavailable wraps backend connectivity, auth and I/O failures.
	ErrStorageUnavailable = errors.New("storage unavailable")
	// ErrNotFound is returned when a patch names an unknown row.
	ErrNotFound = errors.New("record not found")
	// ErrSchemaMismatch means the stored header differs from Columns.
	ErrSchemaMismatch = errors.New("schema mismatch")
	// ErrUnsupported is returned by backends without in-place updates.
	ErrUnsupported = errors.New("operation not supported by this journal")
	// ErrInvalidRecord is returned for records or patches with bad fields.
	ErrInvalidRecord = errors.New("invalid record")
)

func unavailable(op string, err error) error {
	return fmt.Errorf("journal: %s: %w: %w", op, ErrStorageUnavailable, err)
}

// Float wraps a known number for the nullable numeric fields.
func Float(v float64) sql.NullFloat64 {
	return sql.NullFloat64{Float64: v, Valid: true}
}

// prepare stamps the submission time and checks a record before it is
// written. The returned copy is what gets stored.
func prepare(rec TradeRecord, now time.Time) (TradeRecord, error) {
	if rec.SubmittedAt.IsZero() {
		rec.SubmittedAt = now
	}
	rec.SubmittedAt = wallClock(rec.SubmittedAt.Truncate(time.Second))
	if !rec.TradeDate.IsZero() {
		y, m, d := rec.TradeDate.Date()
		rec.TradeDate = time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	}

	var problems []string
	if rec.TradeDate.IsZero() {
		problems = append(problems, "trade date is required")
	}
	if strings.TrimSpace(rec.Instrument) == "" {
		problems = append(problems, "instrument is required")
	}
	if !rec.Direction.Valid() {
		problems = append(problems, fmt.Sprintf("direction %q", rec.Direction))
	}
	if !rec.Timeframe.Valid() {
		problems = append(problems, fmt.Sprintf("timeframe %q", rec.Timeframe))
	}
	if !rec.Session.Valid() {
		problems = append(problems, fmt.Sprintf("session %q", rec.Session))
	}
	if !rec.RiskReward.Valid || !(rec.RiskReward.Float64 > 0) || math.IsInf(rec.RiskReward.Float64, 0) {
		problems = append(problems, "rr must be a positive number")
	}
	if !rec.ScorePercent.Valid || math.IsNaN(rec.ScorePercent.Float64) || math.IsInf(rec.ScorePercent.Float64, 0) {
		problems = append(problems, "score_percent must be a number")
	}
	if !rec.Taken.Valid() {
		problems = append(problems, fmt.Sprintf("taken %q", rec.Taken))
	}
	if !rec.Result.Valid() {
		problems = append(problems, fmt.Sprintf("result %q", rec.Result))
	}

	if len(problems) > 0 {
		return rec, fmt.Errorf("%w: %s", ErrInvalidRecord, strings.Join(problems, ", "))
	}
	return rec, nil
}

// checkPatches rejects patches carrying unknown labels.
func checkPatches(patches []Patch) error {
	for _, p := range patches {
		if p.Taken != nil && !p.Taken.Valid() {
			return fmt.Errorf("%w: row %d: taken %q", ErrInvalidRecord, p.RowID, *p.Taken)
		}
		if p.Result != nil && !p.Result.Valid() {
			return fmt.Errorf("%w: row %d: result %q", ErrInvalidRecord, p.RowID, *p.Result)
		}
	}
	return nil
}

// wallClock relabels t as UTC keeping its local reading. Stored
// timestamps carry no zone, so this is what a round trip returns.
func wallClock(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}
