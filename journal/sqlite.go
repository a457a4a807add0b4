// journal/sqlite.go
package journal

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"github.com/rustyeddy/traderater/pkg/id"
)

type SQLiteJournal struct {
	db  *sql.DB
	log *zap.Logger
	now func() time.Time
}

// NewSQLite opens (or creates) the journal database at path. A trades
// table with a different column set is dropped and recreated.
func NewSQLite(ctx context.Context, path string, log *zap.Logger) (*SQLiteJournal, error) {
	if log == nil {
		log = zap.NewNop()
	}
	log = log.With(zap.String("journal", "sqlite"), zap.String("path", path))

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, unavailable("open", err)
	}

	j := &SQLiteJournal{db: db, log: log, now: time.Now}
	if err := j.ensureTable(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return j, nil
}

func (j *SQLiteJournal) ensureTable(ctx context.Context) error {
	rows, err := j.db.QueryContext(ctx, `SELECT name FROM pragma_table_info('trades')`)
	if err != nil {
		return unavailable("init", err)
	}
	var cols []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			rows.Close()
			return unavailable("init", err)
		}
		cols = append(cols, name)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return unavailable("init", err)
	}

	if len(cols) > 0 && !sameColumnSet(cols) {
		j.log.Warn("recreating trades table with unexpected columns",
			zap.Strings("columns", cols),
			zap.Error(ErrSchemaMismatch))
		if _, err := j.db.ExecContext(ctx, `DROP TABLE trades`); err != nil {
			return unavailable("init", err)
		}
	}

	if _, err := j.db.ExecContext(ctx, SQLiteSchema); err != nil {
		return unavailable("init", err)
	}
	return nil
}

func (j *SQLiteJournal) Append(ctx context.Context, rec TradeRecord) (RowID, error) {
	rec, err := prepare(rec, j.now())
	if err != nil {
		return 0, err
	}
	if rec.TradeID == "" {
		rec.TradeID = id.NewAt(rec.SubmittedAt)
	}

	res, err := j.db.ExecContext(ctx, `
		INSERT INTO trades
		(trade_id, datetime, date_trade, pair, direction, timeframe, session, rr, score_percent, comment, taken, result)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.TradeID, formatDateTime(rec.SubmittedAt), formatDate(rec.TradeDate),
		rec.Instrument, string(rec.Direction), string(rec.Timeframe), string(rec.Session),
		rec.RiskReward, rec.ScorePercent, rec.Comment, string(rec.Taken), string(rec.Result),
	)
	if err != nil {
		return 0, unavailable("append", err)
	}
	n, err := res.LastInsertId()
	if err != nil {
		return 0, unavailable("append", err)
	}

	j.log.Debug("trade appended", zap.Int64("row", n), zap.String("trade_id", rec.TradeID))
	return RowID(n), nil
}

func (j *SQLiteJournal) LoadAll(ctx context.Context) ([]TradeRecord, error) {
	rows, err := j.db.QueryContext(ctx, `
		SELECT id, trade_id, datetime, date_trade, pair, direction, timeframe, session,
		       rr, score_percent, comment, taken, result
		FROM trades ORDER BY id`)
	if err != nil {
		return nil, unavailable("load", err)
	}
	defer rows.Close()

	var out []TradeRecord
	for rows.Next() {
		var (
			rec                          TradeRecord
			submitted, date              string
			dir, tf, sess, taken, result string
		)
		if err := rows.Scan(&rec.RowID, &rec.TradeID, &submitted, &date, &rec.Instrument,
			&dir, &tf, &sess, &rec.RiskReward, &rec.ScorePercent, &rec.Comment, &taken, &result); err != nil {
			return nil, unavailable("load", err)
		}
		rec.SubmittedAt = parseDateTime(submitted)
		rec.TradeDate = parseDate(date)
		rec.Direction = loadDirection(dir)
		rec.Timeframe = loadTimeframe(tf)
		rec.Session = loadSession(sess)
		rec.Taken = loadTaken(taken)
		rec.Result = loadResult(result)
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable("load", err)
	}
	return out, nil
}

func (j *SQLiteJournal) UpdateFields(ctx context.Context, patches []Patch) error {
	if err := checkPatches(patches); err != nil {
		return err
	}
	if len(patches) == 0 {
		return nil
	}

	tx, err := j.db.BeginTx(ctx, nil)
	if err != nil {
		return unavailable("update", err)
	}
	defer tx.Rollback()

	for _, p := range patches {
		res, err := tx.ExecContext(ctx,
			`UPDATE trades SET taken = COALESCE(?, taken), result = COALESCE(?, result) WHERE id = ?`,
			takenArg(p.Taken), resultArg(p.Result), int64(p.RowID))
		if err != nil {
			return unavailable("update", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return unavailable("update", err)
		}
		if n == 0 {
			return fmt.Errorf("journal: row %d: %w", p.RowID, ErrNotFound)
		}
	}

	if err := tx.Commit(); err != nil {
		return unavailable("update", err)
	}
	j.log.Info("trades updated", zap.Int("patches", len(patches)))
	return nil
}

func (j *SQLiteJournal) Close() error {
	return j.db.Close()
}

// takenArg and resultArg turn a nil patch field into SQL NULL so
// COALESCE keeps the stored value.
func takenArg(t *Taken) any {
	if t == nil {
		return nil
	}
	return string(*t)
}

func resultArg(r *Result) any {
	if r == nil {
		return nil
	}
	return string(*r)
}
