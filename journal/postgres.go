// journal/postgres.go
package journal

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/rustyeddy/traderater/pkg/id"
)

// PostgresJournal stores records in a shared Postgres database.
type PostgresJournal struct {
	pool *pgxpool.Pool
	log  *zap.Logger
	now  func() time.Time
}

// NewPostgres connects to dsn, pings the server and makes sure the trades
// table has the expected columns.
func NewPostgres(ctx context.Context, dsn string, log *zap.Logger) (*PostgresJournal, error) {
	if log == nil {
		log = zap.NewNop()
	}
	log = log.With(zap.String("journal", "postgres"))

	poolCfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("journal: postgres: parse config: %w", err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, unavailable("postgres connect", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, unavailable("postgres ping", err)
	}

	j := &PostgresJournal{pool: pool, log: log, now: time.Now}
	if err := j.ensureTable(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return j, nil
}

func (j *PostgresJournal) ensureTable(ctx context.Context) error {
	rows, err := j.pool.Query(ctx, `
		SELECT column_name FROM information_schema.columns
		WHERE table_schema = current_schema() AND table_name = 'trades'`)
	if err != nil {
		return unavailable("postgres init", err)
	}
	cols, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return unavailable("postgres init", err)
	}

	if len(cols) > 0 && !sameColumnSet(cols) {
		j.log.Warn("recreating trades table with unexpected columns",
			zap.Strings("columns", cols),
			zap.Error(ErrSchemaMismatch))
		if _, err := j.pool.Exec(ctx, `DROP TABLE trades`); err != nil {
			return unavailable("postgres init", err)
		}
	}
	if _, err := j.pool.Exec(ctx, PostgresSchema); err != nil {
		return unavailable("postgres init", err)
	}
	return nil
}

func (j *PostgresJournal) Append(ctx context.Context, rec TradeRecord) (RowID, error) {
	rec, err := prepare(rec, j.now())
	if err != nil {
		return 0, err
	}
	if rec.TradeID == "" {
		rec.TradeID = id.NewAt(rec.SubmittedAt)
	}

	var n int64
	err = j.pool.QueryRow(ctx, `
		INSERT INTO trades
		(trade_id, datetime, date_trade, pair, direction, timeframe, session, rr, score_percent, comment, taken, result)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id`,
		rec.TradeID, rec.SubmittedAt, rec.TradeDate,
		rec.Instrument, string(rec.Direction), string(rec.Timeframe), string(rec.Session),
		rec.RiskReward, rec.ScorePercent, rec.Comment, string(rec.Taken), string(rec.Result),
	).Scan(&n)
	if err != nil {
		return 0, unavailable("postgres append", err)
	}

	j.log.Debug("trade appended", zap.Int64("row", n), zap.String("trade_id", rec.TradeID))
	return RowID(n), nil
}

func (j *PostgresJournal) LoadAll(ctx context.Context) ([]TradeRecord, error) {
	rows, err := j.pool.Query(ctx, `
		SELECT id, trade_id, datetime, date_trade, pair, direction, timeframe, session,
		       rr, score_percent, comment, taken, result
		FROM trades ORDER BY id`)
	if err != nil {
		return nil, unavailable("postgres load", err)
	}
	defer rows.Close()

	var out []TradeRecord
	for rows.Next() {
		var (
			rec                          TradeRecord
			submitted, date              time.Time
			dir, tf, sess, taken, result string
		)
		if err := rows.Scan(&rec.RowID, &rec.TradeID, &submitted, &date, &rec.Instrument,
			&dir, &tf, &sess, &rec.RiskReward, &rec.ScorePercent, &rec.Comment, &taken, &result); err != nil {
			return nil, unavailable("postgres load", err)
		}
		rec.SubmittedAt = submitted.UTC()
		y, m, d := date.Date()
		rec.TradeDate = time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
		rec.Direction = loadDirection(dir)
		rec.Timeframe = loadTimeframe(tf)
		rec.Session = loadSession(sess)
		rec.Taken = loadTaken(taken)
		rec.Result = loadResult(result)
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable("postgres load", err)
	}
	return out, nil
}

func (j *PostgresJournal) UpdateFields(ctx context.Context, patches []Patch) error {
	if err := checkPatches(patches); err != nil {
		return err
	}
	if len(patches) == 0 {
		return nil
	}

	tx, err := j.pool.Begin(ctx)
	if err != nil {
		return unavailable("postgres update", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	for _, p := range patches {
		tag, err := tx.Exec(ctx,
			`UPDATE trades SET taken = COALESCE($1::text, taken), result = COALESCE($2::text, result) WHERE id = $3`,
			takenArg(p.Taken), resultArg(p.Result), int64(p.RowID))
		if err != nil {
			return unavailable("postgres update", err)
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("journal: row %d: %w", p.RowID, ErrNotFound)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return unavailable("postgres update", err)
	}
	j.log.Info("trades updated", zap.Int("patches", len(patches)))
	return nil
}

func (j *PostgresJournal) Close() error {
	j.pool.Close()
	return nil
}
