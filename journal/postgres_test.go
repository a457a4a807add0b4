package journal

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Set TRADERATER_TEST_POSTGRES_DSN to a scratch database to run these.
// The trades table in it is dropped.
func newTestPostgres(t *testing.T) *PostgresJournal {
	t.Helper()
	dsn := os.Getenv("TRADERATER_TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("TRADERATER_TEST_POSTGRES_DSN not set")
	}

	ctx := context.Background()
	j, err := NewPostgres(ctx, dsn, nil)
	require.NoError(t, err)
	_, err = j.pool.Exec(ctx, `TRUNCATE trades RESTART IDENTITY`)
	require.NoError(t, err)
	t.Cleanup(func() { j.Close() })
	return j
}

func TestPostgresAppendLoadUpdate(t *testing.T) {
	ctx := context.Background()
	j := newTestPostgres(t)

	rec := sampleRecord()
	row, err := j.Append(ctx, rec)
	require.NoError(t, err)

	recs, err := j.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, recs, 1)

	rec.RowID = row
	rec.TradeID = recs[0].TradeID
	assert.Equal(t, rec, recs[0])

	be := ResultBreakEven
	require.NoError(t, j.UpdateFields(ctx, []Patch{{RowID: row, Result: &be}}))

	err = j.UpdateFields(ctx, []Patch{{RowID: row + 100, Result: &be}})
	assert.True(t, errors.Is(err, ErrNotFound))

	got, err := Find(ctx, j, row)
	require.NoError(t, err)
	assert.Equal(t, ResultBreakEven, got.Result)
	assert.Equal(t, TakenUnset, got.Taken)
}

func TestPostgresBadDSN(t *testing.T) {
	_, err := NewPostgres(context.Background(), "postgres://nobody@127.0.0.1:1/none?connect_timeout=1", nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrStorageUnavailable))
}
