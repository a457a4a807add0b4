package journal

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestCSVAppendLoad(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "trades.csv")
	j := NewCSV(path, nil)
	defer j.Close()

	recs, err := j.LoadAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, recs)

	first := sampleRecord()
	second := sampleRecord()
	second.Instrument = "USDJPY"
	second.Comment = ""

	id1, err := j.Append(ctx, first)
	require.NoError(t, err)
	id2, err := j.Append(ctx, second)
	require.NoError(t, err)
	assert.Equal(t, RowID(2), id1)
	assert.Equal(t, RowID(3), id2)

	recs, err = j.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, recs, 2)

	first.RowID = id1
	assert.Equal(t, first, recs[0])
	assert.Equal(t, "USDJPY", recs[1].Instrument)
	assert.Equal(t, id2, recs[1].RowID)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "datetime,date_trade,pair,direction,timeframe,session,rr,score_percent,comment\n")
}

func TestCSVDuplicateAppendsAreKept(t *testing.T) {
	ctx := context.Background()
	j := NewCSV(filepath.Join(t.TempDir(), "trades.csv"), nil)

	for i := 0; i < 2; i++ {
		_, err := j.Append(ctx, sampleRecord())
		require.NoError(t, err)
	}
	recs, err := j.LoadAll(ctx)
	require.NoError(t, err)
	assert.Len(t, recs, 2)
}

func TestCSVRejectsInvalidRecord(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trades.csv")
	j := NewCSV(path, nil)

	rec := sampleRecord()
	rec.Instrument = ""
	_, err := j.Append(context.Background(), rec)
	assert.True(t, errors.Is(err, ErrInvalidRecord))

	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err), "nothing should be written")
}

func TestCSVHeaderRepair(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "trades.csv")
	require.NoError(t, os.WriteFile(path, []byte("when,what\nx,y\n"), 0o644))

	core, logs := observer.New(zapcore.WarnLevel)
	j := NewCSV(path, zap.New(core))

	id, err := j.Append(ctx, sampleRecord())
	require.NoError(t, err)
	assert.Equal(t, RowID(2), id)
	assert.Equal(t, 1, logs.FilterMessage("resetting journal with unexpected header").Len())

	_, err = j.Append(ctx, sampleRecord())
	require.NoError(t, err)
	assert.Equal(t, 1, logs.Len(), "repair happens once")

	recs, err := j.LoadAll(ctx)
	require.NoError(t, err)
	assert.Len(t, recs, 2)
}

func TestCSVAcceptsFullHeader(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "trades.csv")
	body := "datetime,date_trade,pair,direction,timeframe,session,rr,score_percent,commentaire,taken,result\n" +
		"2024-11-04T08:12:00,2024-11-04,GBPJPY,Sell,M5,Tokyo,3,71.5,,Oui,Win\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	core, logs := observer.New(zapcore.WarnLevel)
	j := NewCSV(path, zap.New(core))

	_, err := j.Append(ctx, sampleRecord())
	require.NoError(t, err)
	assert.Zero(t, logs.Len())

	recs, err := j.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, TakenYes, recs[0].Taken)
	assert.Equal(t, ResultWin, recs[0].Result)
}

func TestCSVAppendAfterUnterminatedLine(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "trades.csv")
	require.NoError(t, os.WriteFile(path, []byte(
		"datetime,date_trade,pair,direction,timeframe,session,rr,score_percent,comment\n"+
			"2025-03-10T08:00:00,2025-03-10,GBPUSD,Sell,H1,London,3,88,edited by hand"), 0o644))

	j := NewCSV(path, nil)
	id, err := j.Append(ctx, sampleRecord())
	require.NoError(t, err)
	assert.Equal(t, RowID(3), id)

	recs, err := j.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "GBPUSD", recs[0].Instrument)
	assert.Equal(t, "edited by hand", recs[0].Comment)
	assert.Equal(t, "EURUSD", recs[1].Instrument)
	assert.Equal(t, RowID(3), recs[1].RowID)
}

func TestCSVUpdateUnsupported(t *testing.T) {
	j := NewCSV(filepath.Join(t.TempDir(), "trades.csv"), nil)
	yes := TakenYes
	err := j.UpdateFields(context.Background(), []Patch{{RowID: 2, Taken: &yes}})
	assert.True(t, errors.Is(err, ErrUnsupported))
}

func TestCSVDirectoryPath(t *testing.T) {
	j := NewCSV(t.TempDir(), nil)
	_, err := j.Append(context.Background(), sampleRecord())
	assert.True(t, errors.Is(err, ErrSchemaMismatch))
}
