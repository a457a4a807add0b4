package weekly

import (
	"bytes"
	"database/sql"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/traderater/journal"
	"github.com/rustyeddy/traderater/market"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func trade(row int, date time.Time, pair string, score float64) journal.TradeRecord {
	return journal.TradeRecord{
		RowID:        journal.RowID(row),
		SubmittedAt:  date.Add(time.Duration(8+row) * time.Hour),
		TradeDate:    date,
		Instrument:   pair,
		Direction:    market.Buy,
		Timeframe:    market.M15,
		Session:      market.London,
		RiskReward:   journal.Float(2),
		ScorePercent: journal.Float(score),
	}
}

func taken(r journal.TradeRecord, res journal.Result) journal.TradeRecord {
	r.Taken = journal.TakenYes
	r.Result = res
	return r
}

func TestWeekOf(t *testing.T) {
	tests := []struct {
		date time.Time
		want Week
	}{
		{day(2024, 12, 30), Week{2025, 1}},
		{day(2024, 1, 1), Week{2024, 1}},
		{day(2021, 1, 3), Week{2020, 53}},
		{day(2025, 6, 15), Week{2025, 24}},
	}
	for _, tt := range tests {
		t.Run(tt.date.Format("2006-01-02"), func(t *testing.T) {
			assert.Equal(t, tt.want, WeekOf(tt.date))
		})
	}
	assert.Equal(t, "2025-W1", Week{2025, 1}.String())
}

func TestMonday(t *testing.T) {
	assert.Equal(t, day(2024, 12, 30), Week{2025, 1}.Monday())
	assert.Equal(t, day(2024, 1, 1), Week{2024, 1}.Monday())
	assert.Equal(t, day(2020, 12, 28), Week{2020, 53}.Monday())
}

func TestParseWeek(t *testing.T) {
	for _, in := range []string{"2025-W1", "2025-W01", "2025w01", " 2025-W1 "} {
		w, err := ParseWeek(in)
		require.NoError(t, err, in)
		assert.Equal(t, Week{2025, 1}, w)
	}
	w, err := ParseWeek("2020-W53")
	require.NoError(t, err)
	assert.Equal(t, Week{2020, 53}, w)

	for _, in := range []string{"", "W1", "2025-1", "2025-W0", "2025-W53", "abcd-W3", "2025-Wx"} {
		_, err := ParseWeek(in)
		assert.Error(t, err, in)
	}
}

func TestBucketsAndDefault(t *testing.T) {
	recs := []journal.TradeRecord{
		trade(2, day(2024, 12, 30), "EURUSD", 80),
		trade(3, day(2024, 12, 20), "EURUSD", 70),
		trade(4, day(2025, 1, 2), "EURUSD", 60),
		trade(5, time.Time{}, "EURUSD", 50),
	}
	b := Buckets(recs)
	assert.Equal(t, []Week{{2025, 1}, {2024, 51}}, b)

	w, ok := DefaultWeek(b, day(2024, 12, 18))
	require.True(t, ok)
	assert.Equal(t, Week{2024, 51}, w)

	w, ok = DefaultWeek(b, day(2026, 3, 1))
	require.True(t, ok)
	assert.Equal(t, Week{2025, 1}, w)

	_, ok = DefaultWeek(nil, time.Now())
	assert.False(t, ok)
}

func TestRankStableMissingLast(t *testing.T) {
	missing := trade(5, day(2025, 1, 2), "GBPUSD", 0)
	missing.ScorePercent = sql.NullFloat64{}

	recs := []journal.TradeRecord{
		trade(2, day(2025, 1, 2), "A", 70),
		missing,
		trade(3, day(2025, 1, 2), "B", 90),
		trade(4, day(2025, 1, 2), "C", 70),
		trade(6, day(2025, 1, 2), "D", -5),
	}
	ranked := Rank(recs)

	var rows []journal.RowID
	for _, r := range ranked {
		rows = append(rows, r.RowID)
	}
	assert.Equal(t, []journal.RowID{3, 2, 4, 6, 5}, rows)
	assert.Equal(t, journal.RowID(2), recs[0].RowID, "input untouched")
}

func TestWinRate(t *testing.T) {
	d := day(2025, 1, 6)
	recs := []journal.TradeRecord{
		taken(trade(2, d, "EURUSD", 90), journal.ResultWin),
		taken(trade(3, d, "EURUSD", 85), journal.ResultWin),
		taken(trade(4, d, "GBPUSD", 70), journal.ResultLoss),
		taken(trade(5, d, "GBPUSD", 60), journal.ResultBreakEven),
	}
	assert.Equal(t, 50.0, WinRate(recs))
	assert.Equal(t, 0.0, WinRate(nil))
	assert.Equal(t, 0.0, WinRate([]journal.TradeRecord{taken(trade(6, d, "X", 1), journal.ResultNotTaken)}))
}

func TestBuild(t *testing.T) {
	d := day(2025, 1, 6)
	noScore := trade(9, d, "AUDUSD", 0)
	noScore.ScorePercent = sql.NullFloat64{}

	jpy := taken(trade(6, d, "USDJPY", 70), journal.ResultLoss)
	jpy.Direction = market.Sell
	jpy.Session = market.Tokyo
	jpy.RiskReward = journal.Float(3)

	recs := []journal.TradeRecord{
		taken(trade(2, d, "EURUSD", 90), journal.ResultWin),
		taken(trade(3, d, "EURUSD", 80), journal.ResultWin),
		taken(trade(4, d, "GBPUSD", 60), journal.ResultLoss),
		taken(trade(5, d, "GBPUSD", 50), journal.ResultBreakEven),
		jpy,
		taken(trade(7, d, "EURUSD", 40), journal.ResultUnset),
		trade(8, d, "EURUSD", 30),
		noScore,
		trade(10, day(2025, 1, 20), "EURUSD", 100),
	}

	r := Build(recs, Week{2025, 2})

	require.Len(t, r.Trades, 8)
	assert.Equal(t, journal.RowID(2), r.Trades[0].RowID)
	assert.Equal(t, journal.RowID(9), r.Trades[7].RowID)
	assert.Len(t, r.Bars, 7)
	assert.Equal(t, 90.0, r.Bars[0].Score)

	assert.Equal(t, 7, r.Scores.N)
	assert.Equal(t, 90.0, r.Scores.Max)
	assert.Equal(t, 30.0, r.Scores.Min)
	assert.InDelta(t, 60.0, r.Scores.Mean, 1e-9)

	assert.Equal(t, 6, r.Taken)
	assert.Equal(t, Outcome{Wins: 2, Losses: 2, BreakEvens: 1, WinRate: 40}, r.Evaluated)

	require.Len(t, r.ByInstrument, 3)
	assert.Equal(t, Group{Key: "EURUSD", Trades: 2, Outcome: Outcome{Wins: 2, WinRate: 100}, MeanScore: 85, MeanRR: 2}, r.ByInstrument[0])
	assert.Equal(t, "GBPUSD", r.ByInstrument[1].Key)
	assert.Equal(t, 0.0, r.ByInstrument[1].Outcome.WinRate)
	assert.Equal(t, 55.0, r.ByInstrument[1].MeanScore)
	assert.Equal(t, "USDJPY", r.ByInstrument[2].Key, "ties sorted by key")

	require.Len(t, r.ByDirection, 2)
	assert.Equal(t, "Buy", r.ByDirection[0].Key)
	assert.Equal(t, 50.0, r.ByDirection[0].Outcome.WinRate)

	require.Len(t, r.BySession, 2)
	assert.Equal(t, "London", r.BySession[0].Key)
	assert.Equal(t, "Tokyo", r.BySession[1].Key)
	assert.Equal(t, 3.0, r.BySession[1].MeanRR)
}

func TestGroupRounding(t *testing.T) {
	d := day(2025, 1, 6)
	a := taken(trade(2, d, "EURUSD", 77.77), journal.ResultWin)
	a.RiskReward = journal.Float(2.333)
	b := taken(trade(3, d, "EURUSD", 80), journal.ResultLoss)
	b.RiskReward = journal.Float(2)
	c := taken(trade(4, d, "EURUSD", 90), journal.ResultLoss)
	c.RiskReward = journal.Float(2)

	r := Build([]journal.TradeRecord{a, b, c}, WeekOf(d))
	require.Len(t, r.ByInstrument, 1)
	g := r.ByInstrument[0]
	assert.Equal(t, 33.3, g.Outcome.WinRate)
	assert.Equal(t, 82.6, g.MeanScore)
	assert.Equal(t, 2.11, g.MeanRR)
	assert.InDelta(t, 33.333, r.Evaluated.WinRate, 0.001)
}

func TestBuildEmptyWeek(t *testing.T) {
	r := Build([]journal.TradeRecord{trade(2, day(2025, 1, 6), "EURUSD", 90)}, Week{2024, 10})
	assert.Empty(t, r.Trades)
	assert.Zero(t, r.Scores.N)
	assert.Zero(t, r.Evaluated.WinRate)
	assert.Empty(t, r.ByInstrument)
}

func TestScoreBar(t *testing.T) {
	assert.Equal(t, "", ScoreBar(-7))
	assert.Equal(t, "", ScoreBar(0))
	assert.Equal(t, "##", ScoreBar(10))
	assert.Equal(t, strings.Repeat("#", 19), ScoreBar(96))
	assert.Equal(t, strings.Repeat("#", 22), ScoreBar(108))
	assert.Equal(t, strings.Repeat("#", 40), ScoreBar(200))
	assert.Equal(t, strings.Repeat("#", 40), ScoreBar(1e10))
	assert.Equal(t, strings.Repeat("#", 40), ScoreBar(1e300))
	assert.Equal(t, strings.Repeat("#", 40), ScoreBar(math.Inf(1)))
	assert.Equal(t, "", ScoreBar(math.NaN()))
}

func TestWriteHugeStoredScore(t *testing.T) {
	d := day(2025, 1, 6)
	recs := []journal.TradeRecord{trade(2, d, "EURUSD", 1e300), trade(3, d, "GBPUSD", 80)}
	r := Build(recs, WeekOf(d))

	var text bytes.Buffer
	require.NotPanics(t, func() { WriteText(&text, r) })
	assert.Contains(t, text.String(), strings.Repeat("#", 40))
	assert.Contains(t, text.String(), strings.Repeat("#", 16))

	var org bytes.Buffer
	require.NoError(t, WriteOrg(&org, r))
	assert.Contains(t, org.String(), strings.Repeat("#", 40))
}

func TestWriteText(t *testing.T) {
	d := day(2025, 1, 6)
	first := taken(trade(2, d, "EURUSD", 96), journal.ResultWin)
	first.Comment = "textbook"
	recs := []journal.TradeRecord{first, taken(trade(3, d, "GBPUSD", 55), journal.ResultLoss)}

	var buf bytes.Buffer
	WriteText(&buf, Build(recs, WeekOf(d)))
	out := buf.String()

	assert.Contains(t, out, "Weekly Dashboard 2025-W2")
	assert.Contains(t, out, "Week of:       2025-01-06")
	assert.Contains(t, out, " 1. 2025-01-06  EURUSD")
	assert.Contains(t, out, " 96.0%")
	assert.Contains(t, out, "> textbook")
	assert.Contains(t, out, "Win Rate:      50.0%")
	assert.Contains(t, out, "By Session")
	assert.Less(t, strings.Index(out, "EURUSD"), strings.Index(out, "GBPUSD"))
}

func TestWriteTextNoTaken(t *testing.T) {
	var buf bytes.Buffer
	WriteText(&buf, Build([]journal.TradeRecord{trade(2, day(2025, 1, 6), "EURUSD", 50)}, Week{2025, 2}))
	assert.Contains(t, buf.String(), "No trade marked as taken this week.")
	assert.NotContains(t, buf.String(), "By Pair")
}

func TestWriteOrg(t *testing.T) {
	d := day(2025, 1, 6)
	recs := []journal.TradeRecord{
		taken(trade(2, d, "EURUSD", 96), journal.ResultWin),
		trade(3, d, "GBPUSD", 55),
	}

	var buf bytes.Buffer
	require.NoError(t, WriteOrg(&buf, Build(recs, WeekOf(d))))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "* WEEK 2025-W2\n:PROPERTIES:\n"))
	assert.Contains(t, out, ":MEAN_SCORE:  75.5\n")
	assert.Contains(t, out, "| 1 | 2025-01-06 | EURUSD | Buy | M15 | London |  96.0% | Yes | Win | 2 |")
	assert.Contains(t, out, "| 2 | 2025-01-06 | GBPUSD | Buy | M15 | London |  55.0% | - | - | 3 |")
	assert.Contains(t, out, "** By Pair\n")
	assert.Contains(t, out, "| EURUSD | 1 | 1 | 0 | 0 | 100.0 | 96.0 | 2.00 |")
	assert.Contains(t, out, "** By Session\n")
}
