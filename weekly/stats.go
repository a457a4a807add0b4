package weekly

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rustyeddy/traderater/journal"
)

// Scores summarises score_percent over every trade of the week. N counts
// the trades that have a score; the other fields are zero when N is 0.
type Scores struct {
	Mean float64
	Max  float64
	Min  float64
	N    int
}

// Outcome counts results of taken trades. Only Win, Loss and BE are
// evaluated; WinRate is 0 when none are.
type Outcome struct {
	Wins       int
	Losses     int
	BreakEvens int
	WinRate    float64
}

// Evaluated is the number of trades the win rate is computed over.
func (o Outcome) Evaluated() int {
	return o.Wins + o.Losses + o.BreakEvens
}

// Group is the outcome of the evaluated trades sharing one key. Rates and
// means are rounded for display: win rate and score to 1 decimal, RR to 2.
type Group struct {
	Key       string
	Trades    int
	Outcome   Outcome
	MeanScore float64
	MeanRR    float64
}

// Bar is one column of the score distribution chart.
type Bar struct {
	At    time.Time
	Label string
	Score float64
}

// Report is the weekly dashboard.
type Report struct {
	Week Week

	// Trades is the week ranked by score.
	Trades []journal.TradeRecord
	Bars   []Bar
	Scores Scores

	// Taken counts trades marked Taken=Yes; Evaluated covers those with
	// a Win, Loss or BE result.
	Taken     int
	Evaluated Outcome

	ByInstrument []Group
	ByDirection  []Group
	BySession    []Group
}

// Build computes the dashboard of week w.
func Build(recs []journal.TradeRecord, w Week) Report {
	week := Filter(recs, w)
	r := Report{
		Week:   w,
		Trades: Rank(week),
		Scores: scoreStats(week),
	}

	for _, t := range r.Trades {
		if t.ScorePercent.Valid {
			r.Bars = append(r.Bars, Bar{
				At:    t.SubmittedAt,
				Label: t.Instrument + " " + string(t.Direction),
				Score: t.ScorePercent.Float64,
			})
		}
	}

	var eval []journal.TradeRecord
	for _, t := range week {
		if t.Taken != journal.TakenYes {
			continue
		}
		r.Taken++
		if t.Result.Evaluated() {
			eval = append(eval, t)
		}
	}
	r.Evaluated = outcome(eval)

	r.ByInstrument = groupBy(eval, func(t journal.TradeRecord) string { return t.Instrument })
	r.ByDirection = groupBy(eval, func(t journal.TradeRecord) string { return string(t.Direction) })
	r.BySession = groupBy(eval, func(t journal.TradeRecord) string { return string(t.Session) })
	return r
}

// WinRate is wins / (wins+losses+breakevens) * 100 over recs, or 0 when
// none of them has an evaluated result.
func WinRate(recs []journal.TradeRecord) float64 {
	return outcome(recs).WinRate
}

func outcome(recs []journal.TradeRecord) Outcome {
	var o Outcome
	for _, t := range recs {
		switch t.Result {
		case journal.ResultWin:
			o.Wins++
		case journal.ResultLoss:
			o.Losses++
		case journal.ResultBreakEven:
			o.BreakEvens++
		}
	}
	if n := o.Evaluated(); n > 0 {
		o.WinRate = float64(o.Wins) / float64(n) * 100
	}
	return o
}

func scoreStats(recs []journal.TradeRecord) Scores {
	var s Scores
	var sum float64
	for _, t := range recs {
		if !t.ScorePercent.Valid {
			continue
		}
		v := t.ScorePercent.Float64
		if s.N == 0 || v > s.Max {
			s.Max = v
		}
		if s.N == 0 || v < s.Min {
			s.Min = v
		}
		sum += v
		s.N++
	}
	if s.N > 0 {
		s.Mean = sum / float64(s.N)
	}
	return s
}

func groupBy(recs []journal.TradeRecord, key func(journal.TradeRecord) string) []Group {
	idx := make(map[string]int)
	var members [][]journal.TradeRecord
	var keys []string
	for _, t := range recs {
		k := key(t)
		i, ok := idx[k]
		if !ok {
			i = len(keys)
			idx[k] = i
			keys = append(keys, k)
			members = append(members, nil)
		}
		members[i] = append(members[i], t)
	}

	out := make([]Group, 0, len(keys))
	for i, k := range keys {
		g := Group{Key: k, Trades: len(members[i]), Outcome: outcome(members[i])}
		g.Outcome.WinRate = round(g.Outcome.WinRate, 1)
		g.MeanScore = round(mean(members[i], func(t journal.TradeRecord) (float64, bool) {
			return t.ScorePercent.Float64, t.ScorePercent.Valid
		}), 1)
		g.MeanRR = round(mean(members[i], func(t journal.TradeRecord) (float64, bool) {
			return t.RiskReward.Float64, t.RiskReward.Valid
		}), 2)
		out = append(out, g)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Outcome.WinRate != out[j].Outcome.WinRate {
			return out[i].Outcome.WinRate > out[j].Outcome.WinRate
		}
		return out[i].Key < out[j].Key
	})
	return out
}

// mean skips missing values and is 0 when there are none.
func mean(recs []journal.TradeRecord, val func(journal.TradeRecord) (float64, bool)) float64 {
	sum := decimal.Zero
	n := 0
	for _, t := range recs {
		if v, ok := val(t); ok {
			sum = sum.Add(decimal.NewFromFloat(v))
			n++
		}
	}
	if n == 0 {
		return 0
	}
	f, _ := sum.Div(decimal.NewFromInt(int64(n))).Float64()
	return f
}

func round(v float64, places int32) float64 {
	f, _ := decimal.NewFromFloat(v).Round(places).Float64()
	return f
}
