// Package weekly buckets journaled trades by ISO week and computes the
// weekly dashboard: ranking, score stats and win rates.
package weekly

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/rustyeddy/traderater/journal"
)

// Week is an ISO-8601 week. Dates near the new year may belong to the
// neighbouring ISO year.
type Week struct {
	Year int
	Week int
}

// WeekOf returns the ISO week containing t.
func WeekOf(t time.Time) Week {
	y, w := t.ISOWeek()
	return Week{Year: y, Week: w}
}

// String formats w like "2025-W1".
func (w Week) String() string {
	return fmt.Sprintf("%d-W%d", w.Year, w.Week)
}

// Before orders weeks chronologically.
func (w Week) Before(o Week) bool {
	if w.Year != o.Year {
		return w.Year < o.Year
	}
	return w.Week < o.Week
}

// Monday returns the first day of w.
func (w Week) Monday() time.Time {
	// January 4th is always in week 1.
	jan4 := time.Date(w.Year, time.January, 4, 0, 0, 0, 0, time.UTC)
	offset := (int(jan4.Weekday()) + 6) % 7
	return jan4.AddDate(0, 0, -offset+(w.Week-1)*7)
}

// weeksIn is 52 or 53.
func weeksIn(year int) int {
	_, w := time.Date(year, time.December, 28, 0, 0, 0, 0, time.UTC).ISOWeek()
	return w
}

// ParseWeek reads "2025-W1", "2025-W01" or "2025W01".
func ParseWeek(s string) (Week, error) {
	in := strings.ToUpper(strings.TrimSpace(s))
	i := strings.Index(in, "W")
	if i <= 0 {
		return Week{}, fmt.Errorf("week %q: want YYYY-Www", s)
	}
	year, err := strconv.Atoi(strings.TrimSuffix(in[:i], "-"))
	if err != nil {
		return Week{}, fmt.Errorf("week %q: bad year", s)
	}
	wk, err := strconv.Atoi(in[i+1:])
	if err != nil {
		return Week{}, fmt.Errorf("week %q: bad week number", s)
	}
	if wk < 1 || wk > weeksIn(year) {
		return Week{}, fmt.Errorf("week %q: %d has %d ISO weeks", s, year, weeksIn(year))
	}
	return Week{Year: year, Week: wk}, nil
}

// Buckets returns the distinct weeks of the records' trade dates, most
// recent first. Records without a trade date are ignored.
func Buckets(recs []journal.TradeRecord) []Week {
	seen := make(map[Week]bool)
	var out []Week
	for _, r := range recs {
		if r.TradeDate.IsZero() {
			continue
		}
		w := WeekOf(r.TradeDate)
		if !seen[w] {
			seen[w] = true
			out = append(out, w)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[j].Before(out[i]) })
	return out
}

// DefaultWeek picks the week shown when none is requested: the week of
// now if it has trades, else the most recent bucket.
func DefaultWeek(buckets []Week, now time.Time) (Week, bool) {
	if len(buckets) == 0 {
		return Week{}, false
	}
	cur := WeekOf(now)
	for _, b := range buckets {
		if b == cur {
			return cur, true
		}
	}
	return buckets[0], true
}

// Filter returns the records traded in w, in storage order.
func Filter(recs []journal.TradeRecord, w Week) []journal.TradeRecord {
	var out []journal.TradeRecord
	for _, r := range recs {
		if !r.TradeDate.IsZero() && WeekOf(r.TradeDate) == w {
			out = append(out, r)
		}
	}
	return out
}

// Rank returns a copy of recs sorted by score, best first. Equal scores
// keep their order and records without a score go last.
func Rank(recs []journal.TradeRecord) []journal.TradeRecord {
	out := append([]journal.TradeRecord(nil), recs...)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].ScorePercent, out[j].ScorePercent
		if a.Valid != b.Valid {
			return a.Valid
		}
		return a.Valid && a.Float64 > b.Float64
	})
	return out
}
