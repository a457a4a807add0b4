package journal

import (
	"database/sql"
	"math"
	"strconv"
	"strings"
	"time"
)

// toRow renders rec in the order of cols.
func toRow(rec TradeRecord, cols []string) []string {
	row := make([]string, len(cols))
	for i, c := range cols {
		row[i] = fieldString(rec, c)
	}
	return row
}

func fieldString(rec TradeRecord, col string) string {
	switch col {
	case "datetime":
		return formatDateTime(rec.SubmittedAt)
	case "date_trade":
		return formatDate(rec.TradeDate)
	case "pair":
		return rec.Instrument
	case "direction":
		return string(rec.Direction)
	case "timeframe":
		return string(rec.Timeframe)
	case "session":
		return string(rec.Session)
	case "rr":
		return formatFloat(rec.RiskReward)
	case "score_percent":
		return formatFloat(rec.ScorePercent)
	case "comment":
		return rec.Comment
	case "taken":
		return string(rec.Taken)
	case "result":
		return string(rec.Result)
	}
	return ""
}

// fromRow builds a record from a stored row. Coercion never fails: values
// that cannot be parsed are left missing.
func fromRow(row []string, idx map[string]int) TradeRecord {
	get := func(col string) string {
		i, ok := idx[col]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	return TradeRecord{
		SubmittedAt:  parseDateTime(get("datetime")),
		TradeDate:    parseDate(get("date_trade")),
		Instrument:   get("pair"),
		Direction:    loadDirection(get("direction")),
		Timeframe:    loadTimeframe(get("timeframe")),
		Session:      loadSession(get("session")),
		RiskReward:   parseFloat(get("rr")),
		ScorePercent: parseFloat(get("score_percent")),
		Comment:      get("comment"),
		Taken:        loadTaken(get("taken")),
		Result:       loadResult(get("result")),
	}
}

func formatDateTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateTimeLayout)
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateLayout)
}

func formatFloat(v sql.NullFloat64) string {
	if !v.Valid {
		return ""
	}
	return strconv.FormatFloat(v.Float64, 'f', -1, 64)
}

var dateTimeLayouts = []string{
	dateTimeLayout,
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05.999999",
	"2006-01-02 15:04:05.999999",
	"2006-01-02 15:04",
	"02/01/2006 15:04:05",
	dateLayout,
}

func parseDateTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	for _, layout := range dateTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

var dateLayouts = []string{
	dateLayout,
	"2006/01/02",
	"02/01/2006",
	dateTimeLayout,
	time.RFC3339,
	"2006-01-02 15:04:05",
}

func parseDate(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			y, m, d := t.Date()
			return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
		}
	}
	return time.Time{}
}

// parseFloat accepts "2.5", "2,5" and "85%".
func parseFloat(s string) sql.NullFloat64 {
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "%"))
	if s == "" {
		return sql.NullFloat64{}
	}
	if !strings.Contains(s, ".") {
		s = strings.Replace(s, ",", ".", 1)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return sql.NullFloat64{}
	}
	return Float(v)
}
