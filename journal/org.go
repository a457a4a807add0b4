package journal

import (
	"fmt"
	"strings"
)

// FormatTradeOrg renders a record as an Org-mode entry. Structured fields
// live in the PROPERTIES drawer; the comment becomes the Notes section.
func FormatTradeOrg(t TradeRecord) string {
	var b strings.Builder
	fmt.Fprintf(&b, "** %s %s %s (%s)\n", orgDate(t), t.Instrument, t.Direction, rowLabel(t))
	b.WriteString(":PROPERTIES:\n")
	if t.TradeID != "" {
		fmt.Fprintf(&b, ":TRADE_ID: %s\n", t.TradeID)
	}
	fmt.Fprintf(&b, ":ROW: %d\n", t.RowID)
	fmt.Fprintf(&b, ":SUBMITTED: %s\n", formatDateTime(t.SubmittedAt))
	fmt.Fprintf(&b, ":PAIR: %s\n", t.Instrument)
	fmt.Fprintf(&b, ":DIRECTION: %s\n", t.Direction)
	fmt.Fprintf(&b, ":TIMEFRAME: %s\n", t.Timeframe)
	fmt.Fprintf(&b, ":SESSION: %s\n", t.Session)
	fmt.Fprintf(&b, ":RR: %s\n", formatFloat(t.RiskReward))
	fmt.Fprintf(&b, ":SCORE: %s\n", formatFloat(t.ScorePercent))
	fmt.Fprintf(&b, ":TAKEN: %s\n", t.Taken)
	fmt.Fprintf(&b, ":RESULT: %s\n", t.Result)
	b.WriteString(":END:\n")
	b.WriteString("\n")
	b.WriteString("*** Notes\n")
	if c := strings.TrimSpace(t.Comment); c != "" {
		for _, line := range strings.Split(c, "\n") {
			fmt.Fprintf(&b, "- %s\n", strings.TrimSpace(line))
		}
	} else {
		b.WriteString("- \n")
	}
	return b.String()
}

// FormatTradesOrg renders multiple records separated by blank lines.
func FormatTradesOrg(trades []TradeRecord) string {
	var b strings.Builder
	for i, t := range trades {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(FormatTradeOrg(t))
	}
	return b.String()
}

func orgDate(t TradeRecord) string {
	if t.TradeDate.IsZero() {
		return "[no date]"
	}
	return t.TradeDate.Format("<2006-01-02 Mon>")
}

func rowLabel(t TradeRecord) string {
	if len(t.TradeID) > 8 {
		return t.TradeID[:8]
	}
	if t.TradeID != "" {
		return t.TradeID
	}
	return fmt.Sprintf("row %d", t.RowID)
}
