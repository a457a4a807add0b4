package weekly

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/rustyeddy/traderater/journal"
)

const (
	barScale    = 5  // percent per bar cell
	maxBarCells = 40 // 200%
)

// ScoreBar draws a score as a row of '#', one per five percent, capped at
// maxBarCells. Negative and NaN scores draw nothing.
func ScoreBar(score float64) string {
	if !(score > 0) {
		return ""
	}
	if score >= maxBarCells*barScale {
		return strings.Repeat("#", maxBarCells)
	}
	return strings.Repeat("#", int(score/barScale+0.5))
}

func WriteText(w io.Writer, r Report) {
	fmt.Fprintln(w, "==================================================")
	fmt.Fprintf(w, " Weekly Dashboard %s\n", r.Week)
	fmt.Fprintln(w, "==================================================")
	fmt.Fprintf(w, "Week of:       %s\n", r.Week.Monday().Format("2006-01-02"))
	fmt.Fprintf(w, "Trades:        %d\n", len(r.Trades))

	if len(r.Trades) == 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "No trades for this week.")
		return
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Ranking")
	fmt.Fprintln(w, "--------------------------------------------------")
	for i, t := range r.Trades {
		fmt.Fprintf(w, "%2d. %s  %-8s %-4s (%s / %s)  %s  [row %d]\n",
			i+1, t.TradeDate.Format("2006-01-02"), t.Instrument, t.Direction,
			t.Timeframe, t.Session, scoreText(t), t.RowID)
		fmt.Fprintf(w, "    Taken: %-3s  Result: %s\n", orDash(string(t.Taken)), orDash(string(t.Result)))
		if c := strings.TrimSpace(t.Comment); c != "" {
			fmt.Fprintf(w, "    > %s\n", strings.ReplaceAll(c, "\n", " "))
		}
	}

	if len(r.Bars) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Score Distribution")
		fmt.Fprintln(w, "--------------------------------------------------")
		for _, b := range r.Bars {
			fmt.Fprintf(w, "%s %6.1f%% %s\n", b.At.Format("01-02 15:04"), b.Score, ScoreBar(b.Score))
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Score Statistics")
	fmt.Fprintln(w, "--------------------------------------------------")
	if r.Scores.N == 0 {
		fmt.Fprintln(w, "No scores recorded.")
	} else {
		fmt.Fprintf(w, "Mean Score:    %.1f%%\n", r.Scores.Mean)
		fmt.Fprintf(w, "Best Score:    %.1f%%\n", r.Scores.Max)
		fmt.Fprintf(w, "Worst Score:   %.1f%%\n", r.Scores.Min)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Taken Trades")
	fmt.Fprintln(w, "--------------------------------------------------")
	if r.Taken == 0 {
		fmt.Fprintln(w, "No trade marked as taken this week.")
		return
	}
	fmt.Fprintf(w, "Taken:         %d\n", r.Taken)
	if r.Evaluated.Evaluated() == 0 {
		fmt.Fprintln(w, "No Win/Loss/BE result recorded for taken trades.")
		return
	}
	fmt.Fprintf(w, "Wins:          %d\n", r.Evaluated.Wins)
	fmt.Fprintf(w, "Losses:        %d\n", r.Evaluated.Losses)
	fmt.Fprintf(w, "Break Even:    %d\n", r.Evaluated.BreakEvens)
	fmt.Fprintf(w, "Win Rate:      %.1f%%\n", r.Evaluated.WinRate)

	writeGroups(w, "By Pair", r.ByInstrument)
	writeGroups(w, "By Direction", r.ByDirection)
	writeGroups(w, "By Session", r.BySession)
}

func writeGroups(w io.Writer, title string, groups []Group) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, title)
	fmt.Fprintln(w, "--------------------------------------------------")
	fmt.Fprintf(w, "%-10s %6s %4s %4s %4s %8s %7s %6s\n", "", "Trades", "Win", "Loss", "BE", "Win %", "Score", "RR")
	for _, g := range groups {
		fmt.Fprintf(w, "%-10s %6d %4d %4d %4d %7.1f%% %7.1f %6.2f\n",
			g.Key, g.Trades, g.Outcome.Wins, g.Outcome.Losses, g.Outcome.BreakEvens,
			g.Outcome.WinRate, g.MeanScore, g.MeanRR)
	}
}

func scoreText(t journal.TradeRecord) string {
	if !t.ScorePercent.Valid {
		return "  n/a"
	}
	return fmt.Sprintf("%5.1f%%", t.ScorePercent.Float64)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

var reportOrgFuncs = template.FuncMap{
	"score":  scoreText,
	"bar":    ScoreBar,
	"inc":    func(i int) int { return i + 1 },
	"dash":   orDash,
	"date":   func(r journal.TradeRecord) string { return r.TradeDate.Format("2006-01-02") },
	"groups": func(title string, g []Group) groupSection {
		return groupSection{Title: title, Groups: g}
	},
}

type groupSection struct {
	Title  string
	Groups []Group
}

var reportOrg = template.Must(template.New("weekly").Funcs(reportOrgFuncs).Parse(ReportOrgTemplate))

// WriteOrg renders the report as an Org-mode subtree.
func WriteOrg(w io.Writer, r Report) error {
	return reportOrg.Execute(w, r)
}

const ReportOrgTemplate = `* WEEK {{.Week}}
:PROPERTIES:
:WEEK:        {{.Week}}
:MONDAY:      {{.Week.Monday.Format "2006-01-02"}}
:TRADES:      {{len .Trades}}
:TAKEN:       {{.Taken}}
{{- if .Scores.N}}
:MEAN_SCORE:  {{printf "%.1f" .Scores.Mean}}
:MAX_SCORE:   {{printf "%.1f" .Scores.Max}}
:MIN_SCORE:   {{printf "%.1f" .Scores.Min}}
{{- end}}
:WIN_RATE:    {{printf "%.1f" .Evaluated.WinRate}}
:END:

** Ranking
| # | Date | Pair | Dir | TF | Session | Score | Taken | Result | Row |
|---+------+------+-----+----+---------+-------+-------+--------+-----|
{{- range $i, $t := .Trades}}
| {{inc $i}} | {{date $t}} | {{$t.Instrument}} | {{$t.Direction}} | {{$t.Timeframe}} | {{$t.Session}} | {{score $t}} | {{dash (printf "%s" $t.Taken)}} | {{dash (printf "%s" $t.Result)}} | {{$t.RowID}} |
{{- end}}

** Score Distribution
#+begin_example
{{- range .Bars}}
{{.At.Format "01-02 15:04"}} {{printf "%6.1f" .Score}}% {{bar .Score}}
{{- end}}
#+end_example

** Taken Trades
- Taken:     *{{.Taken}}*
- Wins:      *{{.Evaluated.Wins}}*
- Losses:    *{{.Evaluated.Losses}}*
- BE:        *{{.Evaluated.BreakEvens}}*
- Win Rate:  *{{printf "%.1f" .Evaluated.WinRate}}%*
{{template "groups" (groups "By Pair" .ByInstrument)}}
{{- template "groups" (groups "By Direction" .ByDirection)}}
{{- template "groups" (groups "By Session" .BySession)}}
{{- define "groups"}}
** {{.Title}}
| Key | Trades | Win | Loss | BE | Win % | Score | RR |
|-----+--------+-----+------+----+-------+-------+----|
{{- range .Groups}}
| {{.Key}} | {{.Trades}} | {{.Outcome.Wins}} | {{.Outcome.Losses}} | {{.Outcome.BreakEvens}} | {{printf "%.1f" .Outcome.WinRate}} | {{printf "%.1f" .MeanScore}} | {{printf "%.2f" .MeanRR}} |
{{- end}}
{{end}}`

