// journal/schema.go
package journal

import "strings"

// Columns is the stored column order shared by every backend.
var Columns = []string{
	"datetime",
	"date_trade",
	"pair",
	"direction",
	"timeframe",
	"session",
	"rr",
	"score_percent",
	"comment",
	"taken",
	"result",
}

// FileColumns is the layout of the CSV journal, which has no taken/result.
var FileColumns = Columns[:9:9]

// columnAliases maps header names written by older journals.
var columnAliases = map[string]string{
	"commentaire": "comment",
}

func canonicalColumn(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	if a, ok := columnAliases[n]; ok {
		return a
	}
	return n
}

// HeaderMatches reports whether header names exactly the expected columns
// in order, allowing aliases.
func HeaderMatches(header, expected []string) bool {
	if len(header) != len(expected) {
		return false
	}
	for i := range header {
		if canonicalColumn(header[i]) != expected[i] {
			return false
		}
	}
	return true
}

// columnIndex locates columns by header name.
func columnIndex(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[canonicalColumn(h)] = i
	}
	return idx
}

const (
	dateTimeLayout = "2006-01-02T15:04:05"
	dateLayout     = "2006-01-02"
)

// SQLiteSchema creates the trades table. The first two columns are not
// part of Columns: id is the RowID, trade_id a ULID.
const SQLiteSchema = `
CREATE TABLE IF NOT EXISTS trades (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	trade_id TEXT NOT NULL UNIQUE,
	datetime TEXT NOT NULL,
	date_trade TEXT NOT NULL,
	pair TEXT NOT NULL,
	direction TEXT NOT NULL,
	timeframe TEXT NOT NULL,
	session TEXT NOT NULL,
	rr REAL,
	score_percent REAL,
	comment TEXT NOT NULL DEFAULT '',
	taken TEXT NOT NULL DEFAULT '',
	result TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_trades_date ON trades(date_trade);
`

// PostgresSchema is the Postgres form of SQLiteSchema.
const PostgresSchema = `
CREATE TABLE IF NOT EXISTS trades (
	id BIGSERIAL PRIMARY KEY,
	trade_id TEXT NOT NULL UNIQUE,
	datetime TIMESTAMPTZ NOT NULL,
	date_trade DATE NOT NULL,
	pair TEXT NOT NULL,
	direction TEXT NOT NULL,
	timeframe TEXT NOT NULL,
	session TEXT NOT NULL,
	rr DOUBLE PRECISION,
	score_percent DOUBLE PRECISION,
	comment TEXT NOT NULL DEFAULT '',
	taken TEXT NOT NULL DEFAULT '',
	result TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_trades_date ON trades(date_trade);
`

// tableColumns is the column set both SQL schemas create.
var tableColumns = append([]string{"id", "trade_id"}, Columns...)

func sameColumnSet(got []string) bool {
	if len(got) != len(tableColumns) {
		return false
	}
	want := make(map[string]bool, len(tableColumns))
	for _, c := range tableColumns {
		want[c] = true
	}
	for _, c := range got {
		if !want[strings.ToLower(c)] {
			return false
		}
	}
	return true
}
