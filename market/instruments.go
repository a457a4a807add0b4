package market

import "strings"

// NormalizeInstrument upper-cases and trims a free-text symbol such as
// "xauusd " so it can be matched against currency codes.
func NormalizeInstrument(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// HasCurrency reports whether the instrument symbol mentions any of the
// given currency codes. Matching is a case-insensitive substring test, so
// "usdjpy", "USD_JPY" and "USD/JPY" all contain "JPY".
func HasCurrency(instrument string, codes ...string) bool {
	sym := NormalizeInstrument(instrument)
	for _, c := range codes {
		if strings.Contains(sym, strings.ToUpper(c)) {
			return true
		}
	}
	return false
}
