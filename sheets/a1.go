package sheets

import (
	"fmt"
	"strconv"
	"strings"
)

// Quote returns a sheet title usable in A1 notation.
func Quote(sheet string) string {
	for _, r := range sheet {
		if !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || r == '_') {
			return "'" + strings.ReplaceAll(sheet, "'", "''") + "'"
		}
	}
	return sheet
}

// Range joins a sheet title and a cell reference, e.g. Range("Sheet1", "A1").
func Range(sheet, cells string) string {
	return Quote(sheet) + "!" + cells
}

// ColumnLetter converts a zero-based column index into its letter name:
// 0 is A, 25 is Z, 26 is AA.
func ColumnLetter(idx int) string {
	var b []byte
	for n := idx + 1; n > 0; n = (n - 1) / 26 {
		b = append([]byte{byte('A' + (n-1)%26)}, b...)
	}
	return string(b)
}

// StartRow extracts the first row number of an A1 range such as
// "Sheet1!A5:K5" or "'Trade log'!A12".
func StartRow(a1 string) (int, error) {
	ref := a1
	if i := strings.LastIndex(ref, "!"); i >= 0 {
		ref = ref[i+1:]
	}
	if i := strings.Index(ref, ":"); i >= 0 {
		ref = ref[:i]
	}
	digits := strings.TrimLeft(ref, "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz$")
	digits = strings.TrimPrefix(digits, "$")
	n, err := strconv.Atoi(digits)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("no row number in range %q", a1)
	}
	return n, nil
}
