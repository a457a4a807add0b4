package journal

import (
	"fmt"
	"strings"

	"github.com/rustyeddy/traderater/market"
)

// ParseTaken accepts yes/no in English or French. An empty string is unset.
func ParseTaken(s string) (Taken, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return TakenUnset, nil
	case "yes", "y", "true", "oui":
		return TakenYes, nil
	case "no", "n", "false", "non":
		return TakenNo, nil
	}
	return "", fmt.Errorf("unknown taken value %q (want yes|no)", s)
}

// ParseResult accepts the stored labels and the ones older French
// journals wrote. An empty string is unset.
func ParseResult(s string) (Result, error) {
	switch strings.ToLower(strings.Join(strings.Fields(s), " ")) {
	case "":
		return ResultUnset, nil
	case "win", "w":
		return ResultWin, nil
	case "loss", "l":
		return ResultLoss, nil
	case "be", "breakeven", "break even", "break_even":
		return ResultBreakEven, nil
	case "nottaken", "not taken", "not_taken", "non pris":
		return ResultNotTaken, nil
	}
	return "", fmt.Errorf("unknown result %q (want win|loss|be|nottaken)", s)
}

// The load* helpers never fail: a label that cannot be parsed is kept
// verbatim so the record still loads, and reports Valid() == false.

func loadTaken(s string) Taken {
	if t, err := ParseTaken(s); err == nil {
		return t
	}
	return Taken(strings.TrimSpace(s))
}

func loadResult(s string) Result {
	if r, err := ParseResult(s); err == nil {
		return r
	}
	return Result(strings.TrimSpace(s))
}

func loadSession(s string) market.Session {
	if v, err := market.ParseSession(s); err == nil {
		return v
	}
	return market.Session(strings.TrimSpace(s))
}

func loadDirection(s string) market.Direction {
	if v, err := market.ParseDirection(s); err == nil {
		return v
	}
	return market.Direction(strings.TrimSpace(s))
}

func loadTimeframe(s string) market.Timeframe {
	if v, err := market.ParseTimeframe(s); err == nil {
		return v
	}
	return market.Timeframe(strings.TrimSpace(s))
}
