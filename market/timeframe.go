package market

import (
	"fmt"
	"strings"
)

// Timeframe is the entry chart timeframe of a setup.
type Timeframe string

const (
	M1  Timeframe = "M1"  // 1 minute
	M5  Timeframe = "M5"  // 5 minutes
	M15 Timeframe = "M15" // 15 minutes
	M30 Timeframe = "M30" // 30 minutes
	H1  Timeframe = "H1"  // 1 hour
	H2  Timeframe = "H2"  // 2 hours
	H4  Timeframe = "H4"  // 4 hours
)

// Timeframes lists the entry timeframes in ascending order.
var Timeframes = []Timeframe{M1, M5, M15, M30, H1, H2, H4}

func (tf Timeframe) Valid() bool {
	for _, t := range Timeframes {
		if tf == t {
			return true
		}
	}
	return false
}

// ParseTimeframe accepts "m15", "M15" and the like.
func ParseTimeframe(s string) (Timeframe, error) {
	tf := Timeframe(strings.ToUpper(strings.TrimSpace(s)))
	if !tf.Valid() {
		return "", fmt.Errorf("unknown timeframe %q (want one of %v)", s, Timeframes)
	}
	return tf, nil
}

func (tf *Timeframe) UnmarshalText(b []byte) error {
	v, err := ParseTimeframe(string(b))
	if err != nil {
		return err
	}
	*tf = v
	return nil
}
