package market

import (
	"fmt"
	"strings"
)

// Direction is the side of a trade.
type Direction string

const (
	Buy  Direction = "Buy"
	Sell Direction = "Sell"
)

// Valid reports whether d is Buy or Sell.
func (d Direction) Valid() bool {
	return d == Buy || d == Sell
}

// ParseDirection accepts buy/sell in any case, plus long/short.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "buy", "long":
		return Buy, nil
	case "sell", "short":
		return Sell, nil
	}
	return "", fmt.Errorf("unknown direction %q (want Buy|Sell)", s)
}

func (d *Direction) UnmarshalText(b []byte) error {
	v, err := ParseDirection(string(b))
	if err != nil {
		return err
	}
	*d = v
	return nil
}
