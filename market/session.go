package market

import (
	"fmt"
	"strings"
)

// Session is the trading session a setup was taken in.
type Session string

const (
	Tokyo        Session = "Tokyo"
	Sydney       Session = "Sydney"
	London       Session = "London"
	NewYork      Session = "New York"
	OtherSession Session = "Other"
)

// Sessions lists every known session in display order.
var Sessions = []Session{Tokyo, Sydney, London, NewYork, OtherSession}

func (s Session) Valid() bool {
	for _, v := range Sessions {
		if s == v {
			return true
		}
	}
	return false
}

// ParseSession maps user input and stored labels to a Session. The French
// label "Autre" written by older journals maps to OtherSession.
func ParseSession(s string) (Session, error) {
	switch strings.ToLower(strings.Join(strings.Fields(s), " ")) {
	case "tokyo":
		return Tokyo, nil
	case "sydney":
		return Sydney, nil
	case "london":
		return London, nil
	case "new york", "newyork", "new_york", "ny":
		return NewYork, nil
	case "other", "autre":
		return OtherSession, nil
	}
	return "", fmt.Errorf("unknown session %q", s)
}

// UnmarshalText lets answers files use any spelling ParseSession accepts.
func (s *Session) UnmarshalText(b []byte) error {
	v, err := ParseSession(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}
