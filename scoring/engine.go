package scoring

import (
	"fmt"

	"github.com/rustyeddy/traderater/market"
)

// Categories in the order their notes are reported.
const (
	CategoryContext    = "context"
	CategoryZone       = "zone"
	CategoryPattern    = "pattern"
	CategoryConfluence = "confluence"
	CategoryRR         = "rr"
	CategoryPlan       = "plan"
	CategorySession    = "session"
	CategoryExtra      = "extra"
)

// Contribution is the share of the score coming from one answer.
type Contribution struct {
	Category string
	Points   float64
	Note     string
}

// Result is the outcome of scoring one questionnaire.
type Result struct {
	Score     float64
	Notes     []string
	Threshold float64
	Accepted  bool
	Policy    ScoringPolicy
}

// Verdict is the one-line accept/reject message shown with the score.
func (r Result) Verdict() string {
	if r.Accepted {
		return fmt.Sprintf("ACCEPT: %.1f%% meets the %.0f%% bar", r.Score, r.Threshold)
	}
	return fmt.Sprintf("NO TRADE: %.1f%% is below the %.0f%% bar", r.Score, r.Threshold)
}

// Engine scores questionnaires under a single policy, selected once per
// deployment.
type Engine struct {
	Policy ScoringPolicy
}

func NewEngine(p ScoringPolicy) Engine {
	return Engine{Policy: p}
}

func (e Engine) Compute(a Answers) (Result, error) {
	return Compute(e.Policy, a)
}

// Compute validates a and returns its score, notes and verdict under p.
func Compute(p ScoringPolicy, a Answers) (Result, error) {
	parts, err := Contributions(p, a)
	if err != nil {
		return Result{}, err
	}

	res := Result{
		Threshold: p.Threshold(),
		Policy:    p,
		Notes:     make([]string, 0, len(parts)),
	}
	for _, c := range parts {
		res.Score += c.Points
		if c.Note != "" {
			res.Notes = append(res.Notes, c.Note)
		}
	}
	res.Accepted = res.Score >= res.Threshold
	return res, nil
}

// Contributions validates a and returns every category contribution in
// note order. Contributions are independent of each other, so their sum
// does not depend on evaluation order.
func Contributions(p ScoringPolicy, a Answers) ([]Contribution, error) {
	if err := Validate(p, a); err != nil {
		return nil, err
	}

	var out []Contribution
	add := func(cat string, r rule) {
		out = append(out, Contribution{Category: cat, Points: r.Points, Note: r.Note})
	}

	add(CategoryContext, htfRules[a.HTF])

	add(CategoryZone, aoiRules[a.AOI])
	if a.AOIRecentTouch {
		add(CategoryZone, aoiRecentTouch)
	}

	add(CategoryPattern, hsRules[a.HeadShoulders])
	add(CategoryPattern, breakRules[a.NecklineBreak])
	if a.NecklineRetest {
		add(CategoryPattern, necklineRetest)
	}
	add(CategoryPattern, continuationRules[a.Continuation])

	add(CategoryConfluence, emaRules[a.EMA50])
	add(CategoryRR, rrRule(a.RiskReward))
	add(CategoryPlan, planRules[a.Plan])
	add(CategorySession, sessionRule(a.Session, a.Instrument))

	active, _ := p.sliders()
	for _, s := range active {
		v := s.Value(a)
		r := rule{Points: float64(v)}
		if v > 0 {
			r.Note = fmt.Sprintf("%s (+%d)", s.Label, v)
		}
		add(CategoryExtra, r)
	}

	return out, nil
}

// sessionRule rewards the liquid sessions and penalises Asian sessions
// unless the instrument trades a local currency.
func sessionRule(s market.Session, instrument string) rule {
	switch s {
	case market.London, market.NewYork:
		return rule{5, fmt.Sprintf("Session %s (+5)", s)}
	case market.Tokyo:
		if market.HasCurrency(instrument, "JPY") {
			return rule{0, "Tokyo OK for JPY (0)"}
		}
		return rule{-5, "Session Tokyo (-5)"}
	case market.Sydney:
		if market.HasCurrency(instrument, "AUD", "NZD") {
			return rule{0, "Sydney OK for AUD/NZD (0)"}
		}
		return rule{-5, "Session Sydney (-5)"}
	}
	return rule{}
}
