package scoring

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/rustyeddy/traderater/market"
	"gopkg.in/validator.v2"
)

// Answers is one filled-in questionnaire.
type Answers struct {
	HTF            HTFAlignment  `json:"htf" yaml:"htf" validate:"nonzero"`
	AOI            AOIPosition   `json:"aoi" yaml:"aoi" validate:"nonzero"`
	AOIRecentTouch bool          `json:"aoi_recent_touch" yaml:"aoi_recent_touch"`
	HeadShoulders  HSQuality     `json:"head_shoulders" yaml:"head_shoulders" validate:"nonzero"`
	NecklineBreak  NecklineBreak `json:"neckline_break" yaml:"neckline_break" validate:"nonzero"`
	NecklineRetest bool          `json:"neckline_retest" yaml:"neckline_retest"`
	Continuation   Continuation  `json:"continuation" yaml:"continuation" validate:"nonzero"`
	EMA50          EMAAlignment  `json:"ema50" yaml:"ema50" validate:"nonzero"`
	RiskReward     float64       `json:"rr" yaml:"rr"`
	Plan           PlanAlignment `json:"plan" yaml:"plan" validate:"nonzero"`

	Session    market.Session `json:"session" yaml:"session" validate:"nonzero"`
	Instrument string         `json:"instrument" yaml:"instrument" validate:"nonzero"`

	// PolicyStructureSlider only.
	Structure int `json:"structure" yaml:"structure" validate:"min=0,max=5"`

	// PolicyBonusSliders only.
	Liquidity int `json:"liquidity" yaml:"liquidity" validate:"min=0,max=10"`
	Reaction  int `json:"reaction" yaml:"reaction" validate:"min=0,max=10"`
	MultiTF   int `json:"multi_tf" yaml:"multi_tf" validate:"min=0,max=10"`
	Execution int `json:"execution" yaml:"execution" validate:"min=0,max=5"`
}

// ValidationError lists every problem found in a questionnaire.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "invalid answers: " + strings.Join(e.Problems, "; ")
}

func (e *ValidationError) add(format string, args ...any) {
	e.Problems = append(e.Problems, fmt.Sprintf(format, args...))
}

// Validate checks the answers against the rule table and the slider bounds
// of policy p. It returns a *ValidationError or nil.
func Validate(p ScoringPolicy, a Answers) error {
	verr := &ValidationError{}

	if !p.Valid() {
		verr.add("unknown scoring policy %d", int(p))
	}

	if err := validator.Validate(a); err != nil {
		if errs, ok := err.(validator.ErrorMap); ok {
			fields := make([]string, 0, len(errs))
			for f := range errs {
				fields = append(fields, f)
			}
			sort.Strings(fields)
			for _, f := range fields {
				verr.add("%s: %v", f, errs[f])
			}
		} else {
			verr.add("%v", err)
		}
	}

	if math.IsNaN(a.RiskReward) || math.IsInf(a.RiskReward, 0) || a.RiskReward <= 0 {
		verr.add("rr: must be a positive number, got %v", a.RiskReward)
	}

	checkOption(verr, "htf", a.HTF, htfRules)
	checkOption(verr, "aoi", a.AOI, aoiRules)
	checkOption(verr, "head_shoulders", a.HeadShoulders, hsRules)
	checkOption(verr, "neckline_break", a.NecklineBreak, breakRules)
	checkOption(verr, "continuation", a.Continuation, continuationRules)
	checkOption(verr, "ema50", a.EMA50, emaRules)
	checkOption(verr, "plan", a.Plan, planRules)

	if a.Session != "" && !a.Session.Valid() {
		verr.add("session: unknown session %q", a.Session)
	}

	if p.Valid() {
		active, inactive := p.sliders()
		for _, s := range active {
			if v := s.Value(a); v < 0 || v > s.Max {
				verr.add("%s: %d out of range 0-%d", s.Name, v, s.Max)
			}
		}
		for _, s := range inactive {
			if v := s.Value(a); v != 0 {
				verr.add("%s: not scored by the %s policy", s.Name, p)
			}
		}
	}

	if len(verr.Problems) > 0 {
		return verr
	}
	return nil
}

// checkOption reports an option missing from the rule table. Empty values
// are already reported by the nonzero tag.
func checkOption[K ~string](verr *ValidationError, field string, v K, table map[K]rule) {
	if v == "" {
		return
	}
	if _, ok := table[v]; !ok {
		keys := make([]string, 0, len(table))
		for k := range table {
			keys = append(keys, string(k))
		}
		sort.Strings(keys)
		verr.add("%s: unknown option %q (want one of %s)", field, string(v), strings.Join(keys, ", "))
	}
}
