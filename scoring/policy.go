package scoring

import (
	"fmt"
	"strings"
)

// ScoringPolicy selects the extra category and the accept threshold. Both
// policies share the rest of the rule table.
type ScoringPolicy int

const (
	// PolicyStructureSlider adds a 0-5 HTF market-structure slider and
	// accepts setups scoring 80% or more.
	PolicyStructureSlider ScoringPolicy = iota
	// PolicyBonusSliders adds liquidity, reaction, multi-timeframe and
	// execution sliders and accepts setups scoring 50% or more.
	PolicyBonusSliders
)

func (p ScoringPolicy) String() string {
	switch p {
	case PolicyStructureSlider:
		return "structure_slider"
	case PolicyBonusSliders:
		return "bonus_sliders"
	}
	return fmt.Sprintf("ScoringPolicy(%d)", int(p))
}

func (p ScoringPolicy) Valid() bool {
	return p == PolicyStructureSlider || p == PolicyBonusSliders
}

// Threshold is the minimum score percent for an accepted verdict.
func (p ScoringPolicy) Threshold() float64 {
	if p == PolicyBonusSliders {
		return 50
	}
	return 80
}

// ParsePolicy accepts the policy names plus the flavour aliases used in
// config files ("sheets" and "file").
func ParsePolicy(s string) (ScoringPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "structure_slider", "structure", "sheets", "a":
		return PolicyStructureSlider, nil
	case "bonus_sliders", "bonus", "file", "b":
		return PolicyBonusSliders, nil
	}
	return 0, fmt.Errorf("unknown scoring policy %q (want structure_slider|bonus_sliders)", s)
}

// slider is one integer input added verbatim to the score.
type slider struct {
	Name  string
	Max   int
	Label string
	Value func(Answers) int
}

var structureSliders = []slider{
	{"structure", 5, "HTF market structure aligned", func(a Answers) int { return a.Structure }},
}

var bonusSliders = []slider{
	{"liquidity", 10, "Liquidity grab", func(a Answers) int { return a.Liquidity }},
	{"reaction", 10, "Reaction quality", func(a Answers) int { return a.Reaction }},
	{"multi_tf", 10, "Multi-timeframe confluence", func(a Answers) int { return a.MultiTF }},
	{"execution", 5, "Execution quality", func(a Answers) int { return a.Execution }},
}

// sliders returns the extra-category inputs the policy scores; inactive
// returns the ones it must ignore.
func (p ScoringPolicy) sliders() (active, inactive []slider) {
	if p == PolicyBonusSliders {
		return bonusSliders, structureSliders
	}
	return structureSliders, bonusSliders
}
