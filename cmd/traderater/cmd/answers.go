package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/rustyeddy/traderater/market"
	"github.com/rustyeddy/traderater/scoring"
)

// setupFile is the YAML answers file: the questionnaire plus the fields
// that describe the trade itself.
type setupFile struct {
	scoring.Answers `yaml:",inline"`

	Date      string           `yaml:"date"`
	Direction market.Direction `yaml:"direction"`
	Timeframe market.Timeframe `yaml:"timeframe"`
	Comment   string           `yaml:"comment"`
}

// setupFlags override answers file values from the command line.
type setupFlags struct {
	file       string
	instrument string
	session    string
	rr         float64
	date       string
	direction  string
	timeframe  string
	comment    string
	structure  int
	liquidity  int
	reaction   int
	multiTF    int
	execution  int
}

func (f *setupFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVarP(&f.file, "file", "f", "", "answers file (yaml)")
	fl.StringVarP(&f.instrument, "instrument", "i", "", "instrument, e.g. EURUSD")
	fl.StringVarP(&f.session, "session", "s", "", "session: tokyo, sydney, london, ny, other")
	fl.Float64Var(&f.rr, "rr", 0, "risk/reward, e.g. 2.5")
	fl.StringVar(&f.date, "date", "", "trade date YYYY-MM-DD (default today)")
	fl.StringVar(&f.direction, "direction", "", "buy or sell")
	fl.StringVar(&f.timeframe, "timeframe", "", "entry timeframe, e.g. M15")
	fl.StringVar(&f.comment, "comment", "", "free text comment")
	fl.IntVar(&f.structure, "structure", 0, "HTF structure slider 0-5 (structure_slider policy)")
	fl.IntVar(&f.liquidity, "liquidity", 0, "liquidity grab slider 0-10 (bonus_sliders policy)")
	fl.IntVar(&f.reaction, "reaction", 0, "reaction quality slider 0-10 (bonus_sliders policy)")
	fl.IntVar(&f.multiTF, "multi-tf", 0, "multi-timeframe confluence slider 0-10 (bonus_sliders policy)")
	fl.IntVar(&f.execution, "execution", 0, "execution quality slider 0-5 (bonus_sliders policy)")
}

// load reads the answers file, if any, and applies the flags that were set.
func (f *setupFlags) load(cmd *cobra.Command) (setupFile, error) {
	var s setupFile
	if f.file != "" {
		data, err := os.ReadFile(f.file)
		if err != nil {
			return s, fmt.Errorf("read answers: %w", err)
		}
		if err := yaml.Unmarshal(data, &s); err != nil {
			return s, fmt.Errorf("parse answers %s: %w", f.file, err)
		}
	}

	changed := cmd.Flags().Changed
	if changed("instrument") {
		s.Instrument = strings.TrimSpace(f.instrument)
	}
	if changed("session") {
		v, err := market.ParseSession(f.session)
		if err != nil {
			return s, err
		}
		s.Session = v
	}
	if changed("rr") {
		s.RiskReward = f.rr
	}
	if changed("date") {
		s.Date = f.date
	}
	if changed("direction") {
		v, err := market.ParseDirection(f.direction)
		if err != nil {
			return s, err
		}
		s.Direction = v
	}
	if changed("timeframe") {
		v, err := market.ParseTimeframe(f.timeframe)
		if err != nil {
			return s, err
		}
		s.Timeframe = v
	}
	if changed("comment") {
		s.Comment = f.comment
	}
	if changed("structure") {
		s.Structure = f.structure
	}
	if changed("liquidity") {
		s.Liquidity = f.liquidity
	}
	if changed("reaction") {
		s.Reaction = f.reaction
	}
	if changed("multi-tf") {
		s.MultiTF = f.multiTF
	}
	if changed("execution") {
		s.Execution = f.execution
	}
	return s, nil
}

// tradeDate parses Date, defaulting to today.
func (s setupFile) tradeDate(now time.Time) (time.Time, error) {
	if s.Date == "" {
		y, m, d := now.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
	}
	t, err := time.Parse("2006-01-02", s.Date)
	if err != nil {
		return time.Time{}, fmt.Errorf("date %q: want YYYY-MM-DD", s.Date)
	}
	return t, nil
}
