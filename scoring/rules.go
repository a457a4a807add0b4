package scoring

// rule is the contribution of one categorical choice. An empty note means
// the choice is silent in the notes list.
type rule struct {
	Points float64
	Note   string
}

var htfRules = map[HTFAlignment]rule{
	HTFNone:          {0, "HTF context not aligned (0)"},
	HTFH4Daily:       {10, "H4 + Daily aligned (+10)"},
	HTFDailyWeekly:   {15, "Daily + Weekly aligned (+15)"},
	HTFH4DailyWeekly: {20, "H4 + Daily + Weekly aligned (+20)"},
}

var aoiRules = map[AOIPosition]rule{
	AOINone:        {0, "Not on an AOI (0)"},
	AOIDaily:       {10, "On Daily AOI (+10)"},
	AOIWeekly:      {15, "On Weekly AOI (+15)"},
	AOIDailyWeekly: {20, "Daily + Weekly AOI aligned (+20)"},
}

var aoiRecentTouch = rule{5, "AOI touched recently (+5)"}

var hsRules = map[HSQuality]rule{
	HSNone:    {0, ""},
	HSPresent: {10, "H&S present (+10)"},
	HSClean:   {15, "Very clean H&S (+15)"},
}

var breakRules = map[NecklineBreak]rule{
	BreakSoft:  {3, "Soft neckline break (+3)"},
	BreakSharp: {5, "Sharp neckline break (+5)"},
}

var necklineRetest = rule{3, "Neckline retest (+3)"}

var continuationRules = map[Continuation]rule{
	ContinuationNone:    {0, ""},
	ContinuationAverage: {3, "Average continuation pattern (+3)"},
	ContinuationClean:   {5, "Very clean continuation pattern (+5)"},
}

var emaRules = map[EMAAlignment]rule{
	EMAAgainst: {-5, "Against EMA 50 on most timeframes (-5)"},
	EMAEntryTF: {3, "EMA 50 aligned on entry timeframe only (+3)"},
	EMAH1:      {5, "EMA 50 aligned on H1 (+5)"},
	EMAH4Plus:  {8, "EMA 50 aligned on H4 / HTF (+8)"},
	EMAMultiTF: {10, "EMA 50 aligned on several timeframes (+10)"},
}

var planRules = map[PlanAlignment]rule{
	PlanOff:             {0, "Off plan (0)"},
	PlanInterestingPair: {10, "Interesting pair, not the main setup (+10)"},
	PlanOn:              {20, "Main plan scenario (+20)"},
}

// rrRule is a step function: below 2 scores nothing, [2,3) scores 5,
// 3 and above scores 10.
func rrRule(rr float64) rule {
	switch {
	case rr < 2:
		return rule{0, "RR < 1:2 (0)"}
	case rr < 3:
		return rule{5, "Good RR (+5)"}
	default:
		return rule{10, "Excellent RR (+10)"}
	}
}
