package scoring

// Questionnaire options. The string values are what answers files use.

type HTFAlignment string

const (
	HTFNone          HTFAlignment = "none"
	HTFH4Daily       HTFAlignment = "h4_daily"
	HTFDailyWeekly   HTFAlignment = "daily_weekly"
	HTFH4DailyWeekly HTFAlignment = "h4_daily_weekly"
)

type AOIPosition string

const (
	AOINone        AOIPosition = "none"
	AOIDaily       AOIPosition = "daily"
	AOIWeekly      AOIPosition = "weekly"
	AOIDailyWeekly AOIPosition = "daily_weekly"
)

// HSQuality grades the Head & Shoulders pattern in the direction of the trade.
type HSQuality string

const (
	HSNone    HSQuality = "none"
	HSPresent HSQuality = "present"
	HSClean   HSQuality = "clean"
)

type NecklineBreak string

const (
	BreakSoft  NecklineBreak = "soft"
	BreakSharp NecklineBreak = "sharp"
)

type Continuation string

const (
	ContinuationNone    Continuation = "none"
	ContinuationAverage Continuation = "average"
	ContinuationClean   Continuation = "clean"
)

// EMAAlignment describes where price sits relative to the 50 EMA.
type EMAAlignment string

const (
	EMAAgainst EMAAlignment = "against"
	EMAEntryTF EMAAlignment = "entry_tf"
	EMAH1      EMAAlignment = "h1"
	EMAH4Plus  EMAAlignment = "h4_plus"
	EMAMultiTF EMAAlignment = "multi_tf"
)

// PlanAlignment links the setup to the start-of-week plan.
type PlanAlignment string

const (
	PlanOff             PlanAlignment = "off_plan"
	PlanInterestingPair PlanAlignment = "interesting_pair"
	PlanOn              PlanAlignment = "on_plan"
)
