package model

// Valuation is the output row for one player: the raw record it was built
// from plus every derived column the pipeline computed.
type Valuation struct {
	Record  PlayerSeasonRecord
	Metrics Metrics

	// Role-weighted performance scores. All four are computed for every
	// player so "what if he played elsewhere" comparisons stay possible;
	// RolePerf selects the score matching the player's own role.
	Perf           map[Role]float64
	RolePerf       float64
	PerfPercentile float64

	Stars int      // 1..5, 0 means "not ranked"
	Tags  []string // at most 4, in rule-evaluation order

	XFP90     float64
	XFPSeason float64

	PriceExpected int // credits, >= 1
	RangeLow      int
	RangeHigh     int

	// Fallbacks lists every lenient degradation applied while computing
	// this row, so a 0 that came from a missing denominator can be told
	// apart from a real 0.
	Fallbacks []Fallback
}

// Fallback records one silent degradation applied to a player's row.
type Fallback struct {
	Stage string // pipeline stage, e.g. "rates", "pricing"
	Field string // affected column
}

// Result is what one pipeline invocation returns.
type Result struct {
	Players []Valuation

	// Bookkeeping for diagnostics and metrics.
	RowsIngested   int
	RowsCollapsed  int // duplicate (player, season, team) rows merged
	RowsDropped    int // rows outside the season window or superseded
	TotalFallbacks int
}
