package model

// Metrics maps derived metric names to values. Normalized variants carry
// the "_z" suffix, mirroring the column naming of the exported table.
type Metrics map[string]float64

// Get returns the named metric, or 0 when it was never computed. Missing
// metrics must contribute zero to weighted sums, never an error.
func (m Metrics) Get(name string) float64 {
	if m == nil {
		return 0
	}
	return m[name]
}

// Canonical derived metric names.
const (
	MetricGoalsPer90             = "goals_per_90"
	MetricAssistsPer90           = "assists_per_90"
	MetricKeyPassesPer90         = "key_passes_per_90"
	MetricCrossesPer90           = "crosses_per_90"
	MetricBigChancesPer90        = "big_chances_created_per_90"
	MetricShotsOnTargetPer90     = "sot_per_90"
	MetricSuccDribblesPer90      = "succ_dribbles_per_90"
	MetricDefActionsPer90        = "def_actions_per_90"
	MetricTacklesPer90           = "tackles_per_90"
	MetricInterceptionsPer90     = "interceptions_per_90"
	MetricClearancesPer90        = "clearances_per_90"
	MetricSavesPer90             = "saves_per_90"
	MetricGoalsConcededPer90     = "goals_conceded_per_90"
	MetricYellowPer90            = "yellow_per_90"
	MetricRedPer90               = "red_per_90"
	MetricOwnGoalsPer90          = "own_goals_per_90"
	MetricConversionRate         = "conversion_rate"
	MetricShotsOnTargetRate      = "sot_rate"
	MetricTackleSuccessRate      = "tackle_success_rate"
	MetricCleanSheetRate         = "clean_sheet_rate"
	MetricCrossAccuracy          = "cross_accuracy"
	MetricDribbleSuccessRate     = "dribble_success_rate"
	MetricAerialDuelsWinRate     = "aerial_duels_win_rate"
	MetricDuelsWinRate           = "duels_win_rate"
	MetricSaveSuccessRate        = "save_success_rate"
	MetricPenSaveRate            = "pen_save_rate"
	MetricStartingRate           = "starting_rate"
	MetricMinutesShare           = "minutes_share"
	MetricBenchRate              = "bench_rate"
	MetricInjuryRisk             = "injury_risk"
	MetricRatingAverage          = "rating_average"
	MetricDefEfficiencyIndex     = "def_efficiency_index"
	MetricDangerCreationIndex    = "danger_creation_index"
	MetricWingThreatIndex        = "wing_threat_index"
	MetricPerformancePercentile  = "performance_percentile"
	MetricDefActionsPer90Rank    = "def_actions_per_90_rank"
)

// ZSuffix is appended to a metric name once it has been z-scored and
// rescaled into [0, 1].
const ZSuffix = "_z"

// InjuryBand buckets injury_risk (injuries per 10 appearances).
type InjuryBand int

const (
	InjuryBandLow  InjuryBand = iota // fewer than 1 per 10 appearances
	InjuryBandMid                    // 1 to 2
	InjuryBandHigh                   // more than 2
)

// String returns the band label used in the exported table.
func (b InjuryBand) String() string {
	switch b {
	case InjuryBandMid:
		return "Mid"
	case InjuryBandHigh:
		return "High"
	default:
		return "Low"
	}
}

// BandInjuryRisk classifies an injury_risk value into its band.
func BandInjuryRisk(risk float64) InjuryBand {
	switch {
	case risk > 2:
		return InjuryBandHigh
	case risk >= 1:
		return InjuryBandMid
	default:
		return InjuryBandLow
	}
}
