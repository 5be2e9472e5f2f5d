// Package xfp converts per-90 rates into an expected fantasy-points
// estimate, per 90 minutes and per season.
package xfp

import (
	"math"

	"github.com/fantacopilot/valuation/internal/domain/model"
)

// Scoring values of the classic fantacalcio ruleset.
const (
	goalValue       = 3.0
	assistValue     = 1.0
	cleanSheetValue = 1.0
	penSaveValue    = 3.0

	yellowMalus   = 0.5
	redMalus      = 1.0
	ownGoalMalus  = 2.0
	concededMalus = 1.0

	// Ratings above this baseline earn a bonus point-for-point.
	ratingBaseline = 6.0

	// Matchdays in a Serie A season.
	SeasonMatches = 38.0
)

// Estimate is the expected fantasy-points profile of one player.
type Estimate struct {
	Per90  float64 // may be negative for card-heavy, low-output players
	Season float64 // availability-adjusted season total, never negative
}

// Compute derives the xFP estimate for one player from the derived rates.
//
// The season figure discounts twice on purpose: minutes_share penalizes
// players who play partial matches, availability penalizes players who
// miss matchdays outright. The two compound rather than double-count.
func Compute(role model.Role, m model.Metrics, appearances float64) Estimate {
	ratingBonus := math.Max(0, m.Get(model.MetricRatingAverage)-ratingBaseline)

	malus := m.Get(model.MetricYellowPer90)*yellowMalus +
		m.Get(model.MetricRedPer90)*redMalus +
		m.Get(model.MetricOwnGoalsPer90)*ownGoalMalus
	if role == model.Goalkeeper || role == model.Defender {
		malus += m.Get(model.MetricGoalsConcededPer90) * concededMalus
	}

	var per90 float64
	if role == model.Goalkeeper {
		per90 = ratingBonus +
			m.Get(model.MetricCleanSheetRate)*cleanSheetValue +
			m.Get(model.MetricPenSaveRate)*penSaveValue -
			malus
	} else {
		per90 = m.Get(model.MetricGoalsPer90)*goalValue +
			m.Get(model.MetricAssistsPer90)*assistValue +
			ratingBonus -
			malus
	}

	clipped := math.Max(0, per90)
	availability := math.Min(appearances, SeasonMatches) / SeasonMatches
	season := clipped * m.Get(model.MetricMinutesShare) * SeasonMatches * availability

	return Estimate{Per90: per90, Season: season}
}
