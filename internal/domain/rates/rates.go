// Package rates derives safe-division ratios and per-90-minute rates from
// raw counting statistics. Every helper is total: a zero, negative, or
// missing denominator yields 0, never an error, NaN, or Inf.
package rates

import (
	"math"

	"github.com/fantacopilot/valuation/internal/domain/model"
)

// StageName identifies this stage in fallback diagnostics.
const StageName = "rates"

// matchMinutes is the nominal length of one appearance.
const matchMinutes = 90.0

// Per90 rescales a counting stat to per-90-minutes. The second return is
// true when the fallback value was used instead of a real division.
func Per90(value, minutes float64) (float64, bool) {
	if minutes <= 0 {
		return 0, true
	}
	v := value / minutes * matchMinutes
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, true
	}
	return v, false
}

// Ratio divides num by den with the same totality contract as Per90.
func Ratio(num, den float64) (float64, bool) {
	if den <= 0 {
		return 0, true
	}
	v := num / den
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, true
	}
	return v, false
}

// Compute derives the full metric set for one player-season. The returned
// fallback list names every field that degraded to 0 because its
// denominator was missing or zero.
func Compute(rec model.PlayerSeasonRecord) (model.Metrics, []model.Fallback) {
	s := rec.Stats
	m := make(model.Metrics, 40)
	var fb []model.Fallback

	set := func(name string, value float64, fell bool) {
		m[name] = value
		if fell {
			fb = append(fb, model.Fallback{Stage: StageName, Field: name})
		}
	}

	per90 := func(name string, value float64) {
		v, fell := Per90(value, s.MinutesPlayed)
		set(name, v, fell)
	}
	ratio := func(name string, num, den float64) {
		v, fell := Ratio(num, den)
		set(name, v, fell)
	}

	// Offensive output.
	per90(model.MetricGoalsPer90, s.Goals)
	per90(model.MetricAssistsPer90, s.Assists)
	per90(model.MetricKeyPassesPer90, s.KeyPasses)
	per90(model.MetricCrossesPer90, s.CrossesTotal)
	per90(model.MetricBigChancesPer90, s.BigChancesCreated)
	per90(model.MetricShotsOnTargetPer90, s.ShotsOnTarget)
	per90(model.MetricSuccDribblesPer90, s.DribblesSucceeded)
	ratio(model.MetricConversionRate, s.Goals, s.ShotsTotal)
	ratio(model.MetricShotsOnTargetRate, s.ShotsOnTarget, s.ShotsTotal)

	// Defensive work.
	defActions := s.Clearances + s.Interceptions + s.ShotsBlocked
	per90(model.MetricDefActionsPer90, defActions)
	per90(model.MetricTacklesPer90, s.Tackles)
	per90(model.MetricInterceptionsPer90, s.Interceptions)
	per90(model.MetricClearancesPer90, s.Clearances)
	ratio(model.MetricTackleSuccessRate, s.Tackles, s.DuelsTotal)
	ratio(model.MetricCleanSheetRate, s.CleanSheets, s.Appearances)
	per90(model.MetricGoalsConcededPer90, s.GoalsConceded)

	// Duels, dribbles, delivery.
	ratio(model.MetricDribbleSuccessRate, s.DribblesSucceeded, s.DribbleAttempts)
	ratio(model.MetricAerialDuelsWinRate, s.AerialsWon, s.DuelsTotal)
	ratio(model.MetricDuelsWinRate, s.DuelsWon, s.DuelsTotal)
	ratio(model.MetricCrossAccuracy, s.CrossesAccurate, s.CrossesTotal)

	// Goalkeeping.
	per90(model.MetricSavesPer90, s.Saves)
	ratio(model.MetricSaveSuccessRate, s.Saves, s.Saves+s.GoalsConceded)
	ratio(model.MetricPenSaveRate, s.PenaltiesSaved, s.PenaltiesTotal)

	// Reliability.
	ratio(model.MetricStartingRate, s.Lineups, s.Appearances)
	ratio(model.MetricMinutesShare, s.MinutesPlayed, s.Appearances*matchMinutes)
	ratio(model.MetricBenchRate, s.Bench, s.Appearances)

	// Injuries per 10 appearances.
	risk, fell := Ratio(s.Injuries, s.Appearances)
	set(model.MetricInjuryRisk, risk*10, fell)

	// Discipline, for the malus term.
	per90(model.MetricYellowPer90, s.YellowCards)
	per90(model.MetricRedPer90, s.RedCards+s.YellowRedCards)
	per90(model.MetricOwnGoalsPer90, s.OwnGoals)

	// Pass-through.
	m[model.MetricRatingAverage] = s.RatingAverage

	// Composite indices.
	m[model.MetricDefEfficiencyIndex] = m[model.MetricTacklesPer90] +
		m[model.MetricInterceptionsPer90] + m[model.MetricClearancesPer90]
	m[model.MetricDangerCreationIndex] = m[model.MetricShotsOnTargetPer90] +
		m[model.MetricBigChancesPer90] + m[model.MetricSuccDribblesPer90]
	m[model.MetricWingThreatIndex] = m[model.MetricCrossesPer90] * m[model.MetricCrossAccuracy]

	return m, fb
}
