// Package tags attaches descriptive badges to players by evaluating a
// fixed, ordered list of threshold rules over derived metrics.
package tags

import (
	"github.com/fantacopilot/valuation/internal/domain/model"
)

// MaxTags caps the badge list per player. The cap keeps the UI badge row
// short: the FIRST four matches win, in rule order, not the "best" four.
const MaxTags = 4

// Badge labels, in the Italian the product ships with.
const (
	TagFuoriclasse = "Fuoriclasse"
	TagTitolare    = "Titolare"
	TagAssistMan   = "Assist-Man"
	TagBomber      = "Bomber"
	TagMuro        = "Muro Difensivo"
	TagFragile     = "Fragile"
	TagRigori      = "Rigori"
	TagPiazzati    = "Piazzati"
)

// Input bundles everything the rule list reads for one player.
type Input struct {
	Role    model.Role
	Metrics model.Metrics

	PerfPercentile float64 // role_perf rank across the pool
	DefActionsRank float64 // def_actions_per_90 rank across the pool

	PenaltiesScored float64
	PenaltyGoals    float64
	Goals           float64
}

// rule is one ordered badge predicate.
type rule struct {
	tag   string
	match func(in Input) bool
}

// ruleList is evaluated top to bottom; order is part of the contract.
var ruleList = []rule{
	{TagFuoriclasse, func(in Input) bool {
		return in.PerfPercentile >= 0.80
	}},
	{TagTitolare, func(in Input) bool {
		return in.Metrics.Get(model.MetricStartingRate) >= 0.75 &&
			in.Metrics.Get(model.MetricMinutesShare) >= 0.75
	}},
	{TagAssistMan, func(in Input) bool {
		return in.Metrics.Get(model.MetricAssistsPer90) >= 0.25 ||
			in.Metrics.Get(model.MetricKeyPassesPer90) >= 2
	}},
	{TagBomber, func(in Input) bool {
		return in.Metrics.Get(model.MetricGoalsPer90) >= 0.45
	}},
	{TagMuro, func(in Input) bool {
		return in.DefActionsRank >= 0.80 && in.Role == model.Defender
	}},
	{TagFragile, func(in Input) bool {
		band := model.BandInjuryRisk(in.Metrics.Get(model.MetricInjuryRisk))
		return band == model.InjuryBandMid || band == model.InjuryBandHigh
	}},
	{TagRigori, func(in Input) bool {
		if in.PenaltiesScored >= 2 {
			return true
		}
		goals := in.Goals
		if goals < 1 {
			goals = 1
		}
		return in.PenaltyGoals/goals >= 0.30
	}},
	{TagPiazzati, func(in Input) bool {
		return in.Metrics.Get(model.MetricCrossesPer90) >= 3 ||
			in.Metrics.Get(model.MetricBigChancesPer90) >= 0.3
	}},
}

// Classify returns the player's badges: at most MaxTags, in rule order.
func Classify(in Input) []string {
	var out []string
	for _, r := range ruleList {
		if !r.match(in) {
			continue
		}
		out = append(out, r.tag)
		if len(out) == MaxTags {
			break
		}
	}
	return out
}
