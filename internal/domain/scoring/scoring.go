// Package scoring combines normalized metrics into one performance score
// per role using fixed linear weight vectors.
package scoring

import (
	"sort"

	"github.com/fantacopilot/valuation/internal/domain/model"
)

// Weights maps normalized metric names (with the _z suffix) to their
// contribution. Weights sum to roughly 1.0; negative weights model
// penalties such as injury proneness.
type Weights map[string]float64

// defaultWeights returns the standard role weight vectors: attacking
// output dominates for forwards, chance creation for midfielders,
// defensive volume and clean sheets for defenders, shot stopping for
// goalkeepers.
func defaultWeights() map[model.Role]Weights {
	return map[model.Role]Weights{
		model.Goalkeeper: {
			model.MetricSaveSuccessRate + model.ZSuffix:    0.30,
			model.MetricCleanSheetRate + model.ZSuffix:     0.25,
			model.MetricSavesPer90 + model.ZSuffix:         0.20,
			model.MetricPenSaveRate + model.ZSuffix:        0.10,
			model.MetricStartingRate + model.ZSuffix:       0.15,
			model.MetricGoalsConcededPer90 + model.ZSuffix: -0.10,
			model.MetricInjuryRisk + model.ZSuffix:         -0.10,
		},
		model.Defender: {
			model.MetricDefActionsPer90 + model.ZSuffix:    0.30,
			model.MetricCleanSheetRate + model.ZSuffix:     0.20,
			model.MetricTackleSuccessRate + model.ZSuffix:  0.15,
			model.MetricAerialDuelsWinRate + model.ZSuffix: 0.10,
			model.MetricGoalsPer90 + model.ZSuffix:         0.10,
			model.MetricAssistsPer90 + model.ZSuffix:       0.10,
			model.MetricStartingRate + model.ZSuffix:       0.15,
			model.MetricInjuryRisk + model.ZSuffix:         -0.10,
		},
		model.Midfielder: {
			model.MetricKeyPassesPer90 + model.ZSuffix:  0.25,
			model.MetricGoalsPer90 + model.ZSuffix:      0.20,
			model.MetricAssistsPer90 + model.ZSuffix:    0.20,
			model.MetricBigChancesPer90 + model.ZSuffix: 0.15,
			model.MetricCrossesPer90 + model.ZSuffix:    0.10,
			model.MetricDefActionsPer90 + model.ZSuffix: 0.10,
			model.MetricStartingRate + model.ZSuffix:    0.10,
			model.MetricInjuryRisk + model.ZSuffix:      -0.10,
		},
		model.Forward: {
			model.MetricGoalsPer90 + model.ZSuffix:      0.40,
			model.MetricConversionRate + model.ZSuffix:  0.15,
			model.MetricAssistsPer90 + model.ZSuffix:    0.15,
			model.MetricBigChancesPer90 + model.ZSuffix: 0.15,
			model.MetricKeyPassesPer90 + model.ZSuffix:  0.10,
			model.MetricStartingRate + model.ZSuffix:    0.10,
			model.MetricInjuryRisk + model.ZSuffix:      -0.10,
		},
	}
}

// Option applies a configuration option to the Scorer.
type Option func(*Scorer)

// WithRoleWeights replaces the weight vector for one role.
func WithRoleWeights(role model.Role, w Weights) Option {
	return func(s *Scorer) {
		if len(w) > 0 {
			cp := make(Weights, len(w))
			for k, v := range w {
				cp[k] = v
			}
			s.weights[role] = cp
		}
	}
}

// Scorer computes role-weighted performance scores.
type Scorer struct {
	weights map[model.Role]Weights
}

// New creates a Scorer with the default weight tables.
func New(opts ...Option) *Scorer {
	s := &Scorer{weights: defaultWeights()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// MetricNames returns the set of base metric names (without the _z suffix)
// referenced by any role's weight vector. The normalizer must produce a
// z-column for each of these before Score is called.
func (s *Scorer) MetricNames() []string {
	seen := make(map[string]struct{})
	var names []string
	for _, role := range model.Roles {
		for key := range s.weights[role] {
			base := key[:len(key)-len(model.ZSuffix)]
			if _, ok := seen[base]; ok {
				continue
			}
			seen[base] = struct{}{}
			names = append(names, base)
		}
	}
	sort.Strings(names)
	return names
}

// Score computes the weighted performance score of one player for every
// role, so that "what if he played another role" comparisons stay
// possible. Missing metric columns contribute 0; no player is dropped.
func (s *Scorer) Score(m model.Metrics) map[model.Role]float64 {
	out := make(map[model.Role]float64, len(model.Roles))
	for _, role := range model.Roles {
		var sum float64
		for key, w := range s.weights[role] {
			sum += m.Get(key) * w
		}
		out[role] = sum
	}
	return out
}
