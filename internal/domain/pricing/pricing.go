// Package pricing distributes a fixed league-wide budget across roles and
// among players proportionally to expected seasonal fantasy points.
package pricing

import (
	"math"
	"sort"

	"github.com/fantacopilot/valuation/internal/domain/model"
)

// StageName identifies this stage in fallback diagnostics.
const StageName = "pricing"

// Allocation defaults.
const (
	DefaultLeagueBudget   = 500
	DefaultNumTeams       = 8
	DefaultMinAppearances = 10

	minPrice  = 1
	bandWidth = 0.05
)

// DefaultQuota is the number of starters each manager fields per role.
func DefaultQuota() map[model.Role]int {
	return map[model.Role]int{
		model.Goalkeeper: 1,
		model.Defender:   3,
		model.Midfielder: 4,
		model.Forward:    3,
	}
}

// DefaultBudgetWeight is the share of total credits flowing to each role.
// The shares must sum to 1.0; config loading validates this.
func DefaultBudgetWeight() map[model.Role]float64 {
	return map[model.Role]float64{
		model.Forward:    0.40,
		model.Midfielder: 0.31,
		model.Defender:   0.21,
		model.Goalkeeper: 0.08,
	}
}

// League carries the auction parameters of one league.
type League struct {
	Budget       int // credits per manager
	NumTeams     int
	Quota        map[model.Role]int
	BudgetWeight map[model.Role]float64

	// MinAppearances gates the starter pool used to set conversion
	// rates, so high-xFP outliers with a handful of matches cannot
	// inflate everyone's prices.
	MinAppearances int
}

// DefaultLeague returns a League with the standard 8-manager setup.
func DefaultLeague() League {
	return League{
		Budget:         DefaultLeagueBudget,
		NumTeams:       DefaultNumTeams,
		Quota:          DefaultQuota(),
		BudgetWeight:   DefaultBudgetWeight(),
		MinAppearances: DefaultMinAppearances,
	}
}

// TotalCredits is the credit pool in circulation across the whole league.
func (l League) TotalCredits() float64 {
	return float64(l.Budget) * float64(l.NumTeams)
}

// Candidate is one player entering the auction.
type Candidate struct {
	Role        model.Role
	XFPSeason   float64
	Appearances float64
}

// Estimate is the auction price suggestion for one candidate.
type Estimate struct {
	Price     int // credits, >= 1
	RangeLow  int
	RangeHigh int

	// FallbackRate is true when the role's starter pool had zero total
	// xFP and the conversion rate degraded to 1 credit per point.
	FallbackRate bool
}

// Allocate prices every candidate. Results are positionally aligned with
// the input slice. The function is deterministic: identical candidates
// always receive identical estimates.
func Allocate(league League, cands []Candidate) []Estimate {
	rates := conversionRates(league, cands)

	out := make([]Estimate, len(cands))
	for i, c := range cands {
		r := rates[c.Role]
		price := int(math.Round(c.XFPSeason * r.perXFP))
		if price < minPrice {
			price = minPrice
		}
		low := int(math.Round(float64(price) * (1 - bandWidth)))
		high := int(math.Round(float64(price) * (1 + bandWidth)))
		if high < low {
			high = low
		}
		out[i] = Estimate{
			Price:        price,
			RangeLow:     low,
			RangeHigh:    high,
			FallbackRate: r.fallback,
		}
	}
	return out
}

type rate struct {
	perXFP   float64
	fallback bool
}

// conversionRates derives credits-per-xFP for each role from its starter
// pool: the quota*teams best candidates by season xFP with enough
// appearances to be trusted.
func conversionRates(league League, cands []Candidate) map[model.Role]rate {
	rates := make(map[model.Role]rate, len(model.Roles))
	total := league.TotalCredits()

	for _, role := range model.Roles {
		starters := league.Quota[role] * league.NumTeams

		var pool []float64
		for _, c := range cands {
			if c.Role != role || c.Appearances < float64(league.MinAppearances) {
				continue
			}
			pool = append(pool, c.XFPSeason)
		}
		sort.Sort(sort.Reverse(sort.Float64Slice(pool)))
		if len(pool) > starters {
			pool = pool[:starters]
		}

		var sum float64
		for _, v := range pool {
			sum += v
		}

		if sum <= 0 {
			// Arbitrary but usable: one credit per expected point.
			rates[role] = rate{perXFP: 1, fallback: true}
			continue
		}
		rates[role] = rate{perXFP: total * league.BudgetWeight[role] / sum}
	}
	return rates
}
