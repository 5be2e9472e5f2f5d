// Package normalize standardizes selected metrics across the whole player
// pool. Raw z-scores are unbounded, so after z-scoring every column the
// full set is jointly min-max rescaled into [0, 1] to keep the downstream
// weighted sums in a controlled range.
package normalize

import (
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/fantacopilot/valuation/internal/domain/model"
)

// StageName identifies this stage in fallback diagnostics.
const StageName = "normalize"

// ZScore computes, for each named metric, the population z-score of every
// player and stores it back under name+"_z", rescaled into [0, 1].
//
// Degenerate cases degrade instead of erroring:
//   - a metric with zero variance z-scores to 0 for every player;
//   - if every z value ends up identical the rescale falls back to 0.
//
// The input metric maps are written to (new keys only); existing derived
// values are never mutated.
func ZScore(pool []model.Metrics, names []string) []model.Fallback {
	if len(pool) == 0 {
		return nil
	}

	var fb []model.Fallback
	zCols := make([][]float64, len(names))

	col := make([]float64, len(pool))
	for i, name := range names {
		for j, m := range pool {
			col[j] = m.Get(name)
		}
		mean, std := stat.MeanStdDev(col, nil)

		z := make([]float64, len(pool))
		if std > 0 {
			for j, v := range col {
				z[j] = (v - mean) / std
			}
		} else {
			// Zero variance: constant column, degenerate z-score.
			fb = append(fb, model.Fallback{Stage: StageName, Field: name + model.ZSuffix})
		}
		zCols[i] = z
	}

	// Joint rescale: one min/max over every z column so the relative
	// magnitudes between metrics survive the mapping into [0, 1].
	lo, hi := jointRange(zCols)
	span := hi - lo
	for i, name := range names {
		key := name + model.ZSuffix
		for j, m := range pool {
			if span > 0 {
				m[key] = (zCols[i][j] - lo) / span
			} else {
				m[key] = 0
			}
		}
	}
	if span <= 0 {
		fb = append(fb, model.Fallback{Stage: StageName, Field: "rescale"})
	}
	return fb
}

func jointRange(cols [][]float64) (lo, hi float64) {
	first := true
	for _, c := range cols {
		if len(c) == 0 {
			continue
		}
		cMin, cMax := floats.Min(c), floats.Max(c)
		if first {
			lo, hi = cMin, cMax
			first = false
			continue
		}
		if cMin < lo {
			lo = cMin
		}
		if cMax > hi {
			hi = cMax
		}
	}
	return lo, hi
}

// PercentileRank returns, for every value, its fractional rank in the pool
// using average ranks for ties (so identical inputs always share a rank).
func PercentileRank(values []float64) []float64 {
	n := len(values)
	if n == 0 {
		return nil
	}
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool { return values[idx[a]] < values[idx[b]] })

	out := make([]float64, n)
	for i := 0; i < n; {
		j := i
		for j+1 < n && values[idx[j+1]] == values[idx[i]] {
			j++
		}
		// Average rank of the tie group, 1-based.
		avg := float64(i+j+2) / 2
		for k := i; k <= j; k++ {
			out[idx[k]] = avg / float64(n)
		}
		i = j + 1
	}
	return out
}
