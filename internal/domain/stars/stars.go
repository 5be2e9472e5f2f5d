// Package stars buckets a role-relative value (expected price, or the
// performance score) into a 1-5 star scale via quantile binning.
package stars

import (
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Default binning configuration.
const (
	DefaultBins = 10
	minBins     = 2
)

// Unranked is returned when the quantile cut degenerates entirely
// (all values identical). 0 signals "not ranked", never a misleading 1.
const Unranked = 0

// Assign maps each value to a star rating relative to the other values in
// the same slice (callers pass one role's population at a time).
//
// Quantile edges are computed for targetBins bins; duplicate edges, common
// with integer prices and sparse role populations, are collapsed rather
// than raising. Fewer than minBins surviving bins means the population is
// degenerate and every player gets Unranked.
func Assign(values []float64, targetBins int) []int {
	out := make([]int, len(values))
	if len(values) == 0 {
		return out
	}
	if targetBins < minBins {
		targetBins = DefaultBins
	}

	edges := quantileEdges(values, targetBins)
	bins := len(edges) + 1
	if bins < minBins {
		for i := range out {
			out[i] = Unranked
		}
		return out
	}

	for i, v := range values {
		asc := ascendingBin(edges, v)
		top := bins - asc + 1 // 1 = highest-value bin
		out[i] = starFor(top, bins)
	}
	return out
}

// quantileEdges returns the interior quantile cut points, deduplicated.
func quantileEdges(values []float64, bins int) []float64 {
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	var edges []float64
	for i := 1; i < bins; i++ {
		q := stat.Quantile(float64(i)/float64(bins), stat.LinInterp, sorted, nil)
		if len(edges) == 0 || q > edges[len(edges)-1] {
			edges = append(edges, q)
		}
	}
	// Edges equal to the global minimum or maximum carve out empty bins;
	// drop them so a two-valued population still yields two bins.
	for len(edges) > 0 && edges[0] <= sorted[0] {
		edges = edges[1:]
	}
	for len(edges) > 0 && edges[len(edges)-1] >= sorted[len(sorted)-1] {
		edges = edges[:len(edges)-1]
	}
	return edges
}

// ascendingBin returns the 1-based bin of v, bin 1 holding the lowest values.
func ascendingBin(edges []float64, v float64) int {
	return sort.SearchFloat64s(edges, v) + 1
}

// starFor converts a from-the-top bin index into a star count. In the
// 10-bin case this reproduces the canonical map (bins 1-2 five stars, 3-4
// four, 5-7 three, 8-9 two, 10 one) and rescales proportionally when
// duplicate edges left fewer bins.
func starFor(topBin, bins int) int {
	f := (float64(topBin) - 0.5) / float64(bins)
	switch {
	case f <= 0.2:
		return 5
	case f <= 0.4:
		return 4
	case f <= 0.7:
		return 3
	case f <= 0.9:
		return 2
	default:
		return 1
	}
}
