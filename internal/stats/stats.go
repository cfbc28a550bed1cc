// Package stats is the aggregation engine: pure functions that fold a
// transaction slice into grouped summaries and derived metrics.
//
// Every function takes the records as an explicit parameter and builds fresh
// local accumulators, so concurrent invocation over the same slice is safe.
// The engine never returns an error and never panics on malformed input:
// division by zero, empty groups and missing optional fields degenerate to
// NaN/Infinity/0, and the presentation layer renders those as-is.
package stats

import (
	"math"
	"sort"
)

// Mean is the arithmetic mean; NaN for an empty input.
func Mean(xs []float64) float64 {
	if len(xs) == 0 {
		return math.NaN()
	}
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

// Median sorts a copy of the input and selects the middle element. For
// even-length input it takes the upper-middle element, not the average of the
// two middle values: Median([10,20,30,40]) == 30. Compatibility with the
// historical dashboard depends on this exact tie-break.
func Median(xs []float64) float64 {
	if len(xs) == 0 {
		return math.NaN()
	}
	sorted := make([]float64, len(xs))
	copy(sorted, xs)
	sort.Float64s(sorted)
	return sorted[len(sorted)/2]
}

// StdDev is the population standard deviation, sqrt(mean((x-mean)^2)).
// Not the sample deviation: no Bessel correction.
func StdDev(xs []float64) float64 {
	if len(xs) == 0 {
		return math.NaN()
	}
	m := Mean(xs)
	var sq float64
	for _, x := range xs {
		d := x - m
		sq += d * d
	}
	return math.Sqrt(sq / float64(len(xs)))
}

// MinMax returns the smallest and largest values; NaNs for an empty input.
func MinMax(xs []float64) (min, max float64) {
	if len(xs) == 0 {
		return math.NaN(), math.NaN()
	}
	min, max = xs[0], xs[0]
	for _, x := range xs[1:] {
		if x < min {
			min = x
		}
		if x > max {
			max = x
		}
	}
	return min, max
}

// GrowthRate is the percentage change from previous to current. A zero
// previous period yields +/-Infinity (or NaN for 0→0); callers render that
// rather than guarding it.
func GrowthRate(current, previous float64) float64 {
	return (current - previous) / previous * 100
}

// PercentOf returns part/total scaled to percent; NaN when total is zero
// and part is zero, Infinity when total is zero and part is not.
func PercentOf(part, total float64) float64 {
	return part / total * 100
}
