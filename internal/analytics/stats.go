// Package analytics holds the pure financial computations: loan payoff projection,
// recurring payment detection, liability aggregation, affordability and investment scoring.
// Nothing in this package performs I/O or reads the clock; callers pass "now" explicitly.
package analytics

import (
	"math"
	"sort"

	"github.com/shopspring/decimal"
)

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

// pstddev is the population standard deviation.
func pstddev(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	m := mean(xs)
	var sq float64
	for _, x := range xs {
		d := x - m
		sq += d * d
	}
	return math.Sqrt(sq / float64(len(xs)))
}

// coefficientOfVariation returns stddev/mean, or +Inf when the mean is not positive.
func coefficientOfVariation(xs []float64) float64 {
	m := mean(xs)
	if m <= 0 {
		return math.Inf(1)
	}
	return pstddev(xs) / m
}

func median(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	sorted := append([]float64(nil), xs...)
	sort.Float64s(sorted)
	return percentile(sorted, 50)
}

// percentile interpolates linearly between closest ranks. sorted must be ascending.
func percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if len(sorted) == 1 {
		return sorted[0]
	}
	rank := p / 100 * float64(len(sorted)-1)
	lo := int(math.Floor(rank))
	hi := int(math.Ceil(rank))
	if lo == hi {
		return sorted[lo]
	}
	frac := rank - float64(lo)
	return sorted[lo] + (sorted[hi]-sorted[lo])*frac
}

// round rounds half away from zero to the given number of decimal places.
func round(x float64, places int32) float64 {
	if math.IsInf(x, 0) || math.IsNaN(x) {
		return x
	}
	return decimal.NewFromFloat(x).Round(places).InexactFloat64()
}

func clamp01(x float64) float64 {
	return math.Max(0, math.Min(1, x))
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
