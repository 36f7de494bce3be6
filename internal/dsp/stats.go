// Package dsp provides the signal-processing primitives used by the
// artifact detectors: descriptive statistics, peak search over a series,
// and a detrending high-pass filter.
package dsp

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Ptp returns the peak-to-peak amplitude (max - min) of x.
// Returns 0 for an empty slice.
func Ptp(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}
	minV, maxV := x[0], x[0]
	for _, v := range x[1:] {
		if v < minV {
			minV = v
		}
		if v > maxV {
			maxV = v
		}
	}
	return maxV - minV
}

// Max returns the largest value in x and its index. Empty input yields
// (-Inf, -1).
func Max(x []float64) (float64, int) {
	maxV, maxI := math.Inf(-1), -1
	for i, v := range x {
		if v > maxV {
			maxV, maxI = v, i
		}
	}
	return maxV, maxI
}

// Min returns the smallest value in x and its index. Empty input yields
// (+Inf, -1).
func Min(x []float64) (float64, int) {
	minV, minI := math.Inf(1), -1
	for i, v := range x {
		if v < minV {
			minV, minI = v, i
		}
	}
	return minV, minI
}

// Abs returns a new slice holding |x|.
func Abs(x []float64) []float64 {
	out := make([]float64, len(x))
	for i, v := range x {
		out[i] = math.Abs(v)
	}
	return out
}

// Quantile returns the p-th percentile (0..100) of x using linear
// interpolation between closest ranks, matching the convention the
// detector thresholds were calibrated with. x is not modified.
func Quantile(p float64, x []float64) float64 {
	if len(x) == 0 {
		return math.NaN()
	}
	sorted := make([]float64, len(x))
	copy(sorted, x)
	sort.Float64s(sorted)

	pos := p / 100 * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	if lo >= len(sorted)-1 {
		return sorted[len(sorted)-1]
	}
	frac := pos - float64(lo)
	return sorted[lo] + frac*(sorted[lo+1]-sorted[lo])
}

// Median returns the median of x.
func Median(x []float64) float64 {
	return Quantile(50, x)
}

// PopStdDev returns the population standard deviation of x.
func PopStdDev(x []float64) float64 {
	if len(x) == 0 {
		return math.NaN()
	}
	return stat.PopStdDev(x, nil)
}
