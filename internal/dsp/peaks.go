package dsp

import "sort"

// FindPeaks returns the indices of local maxima in x whose value is at
// least height, enforcing a minimum index spacing between reported peaks.
// Flat-topped maxima report the middle sample of the plateau. When two
// peaks are closer than distance, the smaller one is dropped. Boundary
// samples are never peaks. Indices are returned in ascending order.
func FindPeaks(x []float64, height float64, distance int) []int {
	var peaks []int

	i := 1
	for i < len(x)-1 {
		if x[i] <= x[i-1] {
			i++
			continue
		}
		// Walk over a possible plateau.
		j := i
		for j < len(x)-1 && x[j+1] == x[j] {
			j++
		}
		if j < len(x)-1 && x[j+1] < x[j] {
			mid := (i + j) / 2
			if x[mid] >= height {
				peaks = append(peaks, mid)
			}
		}
		i = j + 1
	}

	if distance < 2 || len(peaks) < 2 {
		return peaks
	}
	return selectByDistance(x, peaks, distance)
}

// selectByDistance keeps the highest peaks first and removes any remaining
// peak closer than distance to one already kept.
func selectByDistance(x []float64, peaks []int, distance int) []int {
	order := make([]int, len(peaks))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return x[peaks[order[a]]] > x[peaks[order[b]]]
	})

	keep := make([]bool, len(peaks))
	for i := range keep {
		keep[i] = true
	}
	for _, oi := range order {
		if !keep[oi] {
			continue
		}
		for k := oi - 1; k >= 0 && peaks[oi]-peaks[k] < distance; k-- {
			keep[k] = false
		}
		for k := oi + 1; k < len(peaks) && peaks[k]-peaks[oi] < distance; k++ {
			keep[k] = false
		}
	}

	out := peaks[:0:0]
	for i, p := range peaks {
		if keep[i] {
			out = append(out, p)
		}
	}
	return out
}
