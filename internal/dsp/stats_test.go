package dsp

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPtp(t *testing.T) {
	t.Run("mixed_sign", func(t *testing.T) {
		assert.InDelta(t, 7.0, Ptp([]float64{-3, 0, 4, 1}), 1e-12)
	})

	t.Run("constant", func(t *testing.T) {
		assert.InDelta(t, 0.0, Ptp([]float64{2, 2, 2}), 1e-12)
	})

	t.Run("empty", func(t *testing.T) {
		assert.InDelta(t, 0.0, Ptp(nil), 1e-12)
	})
}

func TestMaxMin(t *testing.T) {
	x := []float64{1, -4, 2.5, 2.5, -4}

	maxV, maxI := Max(x)
	assert.InDelta(t, 2.5, maxV, 1e-12)
	assert.Equal(t, 2, maxI, "first occurrence wins")

	minV, minI := Min(x)
	assert.InDelta(t, -4.0, minV, 1e-12)
	assert.Equal(t, 1, minI)

	_, emptyIdx := Max(nil)
	assert.Equal(t, -1, emptyIdx)
}

func TestAbs(t *testing.T) {
	got := Abs([]float64{-1, 0, 2.5})
	assert.InDeltaSlice(t, []float64{1, 0, 2.5}, got, 1e-12)
}

func TestQuantile(t *testing.T) {
	t.Run("median_even", func(t *testing.T) {
		assert.InDelta(t, 2.5, Quantile(50, []float64{4, 1, 3, 2}), 1e-12)
	})

	t.Run("median_odd", func(t *testing.T) {
		assert.InDelta(t, 2.0, Quantile(50, []float64{3, 1, 2}), 1e-12)
	})

	t.Run("interpolated_p95", func(t *testing.T) {
		x := make([]float64, 100)
		for i := range x {
			x[i] = float64(i)
		}
		// position 0.95*99 = 94.05
		assert.InDelta(t, 94.05, Quantile(95, x), 1e-9)
	})

	t.Run("endpoints", func(t *testing.T) {
		x := []float64{5, 1, 9}
		assert.InDelta(t, 1.0, Quantile(0, x), 1e-12)
		assert.InDelta(t, 9.0, Quantile(100, x), 1e-12)
	})

	t.Run("input_not_modified", func(t *testing.T) {
		x := []float64{3, 1, 2}
		Quantile(50, x)
		assert.Equal(t, []float64{3, 1, 2}, x)
	})

	t.Run("empty_is_nan", func(t *testing.T) {
		assert.True(t, math.IsNaN(Quantile(50, nil)))
	})
}

func TestMedian(t *testing.T) {
	assert.InDelta(t, 0.7, Median([]float64{0.4, 1.0}), 1e-12)
	assert.InDelta(t, 2.0, Median([]float64{3, 1, 2}), 1e-12)
}

func TestPopStdDev(t *testing.T) {
	t.Run("constant_is_zero", func(t *testing.T) {
		assert.InDelta(t, 0.0, PopStdDev([]float64{3, 3, 3}), 1e-12)
	})

	t.Run("known_value", func(t *testing.T) {
		// population std of {0, 2} is 1
		assert.InDelta(t, 1.0, PopStdDev([]float64{0, 2}), 1e-12)
	})
}
