package dsp

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lfpsync/internal/errors"
)

func TestNewHighPassValidation(t *testing.T) {
	t.Run("bad_sample_rate", func(t *testing.T) {
		_, err := NewHighPass(0, 1)
		require.Error(t, err)
		assert.True(t, errors.IsValidation(err))
	})

	t.Run("cutoff_above_nyquist", func(t *testing.T) {
		_, err := NewHighPass(100, 60)
		require.Error(t, err)
		assert.True(t, errors.IsValidation(err))
	})

	t.Run("valid", func(t *testing.T) {
		f, err := NewHighPass(250, 1)
		require.NoError(t, err)
		assert.NotNil(t, f)
	})
}

func TestDetrendRemovesDC(t *testing.T) {
	samples := make([]float64, 2000)
	for i := range samples {
		samples[i] = 0.8
	}

	out, err := Detrend(samples, 1000, 1)
	require.NoError(t, err)
	require.Len(t, out, len(samples))

	// After the filter settles, a constant input must be rejected.
	for _, v := range out[1500:] {
		assert.Less(t, math.Abs(v), 0.01)
	}
	// Input untouched.
	assert.InDelta(t, 0.8, samples[0], 1e-12)
}

func TestDetrendKeepsFastComponents(t *testing.T) {
	const (
		rate = 1000
		freq = 20.0
		n    = 4000
	)
	samples := make([]float64, n)
	for i := range samples {
		samples[i] = math.Sin(2 * math.Pi * freq * float64(i) / rate)
	}

	out, err := Detrend(samples, rate, 1)
	require.NoError(t, err)

	// Well above the cut-off the sine passes nearly unattenuated.
	maxTail := 0.0
	for _, v := range out[n/2:] {
		if a := math.Abs(v); a > maxTail {
			maxTail = a
		}
	}
	assert.InDelta(t, 1.0, maxTail, 0.05)
}

func TestHighPassReset(t *testing.T) {
	f, err := NewHighPass(250, 1)
	require.NoError(t, err)

	first := f.Apply(1)
	f.Apply(1)
	f.Reset()
	assert.InDelta(t, first, f.Apply(1), 1e-12)
}
