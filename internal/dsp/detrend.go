package dsp

import (
	"math"

	"lfpsync/internal/errors"
)

// butterworthQ gives maximally flat passband response for a single biquad.
const butterworthQ = 0.7071067811865476

// HighPassFilter is a biquad high-pass filter (audio EQ cookbook form).
type HighPassFilter struct {
	b0a0, b1a0, b2a0, a1a0, a2a0 float64

	// state variables
	in1, in2   float64
	out1, out2 float64
}

// NewHighPass returns a high-pass biquad for the given sample rate and
// cut-off frequency in Hz.
func NewHighPass(sampleRate, frequency float64) (*HighPassFilter, error) {
	if sampleRate <= 0 {
		return nil, errors.Newf("sample rate must be positive, got %v", sampleRate).
			Component("dsp").
			Category(errors.CategoryValidation).
			Build()
	}
	if frequency <= 0 || frequency >= sampleRate/2 {
		return nil, errors.Newf("cut-off frequency %v out of range (0, %v)", frequency, sampleRate/2).
			Component("dsp").
			Category(errors.CategoryValidation).
			Build()
	}

	w0 := 2.0 * math.Pi * frequency / sampleRate
	alpha := math.Sin(w0) / (2.0 * butterworthQ)
	cosw0 := math.Cos(w0)

	a0 := 1.0 + alpha
	a1 := -2.0 * cosw0
	a2 := 1.0 - alpha
	b0 := (1.0 + cosw0) / 2.0
	b1 := -(1.0 + cosw0)
	b2 := (1.0 + cosw0) / 2.0

	return &HighPassFilter{
		b0a0: b0 / a0,
		b1a0: b1 / a0,
		b2a0: b2 / a0,
		a1a0: a1 / a0,
		a2a0: a2 / a0,
	}, nil
}

// Apply processes one sample through the filter.
func (f *HighPassFilter) Apply(in float64) float64 {
	out := f.b0a0*in + f.b1a0*f.in1 + f.b2a0*f.in2 - f.a1a0*f.out1 - f.a2a0*f.out2
	f.in2 = f.in1
	f.in1 = in
	f.out2 = f.out1
	f.out1 = out
	return out
}

// ApplyBatch filters input in place.
func (f *HighPassFilter) ApplyBatch(input []float64) {
	for i, v := range input {
		input[i] = f.Apply(v)
	}
}

// Reset clears the filter state.
func (f *HighPassFilter) Reset() {
	f.in1, f.in2, f.out1, f.out2 = 0, 0, 0, 0
}

// Detrend returns a high-pass filtered copy of samples, removing slow
// drift and DC offset before external-channel artifact detection.
func Detrend(samples []float64, rate int, cutoff float64) ([]float64, error) {
	f, err := NewHighPass(float64(rate), cutoff)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(samples))
	copy(out, samples)
	f.ApplyBatch(out)
	return out, nil
}
