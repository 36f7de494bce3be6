package detect

import (
	"math"

	"lfpsync/internal/dsp"
	"lfpsync/internal/signal"
)

// NormalizePolarity checks whether the channel's dominant deflection points
// upward instead of the expected downward shape, and negates the signal if
// so. The comparison excludes the final tailExclusion samples so tail
// artifacts cannot bias it; a signal no longer than the exclusion is
// compared in full. The returned flag reports whether the signal was
// negated. The input samples are never modified.
func NormalizePolarity(sig signal.Signal, tailExclusion int) (signal.Signal, bool) {
	n := sig.Len() - tailExclusion
	if n <= 0 {
		n = sig.Len()
	}
	if n == 0 {
		return sig, false
	}

	maxV, _ := dsp.Max(sig.Samples[:n])
	minV, _ := dsp.Min(sig.Samples[:n])
	if math.Abs(maxV) <= math.Abs(minV) {
		return sig, false
	}

	GetLogger().Info("channel polarity is reversed, inverting signal",
		"role", sig.Role.String(),
		"max", maxV,
		"min", minV)
	getMetrics().RecordInversion(sig.Role.String())

	flipped := make([]float64, sig.Len())
	for i, v := range sig.Samples {
		flipped[i] = -v
	}
	return signal.New(flipped, sig.Rate, sig.Role), true
}
