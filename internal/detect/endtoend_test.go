package detect

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lfpsync/internal/conf"
	"lfpsync/internal/timeshift"
)

// TestDualStreamAlignment runs the full alignment pipeline on a simulated
// session: the same stimulation onset at 3.000 s is captured by the LFP
// stream at 250 Hz and by the external stream at 1000 Hz with reversed
// polarity. Each detector must report the onset within one sample period
// of its own stream, and the residual drift between the two timings must
// stay well under the anomaly limit.
func TestDualStreamAlignment(t *testing.T) {
	const (
		extRate   = 1000
		trueOnset = 3.0
	)
	cfg := testSettings()

	lfp := make([]float64, 10*lfpRate)
	downwardPulse(lfp, lfpOnset, 1)

	ext := make([]float64, 10*extRate)
	upwardSpike(ext, 3*extRate, 1)

	lfpRes, err := NewIntracranialDetector(cfg).Detect(lfpSignal(lfp, lfpRate), MethodKernel2)
	require.NoError(t, err)
	assert.InDelta(t, trueOnset, lfpRes.Seconds, 1.0/lfpRate+1e-9)

	extSig, inverted := NormalizePolarity(externalSignal(ext, extRate), cfg.PolarityTailExclusion)
	assert.True(t, inverted)

	extRes, err := NewExternalDetector(cfg).Detect(extSig, 0)
	require.NoError(t, err)
	assert.InDelta(t, trueOnset, extRes.Seconds, 1.0/extRate+1e-9)

	rec, err := timeshift.NewEstimator(conf.DefaultTimeshift(), nil).
		Estimate("e2e", lfpRes.Seconds, extRes.Seconds)
	require.NoError(t, err)
	assert.False(t, rec.Anomaly)
	// Both detections sit within a sample period of the true onset, so the
	// residual drift is bounded by the coarser stream's period.
	assert.Less(t, math.Abs(rec.DriftMs), 2*1000.0/lfpRate)
}
