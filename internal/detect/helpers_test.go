package detect

import (
	"math"

	"lfpsync/internal/conf"
	"lfpsync/internal/signal"
)

// downwardPulse writes a stimulation-like artifact into s at onset: a
// three-step fall to -amp followed by a linear recovery back to baseline.
// The step values are exact binary fractions so detection outcomes do not
// depend on floating-point rounding.
func downwardPulse(s []float64, onset int, amp float64) {
	s[onset] = -0.25 * amp
	s[onset+1] = -0.75 * amp
	s[onset+2] = -amp
	for j := 1; j <= 15; j++ {
		s[onset+2+j] = (-1 + float64(j)*0.0625) * amp
	}
}

// upwardSpike writes an inverted sharp artifact: a fast rise to amp and an
// equally fast fall back.
func upwardSpike(s []float64, onset int, amp float64) {
	s[onset] = 0.5 * amp
	s[onset+1] = amp
	s[onset+2] = 0.5 * amp
}

// sine fills a buffer with a pure tone, the stand-in for an artifact-free
// recording.
func sine(n, rate int, freq, amp float64) []float64 {
	s := make([]float64, n)
	for i := range s {
		s[i] = amp * math.Sin(2*math.Pi*freq*float64(i)/float64(rate))
	}
	return s
}

func lfpSignal(samples []float64, rate int) signal.Signal {
	return signal.New(samples, rate, signal.RoleLFP)
}

func externalSignal(samples []float64, rate int) signal.Signal {
	return signal.New(samples, rate, signal.RoleExternal)
}

func testSettings() conf.DetectionSettings {
	return conf.DefaultDetection()
}
