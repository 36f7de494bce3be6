package detect

import (
	"math"
	"time"

	"lfpsync/internal/conf"
	"lfpsync/internal/dsp"
	"lfpsync/internal/errors"
	"lfpsync/internal/signal"
)

// IntracranialDetector finds the sync artifact on an implanted-sensor (LFP)
// channel. Three strategies are available: a baseline threshold, and two
// matched-filter kernels of increasing shape fidelity. For correct
// functioning the recording should start in stim-off, so the leading part
// of the signal is artifact-free.
type IntracranialDetector struct {
	cfg conf.DetectionSettings
}

// NewIntracranialDetector returns a detector using the given tunables.
func NewIntracranialDetector(cfg conf.DetectionSettings) *IntracranialDetector {
	return &IntracranialDetector{cfg: cfg}
}

// Detect runs the selected strategy and reports the artifact onset.
func (d *IntracranialDetector) Detect(sig signal.Signal, method Method) (Result, error) {
	start := time.Now()

	var (
		res Result
		err error
	)
	switch method {
	case MethodThreshold:
		res, err = d.detectThreshold(sig)
	case MethodKernel1:
		res, err = d.detectKernel(sig, MethodKernel1, kernel1())
	case MethodKernel2:
		res, err = d.detectKernel(sig, MethodKernel2, kernel2())
	default:
		getMetrics().RecordDetection(sig.Role.String(), method.String(), "invalid_input")
		return Result{}, errors.Newf("unknown detection method %v", method).
			Component("detect").
			Category(errors.CategoryValidation).
			Build()
	}

	status := "success"
	if err != nil {
		status = "not_found"
		if errors.IsValidation(err) {
			status = "invalid_input"
		}
	}
	getMetrics().RecordDetection(sig.Role.String(), method.String(), status)
	getMetrics().RecordDetectionDuration(sig.Role.String(), method.String(), time.Since(start).Seconds())

	if err == nil {
		GetLogger().Info("intracranial sync artifact detected",
			"method", method.String(),
			"index", res.Index,
			"seconds", res.Seconds,
			"inverted", res.Inverted)
	}
	return res, err
}

// detectThreshold locates the first excursion of |signal| beyond the
// baseline peak-to-peak amplitude, then steps back to the last sample that
// still lies within the pre-crossing value distribution. The true pulse
// onset precedes the raw threshold crossing, so the reported index is
// strictly below it.
func (d *IntracranialDetector) detectThreshold(sig signal.Signal) (Result, error) {
	window := d.cfg.BaselineSeconds * sig.Rate
	if err := sig.Validate(window + 1); err != nil {
		return Result{}, err
	}

	thresh := dsp.Ptp(sig.Samples[:window])
	absSignal := dsp.Abs(sig.Samples)

	overIdx := -1
	for i, v := range absSignal {
		if v > thresh {
			overIdx = i
			break
		}
	}
	if overIdx < 0 {
		return Result{}, errors.Newf("no sample exceeds the baseline threshold %v", thresh).
			Component("detect").
			Category(errors.CategoryNotFound).
			Context("threshold", thresh).
			Build()
	}
	if overIdx == 0 {
		return Result{}, errors.Newf("threshold crossed at the first sample, no pre-crossing baseline").
			Component("detect").
			Category(errors.CategoryNotFound).
			Build()
	}

	pct := dsp.Quantile(d.cfg.ThresholdPercentile, absSignal[:overIdx])
	for i := overIdx - 1; i >= 0; i-- {
		if absSignal[i] <= pct {
			return Result{Index: i, Seconds: sig.Time(i), Method: MethodThreshold}, nil
		}
	}
	return Result{}, errors.Newf("no pre-crossing sample within the %vth percentile", d.cfg.ThresholdPercentile).
		Component("detect").
		Category(errors.CategoryNotFound).
		Build()
}

// detectKernel correlates the kernel with the signal and picks the artifact
// from the peaks of the normalized response. Positive response peaks mark
// a normally signed artifact; a leading negative peak marks an inverted
// channel, unless the narrow-case width check revokes it.
func (d *IntracranialDetector) detectKernel(sig signal.Signal, method Method, kernel []float64) (Result, error) {
	if err := sig.Validate(len(kernel) + 2); err != nil {
		return Result{}, err
	}

	res := matchedFilterResponse(kernel, sig.Samples)
	maxRes, _ := dsp.Max(res)
	if maxRes == 0 {
		return Result{}, errors.Newf("flat matched-filter response").
			Component("detect").
			Category(errors.CategoryNotFound).
			Context("method", method.String()).
			Build()
	}
	for i := range res {
		res[i] /= maxRes
	}
	maxRes, _ = dsp.Max(res)
	minRes, _ := dsp.Min(res)

	ratio := d.responseRatio(res, sig.Rate)

	distance := int(d.cfg.PeakDistanceSeconds * float64(sig.Rate))
	posIdx := dsp.FindPeaks(res, d.cfg.PeakHeightFraction*maxRes, distance)

	negRes := make([]float64, len(res))
	for i, v := range res {
		negRes[i] = -v
	}
	negIdx := dsp.FindPeaks(negRes, -d.cfg.PeakHeightFraction*minRes, distance)

	var advisories []Advisory
	if (len(posIdx) > d.cfg.MaxQuietPeaks || len(negIdx) > d.cfg.MaxQuietPeaks) && ratio < d.cfg.MinArtifactRatio {
		GetLogger().Warn("signal probably contains no stimulation artifact, timings may be incorrect",
			"method", method.String(),
			"positive_peaks", len(posIdx),
			"negative_peaks", len(negIdx),
			"ratio", ratio)
		getMetrics().RecordAdvisory(string(AdvisoryNoArtifact))
		advisories = append(advisories, AdvisoryNoArtifact)
	}

	if len(negIdx) == 0 {
		return Result{}, d.emptyPeakListError(method, "negative")
	}
	if len(posIdx) == 0 {
		return Result{}, d.emptyPeakListError(method, "positive")
	}

	// The first response peak should be positive; a leading negative peak
	// means the channel is inverted.
	inverted := negIdx[0] < posIdx[0]
	if inverted {
		GetLogger().Info("intracranial signal is inverted",
			"first_negative", negIdx[0],
			"first_positive", posIdx[0])
		if posIdx[0]-negIdx[0] < d.cfg.InversionProximity {
			// A small non-artifact deflection right next to the true pulse
			// can fake the inversion. Compare half-height widths: a wide
			// positive peak next to a narrow negative one means the
			// positive peak is the real artifact.
			widthPos := halfHeightWidth(res, posIdx[0], maxRes*d.cfg.HalfHeightFraction, true)
			widthNeg := halfHeightWidth(res, negIdx[0], minRes*d.cfg.HalfHeightFraction, false)
			if float64(widthPos) > d.cfg.WidthRatioFactor*float64(widthNeg) {
				inverted = false
				GetLogger().Info("inversion revoked by peak width check",
					"width_positive", widthPos,
					"width_negative", widthNeg)
			}
		}
	}

	candidates := posIdx
	if inverted {
		candidates = negIdx
	}

	stimIdx, ok := d.selectConsistent(sig.Samples, candidates, inverted)
	if !ok {
		return Result{}, errors.Newf("no candidate peak consistent with the dominant artifact amplitude").
			Component("detect").
			Category(errors.CategoryNotFound).
			Context("method", method.String()).
			Context("candidates", len(candidates)).
			Build()
	}

	if inverted {
		getMetrics().RecordInversion(sig.Role.String())
	}
	return Result{
		Index:      stimIdx,
		Seconds:    sig.Time(stimIdx),
		Method:     method,
		Inverted:   inverted,
		Advisories: advisories,
	}, nil
}

// responseRatio compares the early response maximum against the noise
// floor of the opening seconds. A low ratio means the response has no
// outstanding peak, i.e. probably no artifact.
func (d *IntracranialDetector) responseRatio(res []float64, rate int) float64 {
	ratioWindow := d.cfg.RatioWindowSeconds * rate
	if ratioWindow > len(res) {
		ratioWindow = len(res)
	}
	noiseWindow := d.cfg.NoiseWindowSeconds * rate
	if noiseWindow > len(res) {
		noiseWindow = len(res)
	}

	maxWin, _ := dsp.Max(res[:ratioWindow])
	sd := dsp.PopStdDev(res[:noiseWindow])
	if sd == 0 {
		return math.Inf(1)
	}
	return maxWin / sd
}

// halfHeightWidth walks forward from the peak while the response stays
// beyond bound in the peak's direction and returns the number of samples
// covered.
func halfHeightWidth(res []float64, peak int, bound float64, positive bool) int {
	width := 0
	for i := peak; i < len(res); i++ {
		if positive && res[i] <= bound {
			break
		}
		if !positive && res[i] >= bound {
			break
		}
		width++
	}
	return width
}

// selectConsistent filters out candidates whose local amplitude disagrees
// with the dominant, stable stimulation amplitude and returns the first
// survivor. Each candidate is measured over a window of ±ConsistencyWindow
// samples around its index.
func (d *IntracranialDetector) selectConsistent(samples []float64, candidates []int, inverted bool) (int, bool) {
	w := d.cfg.ConsistencyWindow
	frac := d.cfg.ConsistencyFraction

	absHeights := make([]float64, len(candidates))
	for i, c := range candidates {
		lo, hi := clampWindow(c, w, len(samples))
		m, _ := dsp.Max(dsp.Abs(samples[lo:hi]))
		absHeights[i] = m
	}
	med := dsp.Median(absHeights)

	for _, c := range candidates {
		lo, hi := clampWindow(c, w, len(samples))
		if inverted {
			maxW, _ := dsp.Max(samples[lo:hi])
			if maxW > frac*med {
				return c, true
			}
		} else {
			minW, _ := dsp.Min(samples[lo:hi])
			if minW < -frac*med {
				return c, true
			}
		}
	}
	return 0, false
}

func clampWindow(center, half, n int) (int, int) {
	lo := center - half
	if lo < 0 {
		lo = 0
	}
	hi := center + half
	if hi > n {
		hi = n
	}
	return lo, hi
}

func (d *IntracranialDetector) emptyPeakListError(method Method, polarity string) error {
	return errors.Newf("no %s peaks in matched-filter response", polarity).
		Component("detect").
		Category(errors.CategoryNotFound).
		Context("method", method.String()).
		Build()
}
