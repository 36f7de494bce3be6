package detect

import (
	"time"

	"lfpsync/internal/conf"
	"lfpsync/internal/dsp"
	"lfpsync/internal/errors"
	"lfpsync/internal/signal"
)

// ExternalDetector finds the sync artifact on the external bipolar channel.
// The artifact is a sharp downward deflection repeated at the stimulation
// frequency; detection reports the first sample that is both below a
// baseline-derived threshold and a local minimum, i.e. the leading edge of
// the first pulse.
//
// The first BaselineSeconds of the recording are used for threshold
// calibration and must be artifact-free. The channel should be detrended
// (high-pass filtered) beforehand so the signal is centered around zero.
type ExternalDetector struct {
	cfg conf.DetectionSettings
}

// NewExternalDetector returns a detector using the given tunables.
func NewExternalDetector(cfg conf.DetectionSettings) *ExternalDetector {
	return &ExternalDetector{cfg: cfg}
}

// Detect scans for the artifact starting at startIndex (0 scans the whole
// recording; a later start skips a known leading artifact of a different
// kind). Fails with a not-found error when the scan completes without a
// qualifying sample.
func (d *ExternalDetector) Detect(sig signal.Signal, startIndex int) (Result, error) {
	start := time.Now()

	baseline := d.cfg.BaselineSeconds * sig.Rate
	if err := sig.Validate(baseline + 1); err != nil {
		getMetrics().RecordDetection(sig.Role.String(), MethodExternal.String(), "invalid_input")
		return Result{}, err
	}
	if startIndex < 0 {
		getMetrics().RecordDetection(sig.Role.String(), MethodExternal.String(), "invalid_input")
		return Result{}, errors.Newf("start index must not be negative, got %d", startIndex).
			Component("detect").
			Category(errors.CategoryValidation).
			Build()
	}

	s := sig.Samples
	threshold := -d.cfg.ExternalThresholdFactor * dsp.Ptp(s[:baseline])

	// The onset needs both neighbors for the local-minimum comparison, so
	// the scan never reports the first or the last two samples.
	q := startIndex
	if q < 1 {
		q = 1
	}
	for ; q <= len(s)-3; q++ {
		if s[q] <= threshold && s[q] < s[q-1] && s[q] < s[q+1] {
			res := Result{
				Index:   q,
				Seconds: sig.Time(q),
				Method:  MethodExternal,
			}
			GetLogger().Info("external sync artifact detected",
				"index", q,
				"seconds", res.Seconds,
				"threshold", threshold)
			getMetrics().RecordDetection(sig.Role.String(), MethodExternal.String(), "success")
			getMetrics().RecordDetectionDuration(sig.Role.String(), MethodExternal.String(), time.Since(start).Seconds())
			return res, nil
		}
	}

	getMetrics().RecordDetection(sig.Role.String(), MethodExternal.String(), "not_found")
	return Result{}, errors.Newf("no sample below threshold %v after index %d", threshold, startIndex).
		Component("detect").
		Category(errors.CategoryNotFound).
		Context("threshold", threshold).
		Context("start_index", startIndex).
		Context("samples", len(s)).
		Build()
}
