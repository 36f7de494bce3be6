// Package detect implements sync-artifact detection for intracranial (LFP)
// and external bipolar channels. A stimulation pulse induces a sharp
// deflection in both recordings; its onset is the shared timing landmark
// used to align the two independently clocked streams.
package detect

import (
	"lfpsync/internal/errors"
)

// Method selects the intracranial detection strategy.
type Method int

const (
	// MethodThreshold detects the artifact from a baseline-derived
	// amplitude threshold.
	MethodThreshold Method = iota
	// MethodKernel1 matches a two-tap step template against the signal,
	// capturing only the fast falling edge of the pulse.
	MethodKernel1
	// MethodKernel2 matches a 23-tap template capturing the fast fall and
	// the slow recovery ramp.
	MethodKernel2
	// MethodExternal tags results of the external-channel detector, which
	// has no method selector.
	MethodExternal
)

// String returns the method name used in logs and metrics labels.
func (m Method) String() string {
	switch m {
	case MethodThreshold:
		return "thresh"
	case MethodKernel1:
		return "kernel1"
	case MethodKernel2:
		return "kernel2"
	case MethodExternal:
		return "external"
	default:
		return "unknown"
	}
}

// ParseMethod converts a CLI method selector into a Method. Only the
// intracranial strategies are valid selectors.
func ParseMethod(s string) (Method, error) {
	switch s {
	case "thresh", "threshold":
		return MethodThreshold, nil
	case "1", "kernel1":
		return MethodKernel1, nil
	case "2", "kernel2":
		return MethodKernel2, nil
	default:
		return 0, errors.Newf("unknown detection method %q, expected thresh, kernel1 or kernel2", s).
			Component("detect").
			Category(errors.CategoryValidation).
			Build()
	}
}

// Advisory is a non-fatal warning attached to an otherwise valid result.
type Advisory string

const (
	// AdvisoryNoArtifact means the matched-filter response looks like
	// noise: the signal probably contains no stimulation artifact and the
	// returned timing may be wrong.
	AdvisoryNoArtifact Advisory = "no-artifact-suspected"
)

// Result is the outcome of one detector invocation.
type Result struct {
	Index      int        // onset sample index, strictly within bounds
	Seconds    float64    // onset time: index / sample rate
	Method     Method     // strategy that produced the result
	Inverted   bool       // channel polarity was inverted relative to the expected shape
	Advisories []Advisory // non-fatal warnings, empty for a confident detection
}

// HasAdvisory reports whether the result carries the given advisory.
func (r Result) HasAdvisory(a Advisory) bool {
	for _, adv := range r.Advisories {
		if adv == a {
			return true
		}
	}
	return false
}
