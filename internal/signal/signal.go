// Package signal defines the in-memory representation of a single recorded
// channel and the validation rules shared by all detectors.
package signal

import (
	"lfpsync/internal/errors"
)

// Role identifies which recording system a channel belongs to.
type Role int

const (
	RoleUnknown Role = iota
	// RoleLFP is the implanted-sensor (local field potential) recording.
	RoleLFP
	// RoleExternal is the external bipolar reference recording.
	RoleExternal
)

// String returns the role name used in logs and metrics labels.
func (r Role) String() string {
	switch r {
	case RoleLFP:
		return "lfp"
	case RoleExternal:
		return "external"
	default:
		return "unknown"
	}
}

// ParseRole converts a CLI role selector into a Role.
func ParseRole(s string) (Role, error) {
	switch s {
	case "lfp":
		return RoleLFP, nil
	case "external", "bipolar":
		return RoleExternal, nil
	default:
		return RoleUnknown, errors.Newf("unknown signal role %q, expected lfp or external", s).
			Component("signal").
			Category(errors.CategoryValidation).
			Build()
	}
}

// Signal is a single-channel recording: an ordered sequence of samples with
// its sampling rate. Detectors treat Samples as read-only input.
type Signal struct {
	Samples []float64
	Rate    int // sampling rate in Hz
	Role    Role
}

// New returns a Signal over the given samples. The slice is not copied.
func New(samples []float64, rate int, role Role) Signal {
	return Signal{Samples: samples, Rate: rate, Role: role}
}

// Len returns the number of samples.
func (s Signal) Len() int {
	return len(s.Samples)
}

// Duration returns the recording length in seconds.
func (s Signal) Duration() float64 {
	if s.Rate <= 0 {
		return 0
	}
	return float64(len(s.Samples)) / float64(s.Rate)
}

// Time converts a sample index into seconds on this channel's own clock.
func (s Signal) Time(index int) float64 {
	return float64(index) / float64(s.Rate)
}

// Validate checks the invariants every detector relies on: a positive
// sampling rate and enough samples to cover the required baseline window.
func (s Signal) Validate(minSamples int) error {
	if s.Rate <= 0 {
		return errors.Newf("sample rate must be positive, got %d", s.Rate).
			Component("signal").
			Category(errors.CategoryValidation).
			Context("role", s.Role.String()).
			Build()
	}
	if len(s.Samples) < minSamples {
		return errors.Newf("signal too short: %d samples, need at least %d", len(s.Samples), minSamples).
			Component("signal").
			Category(errors.CategoryValidation).
			Context("role", s.Role.String()).
			Context("rate", s.Rate).
			Build()
	}
	return nil
}
