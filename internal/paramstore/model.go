// Package paramstore persists per-session synchronization parameters.
// It replaces loosely-typed parameter files with one typed record per
// recording session, stored in SQLite through GORM.
package paramstore

import "time"

// SessionParameters is the per-session record. Channel indices are chosen
// by the operator; onset and drift values are filled in as the alignment
// workflow progresses.
type SessionParameters struct {
	ID        uint   `gorm:"primaryKey"`
	SessionID string `gorm:"uniqueIndex;not null"`

	// Channel selection within each recording.
	LFPChannel      int
	ExternalChannel int

	// First-artifact detection results, one onset per stream, in each
	// stream's own clock.
	DetectionMethod      string
	ArtifactTimeLFP      float64
	ArtifactTimeExternal float64

	// Drift check results from the second, late-recording artifact.
	TimeshiftMs        float64
	RefDurationSeconds float64

	CreatedAt time.Time
	UpdatedAt time.Time
}
