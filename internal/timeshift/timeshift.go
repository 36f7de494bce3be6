// Package timeshift measures residual clock drift between the intracranial
// and external recordings after the initial coarse alignment. The two
// recording systems run on independent clocks; a large residual drift hints
// at dropped samples (packet loss) in the implanted-sensor stream.
package timeshift

import (
	"log/slog"
	"math"
	"sync"

	"lfpsync/internal/conf"
	"lfpsync/internal/logging"
	"lfpsync/internal/observability/metrics"
	"lfpsync/internal/paramstore"
	"lfpsync/internal/signal"
)

var (
	serviceLogger *slog.Logger
	loggerOnce    sync.Once
)

func getLogger() *slog.Logger {
	loggerOnce.Do(func() {
		serviceLogger = logging.ForService("timeshift")
	})
	return serviceLogger
}

// SampleSelector supplies a reference timestamp for one stream, typically
// the operator picking the last artifact in the recording. The hint tells
// an interactive implementation what to ask for. The core never depends on
// how the selection happens; a precomputed value is as valid as a UI pick.
type SampleSelector interface {
	Select(sig signal.Signal, hint string) (float64, error)
}

// SelectorFunc adapts a function to the SampleSelector interface.
type SelectorFunc func(sig signal.Signal, hint string) (float64, error)

// Select implements SampleSelector.
func (f SelectorFunc) Select(sig signal.Signal, hint string) (float64, error) {
	return f(sig, hint)
}

// StaticSelector returns a fixed, precomputed timestamp.
func StaticSelector(seconds float64) SampleSelector {
	return SelectorFunc(func(signal.Signal, string) (float64, error) {
		return seconds, nil
	})
}

// Record is the outcome of one drift check.
type Record struct {
	SessionID string
	TLFP      float64 // last-artifact onset in the LFP stream's clock (s)
	TExternal float64 // last-artifact onset in the external stream's clock (s)
	DriftMs   float64 // (TExternal - TLFP) * 1000
	Anomaly   bool    // drift exceeded the configured limit
}

// Estimator combines two independently obtained reference timestamps into
// a validated drift measurement and persists it per session.
type Estimator struct {
	cfg     conf.TimeshiftSettings
	store   paramstore.Interface
	metrics *metrics.DetectionMetrics
}

// NewEstimator returns an estimator. The store may be nil, in which case
// results are computed but not persisted.
func NewEstimator(cfg conf.TimeshiftSettings, store paramstore.Interface) *Estimator {
	return &Estimator{cfg: cfg, store: store}
}

// SetMetrics attaches a metrics instance. Nil-safe.
func (e *Estimator) SetMetrics(m *metrics.DetectionMetrics) {
	e.metrics = m
}

// Estimate computes the drift between the two reference timestamps and
// persists it keyed by session. A drift beyond the configured limit raises
// a non-fatal anomaly flag; the record is still produced and persisted.
func (e *Estimator) Estimate(sessionID string, tLFP, tExternal float64) (Record, error) {
	driftMs := (tExternal - tLFP) * 1000

	rec := Record{
		SessionID: sessionID,
		TLFP:      tLFP,
		TExternal: tExternal,
		DriftMs:   driftMs,
	}

	if math.Abs(driftMs) > e.cfg.MaxDriftMs {
		rec.Anomaly = true
		getLogger().Warn("timeshift is unusually high, consider checking for packet loss in LFP data",
			"session_id", sessionID,
			"drift_ms", driftMs,
			"limit_ms", e.cfg.MaxDriftMs)
		e.metrics.RecordAdvisory("excessive-drift")
	}
	e.metrics.ObserveDrift(math.Abs(driftMs))

	if e.store != nil {
		// tExternal doubles as the reference duration of the aligned
		// recording pair.
		if err := e.store.SaveTimeshift(sessionID, driftMs, tExternal); err != nil {
			return Record{}, err
		}
	}

	getLogger().Info("timeshift estimated",
		"session_id", sessionID,
		"t_lfp", tLFP,
		"t_external", tExternal,
		"drift_ms", driftMs,
		"anomaly", rec.Anomaly)
	return rec, nil
}
