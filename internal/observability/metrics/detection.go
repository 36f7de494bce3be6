// Package metrics provides Prometheus metrics for artifact detection and
// drift estimation.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// DetectionMetrics contains Prometheus metrics for detector operations.
type DetectionMetrics struct {
	registry *prometheus.Registry

	detectionsTotal   *prometheus.CounterVec
	detectionDuration *prometheus.HistogramVec
	advisoriesTotal   *prometheus.CounterVec
	inversionsTotal   *prometheus.CounterVec
	driftMs           prometheus.Histogram
}

// NewDetectionMetrics creates and registers detection metrics on the
// given registry.
func NewDetectionMetrics(registry *prometheus.Registry) (*DetectionMetrics, error) {
	m := &DetectionMetrics{registry: registry}

	m.detectionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lfpsync_detections_total",
			Help: "Total number of artifact detection attempts",
		},
		[]string{"stream", "method", "status"},
	)
	m.detectionDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "lfpsync_detection_duration_seconds",
			Help:    "Artifact detection duration",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
		},
		[]string{"stream", "method"},
	)
	m.advisoriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lfpsync_detection_advisories_total",
			Help: "Total number of non-fatal detection advisories",
		},
		[]string{"kind"},
	)
	m.inversionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lfpsync_polarity_inversions_total",
			Help: "Total number of channels detected with inverted polarity",
		},
		[]string{"stream"},
	)
	m.driftMs = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "lfpsync_timeshift_drift_milliseconds",
			Help:    "Absolute residual clock drift measured between streams",
			Buckets: []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000},
		},
	)

	collectors := []prometheus.Collector{
		m.detectionsTotal,
		m.detectionDuration,
		m.advisoriesTotal,
		m.inversionsTotal,
		m.driftMs,
	}
	for _, c := range collectors {
		if err := registry.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// RecordDetection records a detection attempt and its outcome.
func (m *DetectionMetrics) RecordDetection(stream, method, status string) {
	if m == nil {
		return
	}
	m.detectionsTotal.WithLabelValues(stream, method, status).Inc()
}

// RecordDetectionDuration records the time a detection took.
func (m *DetectionMetrics) RecordDetectionDuration(stream, method string, seconds float64) {
	if m == nil {
		return
	}
	m.detectionDuration.WithLabelValues(stream, method).Observe(seconds)
}

// RecordAdvisory records a non-fatal advisory raised during detection or
// drift estimation.
func (m *DetectionMetrics) RecordAdvisory(kind string) {
	if m == nil {
		return
	}
	m.advisoriesTotal.WithLabelValues(kind).Inc()
}

// RecordInversion records a channel whose polarity was flagged inverted.
func (m *DetectionMetrics) RecordInversion(stream string) {
	if m == nil {
		return
	}
	m.inversionsTotal.WithLabelValues(stream).Inc()
}

// ObserveDrift records the absolute drift of one timeshift check.
func (m *DetectionMetrics) ObserveDrift(absMs float64) {
	if m == nil {
		return
	}
	m.driftMs.Observe(absMs)
}
