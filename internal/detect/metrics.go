package detect

import (
	"sync"

	"lfpsync/internal/observability/metrics"
)

var (
	detectionMetrics      *metrics.DetectionMetrics
	detectionMetricsMutex sync.RWMutex
	detectionMetricsOnce  sync.Once
)

// SetMetrics sets the metrics instance for detector operations. Only the
// first call takes effect; later calls are ignored.
func SetMetrics(m *metrics.DetectionMetrics) {
	detectionMetricsOnce.Do(func() {
		detectionMetricsMutex.Lock()
		defer detectionMetricsMutex.Unlock()
		detectionMetrics = m
	})
}

func getMetrics() *metrics.DetectionMetrics {
	detectionMetricsMutex.RLock()
	defer detectionMetricsMutex.RUnlock()
	return detectionMetrics
}
