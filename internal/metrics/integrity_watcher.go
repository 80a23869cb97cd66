package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	integrityCheckTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "integrity_watcher",
		Name:      "check_total",
		Help:      "Count of periodic chain checks.",
	}, []string{"status"})

	integrityCheckDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "integrity_watcher",
		Name:      "check_duration_seconds",
		Help:      "Duration of periodic chain checks.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"status"})

	integrityBlocksChecked = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "integrity_watcher",
		Name:      "blocks_checked",
		Help:      "Number of blocks covered by a chain check.",
		Buckets:   prometheus.ExponentialBuckets(1, 4, 12),
	})

	integrityChainValid = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "integrity_watcher",
		Name:      "chain_valid",
		Help:      "1 when the last chain check found the chain intact, 0 otherwise.",
	})

	integrityBrokenAt = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "integrity_watcher",
		Name:      "broken_at_block",
		Help:      "Block number of the last detected break, 0 when intact.",
	})
)

// IntegrityWatcher tracks metrics for the periodic chain check.
type IntegrityWatcher struct{}

// NewIntegrityWatcher constructs an IntegrityWatcher collector.
func NewIntegrityWatcher() *IntegrityWatcher {
	return &IntegrityWatcher{}
}

// ObserveCheck records a check outcome. The chain gauges are left untouched on error.
func (m IntegrityWatcher) ObserveCheck(valid bool, brokenAt, blocks uint64, err error, started time.Time) {
	status := statusOf(err)
	integrityCheckTotal.WithLabelValues(status).Inc()
	integrityCheckDuration.WithLabelValues(status).Observe(time.Since(started).Seconds())
	if err != nil {
		return
	}

	integrityBlocksChecked.Observe(float64(blocks))
	if valid {
		integrityChainValid.Set(1)
		integrityBrokenAt.Set(0)
		return
	}
	integrityChainValid.Set(0)
	integrityBrokenAt.Set(float64(brokenAt))
}
