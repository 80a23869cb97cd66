package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ledgerAppendTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "ledger",
		Name:      "append_total",
		Help:      "Count of donation append attempts.",
	}, []string{"status"})

	ledgerAppendDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "ledger",
		Name:      "append_duration_seconds",
		Help:      "Duration of appending a donation block, lock wait included.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"status"})

	ledgerCampaignUpdateTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "ledger",
		Name:      "campaign_update_total",
		Help:      "Count of campaign credits after an append.",
	}, []string{"status"})

	ledgerVerifyTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "ledger",
		Name:      "verify_total",
		Help:      "Count of verifications by kind and verdict.",
	}, []string{"kind", "result"})

	ledgerVerifyDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "ledger",
		Name:      "verify_duration_seconds",
		Help:      "Duration of verifications by kind.",
		Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60},
	}, []string{"kind"})

	ledgerRepairTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "ledger",
		Name:      "repair_total",
		Help:      "Count of chain repairs.",
	}, []string{"status"})

	ledgerRepairedBlocks = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "ledger",
		Name:      "repaired_blocks_total",
		Help:      "Number of blocks rewritten by repairs.",
	})

	ledgerRepairDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "ledger",
		Name:      "repair_duration_seconds",
		Help:      "Duration of chain repairs.",
		Buckets:   []float64{.01, .05, .1, .5, 1, 5, 10, 30, 60, 120, 300},
	})

	ledgerLockWaitDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "ledger",
		Name:      "lock_wait_seconds",
		Help:      "Time spent waiting for the ledger lock.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"operation", "status"})
)

// Ledger tracks metrics for the ledger service.
type Ledger struct{}

// NewLedger constructs a Ledger collector.
func NewLedger() *Ledger {
	return &Ledger{}
}

// ObserveAppend records an append outcome and duration.
func (m Ledger) ObserveAppend(err error, started time.Time) {
	status := statusOf(err)
	ledgerAppendTotal.WithLabelValues(status).Inc()
	ledgerAppendDuration.WithLabelValues(status).Observe(time.Since(started).Seconds())
}

// ObserveCampaignUpdate records a campaign credit outcome.
func (m Ledger) ObserveCampaignUpdate(err error) {
	ledgerCampaignUpdateTotal.WithLabelValues(statusOf(err)).Inc()
}

// ObserveVerify records a verification. Failed calls are counted with result "error".
func (m Ledger) ObserveVerify(kind string, valid bool, err error, started time.Time) {
	result := "valid"
	switch {
	case err != nil:
		result = "error"
	case !valid:
		result = "invalid"
	}
	ledgerVerifyTotal.WithLabelValues(kind, result).Inc()
	ledgerVerifyDuration.WithLabelValues(kind).Observe(time.Since(started).Seconds())
}

// ObserveRepair records a repair and the number of blocks it rewrote.
func (m Ledger) ObserveRepair(updated int, err error, started time.Time) {
	ledgerRepairTotal.WithLabelValues(statusOf(err)).Inc()
	if updated > 0 {
		ledgerRepairedBlocks.Add(float64(updated))
	}
	ledgerRepairDuration.Observe(time.Since(started).Seconds())
}

// ObserveLockWait records how long an operation waited for the ledger lock.
func (m Ledger) ObserveLockWait(operation string, err error, started time.Time) {
	ledgerLockWaitDuration.WithLabelValues(operation, statusOf(err)).Observe(time.Since(started).Seconds())
}
