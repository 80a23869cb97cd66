// Package metrics exposes application metrics collectors.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "donationledger"

var (
	repositoryRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "repository",
		Name:      "operations_total",
		Help:      "Count of ledger store operations.",
	}, []string{"operation", "backend", "status"})
	repositoryRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "repository",
		Name:      "operation_duration_seconds",
		Help:      "Duration of ledger store operations.",
		Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
	}, []string{"operation", "backend", "status"})
)

// Repository tracks metrics for ledger store operations.
type Repository struct {
	backend string
}

// NewRepository creates a Repository collector labelled with the store backend.
func NewRepository(backend string) *Repository {
	if backend == "" {
		backend = "unknown"
	}
	return &Repository{backend: backend}
}

// Observe records duration and status of a store operation.
func (m Repository) Observe(operation string, err error, started time.Time) {
	status := statusOf(err)
	repositoryRequestsTotal.WithLabelValues(operation, m.backend, status).Inc()
	repositoryRequestDuration.WithLabelValues(operation, m.backend, status).Observe(time.Since(started).Seconds())
}

func statusOf(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}
