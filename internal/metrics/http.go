package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Count of REST requests by route and status code.",
	}, []string{"route", "code"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "Duration of REST requests by route.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route"})
)

// HTTP tracks metrics for the REST handlers.
type HTTP struct{}

// NewHTTP constructs an HTTP collector.
func NewHTTP() *HTTP {
	return &HTTP{}
}

// ObserveRequest records a handled request.
func (m HTTP) ObserveRequest(route string, code int, started time.Time) {
	httpRequestsTotal.WithLabelValues(route, strconv.Itoa(code)).Inc()
	httpRequestDuration.WithLabelValues(route).Observe(time.Since(started).Seconds())
}
