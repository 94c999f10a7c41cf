// Package metrics registers the Prometheus instruments exposed on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests by route and status",
		},
		[]string{"method", "path", "status"},
	)
	httpDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_ms",
			Help:    "Latency of HTTP requests in milliseconds",
			Buckets: []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 2500},
		},
		[]string{"method", "path"},
	)
	entityWrites = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "entity_writes_total",
			Help: "Total number of successful entity writes by entity and operation",
		},
		[]string{"entity", "operation"},
	)
)

// RecordRequest counts a finished HTTP request and observes its latency.
func RecordRequest(method, path, status string, durationMs float64) {
	httpRequests.WithLabelValues(method, path, status).Inc()
	httpDuration.WithLabelValues(method, path).Observe(durationMs)
}

// RecordWrite counts a successful create, update or delete.
func RecordWrite(entity, operation string) {
	entityWrites.WithLabelValues(entity, operation).Inc()
}
