// Package metrics provides Prometheus metrics collection for the API.
// It exports HTTP server metrics:
//   - http_request_total: Counter with method, path, and status labels
//   - http_request_duration_seconds: Histogram with method and path labels
//   - http_request_in_flight: Gauge for concurrent requests
//
// plus domain counters for analyses performed, external-service fallbacks
// and recall refreshes. All metrics are automatically registered with the
// Prometheus default registry during package initialization.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	HTTPRequestTotals = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_request_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"method", "path"},
	)

	HTTPRequestInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_request_in_flight",
			Help: "Current in-flight requests",
		},
	)

	RateLimiterBucketsTotal = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "rate_limiter_buckets_total",
			Help: "Total number of rate limiter buckets (IPs seen in last ~5 minutes)",
		},
	)

	AnalysesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rxguard_analyses_total",
			Help: "Prescription analyses performed, by overall risk",
		},
		[]string{"risk"},
	)

	ExternalFallbacksTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rxguard_external_fallbacks_total",
			Help: "External service failures answered by the local fallback path",
		},
		[]string{"service"},
	)

	RecallRefreshTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rxguard_recall_refresh_total",
			Help: "Background recall advisory refreshes, by outcome",
		},
		[]string{"outcome"},
	)
)

func init() {
	prometheus.MustRegister(HTTPRequestTotals)
	prometheus.MustRegister(HTTPRequestDuration)
	prometheus.MustRegister(HTTPRequestInFlight)
	prometheus.MustRegister(RateLimiterBucketsTotal)
	prometheus.MustRegister(AnalysesTotal)
	prometheus.MustRegister(ExternalFallbacksTotal)
	prometheus.MustRegister(RecallRefreshTotal)
}
