package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics contains the Prometheus collectors for upstream AI calls, retry
// behaviour and the HTTP API. All methods are safe on a nil receiver so
// callers that run without metrics can pass nil.
type Metrics struct {
	// Upstream vendor API metrics
	UpstreamRequests *prometheus.CounterVec
	UpstreamDuration *prometheus.HistogramVec

	// Retry metrics
	Retries   *prometheus.CounterVec
	RetryWait *prometheus.HistogramVec

	// HTTP API metrics
	HTTPRequests        *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		UpstreamRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "aiplayground_upstream_requests_total",
			Help: "Total number of requests sent to vendor AI APIs",
		}, []string{"provider", "outcome"}),
		UpstreamDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "aiplayground_upstream_request_duration_seconds",
			Help:    "Duration of vendor AI API requests",
			Buckets: prometheus.ExponentialBuckets(0.1, 2, 10), // 100ms to ~1.5 minutes
		}, []string{"provider"}),

		Retries: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "aiplayground_retries_total",
			Help: "Total number of rate-limited attempts that were retried",
		}, []string{"operation"}),
		RetryWait: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "aiplayground_retry_wait_seconds",
			Help:    "Time spent waiting before a retry",
			Buckets: prometheus.ExponentialBuckets(0.5, 2, 9), // 0.5s to ~2 minutes
		}, []string{"operation"}),

		HTTPRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "aiplayground_http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"method", "endpoint", "status_code"}),
		HTTPRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "aiplayground_http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "endpoint"}),
	}
}

// ObserveUpstream records one vendor API call and its outcome.
func (m *Metrics) ObserveUpstream(provider string, elapsed time.Duration, err error) {
	if m == nil {
		return
	}
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	m.UpstreamRequests.WithLabelValues(provider, outcome).Inc()
	m.UpstreamDuration.WithLabelValues(provider).Observe(elapsed.Seconds())
}

// ObserveRetry records a scheduled retry and how long it will wait.
func (m *Metrics) ObserveRetry(operation string, attempt int, wait time.Duration) {
	if m == nil {
		return
	}
	m.Retries.WithLabelValues(operation).Inc()
	m.RetryWait.WithLabelValues(operation).Observe(wait.Seconds())
}

// RecordHTTPRequest records an HTTP request
func (m *Metrics) RecordHTTPRequest(method, endpoint string, statusCode int, duration time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequests.WithLabelValues(method, endpoint, strconv.Itoa(statusCode)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}
