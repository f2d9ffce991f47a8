// Package telemetry exposes the service's Prometheus metrics.
package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds every metric the service records.
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	ContentFetchesTotal *prometheus.CounterVec
	ContentFetchErrors  *prometheus.CounterVec
	ContactSubmissions  prometheus.Counter
}

// New registers all metrics on the given registerer.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		HTTPRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "content_manager_http_requests_total",
			Help: "HTTP requests handled, by method, path and status.",
		}, []string{"method", "path", "status"}),
		HTTPRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "content_manager_http_request_duration_seconds",
			Help:    "HTTP request latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path"}),
		ContentFetchesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "content_manager_content_fetches_total",
			Help: "Content collection fetches, by collection.",
		}, []string{"collection"}),
		ContentFetchErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "content_manager_content_fetch_errors_total",
			Help: "Failed content collection fetches, by collection.",
		}, []string{"collection"}),
		ContactSubmissions: factory.NewCounter(prometheus.CounterOpts{
			Name: "content_manager_contact_submissions_total",
			Help: "Contact form submissions accepted.",
		}),
	}
}

// NewDefault registers on the default Prometheus registry.
func NewDefault() *Metrics {
	return New(prometheus.DefaultRegisterer)
}
