// Package metrics defines the Prometheus collectors for the storefront.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds every collector. A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	UpstreamRequests *prometheus.CounterVec
	CacheLookups     *prometheus.CounterVec
	IntentsResolved  *prometheus.CounterVec
	HTTPRequests     *prometheus.CounterVec
	HTTPDuration     *prometheus.HistogramVec
}

// New registers the collectors on reg.
func New(reg *prometheus.Registry) *Metrics {
	m := &Metrics{
		registry: reg,
		UpstreamRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "inventory_upstream_requests_total",
			Help: "Calls to the inventory search index by outcome.",
		}, []string{"outcome"}),
		CacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "inventory_cache_lookups_total",
			Help: "Read-through cache lookups by result.",
		}, []string{"result"}),
		IntentsResolved: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "seo_intents_resolved_total",
			Help: "Resolved inbound paths by intent kind.",
		}, []string{"kind"}),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP requests by method and status.",
		}, []string{"method", "status"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method"}),
	}

	reg.MustRegister(
		m.UpstreamRequests,
		m.CacheLookups,
		m.IntentsResolved,
		m.HTTPRequests,
		m.HTTPDuration,
	)
	return m
}

// Upstream counts one index call.
func (m *Metrics) Upstream(outcome string) {
	if m == nil {
		return
	}
	m.UpstreamRequests.WithLabelValues(outcome).Inc()
}

// Cache counts one cache lookup.
func (m *Metrics) Cache(result string) {
	if m == nil {
		return
	}
	m.CacheLookups.WithLabelValues(result).Inc()
}

// Intent counts one resolved path.
func (m *Metrics) Intent(kind string) {
	if m == nil {
		return
	}
	m.IntentsResolved.WithLabelValues(kind).Inc()
}

// Request records one served HTTP request.
func (m *Metrics) Request(method string, status int, took time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequests.WithLabelValues(method, strconv.Itoa(status)).Inc()
	m.HTTPDuration.WithLabelValues(method).Observe(took.Seconds())
}

// Handler exposes the registry for scraping.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
