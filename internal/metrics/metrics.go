package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds Prometheus collectors for tag fetches.
type Metrics struct {
	pagesFetched  prometheus.Counter
	poolsFetched  prometheus.Counter
	poolsRejected prometheus.Counter
	tagsEmitted   prometheus.Counter
	fetchFailures *prometheus.CounterVec
	pageLatency   prometheus.Histogram

	registry *prometheus.Registry
}

// New creates the collectors and registers them on a dedicated registry.
func New() *Metrics {
	m := &Metrics{
		pagesFetched: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pool_tags_pages_fetched_total",
			Help: "Total number of subgraph pages fetched",
		}),
		poolsFetched: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pool_tags_pools_fetched_total",
			Help: "Total number of raw pools received",
		}),
		poolsRejected: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pool_tags_pools_rejected_total",
			Help: "Total number of pools dropped for an invalid symbol",
		}),
		tagsEmitted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pool_tags_tags_emitted_total",
			Help: "Total number of contract tags produced",
		}),
		fetchFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pool_tags_fetch_failures_total",
			Help: "Total number of aborted fetches by error kind",
		}, []string{"kind"}),
		pageLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "pool_tags_page_latency_seconds",
			Help:    "Latency of a single subgraph page request",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 12), // 10ms to ~20s
		}),
		registry: prometheus.NewRegistry(),
	}

	m.registry.MustRegister(
		m.pagesFetched,
		m.poolsFetched,
		m.poolsRejected,
		m.tagsEmitted,
		m.fetchFailures,
		m.pageLatency,
	)
	return m
}

// PageFetched records one page of pools and the tags built from it.
func (m *Metrics) PageFetched(pools, tags int, latency time.Duration) {
	if m == nil {
		return
	}
	m.pagesFetched.Inc()
	m.poolsFetched.Add(float64(pools))
	m.poolsRejected.Add(float64(pools - tags))
	m.tagsEmitted.Add(float64(tags))
	m.pageLatency.Observe(latency.Seconds())
}

// FetchFailed increments the failure counter for kind.
func (m *Metrics) FetchFailed(kind string) {
	if m == nil {
		return
	}
	m.fetchFailures.WithLabelValues(kind).Inc()
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// Handler returns an HTTP handler for the /metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Serve starts a /metrics server on addr.
func (m *Metrics) Serve(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 3 * time.Second,
	}
	go func() { _ = srv.ListenAndServe() }()
	return srv
}
