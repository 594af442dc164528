package providers

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"time"
	"wallfeed/internal/structures"
)

type MetricsProviderInterface interface {
	IncRequestsTotal(endpoint string, status int)
	ObserveRequestDuration(endpoint string, duration time.Duration)
	IncRenders(outcome string)
	ObserveQueryDuration(duration time.Duration)
	IncCacheHits()
	IncCacheMisses()
	IncLastSeenFailures()
	ObservePersistenceDuration(duration time.Duration)
}

type MetricsProvider struct {
	requestsTotal       *prometheus.CounterVec
	requestDuration     *prometheus.HistogramVec
	rendersTotal        *prometheus.CounterVec
	queryDuration       prometheus.Histogram
	cacheHits           prometheus.Counter
	cacheMisses         prometheus.Counter
	lastSeenFailures    prometheus.Counter
	persistenceDuration prometheus.Histogram
}

func (m *MetricsProvider) IncRequestsTotal(endpoint string, status int) {
	m.requestsTotal.WithLabelValues(endpoint, httpStatusBucket(status)).Inc()
}

func (m *MetricsProvider) ObserveRequestDuration(endpoint string, duration time.Duration) {
	m.requestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

func (m *MetricsProvider) IncRenders(outcome string) {
	m.rendersTotal.WithLabelValues(outcome).Inc()
}

func (m *MetricsProvider) ObserveQueryDuration(duration time.Duration) {
	m.queryDuration.Observe(duration.Seconds())
}

func (m *MetricsProvider) IncCacheHits() {
	m.cacheHits.Inc()
}

func (m *MetricsProvider) IncCacheMisses() {
	m.cacheMisses.Inc()
}

func (m *MetricsProvider) IncLastSeenFailures() {
	m.lastSeenFailures.Inc()
}

func (m *MetricsProvider) ObservePersistenceDuration(duration time.Duration) {
	m.persistenceDuration.Observe(duration.Seconds())
}

func httpStatusBucket(code int) string {
	switch {
	case code < 200:
		return "1xx"
	case code < 300:
		return "2xx"
	case code < 400:
		return "3xx"
	case code < 500:
		return "4xx"
	default:
		return "5xx"
	}
}

func NewMetricsProvider(conf *structures.Config) MetricsProviderInterface {
	if !conf.Metrics.Enabled {
		return &noopMetrics{}
	}

	return &MetricsProvider{
		requestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "wallfeed_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"endpoint", "status"}),

		requestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "wallfeed_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),

		rendersTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "wallfeed_renders_total",
			Help: "Total number of timeline renders by outcome",
		}, []string{"outcome"}),

		queryDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "wallfeed_query_duration_seconds",
			Help:    "Duration of timeline queries in seconds",
			Buckets: prometheus.DefBuckets,
		}),

		cacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "wallfeed_last_seen_hits_total",
			Help: "Total number of last-seen lookups that found a stamp",
		}),

		cacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "wallfeed_last_seen_misses_total",
			Help: "Total number of last-seen lookups without a stamp",
		}),

		lastSeenFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "wallfeed_last_seen_failures_total",
			Help: "Total number of last-seen stamps that could not be stored",
		}),

		persistenceDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "wallfeed_persistence_duration_seconds",
			Help:    "Duration of snapshot persistence in seconds",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

// noopMetrics is a no-op implementation for when metrics are disabled.
type noopMetrics struct{}

func (n *noopMetrics) IncRequestsTotal(_ string, _ int)                 {}
func (n *noopMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (n *noopMetrics) IncRenders(_ string)                              {}
func (n *noopMetrics) ObserveQueryDuration(_ time.Duration)             {}
func (n *noopMetrics) IncCacheHits()                                    {}
func (n *noopMetrics) IncCacheMisses()                                  {}
func (n *noopMetrics) IncLastSeenFailures()                             {}
func (n *noopMetrics) ObservePersistenceDuration(_ time.Duration)       {}
