package providers

import (
	"testing"
	"time"
	"wallfeed/internal/structures"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoopMetrics_WhenDisabled(t *testing.T) {
	conf := &structures.Config{
		Metrics: structures.MetricsConfig{Enabled: false},
	}
	m := NewMetricsProvider(conf)
	_, ok := m.(*noopMetrics)
	assert.True(t, ok, "should return noopMetrics when disabled")

	// Ensure no-op methods don't panic
	m.IncRequestsTotal("/test", 200)
	m.ObserveRequestDuration("/test", time.Millisecond)
	m.IncRenders("rendered")
	m.ObserveQueryDuration(time.Millisecond)
	m.IncCacheHits()
	m.IncCacheMisses()
	m.IncLastSeenFailures()
	m.ObservePersistenceDuration(time.Millisecond)
}

func TestMetricsProvider_WhenEnabled(t *testing.T) {
	reg := prometheus.NewRegistry()
	prometheus.DefaultRegisterer = reg
	prometheus.DefaultGatherer = reg
	defer func() {
		prometheus.DefaultRegisterer = prometheus.NewRegistry()
		prometheus.DefaultGatherer = prometheus.DefaultRegisterer.(prometheus.Gatherer)
	}()

	conf := &structures.Config{
		Metrics: structures.MetricsConfig{Enabled: true},
	}
	m := NewMetricsProvider(conf)
	_, ok := m.(*MetricsProvider)
	require.True(t, ok)

	m.IncRequestsTotal("/profile", 200)
	m.IncRequestsTotal("/profile", 404)
	m.IncRenders("rendered")
	m.IncRenders("login_required")
	m.ObserveQueryDuration(5 * time.Millisecond)
	m.IncLastSeenFailures()

	families, err := reg.Gather()
	require.NoError(t, err)

	names := make(map[string]bool)
	for _, f := range families {
		names[f.GetName()] = true
	}
	assert.True(t, names["wallfeed_requests_total"])
	assert.True(t, names["wallfeed_renders_total"])
	assert.True(t, names["wallfeed_query_duration_seconds"])
	assert.True(t, names["wallfeed_last_seen_failures_total"])
}

func TestHttpStatusBucket(t *testing.T) {
	assert.Equal(t, "1xx", httpStatusBucket(101))
	assert.Equal(t, "2xx", httpStatusBucket(200))
	assert.Equal(t, "3xx", httpStatusBucket(302))
	assert.Equal(t, "4xx", httpStatusBucket(403))
	assert.Equal(t, "5xx", httpStatusBucket(500))
}
