package providers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type requestRecord struct {
	endpoint string
	status   int
}

type recordingMetrics struct {
	noopMetrics
	requests  []requestRecord
	durations []string
}

func (m *recordingMetrics) IncRequestsTotal(endpoint string, status int) {
	m.requests = append(m.requests, requestRecord{endpoint, status})
}

func (m *recordingMetrics) ObserveRequestDuration(endpoint string, _ time.Duration) {
	m.durations = append(m.durations, endpoint)
}

func TestMetricsMiddleware_RecordsEachRequest(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/profile/", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Remote-Contact") == "" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_, _ = w.Write([]byte(`{"items":[]}`))
	})
	mux.HandleFunc("/update/", func(w http.ResponseWriter, r *http.Request) {})

	metrics := &recordingMetrics{}
	handler := MetricsMiddleware(metrics, mux)

	anon := httptest.NewRequest(http.MethodGet, "/profile/hermit/status", nil)
	handler.ServeHTTP(httptest.NewRecorder(), anon)

	remote := httptest.NewRequest(http.MethodGet, "/profile/hermit/status/2024-01-01", nil)
	remote.Header.Set("X-Remote-Contact", "30")
	handler.ServeHTTP(httptest.NewRecorder(), remote)

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/update/hermit", nil))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nowhere", nil))

	assert.Equal(t, []requestRecord{
		{"/profile", http.StatusUnauthorized},
		{"/profile", http.StatusOK},
		{"/update", http.StatusOK},
		{"/nowhere", http.StatusNotFound},
	}, metrics.requests)
	assert.Equal(t, []string{"/profile", "/profile", "/update", "/nowhere"}, metrics.durations)
}

func TestStatusWriter_PassesThrough(t *testing.T) {
	rr := httptest.NewRecorder()
	sw := &statusWriter{ResponseWriter: rr, status: http.StatusOK}

	sw.WriteHeader(http.StatusServiceUnavailable)
	assert.Equal(t, http.StatusServiceUnavailable, sw.status)
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
	assert.Same(t, rr, sw.Unwrap())
}

func TestEndpointLabel(t *testing.T) {
	tests := []struct {
		path     string
		expected string
	}{
		{"/", "/"},
		{"/health", "/health"},
		{"/update/alice", "/update"},
		{"/profile/alice/status/funny", "/profile"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.expected, endpointLabel(tt.path))
		})
	}
}
