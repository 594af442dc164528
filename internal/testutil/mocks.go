package testutil

import (
	"context"
	"errors"
	"sync"
	"time"
	"wallfeed/internal/models"
	"wallfeed/internal/providers"
)

// MockLogger implements providers.Logger and records calls.
type MockLogger struct {
	mu   sync.Mutex
	Logs []LogEntry
}

type LogEntry struct {
	Level  string
	Type   providers.TypeEnum
	Format string
	Args   []interface{}
}

func (m *MockLogger) record(level string, t providers.TypeEnum, format string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Logs = append(m.Logs, LogEntry{Level: level, Type: t, Format: format, Args: args})
}

func (m *MockLogger) Errorf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("error", t, format, args...)
}
func (m *MockLogger) Warnf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("warn", t, format, args...)
}
func (m *MockLogger) Debugf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("debug", t, format, args...)
}
func (m *MockLogger) Infof(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("info", t, format, args...)
}
func (m *MockLogger) Fatalf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("fatal", t, format, args...)
}
func (m *MockLogger) Close() {}

// Count returns the number of recorded entries at level.
func (m *MockLogger) Count(level string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, l := range m.Logs {
		if l.Level == level {
			n++
		}
	}
	return n
}

// MockLastSeenStore implements providers.LastSeenStoreInterface.
type MockLastSeenStore struct {
	mu      sync.Mutex
	Data    map[models.LastSeenKey]time.Time
	SetErr  error
	GetErr  error
	SetCall int
}

func NewMockLastSeenStore() *MockLastSeenStore {
	return &MockLastSeenStore{Data: make(map[models.LastSeenKey]time.Time)}
}

func (m *MockLastSeenStore) Get(_ context.Context, key models.LastSeenKey) (time.Time, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetErr != nil {
		return time.Time{}, false, m.GetErr
	}
	ts, ok := m.Data[key]
	return ts, ok, nil
}

func (m *MockLastSeenStore) Set(_ context.Context, key models.LastSeenKey, ts time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SetCall++
	if m.SetErr != nil {
		return m.SetErr
	}
	m.Data[key] = ts
	return nil
}

// MockMetrics implements providers.MetricsProviderInterface.
type MockMetrics struct {
	mu       sync.Mutex
	Renders  map[string]int
	Queries  int
	Persists int
}

func (m *MockMetrics) IncRequestsTotal(_ string, _ int)                 {}
func (m *MockMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (m *MockMetrics) IncRenders(outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Renders == nil {
		m.Renders = make(map[string]int)
	}
	m.Renders[outcome]++
}
func (m *MockMetrics) ObserveQueryDuration(_ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Queries++
}
func (m *MockMetrics) IncCacheHits()        {}
func (m *MockMetrics) IncCacheMisses()      {}
func (m *MockMetrics) IncLastSeenFailures() {}
func (m *MockMetrics) ObservePersistenceDuration(_ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Persists++
}

// MockCompressor implements interfaces.CompressorInterface with injectable behavior.
type MockCompressor struct {
	CompressFn   func([]byte) ([]byte, error)
	DecompressFn func([]byte) ([]byte, error)
	Closed       int
}

func (m *MockCompressor) Compress(val []byte) ([]byte, error) {
	if m.CompressFn != nil {
		return m.CompressFn(val)
	}
	// Default: return as-is (identity)
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *MockCompressor) Decompress(val []byte) ([]byte, error) {
	if m.DecompressFn != nil {
		return m.DecompressFn(val)
	}
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *MockCompressor) Close() { m.Closed++ }

var ErrInjected = errors.New("injected failure")
