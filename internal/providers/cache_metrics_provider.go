package providers

import (
	"context"
	"io"
	"time"
	"wallfeed/internal/models"
	"wallfeed/internal/structures"
)

// MetricsCacheProvider wraps a LastSeenStoreInterface and counts hits,
// misses and write failures.
type MetricsCacheProvider struct {
	inner   LastSeenStoreInterface
	metrics MetricsProviderInterface
}

func (c *MetricsCacheProvider) Get(ctx context.Context, key models.LastSeenKey) (time.Time, bool, error) {
	ts, ok, err := c.inner.Get(ctx, key)
	if ok {
		c.metrics.IncCacheHits()
	} else {
		c.metrics.IncCacheMisses()
	}
	return ts, ok, err
}

func (c *MetricsCacheProvider) Set(ctx context.Context, key models.LastSeenKey, ts time.Time) error {
	err := c.inner.Set(ctx, key, ts)
	if err != nil {
		c.metrics.IncLastSeenFailures()
	}
	return err
}

// Close releases the backend when it holds connections.
func (c *MetricsCacheProvider) Close() error {
	if closer, ok := c.inner.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

// NewLastSeenProvider picks the configured backend and wraps it with metrics
// instrumentation. The disabled store is returned bare so it does not count
// phantom misses.
func NewLastSeenProvider(conf *structures.Config, logger Logger, metrics MetricsProviderInterface) LastSeenStoreInterface {
	var inner LastSeenStoreInterface
	switch conf.LastSeen.Backend {
	case "redis":
		inner = NewRedisProvider(conf, logger)
	default:
		inner = NewCacheProvider(conf, logger)
	}
	if _, ok := inner.(*noopCache); ok {
		return inner
	}
	return &MetricsCacheProvider{
		inner:   inner,
		metrics: metrics,
	}
}
