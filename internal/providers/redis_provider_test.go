package providers

import (
	"context"
	"testing"
	"time"
	"wallfeed/internal/models"
	"wallfeed/internal/structures"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func unreachableRedisConfig() *structures.Config {
	return &structures.Config{
		LastSeen: structures.LastSeenConfig{
			Backend:   "redis",
			TTL:       time.Hour,
			RedisAddr: "127.0.0.1:1",
		},
	}
}

func TestRedisKey_RemoteContact(t *testing.T) {
	key := models.LastSeenKey{OwnerID: 1, LocalUserID: 0, RemoteContactID: 11}
	assert.Equal(t, "wallfeed:last_updated:profile:1:0:11", redisKey(key))
}

func TestRedisProvider_UnreachableServer(t *testing.T) {
	p := NewRedisProvider(unreachableRedisConfig(), &cacheTestLogger{})
	defer p.(*RedisProvider).Close()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	assert.Error(t, p.Set(ctx, testKey, time.Now()))
	_, ok, err := p.Get(ctx, testKey)
	assert.Error(t, err)
	assert.False(t, ok)
}

func TestNewLastSeenProvider_RedisBackendIsInstrumented(t *testing.T) {
	m := &countingMetrics{}
	p := NewLastSeenProvider(unreachableRedisConfig(), &cacheTestLogger{}, m)

	wrapped, ok := p.(*MetricsCacheProvider)
	require.True(t, ok)
	assert.IsType(t, &RedisProvider{}, wrapped.inner)
	defer wrapped.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	_ = p.Set(ctx, testKey, time.Now())
	assert.Equal(t, 1, m.failures)
}
