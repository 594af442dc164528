package providers

import (
	"context"
	"encoding/binary"
	"errors"
	"time"
	"unsafe"
	"wallfeed/internal/models"
	"wallfeed/internal/structures"

	"github.com/coocood/freecache"
)

// LastSeenStoreInterface is the session-scoped map of last render times.
type LastSeenStoreInterface interface {
	Get(ctx context.Context, key models.LastSeenKey) (time.Time, bool, error)
	Set(ctx context.Context, key models.LastSeenKey, ts time.Time) error
}

type CacheProvider struct {
	cache *freecache.Cache
	ttl   int
}

func NewCacheProvider(conf *structures.Config, logger Logger) LastSeenStoreInterface {
	if conf.LastSeen.CacheSize <= 0 {
		logger.Infof(TypeApp, "Last-seen tracking disabled")
		return &noopCache{}
	}

	sizeBytes := conf.LastSeen.CacheSize * 1024 * 1024
	ttl := max(int(conf.LastSeen.TTL.Seconds()), 1)

	logger.Infof(TypeApp, "Last-seen cache initialized: %dMB, TTL=%ds", conf.LastSeen.CacheSize, ttl)

	return &CacheProvider{
		cache: freecache.NewCache(sizeBytes),
		ttl:   ttl,
	}
}

// unsafeStringToBytes converts string to []byte without allocation.
// freecache copies keys internally so the result is never written to.
func unsafeStringToBytes(s string) []byte {
	if len(s) == 0 {
		return nil
	}
	return unsafe.Slice(unsafe.StringData(s), len(s))
}

func (c *CacheProvider) Get(_ context.Context, key models.LastSeenKey) (time.Time, bool, error) {
	val, err := c.cache.Get(unsafeStringToBytes(key.String()))
	if err != nil {
		if errors.Is(err, freecache.ErrNotFound) {
			return time.Time{}, false, nil
		}
		return time.Time{}, false, err
	}
	if len(val) != 8 {
		return time.Time{}, false, nil
	}
	return time.Unix(0, int64(binary.BigEndian.Uint64(val))).UTC(), true, nil
}

func (c *CacheProvider) Set(_ context.Context, key models.LastSeenKey, ts time.Time) error {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], uint64(ts.UnixNano()))
	return c.cache.Set(unsafeStringToBytes(key.String()), buf[:], c.ttl)
}

type noopCache struct{}

func (n *noopCache) Get(_ context.Context, _ models.LastSeenKey) (time.Time, bool, error) {
	return time.Time{}, false, nil
}
func (n *noopCache) Set(_ context.Context, _ models.LastSeenKey, _ time.Time) error { return nil }
