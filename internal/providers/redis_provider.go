package providers

import (
	"context"
	"errors"
	"time"
	"wallfeed/internal/models"
	"wallfeed/internal/structures"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "wallfeed:last_updated:"

// RedisProvider keeps last-seen stamps in Redis so that every instance
// behind a load balancer sees the same values.
type RedisProvider struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisProvider(conf *structures.Config, logger Logger) LastSeenStoreInterface {
	client := redis.NewClient(&redis.Options{
		Addr: conf.LastSeen.RedisAddr,
		DB:   conf.LastSeen.RedisDB,
	})
	logger.Infof(TypeApp, "Last-seen store on redis %s/%d, TTL=%s", conf.LastSeen.RedisAddr, conf.LastSeen.RedisDB, conf.LastSeen.TTL)
	return &RedisProvider{client: client, ttl: conf.LastSeen.TTL}
}

func redisKey(key models.LastSeenKey) string {
	return redisKeyPrefix + key.String()
}

func (r *RedisProvider) Get(ctx context.Context, key models.LastSeenKey) (time.Time, bool, error) {
	ns, err := r.client.Get(ctx, redisKey(key)).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return time.Time{}, false, nil
		}
		return time.Time{}, false, err
	}
	return time.Unix(0, ns).UTC(), true, nil
}

func (r *RedisProvider) Set(ctx context.Context, key models.LastSeenKey, ts time.Time) error {
	return r.client.Set(ctx, redisKey(key), ts.UnixNano(), r.ttl).Err()
}

func (r *RedisProvider) Close() error {
	return r.client.Close()
}
