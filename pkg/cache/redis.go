// Package cache is a thin JSON read-through cache on Redis. Every helper is
// nil-safe: with no Redis configured, Get always misses and Set is a no-op,
// so callers fall through to the store.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/pawhaven/pawhaven/config"
	"github.com/pawhaven/pawhaven/pkg/metrics"
	"github.com/redis/go-redis/v9"
)

var RDB *redis.Client
var Ctx = context.Background()

// Connect initialises the shared client from config.
func Connect() {
	RDB = redis.NewClient(&redis.Options{
		Addr:     config.RedisAddr(),
		Password: config.RedisPassword(),
	})
}

// Get unmarshals the cached value for key into dest.
// Returns false on miss, error, or when Redis is not connected.
func Get(key string, dest interface{}) bool {
	if RDB == nil {
		return false
	}

	val, err := RDB.Get(Ctx, key).Result()
	if err != nil {
		metrics.CacheMisses.WithLabelValues("redis").Inc()
		return false
	}

	if err := json.Unmarshal([]byte(val), dest); err != nil {
		metrics.CacheMisses.WithLabelValues("redis").Inc()
		return false
	}

	metrics.CacheHits.WithLabelValues("redis").Inc()
	return true
}

// Set stores value under key for ttl.
func Set(key string, value interface{}, ttl time.Duration) error {
	if RDB == nil {
		return nil
	}

	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	return RDB.Set(Ctx, key, data, ttl).Err()
}

// Forget drops a cached key, used after a mutation invalidates it.
func Forget(key string) {
	if RDB == nil {
		return
	}
	RDB.Del(Ctx, key)
}
