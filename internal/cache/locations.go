// Package cache provides a Redis-backed cache for the location dropdown
// lists, which change rarely but are requested on every address form.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"time"

	"listing-frontdesk/internal/common/database"
	"listing-frontdesk/internal/common/logger"
	"listing-frontdesk/internal/common/metrics"
)

// LocationSource is the slice of the dropdown client the cache wraps.
type LocationSource interface {
	States(ctx context.Context) ([]string, error)
	Cities(ctx context.Context, state string) ([]string, error)
	Localities(ctx context.Context, state, city, search string) ([]string, error)
}

// LocationCache serves dropdown lists from Redis, falling back to the
// upstream source on a miss. A nil redis client disables caching entirely.
type LocationCache struct {
	source LocationSource
	redis  *database.RedisClient
	ttl    time.Duration
	log    logger.Logger
}

// NewLocationCache wraps a dropdown source with Redis caching. Pass a nil
// redis client to serve straight from the source.
func NewLocationCache(source LocationSource, redis *database.RedisClient, ttl time.Duration, log logger.Logger) *LocationCache {
	return &LocationCache{source: source, redis: redis, ttl: ttl, log: log}
}

// cacheKey hashes the lookup parameters so arbitrary search strings cannot
// produce unbounded or malformed Redis keys.
func cacheKey(parts ...string) string {
	h := sha256.New()
	for _, p := range parts {
		h.Write([]byte(p))
		h.Write([]byte{0})
	}
	return "locations:" + hex.EncodeToString(h.Sum(nil))
}

func (c *LocationCache) enabled() bool {
	return c.redis != nil && c.ttl > 0
}

// fetch answers from Redis when possible and refills the cache after asking
// the source. Cache failures degrade to a direct source call.
func (c *LocationCache) fetch(ctx context.Context, key string, load func(context.Context) ([]string, error)) ([]string, error) {
	if !c.enabled() {
		return load(ctx)
	}

	cached, err := c.redis.Get(ctx, key)
	if err == nil {
		var values []string
		if err := json.Unmarshal([]byte(cached), &values); err == nil {
			metrics.LocationCacheHits.WithLabelValues("hit").Inc()
			return values, nil
		}
		c.log.Warn("Dropping malformed cache entry", map[string]interface{}{"key": key})
		_ = c.redis.Del(ctx, key)
	} else if !errors.Is(err, database.ErrCacheMiss) {
		c.log.Warn("Location cache read failed", map[string]interface{}{"error": err.Error()})
	}
	metrics.LocationCacheHits.WithLabelValues("miss").Inc()

	values, err := load(ctx)
	if err != nil {
		return nil, err
	}

	encoded, err := json.Marshal(values)
	if err == nil {
		if err := c.redis.Set(ctx, key, encoded, c.ttl); err != nil {
			c.log.Warn("Location cache write failed", map[string]interface{}{"error": err.Error()})
		}
	}
	return values, nil
}

// States returns the cached state list.
func (c *LocationCache) States(ctx context.Context) ([]string, error) {
	return c.fetch(ctx, cacheKey("states"), c.source.States)
}

// Cities returns the cached city list for a state.
func (c *LocationCache) Cities(ctx context.Context, state string) ([]string, error) {
	return c.fetch(ctx, cacheKey("cities", state), func(ctx context.Context) ([]string, error) {
		return c.source.Cities(ctx, state)
	})
}

// Localities returns the cached locality list for a city and search prefix.
func (c *LocationCache) Localities(ctx context.Context, state, city, search string) ([]string, error) {
	return c.fetch(ctx, cacheKey("localities", state, city, search), func(ctx context.Context) ([]string, error) {
		return c.source.Localities(ctx, state, city, search)
	})
}
