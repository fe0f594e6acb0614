package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"listing-frontdesk/internal/common/config"
	"listing-frontdesk/internal/common/database"
	"listing-frontdesk/internal/common/logger"
)

type countingSource struct {
	statesCalls     int
	citiesCalls     int
	localitiesCalls int
}

func (s *countingSource) States(ctx context.Context) ([]string, error) {
	s.statesCalls++
	return []string{"Karnataka", "Maharashtra"}, nil
}

func (s *countingSource) Cities(ctx context.Context, state string) ([]string, error) {
	s.citiesCalls++
	return []string{"Bengaluru", "Mysuru"}, nil
}

func (s *countingSource) Localities(ctx context.Context, state, city, search string) ([]string, error) {
	s.localitiesCalls++
	return []string{"Indiranagar"}, nil
}

func newTestCache(t *testing.T, ttl time.Duration) (*LocationCache, *countingSource, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)

	redisClient, err := database.NewRedis(config.RedisConfig{Address: mr.Addr()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = redisClient.Close() })

	source := &countingSource{}
	return NewLocationCache(source, redisClient, ttl, logger.NewNoOpLogger()), source, mr
}

func TestLocationCache_HitSkipsSource(t *testing.T) {
	cache, source, _ := newTestCache(t, time.Hour)
	ctx := context.Background()

	states, err := cache.States(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Karnataka", "Maharashtra"}, states)
	assert.Equal(t, 1, source.statesCalls)

	states, err = cache.States(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Karnataka", "Maharashtra"}, states)
	assert.Equal(t, 1, source.statesCalls, "second read must come from the cache")
}

func TestLocationCache_KeysVaryByParameters(t *testing.T) {
	cache, source, _ := newTestCache(t, time.Hour)
	ctx := context.Background()

	_, err := cache.Localities(ctx, "Karnataka", "Bengaluru", "")
	require.NoError(t, err)
	_, err = cache.Localities(ctx, "Karnataka", "Bengaluru", "Indira")
	require.NoError(t, err)
	assert.Equal(t, 2, source.localitiesCalls, "different search terms are distinct entries")

	_, err = cache.Localities(ctx, "Karnataka", "Bengaluru", "Indira")
	require.NoError(t, err)
	assert.Equal(t, 2, source.localitiesCalls)
}

func TestLocationCache_ExpiryRefetches(t *testing.T) {
	cache, source, mr := newTestCache(t, time.Minute)
	ctx := context.Background()

	_, err := cache.Cities(ctx, "Karnataka")
	require.NoError(t, err)
	require.Equal(t, 1, source.citiesCalls)

	mr.FastForward(2 * time.Minute)

	_, err = cache.Cities(ctx, "Karnataka")
	require.NoError(t, err)
	assert.Equal(t, 2, source.citiesCalls)
}

func TestLocationCache_NilRedisDisablesCaching(t *testing.T) {
	source := &countingSource{}
	cache := NewLocationCache(source, nil, time.Hour, logger.NewNoOpLogger())
	ctx := context.Background()

	_, err := cache.States(ctx)
	require.NoError(t, err)
	_, err = cache.States(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, source.statesCalls)
}

func TestLocationCache_MalformedEntryIsDropped(t *testing.T) {
	cache, source, mr := newTestCache(t, time.Hour)
	ctx := context.Background()

	require.NoError(t, mr.Set(cacheKey("states"), "not-json"))

	states, err := cache.States(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Karnataka", "Maharashtra"}, states)
	assert.Equal(t, 1, source.statesCalls)
}
