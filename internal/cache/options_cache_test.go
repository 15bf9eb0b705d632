package cache

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/andresuchdata/aurora-inventory/backend-go/internal/config"
	"github.com/andresuchdata/aurora-inventory/backend-go/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildFilterOptionsKey(t *testing.T) {
	a := buildFilterOptionsKey("AURORA.MAIN.STOCK_HEALTH")
	b := buildFilterOptionsKey("  aurora.main.stock_health ")

	assert.Equal(t, a, b)
	assert.True(t, strings.HasPrefix(a, filterOptionsKeyPrefix+":"))
	assert.NotEqual(t, a, buildFilterOptionsKey("stock_health"))
	assert.Equal(t, filterOptionsKeyPrefix+":default", buildFilterOptionsKey(""))
}

func TestDisabledCacheIsNoop(t *testing.T) {
	c, err := NewFilterOptionsCache(config.CacheConfig{Enabled: false})
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, c.SetOptions(ctx, "stock_health", &domain.FilterOptions{Locations: []string{"All"}}))

	got, ok, err := c.GetOptions(ctx, "stock_health")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, got)
	assert.NoError(t, c.InvalidateAll(ctx))
}

func TestRedisOptions(t *testing.T) {
	opts, err := redisOptions(config.CacheConfig{RedisHost: "cache", RedisPort: "6380", RedisDB: 2})
	require.NoError(t, err)
	assert.Equal(t, "cache:6380", opts.Addr)
	assert.Equal(t, 2, opts.DB)

	opts, err = redisOptions(config.CacheConfig{RedisURL: "redis://:secret@redis.internal:6379/1"})
	require.NoError(t, err)
	assert.Equal(t, "redis.internal:6379", opts.Addr)
	assert.Equal(t, "secret", opts.Password)
	assert.Equal(t, 1, opts.DB)

	_, err = redisOptions(config.CacheConfig{RedisURL: "://bad"})
	assert.Error(t, err)

	opts, err = redisOptions(config.CacheConfig{})
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:6379", opts.Addr)
}

func TestOptionsTTL(t *testing.T) {
	assert.Equal(t, defaultOptionsTTL, optionsTTL(config.CacheConfig{}))
	assert.Equal(t, defaultOptionsTTL, optionsTTL(config.CacheConfig{OptionsTTLSeconds: -1}))
	assert.Equal(t, 90*time.Second, optionsTTL(config.CacheConfig{OptionsTTLSeconds: 90}))
}
