package redis

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"seller-marketplace/shared/config"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNilCacheAlwaysMisses(t *testing.T) {
	var c *Cache
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", []string{"a"}, time.Minute))

	var out []string
	err := c.Get(ctx, "k", &out)
	assert.True(t, errors.Is(err, redis.Nil))
	assert.NoError(t, c.Delete(ctx, "k"))
	assert.NoError(t, c.Close())
}

func TestConnectDisabled(t *testing.T) {
	cfg := &config.Config{Redis: config.RedisConfig{Enabled: false}}

	c, err := Connect(context.Background(), cfg)
	require.NoError(t, err)
	assert.Nil(t, c)
}

func TestRememberLoadsOnMiss(t *testing.T) {
	var c *Cache
	calls := 0
	load := func() ([]string, error) {
		calls++
		return []string{"Phones", "Laptops"}, nil
	}

	for i := 0; i < 2; i++ {
		got, err := Remember(context.Background(), c, zerolog.Nop(), CategoriesKey, time.Minute, load)
		require.NoError(t, err)
		assert.Equal(t, []string{"Phones", "Laptops"}, got)
	}
	assert.Equal(t, 2, calls)
}

func TestRememberReturnsLoadError(t *testing.T) {
	boom := errors.New("boom")

	_, err := Remember(context.Background(), nil, zerolog.Nop(), AdvertisedKey, time.Minute, func() (int, error) {
		return 0, boom
	})
	assert.ErrorIs(t, err, boom)
}

func TestRememberSurvivesUnreachableServer(t *testing.T) {
	c := New(redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	}))
	defer c.Close()

	got, err := Remember(context.Background(), c, zerolog.Nop(), CategoriesKey, time.Minute, func() (string, error) {
		return "fresh", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "fresh", got)
}

func newTestCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	c := New(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { _ = c.Close() })
	return c, mr
}

func TestRememberServesCachedValue(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	calls := 0
	load := func() ([]string, error) {
		calls++
		return []string{"Phones"}, nil
	}

	for i := 0; i < 3; i++ {
		got, err := Remember(ctx, c, zerolog.Nop(), CategoriesKey, time.Hour, load)
		require.NoError(t, err)
		assert.Equal(t, []string{"Phones"}, got)
	}
	assert.Equal(t, 1, calls)
	assert.True(t, mr.Exists(CategoriesKey))
	assert.Equal(t, time.Hour, mr.TTL(CategoriesKey))

	Invalidate(ctx, c, zerolog.Nop(), CategoriesKey)
	assert.False(t, mr.Exists(CategoriesKey))

	_, err := Remember(ctx, c, zerolog.Nop(), CategoriesKey, time.Hour, load)
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestRememberExpires(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	calls := 0
	load := func() (int, error) {
		calls++
		return calls, nil
	}

	_, err := Remember(ctx, c, zerolog.Nop(), AdvertisedKey, time.Minute, load)
	require.NoError(t, err)

	mr.FastForward(2 * time.Minute)

	got, err := Remember(ctx, c, zerolog.Nop(), AdvertisedKey, time.Minute, load)
	require.NoError(t, err)
	assert.Equal(t, 2, got)
}

func TestRememberReloadsOnCorruptEntry(t *testing.T) {
	c, mr := newTestCache(t)
	require.NoError(t, mr.Set(CategoriesKey, "{not json"))

	got, err := Remember(context.Background(), c, zerolog.Nop(), CategoriesKey, time.Hour, func() ([]string, error) {
		return []string{"Laptops"}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Laptops"}, got)
}

func TestConnectEnabled(t *testing.T) {
	mr := miniredis.RunT(t)
	host, port, _ := strings.Cut(mr.Addr(), ":")
	cfg := &config.Config{Redis: config.RedisConfig{Enabled: true, Host: host, Port: port}}

	c, err := Connect(context.Background(), cfg)
	require.NoError(t, err)
	require.NotNil(t, c)
	defer c.Close()

	require.NoError(t, c.Set(context.Background(), "k", map[string]int{"n": 1}, time.Minute))
	var out map[string]int
	require.NoError(t, c.Get(context.Background(), "k", &out))
	assert.Equal(t, 1, out["n"])
}
