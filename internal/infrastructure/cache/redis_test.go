package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func setupTestRedis(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	c := NewRedisCacheFromClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { _ = c.Close() })
	return c, mr
}

func TestRedisCache_SetGet(t *testing.T) {
	c, mr := setupTestRedis(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", payload{Name: "a", Count: 2}, time.Minute))
	assert.True(t, mr.Exists("k"))
	assert.Equal(t, time.Minute, mr.TTL("k"))

	var got payload
	found, err := c.Get(ctx, "k", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, payload{Name: "a", Count: 2}, got)
}

func TestRedisCache_Miss(t *testing.T) {
	c, _ := setupTestRedis(t)

	var got payload
	found, err := c.Get(context.Background(), "missing", &got)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Equal(t, payload{}, got)
}

func TestRedisCache_InvalidJSON(t *testing.T) {
	c, mr := setupTestRedis(t)
	require.NoError(t, mr.Set("bad", "{not json"))

	var got payload
	_, err := c.Get(context.Background(), "bad", &got)
	assert.Error(t, err)
}

func TestRedisCache_DeleteAndExpire(t *testing.T) {
	c, mr := setupTestRedis(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "a", 1, 0))
	require.NoError(t, c.Set(ctx, "b", 2, 0))
	require.NoError(t, c.Expire(ctx, "a", time.Hour))
	assert.Equal(t, time.Hour, mr.TTL("a"))

	require.NoError(t, c.Delete(ctx, "a", "b", "never-existed"))
	assert.False(t, mr.Exists("a"))
	assert.False(t, mr.Exists("b"))
	require.NoError(t, c.Delete(ctx))
}

func TestRedisCache_Ping(t *testing.T) {
	c, mr := setupTestRedis(t)
	require.NoError(t, c.Ping(context.Background()))
	require.NoError(t, c.Connect(context.Background()))

	mr.Close()
	assert.Error(t, c.Ping(context.Background()))
}
