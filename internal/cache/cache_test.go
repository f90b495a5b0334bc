package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestKeys(t *testing.T) {
	assert.Equal(t, "slots:ver:7", versionKey(7))
	assert.Equal(t, "slots:7:v3:2024-06-03:45", entryKey(7, 3, "2024-06-03", 45))
	assert.NotEqual(t, entryKey(7, 3, "2024-06-03", 45), entryKey(7, 4, "2024-06-03", 45))
}

func TestNoopCache(t *testing.T) {
	var c SlotCache = NoopCache{}
	c.Set(context.Background(), 1, 0, "2024-06-03", 30, Entry{Slots: []time.Time{time.Now()}})

	e, ver, ok := c.Get(context.Background(), 1, "2024-06-03", 30)
	assert.False(t, ok)
	assert.Nil(t, e)
	assert.Equal(t, NoVersion, ver)
}

func TestRedisCache_UnreachableServerIsMiss(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer rdb.Close()

	c := NewRedisCache(rdb, time.Minute, zap.NewNop())
	c.Set(context.Background(), 1, 0, "2024-06-03", 30, Entry{Closed: true})
	c.Invalidate(context.Background(), 1)

	_, _, ok := c.Get(context.Background(), 1, "2024-06-03", 30)
	assert.False(t, ok)
}

func newTestCache(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewRedisCache(rdb, time.Minute, zap.NewNop()), mr
}

func TestRedisCache_HitAfterSet(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()
	slot := time.Date(2024, 6, 3, 9, 0, 0, 0, time.UTC)

	_, ver, ok := c.Get(ctx, 1, "2024-06-03", 30)
	require.False(t, ok)
	assert.Equal(t, int64(0), ver)

	c.Set(ctx, 1, ver, "2024-06-03", 30, Entry{Slots: []time.Time{slot}})

	e, ver, ok := c.Get(ctx, 1, "2024-06-03", 30)
	require.True(t, ok)
	assert.Equal(t, int64(0), ver)
	require.Len(t, e.Slots, 1)
	assert.True(t, e.Slots[0].Equal(slot))

	_, _, ok = c.Get(ctx, 1, "2024-06-03", 45)
	assert.False(t, ok)
}

func TestRedisCache_InvalidateBetweenMissAndSet(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()
	booked := time.Date(2024, 6, 3, 10, 0, 0, 0, time.UTC)

	_, ver, ok := c.Get(ctx, 1, "2024-06-03", 30)
	require.False(t, ok)

	// a booking commits while the list is being computed
	c.Invalidate(ctx, 1)
	c.Set(ctx, 1, ver, "2024-06-03", 30, Entry{Slots: []time.Time{booked}})

	e, ver, ok := c.Get(ctx, 1, "2024-06-03", 30)
	assert.False(t, ok)
	assert.Nil(t, e)
	assert.Equal(t, int64(1), ver)
}

func TestRedisCache_InvalidateIsPerBarber(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	c.Set(ctx, 1, 0, "2024-06-03", 30, Entry{Closed: true})
	c.Set(ctx, 2, 0, "2024-06-03", 30, Entry{Closed: true})
	c.Invalidate(ctx, 1)

	_, _, ok := c.Get(ctx, 1, "2024-06-03", 30)
	assert.False(t, ok)
	e, _, ok := c.Get(ctx, 2, "2024-06-03", 30)
	require.True(t, ok)
	assert.True(t, e.Closed)
}

func TestRedisCache_EntriesExpire(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	c.Set(ctx, 1, 0, "2024-06-03", 30, Entry{Closed: true})
	mr.FastForward(2 * time.Minute)

	_, _, ok := c.Get(ctx, 1, "2024-06-03", 30)
	assert.False(t, ok)
}

func TestRedisCache_SetWithoutVersionIsIgnored(t *testing.T) {
	c, mr := newTestCache(t)

	c.Set(context.Background(), 1, NoVersion, "2024-06-03", 30, Entry{Closed: true})
	assert.Empty(t, mr.Keys())
}
