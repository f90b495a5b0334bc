package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const keyPrefix = "slots"

type RedisCache struct {
	rdb *redis.Client
	ttl time.Duration
	log *zap.Logger
}

// NewRedisClient connects and pings the server.
func NewRedisClient(
	addr string,
	password string,
	db int,
) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return rdb, nil
}

func NewRedisCache(rdb *redis.Client, ttl time.Duration, log *zap.Logger) *RedisCache {
	return &RedisCache{rdb: rdb, ttl: ttl, log: log}
}

func versionKey(barberID uint) string {
	return fmt.Sprintf("%s:ver:%d", keyPrefix, barberID)
}

func entryKey(barberID uint, version int64, date string, durationMin int) string {
	return fmt.Sprintf("%s:%d:v%d:%s:%d", keyPrefix, barberID, version, date, durationMin)
}

func (c *RedisCache) version(ctx context.Context, barberID uint) (int64, error) {
	v, err := c.rdb.Get(ctx, versionKey(barberID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return v, err
}

func (c *RedisCache) Get(
	ctx context.Context,
	barberID uint,
	date string,
	durationMin int,
) (*Entry, int64, bool) {

	ver, err := c.version(ctx, barberID)
	if err != nil {
		c.log.Debug("slot cache version read failed", zap.Uint("barber_id", barberID), zap.Error(err))
		return nil, NoVersion, false
	}

	raw, err := c.rdb.Get(ctx, entryKey(barberID, ver, date, durationMin)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Debug("slot cache read failed", zap.Uint("barber_id", barberID), zap.Error(err))
		}
		return nil, ver, false
	}

	var e Entry
	if err := json.Unmarshal(raw, &e); err != nil {
		return nil, ver, false
	}
	return &e, ver, true
}

// Set stores e under the version returned by the Get that missed. If the
// barber was invalidated in between, the entry lands under an old version
// and is never read.
func (c *RedisCache) Set(
	ctx context.Context,
	barberID uint,
	version int64,
	date string,
	durationMin int,
	e Entry,
) {

	if version < 0 {
		return
	}

	raw, err := json.Marshal(e)
	if err != nil {
		return
	}

	if err := c.rdb.Set(ctx, entryKey(barberID, version, date, durationMin), raw, c.ttl).Err(); err != nil {
		c.log.Debug("slot cache write failed", zap.Uint("barber_id", barberID), zap.Error(err))
	}
}

// Invalidate makes every cached entry of the barber unreachable. Old
// entries expire on their own TTL.
func (c *RedisCache) Invalidate(ctx context.Context, barberID uint) {
	if err := c.rdb.Incr(ctx, versionKey(barberID)).Err(); err != nil {
		c.log.Warn("slot cache invalidation failed", zap.Uint("barber_id", barberID), zap.Error(err))
	}
}

var _ SlotCache = (*RedisCache)(nil)
