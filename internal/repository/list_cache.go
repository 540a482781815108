package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"school_planner_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const (
	KindHomework  = "homework"
	KindTimetable = "timetable"
)

var errStaleList = errors.New("list changed since it was read")

// Stamp is the version of a caller's list observed before reading it from
// the database. An empty stamp never writes.
type Stamp string

const unversioned Stamp = "0"

// ListCache keeps each caller's full list per entity kind in redis.
// Every list has a version key that writers bump together with dropping the
// list; a list read from the database is only stored while the version it
// was read under is still current. A nil cache is a no-op.
type ListCache struct {
	Redis *redis.Client
	TTL   time.Duration
}

func NewListCache(rdb *redis.Client, ttl time.Duration) *ListCache {
	if rdb == nil {
		return nil
	}
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &ListCache{Redis: rdb, TTL: ttl}
}

func ListKey(kind, ownerID string) string {
	return fmt.Sprintf("planner:list:%s:%s", kind, ownerID)
}

func VersionKey(kind, ownerID string) string {
	return fmt.Sprintf("planner:listver:%s:%s", kind, ownerID)
}

func (c *ListCache) enabled() bool {
	return c != nil && c.Redis != nil
}

func (c *ListCache) version(ctx context.Context, get func(ctx context.Context, key string) *redis.StringCmd, kind, ownerID string) (Stamp, error) {
	v, err := get(ctx, VersionKey(kind, ownerID)).Result()
	if err == redis.Nil {
		return unversioned, nil
	}
	if err != nil {
		return "", err
	}
	return Stamp(v), nil
}

// Get reads the cached list into out. The returned stamp is taken before the
// list is read and must be passed to Set when the caller falls back to the
// database.
func (c *ListCache) Get(ctx context.Context, kind, ownerID string, out interface{}) (Stamp, bool) {
	if !c.enabled() {
		return "", false
	}
	stamp, err := c.version(ctx, c.Redis.Get, kind, ownerID)
	if err != nil {
		logger.Log.Warn("list cache read failed", zap.String("kind", kind), zap.Error(err))
		return "", false
	}

	val, err := c.Redis.Get(ctx, ListKey(kind, ownerID)).Result()
	if err == redis.Nil {
		return stamp, false
	}
	if err != nil {
		logger.Log.Warn("list cache read failed", zap.String("kind", kind), zap.Error(err))
		return "", false
	}
	if err := json.Unmarshal([]byte(val), out); err != nil {
		logger.Log.Warn("list cache entry corrupted", zap.String("kind", kind), zap.Error(err))
		c.Invalidate(ctx, kind, ownerID)
		return "", false
	}
	return stamp, true
}

// Set stores v only if the list version still equals stamp. A concurrent
// Invalidate makes the write a no-op.
func (c *ListCache) Set(ctx context.Context, kind, ownerID string, stamp Stamp, v interface{}) {
	if !c.enabled() || stamp == "" {
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		return
	}

	verKey := VersionKey(kind, ownerID)
	err = c.Redis.Watch(ctx, func(tx *redis.Tx) error {
		current, err := c.version(ctx, tx.Get, kind, ownerID)
		if err != nil {
			return err
		}
		if current != stamp {
			return errStaleList
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, ListKey(kind, ownerID), data, c.TTL)
			return nil
		})
		return err
	}, verKey)

	switch {
	case err == nil:
	case errors.Is(err, errStaleList), errors.Is(err, redis.TxFailedErr):
		logger.Log.Debug("list cache write skipped", zap.String("kind", kind), zap.String("owner", ownerID))
	default:
		logger.Log.Warn("list cache write failed", zap.String("kind", kind), zap.Error(err))
	}
}

// Invalidate bumps the list version and drops the list in one transaction.
func (c *ListCache) Invalidate(ctx context.Context, kind, ownerID string) {
	if !c.enabled() {
		return
	}
	_, err := c.Redis.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, VersionKey(kind, ownerID))
		pipe.Del(ctx, ListKey(kind, ownerID))
		return nil
	})
	if err != nil {
		logger.Log.Warn("list cache invalidation failed", zap.String("kind", kind), zap.Error(err))
	}
}
