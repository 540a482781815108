package repository

import (
	"context"
	"testing"
	"time"

	"school_planner_backend/internal/model"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListKey(t *testing.T) {
	assert.Equal(t, "planner:list:homework:p-1", ListKey(KindHomework, "p-1"))
	assert.NotEqual(t, ListKey(KindHomework, "p-1"), ListKey(KindTimetable, "p-1"))
}

func TestListCache_Disabled(t *testing.T) {
	c := NewListCache(nil, time.Minute)
	assert.Nil(t, c)

	ctx := context.Background()
	var items []model.Homework
	stamp, hit := c.Get(ctx, KindHomework, "p-1", &items)
	assert.False(t, hit)
	assert.Empty(t, stamp)
	c.Set(ctx, KindHomework, "p-1", stamp, []model.Homework{{ID: 1}})
	c.Invalidate(ctx, KindHomework, "p-1")
}

func TestListCache_UnreachableRedisMisses(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer rdb.Close()

	c := NewListCache(rdb, 0)
	assert.Equal(t, 10*time.Minute, c.TTL)

	ctx := context.Background()
	var entries []model.TimetableEntry
	stamp, hit := c.Get(ctx, KindTimetable, "p-1", &entries)
	assert.False(t, hit)
	assert.Empty(t, stamp, "no stamp without a version read")
	c.Set(ctx, KindTimetable, "p-1", unversioned, []model.TimetableEntry{{ID: 1}})
	_, hit = c.Get(ctx, KindTimetable, "p-1", &entries)
	assert.False(t, hit)
	assert.Empty(t, entries)
}

func TestListCache_HitAndInvalidate(t *testing.T) {
	_, rdb := newFakeRedis(t)
	c := NewListCache(rdb, time.Minute)
	ctx := context.Background()

	var items []model.Homework
	stamp, hit := c.Get(ctx, KindHomework, "p-1", &items)
	require.False(t, hit)
	assert.Equal(t, unversioned, stamp)

	c.Set(ctx, KindHomework, "p-1", stamp, []model.Homework{{ID: 1, Title: "Math HW"}})
	again, hit := c.Get(ctx, KindHomework, "p-1", &items)
	require.True(t, hit)
	assert.Equal(t, stamp, again)
	require.Len(t, items, 1)
	assert.Equal(t, "Math HW", items[0].Title)

	var other []model.Homework
	_, hit = c.Get(ctx, KindHomework, "p-2", &other)
	assert.False(t, hit, "lists are per owner")

	c.Invalidate(ctx, KindHomework, "p-1")
	items = nil
	bumped, hit := c.Get(ctx, KindHomework, "p-1", &items)
	assert.False(t, hit)
	assert.NotEqual(t, stamp, bumped)
}

func TestListCache_WriteAfterInvalidateIsDropped(t *testing.T) {
	_, rdb := newFakeRedis(t)
	c := NewListCache(rdb, time.Minute)
	ctx := context.Background()

	// reader misses and queries the database
	var items []model.Homework
	stamp, hit := c.Get(ctx, KindHomework, "p-1", &items)
	require.False(t, hit)
	before := []model.Homework{{ID: 1, Title: "old"}}

	// a writer commits and invalidates before the reader stores its rows
	c.Invalidate(ctx, KindHomework, "p-1")
	c.Set(ctx, KindHomework, "p-1", stamp, before)

	fresh, hit := c.Get(ctx, KindHomework, "p-1", &items)
	assert.False(t, hit, "pre-write list must not be cached")

	after := []model.Homework{{ID: 1, Title: "old"}, {ID: 2, Title: "new"}}
	c.Set(ctx, KindHomework, "p-1", fresh, after)
	_, hit = c.Get(ctx, KindHomework, "p-1", &items)
	require.True(t, hit)
	assert.Len(t, items, 2)
}

func TestListCache_InvalidateDuringWriteAbortsTransaction(t *testing.T) {
	f, rdb := newFakeRedis(t)
	c := NewListCache(rdb, time.Minute)
	ctx := context.Background()

	var items []model.TimetableEntry
	stamp, _ := c.Get(ctx, KindTimetable, "p-1", &items)

	f.mu.Lock()
	f.beforeExec = func() {
		f.beforeExec = nil
		f.put(VersionKey(KindTimetable, "p-1"), "1")
	}
	f.mu.Unlock()
	c.Set(ctx, KindTimetable, "p-1", stamp, []model.TimetableEntry{{ID: 7}})

	_, ok := f.get(ListKey(KindTimetable, "p-1"))
	assert.False(t, ok)
	_, hit := c.Get(ctx, KindTimetable, "p-1", &items)
	assert.False(t, hit)
}

func TestListCache_CorruptedEntryIsDropped(t *testing.T) {
	f, rdb := newFakeRedis(t)
	c := NewListCache(rdb, time.Minute)
	ctx := context.Background()

	f.mu.Lock()
	f.put(ListKey(KindHomework, "p-1"), "{not json")
	f.mu.Unlock()

	var items []model.Homework
	_, hit := c.Get(ctx, KindHomework, "p-1", &items)
	assert.False(t, hit)
	_, ok := f.get(ListKey(KindHomework, "p-1"))
	assert.False(t, ok)
}
