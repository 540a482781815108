package client

import (
	"strings"
	"sync"
)

// Key names one cached view.
type Key string

const (
	KeyHomework     Key = "homework"
	KeyTimetable    Key = "timetable"
	KeyProfile      Key = "currentUserProfile"
	KeyQuizProgress Key = "quizProgress"
	KeyRole         Key = "callerRole"
)

// Sub derives the key of a narrower view of the same kind, such as one
// weekday of the timetable. Invalidating the parent drops every sub view.
func (k Key) Sub(part string) Key {
	return k + ":" + Key(part)
}

func (k Key) covers(other Key) bool {
	return other == k || strings.HasPrefix(string(other), string(k)+":")
}

type cacheEntry struct {
	value any
	set   bool
	gen   uint64
}

// Cache holds the client's copies of list and get results. Create one per
// session and hand it to the Client.
type Cache struct {
	mu      sync.Mutex
	entries map[Key]*cacheEntry
}

func NewCache() *Cache {
	return &Cache{entries: make(map[Key]*cacheEntry)}
}

func (c *Cache) entry(key Key) *cacheEntry {
	e, ok := c.entries[key]
	if !ok {
		e = &cacheEntry{}
		c.entries[key] = e
	}
	return e
}

func (c *Cache) Get(key Key) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok || !e.set {
		return nil, false
	}
	return e.value, true
}

// Generation is captured before a fetch and handed back to Store.
func (c *Cache) Generation(key Key) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.entry(key).gen
}

// Store saves a fetched value unless the key was invalidated after gen was
// read, so a fetch that raced a write never repopulates a stale view.
func (c *Cache) Store(key Key, gen uint64, value any) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	e := c.entry(key)
	if e.gen != gen {
		return false
	}
	e.value = value
	e.set = true
	return true
}

// Invalidate drops key and its sub views.
func (c *Cache) Invalidate(key Key) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k, e := range c.entries {
		if key.covers(k) {
			e.value = nil
			e.set = false
			e.gen++
		}
	}
}

func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, e := range c.entries {
		e.value = nil
		e.set = false
		e.gen++
	}
}

func cached[T any](c *Cache, key Key) (T, bool) {
	v, ok := c.Get(key)
	if !ok {
		var zero T
		return zero, false
	}
	t, ok := v.(T)
	return t, ok
}
