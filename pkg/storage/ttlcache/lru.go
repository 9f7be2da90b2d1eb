package ttlcache

import (
	"context"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/samber/mo"

	"github.com/nekomeowww/timedoption"
)

var _ TTLCache = (*LRUTTLCache)(nil)

// LRUTTLCache is a size bounded in-memory cache. Capacity is the only eviction
// trigger; an expired entry stays until it is the least recently used one.
type LRUTTLCache struct {
	lru *lru.Cache[string, timedoption.Monotonic[string]]
}

func NewLRUTTLCache(capacity int) (*LRUTTLCache, error) {
	l, err := lru.New[string, timedoption.Monotonic[string]](capacity)
	if err != nil {
		return nil, err
	}

	return &LRUTTLCache{lru: l}, nil
}

func (c *LRUTTLCache) Get(_ context.Context, key string) (mo.Option[string], error) {
	entry, ok := c.lru.Get(key)
	if !ok {
		return mo.None[string](), nil
	}

	return entry.Option(), nil
}

// Peek does not update the recency of the entry.
func (c *LRUTTLCache) Peek(_ context.Context, key string) (timedoption.TimedValue[string], error) {
	entry, ok := c.lru.Peek(key)
	if !ok {
		return timedoption.Absent[string](), nil
	}

	return entry.TimedValue(), nil
}

func (c *LRUTTLCache) Set(_ context.Context, key string, value string, ttl time.Duration) error {
	c.lru.Add(key, timedoption.NewMonotonic(value, ttl))

	return nil
}

func (c *LRUTTLCache) Delete(_ context.Context, key string) error {
	c.lru.Remove(key)

	return nil
}

func (c *LRUTTLCache) Len() int {
	return c.lru.Len()
}
