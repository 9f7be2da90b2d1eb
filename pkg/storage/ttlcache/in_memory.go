package ttlcache

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/samber/mo"

	"github.com/nekomeowww/timedoption"
)

var _ TTLCache = (*InMemoryTTLCache)(nil)

// InMemoryTTLCache keeps monotonic entries in a go-cache instance without a
// janitor. go-cache only provides the concurrent map, expiry is decided by the
// entries themselves.
type InMemoryTTLCache struct {
	cache *cache.Cache
}

func NewInMemoryTTLCache() *InMemoryTTLCache {
	return &InMemoryTTLCache{
		cache: cache.New(cache.NoExpiration, 0),
	}
}

func (c *InMemoryTTLCache) entry(key string) timedoption.Monotonic[string] {
	if value, found := c.cache.Get(key); found {
		return value.(timedoption.Monotonic[string])
	}

	return timedoption.EmptyMonotonic[string]()
}

func (c *InMemoryTTLCache) Get(_ context.Context, key string) (mo.Option[string], error) {
	return c.entry(key).Option(), nil
}

func (c *InMemoryTTLCache) Peek(_ context.Context, key string) (timedoption.TimedValue[string], error) {
	return c.entry(key).TimedValue(), nil
}

func (c *InMemoryTTLCache) Set(_ context.Context, key string, value string, ttl time.Duration) error {
	c.cache.Set(key, timedoption.NewMonotonic(value, ttl), cache.NoExpiration)

	return nil
}

func (c *InMemoryTTLCache) Delete(_ context.Context, key string) error {
	c.cache.Delete(key)

	return nil
}

// Len returns the number of held entries, expired ones included.
func (c *InMemoryTTLCache) Len() int {
	return c.cache.ItemCount()
}
