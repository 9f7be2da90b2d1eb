package ttlcache

import (
	"context"
	"errors"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/samber/mo"

	"github.com/nekomeowww/timedoption"
)

var _ TTLCache = (*GoRedisTTLCache)(nil)

// GoRedisTTLCache is RueidisTTLCache for callers already holding a go-redis
// client. Both share the same key layout and entry encoding.
type GoRedisTTLCache struct {
	client goredis.UniversalClient
	opts   *options
}

func NewGoRedisTTLCache(client goredis.UniversalClient, callOpts ...CallOption) *GoRedisTTLCache {
	return &GoRedisTTLCache{
		client: client,
		opts:   newOptions(callOpts),
	}
}

func (c *GoRedisTTLCache) entry(ctx context.Context, key string) (timedoption.Calendar[string], error) {
	str, err := c.client.Get(ctx, c.opts.key(key)).Result()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return timedoption.EmptyCalendar[string](), nil
		}

		return timedoption.EmptyCalendar[string](), err
	}

	return c.opts.decodeEntry(key, str)
}

func (c *GoRedisTTLCache) Get(ctx context.Context, key string) (mo.Option[string], error) {
	entry, err := c.entry(ctx, key)
	if err != nil {
		return mo.None[string](), err
	}

	return entry.Option(), nil
}

func (c *GoRedisTTLCache) Peek(ctx context.Context, key string) (timedoption.TimedValue[string], error) {
	entry, err := c.entry(ctx, key)
	if err != nil {
		return timedoption.Absent[string](), err
	}

	return entry.TimedValue(), nil
}

func (c *GoRedisTTLCache) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	str, err := encodeEntry(value, ttl)
	if err != nil {
		return err
	}

	return c.client.Set(ctx, c.opts.key(key), str, c.opts.storeFor(ttl)).Err()
}

func (c *GoRedisTTLCache) Delete(ctx context.Context, key string) error {
	return c.client.Del(ctx, c.opts.key(key)).Err()
}
