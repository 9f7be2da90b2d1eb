package ttlcache

import (
	"context"
	"time"

	"github.com/redis/rueidis"
	"github.com/samber/mo"

	"github.com/nekomeowww/timedoption"
)

var _ TTLCache = (*RueidisTTLCache)(nil)

type RueidisTTLCache struct {
	rueidis rueidis.Client
	opts    *options
}

func NewRueidisTTLCache(client rueidis.Client, callOpts ...CallOption) *RueidisTTLCache {
	return &RueidisTTLCache{
		rueidis: client,
		opts:    newOptions(callOpts),
	}
}

func (c *RueidisTTLCache) entry(ctx context.Context, key string) (timedoption.Calendar[string], error) {
	getCmd := c.rueidis.B().
		Get().
		Key(c.opts.key(key)).
		Build()

	str, err := c.rueidis.Do(ctx, getCmd).ToString()
	if err != nil {
		if rueidis.IsRedisNil(err) {
			return timedoption.EmptyCalendar[string](), nil
		}

		return timedoption.EmptyCalendar[string](), err
	}

	return c.opts.decodeEntry(key, str)
}

func (c *RueidisTTLCache) Get(ctx context.Context, key string) (mo.Option[string], error) {
	entry, err := c.entry(ctx, key)
	if err != nil {
		return mo.None[string](), err
	}

	return entry.Option(), nil
}

func (c *RueidisTTLCache) Peek(ctx context.Context, key string) (timedoption.TimedValue[string], error) {
	entry, err := c.entry(ctx, key)
	if err != nil {
		return timedoption.Absent[string](), err
	}

	return entry.TimedValue(), nil
}

func (c *RueidisTTLCache) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	str, err := encodeEntry(value, ttl)
	if err != nil {
		return err
	}

	setCmd := c.rueidis.B().
		Set().
		Key(c.opts.key(key)).
		Value(str).
		ExSeconds(c.opts.storeForSeconds(ttl)).
		Build()

	err = c.rueidis.Do(ctx, setCmd).Error()
	if err != nil {
		return err
	}

	return nil
}

func (c *RueidisTTLCache) Delete(ctx context.Context, key string) error {
	delCmd := c.rueidis.B().
		Del().
		Key(c.opts.key(key)).
		Build()

	return c.rueidis.Do(ctx, delCmd).Error()
}
