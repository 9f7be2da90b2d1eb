package ttlcache

import (
	"encoding/json"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/nekomeowww/timedoption"
	"github.com/nekomeowww/timedoption/pkg/redis"
)

// Entries held outside the process are stamped by the calendar clock, so every
// reader re-derives validity from the encoded expiry.

func encodeEntry(value string, ttl time.Duration) (string, error) {
	data, err := json.Marshal(timedoption.NewCalendar(value, ttl))
	if err != nil {
		return "", err
	}

	return string(data), nil
}

func (o *options) decodeEntry(key string, raw string) (timedoption.Calendar[string], error) {
	var entry timedoption.Calendar[string]

	err := json.Unmarshal([]byte(raw), &entry)
	if err != nil {
		if o.logger != nil {
			o.logger.Warn("failed to decode ttl cache entry", zap.String("key", key), zap.Error(err))
		}

		return timedoption.EmptyCalendar[string](), fmt.Errorf("%w: %s: %w", ErrCorruptedEntry, key, err)
	}

	return entry, nil
}

func (o *options) key(key string) string {
	return redis.TTLCacheEntry2.Format(o.keyPrefix, key)
}

// storeFor is how long redis should hold an entry with the given ttl. Redis
// only needs to outlive the encoded expiry, it never decides validity.
func (o *options) storeFor(ttl time.Duration) time.Duration {
	if ttl > math.MaxInt64-o.expiredRetention {
		return math.MaxInt64
	}

	return max(max(ttl, 0)+o.expiredRetention, time.Second)
}

func (o *options) storeForSeconds(ttl time.Duration) int64 {
	return int64(math.Ceil(o.storeFor(ttl).Seconds()))
}
