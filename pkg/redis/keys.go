package redis

import "fmt"

// Key key.
type Key string

// Format format.
func (k Key) Format(params ...interface{}) string {
	return fmt.Sprintf(string(k), params...)
}

// TTL cache keys.

const (
	// TTLCacheEntry2 is the key for one timed entry of a ttl cache.
	// params: key prefix, entry key
	TTLCacheEntry2 Key = "%s/ttlcache/entry/%s" // String (JSON encoded timedoption.Calendar[string])
)

// Rate limits.

const (
	// CommandRateLimitWindow3 is the key for the counting window of a command.
	// params: command, platform, chat id
	CommandRateLimitWindow3 Key = "rate_limit/command:%s/group/%s/%s"
)
