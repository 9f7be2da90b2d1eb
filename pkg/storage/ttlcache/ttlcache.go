package ttlcache

import (
	"context"
	"errors"
	"time"

	"github.com/nekomeowww/xo/logger"
	"github.com/samber/mo"

	"github.com/nekomeowww/timedoption"
)

var ErrCorruptedEntry = errors.New("ttlcache: corrupted entry")

// TTLCache stores strings that expire after a ttl. Expiry is evaluated when an
// entry is read; expired entries are not swept.
type TTLCache interface {
	// Get returns the value while it is valid.
	Get(context.Context, string) (mo.Option[string], error)
	// Peek classifies the entry, surfacing expired values the backend still
	// holds.
	Peek(context.Context, string) (timedoption.TimedValue[string], error)
	// Set stores the value for ttl. A non-positive ttl stores an expired entry.
	Set(context.Context, string, string, time.Duration) error
	Delete(context.Context, string) error
}

type options struct {
	logger           *logger.Logger
	keyPrefix        string
	expiredRetention time.Duration
}

type CallOption func(*options)

// WithLogger sets the logger used to report corrupted entries.
func WithLogger(logger *logger.Logger) CallOption {
	return func(o *options) {
		o.logger = logger
	}
}

// WithKeyPrefix namespaces redis keys. Defaults to "timedoption".
func WithKeyPrefix(prefix string) CallOption {
	return func(o *options) {
		o.keyPrefix = prefix
	}
}

// WithExpiredRetention keeps entries in redis for d after they expire so Peek
// can still report them as expired. Defaults to one minute, negative values
// are treated as zero.
func WithExpiredRetention(d time.Duration) CallOption {
	return func(o *options) {
		o.expiredRetention = max(d, 0)
	}
}

func newOptions(callOpts []CallOption) *options {
	opts := &options{
		keyPrefix:        "timedoption",
		expiredRetention: time.Minute,
	}

	for _, callOpt := range callOpts {
		callOpt(opts)
	}

	return opts
}
