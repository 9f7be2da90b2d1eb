// Package ratelimit counts hits per key inside fixed windows. Each window is a
// timedoption.Monotonic counter; an expired window is replaced on the next hit
// rather than swept. Windows live in a bounded LRU, so the least recently hit
// key loses its count once the limit of tracked keys is reached.
package ratelimit

import (
	"strconv"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/nekomeowww/xo/logger"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/nekomeowww/timedoption"
	"github.com/nekomeowww/timedoption/pkg/redis"
)

type Limiter struct {
	mutex sync.Mutex

	logger  *logger.Logger
	maxKeys int
	windows *lru.Cache[string, *timedoption.Monotonic[int64]]
}

// DefaultMaxKeys is how many keys a Limiter tracks unless WithMaxKeys says
// otherwise.
const DefaultMaxKeys = 10000

type CallOption func(*Limiter)

func WithLogger(logger *logger.Logger) CallOption {
	return func(l *Limiter) {
		l.logger = logger
	}
}

// WithMaxKeys bounds the number of tracked keys. Values below 1 are treated
// as 1.
func WithMaxKeys(maxKeys int) CallOption {
	return func(l *Limiter) {
		l.maxKeys = max(maxKeys, 1)
	}
}

func NewLimiter(callOpts ...CallOption) *Limiter {
	l := &Limiter{
		maxKeys: DefaultMaxKeys,
	}

	for _, callOpt := range callOpts {
		callOpt(l)
	}

	l.windows = lo.Must(lru.New[string, *timedoption.Monotonic[int64]](l.maxKeys))

	return l
}

// Allow counts one hit for key and reports the count within the current window
// and whether the hit is within rate. A non-positive perDuration disables the
// limit.
func (l *Limiter) Allow(key string, rate int64, perDuration time.Duration) (int64, bool) {
	if perDuration <= 0 {
		return 0, true
	}

	l.mutex.Lock()
	defer l.mutex.Unlock()

	window, ok := l.windows.Get(key)
	if !ok {
		window = new(timedoption.Monotonic[int64])
		l.windows.Add(key, window)
	}

	counted, ok := window.AsOption().Get()
	if !ok {
		if rate < 1 {
			return 0, false
		}

		*window = timedoption.NewMonotonic(int64(1), perDuration)

		return 1, true
	}
	if *counted >= rate {
		l.debug("rate limited", key, *counted)

		return *counted, false
	}

	*counted++

	return *counted, true
}

// AllowForCommand limits a bot command per chat.
func (l *Limiter) AllowForCommand(chatID int64, command string, rate int64, perDuration time.Duration) (int64, bool) {
	// TODO: platform is fixed to telegram until a second platform is integrated
	return l.Allow(redis.CommandRateLimitWindow3.Format(command, "telegram", strconv.FormatInt(chatID, 10)), rate, perDuration)
}

// Reset forgets the current window of key.
func (l *Limiter) Reset(key string) {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	l.windows.Remove(key)
}

// Len returns the number of tracked keys.
func (l *Limiter) Len() int {
	return l.windows.Len()
}

// Remaining returns how many hits key has left in its current window.
func (l *Limiter) Remaining(key string, rate int64) int64 {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	window, ok := l.windows.Peek(key)
	if !ok {
		return rate
	}

	return max(rate-window.OrEmpty(), 0)
}

func (l *Limiter) debug(msg string, key string, counted int64) {
	if l.logger == nil {
		return
	}

	l.logger.Debug(msg, zap.String("key", key), zap.Int64("counted", counted))
}
