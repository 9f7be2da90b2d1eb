package ratelimit

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/nekomeowww/xo/logger"
	"github.com/sourcegraph/conc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestAllow(t *testing.T) {
	logger, err := logger.NewLogger(logger.WithLevel(zapcore.DebugLevel), logger.WithAppName("timedoption"), logger.WithNamespace("nekomeowww"))
	require.NoError(t, err)

	l := NewLimiter(WithLogger(logger))

	for i := int64(1); i <= 3; i++ {
		counted, ok := l.Allow("key", 3, time.Hour)
		assert.True(t, ok)
		assert.Equal(t, i, counted)
	}

	counted, ok := l.Allow("key", 3, time.Hour)
	assert.False(t, ok)
	assert.Equal(t, int64(3), counted)
	assert.Equal(t, int64(0), l.Remaining("key", 3))

	counted, ok = l.Allow("other", 3, time.Hour)
	assert.True(t, ok)
	assert.Equal(t, int64(1), counted)
}

func TestAllowWindowExpires(t *testing.T) {
	l := NewLimiter()

	_, ok := l.Allow("key", 1, 20*time.Millisecond)
	require.True(t, ok)

	_, ok = l.Allow("key", 1, 20*time.Millisecond)
	require.False(t, ok)

	time.Sleep(40 * time.Millisecond)

	assert.Equal(t, int64(1), l.Remaining("key", 1))

	counted, ok := l.Allow("key", 1, 20*time.Millisecond)
	assert.True(t, ok)
	assert.Equal(t, int64(1), counted)
}

func TestAllowEdgeCases(t *testing.T) {
	l := NewLimiter()

	counted, ok := l.Allow("disabled", 0, 0)
	assert.True(t, ok)
	assert.Zero(t, counted)

	counted, ok = l.Allow("zero rate", 0, time.Hour)
	assert.False(t, ok)
	assert.Zero(t, counted)

	assert.Equal(t, int64(5), l.Remaining("unknown", 5))
}

func TestReset(t *testing.T) {
	l := NewLimiter()

	_, ok := l.Allow("key", 1, time.Hour)
	require.True(t, ok)

	_, ok = l.Allow("key", 1, time.Hour)
	require.False(t, ok)

	l.Reset("key")
	l.Reset("unknown")
	assert.Zero(t, l.Len())

	_, ok = l.Allow("key", 1, time.Hour)
	assert.True(t, ok)
	assert.Equal(t, 1, l.Len())
}

func TestTrackedKeysAreBounded(t *testing.T) {
	l := NewLimiter(WithMaxKeys(2))

	for _, chatID := range []string{"1", "2", "3", "4"} {
		_, ok := l.Allow(chatID, 1, time.Hour)
		require.True(t, ok)
	}

	assert.Equal(t, 2, l.Len())
	assert.Equal(t, int64(1), l.Remaining("1", 1))
	assert.Equal(t, int64(0), l.Remaining("4", 1))

	l = NewLimiter(WithMaxKeys(0))

	_, ok := l.Allow("1", 1, time.Hour)
	require.True(t, ok)
	_, ok = l.Allow("2", 1, time.Hour)
	require.True(t, ok)
	assert.Equal(t, 1, l.Len())
}

func TestAllowForCommand(t *testing.T) {
	l := NewLimiter()

	_, ok := l.AllowForCommand(42, "recap", 1, time.Hour)
	require.True(t, ok)

	_, ok = l.AllowForCommand(42, "recap", 1, time.Hour)
	assert.False(t, ok)

	_, ok = l.AllowForCommand(43, "recap", 1, time.Hour)
	assert.True(t, ok)

	assert.Equal(t, int64(0), l.Remaining("rate_limit/command:recap/group/telegram/42", 1))
}

func TestAllowConcurrent(t *testing.T) {
	l := NewLimiter()

	var allowed atomic.Int64
	var wg conc.WaitGroup

	for i := 0; i < 100; i++ {
		wg.Go(func() {
			if _, ok := l.Allow("key", 10, time.Hour); ok {
				allowed.Add(1)
			}
		})
	}

	wg.Wait()

	assert.Equal(t, int64(10), allowed.Load())
}
