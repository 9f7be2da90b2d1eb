package timedoption

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestInstant(t *testing.T) {
	now := InstantNow()

	assert.True(t, now.Add(time.Hour).IsValid())
	assert.False(t, now.Add(time.Hour).IsExpired())
	assert.True(t, now.IsExpired())
	assert.False(t, now.IsValid())

	var zero Instant
	assert.Equal(t, zero, zero.Expired())
	assert.True(t, zero.Expired().IsExpired())
	assert.GreaterOrEqual(t, zero.Now(), now)
	assert.Equal(t, time.Hour, now.Add(time.Hour).Duration()-now.Duration())
}

func TestInstantSaturates(t *testing.T) {
	assert.Equal(t, Instant(math.MaxInt64), Instant(math.MaxInt64-1).Add(time.Hour))
	assert.Equal(t, Instant(math.MaxInt64), InstantNow().Add(time.Duration(math.MaxInt64)))
	assert.Equal(t, Instant(math.MinInt64), Instant(math.MinInt64+1).Add(-time.Hour))
	assert.Equal(t, Instant(10), Instant(5).Add(5))

	o := NewMonotonic("forever", time.Duration(math.MaxInt64))
	assert.True(t, o.IsSome())
	assert.Equal(t, Instant(math.MaxInt64), o.Expiry())
}

func TestDateTime(t *testing.T) {
	now := DateTimeNow()

	assert.True(t, now.Add(time.Hour).IsValid())
	assert.False(t, now.Add(time.Hour).IsExpired())
	assert.True(t, now.IsExpired())
	assert.False(t, now.IsValid())

	var zero DateTime
	assert.Equal(t, zero, zero.Expired())
	assert.True(t, zero.Expired().IsExpired())
	assert.Equal(t, time.UTC, now.Time().Location())
}

func TestDateTimeSaturates(t *testing.T) {
	assert.Equal(t, MaxDateTime, MaxDateTime.Add(time.Nanosecond))
	assert.Equal(t, MaxDateTime, MaxDateTime.Add(time.Duration(math.MaxInt64)))
	assert.Equal(t, DateTime{}, DateTime{}.Add(-time.Nanosecond))
	assert.Equal(t, MaxDateTime, NewDateTime(time.Date(20000, time.January, 1, 0, 0, 0, 0, time.UTC)))

	o := NewCalendar("forever", time.Duration(math.MaxInt64))
	assert.True(t, o.IsSome())
}

func TestNewDateTime(t *testing.T) {
	loc := time.FixedZone("UTC+8", 8*60*60)
	local := time.Date(2024, time.January, 1, 8, 0, 0, 0, loc)

	d := NewDateTime(local)

	assert.Equal(t, time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC), d.Time())
	assert.Equal(t, "2024-01-01T00:00:00Z", d.String())
	assert.Equal(t, d, NewDateTime(d.Time()))
}
