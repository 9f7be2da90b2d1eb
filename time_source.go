package timedoption

import (
	"math"
	"time"
)

// TimeSource produces and compares points in time for a TimedOption.
//
// Now and Expired are called on the zero value of P, so implementations must not
// depend on receiver state for them. IsValid and IsExpired compare the receiver
// against a fresh clock reading and must be exact opposites.
type TimeSource[P any] interface {
	comparable

	// Now returns the current point in time.
	Now() P
	// Expired returns a point that is never valid, now or later.
	Expired() P
	// Add returns the point advanced by d, saturating instead of overflowing.
	Add(d time.Duration) P
	// IsValid reports whether the point is strictly after the current reading.
	IsValid() bool
	// IsExpired reports whether the point is at or before the current reading.
	IsExpired() bool
}

// epoch anchors Instant readings. time.Since uses the monotonic clock.
var epoch = time.Now()

// Instant is a reading of the process monotonic clock, in nanoseconds since the
// package was initialized. It is unaffected by wall clock adjustments and means
// nothing outside the current process.
type Instant int64

// InstantNow returns the current monotonic reading.
func InstantNow() Instant {
	return Instant(time.Since(epoch))
}

func (Instant) Now() Instant {
	return InstantNow()
}

// Expired returns Instant(0), which no later reading can precede.
func (Instant) Expired() Instant {
	return 0
}

func (i Instant) Add(d time.Duration) Instant {
	sum := i + Instant(d)

	switch {
	case d > 0 && sum < i:
		return math.MaxInt64
	case d < 0 && sum > i:
		return math.MinInt64
	default:
		return sum
	}
}

func (i Instant) IsValid() bool {
	return i > InstantNow()
}

func (i Instant) IsExpired() bool {
	return i <= InstantNow()
}

// Duration returns the offset of the reading from the package epoch.
func (i Instant) Duration() time.Duration {
	return time.Duration(i)
}

// MaxDateTime is the latest point a DateTime saturates to. It is the last
// instant RFC 3339 can express.
var MaxDateTime = DateTime{t: time.Date(9999, time.December, 31, 23, 59, 59, 999999999, time.UTC)}

// DateTime is a calendar point in time in UTC, suitable for expiries that must
// survive serialization or be read by humans.
type DateTime struct {
	t time.Time
}

// NewDateTime converts t to UTC, strips its monotonic reading and clamps it to
// the representable range.
func NewDateTime(t time.Time) DateTime {
	return clampDateTime(t.UTC().Round(0))
}

// DateTimeNow returns the current wall clock reading.
func DateTimeNow() DateTime {
	return DateTime{t: time.Now().UTC().Round(0)}
}

func (DateTime) Now() DateTime {
	return DateTimeNow()
}

// Expired returns the zero DateTime (January 1, year 1). A wall clock that
// steps backwards cannot make it valid again.
func (DateTime) Expired() DateTime {
	return DateTime{}
}

func (d DateTime) Add(dt time.Duration) DateTime {
	return clampDateTime(d.t.Add(dt))
}

func (d DateTime) IsValid() bool {
	return d.t.After(time.Now())
}

func (d DateTime) IsExpired() bool {
	return !time.Now().Before(d.t)
}

// Time returns the point as a UTC time.Time.
func (d DateTime) Time() time.Time {
	return d.t
}

func (d DateTime) String() string {
	return d.t.Format(time.RFC3339Nano)
}

func clampDateTime(t time.Time) DateTime {
	switch {
	case t.After(MaxDateTime.t):
		return MaxDateTime
	case t.Before(time.Time{}):
		return DateTime{}
	default:
		return DateTime{t: t}
	}
}
