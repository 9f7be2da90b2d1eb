package timedoption

import (
	"time"

	"github.com/samber/mo"
)

// Monotonic is a TimedOption stamped by the process monotonic clock. Use it for
// in-process timeouts.
type Monotonic[T any] = TimedOption[T, Instant]

// Calendar is a TimedOption stamped by the UTC wall clock. Use it when the
// expiry has to be serialized or read by a human.
type Calendar[T any] = TimedOption[T, DateTime]

func NewMonotonic[T any](value T, ttl time.Duration) Monotonic[T] {
	return New[T, Instant](value, ttl)
}

func EmptyMonotonic[T any]() Monotonic[T] {
	return Empty[T, Instant]()
}

func NewCalendar[T any](value T, ttl time.Duration) Calendar[T] {
	return New[T, DateTime](value, ttl)
}

func EmptyCalendar[T any]() Calendar[T] {
	return Empty[T, DateTime]()
}

// ToOption drops the expiry of o, keeping the value only if it is still valid.
func ToOption[T any, P TimeSource[P]](o TimedOption[T, P]) mo.Option[T] {
	return o.Option()
}

// ToTimedValue classifies o as Valid, Expired or Absent.
func ToTimedValue[T any, P TimeSource[P]](o TimedOption[T, P]) TimedValue[T] {
	return o.TimedValue()
}

// AsRef converts *TimedOption[T, P] into TimedOption[*T, P] pointing at the held
// value, with the same expiry.
func AsRef[T any, P TimeSource[P]](o *TimedOption[T, P]) TimedOption[*T, P] {
	ref := TimedOption[*T, P]{
		present: o.present,
		expiry:  o.expiry,
	}
	if o.present {
		ref.value = &o.value
	}

	return ref
}

// AsRefValue converts *TimedValue[T] into TimedValue[*T] pointing at the payload.
func AsRefValue[T any](v *TimedValue[T]) TimedValue[*T] {
	switch v.kind {
	case KindValid:
		return Valid(&v.value)
	case KindExpired:
		return Expired(&v.value)
	case KindAbsent:
		return Absent[*T]()
	}

	panic(unknownKind(v.kind))
}
