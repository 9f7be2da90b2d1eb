// Package timedoption provides TimedOption, an optional value that carries an
// expiry point, and TimedValue, the three-state result of reading one.
//
// Expiry is lazy: nothing runs in the background, every read compares the stored
// expiry against the clock of the chosen TimeSource. An expired payload stays in
// memory until it is taken, cleared or the container is dropped.
//
// A TimedOption is a plain value with no internal locking. Callers sharing one
// between goroutines must guard it themselves.
package timedoption

import (
	"time"

	"github.com/samber/mo"
)

// TimedOption holds at most one value of type T together with an expiry point
// produced by P. The zero value is empty and expired.
type TimedOption[T any, P TimeSource[P]] struct {
	value   T
	present bool
	expiry  P
}

// New returns a TimedOption holding value until ttl has elapsed. A zero or
// negative ttl yields a container that is expired on its first read.
func New[T any, P TimeSource[P]](value T, ttl time.Duration) TimedOption[T, P] {
	var source P

	return TimedOption[T, P]{
		value:   value,
		present: true,
		expiry:  source.Now().Add(ttl),
	}
}

// Empty returns a TimedOption with no value and an expired expiry.
func Empty[T any, P TimeSource[P]]() TimedOption[T, P] {
	var source P

	return TimedOption[T, P]{
		expiry: source.Expired(),
	}
}

// IsSome reports whether the option holds a value that has not expired.
func (o TimedOption[T, P]) IsSome() bool {
	return o.present && o.expiry.IsValid()
}

// IsNone reports whether the option holds no value or has expired.
func (o TimedOption[T, P]) IsNone() bool {
	return !o.present || o.expiry.IsExpired()
}

// Expiry returns the recorded expiry point.
func (o TimedOption[T, P]) Expiry() P {
	return o.expiry
}

// Option collapses o into a plain option. Expired values become None.
func (o TimedOption[T, P]) Option() mo.Option[T] {
	if !o.present || !o.expiry.IsValid() {
		return mo.None[T]()
	}

	return mo.Some(o.value)
}

// AsOption is Option over a pointer to the held value.
func (o *TimedOption[T, P]) AsOption() mo.Option[*T] {
	if !o.present || !o.expiry.IsValid() {
		return mo.None[*T]()
	}

	return mo.Some(&o.value)
}

// TimedValue classifies o without dropping an expired payload.
func (o TimedOption[T, P]) TimedValue() TimedValue[T] {
	return classify(o.value, o.present, o.expiry)
}

// AsTimedValue is TimedValue over a pointer to the held value.
func (o *TimedOption[T, P]) AsTimedValue() TimedValue[*T] {
	return classify(&o.value, o.present, o.expiry)
}

// Get returns the value and true while it is valid.
func (o TimedOption[T, P]) Get() (T, bool) {
	return o.Option().Get()
}

// OrElse returns the value while it is valid, fallback otherwise.
func (o TimedOption[T, P]) OrElse(fallback T) T {
	return o.Option().OrElse(fallback)
}

// OrEmpty returns the value while it is valid, the zero value of T otherwise.
func (o TimedOption[T, P]) OrEmpty() T {
	return o.Option().OrEmpty()
}

// Expire forces the expiry into the past. The value is kept but no longer
// reachable through any validity-gated read.
func (o *TimedOption[T, P]) Expire() {
	var source P
	o.expiry = source.Expired()
}

// Clear drops the value and leaves the expiry untouched.
func (o *TimedOption[T, P]) Clear() {
	var zero T
	o.value = zero
	o.present = false
}

// Take removes the value, returning it only if it had not expired.
func (o *TimedOption[T, P]) Take() mo.Option[T] {
	return o.TakeTimedValue().Option()
}

// TakeTimedValue removes the value and reports whether it was valid or expired.
// The option is left empty with an expired expiry.
func (o *TimedOption[T, P]) TakeTimedValue() TimedValue[T] {
	taken := classify(o.value, o.present, o.expiry)

	var source P
	o.Clear()
	o.expiry = source.Expired()

	return taken
}

func classify[T any, P TimeSource[P]](value T, present bool, expiry P) TimedValue[T] {
	if !present {
		return Absent[T]()
	}
	if expiry.IsValid() {
		return Valid(value)
	}

	return Expired(value)
}
