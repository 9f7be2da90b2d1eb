package timedoption

import (
	"fmt"

	"github.com/samber/mo"
)

// Kind classifies the content of a TimedValue.
type Kind uint8

const (
	KindAbsent Kind = iota
	KindValid
	KindExpired
)

func (k Kind) String() string {
	switch k {
	case KindAbsent:
		return "absent"
	case KindValid:
		return "valid"
	case KindExpired:
		return "expired"
	}

	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// TimedValue is the result of inspecting a time-bounded value: Valid, Expired
// or Absent. The zero value is Absent.
type TimedValue[T any] struct {
	kind  Kind
	value T
}

// Valid wraps a value that is still within its ttl.
func Valid[T any](value T) TimedValue[T] {
	return TimedValue[T]{kind: KindValid, value: value}
}

// Expired wraps a value whose ttl has passed.
func Expired[T any](value T) TimedValue[T] {
	return TimedValue[T]{kind: KindExpired, value: value}
}

// Absent indicates there is no value at all.
func Absent[T any]() TimedValue[T] {
	return TimedValue[T]{}
}

func (v TimedValue[T]) Kind() Kind {
	return v.kind
}

func (v TimedValue[T]) IsValid() bool {
	switch v.kind {
	case KindValid:
		return true
	case KindExpired:
		return false
	case KindAbsent:
		return false
	}

	panic(unknownKind(v.kind))
}

func (v TimedValue[T]) IsExpired() bool {
	switch v.kind {
	case KindValid:
		return false
	case KindExpired:
		return true
	case KindAbsent:
		return false
	}

	panic(unknownKind(v.kind))
}

func (v TimedValue[T]) IsAbsent() bool {
	switch v.kind {
	case KindValid:
		return false
	case KindExpired:
		return false
	case KindAbsent:
		return true
	}

	panic(unknownKind(v.kind))
}

// IsNone is an alias of IsAbsent.
func (v TimedValue[T]) IsNone() bool {
	return v.IsAbsent()
}

// HasValue reports whether a payload is carried, valid or not.
func (v TimedValue[T]) HasValue() bool {
	switch v.kind {
	case KindValid:
		return true
	case KindExpired:
		return true
	case KindAbsent:
		return false
	}

	panic(unknownKind(v.kind))
}

// Get returns the payload and whether there is one, regardless of expiry.
func (v TimedValue[T]) Get() (T, bool) {
	if !v.HasValue() {
		var zero T
		return zero, false
	}

	return v.value, true
}

// Option returns the payload only when it is Valid.
func (v TimedValue[T]) Option() mo.Option[T] {
	if !v.IsValid() {
		return mo.None[T]()
	}

	return mo.Some(v.value)
}

func (v TimedValue[T]) String() string {
	if !v.HasValue() {
		return v.kind.String()
	}

	return fmt.Sprintf("%s(%v)", v.kind, v.value)
}

func unknownKind(k Kind) string {
	return fmt.Sprintf("timedoption: unknown kind %d", uint8(k))
}
