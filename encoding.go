package timedoption

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

var (
	ErrUnknownState    = errors.New("timedoption: unknown state")
	ErrMismatchedValue = errors.New("timedoption: value does not match state")
)

var (
	_ json.Marshaler   = TimedOption[string, DateTime]{}
	_ json.Unmarshaler = (*TimedOption[string, DateTime])(nil)
	_ yaml.Marshaler   = TimedOption[string, DateTime]{}
	_ yaml.Unmarshaler = (*TimedOption[string, DateTime])(nil)
	_ json.Marshaler   = TimedValue[string]{}
	_ json.Unmarshaler = (*TimedValue[string])(nil)
	_ json.Marshaler   = DateTime{}
	_ json.Unmarshaler = (*DateTime)(nil)
)

// timedOptionWire is the encoded shape of a TimedOption:
//
//	{"present": <bool>, "value": <T or null>, "expiry": <P>}
//
// Presence is explicit since a payload may itself encode as null. Validity is
// not part of it and is recomputed after decoding.
type timedOptionWire[T any, P any] struct {
	Present bool `json:"present" yaml:"present"`
	Value   *T   `json:"value" yaml:"value"`
	Expiry  P    `json:"expiry" yaml:"expiry"`
}

func (o TimedOption[T, P]) wire() timedOptionWire[T, P] {
	w := timedOptionWire[T, P]{Present: o.present, Expiry: o.expiry}
	if o.present {
		w.Value = &o.value
	}

	return w
}

func (o *TimedOption[T, P]) fromWire(w timedOptionWire[T, P], hasValue bool) error {
	switch {
	case w.Present && !hasValue:
		return fmt.Errorf("%w: present without value", ErrMismatchedValue)
	case !w.Present && w.Value != nil:
		return fmt.Errorf("%w: value without presence", ErrMismatchedValue)
	}

	var value T
	if w.Value != nil {
		value = *w.Value
	}

	*o = TimedOption[T, P]{value: value, present: w.Present, expiry: w.Expiry}

	return nil
}

func (o TimedOption[T, P]) MarshalJSON() ([]byte, error) {
	return json.Marshal(o.wire())
}

func (o *TimedOption[T, P]) UnmarshalJSON(data []byte) error {
	var w timedOptionWire[T, P]

	err := json.Unmarshal(data, &w)
	if err != nil {
		return err
	}

	hasValue, err := jsonHasKey(data, "value")
	if err != nil {
		return err
	}

	return o.fromWire(w, hasValue)
}

func (o TimedOption[T, P]) MarshalYAML() (any, error) {
	return o.wire(), nil
}

func (o *TimedOption[T, P]) UnmarshalYAML(value *yaml.Node) error {
	var w timedOptionWire[T, P]

	err := value.Decode(&w)
	if err != nil {
		return err
	}

	return o.fromWire(w, yamlHasKey(value, "value"))
}

// timedValueWire is the encoded shape of a TimedValue:
//
//	{"state": "valid" | "expired" | "absent", "value": <T, omitted when absent>}
type timedValueWire[T any] struct {
	State string `json:"state" yaml:"state"`
	Value *T     `json:"value,omitempty" yaml:"value,omitempty"`
}

func (v TimedValue[T]) wire() timedValueWire[T] {
	w := timedValueWire[T]{State: v.kind.String()}
	if v.HasValue() {
		w.Value = &v.value
	}

	return w
}

func (v *TimedValue[T]) fromWire(w timedValueWire[T], hasValue bool) error {
	kind, err := parseKind(w.State)
	if err != nil {
		return err
	}

	switch {
	case kind == KindAbsent && w.Value != nil:
		return fmt.Errorf("%w: %s with value", ErrMismatchedValue, kind)
	case kind != KindAbsent && !hasValue:
		return fmt.Errorf("%w: %s without value", ErrMismatchedValue, kind)
	}

	var value T
	if w.Value != nil {
		value = *w.Value
	}

	*v = TimedValue[T]{kind: kind, value: value}

	return nil
}

func (v TimedValue[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.wire())
}

func (v *TimedValue[T]) UnmarshalJSON(data []byte) error {
	var w timedValueWire[T]

	err := json.Unmarshal(data, &w)
	if err != nil {
		return err
	}

	hasValue, err := jsonHasKey(data, "value")
	if err != nil {
		return err
	}

	return v.fromWire(w, hasValue)
}

func (v TimedValue[T]) MarshalYAML() (any, error) {
	return v.wire(), nil
}

func (v *TimedValue[T]) UnmarshalYAML(value *yaml.Node) error {
	var w timedValueWire[T]

	err := value.Decode(&w)
	if err != nil {
		return err
	}

	return v.fromWire(w, yamlHasKey(value, "value"))
}

// jsonHasKey reports whether the object in data carries key, null or not.
func jsonHasKey(data []byte, key string) (bool, error) {
	var fields map[string]json.RawMessage

	err := json.Unmarshal(data, &fields)
	if err != nil {
		return false, err
	}

	_, ok := fields[key]

	return ok, nil
}

func yamlHasKey(node *yaml.Node, key string) bool {
	if node.Kind != yaml.MappingNode {
		return false
	}

	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == key {
			return true
		}
	}

	return false
}

func parseKind(state string) (Kind, error) {
	switch state {
	case KindValid.String():
		return KindValid, nil
	case KindExpired.String():
		return KindExpired, nil
	case KindAbsent.String():
		return KindAbsent, nil
	default:
		return KindAbsent, fmt.Errorf("%w: %q", ErrUnknownState, state)
	}
}

// DateTime encodes as an RFC 3339 timestamp with nanoseconds.

func (d DateTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.t)
}

func (d *DateTime) UnmarshalJSON(data []byte) error {
	var t time.Time

	err := json.Unmarshal(data, &t)
	if err != nil {
		return fmt.Errorf("failed to decode expiry: %w", err)
	}

	*d = NewDateTime(t)

	return nil
}

func (d DateTime) MarshalYAML() (any, error) {
	return d.String(), nil
}

func (d *DateTime) UnmarshalYAML(value *yaml.Node) error {
	var s string

	err := value.Decode(&s)
	if err != nil {
		return err
	}

	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return fmt.Errorf("failed to decode expiry: %w", err)
	}

	*d = NewDateTime(t)

	return nil
}
