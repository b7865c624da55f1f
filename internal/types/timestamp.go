package types

import (
	"fmt"
	"reflect"
	"time"
)

// Timestamp bounds, aligned with the protobuf well-known type: the
// range of representable instants is [0001-01-01, 10000-01-01) UTC.
var (
	minUnixTime = time.Date(1, time.January, 1, 0, 0, 0, 0, time.UTC).Unix()
	maxUnixTime = time.Date(9999, time.December, 31, 23, 59, 59, 999999999, time.UTC).Unix()
)

// Timestamp is the absolute instant value variant.
type Timestamp struct {
	t time.Time
}

// TimestampOf wraps a time.Time as a value, range-checking the instant.
func TimestampOf(t time.Time) Value {
	if t.Unix() < minUnixTime || t.Unix() > maxUnixTime {
		return RangeErr("timestamp out of range: %v", t)
	}
	return Timestamp{t: t}
}

// timestampOf wraps an instant already known to be in range.
func timestampOf(t time.Time) Timestamp {
	return Timestamp{t: t}
}

// parseTimestamp implements the timestamp(string) parser for RFC 3339
// input with explicit range errors.
func parseTimestamp(s string) Value {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return InvalidArgumentErr("invalid timestamp %q", s)
	}
	return TimestampOf(t)
}

// Type implements the Value interface.
func (t Timestamp) Type() *Type {
	return TimestampType
}

// Value implements the Value interface.
func (t Timestamp) Value() any {
	return t.t
}

// Time returns the backing instant.
func (t Timestamp) Time() time.Time {
	return t.t
}

// Equal compares instants on the absolute timeline.
func (t Timestamp) Equal(other Value) Value {
	o, ok := other.(Timestamp)
	if !ok {
		return propagateOrFalse(other)
	}
	return Bool(t.t.Equal(o.t))
}

// Add implements timestamp+duration.
func (t Timestamp) Add(other Value) Value {
	o, ok := other.(Duration)
	if !ok {
		return MaybeNoSuchOverload(other)
	}
	return TimestampOf(t.t.Add(o.dur))
}

// Subtract implements timestamp-duration and timestamp-timestamp.
func (t Timestamp) Subtract(other Value) Value {
	switch o := other.(type) {
	case Duration:
		return TimestampOf(t.t.Add(-o.dur))
	case Timestamp:
		d := t.t.Sub(o.t)
		return Duration{dur: d}
	}
	return MaybeNoSuchOverload(other)
}

// Compare orders timestamps by instant.
func (t Timestamp) Compare(other Value) Value {
	o, ok := other.(Timestamp)
	if !ok {
		return MaybeNoSuchOverload(other)
	}
	switch {
	case t.t.Before(o.t):
		return IntNegOne
	case t.t.After(o.t):
		return IntOne
	default:
		return IntZero
	}
}

// ConvertToType implements the Value interface.
func (t Timestamp) ConvertToType(target *Type) Value {
	switch target {
	case TimestampType:
		return t
	case IntType:
		// Unix epoch seconds.
		return Int(t.t.Unix())
	case StringType:
		return String(t.t.UTC().Format(time.RFC3339Nano))
	case TypeType:
		return TimestampType
	}
	return conversionErr(TimestampType, target)
}

// ConvertToNative implements the Value interface.
func (t Timestamp) ConvertToNative(typeDesc reflect.Type) (any, error) {
	if typeDesc == reflect.TypeOf(time.Time{}) {
		return t.t, nil
	}
	return nil, fmt.Errorf("type conversion error from 'timestamp' to '%v'", typeDesc)
}

func (t Timestamp) String() string {
	return t.t.UTC().Format(time.RFC3339Nano)
}
