package types

import (
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"time"
)

// Duration is the signed duration value variant, backed by a Go
// time.Duration with nanosecond resolution.
type Duration struct {
	dur time.Duration
}

// DurationOf wraps a time.Duration as a value.
func DurationOf(d time.Duration) Duration {
	return Duration{dur: d}
}

// durationSyntax matches the input grammar of time.ParseDuration; a
// matching input that the Go parser rejects is out of range.
var durationSyntax = regexp.MustCompile(`^[-+]?((\d+(\.\d*)?|\.\d+)(ns|us|µs|μs|ms|s|m|h))+$`)

// parseDuration implements the duration(string) parser. Malformed
// input is an invalid_argument error; well-formed magnitudes beyond
// the 64-bit nanosecond range are range errors.
func parseDuration(s string) Value {
	d, err := time.ParseDuration(s)
	if err != nil {
		if durationSyntax.MatchString(s) {
			return RangeErr("duration out of range: %q", s)
		}
		return InvalidArgumentErr("invalid duration %q", s)
	}
	return Duration{dur: d}
}

// Type implements the Value interface.
func (d Duration) Type() *Type {
	return DurationType
}

// Value implements the Value interface.
func (d Duration) Value() any {
	return d.dur
}

// Equal implements the Value interface.
func (d Duration) Equal(other Value) Value {
	o, ok := other.(Duration)
	if !ok {
		return propagateOrFalse(other)
	}
	return Bool(d.dur == o.dur)
}

// Add implements duration+duration and duration+timestamp.
func (d Duration) Add(other Value) Value {
	switch o := other.(type) {
	case Duration:
		r, ok := addInt64Checked(int64(d.dur), int64(o.dur))
		if !ok {
			return OverflowErr()
		}
		return Duration{dur: time.Duration(r)}
	case Timestamp:
		return o.Add(d)
	}
	return MaybeNoSuchOverload(other)
}

// Subtract implements duration-duration.
func (d Duration) Subtract(other Value) Value {
	o, ok := other.(Duration)
	if !ok {
		return MaybeNoSuchOverload(other)
	}
	r, sok := subtractInt64Checked(int64(d.dur), int64(o.dur))
	if !sok {
		return OverflowErr()
	}
	return Duration{dur: time.Duration(r)}
}

// Negate implements unary minus on durations.
func (d Duration) Negate() Value {
	r, ok := negateInt64Checked(int64(d.dur))
	if !ok {
		return OverflowErr()
	}
	return Duration{dur: time.Duration(r)}
}

// Compare orders durations by signed length.
func (d Duration) Compare(other Value) Value {
	o, ok := other.(Duration)
	if !ok {
		return MaybeNoSuchOverload(other)
	}
	switch {
	case d.dur < o.dur:
		return IntNegOne
	case d.dur > o.dur:
		return IntOne
	default:
		return IntZero
	}
}

// ConvertToType implements the Value interface.
func (d Duration) ConvertToType(t *Type) Value {
	switch t {
	case DurationType:
		return d
	case IntType:
		// Total nanoseconds.
		return Int(d.dur)
	case StringType:
		return String(strconv.FormatFloat(d.dur.Seconds(), 'f', -1, 64) + "s")
	case TypeType:
		return DurationType
	}
	return conversionErr(DurationType, t)
}

// ConvertToNative implements the Value interface.
func (d Duration) ConvertToNative(typeDesc reflect.Type) (any, error) {
	if typeDesc == reflect.TypeOf(time.Duration(0)) {
		return d.dur, nil
	}
	if typeDesc.Kind() == reflect.Int64 {
		return int64(d.dur), nil
	}
	return nil, fmt.Errorf("type conversion error from 'duration' to '%v'", typeDesc)
}

func (d Duration) String() string {
	return d.dur.String()
}
