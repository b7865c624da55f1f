package types

import (
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

// String is the UTF-8 string value variant.
type String string

// Member functions dispatched through the Receiver trait.
var stringReceivers = map[string]func(String, Value) Value{
	"contains":   stringContains,
	"endsWith":   stringEndsWith,
	"startsWith": stringStartsWith,
	"matches":    stringMatch,
}

// Type implements the Value interface.
func (s String) Type() *Type {
	return StringType
}

// Value implements the Value interface.
func (s String) Value() any {
	return string(s)
}

// Equal implements the Value interface.
func (s String) Equal(other Value) Value {
	o, ok := other.(String)
	if !ok {
		return propagateOrFalse(other)
	}
	return Bool(s == o)
}

// Add implements string concatenation.
func (s String) Add(other Value) Value {
	o, ok := other.(String)
	if !ok {
		return MaybeNoSuchOverload(other)
	}
	return s + o
}

// Compare orders strings by code point.
func (s String) Compare(other Value) Value {
	o, ok := other.(String)
	if !ok {
		return MaybeNoSuchOverload(other)
	}
	return Int(strings.Compare(string(s), string(o)))
}

// Match tests the string against an RE2 pattern.
func (s String) Match(pattern Value) Value {
	p, ok := pattern.(String)
	if !ok {
		return MaybeNoSuchOverload(pattern)
	}
	matched, err := regexp.MatchString(string(p), string(s))
	if err != nil {
		return InvalidArgumentErr("invalid matches pattern: %v", err)
	}
	return Bool(matched)
}

// Receive dispatches member-style calls such as s.contains(sub).
func (s String) Receive(function string, overload string, args []Value) Value {
	if len(args) == 1 {
		if fn, found := stringReceivers[function]; found {
			return fn(s, args[0])
		}
	}
	return NoSuchFunctionOverloadErr(function)
}

// Size returns the number of code points, not bytes.
func (s String) Size() Value {
	return Int(utf8.RuneCountInString(string(s)))
}

// ConvertToType implements the Value interface, covering the string
// parsers for every primitive as well as duration and timestamp.
func (s String) ConvertToType(t *Type) Value {
	switch t {
	case StringType:
		return s
	case IntType:
		i, err := strconv.ParseInt(string(s), 10, 64)
		if err != nil {
			return RangeErr("cannot convert string %q to int", string(s))
		}
		return Int(i)
	case UintType:
		u, err := strconv.ParseUint(string(s), 10, 64)
		if err != nil {
			return RangeErr("cannot convert string %q to uint", string(s))
		}
		return Uint(u)
	case DoubleType:
		d, err := strconv.ParseFloat(string(s), 64)
		if err != nil {
			return RangeErr("cannot convert string %q to double", string(s))
		}
		return Double(d)
	case BoolType:
		b, err := strconv.ParseBool(string(s))
		if err != nil {
			return conversionErr(StringType, BoolType)
		}
		return Bool(b)
	case BytesType:
		return Bytes(s)
	case DurationType:
		return parseDuration(string(s))
	case TimestampType:
		return parseTimestamp(string(s))
	case TypeType:
		return StringType
	}
	return conversionErr(StringType, t)
}

// ConvertToNative implements the Value interface.
func (s String) ConvertToNative(typeDesc reflect.Type) (any, error) {
	switch typeDesc.Kind() {
	case reflect.String:
		return string(s), nil
	case reflect.Slice:
		if typeDesc.Elem().Kind() == reflect.Uint8 {
			return []byte(s), nil
		}
	}
	return nil, fmt.Errorf("type conversion error from 'string' to '%v'", typeDesc)
}

func (s String) String() string {
	return string(s)
}

func stringContains(s String, sub Value) Value {
	o, ok := sub.(String)
	if !ok {
		return MaybeNoSuchOverload(sub)
	}
	return Bool(strings.Contains(string(s), string(o)))
}

func stringEndsWith(s String, suf Value) Value {
	o, ok := suf.(String)
	if !ok {
		return MaybeNoSuchOverload(suf)
	}
	return Bool(strings.HasSuffix(string(s), string(o)))
}

func stringStartsWith(s String, pre Value) Value {
	o, ok := pre.(String)
	if !ok {
		return MaybeNoSuchOverload(pre)
	}
	return Bool(strings.HasPrefix(string(s), string(o)))
}

func stringMatch(s String, pattern Value) Value {
	return s.Match(pattern)
}
