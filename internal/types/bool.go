package types

import (
	"fmt"
	"reflect"
	"strconv"
)

// Bool is the boolean value variant.
type Bool bool

// Canonical boolean values.
const (
	True  = Bool(true)
	False = Bool(false)
)

// Type implements the Value interface.
func (b Bool) Type() *Type {
	return BoolType
}

// Value implements the Value interface.
func (b Bool) Value() any {
	return bool(b)
}

// Equal implements the Value interface.
func (b Bool) Equal(other Value) Value {
	o, ok := other.(Bool)
	if !ok {
		return propagateOrFalse(other)
	}
	return Bool(b == o)
}

// Compare orders false before true.
func (b Bool) Compare(other Value) Value {
	o, ok := other.(Bool)
	if !ok {
		return MaybeNoSuchOverload(other)
	}
	if b == o {
		return IntZero
	}
	if !b {
		return IntNegOne
	}
	return IntOne
}

// Negate implements logical '!'.
func (b Bool) Negate() Value {
	return !b
}

// ConvertToType implements the Value interface.
func (b Bool) ConvertToType(t *Type) Value {
	switch t {
	case BoolType:
		return b
	case StringType:
		return String(strconv.FormatBool(bool(b)))
	case TypeType:
		return BoolType
	}
	return conversionErr(BoolType, t)
}

// ConvertToNative implements the Value interface.
func (b Bool) ConvertToNative(typeDesc reflect.Type) (any, error) {
	if typeDesc.Kind() == reflect.Bool {
		return bool(b), nil
	}
	return nil, fmt.Errorf("type conversion error from 'bool' to '%v'", typeDesc)
}

func (b Bool) String() string {
	return strconv.FormatBool(bool(b))
}
