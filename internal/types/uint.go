package types

import (
	"fmt"
	"reflect"
	"strconv"
)

// Uint is the unsigned 64-bit integer value variant, distinct from Int
// in every operator and comparison.
type Uint uint64

// UintZero is the zero uint value.
const UintZero = Uint(0)

// Type implements the Value interface.
func (u Uint) Type() *Type {
	return UintType
}

// Value implements the Value interface.
func (u Uint) Value() any {
	return uint64(u)
}

// Equal implements the Value interface.
func (u Uint) Equal(other Value) Value {
	o, ok := other.(Uint)
	if !ok {
		return propagateOrFalse(other)
	}
	return Bool(u == o)
}

// Add implements checked unsigned addition.
func (u Uint) Add(other Value) Value {
	o, ok := other.(Uint)
	if !ok {
		return MaybeNoSuchOverload(other)
	}
	r, ok := addUint64Checked(uint64(u), uint64(o))
	if !ok {
		return OverflowErr()
	}
	return Uint(r)
}

// Subtract implements checked unsigned subtraction; a borrow beneath
// zero overflows.
func (u Uint) Subtract(other Value) Value {
	o, ok := other.(Uint)
	if !ok {
		return MaybeNoSuchOverload(other)
	}
	r, ok := subtractUint64Checked(uint64(u), uint64(o))
	if !ok {
		return OverflowErr()
	}
	return Uint(r)
}

// Multiply implements checked unsigned multiplication.
func (u Uint) Multiply(other Value) Value {
	o, ok := other.(Uint)
	if !ok {
		return MaybeNoSuchOverload(other)
	}
	r, ok := multiplyUint64Checked(uint64(u), uint64(o))
	if !ok {
		return OverflowErr()
	}
	return Uint(r)
}

// Divide implements unsigned division.
func (u Uint) Divide(other Value) Value {
	o, ok := other.(Uint)
	if !ok {
		return MaybeNoSuchOverload(other)
	}
	if o == UintZero {
		return DivideByZeroErr()
	}
	return u / o
}

// Modulo implements unsigned remainder.
func (u Uint) Modulo(other Value) Value {
	o, ok := other.(Uint)
	if !ok {
		return MaybeNoSuchOverload(other)
	}
	if o == UintZero {
		return ModulusByZeroErr()
	}
	return u % o
}

// Compare implements three-way ordering against another uint.
func (u Uint) Compare(other Value) Value {
	o, ok := other.(Uint)
	if !ok {
		return MaybeNoSuchOverload(other)
	}
	switch {
	case u < o:
		return IntNegOne
	case u > o:
		return IntOne
	default:
		return IntZero
	}
}

// ConvertToType implements the Value interface.
func (u Uint) ConvertToType(t *Type) Value {
	switch t {
	case UintType:
		return u
	case IntType:
		i, ok := uint64ToInt64Checked(uint64(u))
		if !ok {
			return RangeErr("range error converting %d to int", uint64(u))
		}
		return Int(i)
	case DoubleType:
		return Double(u)
	case StringType:
		return String(strconv.FormatUint(uint64(u), 10))
	case TypeType:
		return UintType
	}
	return conversionErr(UintType, t)
}

// ConvertToNative implements the Value interface.
func (u Uint) ConvertToNative(typeDesc reflect.Type) (any, error) {
	switch typeDesc.Kind() {
	case reflect.Uint64:
		return uint64(u), nil
	case reflect.Uint32:
		if uint64(u) > 4294967295 {
			return nil, fmt.Errorf("range error converting %d to uint32", uint64(u))
		}
		return uint32(u), nil
	case reflect.Uint:
		return uint(u), nil
	}
	return nil, fmt.Errorf("type conversion error from 'uint' to '%v'", typeDesc)
}

func (u Uint) String() string {
	return strconv.FormatUint(uint64(u), 10) + "u"
}
