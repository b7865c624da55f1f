package types

import (
	"fmt"
	"reflect"
	"strconv"
	"time"
)

// Int is the signed 64-bit integer value variant.
type Int int64

// Frequently used integer values.
const (
	IntNegOne = Int(-1)
	IntZero   = Int(0)
	IntOne    = Int(1)
)

// Type implements the Value interface.
func (i Int) Type() *Type {
	return IntType
}

// Value implements the Value interface.
func (i Int) Value() any {
	return int64(i)
}

// Equal implements the Value interface.
func (i Int) Equal(other Value) Value {
	o, ok := other.(Int)
	if !ok {
		return propagateOrFalse(other)
	}
	return Bool(i == o)
}

// Add implements checked integer addition.
func (i Int) Add(other Value) Value {
	o, ok := other.(Int)
	if !ok {
		return MaybeNoSuchOverload(other)
	}
	r, ok := addInt64Checked(int64(i), int64(o))
	if !ok {
		return OverflowErr()
	}
	return Int(r)
}

// Subtract implements checked integer subtraction.
func (i Int) Subtract(other Value) Value {
	o, ok := other.(Int)
	if !ok {
		return MaybeNoSuchOverload(other)
	}
	r, ok := subtractInt64Checked(int64(i), int64(o))
	if !ok {
		return OverflowErr()
	}
	return Int(r)
}

// Multiply implements checked integer multiplication.
func (i Int) Multiply(other Value) Value {
	o, ok := other.(Int)
	if !ok {
		return MaybeNoSuchOverload(other)
	}
	r, ok := multiplyInt64Checked(int64(i), int64(o))
	if !ok {
		return OverflowErr()
	}
	return Int(r)
}

// Divide implements checked integer division.
func (i Int) Divide(other Value) Value {
	o, ok := other.(Int)
	if !ok {
		return MaybeNoSuchOverload(other)
	}
	if o == IntZero {
		return DivideByZeroErr()
	}
	r, ok := divideInt64Checked(int64(i), int64(o))
	if !ok {
		return OverflowErr()
	}
	return Int(r)
}

// Modulo implements integer remainder.
func (i Int) Modulo(other Value) Value {
	o, ok := other.(Int)
	if !ok {
		return MaybeNoSuchOverload(other)
	}
	if o == IntZero {
		return ModulusByZeroErr()
	}
	// MinInt64 % -1 would trap in Go despite the result being zero.
	if int64(i) == -9223372036854775808 && o == IntNegOne {
		return IntZero
	}
	return i % o
}

// Negate implements checked unary minus.
func (i Int) Negate() Value {
	r, ok := negateInt64Checked(int64(i))
	if !ok {
		return OverflowErr()
	}
	return Int(r)
}

// Compare implements three-way ordering against another int.
func (i Int) Compare(other Value) Value {
	o, ok := other.(Int)
	if !ok {
		return MaybeNoSuchOverload(other)
	}
	switch {
	case i < o:
		return IntNegOne
	case i > o:
		return IntOne
	default:
		return IntZero
	}
}

// ConvertToType implements the Value interface.
func (i Int) ConvertToType(t *Type) Value {
	switch t {
	case IntType:
		return i
	case UintType:
		u, ok := int64ToUint64Checked(int64(i))
		if !ok {
			return RangeErr("range error converting %d to uint", int64(i))
		}
		return Uint(u)
	case DoubleType:
		return Double(i)
	case StringType:
		return String(strconv.FormatInt(int64(i), 10))
	case TimestampType:
		// Unix epoch seconds.
		return timestampOf(time.Unix(int64(i), 0).UTC())
	case TypeType:
		return IntType
	}
	return conversionErr(IntType, t)
}

// ConvertToNative implements the Value interface.
func (i Int) ConvertToNative(typeDesc reflect.Type) (any, error) {
	switch typeDesc.Kind() {
	case reflect.Int64:
		return int64(i), nil
	case reflect.Int32:
		if int64(i) < -2147483648 || int64(i) > 2147483647 {
			return nil, fmt.Errorf("range error converting %d to int32", int64(i))
		}
		return int32(i), nil
	case reflect.Int:
		return int(i), nil
	}
	return nil, fmt.Errorf("type conversion error from 'int' to '%v'", typeDesc)
}

func (i Int) String() string {
	return strconv.FormatInt(int64(i), 10)
}
