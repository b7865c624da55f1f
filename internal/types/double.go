package types

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
)

// Double is the IEEE-754 binary64 value variant. Arithmetic follows
// IEEE semantics: division by zero yields ±Inf, not an error.
type Double float64

// Type implements the Value interface.
func (d Double) Type() *Type {
	return DoubleType
}

// Value implements the Value interface.
func (d Double) Value() any {
	return float64(d)
}

// Equal follows IEEE equality; NaN compares unequal to everything,
// including itself.
func (d Double) Equal(other Value) Value {
	o, ok := other.(Double)
	if !ok {
		return propagateOrFalse(other)
	}
	return Bool(d == o)
}

// Add implements double addition.
func (d Double) Add(other Value) Value {
	o, ok := other.(Double)
	if !ok {
		return MaybeNoSuchOverload(other)
	}
	return d + o
}

// Subtract implements double subtraction.
func (d Double) Subtract(other Value) Value {
	o, ok := other.(Double)
	if !ok {
		return MaybeNoSuchOverload(other)
	}
	return d - o
}

// Multiply implements double multiplication.
func (d Double) Multiply(other Value) Value {
	o, ok := other.(Double)
	if !ok {
		return MaybeNoSuchOverload(other)
	}
	return d * o
}

// Divide implements double division. x/0 is ±Inf per IEEE-754.
func (d Double) Divide(other Value) Value {
	o, ok := other.(Double)
	if !ok {
		return MaybeNoSuchOverload(other)
	}
	return d / o
}

// Negate implements unary minus.
func (d Double) Negate() Value {
	return -d
}

// Compare implements total-order three-way comparison. NaN orders
// below every other double so that ordering stays deterministic; this
// is the documented resolution of the NaN ordering question.
func (d Double) Compare(other Value) Value {
	o, ok := other.(Double)
	if !ok {
		return MaybeNoSuchOverload(other)
	}
	dn, on := math.IsNaN(float64(d)), math.IsNaN(float64(o))
	switch {
	case dn && on:
		return IntZero
	case dn:
		return IntNegOne
	case on:
		return IntOne
	case d < o:
		return IntNegOne
	case d > o:
		return IntOne
	default:
		return IntZero
	}
}

// ConvertToType implements the Value interface. Conversions to the
// integer types round half away from zero and range-check the result.
func (d Double) ConvertToType(t *Type) Value {
	switch t {
	case DoubleType:
		return d
	case IntType:
		i, ok := doubleToInt64Checked(float64(d))
		if !ok {
			return RangeErr("range error converting %g to int", float64(d))
		}
		return Int(i)
	case UintType:
		u, ok := doubleToUint64Checked(float64(d))
		if !ok {
			return RangeErr("range error converting %g to uint", float64(d))
		}
		return Uint(u)
	case StringType:
		return String(strconv.FormatFloat(float64(d), 'f', -1, 64))
	case TypeType:
		return DoubleType
	}
	return conversionErr(DoubleType, t)
}

// ConvertToNative implements the Value interface.
func (d Double) ConvertToNative(typeDesc reflect.Type) (any, error) {
	switch typeDesc.Kind() {
	case reflect.Float64:
		return float64(d), nil
	case reflect.Float32:
		return float32(d), nil
	}
	return nil, fmt.Errorf("type conversion error from 'double' to '%v'", typeDesc)
}

func (d Double) String() string {
	return strconv.FormatFloat(float64(d), 'g', -1, 64)
}
