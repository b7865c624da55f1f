package types

import (
	"fmt"
	"reflect"
)

// Null is the null value variant. There is a single canonical instance,
// NullValue.
type Null struct{}

// NullValue is the canonical null.
var NullValue = Null{}

// Type implements the Value interface.
func (n Null) Type() *Type {
	return NullType
}

// Value implements the Value interface.
func (n Null) Value() any {
	return nil
}

// Equal implements the Value interface: null equals only null.
func (n Null) Equal(other Value) Value {
	if _, ok := other.(Null); ok {
		return True
	}
	return propagateOrFalse(other)
}

// ConvertToType implements the Value interface.
func (n Null) ConvertToType(t *Type) Value {
	switch t {
	case NullType:
		return n
	case StringType:
		return String("null")
	case TypeType:
		return NullType
	}
	return conversionErr(NullType, t)
}

// ConvertToNative implements the Value interface.
func (n Null) ConvertToNative(typeDesc reflect.Type) (any, error) {
	switch typeDesc.Kind() {
	case reflect.Interface, reflect.Ptr, reflect.Slice, reflect.Map:
		return nil, nil
	}
	return nil, fmt.Errorf("type conversion error from 'null_type' to '%v'", typeDesc)
}

func (n Null) String() string {
	return "null"
}
