package types

import (
	"bytes"
	"fmt"
	"reflect"
	"unicode/utf8"
)

// Bytes is the byte sequence value variant.
type Bytes []byte

// Type implements the Value interface.
func (b Bytes) Type() *Type {
	return BytesType
}

// Value implements the Value interface.
func (b Bytes) Value() any {
	return []byte(b)
}

// Equal implements the Value interface.
func (b Bytes) Equal(other Value) Value {
	o, ok := other.(Bytes)
	if !ok {
		return propagateOrFalse(other)
	}
	return Bool(bytes.Equal(b, o))
}

// Add implements bytes concatenation.
func (b Bytes) Add(other Value) Value {
	o, ok := other.(Bytes)
	if !ok {
		return MaybeNoSuchOverload(other)
	}
	out := make([]byte, 0, len(b)+len(o))
	out = append(out, b...)
	out = append(out, o...)
	return Bytes(out)
}

// Compare orders bytes lexicographically.
func (b Bytes) Compare(other Value) Value {
	o, ok := other.(Bytes)
	if !ok {
		return MaybeNoSuchOverload(other)
	}
	return Int(bytes.Compare(b, o))
}

// Size returns the number of bytes.
func (b Bytes) Size() Value {
	return Int(len(b))
}

// ConvertToType implements the Value interface. Conversion to string
// requires the bytes to be valid UTF-8.
func (b Bytes) ConvertToType(t *Type) Value {
	switch t {
	case BytesType:
		return b
	case StringType:
		if !utf8.Valid(b) {
			return conversionErr(BytesType, StringType)
		}
		return String(b)
	case TypeType:
		return BytesType
	}
	return conversionErr(BytesType, t)
}

// ConvertToNative implements the Value interface.
func (b Bytes) ConvertToNative(typeDesc reflect.Type) (any, error) {
	switch typeDesc.Kind() {
	case reflect.Slice:
		if typeDesc.Elem().Kind() == reflect.Uint8 {
			out := make([]byte, len(b))
			copy(out, b)
			return out, nil
		}
	case reflect.String:
		return string(b), nil
	}
	return nil, fmt.Errorf("type conversion error from 'bytes' to '%v'", typeDesc)
}

func (b Bytes) String() string {
	return fmt.Sprintf("b%q", string(b))
}
