package types

import (
	"fmt"
	"reflect"
)

// Type is a runtime type descriptor. A Type is itself a value: the
// expression type(v) yields the descriptor for v, and descriptors
// compare equal by name.
type Type struct {
	name      string
	traitMask int
}

// NewType creates a type descriptor with the given qualified name and
// trait mask.
func NewType(name string, traits int) *Type {
	return &Type{name: name, traitMask: traits}
}

// Predeclared type descriptors for the closed variant set.
var (
	BoolType      = NewType("bool", ComparerTrait | NegaterTrait)
	BytesType     = NewType("bytes", AdderTrait | ComparerTrait | SizerTrait)
	DoubleType    = NewType("double", AdderTrait | ComparerTrait | DividerTrait | MultiplierTrait | NegaterTrait | SubtractorTrait)
	DurationType  = NewType("google.protobuf.Duration", AdderTrait | ComparerTrait | NegaterTrait | SubtractorTrait)
	DynType       = NewType("dyn", 0)
	ErrType       = NewType("error", 0)
	IntType       = NewType("int", AdderTrait | ComparerTrait | DividerTrait | ModderTrait | MultiplierTrait | NegaterTrait | SubtractorTrait)
	IteratorType  = NewType("iterator", IteratorTrait)
	ListType      = NewType("list", AdderTrait | ContainerTrait | IndexerTrait | IterableTrait | SizerTrait)
	MapType       = NewType("map", ContainerTrait | IndexerTrait | IterableTrait | SizerTrait)
	NullType      = NewType("null_type", 0)
	StringType    = NewType("string", AdderTrait | ComparerTrait | MatcherTrait | ReceiverTrait | SizerTrait)
	TimestampType = NewType("google.protobuf.Timestamp", AdderTrait | ComparerTrait | SubtractorTrait)
	TypeType      = NewType("type", 0)
	UintType      = NewType("uint", AdderTrait | ComparerTrait | DividerTrait | ModderTrait | MultiplierTrait | SubtractorTrait)
	UnknownType   = NewType("unknown", 0)
)

// TypeName returns the qualified name of the type.
func (t *Type) TypeName() string {
	return t.name
}

// HasTrait reports whether the type supports the given trait.
func (t *Type) HasTrait(trait int) bool {
	return t.traitMask&trait == trait
}

// Type implements the Value interface: the type of a type is 'type'.
func (t *Type) Type() *Type {
	return TypeType
}

// Value returns the type name.
func (t *Type) Value() any {
	return t.name
}

// Equal compares type descriptors by name.
func (t *Type) Equal(other Value) Value {
	o, ok := other.(*Type)
	if !ok {
		return propagateOrFalse(other)
	}
	return Bool(t.name == o.name)
}

// ConvertToType supports conversion to type and string.
func (t *Type) ConvertToType(target *Type) Value {
	switch target {
	case TypeType:
		return TypeType
	case StringType:
		return String(t.name)
	}
	return conversionErr(t.Type(), target)
}

// ConvertToNative yields the type name for string-shaped targets.
func (t *Type) ConvertToNative(typeDesc reflect.Type) (any, error) {
	if typeDesc.Kind() == reflect.String {
		return t.name, nil
	}
	return nil, fmt.Errorf("type conversion error from 'type' to '%v'", typeDesc)
}

func (t *Type) String() string {
	return t.name
}

// propagateOrFalse implements the cross-type equality rule: errors and
// unknowns win, every other mismatch compares unequal.
func propagateOrFalse(other Value) Value {
	if IsUnknownOrError(other) {
		return other
	}
	return False
}
