package types

import "reflect"

// Value is the runtime representation of every CEL value. All variants
// are immutable once constructed. Operator implementations accept and
// return Value so that errors and unknowns flow through uniformly.
type Value interface {
	// Type returns the runtime type descriptor of the value.
	Type() *Type

	// Value returns the Go native representation of the value.
	Value() any

	// Equal returns True or False for a defined comparison, or an
	// error/unknown value when one of the operands is an error or
	// unknown. Values of disjoint types compare unequal.
	Equal(other Value) Value

	// ConvertToType converts the value to the requested type.
	// Conversion to the value's own type is the identity; unsupported
	// conversions yield a type_conversion error.
	ConvertToType(t *Type) Value

	// ConvertToNative converts the value to the requested Go type,
	// e.g. reflect.TypeOf(int64(0)) for an int value.
	ConvertToNative(typeDesc reflect.Type) (any, error)
}

// IsError reports whether the value is an error variant.
func IsError(v Value) bool {
	_, ok := v.(*Err)
	return ok
}

// IsUnknown reports whether the value is an unknown variant.
func IsUnknown(v Value) bool {
	_, ok := v.(Unknown)
	return ok
}

// IsUnknownOrError reports whether the value is an error or unknown.
// Strict operators early-return their first such argument.
func IsUnknownOrError(v Value) bool {
	switch v.(type) {
	case *Err, Unknown:
		return true
	}
	return false
}

// ValOrErr propagates val when it is an error or unknown, and
// otherwise builds a new error from the given format and args.
func ValOrErr(val Value, format string, args ...any) Value {
	if IsUnknownOrError(val) {
		return val
	}
	return NewErr(format, args...)
}

// MaybeNoSuchOverload propagates val when it is an error or unknown,
// and otherwise reports a no_such_overload error.
func MaybeNoSuchOverload(val Value) Value {
	if IsUnknownOrError(val) {
		return val
	}
	return NoSuchOverloadErr()
}

// Equal is the entry point for the '==' operator: errors and unknowns
// on either side win, with errors dominating unknowns.
func Equal(lhs, rhs Value) Value {
	if IsError(lhs) {
		return lhs
	}
	if IsError(rhs) {
		return rhs
	}
	if IsUnknown(lhs) {
		return mergeUnknown(lhs, rhs)
	}
	if IsUnknown(rhs) {
		return rhs
	}
	return lhs.Equal(rhs)
}
