package types

import (
	"errors"
	"fmt"
	"reflect"
)

// Error kind codes. Each error value carries one of these stable codes
// alongside its human-readable message.
const (
	KindNoSuchOverload  = "no_such_overload"
	KindNoSuchField     = "no_such_field"
	KindNoSuchAttribute = "no_such_attribute"
	KindDivideByZero    = "divide_by_zero"
	KindOverflow        = "overflow"
	KindRange           = "range"
	KindTypeConversion  = "type_conversion"
	KindDuplicateKey    = "duplicate_key"
	KindInvalidArgument = "invalid_argument"
	KindInterrupted     = "interrupted"
	KindInternal        = "internal"
)

// Err is the error variant of the value algebra. It records the kind
// code, the message, and (when known) the id of the originating AST
// node. Operators receiving an *Err argument return it unchanged.
type Err struct {
	kind string
	err  error
	id   int64
}

// NewErr creates an internal-kind error from a format string.
func NewErr(format string, args ...any) *Err {
	return &Err{kind: KindInternal, err: fmt.Errorf(format, args...)}
}

// NewKindErr creates an error with an explicit kind code.
func NewKindErr(kind, format string, args ...any) *Err {
	return &Err{kind: kind, err: fmt.Errorf(format, args...)}
}

// NoSuchOverloadErr signals that no operator or function overload
// matched the argument types.
func NoSuchOverloadErr() *Err {
	return &Err{kind: KindNoSuchOverload, err: errors.New("no such overload")}
}

// NoSuchFunctionOverloadErr names the function that failed dispatch.
func NoSuchFunctionOverloadErr(function string) *Err {
	return &Err{kind: KindNoSuchOverload, err: fmt.Errorf("no such overload: %s", function)}
}

// NoSuchFieldErr signals selection of an undeclared field.
func NoSuchFieldErr(field any) *Err {
	return &Err{kind: KindNoSuchField, err: fmt.Errorf("no such field '%v'", field)}
}

// NoSuchKeyErr signals a map lookup miss.
func NoSuchKeyErr(key any) *Err {
	return &Err{kind: KindNoSuchField, err: fmt.Errorf("no such key: %v", key)}
}

// NoSuchAttributeErr signals that an identifier or attribute path
// could not be resolved against the activation.
func NoSuchAttributeErr(name string) *Err {
	return &Err{kind: KindNoSuchAttribute, err: fmt.Errorf("no such attribute: %s", name)}
}

// DivideByZeroErr signals integer division by zero.
func DivideByZeroErr() *Err {
	return &Err{kind: KindDivideByZero, err: errors.New("divide by zero")}
}

// ModulusByZeroErr signals integer modulo by zero.
func ModulusByZeroErr() *Err {
	return &Err{kind: KindDivideByZero, err: errors.New("modulus by zero")}
}

// OverflowErr signals checked integer arithmetic overflow.
func OverflowErr() *Err {
	return &Err{kind: KindOverflow, err: errors.New("integer overflow")}
}

// RangeErr signals a conversion whose result falls outside the target
// type's representable range.
func RangeErr(format string, args ...any) *Err {
	return &Err{kind: KindRange, err: fmt.Errorf(format, args...)}
}

// DuplicateKeyErr signals a repeated key in a map literal.
func DuplicateKeyErr(key any) *Err {
	return &Err{kind: KindDuplicateKey, err: fmt.Errorf("duplicate key '%v' in map literal", key)}
}

// InvalidArgumentErr signals a structurally invalid argument, such as
// an unparsable duration or timestamp string.
func InvalidArgumentErr(format string, args ...any) *Err {
	return &Err{kind: KindInvalidArgument, err: fmt.Errorf(format, args...)}
}

// InterruptedErr signals that the caller's interrupt token was set
// during comprehension evaluation.
func InterruptedErr() *Err {
	return &Err{kind: KindInterrupted, err: errors.New("operation interrupted")}
}

func conversionErr(from, to *Type) *Err {
	return &Err{
		kind: KindTypeConversion,
		err:  fmt.Errorf("type conversion error from '%s' to '%s'", from.TypeName(), to.TypeName()),
	}
}

// WithID returns a copy of the error annotated with the originating
// AST node id. The id of an already annotated error is preserved.
func (e *Err) WithID(id int64) *Err {
	if e.id != 0 {
		return e
	}
	return &Err{kind: e.kind, err: e.err, id: id}
}

// Kind returns the stable error kind code.
func (e *Err) Kind() string {
	return e.kind
}

// ID returns the originating AST node id, or zero when unknown.
func (e *Err) ID() int64 {
	return e.id
}

// Type implements the Value interface.
func (e *Err) Type() *Type {
	return ErrType
}

// Value returns the wrapped Go error.
func (e *Err) Value() any {
	return e.err
}

// Equal propagates the error: equality with an error is the error.
func (e *Err) Equal(other Value) Value {
	return e
}

// ConvertToType propagates the error through conversions.
func (e *Err) ConvertToType(t *Type) Value {
	return e
}

// ConvertToNative surfaces the wrapped error to the host.
func (e *Err) ConvertToNative(typeDesc reflect.Type) (any, error) {
	return nil, e.err
}

func (e *Err) String() string {
	return e.err.Error()
}

// Error implements the Go error interface so eval results can be
// returned through error-typed APIs at the host boundary.
func (e *Err) Error() string {
	return e.err.Error()
}
