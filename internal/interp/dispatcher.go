package interp

import (
	"fmt"

	"github.com/cwbudde/go-cel/internal/types"
)

// UnaryOp is a function that takes a single value and produces an
// output.
type UnaryOp func(value types.Value) types.Value

// BinaryOp is a function that takes two values and produces an output.
type BinaryOp func(lhs, rhs types.Value) types.Value

// FunctionOp is a function with accepts zero or more arguments and
// produces a value or error as a result.
type FunctionOp func(values ...types.Value) types.Value

// Overload is one concrete implementation of a function, registered
// under its stable overload id and optionally under the function name
// for runtime dispatch of unchecked expressions.
type Overload struct {
	// Operator name or overload id.
	Operator string

	// OperandTrait restricts dispatch to first operands supporting
	// the trait; zero means unconstrained.
	OperandTrait int

	// At most one of Unary, Binary, or Function is non-nil, according
	// to the call arity. With none set, the call is dispatched to the
	// first operand's Receiver implementation.
	Unary    UnaryOp
	Binary   BinaryOp
	Function FunctionOp

	// NonStrict overloads accept error and unknown arguments.
	NonStrict bool
}

// Dispatcher resolves function names and overload ids to their
// implementations.
type Dispatcher interface {
	// Add registers overloads; a duplicate operator name is an error.
	Add(overloads ...*Overload) error

	// FindOverload returns the overload registered under the name.
	FindOverload(name string) (*Overload, bool)

	// OverloadIds returns the registered names.
	OverloadIds() []string
}

// NewDispatcher creates an empty dispatcher.
func NewDispatcher() Dispatcher {
	return &defaultDispatcher{overloads: make(map[string]*Overload)}
}

type defaultDispatcher struct {
	overloads map[string]*Overload
}

// Add implements the Dispatcher interface.
func (d *defaultDispatcher) Add(overloads ...*Overload) error {
	for _, o := range overloads {
		if o.Operator == "" {
			return fmt.Errorf("missing operator name in overload")
		}
		if _, found := d.overloads[o.Operator]; found {
			return fmt.Errorf("overload already exists: %s", o.Operator)
		}
		d.overloads[o.Operator] = o
	}
	return nil
}

// FindOverload implements the Dispatcher interface.
func (d *defaultDispatcher) FindOverload(name string) (*Overload, bool) {
	o, found := d.overloads[name]
	return o, found
}

// OverloadIds implements the Dispatcher interface.
func (d *defaultDispatcher) OverloadIds() []string {
	ids := make([]string, 0, len(d.overloads))
	for name := range d.overloads {
		ids = append(ids, name)
	}
	return ids
}
