// Package interp plans and evaluates CEL expression trees. The
// planner lowers an AST into a directly evaluable Interpretable; the
// evaluator walks it against an Activation and returns a single typed
// value in which errors and unknowns are first-class.
package interp

import (
	"fmt"
	"sync"

	"github.com/cwbudde/go-cel/internal/types"
)

// Activation is the read-only binding environment for one eval call.
// Names resolve to host-native data or values; resolution falls back
// to the parent activation when a name is unbound locally.
type Activation interface {
	// ResolveName returns the binding for the name, if any.
	ResolveName(name string) (any, bool)

	// Parent returns the enclosing activation, or nil at the root.
	Parent() Activation
}

// PartialActivation marks some attribute paths as unknown rather than
// absent, yielding unknown values during attribute resolution.
type PartialActivation interface {
	Activation

	// UnknownAttributePatterns returns the unknown path patterns.
	UnknownAttributePatterns() []*AttributePattern
}

// InterruptChecker is implemented by activations carrying a caller
// interrupt token. Comprehensions poll it before each iteration.
type InterruptChecker interface {
	Interrupted() bool
}

// EmptyActivation returns an activation with no bindings.
func EmptyActivation() Activation {
	return emptyActivation{}
}

type emptyActivation struct{}

func (emptyActivation) ResolveName(string) (any, bool) { return nil, false }
func (emptyActivation) Parent() Activation             { return nil }

// NewActivation creates an activation from a map of bindings or wraps
// an existing Activation.
func NewActivation(bindings any) (Activation, error) {
	if bindings == nil {
		return nil, fmt.Errorf("bindings must be non-nil")
	}
	if a, ok := bindings.(Activation); ok {
		return a, nil
	}
	if m, ok := bindings.(map[string]any); ok {
		return &mapActivation{bindings: m}, nil
	}
	return nil, fmt.Errorf("activation input must be an Activation or map[string]any, got %T", bindings)
}

type mapActivation struct {
	bindings map[string]any
}

// ResolveName implements the Activation interface. Functions bound as
// func() any are invoked lazily on first resolution.
func (a *mapActivation) ResolveName(name string) (any, bool) {
	v, found := a.bindings[name]
	if !found {
		return nil, false
	}
	if fn, ok := v.(func() any); ok {
		v = fn()
		a.bindings[name] = v
	}
	return v, true
}

// Parent implements the Activation interface.
func (a *mapActivation) Parent() Activation {
	return nil
}

// NewHierarchicalActivation chains a child over a parent; child
// bindings shadow the parent's.
func NewHierarchicalActivation(parent, child Activation) Activation {
	return &hierarchicalActivation{parent: parent, child: child}
}

type hierarchicalActivation struct {
	parent Activation
	child  Activation
}

// ResolveName implements the Activation interface.
func (a *hierarchicalActivation) ResolveName(name string) (any, bool) {
	if v, found := a.child.ResolveName(name); found {
		return v, true
	}
	return a.parent.ResolveName(name)
}

// Parent implements the Activation interface.
func (a *hierarchicalActivation) Parent() Activation {
	return a.parent
}

// NewPartialActivation creates an activation whose listed attribute
// patterns resolve to unknown values.
func NewPartialActivation(bindings any, patterns ...*AttributePattern) (PartialActivation, error) {
	base, err := NewActivation(bindings)
	if err != nil {
		return nil, err
	}
	return &partialActivation{Activation: base, patterns: patterns}, nil
}

type partialActivation struct {
	Activation
	patterns []*AttributePattern
}

// UnknownAttributePatterns implements the PartialActivation interface.
func (a *partialActivation) UnknownAttributePatterns() []*AttributePattern {
	return a.patterns
}

// NewInterruptibleActivation wires a caller interrupt token into an
// activation chain.
func NewInterruptibleActivation(vars Activation, interrupted func() bool) Activation {
	return &interruptActivation{Activation: vars, check: interrupted}
}

type interruptActivation struct {
	Activation
	check func() bool
}

// Interrupted implements the InterruptChecker interface.
func (a *interruptActivation) Interrupted() bool {
	return a.check()
}

// interrupted walks the activation chain for an interrupt token.
func interrupted(vars Activation) bool {
	for a := vars; a != nil; a = a.Parent() {
		if ic, ok := a.(InterruptChecker); ok && ic.Interrupted() {
			return true
		}
	}
	return false
}

// findPartial surfaces the nearest partial activation in the chain.
func findPartial(vars Activation) (PartialActivation, bool) {
	for a := vars; a != nil; a = a.Parent() {
		if pa, ok := a.(PartialActivation); ok {
			return pa, true
		}
	}
	return nil, false
}

// varActivation binds a single loop variable over a parent frame.
// Instances are pooled since comprehensions allocate one per eval.
type varActivation struct {
	parent Activation
	name   string
	val    types.Value
}

// ResolveName implements the Activation interface.
func (a *varActivation) ResolveName(name string) (any, bool) {
	if name == a.name {
		return a.val, true
	}
	return a.parent.ResolveName(name)
}

// Parent implements the Activation interface.
func (a *varActivation) Parent() Activation {
	return a.parent
}

var varActivationPool = &sync.Pool{
	New: func() any {
		return &varActivation{}
	},
}
