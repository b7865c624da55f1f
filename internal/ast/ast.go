// Package ast defines the expression tree consumed by the planner:
// constants, identifiers, selections, calls, container literals, and
// the comprehension fold form that all macros lower to. Nodes carry
// stable 64-bit ids used for error attribution, unknown payloads, and
// eval-state tracking.
package ast

import "github.com/cwbudde/go-cel/internal/types"

// AccumulatorName is the hidden accumulator variable introduced by
// macro expansion.
const AccumulatorName = "__result__"

// Expr is a node of the expression tree.
type Expr interface {
	// ID returns the node's stable id.
	ID() int64
}

// Const is a literal value node.
type Const struct {
	NodeID int64
	Val    types.Value
}

// ID implements the Expr interface.
func (e *Const) ID() int64 { return e.NodeID }

// Ident is an identifier node; dotted resolution happens at plan time.
type Ident struct {
	NodeID int64
	Name   string
}

// ID implements the Expr interface.
func (e *Ident) ID() int64 { return e.NodeID }

// Select is a field selection on an operand. TestOnly marks the node
// as a has() presence test.
type Select struct {
	NodeID   int64
	Operand  Expr
	Field    string
	TestOnly bool
}

// ID implements the Expr interface.
func (e *Select) ID() int64 { return e.NodeID }

// Call is a global or receiver-style function invocation. Target is
// nil for global calls.
type Call struct {
	NodeID   int64
	Function string
	Target   Expr
	Args     []Expr
}

// ID implements the Expr interface.
func (e *Call) ID() int64 { return e.NodeID }

// CreateList is a list literal.
type CreateList struct {
	NodeID   int64
	Elements []Expr
}

// ID implements the Expr interface.
func (e *CreateList) ID() int64 { return e.NodeID }

// Entry is one key/value pair of a map literal.
type Entry struct {
	Key   Expr
	Value Expr
}

// CreateMap is a map literal; entries evaluate in source order.
type CreateMap struct {
	NodeID  int64
	Entries []Entry
}

// ID implements the Expr interface.
func (e *CreateMap) ID() int64 { return e.NodeID }

// Field is one field initializer of a struct literal.
type Field struct {
	Name  string
	Value Expr
}

// CreateStruct is a message construction literal.
type CreateStruct struct {
	NodeID   int64
	TypeName string
	Fields   []Field
}

// ID implements the Expr interface.
func (e *CreateStruct) ID() int64 { return e.NodeID }

// Comprehension is the generic fold form produced by macro expansion:
// evaluate IterRange, bind AccuVar to AccuInit, then for each element
// bound to IterVar evaluate LoopCond (loop while true) and LoopStep
// (next accumulator value), finally yielding Result.
type Comprehension struct {
	NodeID    int64
	IterVar   string
	IterRange Expr
	AccuVar   string
	AccuInit  Expr
	LoopCond  Expr
	LoopStep  Expr
	Result    Expr
}

// ID implements the Expr interface.
func (e *Comprehension) ID() int64 { return e.NodeID }

// Reference is an optional type-checker annotation attached to a node
// id: a resolved identifier name, a resolved overload id for a call,
// or a constant value for enum references.
type Reference struct {
	Name       string
	OverloadID string
	Value      types.Value
}

// AST bundles an expression tree with its check-time annotations. The
// reference map is nil for parse-only expressions.
type AST struct {
	Expr       Expr
	References map[int64]*Reference
}

// MaxID returns the largest node id in the tree, used by tooling that
// appends synthetic nodes.
func MaxID(e Expr) int64 {
	max := e.ID()
	Walk(e, func(n Expr) {
		if n.ID() > max {
			max = n.ID()
		}
	})
	return max
}

// Walk visits every node of the tree in depth-first pre-order.
func Walk(e Expr, visit func(Expr)) {
	if e == nil {
		return
	}
	visit(e)
	switch e := e.(type) {
	case *Select:
		Walk(e.Operand, visit)
	case *Call:
		if e.Target != nil {
			Walk(e.Target, visit)
		}
		for _, a := range e.Args {
			Walk(a, visit)
		}
	case *CreateList:
		for _, el := range e.Elements {
			Walk(el, visit)
		}
	case *CreateMap:
		for _, en := range e.Entries {
			Walk(en.Key, visit)
			Walk(en.Value, visit)
		}
	case *CreateStruct:
		for _, f := range e.Fields {
			Walk(f.Value, visit)
		}
	case *Comprehension:
		Walk(e.IterRange, visit)
		Walk(e.AccuInit, visit)
		Walk(e.LoopCond, visit)
		Walk(e.LoopStep, visit)
		Walk(e.Result, visit)
	}
}
