package interp

import (
	"github.com/cwbudde/go-cel/internal/ast"
	"github.com/cwbudde/go-cel/internal/types"
)

// Interpreter generates a new Interpretable from a checked or
// unchecked AST.
type Interpreter interface {
	// NewInterpretable creates an Interpretable from the AST, applying
	// the decorators outside-in during planning.
	NewInterpretable(checked *ast.AST, decorators ...InterpretableDecorator) (Interpretable, error)
}

// TrackState records the intermediate value of every node into the
// EvalState keyed by node id.
func TrackState(state EvalState) InterpretableDecorator {
	return decObserveEval(state.SetValue)
}

// ExhaustiveEval rewrites the short-circuiting operators to evaluate
// both branches and records every intermediate value into the
// EvalState. When combined with TrackState, apply ExhaustiveEval
// first so the recorded values reflect the exhaustive arms.
func ExhaustiveEval(state EvalState) InterpretableDecorator {
	exhaustive := decDisableShortcircuits()
	observe := decObserveEval(state.SetValue)
	return func(i Interpretable) (Interpretable, error) {
		rewritten, err := exhaustive(i)
		if err != nil {
			return nil, err
		}
		return observe(rewritten)
	}
}

// Optimize constant-folds all-constant subtrees at plan time and
// specializes constant in-list tests into set membership.
func Optimize() InterpretableDecorator {
	return decOptimize()
}

// NewInterpreter creates an Interpreter over the given dispatcher,
// container, provider, and adapter.
func NewInterpreter(disp Dispatcher,
	cont *Container,
	provider types.Provider,
	adapter types.Adapter) Interpreter {
	return &exprInterpreter{
		dispatcher: disp,
		container:  cont,
		provider:   provider,
		adapter:    adapter,
		attrFac:    NewAttributeFactory(cont, adapter, provider),
	}
}

// NewStandardInterpreter creates an Interpreter with the standard
// function table installed.
func NewStandardInterpreter(cont *Container, provider types.Provider, adapter types.Adapter) (Interpreter, error) {
	disp, err := NewStandardDispatcher()
	if err != nil {
		return nil, err
	}
	return NewInterpreter(disp, cont, provider, adapter), nil
}

type exprInterpreter struct {
	dispatcher Dispatcher
	container  *Container
	provider   types.Provider
	adapter    types.Adapter
	attrFac    AttributeFactory
}

// NewInterpretable implements the Interpreter interface.
func (i *exprInterpreter) NewInterpretable(checked *ast.AST, decorators ...InterpretableDecorator) (Interpretable, error) {
	p := newPlanner(i.dispatcher, i.provider, i.adapter, i.attrFac, i.container, checked, decorators...)
	return p.Plan(checked.Expr)
}
