package interp

import (
	"github.com/cwbudde/go-cel/internal/operators"
	"github.com/cwbudde/go-cel/internal/types"
)

// InterpretableDecorator is a functional interface for decorating or
// replacing Interpretable expression nodes at construction time.
type InterpretableDecorator func(Interpretable) (Interpretable, error)

// evalObserver accepts an expression id and its observed value.
type evalObserver func(int64, types.Value)

// decObserveEval wraps every node so its value is reported to the
// observer after evaluation. Attribute nodes keep their attribute
// surface so later planning steps can still qualify them.
func decObserveEval(observer evalObserver) InterpretableDecorator {
	return func(i Interpretable) (Interpretable, error) {
		switch inst := i.(type) {
		case *evalWatch, *evalWatchAttr:
			return i, nil
		case InterpretableAttribute:
			return &evalWatchAttr{inst: inst, observer: observer}, nil
		}
		return &evalWatch{inst: i, observer: observer}, nil
	}
}

// decDisableShortcircuits rewrites the short-circuiting operators and
// the fold so that every branch evaluates; the normal result rule then
// applies.
func decDisableShortcircuits() InterpretableDecorator {
	return func(i Interpretable) (Interpretable, error) {
		switch inst := i.(type) {
		case *evalAnd:
			return &evalExhaustiveAnd{id: inst.id, lhs: inst.lhs, rhs: inst.rhs}, nil
		case *evalOr:
			return &evalExhaustiveOr{id: inst.id, lhs: inst.lhs, rhs: inst.rhs}, nil
		case *evalConditional:
			return &evalExhaustiveConditional{
				id:     inst.id,
				expr:   inst.expr,
				truthy: inst.truthy,
				falsy:  inst.falsy,
			}, nil
		case *evalFold:
			return &evalExhaustiveFold{
				id:        inst.id,
				accu:      inst.accu,
				accuVar:   inst.accuVar,
				iterRange: inst.iterRange,
				iterVar:   inst.iterVar,
				cond:      inst.cond,
				step:      inst.step,
				result:    inst.result,
			}, nil
		}
		return i, nil
	}
}

// decOptimize rewrites the plan for faster evaluation:
//   - subtrees whose inputs are all constant are evaluated once at
//     plan time and replaced by the resulting constant, errors
//     included, so plan-time and eval-time failures are identical;
//   - all-constant 'in' lists become set membership tests.
func decOptimize() InterpretableDecorator {
	return func(i Interpretable) (Interpretable, error) {
		switch inst := i.(type) {
		case *evalList:
			return maybeFold(i, inst.elems...)
		case *evalMap:
			return maybeFold(i, append(append([]Interpretable{}, inst.keys...), inst.vals...)...)
		case *evalUnary:
			if inst.impl == nil {
				return i, nil
			}
			return maybeFold(i, inst.arg)
		case *evalBinary:
			if inst.function == operators.In {
				if opt, done := maybeOptimizeSetMembership(inst); done {
					return opt, nil
				}
			}
			if inst.impl == nil {
				return i, nil
			}
			return maybeFold(i, inst.lhs, inst.rhs)
		case *evalVarArgs:
			if inst.impl == nil {
				return i, nil
			}
			return maybeFold(i, inst.args...)
		case *evalEq:
			return maybeFold(i, inst.lhs, inst.rhs)
		case *evalNe:
			return maybeFold(i, inst.lhs, inst.rhs)
		case *evalTypeOf:
			return maybeFold(i, inst.arg)
		}
		return i, nil
	}
}

// maybeFold replaces the node with a constant when every input is a
// constant, running one evaluation at plan time. The fold result may
// itself be an error value; eval reproduces it unchanged.
func maybeFold(i Interpretable, inputs ...Interpretable) (Interpretable, error) {
	for _, in := range inputs {
		if _, isConst := in.(InterpretableConst); !isConst {
			return i, nil
		}
	}
	return NewConstValue(i.ID(), i.Eval(EmptyActivation())), nil
}

// maybeOptimizeSetMembership converts an 'in' test over an
// all-constant list of homogeneous primitive values into a set lookup.
func maybeOptimizeSetMembership(inlist *evalBinary) (Interpretable, bool) {
	l, isConst := inlist.rhs.(InterpretableConst)
	if !isConst {
		return nil, false
	}
	list, isList := l.Value().(*types.List)
	if !isList {
		return nil, false
	}
	if list.Len() == 0 {
		return NewConstValue(inlist.id, types.False), true
	}
	var typeName string
	valueSet := make(map[any]bool, list.Len())
	for i := 0; i < list.Len(); i++ {
		elem := list.At(i)
		key, ok := nativeKey(elem)
		if !ok {
			if d, isDouble := elem.(types.Double); isDouble {
				key = float64(d)
			} else {
				return nil, false
			}
		}
		if typeName == "" {
			typeName = elem.Type().TypeName()
		} else if typeName != elem.Type().TypeName() {
			return nil, false
		}
		valueSet[key] = true
	}
	return &evalSetMembership{
		inst:        inlist,
		arg:         inlist.lhs,
		argTypeName: typeName,
		valueSet:    valueSet,
	}, true
}
