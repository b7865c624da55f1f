package interp

import (
	"math"

	"github.com/cwbudde/go-cel/internal/types"
)

// Cost is an informational per-node estimate of the minimum and
// maximum number of evaluation steps a plan may take. Estimates never
// affect results.
type Cost struct {
	Min int64
	Max int64
}

// EstimateCost walks the planned tree and combines node estimates:
// constants cost nothing, attribute resolutions one step, and the
// short-circuiting operators may skip their costlier branch entirely.
// A fold over a dynamic range saturates the maximum.
func EstimateCost(i Interpretable) Cost {
	switch e := i.(type) {
	case InterpretableConst:
		return Cost{0, 0}
	case InterpretableAttribute:
		return Cost{1, 1}
	case *evalTestOnly:
		return Cost{1, 1}
	case *evalAnd:
		return shortCircuitCost(EstimateCost(e.lhs), EstimateCost(e.rhs))
	case *evalOr:
		return shortCircuitCost(EstimateCost(e.lhs), EstimateCost(e.rhs))
	case *evalExhaustiveAnd:
		return exhaustiveCost(EstimateCost(e.lhs), EstimateCost(e.rhs))
	case *evalExhaustiveOr:
		return exhaustiveCost(EstimateCost(e.lhs), EstimateCost(e.rhs))
	case *evalConditional:
		c := EstimateCost(e.expr)
		t := EstimateCost(e.truthy)
		f := EstimateCost(e.falsy)
		return Cost{
			Min: addSat(c.Min, minInt(t.Min, f.Min)),
			Max: addSat(c.Max, maxInt(t.Max, f.Max)),
		}
	case *evalExhaustiveConditional:
		c := EstimateCost(e.expr)
		t := EstimateCost(e.truthy)
		f := EstimateCost(e.falsy)
		return Cost{
			Min: addSat(addSat(c.Min, t.Min), f.Min),
			Max: addSat(addSat(c.Max, t.Max), f.Max),
		}
	case *evalEq:
		return callCost(EstimateCost(e.lhs), EstimateCost(e.rhs))
	case *evalNe:
		return callCost(EstimateCost(e.lhs), EstimateCost(e.rhs))
	case *evalTypeOf:
		return callCost(EstimateCost(e.arg))
	case *evalZeroArity:
		return Cost{1, 1}
	case *evalUnary:
		return callCost(EstimateCost(e.arg))
	case *evalBinary:
		return callCost(EstimateCost(e.lhs), EstimateCost(e.rhs))
	case *evalVarArgs:
		return callCost(costs(e.args)...)
	case *evalList:
		return callCost(costs(e.elems)...)
	case *evalMap:
		return callCost(append(costs(e.keys), costs(e.vals)...)...)
	case *evalObj:
		return callCost(costs(e.vals)...)
	case *evalFold:
		return foldCost(e.iterRange, e.accu, e.cond, e.step, e.result)
	case *evalExhaustiveFold:
		return foldCost(e.iterRange, e.accu, e.cond, e.step, e.result)
	case *evalSetMembership:
		return callCost(EstimateCost(e.arg))
	case *evalWatch:
		return EstimateCost(e.inst)
	case *evalWatchAttr:
		return EstimateCost(e.inst)
	}
	return Cost{0, math.MaxInt64}
}

// shortCircuitCost implements the (min(l,r), l+r+1) estimate for the
// logical operators: the cheaper branch may decide the result alone,
// while the worst case evaluates both plus the combination step.
func shortCircuitCost(l, r Cost) Cost {
	return Cost{
		Min: minInt(l.Min, r.Min),
		Max: addSat(addSat(l.Max, r.Max), 1),
	}
}

func exhaustiveCost(l, r Cost) Cost {
	return Cost{
		Min: addSat(addSat(l.Min, r.Min), 1),
		Max: addSat(addSat(l.Max, r.Max), 1),
	}
}

func callCost(args ...Cost) Cost {
	c := Cost{1, 1}
	for _, a := range args {
		c.Min = addSat(c.Min, a.Min)
		c.Max = addSat(c.Max, a.Max)
	}
	return c
}

// foldCost multiplies the body cost by the iteration count when the
// range is a constant list; a dynamic range saturates the maximum.
func foldCost(iterRange, accu, cond, step, result Interpretable) Cost {
	rangeCost := EstimateCost(iterRange)
	body := exhaustiveCost(EstimateCost(cond), EstimateCost(step))
	tail := addCost(addCost(rangeCost, EstimateCost(accu)), EstimateCost(result))
	if rc, isConst := iterRange.(InterpretableConst); isConst {
		if l, isList := rc.Value().(*types.List); isList {
			n := int64(l.Len())
			return Cost{
				Min: addSat(tail.Min, mulSat(n, body.Min)),
				Max: addSat(tail.Max, mulSat(n, body.Max)),
			}
		}
	}
	return Cost{Min: tail.Min, Max: math.MaxInt64}
}

func costs(nodes []Interpretable) []Cost {
	out := make([]Cost, len(nodes))
	for i, n := range nodes {
		out[i] = EstimateCost(n)
	}
	return out
}

func addCost(a, b Cost) Cost {
	return Cost{Min: addSat(a.Min, b.Min), Max: addSat(a.Max, b.Max)}
}

func addSat(a, b int64) int64 {
	if a > math.MaxInt64-b {
		return math.MaxInt64
	}
	return a + b
}

func mulSat(a, b int64) int64 {
	if a == 0 || b == 0 {
		return 0
	}
	if a > math.MaxInt64/b {
		return math.MaxInt64
	}
	return a * b
}

func minInt(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}
