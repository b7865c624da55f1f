package interp

import (
	"testing"

	"github.com/cwbudde/go-cel/internal/parser"
	"github.com/cwbudde/go-cel/internal/types"
)

func TestOptimizeConstantFold(t *testing.T) {
	interpretable := plan(t, `timestamp("1986-04-26T01:23:40Z")`, Optimize())
	c, ok := interpretable.(InterpretableConst)
	if !ok {
		t.Fatalf("optimized plan is %T, want constant", interpretable)
	}
	ts := c.Value().ConvertToType(types.IntType)
	if ts != types.Int(514862620) {
		t.Errorf("folded timestamp = %v, want unix 514862620", ts)
	}
	cost := EstimateCost(interpretable)
	if cost.Min != 0 || cost.Max != 0 {
		t.Errorf("folded cost = [%d, %d], want [0, 0]", cost.Min, cost.Max)
	}
}

// Plan-time folding of a failing conversion must reproduce the exact
// runtime error.
func TestOptimizeFoldsErrorsIdentically(t *testing.T) {
	source := "uint(-1)"
	runtime := evalExpr(t, source, nil)
	folded := plan(t, source, Optimize())
	c, ok := folded.(InterpretableConst)
	if !ok {
		t.Fatalf("optimized plan is %T, want constant", folded)
	}
	planTime := c.Value()

	rErr, rok := runtime.(*types.Err)
	pErr, pok := planTime.(*types.Err)
	if !rok || !pok {
		t.Fatalf("runtime = %v, plan-time = %v, want range errors", runtime, planTime)
	}
	if rErr.Kind() != types.KindRange || pErr.Kind() != types.KindRange {
		t.Errorf("kinds = %q/%q, want range", rErr.Kind(), pErr.Kind())
	}
	if rErr.Error() != pErr.Error() {
		t.Errorf("messages differ: runtime %q, plan-time %q", rErr.Error(), pErr.Error())
	}
}

func TestOptimizeConstantConcatChain(t *testing.T) {
	interpretable := plan(t, `"a" + "b" + "c" + "d"`, Optimize())
	c, ok := interpretable.(InterpretableConst)
	if !ok {
		t.Fatalf("concat chain plan is %T, want constant", interpretable)
	}
	if c.Value() != types.String("abcd") {
		t.Errorf("folded concat = %v", c.Value())
	}
}

func TestOptimizeSetMembership(t *testing.T) {
	interpretable := plan(t, `ip in ["10.0.1.4", "10.0.1.5"]`, Optimize())
	if _, ok := interpretable.(*evalSetMembership); !ok {
		t.Fatalf("in-list plan is %T, want set membership", interpretable)
	}
	vars, _ := NewActivation(map[string]any{"ip": "10.0.1.4"})
	if got := interpretable.Eval(vars); got != types.True {
		t.Errorf("set membership hit = %v", got)
	}
	vars, _ = NewActivation(map[string]any{"ip": "10.0.1.2"})
	if got := interpretable.Eval(vars); got != types.False {
		t.Errorf("set membership miss = %v", got)
	}
	// A mistyped needle misses rather than erroring.
	vars, _ = NewActivation(map[string]any{"ip": int64(4)})
	if got := interpretable.Eval(vars); got != types.False {
		t.Errorf("set membership type miss = %v", got)
	}
}

func TestOptimizeEmptyInList(t *testing.T) {
	interpretable := plan(t, "x in []", Optimize())
	c, ok := interpretable.(InterpretableConst)
	if !ok || c.Value() != types.False {
		t.Fatalf("empty in-list plan = %T %v, want const false", interpretable, interpretable)
	}
}

// Decorator transparency: optimize and trackState must not change
// error-free results.
func TestDecoratorTransparency(t *testing.T) {
	sources := []string{
		"1 + 2 * 3",
		`[1, 2, 3].map(x, x * 2) == [2, 4, 6]`,
		`"a" + "b" == "ab" ? size("xyz") : -1`,
		`2 in [1, 2, 3]`,
	}
	for _, source := range sources {
		baseline := evalExpr(t, source, nil)
		optimized := evalExpr(t, source, nil, Optimize())
		tracked := evalExpr(t, source, nil, TrackState(NewEvalState()))
		if types.Equal(baseline, optimized) != types.True {
			t.Errorf("%q: optimize changed %v to %v", source, baseline, optimized)
		}
		if types.Equal(baseline, tracked) != types.True {
			t.Errorf("%q: trackState changed %v to %v", source, baseline, tracked)
		}
	}
}

func TestExhaustiveEvalSurfacesSkippedErrors(t *testing.T) {
	source := "1/0 != 0 && false"
	if got := evalExpr(t, source, nil); got != types.False {
		t.Fatalf("short-circuit eval = %v, want false", got)
	}
	got := evalExpr(t, source, nil, ExhaustiveEval(NewEvalState()))
	e, ok := got.(*types.Err)
	if !ok || e.Kind() != types.KindDivideByZero {
		t.Errorf("exhaustive eval = %v, want divide_by_zero", got)
	}

	// The symmetric case: a literal true no longer hides the error.
	source = "1/0 != 0 || true"
	if got := evalExpr(t, source, nil); got != types.True {
		t.Fatalf("short-circuit eval = %v, want true", got)
	}
	got = evalExpr(t, source, nil, ExhaustiveEval(NewEvalState()))
	e, ok = got.(*types.Err)
	if !ok || e.Kind() != types.KindDivideByZero {
		t.Errorf("exhaustive eval = %v, want divide_by_zero", got)
	}

	// Error-free operands still combine to the plain boolean result.
	if got := evalExpr(t, "false && true", nil, ExhaustiveEval(NewEvalState())); got != types.False {
		t.Errorf("exhaustive false && true = %v, want false", got)
	}
	if got := evalExpr(t, "true || false", nil, ExhaustiveEval(NewEvalState())); got != types.True {
		t.Errorf("exhaustive true || false = %v, want true", got)
	}
}

func TestExhaustiveAgreementWhenErrorFree(t *testing.T) {
	sources := []string{
		"true && 1 < 2",
		"false || 2 < 1",
		"true ? 1 : 2",
		"[1, 2].all(x, x > 0)",
	}
	for _, source := range sources {
		baseline := evalExpr(t, source, nil)
		exhaustive := evalExpr(t, source, nil, ExhaustiveEval(NewEvalState()))
		if types.Equal(baseline, exhaustive) != types.True {
			t.Errorf("%q: exhaustive %v != baseline %v", source, exhaustive, baseline)
		}
	}
}

func TestExhaustiveEvalRecordsBothArms(t *testing.T) {
	state := NewEvalState()
	got := evalExpr(t, "true ? 10 : 20", nil, ExhaustiveEval(state))
	if got != types.Int(10) {
		t.Fatalf("exhaustive ternary = %v, want 10", got)
	}
	saw10, saw20 := false, false
	for _, id := range state.IDs() {
		v, _ := state.Value(id)
		if v == types.Int(10) {
			saw10 = true
		}
		if v == types.Int(20) {
			saw20 = true
		}
	}
	if !saw10 || !saw20 {
		t.Errorf("state missing an arm: saw10=%v saw20=%v", saw10, saw20)
	}
}

func TestTrackStateRecordsByNodeID(t *testing.T) {
	parsed, errs := parser.Parse("1 + 2")
	if len(errs) > 0 {
		t.Fatalf("parse errors: %v", errs[0])
	}
	state := NewEvalState()
	interpretable, err := testInterpreter(t).NewInterpretable(parsed, TrackState(state))
	if err != nil {
		t.Fatal(err)
	}
	if got := interpretable.Eval(EmptyActivation()); got != types.Int(3) {
		t.Fatalf("eval = %v", got)
	}
	if v, found := state.Value(parsed.Expr.ID()); !found || v != types.Int(3) {
		t.Errorf("root state = %v/%v, want 3/true", v, found)
	}
	if len(state.IDs()) < 3 {
		t.Errorf("tracked %d nodes, want at least 3", len(state.IDs()))
	}
	state.Reset()
	if len(state.IDs()) != 0 {
		t.Error("reset left state behind")
	}
}
