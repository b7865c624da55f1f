package interp

import (
	"sync"
	"testing"

	"github.com/cwbudde/go-cel/internal/ast"
	"github.com/cwbudde/go-cel/internal/parser"
	"github.com/cwbudde/go-cel/internal/types"
)

func TestPlanCheckedEnumReference(t *testing.T) {
	// The checker resolves enum selects to constant references.
	parsed, errs := parser.Parse("test.Color.GREEN")
	if len(errs) > 0 {
		t.Fatalf("parse errors: %v", errs[0])
	}
	parsed.References = map[int64]*ast.Reference{
		parsed.Expr.ID(): {Name: "test.Color.GREEN", Value: types.Int(1)},
	}
	interpretable, err := testInterpreter(t).NewInterpretable(parsed)
	if err != nil {
		t.Fatal(err)
	}
	if _, isConst := interpretable.(InterpretableConst); !isConst {
		t.Fatalf("checked enum planned as %T, want constant", interpretable)
	}
	if got := interpretable.Eval(EmptyActivation()); got != types.Int(1) {
		t.Errorf("enum value = %v, want 1", got)
	}
}

func TestPlanCheckedIdentReference(t *testing.T) {
	parsed, errs := parser.Parse("x")
	if len(errs) > 0 {
		t.Fatalf("parse errors: %v", errs[0])
	}
	parsed.References = map[int64]*ast.Reference{
		parsed.Expr.ID(): {Name: "com.example.x"},
	}
	interpretable, err := testInterpreter(t).NewInterpretable(parsed)
	if err != nil {
		t.Fatal(err)
	}
	vars, _ := NewActivation(map[string]any{"com.example.x": int64(9)})
	if got := interpretable.Eval(vars); got != types.Int(9) {
		t.Errorf("checked ident = %v, want 9", got)
	}
	// The unqualified name must not resolve: the reference is frozen.
	vars, _ = NewActivation(map[string]any{"x": int64(1)})
	if got := interpretable.Eval(vars); !types.IsError(got) {
		t.Errorf("checked ident with wrong binding = %v, want error", got)
	}
}

func TestPlanCheckedOverloadID(t *testing.T) {
	parsed, errs := parser.Parse("1 + 2")
	if len(errs) > 0 {
		t.Fatalf("parse errors: %v", errs[0])
	}
	parsed.References = map[int64]*ast.Reference{
		parsed.Expr.ID(): {OverloadID: "add_int64"},
	}
	interpretable, err := testInterpreter(t).NewInterpretable(parsed)
	if err != nil {
		t.Fatal(err)
	}
	if got := interpretable.Eval(EmptyActivation()); got != types.Int(3) {
		t.Errorf("checked add = %v, want 3", got)
	}
}

func TestPlanUnknownOverloadIDFails(t *testing.T) {
	parsed, errs := parser.Parse("f(1)")
	if len(errs) > 0 {
		t.Fatalf("parse errors: %v", errs[0])
	}
	parsed.References = map[int64]*ast.Reference{
		parsed.Expr.ID(): {OverloadID: "f_never_registered"},
	}
	if _, err := testInterpreter(t).NewInterpretable(parsed); err == nil {
		t.Error("planning an unregistered checked overload must fail")
	}
}

func TestPlanUnregisteredFunctionDefersToEval(t *testing.T) {
	// Without checker annotations the call plans, and dispatch fails
	// at eval time.
	got := evalExpr(t, "frobnicate(1)", nil)
	e, ok := got.(*types.Err)
	if !ok || e.Kind() != types.KindNoSuchOverload {
		t.Errorf("unregistered call = %v, want no_such_overload", got)
	}
}

// A planned tree is immutable and shareable; each goroutine brings its
// own activation.
func TestInterpretableConcurrentReuse(t *testing.T) {
	interpretable := plan(t, "xs.map(x, x * n) == want")
	var wg sync.WaitGroup
	for i := 1; i <= 8; i++ {
		wg.Add(1)
		go func(n int64) {
			defer wg.Done()
			vars, err := NewActivation(map[string]any{
				"xs":   []any{int64(1), int64(2)},
				"n":    n,
				"want": []any{n, 2 * n},
			})
			if err != nil {
				t.Error(err)
				return
			}
			for j := 0; j < 50; j++ {
				if got := interpretable.Eval(vars); got != types.True {
					t.Errorf("n=%d: got %v", n, got)
					return
				}
			}
		}(int64(i))
	}
	wg.Wait()
}
