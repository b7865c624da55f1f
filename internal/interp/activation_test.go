package interp

import (
	"testing"

	"github.com/cwbudde/go-cel/internal/types"
)

func TestMapActivation(t *testing.T) {
	vars, err := NewActivation(map[string]any{"x": int64(1)})
	if err != nil {
		t.Fatal(err)
	}
	if v, found := vars.ResolveName("x"); !found || v != int64(1) {
		t.Errorf("x = %v/%v", v, found)
	}
	if _, found := vars.ResolveName("y"); found {
		t.Error("unexpected binding for y")
	}
	if vars.Parent() != nil {
		t.Error("map activation must be a root")
	}
}

func TestLazyBinding(t *testing.T) {
	calls := 0
	vars, _ := NewActivation(map[string]any{
		"x": func() any {
			calls++
			return int64(7)
		},
	})
	for i := 0; i < 3; i++ {
		if v, _ := vars.ResolveName("x"); v != int64(7) {
			t.Fatalf("x = %v", v)
		}
	}
	if calls != 1 {
		t.Errorf("lazy binding invoked %d times, want 1", calls)
	}
}

func TestHierarchicalActivation(t *testing.T) {
	parent, _ := NewActivation(map[string]any{"x": int64(1), "y": int64(2)})
	child, _ := NewActivation(map[string]any{"x": int64(10)})
	vars := NewHierarchicalActivation(parent, child)
	if v, _ := vars.ResolveName("x"); v != int64(10) {
		t.Errorf("shadowed x = %v, want 10", v)
	}
	if v, _ := vars.ResolveName("y"); v != int64(2) {
		t.Errorf("inherited y = %v, want 2", v)
	}
	if vars.Parent() != parent {
		t.Error("parent accessor mismatch")
	}
}

func TestActivationInputValidation(t *testing.T) {
	if _, err := NewActivation(nil); err == nil {
		t.Error("nil bindings must be rejected")
	}
	if _, err := NewActivation(42); err == nil {
		t.Error("non-map bindings must be rejected")
	}
	base, _ := NewActivation(map[string]any{})
	if wrapped, err := NewActivation(base); err != nil || wrapped != base {
		t.Error("activations must pass through unchanged")
	}
}

func TestPartialActivationUnknowns(t *testing.T) {
	bindings := map[string]any{
		"headers": map[string]any{
			"ip":   "10.0.1.2",
			"auth": map[string]any{"token": "t"},
		},
	}
	pattern := NewAttributePattern("headers").QualString("auth").Wildcard()
	vars, err := NewPartialActivation(bindings, pattern)
	if err != nil {
		t.Fatal(err)
	}

	// Paths outside the pattern resolve normally.
	i := plan(t, "headers.ip")
	if got := i.Eval(vars); got != types.String("10.0.1.2") {
		t.Errorf("headers.ip = %v", got)
	}

	// Paths matching the pattern yield unknowns carrying node ids.
	i = plan(t, "headers.auth.token")
	got := i.Eval(vars)
	u, ok := got.(types.Unknown)
	if !ok {
		t.Fatalf("headers.auth.token = %v, want unknown", got)
	}
	if len(u.IDs()) != 1 {
		t.Errorf("unknown ids = %v, want a single node id", u.IDs())
	}
}

func TestPartialActivationUnboundVariable(t *testing.T) {
	pattern := NewAttributePattern("request")
	vars, err := NewPartialActivation(map[string]any{}, pattern)
	if err != nil {
		t.Fatal(err)
	}
	i := plan(t, "request.path")
	if got := i.Eval(vars); !types.IsUnknown(got) {
		t.Errorf("request.path = %v, want unknown", got)
	}
}

func TestUnknownPropagation(t *testing.T) {
	pattern := NewAttributePattern("a")
	vars, err := NewPartialActivation(map[string]any{"b": int64(1)}, pattern)
	if err != nil {
		t.Fatal(err)
	}

	// Unknowns propagate through strict operators.
	i := plan(t, "a + b")
	if got := i.Eval(vars); !types.IsUnknown(got) {
		t.Errorf("a + b = %v, want unknown", got)
	}

	// Short-circuit resolution wins over the unknown.
	i = plan(t, "b == 1 || a == 2")
	if got := i.Eval(vars); got != types.True {
		t.Errorf("b == 1 || a == 2 = %v, want true", got)
	}

	// Without resolution the unknown surfaces.
	i = plan(t, "b == 2 || a == 2")
	if got := i.Eval(vars); !types.IsUnknown(got) {
		t.Errorf("b == 2 || a == 2 = %v, want unknown", got)
	}
}

func TestUnknownUnionAcrossOperands(t *testing.T) {
	vars, err := NewPartialActivation(map[string]any{},
		NewAttributePattern("a"), NewAttributePattern("b"))
	if err != nil {
		t.Fatal(err)
	}
	i := plan(t, "a + b")
	got := i.Eval(vars)
	u, ok := got.(types.Unknown)
	if !ok {
		t.Fatalf("a + b = %v, want unknown", got)
	}
	if len(u.IDs()) != 2 {
		t.Errorf("union of unknowns has ids %v, want two distinct ids", u.IDs())
	}
}

func TestParseAttributePatternStrings(t *testing.T) {
	p, err := ParseAttributePattern("headers.auth.*")
	if err != nil {
		t.Fatal(err)
	}
	if p.String() != "headers.auth.*" {
		t.Errorf("round trip = %q", p.String())
	}
	for _, bad := range []string{"", "*", "a..b"} {
		if _, err := ParseAttributePattern(bad); err == nil {
			t.Errorf("pattern %q must be rejected", bad)
		}
	}
}
