package interp

import (
	"math"
	"testing"
)

func TestCostShortCircuit(t *testing.T) {
	c := EstimateCost(plan(t, "false && true"))
	if c.Min != 0 || c.Max != 1 {
		t.Errorf("cost(false && true) = [%d, %d], want [0, 1]", c.Min, c.Max)
	}
}

func TestCostConstant(t *testing.T) {
	c := EstimateCost(plan(t, "42"))
	if c.Min != 0 || c.Max != 0 {
		t.Errorf("cost(42) = [%d, %d], want [0, 0]", c.Min, c.Max)
	}
}

func TestCostIdent(t *testing.T) {
	c := EstimateCost(plan(t, "x"))
	if c.Min != 1 || c.Max != 1 {
		t.Errorf("cost(x) = [%d, %d], want [1, 1]", c.Min, c.Max)
	}
	c = EstimateCost(plan(t, "a.b.c"))
	if c.Min != 1 || c.Max != 1 {
		t.Errorf("cost(a.b.c) = [%d, %d], want [1, 1]", c.Min, c.Max)
	}
}

func TestCostCall(t *testing.T) {
	c := EstimateCost(plan(t, "1 + 2"))
	if c.Min != 1 || c.Max != 1 {
		t.Errorf("cost(1 + 2) = [%d, %d], want [1, 1]", c.Min, c.Max)
	}
	c = EstimateCost(plan(t, "x + 1"))
	if c.Min != 2 || c.Max != 2 {
		t.Errorf("cost(x + 1) = [%d, %d], want [2, 2]", c.Min, c.Max)
	}
}

func TestCostConditional(t *testing.T) {
	// Guard plus the cheaper arm at minimum, the dearer at maximum.
	c := EstimateCost(plan(t, "x ? y + 1 : 0"))
	if c.Min != 1 || c.Max != 3 {
		t.Errorf("cost(ternary) = [%d, %d], want [1, 3]", c.Min, c.Max)
	}
}

func TestCostDynamicComprehensionSaturates(t *testing.T) {
	c := EstimateCost(plan(t, "xs.all(x, x > 0)"))
	if c.Max != math.MaxInt64 {
		t.Errorf("dynamic fold max = %d, want saturation", c.Max)
	}
}

func TestCostConstantComprehensionBounded(t *testing.T) {
	c := EstimateCost(plan(t, "[1, 2, 3].all(x, x > 0)", Optimize()))
	if c.Max == math.MaxInt64 {
		t.Error("constant-range fold must not saturate")
	}
	if c.Min <= 0 {
		t.Errorf("constant-range fold min = %d, want positive", c.Min)
	}
}

func TestCostEstimateDoesNotAffectResults(t *testing.T) {
	i := plan(t, "[1, 2].map(x, x * 2) == [2, 4]")
	before := i.Eval(EmptyActivation())
	_ = EstimateCost(i)
	after := i.Eval(EmptyActivation())
	if before != after {
		t.Errorf("cost estimation changed results: %v vs %v", before, after)
	}
}
