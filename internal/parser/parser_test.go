package parser

import (
	"testing"

	"github.com/cwbudde/go-cel/internal/ast"
	"github.com/cwbudde/go-cel/internal/operators"
	"github.com/cwbudde/go-cel/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, source string) ast.Expr {
	t.Helper()
	parsed, errs := Parse(source)
	require.Empty(t, errs, "parse errors for %q", source)
	return parsed.Expr
}

func TestParseLiterals(t *testing.T) {
	tests := []struct {
		source string
		want   types.Value
	}{
		{"42", types.Int(42)},
		{"42u", types.Uint(42)},
		{"1.5", types.Double(1.5)},
		{`"hi"`, types.String("hi")},
		{`b"raw"`, types.Bytes("raw")},
		{"true", types.True},
		{"false", types.False},
		{"null", types.NullValue},
		{"-7", types.Int(-7)},
		{"-9223372036854775808", types.Int(-9223372036854775808)},
		{"-1.5", types.Double(-1.5)},
	}
	for _, tt := range tests {
		expr := mustParse(t, tt.source)
		c, ok := expr.(*ast.Const)
		require.True(t, ok, "%q parsed to %T", tt.source, expr)
		assert.Equal(t, types.True, c.Val.Equal(tt.want), "%q parsed to %v", tt.source, c.Val)
	}
}

func TestParsePrecedence(t *testing.T) {
	expr := mustParse(t, "1 + 2 * 3")
	add, ok := expr.(*ast.Call)
	require.True(t, ok)
	assert.Equal(t, operators.Add, add.Function)
	mul, ok := add.Args[1].(*ast.Call)
	require.True(t, ok)
	assert.Equal(t, operators.Multiply, mul.Function)
}

func TestParseTernary(t *testing.T) {
	expr := mustParse(t, "a ? b : c ? d : e")
	cond, ok := expr.(*ast.Call)
	require.True(t, ok)
	require.Equal(t, operators.Conditional, cond.Function)
	require.Len(t, cond.Args, 3)
	// Right associative: the else arm is the nested conditional.
	nested, ok := cond.Args[2].(*ast.Call)
	require.True(t, ok)
	assert.Equal(t, operators.Conditional, nested.Function)
}

func TestParseSelectChain(t *testing.T) {
	expr := mustParse(t, "a.b.c")
	sel, ok := expr.(*ast.Select)
	require.True(t, ok)
	assert.Equal(t, "c", sel.Field)
	inner, ok := sel.Operand.(*ast.Select)
	require.True(t, ok)
	assert.Equal(t, "b", inner.Field)
	id, ok := inner.Operand.(*ast.Ident)
	require.True(t, ok)
	assert.Equal(t, "a", id.Name)
}

func TestParseIndexAndCall(t *testing.T) {
	expr := mustParse(t, `m["key"]`)
	idx, ok := expr.(*ast.Call)
	require.True(t, ok)
	assert.Equal(t, operators.Index, idx.Function)

	expr = mustParse(t, "size([1, 2])")
	call, ok := expr.(*ast.Call)
	require.True(t, ok)
	assert.Equal(t, "size", call.Function)
	assert.Nil(t, call.Target)

	expr = mustParse(t, `"abc".contains("b")`)
	recv, ok := expr.(*ast.Call)
	require.True(t, ok)
	assert.Equal(t, "contains", recv.Function)
	assert.NotNil(t, recv.Target)
}

func TestParseInOperator(t *testing.T) {
	expr := mustParse(t, `headers.ip in ["10.0.1.4", "10.0.1.5"]`)
	in, ok := expr.(*ast.Call)
	require.True(t, ok)
	assert.Equal(t, operators.In, in.Function)
	_, ok = in.Args[1].(*ast.CreateList)
	assert.True(t, ok)
}

func TestParseMapLiteral(t *testing.T) {
	expr := mustParse(t, `{"a": 1, "b": 2}`)
	m, ok := expr.(*ast.CreateMap)
	require.True(t, ok)
	require.Len(t, m.Entries, 2)
}

func TestParseStructLiteral(t *testing.T) {
	expr := mustParse(t, `test.Request{path: "/admin", port: 8080}`)
	st, ok := expr.(*ast.CreateStruct)
	require.True(t, ok)
	assert.Equal(t, "test.Request", st.TypeName)
	require.Len(t, st.Fields, 2)
	assert.Equal(t, "path", st.Fields[0].Name)
}

func TestParseHasMacro(t *testing.T) {
	expr := mustParse(t, "has(msg.field)")
	sel, ok := expr.(*ast.Select)
	require.True(t, ok)
	assert.True(t, sel.TestOnly)
	assert.Equal(t, "field", sel.Field)

	_, errs := Parse("has(42)")
	assert.NotEmpty(t, errs, "has() over a non-select must fail")
}

func TestParseMacroExpansions(t *testing.T) {
	tests := []struct {
		source   string
		accuInit types.Value
	}{
		{"[1].all(x, x > 0)", types.True},
		{"[1].exists(x, x > 0)", types.False},
		{"[1].exists_one(x, x > 0)", types.IntZero},
	}
	for _, tt := range tests {
		expr := mustParse(t, tt.source)
		fold, ok := expr.(*ast.Comprehension)
		require.True(t, ok, "%q did not expand to a comprehension", tt.source)
		assert.Equal(t, "x", fold.IterVar)
		assert.Equal(t, ast.AccumulatorName, fold.AccuVar)
		init, ok := fold.AccuInit.(*ast.Const)
		require.True(t, ok)
		assert.Equal(t, types.True, init.Val.Equal(tt.accuInit))
	}

	expr := mustParse(t, "[1, 2].map(x, x * 2)")
	fold, ok := expr.(*ast.Comprehension)
	require.True(t, ok)
	_, ok = fold.AccuInit.(*ast.CreateList)
	assert.True(t, ok, "map accumulator starts as an empty list")

	expr = mustParse(t, "[1, 2].filter(x, x > 1)")
	fold, ok = expr.(*ast.Comprehension)
	require.True(t, ok)
	step, ok := fold.LoopStep.(*ast.Call)
	require.True(t, ok)
	assert.Equal(t, operators.Conditional, step.Function)
}

func TestParseReceiverMacroArgValidation(t *testing.T) {
	_, errs := Parse("[1].all(1, x > 0)")
	assert.NotEmpty(t, errs, "non-identifier iteration variable must fail")
	_, errs = Parse("[1].all(x)")
	assert.NotEmpty(t, errs, "wrong arity must fail")
}

func TestParseErrors(t *testing.T) {
	for _, src := range []string{"1 +", "(1", "[1, 2", "{1: 2", "a.b &&", "1 2"} {
		_, errs := Parse(src)
		assert.NotEmpty(t, errs, "expected parse errors for %q", src)
	}
}

func TestNodeIDsAreUnique(t *testing.T) {
	parsed := mustParse(t, "[1, 2, 3].map(x, x * 2) == [2, 4, 6]")
	seen := map[int64]bool{}
	ast.Walk(parsed, func(e ast.Expr) {
		assert.False(t, seen[e.ID()], "duplicate node id %d", e.ID())
		seen[e.ID()] = true
	})
}

func TestParseUnaryOperators(t *testing.T) {
	expr := mustParse(t, "!true")
	not, ok := expr.(*ast.Call)
	require.True(t, ok)
	assert.Equal(t, operators.LogicalNot, not.Function)

	expr = mustParse(t, "-x")
	neg, ok := expr.(*ast.Call)
	require.True(t, ok)
	assert.Equal(t, operators.Negate, neg.Function)
}
