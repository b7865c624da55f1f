package interp

import (
	"github.com/cwbudde/go-cel/internal/operators"
	"github.com/cwbudde/go-cel/internal/types"
)

// StandardOverloads returns the built-in function table: trait-guarded
// operators, size, membership, the type conversions, and the string
// and time parsers. The non-strict operators (&&, ||, ?:) are planner
// built-ins and never appear here.
func StandardOverloads() []*Overload {
	return []*Overload{
		{Operator: operators.Add,
			OperandTrait: types.AdderTrait,
			Binary: func(lhs, rhs types.Value) types.Value {
				return lhs.(types.Adder).Add(rhs)
			}},
		{Operator: operators.Subtract,
			OperandTrait: types.SubtractorTrait,
			Binary: func(lhs, rhs types.Value) types.Value {
				return lhs.(types.Subtractor).Subtract(rhs)
			}},
		{Operator: operators.Multiply,
			OperandTrait: types.MultiplierTrait,
			Binary: func(lhs, rhs types.Value) types.Value {
				return lhs.(types.Multiplier).Multiply(rhs)
			}},
		{Operator: operators.Divide,
			OperandTrait: types.DividerTrait,
			Binary: func(lhs, rhs types.Value) types.Value {
				return lhs.(types.Divider).Divide(rhs)
			}},
		{Operator: operators.Modulo,
			OperandTrait: types.ModderTrait,
			Binary: func(lhs, rhs types.Value) types.Value {
				return lhs.(types.Modder).Modulo(rhs)
			}},
		{Operator: operators.Negate,
			OperandTrait: types.NegaterTrait,
			Unary: func(v types.Value) types.Value {
				if types.BoolType == v.Type() {
					return types.NoSuchOverloadErr()
				}
				return v.(types.Negater).Negate()
			}},
		{Operator: operators.LogicalNot,
			OperandTrait: types.NegaterTrait,
			Unary: func(v types.Value) types.Value {
				b, ok := v.(types.Bool)
				if !ok {
					return types.NoSuchOverloadErr()
				}
				return b.Negate()
			}},

		{Operator: operators.Less,
			OperandTrait: types.ComparerTrait,
			Binary:       compareOp(func(c types.Int) bool { return c == types.IntNegOne })},
		{Operator: operators.LessEquals,
			OperandTrait: types.ComparerTrait,
			Binary:       compareOp(func(c types.Int) bool { return c != types.IntOne })},
		{Operator: operators.Greater,
			OperandTrait: types.ComparerTrait,
			Binary:       compareOp(func(c types.Int) bool { return c == types.IntOne })},
		{Operator: operators.GreaterEquals,
			OperandTrait: types.ComparerTrait,
			Binary:       compareOp(func(c types.Int) bool { return c != types.IntNegOne })},

		{Operator: operators.In, Binary: inAggregate},
		{Operator: operators.Index,
			OperandTrait: types.IndexerTrait,
			Binary: func(lhs, rhs types.Value) types.Value {
				return lhs.(types.Indexer).Get(rhs)
			}},

		{Operator: "size",
			OperandTrait: types.SizerTrait,
			Unary: func(v types.Value) types.Value {
				return v.(types.Sizer).Size()
			}},

		// Type conversion functions.
		{Operator: "int", Unary: convertOp(types.IntType)},
		{Operator: "uint", Unary: convertOp(types.UintType)},
		{Operator: "double", Unary: convertOp(types.DoubleType)},
		{Operator: "string", Unary: convertOp(types.StringType)},
		{Operator: "bytes", Unary: convertOp(types.BytesType)},
		{Operator: "bool", Unary: convertOp(types.BoolType)},
		{Operator: "duration", Unary: convertOp(types.DurationType)},
		{Operator: "timestamp", Unary: convertOp(types.TimestampType)},
		{Operator: "dyn", Unary: func(v types.Value) types.Value { return v }},

		// String member functions; the implementations live on the
		// string variant behind the Receiver trait.
		{Operator: "contains", OperandTrait: types.ReceiverTrait},
		{Operator: "startsWith", OperandTrait: types.ReceiverTrait},
		{Operator: "endsWith", OperandTrait: types.ReceiverTrait},
		{Operator: "matches",
			OperandTrait: types.MatcherTrait,
			Binary: func(lhs, rhs types.Value) types.Value {
				return lhs.(types.Matcher).Match(rhs)
			}},

		// Internal macro support: continue folding unless the
		// accumulator is literally false.
		{Operator: operators.NotStrictlyFalse,
			NonStrict: true,
			Unary: func(v types.Value) types.Value {
				if b, ok := v.(types.Bool); ok {
					return b
				}
				return types.True
			}},
	}
}

// standardOverloadAliases maps checker-issued overload ids onto the
// shared trait-dispatched implementations.
var standardOverloadAliases = map[string]string{
	"add_int64":              operators.Add,
	"add_uint64":             operators.Add,
	"add_double":             operators.Add,
	"add_string":             operators.Add,
	"add_bytes":              operators.Add,
	"add_list":               operators.Add,
	"add_duration_duration":  operators.Add,
	"add_timestamp_duration": operators.Add,
	"add_duration_timestamp": operators.Add,
	"subtract_int64":         operators.Subtract,
	"subtract_uint64":      operators.Subtract,
	"subtract_double":      operators.Subtract,
	"multiply_int64":       operators.Multiply,
	"multiply_uint64":      operators.Multiply,
	"multiply_double":      operators.Multiply,
	"divide_int64":         operators.Divide,
	"divide_uint64":        operators.Divide,
	"divide_double":        operators.Divide,
	"modulo_int64":         operators.Modulo,
	"modulo_uint64":        operators.Modulo,
	"negate_int64":         operators.Negate,
	"negate_double":        operators.Negate,
	"logical_not":          operators.LogicalNot,
	"less_int64":           operators.Less,
	"less_equals_int64":    operators.LessEquals,
	"greater_int64":        operators.Greater,
	"greater_equals_int64": operators.GreaterEquals,
	"in_list":              operators.In,
	"in_map":               operators.In,
	"index_list":           operators.Index,
	"index_map":            operators.Index,
	"size_string":          "size",
	"size_bytes":           "size",
	"size_list":            "size",
	"size_map":             "size",
	"contains_string":      "contains",
	"starts_with_string":   "startsWith",
	"ends_with_string":     "endsWith",
	"matches_string":       "matches",
}

// NewStandardDispatcher creates a dispatcher loaded with the standard
// overloads and their checker overload-id aliases.
func NewStandardDispatcher() (Dispatcher, error) {
	d := NewDispatcher()
	if err := d.Add(StandardOverloads()...); err != nil {
		return nil, err
	}
	dd := d.(*defaultDispatcher)
	for alias, op := range standardOverloadAliases {
		if impl, found := dd.overloads[op]; found {
			dd.overloads[alias] = impl
		}
	}
	return d, nil
}

func compareOp(test func(types.Int) bool) BinaryOp {
	return func(lhs, rhs types.Value) types.Value {
		c := lhs.(types.Comparer).Compare(rhs)
		cmp, ok := c.(types.Int)
		if !ok {
			return c
		}
		return types.Bool(test(cmp))
	}
}

func convertOp(target *types.Type) UnaryOp {
	return func(v types.Value) types.Value {
		return v.ConvertToType(target)
	}
}

// inAggregate implements the 'in' operator; the container is the
// right-hand operand.
func inAggregate(lhs, rhs types.Value) types.Value {
	if c, ok := rhs.(types.Container); ok {
		return c.Contains(lhs)
	}
	return types.ValOrErr(rhs, "no such overload")
}
