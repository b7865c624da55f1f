// Package operators names the built-in CEL operator functions. The
// mangled forms keep operator overloads out of the identifier
// namespace; names prefixed with '@' are internal functions introduced
// by macro expansion and cannot be written in source.
package operators

// Operator function names.
const (
	Conditional   = "_?_:_"
	LogicalAnd    = "_&&_"
	LogicalOr     = "_||_"
	LogicalNot    = "!_"
	Equals        = "_==_"
	NotEquals     = "_!=_"
	Less          = "_<_"
	LessEquals    = "_<=_"
	Greater       = "_>_"
	GreaterEquals = "_>=_"
	Add           = "_+_"
	Subtract      = "_-_"
	Multiply      = "_*_"
	Divide        = "_/_"
	Modulo        = "_%_"
	Negate        = "-_"
	Index         = "_[_]"
	In            = "@in"

	// NotStrictlyFalse returns true unless its argument is literally
	// false, letting all()/exists() folds continue past errors that
	// short-circuit logic may later absorb.
	NotStrictlyFalse = "@not_strictly_false"
)

var reverse = map[string]string{
	Conditional:   "?:",
	LogicalAnd:    "&&",
	LogicalOr:     "||",
	LogicalNot:    "!",
	Equals:        "==",
	NotEquals:     "!=",
	Less:          "<",
	LessEquals:    "<=",
	Greater:       ">",
	GreaterEquals: ">=",
	Add:           "+",
	Subtract:      "-",
	Multiply:      "*",
	Divide:        "/",
	Modulo:        "%",
	Negate:        "-",
	Index:         "[]",
	In:            "in",
}

// DisplayName returns the source form of an operator function name,
// or the name unchanged when it is not an operator.
func DisplayName(function string) string {
	if d, ok := reverse[function]; ok {
		return d
	}
	return function
}
