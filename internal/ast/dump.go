package ast

import (
	"fmt"
	"strings"
)

// Dump renders the tree as an indented listing for debugging and the
// CLI's parse command.
func Dump(e Expr) string {
	var sb strings.Builder
	dump(&sb, e, 0)
	return sb.String()
}

func dump(sb *strings.Builder, e Expr, depth int) {
	indent := strings.Repeat("  ", depth)
	switch e := e.(type) {
	case *Const:
		fmt.Fprintf(sb, "%sConst#%d %v\n", indent, e.NodeID, e.Val)
	case *Ident:
		fmt.Fprintf(sb, "%sIdent#%d %s\n", indent, e.NodeID, e.Name)
	case *Select:
		op := "Select"
		if e.TestOnly {
			op = "Select(test)"
		}
		fmt.Fprintf(sb, "%s%s#%d .%s\n", indent, op, e.NodeID, e.Field)
		dump(sb, e.Operand, depth+1)
	case *Call:
		fmt.Fprintf(sb, "%sCall#%d %s\n", indent, e.NodeID, e.Function)
		if e.Target != nil {
			dump(sb, e.Target, depth+1)
		}
		for _, a := range e.Args {
			dump(sb, a, depth+1)
		}
	case *CreateList:
		fmt.Fprintf(sb, "%sList#%d\n", indent, e.NodeID)
		for _, el := range e.Elements {
			dump(sb, el, depth+1)
		}
	case *CreateMap:
		fmt.Fprintf(sb, "%sMap#%d\n", indent, e.NodeID)
		for _, en := range e.Entries {
			dump(sb, en.Key, depth+1)
			dump(sb, en.Value, depth+2)
		}
	case *CreateStruct:
		fmt.Fprintf(sb, "%sStruct#%d %s\n", indent, e.NodeID, e.TypeName)
		for _, f := range e.Fields {
			fmt.Fprintf(sb, "%s  .%s:\n", indent, f.Name)
			dump(sb, f.Value, depth+2)
		}
	case *Comprehension:
		fmt.Fprintf(sb, "%sComprehension#%d iter=%s accu=%s\n", indent, e.NodeID, e.IterVar, e.AccuVar)
		dump(sb, e.IterRange, depth+1)
		dump(sb, e.AccuInit, depth+1)
		dump(sb, e.LoopCond, depth+1)
		dump(sb, e.LoopStep, depth+1)
		dump(sb, e.Result, depth+1)
	default:
		fmt.Fprintf(sb, "%s<unknown node %T>\n", indent, e)
	}
}
