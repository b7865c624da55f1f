package parser

import (
	"github.com/cwbudde/go-cel/internal/ast"
	"github.com/cwbudde/go-cel/internal/lexer"
	"github.com/cwbudde/go-cel/internal/operators"
	"github.com/cwbudde/go-cel/internal/types"
)

// Macro expansion lowers the list/map macros into the comprehension
// fold form at parse time. The fold shape (init, cond, step, result)
// covers every macro, so the planner and evaluator never carry
// macro-specific logic.

// expandHasMacro rewrites has(e.f) into a test-only select.
func (p *Parser) expandHasMacro(tok lexer.Token, args []ast.Expr) ast.Expr {
	if len(args) != 1 {
		p.errorf(tok.Pos, "has() requires exactly one argument")
		return &ast.Const{NodeID: p.id(), Val: types.False}
	}
	sel, ok := args[0].(*ast.Select)
	if !ok {
		p.errorf(tok.Pos, "invalid argument to has() macro: field selection required")
		return &ast.Const{NodeID: p.id(), Val: types.False}
	}
	sel.TestOnly = true
	return sel
}

// maybeExpandMacro expands a receiver-style macro call, returning nil
// when the call is an ordinary member function invocation.
func (p *Parser) maybeExpandMacro(fn lexer.Token, target ast.Expr, args []ast.Expr) ast.Expr {
	switch fn.Literal {
	case "all", "exists", "exists_one", "map", "filter":
	default:
		return nil
	}
	if len(args) != 2 {
		p.errorf(fn.Pos, "%s() requires exactly two arguments", fn.Literal)
		return &ast.Const{NodeID: p.id(), Val: types.False}
	}
	iter, ok := args[0].(*ast.Ident)
	if !ok {
		p.errorf(fn.Pos, "%s() first argument must be an iteration variable", fn.Literal)
		return &ast.Const{NodeID: p.id(), Val: types.False}
	}

	switch fn.Literal {
	case "all":
		return p.fold(iter.Name, target,
			p.boolConst(true),
			p.call(operators.NotStrictlyFalse, p.accuIdent()),
			p.call(operators.LogicalAnd, p.accuIdent(), args[1]),
			p.accuIdent())
	case "exists":
		return p.fold(iter.Name, target,
			p.boolConst(false),
			p.call(operators.NotStrictlyFalse, p.call(operators.LogicalNot, p.accuIdent())),
			p.call(operators.LogicalOr, p.accuIdent(), args[1]),
			p.accuIdent())
	case "exists_one":
		return p.fold(iter.Name, target,
			p.intConst(0),
			p.boolConst(true),
			p.call(operators.Conditional,
				args[1],
				p.call(operators.Add, p.accuIdent(), p.intConst(1)),
				p.accuIdent()),
			p.call(operators.Equals, p.accuIdent(), p.intConst(1)))
	case "map":
		return p.fold(iter.Name, target,
			p.emptyList(),
			p.boolConst(true),
			p.call(operators.Add, p.accuIdent(), p.singletonList(args[1])),
			p.accuIdent())
	case "filter":
		return p.fold(iter.Name, target,
			p.emptyList(),
			p.boolConst(true),
			p.call(operators.Conditional,
				args[1],
				p.call(operators.Add, p.accuIdent(), p.singletonList(p.ident(iter.Name))),
				p.accuIdent()),
			p.accuIdent())
	}
	return nil
}

func (p *Parser) fold(iterVar string, iterRange, accuInit, cond, step, result ast.Expr) ast.Expr {
	return &ast.Comprehension{
		NodeID:    p.id(),
		IterVar:   iterVar,
		IterRange: iterRange,
		AccuVar:   ast.AccumulatorName,
		AccuInit:  accuInit,
		LoopCond:  cond,
		LoopStep:  step,
		Result:    result,
	}
}

func (p *Parser) accuIdent() ast.Expr {
	return &ast.Ident{NodeID: p.id(), Name: ast.AccumulatorName}
}

func (p *Parser) ident(name string) ast.Expr {
	return &ast.Ident{NodeID: p.id(), Name: name}
}

func (p *Parser) call(function string, args ...ast.Expr) ast.Expr {
	return &ast.Call{NodeID: p.id(), Function: function, Args: args}
}

func (p *Parser) boolConst(b bool) ast.Expr {
	return &ast.Const{NodeID: p.id(), Val: types.Bool(b)}
}

func (p *Parser) intConst(i int64) ast.Expr {
	return &ast.Const{NodeID: p.id(), Val: types.Int(i)}
}

func (p *Parser) emptyList() ast.Expr {
	return &ast.CreateList{NodeID: p.id()}
}

func (p *Parser) singletonList(elem ast.Expr) ast.Expr {
	return &ast.CreateList{NodeID: p.id(), Elements: []ast.Expr{elem}}
}
