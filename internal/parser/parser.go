// Package parser builds the expression tree from CEL source text. The
// parser is a hand-rolled precedence climber over the lexer's token
// stream; macro calls are expanded into the comprehension fold form
// during parsing so the planner never sees them.
package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cwbudde/go-cel/internal/ast"
	"github.com/cwbudde/go-cel/internal/errors"
	"github.com/cwbudde/go-cel/internal/lexer"
	"github.com/cwbudde/go-cel/internal/operators"
	"github.com/cwbudde/go-cel/internal/types"
)

// Binary operator precedence tiers; the ternary sits below all of
// them and unary above.
const (
	precLowest = iota
	precOr
	precAnd
	precRelation
	precAdditive
	precMultiplicative
)

var binaryPrecedence = map[lexer.TokenType]int{
	lexer.OR:       precOr,
	lexer.AND:      precAnd,
	lexer.EQ:       precRelation,
	lexer.NE:       precRelation,
	lexer.LT:       precRelation,
	lexer.LE:       precRelation,
	lexer.GT:       precRelation,
	lexer.GE:       precRelation,
	lexer.IN:       precRelation,
	lexer.PLUS:     precAdditive,
	lexer.MINUS:    precAdditive,
	lexer.ASTERISK: precMultiplicative,
	lexer.SLASH:    precMultiplicative,
	lexer.PERCENT:  precMultiplicative,
}

var binaryFunction = map[lexer.TokenType]string{
	lexer.OR:       operators.LogicalOr,
	lexer.AND:      operators.LogicalAnd,
	lexer.EQ:       operators.Equals,
	lexer.NE:       operators.NotEquals,
	lexer.LT:       operators.Less,
	lexer.LE:       operators.LessEquals,
	lexer.GT:       operators.Greater,
	lexer.GE:       operators.GreaterEquals,
	lexer.IN:       operators.In,
	lexer.PLUS:     operators.Add,
	lexer.MINUS:    operators.Subtract,
	lexer.ASTERISK: operators.Multiply,
	lexer.SLASH:    operators.Divide,
	lexer.PERCENT:  operators.Modulo,
}

// Parser consumes a token stream and produces an expression tree with
// monotonically assigned node ids.
type Parser struct {
	tokens []lexer.Token
	pos    int
	source string
	nextID int64
	errs   []*errors.ParseError
}

// Parse scans and parses a source expression. On failure the returned
// errors carry positions into the source text.
func Parse(source string) (*ast.AST, []*errors.ParseError) {
	p := &Parser{
		tokens: lexer.New(source).Tokens(),
		source: source,
	}
	expr := p.parseExpr()
	if p.peek().Type != lexer.EOF {
		p.errorf(p.peek().Pos, "unexpected token %q after expression", p.peek().Literal)
	}
	if len(p.errs) > 0 {
		return nil, p.errs
	}
	return &ast.AST{Expr: expr}, nil
}

// Errors returns the accumulated parse errors.
func (p *Parser) Errors() []*errors.ParseError {
	return p.errs
}

func (p *Parser) id() int64 {
	p.nextID++
	return p.nextID
}

func (p *Parser) peek() lexer.Token {
	return p.tokens[p.pos]
}

func (p *Parser) advance() lexer.Token {
	tok := p.tokens[p.pos]
	if tok.Type != lexer.EOF {
		p.pos++
	}
	return tok
}

func (p *Parser) match(tt lexer.TokenType) bool {
	if p.peek().Type == tt {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) expect(tt lexer.TokenType, context string) lexer.Token {
	tok := p.peek()
	if tok.Type != tt {
		p.errorf(tok.Pos, "expected %s, found %q", context, tok.Literal)
		return tok
	}
	return p.advance()
}

func (p *Parser) errorf(pos lexer.Position, format string, args ...any) {
	p.errs = append(p.errs, errors.NewParseError(pos, fmt.Sprintf(format, args...), p.source))
}

// parseExpr parses a full expression including the ternary, which is
// right-associative.
func (p *Parser) parseExpr() ast.Expr {
	cond := p.parseBinary(precLowest + 1)
	if !p.match(lexer.QUESTION) {
		return cond
	}
	truthy := p.parseExpr()
	p.expect(lexer.COLON, "':' in conditional")
	falsy := p.parseExpr()
	return &ast.Call{
		NodeID:   p.id(),
		Function: operators.Conditional,
		Args:     []ast.Expr{cond, truthy, falsy},
	}
}

func (p *Parser) parseBinary(minPrec int) ast.Expr {
	left := p.parseUnary()
	for {
		tok := p.peek()
		prec, ok := binaryPrecedence[tok.Type]
		if !ok || prec < minPrec {
			return left
		}
		p.advance()
		right := p.parseBinary(prec + 1)
		left = &ast.Call{
			NodeID:   p.id(),
			Function: binaryFunction[tok.Type],
			Args:     []ast.Expr{left, right},
		}
	}
}

func (p *Parser) parseUnary() ast.Expr {
	switch p.peek().Type {
	case lexer.BANG:
		p.advance()
		operand := p.parseUnary()
		return &ast.Call{NodeID: p.id(), Function: operators.LogicalNot, Args: []ast.Expr{operand}}
	case lexer.MINUS:
		p.advance()
		// Fold the sign into numeric literals so that MinInt64 parses.
		if lit := p.maybeNegatedLiteral(); lit != nil {
			return lit
		}
		operand := p.parseUnary()
		return &ast.Call{NodeID: p.id(), Function: operators.Negate, Args: []ast.Expr{operand}}
	}
	return p.parsePostfix(p.parsePrimary())
}

func (p *Parser) maybeNegatedLiteral() ast.Expr {
	tok := p.peek()
	switch tok.Type {
	case lexer.INT:
		p.advance()
		i, err := strconv.ParseInt("-"+tok.Literal, 10, 64)
		if err != nil {
			p.errorf(tok.Pos, "invalid int literal %q", tok.Literal)
			return &ast.Const{NodeID: p.id(), Val: types.IntZero}
		}
		return &ast.Const{NodeID: p.id(), Val: types.Int(i)}
	case lexer.FLOAT:
		p.advance()
		f, err := strconv.ParseFloat(tok.Literal, 64)
		if err != nil {
			p.errorf(tok.Pos, "invalid double literal %q", tok.Literal)
			return &ast.Const{NodeID: p.id(), Val: types.Double(0)}
		}
		return &ast.Const{NodeID: p.id(), Val: types.Double(-f)}
	}
	return nil
}

// parsePostfix handles member selection, receiver calls, macro
// expansion, and indexing.
func (p *Parser) parsePostfix(expr ast.Expr) ast.Expr {
	for {
		switch {
		case p.match(lexer.DOT):
			field := p.expect(lexer.IDENT, "field name after '.'")
			if p.peek().Type == lexer.LPAREN {
				p.advance()
				args := p.parseExprList(lexer.RPAREN)
				p.expect(lexer.RPAREN, "')' after arguments")
				if m := p.maybeExpandMacro(field, expr, args); m != nil {
					expr = m
				} else {
					expr = &ast.Call{NodeID: p.id(), Function: field.Literal, Target: expr, Args: args}
				}
			} else {
				expr = &ast.Select{NodeID: p.id(), Operand: expr, Field: field.Literal}
			}
		case p.match(lexer.LBRACKET):
			index := p.parseExpr()
			p.expect(lexer.RBRACKET, "']' after index")
			expr = &ast.Call{NodeID: p.id(), Function: operators.Index, Args: []ast.Expr{expr, index}}
		default:
			return expr
		}
	}
}

func (p *Parser) parsePrimary() ast.Expr {
	tok := p.peek()
	switch tok.Type {
	case lexer.INT:
		p.advance()
		i, err := strconv.ParseInt(tok.Literal, 10, 64)
		if err != nil {
			p.errorf(tok.Pos, "invalid int literal %q", tok.Literal)
			return &ast.Const{NodeID: p.id(), Val: types.IntZero}
		}
		return &ast.Const{NodeID: p.id(), Val: types.Int(i)}
	case lexer.UINT:
		p.advance()
		u, err := strconv.ParseUint(tok.Literal, 10, 64)
		if err != nil {
			p.errorf(tok.Pos, "invalid uint literal %q", tok.Literal)
			return &ast.Const{NodeID: p.id(), Val: types.UintZero}
		}
		return &ast.Const{NodeID: p.id(), Val: types.Uint(u)}
	case lexer.FLOAT:
		p.advance()
		f, err := strconv.ParseFloat(tok.Literal, 64)
		if err != nil {
			p.errorf(tok.Pos, "invalid double literal %q", tok.Literal)
			return &ast.Const{NodeID: p.id(), Val: types.Double(0)}
		}
		return &ast.Const{NodeID: p.id(), Val: types.Double(f)}
	case lexer.STRING:
		p.advance()
		return &ast.Const{NodeID: p.id(), Val: types.String(tok.Literal)}
	case lexer.BYTES:
		p.advance()
		return &ast.Const{NodeID: p.id(), Val: types.Bytes(tok.Literal)}
	case lexer.TRUE:
		p.advance()
		return &ast.Const{NodeID: p.id(), Val: types.True}
	case lexer.FALSE:
		p.advance()
		return &ast.Const{NodeID: p.id(), Val: types.False}
	case lexer.NULL:
		p.advance()
		return &ast.Const{NodeID: p.id(), Val: types.NullValue}
	case lexer.IDENT:
		return p.parseIdentOrCall()
	case lexer.LPAREN:
		p.advance()
		expr := p.parseExpr()
		p.expect(lexer.RPAREN, "')' after expression")
		return expr
	case lexer.LBRACKET:
		p.advance()
		elems := p.parseExprList(lexer.RBRACKET)
		p.expect(lexer.RBRACKET, "']' after list elements")
		return &ast.CreateList{NodeID: p.id(), Elements: elems}
	case lexer.LBRACE:
		p.advance()
		return p.parseMapLiteral()
	}
	p.errorf(tok.Pos, "unexpected token %q", tok.Literal)
	p.advance()
	return &ast.Const{NodeID: p.id(), Val: types.NullValue}
}

// parseIdentOrCall parses a bare identifier, a global function call,
// the has() macro, or a struct literal with a qualified type name.
func (p *Parser) parseIdentOrCall() ast.Expr {
	tok := p.advance()
	name := tok.Literal

	if p.peek().Type == lexer.LPAREN {
		p.advance()
		args := p.parseExprList(lexer.RPAREN)
		p.expect(lexer.RPAREN, "')' after arguments")
		if name == "has" {
			return p.expandHasMacro(tok, args)
		}
		return &ast.Call{NodeID: p.id(), Function: name, Args: args}
	}

	// A dotted name followed by '{' is a struct literal type name.
	if p.peek().Type == lexer.LBRACE {
		p.advance()
		return p.parseStructLiteral(name)
	}
	if p.peek().Type == lexer.DOT {
		if qualified, fields, ok := p.maybeStructTypeName(name); ok {
			return p.parseStructLiteral(qualified + fields)
		}
	}

	return &ast.Ident{NodeID: p.id(), Name: name}
}

// maybeStructTypeName looks ahead for the `.ident(.ident)* '{'` shape
// that distinguishes a struct literal from plain selection. The token
// cursor is only consumed on a positive match.
func (p *Parser) maybeStructTypeName(head string) (string, string, bool) {
	save := p.pos
	var parts []string
	for p.peek().Type == lexer.DOT {
		p.advance()
		if p.peek().Type != lexer.IDENT {
			p.pos = save
			return "", "", false
		}
		parts = append(parts, p.advance().Literal)
	}
	if p.peek().Type != lexer.LBRACE {
		p.pos = save
		return "", "", false
	}
	p.advance()
	return head, "." + strings.Join(parts, "."), true
}

func (p *Parser) parseStructLiteral(typeName string) ast.Expr {
	var fields []ast.Field
	for p.peek().Type != lexer.RBRACE && p.peek().Type != lexer.EOF {
		name := p.expect(lexer.IDENT, "field name in struct literal")
		p.expect(lexer.COLON, "':' after field name")
		val := p.parseExpr()
		fields = append(fields, ast.Field{Name: name.Literal, Value: val})
		if !p.match(lexer.COMMA) {
			break
		}
	}
	p.expect(lexer.RBRACE, "'}' after struct fields")
	return &ast.CreateStruct{NodeID: p.id(), TypeName: typeName, Fields: fields}
}

func (p *Parser) parseMapLiteral() ast.Expr {
	var entries []ast.Entry
	for p.peek().Type != lexer.RBRACE && p.peek().Type != lexer.EOF {
		key := p.parseExpr()
		p.expect(lexer.COLON, "':' after map key")
		val := p.parseExpr()
		entries = append(entries, ast.Entry{Key: key, Value: val})
		if !p.match(lexer.COMMA) {
			break
		}
	}
	p.expect(lexer.RBRACE, "'}' after map entries")
	return &ast.CreateMap{NodeID: p.id(), Entries: entries}
}

func (p *Parser) parseExprList(end lexer.TokenType) []ast.Expr {
	var exprs []ast.Expr
	for p.peek().Type != end && p.peek().Type != lexer.EOF {
		exprs = append(exprs, p.parseExpr())
		if !p.match(lexer.COMMA) {
			break
		}
	}
	return exprs
}
