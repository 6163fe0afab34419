// Copyright © 2024 The Brook authors

package rdparser

import (
	"fmt"
	"io"
	"strconv"

	"github.com/brooklang/brook/brook"
	"github.com/brooklang/brook/parser/lexer"
	"github.com/brooklang/brook/parser/token"
)

type reader struct {
}

// NewReader returns a brook.Reader to use in a brook.Runtime.
func NewReader() brook.Reader {
	return &reader{}
}

// Read implements brook.Reader.
func (*reader) Read(name string, r io.Reader) ([]brook.Expr, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	toks, err := lexer.Lex(name, src)
	if err != nil {
		return nil, err
	}
	return ParseProgram(toks)
}

// ParseProgram parses a sequence of statements separated by semicolons.
// Empty statements are ignored and the final semicolon is optional.
func ParseProgram(toks []*token.Token) ([]brook.Expr, error) {
	var exprs []brook.Expr
	start := 0
	for i := 0; i <= len(toks); i++ {
		if i < len(toks) && toks[i].Type != token.SEMI {
			continue
		}
		if i > start {
			expr, err := ParseStatement(toks[start:i])
			if err != nil {
				return nil, err
			}
			exprs = append(exprs, expr)
		}
		start = i + 1
	}
	return exprs, nil
}

// ParseStatement parses a single statement, an assignment `name <- expr` or
// an expression.  All tokens must be consumed.
func ParseStatement(toks []*token.Token) (brook.Expr, error) {
	if len(toks) == 0 {
		return nil, &brook.ParseError{Msg: "empty statement"}
	}
	if len(toks) >= 2 && toks[0].Type == token.IDENT && toks[1].Type == token.ASSIGN {
		if len(toks) == 2 {
			return nil, &brook.ParseError{Source: toks[1].Source, Msg: "missing expression after <-"}
		}
		expr, err := ParseExpression(toks[2:])
		if err != nil {
			return nil, err
		}
		return &brook.Assignment{Name: toks[0].Text, Expr: expr, Source: toks[0].Source}, nil
	}
	return ParseExpression(toks)
}

// ParseExpression parses toks as one expression.  All tokens must be
// consumed.
func ParseExpression(toks []*token.Token) (brook.Expr, error) {
	if len(toks) == 0 {
		return nil, &brook.ParseError{Msg: "missing expression"}
	}
	p := New(toks)
	expr, n := p.parseExpression(0)
	if expr == nil {
		return nil, &brook.ParseError{Source: toks[0].Source, Msg: "unable to parse expression"}
	}
	if n < len(p.rev) {
		tok := p.rev[n]
		return nil, &brook.ParseError{Source: tok.Source, Msg: fmt.Sprintf("unexpected %s", tok)}
	}
	return expr, nil
}

type result struct {
	expr brook.Expr
	next int
}

// Parser is a backtracking parser over a reversed token stream.  Reading the
// stream from its end discovers the rightmost operand of a call first, so
// unparenthesized sequences of operands associate to the right.
//
// Each parse function takes a position in the reversed stream and returns
// the parsed expression and the position following it, or a nil expression
// if the rule does not match.  Parse functions have no side effects other
// than memoization.
type Parser struct {
	rev   []*token.Token
	exprs map[int]result
	paren map[int]result
}

// New returns a Parser for the expression toks.
func New(toks []*token.Token) *Parser {
	rev := make([]*token.Token, len(toks))
	for i, tok := range toks {
		rev[len(toks)-1-i] = tok
	}
	return &Parser{
		rev:   rev,
		exprs: make(map[int]result),
		paren: make(map[int]result),
	}
}

func (p *Parser) peek(pos int) token.Type {
	if pos >= len(p.rev) {
		return token.INVALID
	}
	return p.rev[pos].Type
}

func (p *Parser) parseExpression(pos int) (brook.Expr, int) {
	if r, ok := p.exprs[pos]; ok {
		return r.expr, r.next
	}
	alts := []func(int) (brook.Expr, int){
		p.parseBinaryCall,
		p.parseUnaryCall,
		p.parseNullaryCall,
		p.parseLiteral,
		p.parseArray,
		p.parseParenExpression,
	}
	var expr brook.Expr
	next := pos
	for _, alt := range alts {
		if e, n := alt(pos); e != nil {
			expr, next = e, n
			break
		}
	}
	p.exprs[pos] = result{expr, next}
	return expr, next
}

// parseBinaryCall matches `lhs f rhs`, then `f lhs rhs`.
func (p *Parser) parseBinaryCall(pos int) (brook.Expr, int) {
	rhs, n := p.parseOperand(pos)
	if rhs == nil {
		return nil, pos
	}
	if call, m := p.parseCallee(n); call != nil {
		if lhs, k := p.parseExpression(m); lhs != nil {
			call.Lhs = lhs
			call.Rhs = rhs
			return call, k
		}
	}
	lhs, m := p.parseOperand(n)
	if lhs == nil {
		return nil, pos
	}
	call, k := p.parseCallee(m)
	if call == nil {
		return nil, pos
	}
	call.Lhs = lhs
	call.Rhs = rhs
	return call, k
}

// parseUnaryCall matches `f x`, then `x f`.
func (p *Parser) parseUnaryCall(pos int) (brook.Expr, int) {
	if rhs, n := p.parseOperand(pos); rhs != nil {
		if call, m := p.parseCallee(n); call != nil {
			call.Rhs = rhs
			return call, m
		}
	}
	call, n := p.parseCallee(pos)
	if call == nil {
		return nil, pos
	}
	rhs, m := p.parseExpression(n)
	if rhs == nil {
		return nil, pos
	}
	call.Rhs = rhs
	return call, m
}

func (p *Parser) parseNullaryCall(pos int) (brook.Expr, int) {
	if p.peek(pos) != token.IDENT {
		return nil, pos
	}
	tok := p.rev[pos]
	return &brook.FunctionCall{Name: tok.Text, Source: tok.Source}, pos + 1
}

func (p *Parser) parseLiteral(pos int) (brook.Expr, int) {
	switch p.peek(pos) {
	case token.NUM:
		tok := p.rev[pos]
		x, err := strconv.ParseFloat(tok.Text, 64)
		if err != nil {
			return nil, pos
		}
		return &brook.Literal{Value: brook.Num(x), Source: tok.Source}, pos + 1
	case token.STR:
		tok := p.rev[pos]
		s := tok.Text[1 : len(tok.Text)-1]
		return &brook.Literal{Value: brook.String(s), Source: tok.Source}, pos + 1
	default:
		return nil, pos
	}
}

// parseArray matches `[ expr* ]`, closing bracket first.
func (p *Parser) parseArray(pos int) (brook.Expr, int) {
	if p.peek(pos) != token.BRACE_R {
		return nil, pos
	}
	var members []brook.Expr
	n := pos + 1
	for {
		e, m := p.parseExpression(n)
		if e == nil {
			break
		}
		members = append(members, e)
		n = m
	}
	if p.peek(n) != token.BRACE_L {
		return nil, pos
	}
	for i, j := 0, len(members)-1; i < j; i, j = i+1, j-1 {
		members[i], members[j] = members[j], members[i]
	}
	return &brook.ArrayExpr{Members: members, Source: p.rev[n].Source}, n + 1
}

// parseParenExpression matches `( expr )`, closing paren first.
func (p *Parser) parseParenExpression(pos int) (brook.Expr, int) {
	if r, ok := p.paren[pos]; ok {
		return r.expr, r.next
	}
	expr, next := p.parseParen(pos)
	p.paren[pos] = result{expr, next}
	return expr, next
}

func (p *Parser) parseParen(pos int) (brook.Expr, int) {
	if p.peek(pos) != token.PAREN_R {
		return nil, pos
	}
	expr, n := p.parseExpression(pos + 1)
	if expr == nil || p.peek(n) != token.PAREN_L {
		return nil, pos
	}
	return expr, n + 1
}

// parseOperand matches an expression which can be an operand of a call
// without parentheses.
func (p *Parser) parseOperand(pos int) (brook.Expr, int) {
	operands := []func(int) (brook.Expr, int){
		p.parseLiteral,
		p.parseArray,
		p.parseParenExpression,
		p.parseNullaryCall,
	}
	for _, fn := range operands {
		if e, n := fn(pos); e != nil {
			return e, n
		}
	}
	return nil, pos
}

// parseCallee matches an identifier or a parenthesized expression in callee
// position and returns a call with no operands.
func (p *Parser) parseCallee(pos int) (*brook.FunctionCall, int) {
	switch p.peek(pos) {
	case token.IDENT:
		tok := p.rev[pos]
		return &brook.FunctionCall{Name: tok.Text, Source: tok.Source}, pos + 1
	case token.PAREN_R:
		expr, n := p.parseParenExpression(pos)
		if expr == nil {
			return nil, pos
		}
		return &brook.FunctionCall{Callee: expr, Source: p.rev[n-1].Source}, n
	default:
		return nil, pos
	}
}
