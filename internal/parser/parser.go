// Package parser implements Corrosion's precedence-climbing recursive
// descent grammar (spec.md §4.1).
package parser

import (
	"fmt"
	"strconv"

	"github.com/corrosion-lang/corrosion/internal/ast"
	"github.com/corrosion-lang/corrosion/internal/errors"
	"github.com/corrosion-lang/corrosion/internal/lexer"
	"github.com/corrosion-lang/corrosion/internal/token"
)

// Precedence levels, lowest to highest, matching spec.md §4.1's grammar.
const (
	LOWEST int = iota
	OR         // ||
	AND        // &&
	EQUALITY   // == !=
	RELATIONAL // < <= > >=
	ADDITIVE   // + -
	MULTIPLICATIVE // * /
	PREFIX     // unary ! -
	CALL       // f(x), m.x
)

var precedences = map[token.Type]int{
	token.OR:     OR,
	token.AND:    AND,
	token.EQ:     EQUALITY,
	token.NEQ:    EQUALITY,
	token.LT:     RELATIONAL,
	token.LTE:    RELATIONAL,
	token.GT:     RELATIONAL,
	token.GTE:    RELATIONAL,
	token.PLUS:   ADDITIVE,
	token.MINUS:  ADDITIVE,
	token.STAR:   MULTIPLICATIVE,
	token.SLASH:  MULTIPLICATIVE,
	token.LPAREN: CALL,
	token.DOT:    CALL,
}

var binOps = map[token.Type]ast.BinOp{
	token.PLUS:  ast.OpAdd,
	token.MINUS: ast.OpSub,
	token.STAR:  ast.OpMul,
	token.SLASH: ast.OpDiv,
	token.EQ:    ast.OpEq,
	token.NEQ:   ast.OpNeq,
	token.LT:    ast.OpLt,
	token.LTE:   ast.OpLte,
	token.GT:    ast.OpGt,
	token.GTE:   ast.OpGte,
	token.AND:   ast.OpAnd,
	token.OR:    ast.OpOr,
}

// arity of each fixed-arity primitive (spec.md §4.1, §4.2).
var primArity = map[ast.PrimKind]int{
	ast.PrimCons:     2,
	ast.PrimHead:     1,
	ast.PrimTail:     1,
	ast.PrimFst:      1,
	ast.PrimSnd:      1,
	ast.PrimRange:    2,
	ast.PrimPrint:    1,
	ast.PrimType:     1,
	ast.PrimLength:   1,
	ast.PrimChar:     2,
	ast.PrimConcat:   2,
	ast.PrimToString: 1,
}

var primKeyword = map[token.Type]ast.PrimKind{
	token.CONS:     ast.PrimCons,
	token.HEAD:     ast.PrimHead,
	token.TAIL:     ast.PrimTail,
	token.FST:      ast.PrimFst,
	token.SND:      ast.PrimSnd,
	token.RANGE:    ast.PrimRange,
	token.PRINT:    ast.PrimPrint,
	token.TYPE:     ast.PrimType,
	token.LENGTH:   ast.PrimLength,
	token.CHAR:     ast.PrimChar,
	token.CONCAT:   ast.PrimConcat,
	token.TOSTRING: ast.PrimToString,
}

// Parser turns a token stream into an *ast.Program.
type Parser struct {
	l *lexer.Lexer

	cur  token.Token
	peek token.Token

	errors []error
}

// New creates a Parser over src.
func New(src string) *Parser {
	p := &Parser{l: lexer.New(src)}
	p.next()
	p.next()
	return p
}

// Errors returns every ParseError recorded so far.
func (p *Parser) Errors() []error { return p.errors }

func (p *Parser) next() {
	p.cur = p.peek
	p.peek = p.l.NextToken()
}

func (p *Parser) curIs(t token.Type) bool  { return p.cur.Type == t }
func (p *Parser) peekIs(t token.Type) bool { return p.peek.Type == t }

func (p *Parser) span(start token.Pos) ast.Span {
	return ast.Span{Start: start, End: p.cur.Pos}
}

func (p *Parser) errorf(pos token.Pos, format string, args ...interface{}) {
	p.errorCoded(errors.ParUnexpectedToken, pos, format, args...)
}

func (p *Parser) errorCoded(code errors.Code, pos token.Pos, format string, args ...interface{}) {
	p.errors = append(p.errors, errors.NewParseError(code, pos, fmt.Sprintf(format, args...)))
}

// expect consumes cur if it has type t, recording a ParseError otherwise,
// and always advances (error recovery is not attempted past this point per
// spec.md §7: "no error recovery").
func (p *Parser) expect(t token.Type) token.Token {
	tok := p.cur
	if !p.curIs(t) {
		p.errorf(p.cur.Pos, "Expected '%s', found '%s'", t, p.cur.Type)
	}
	p.next()
	return tok
}

// expectSemi enforces spec.md §4.1's statement terminator rule.
func (p *Parser) expectSemi() {
	if !p.curIs(token.SEMICOLON) {
		p.errors = append(p.errors, errors.NewParseError(errors.ParMissingSemi, p.cur.Pos, "Expected ';'"))
		return
	}
	p.next()
}

// Parse consumes the whole token stream as a sequence of statements
// (spec.md §3: "The surface program is a sequence of semicolon-terminated
// statements").
func (p *Parser) Parse() *ast.Program {
	prog := &ast.Program{}
	for !p.curIs(token.EOF) {
		if len(p.errors) > 8 {
			break // stop runaway cascades; no recovery pass exists (spec.md §7)
		}
		stmt := p.parseStatement()
		if stmt != nil {
			prog.Stmts = append(prog.Stmts, stmt)
		}
	}
	return prog
}

// parseStatement parses one top-level or block statement: a declaration,
// or an expression followed by ';'.
func (p *Parser) parseStatement() ast.Expr {
	switch p.cur.Type {
	case token.LET:
		return p.parseLetStmt()
	case token.FN:
		if p.peekIs(token.IDENT) {
			return p.parseFuncDecl()
		}
	case token.IMPORT:
		return p.parseImportDecl()
	}

	expr := p.parseExpr(LOWEST)
	p.expectSemi()
	return expr
}

func (p *Parser) parseLetStmt() ast.Expr {
	start := p.cur.Pos
	p.next() // 'let'
	name := p.expect(token.IDENT).Literal

	var ann ast.TypeExpr
	if p.curIs(token.COLON) {
		p.next()
		ann = p.parseTypeExpr()
	}
	p.expect(token.ASSIGN)
	value := p.parseExpr(LOWEST)
	p.expectSemi()

	return &ast.LetStmt{BaseNode: ast.BaseNode{Sp: p.span(start)}, Name: name, TypeAnn: ann, Value: value}
}

func (p *Parser) parseImportDecl() ast.Expr {
	start := p.cur.Pos
	p.next() // 'import'
	pathTok := p.expect(token.STRING)
	p.expect(token.AS)
	alias := p.expect(token.IDENT).Literal
	p.expectSemi()
	return &ast.ImportDecl{BaseNode: ast.BaseNode{Sp: p.span(start)}, Path: pathTok.Literal, Alias: alias}
}

// parseFuncDecl parses `fn name(p1, ...) [-> T] { body }`.
func (p *Parser) parseFuncDecl() ast.Expr {
	start := p.cur.Pos
	p.next() // 'fn'
	name := p.expect(token.IDENT).Literal

	p.expect(token.LPAREN)
	var params []ast.Param
	for !p.curIs(token.RPAREN) && !p.curIs(token.EOF) {
		pname := p.expect(token.IDENT).Literal
		var pann ast.TypeExpr
		if p.curIs(token.COLON) {
			p.next()
			pann = p.parseTypeExpr()
		}
		params = append(params, ast.Param{Name: pname, TypeAnn: pann})
		if p.curIs(token.COMMA) {
			p.next()
		} else {
			break
		}
	}
	p.expect(token.RPAREN)

	var ret ast.TypeExpr
	if p.curIs(token.ARROW) {
		p.next()
		ret = p.parseTypeExpr()
	}

	body := p.parseBlock()
	// The closing '}' already ends the declaration; a following ';' is
	// accepted but not required.
	if p.curIs(token.SEMICOLON) {
		p.next()
	}

	return &ast.FuncDecl{BaseNode: ast.BaseNode{Sp: p.span(start)}, Name: name, Params: params, RetType: ret, Body: body}
}

// parseBlock parses `{ stmt* tailExpr? }`.
func (p *Parser) parseBlock() *ast.Block {
	start := p.cur.Pos
	p.expect(token.LBRACE)

	b := &ast.Block{BaseNode: ast.BaseNode{Sp: ast.Span{Start: start}}}
	for !p.curIs(token.RBRACE) && !p.curIs(token.EOF) {
		if isDeclStart(p.cur.Type, p.peek.Type) {
			b.Stmts = append(b.Stmts, p.parseStatement())
			continue
		}
		expr := p.parseExpr(LOWEST)
		if p.curIs(token.SEMICOLON) {
			p.next()
			b.Stmts = append(b.Stmts, expr)
			continue
		}
		// No trailing ';': this must be the block's tail expression.
		b.Tail = expr
		break
	}
	end := p.cur.Pos
	p.expect(token.RBRACE)
	b.Sp.End = end
	return b
}

func isDeclStart(cur, peek token.Type) bool {
	if cur == token.LET || cur == token.IMPORT {
		return true
	}
	return cur == token.FN && peek == token.IDENT
}

// parseExpr is the precedence-climbing entry point.
func (p *Parser) parseExpr(minPrec int) ast.Expr {
	left := p.parsePrefix()
	for {
		prec, ok := precedences[p.cur.Type]
		if !ok || prec < minPrec {
			break
		}
		switch p.cur.Type {
		case token.LPAREN:
			left = p.parseCall(left)
		case token.DOT:
			left = p.parseQualified(left)
		default:
			left = p.parseInfix(left, prec)
		}
	}
	return left
}

func (p *Parser) parseInfix(left ast.Expr, prec int) ast.Expr {
	opTok := p.cur
	op, ok := binOps[opTok.Type]
	if !ok {
		p.errorf(opTok.Pos, "Unexpected operator '%s'", opTok.Type)
		p.next()
		return left
	}
	p.next()
	// All of Corrosion's binary operators are left-associative, so the
	// right operand parses at prec+1.
	right := p.parseExpr(prec + 1)
	return &ast.BinaryExpr{BaseNode: ast.BaseNode{Sp: ast.Span{Start: left.Span().Start, End: right.Span().End}}, Op: op, Left: left, Right: right}
}

func (p *Parser) parseCall(fn ast.Expr) ast.Expr {
	p.next() // '('
	start := fn.Span().Start

	if p.curIs(token.RPAREN) {
		p.errorf(p.cur.Pos, "Expected argument, found ')'")
		p.next()
		return fn
	}

	args := []ast.Expr{p.parseExpr(LOWEST)}
	for p.curIs(token.COMMA) {
		p.next()
		args = append(args, p.parseExpr(LOWEST))
	}
	end := p.cur.Pos
	p.expect(token.RPAREN)

	result := fn
	for _, a := range args {
		result = &ast.CallExpr{BaseNode: ast.BaseNode{Sp: ast.Span{Start: start, End: end}}, Func: result, Arg: a}
	}
	return result
}

func (p *Parser) parseQualified(left ast.Expr) ast.Expr {
	ident, ok := left.(*ast.Ident)
	if !ok {
		p.errorf(p.cur.Pos, "'.' may only follow a module name")
		p.next()
		return left
	}
	dotPos := p.cur.Pos
	p.next() // '.'
	name := p.expect(token.IDENT).Literal
	return &ast.QualifiedIdent{BaseNode: ast.BaseNode{Sp: ast.Span{Start: ident.Span().Start, End: dotPos}}, Module: ident.Name, Name: name}
}

// parsePrefix handles unary operators and primary expressions (grammar
// levels 7-9 of spec.md §4.1).
func (p *Parser) parsePrefix() ast.Expr {
	switch p.cur.Type {
	case token.BANG:
		return p.parseUnary(ast.OpNot)
	case token.MINUS:
		return p.parseUnary(ast.OpNeg)
	default:
		return p.parsePrimary()
	}
}

func (p *Parser) parseUnary(op ast.UnOp) ast.Expr {
	start := p.cur.Pos
	p.next()
	operand := p.parseExpr(PREFIX)
	return &ast.UnaryExpr{BaseNode: ast.BaseNode{Sp: ast.Span{Start: start, End: operand.Span().End}}, Op: op, Operand: operand}
}

func (p *Parser) parsePrimary() ast.Expr {
	switch p.cur.Type {
	case token.INT:
		return p.parseIntLit()
	case token.TRUE, token.FALSE:
		return p.parseBoolLit()
	case token.STRING:
		return p.parseStringLit()
	case token.IDENT:
		return p.parseIdent()
	case token.LPAREN:
		return p.parseParenOrPair()
	case token.LBRACKET:
		return p.parseListLit()
	case token.FN:
		return p.parseLambda()
	case token.IF:
		return p.parseIf()
	case token.FOR:
		return p.parseFor()
	case token.FIX:
		return p.parseFix()
	case token.INL:
		return p.parseInl()
	case token.INR:
		return p.parseInr()
	case token.CASE:
		return p.parseCase()
	case token.CONS, token.HEAD, token.TAIL, token.FST, token.SND,
		token.RANGE, token.PRINT, token.TYPE, token.LENGTH, token.CHAR,
		token.CONCAT, token.TOSTRING:
		return p.parsePrimCall()
	default:
		p.errorf(p.cur.Pos, "Unexpected token '%s'", p.cur.Type)
		tok := p.cur
		p.next()
		return &ast.UnitLit{BaseNode: ast.BaseNode{Sp: ast.Span{Start: tok.Pos, End: tok.Pos}}}
	}
}

func (p *Parser) parseIntLit() ast.Expr {
	tok := p.cur
	v, err := strconv.ParseInt(tok.Literal, 10, 64)
	if err != nil {
		p.errorf(tok.Pos, "Invalid integer literal '%s'", tok.Literal)
	}
	p.next()
	return &ast.IntLit{BaseNode: ast.BaseNode{Sp: ast.Span{Start: tok.Pos, End: tok.Pos}}, Value: v}
}

func (p *Parser) parseBoolLit() ast.Expr {
	tok := p.cur
	p.next()
	return &ast.BoolLit{BaseNode: ast.BaseNode{Sp: ast.Span{Start: tok.Pos, End: tok.Pos}}, Value: tok.Type == token.TRUE}
}

func (p *Parser) parseStringLit() ast.Expr {
	tok := p.cur
	p.next()
	return &ast.StringLit{BaseNode: ast.BaseNode{Sp: ast.Span{Start: tok.Pos, End: tok.Pos}}, Value: tok.Literal}
}

func (p *Parser) parseIdent() ast.Expr {
	tok := p.cur
	p.next()
	return &ast.Ident{BaseNode: ast.BaseNode{Sp: ast.Span{Start: tok.Pos, End: tok.Pos}}, Name: tok.Literal}
}

// parseParenOrPair parses `()`, `( e )`, and `( e , e )`; a third element
// is a parse error per spec.md §4.1 ("Pairs use exactly two comma-separated
// expressions").
func (p *Parser) parseParenOrPair() ast.Expr {
	start := p.cur.Pos
	p.next() // '('

	if p.curIs(token.RPAREN) {
		end := p.cur.Pos
		p.next()
		return &ast.UnitLit{BaseNode: ast.BaseNode{Sp: ast.Span{Start: start, End: end}}}
	}

	first := p.parseExpr(LOWEST)
	if p.curIs(token.RPAREN) {
		p.next()
		return first // grouping, not a pair
	}

	p.expect(token.COMMA)
	second := p.parseExpr(LOWEST)

	if p.curIs(token.COMMA) {
		p.errorCoded(errors.ParInvalidPairArity, p.cur.Pos, "Expected ')' after pair, found Comma")
	}
	end := p.cur.Pos
	p.expect(token.RPAREN)
	return &ast.PairLit{BaseNode: ast.BaseNode{Sp: ast.Span{Start: start, End: end}}, First: first, Second: second}
}

func (p *Parser) parseListLit() ast.Expr {
	start := p.cur.Pos
	p.next() // '['
	var elems []ast.Expr
	for !p.curIs(token.RBRACKET) && !p.curIs(token.EOF) {
		elems = append(elems, p.parseExpr(LOWEST))
		if p.curIs(token.COMMA) {
			p.next()
		} else {
			break
		}
	}
	end := p.cur.Pos
	p.expect(token.RBRACKET)
	return &ast.ListLit{BaseNode: ast.BaseNode{Sp: ast.Span{Start: start, End: end}}, Elements: elems}
}

// parseLambda parses the anonymous form `fn(x [: T], …) { body }`. A
// lambda with several parameters is curried here into nested
// single-parameter Lambda nodes; an empty parameter list is a parse error.
func (p *Parser) parseLambda() ast.Expr {
	start := p.cur.Pos
	p.next() // 'fn'
	p.expect(token.LPAREN)

	var params []ast.Param
	for !p.curIs(token.RPAREN) && !p.curIs(token.EOF) {
		name := p.expect(token.IDENT).Literal
		var ann ast.TypeExpr
		if p.curIs(token.COLON) {
			p.next()
			ann = p.parseTypeExpr()
		}
		params = append(params, ast.Param{Name: name, TypeAnn: ann})
		if p.curIs(token.COMMA) {
			p.next()
		} else {
			break
		}
	}
	p.expect(token.RPAREN)
	body := p.parseBlock()

	if len(params) == 0 {
		p.errorf(start, "Lambda requires at least one parameter")
		params = []ast.Param{{Name: "_"}}
	}

	// Curry: fn(a,b){B} == fn(a){ fn(b){B} }
	end := body.Span().End
	lambda := &ast.Lambda{BaseNode: ast.BaseNode{Sp: ast.Span{Start: start, End: end}}, Param: params[len(params)-1], Body: body}
	for i := len(params) - 2; i >= 0; i-- {
		inner := &ast.Block{BaseNode: lambda.BaseNode, Tail: lambda}
		lambda = &ast.Lambda{BaseNode: ast.BaseNode{Sp: ast.Span{Start: start, End: end}}, Param: params[i], Body: inner}
	}
	return lambda
}

func (p *Parser) parseIf() ast.Expr {
	start := p.cur.Pos
	p.next() // 'if'
	cond := p.parseExpr(LOWEST)
	then := p.parseBlock()

	var els *ast.Block
	end := then.Span().End
	if p.curIs(token.ELSE) {
		p.next()
		els = p.parseBlock()
		end = els.Span().End
	}
	return &ast.IfExpr{BaseNode: ast.BaseNode{Sp: ast.Span{Start: start, End: end}}, Cond: cond, Then: then, Else: els}
}

func (p *Parser) parseFor() ast.Expr {
	start := p.cur.Pos
	p.next() // 'for'
	v := p.expect(token.IDENT).Literal
	p.expect(token.IN)
	iter := p.parseExpr(LOWEST)
	body := p.parseBlock()
	return &ast.ForExpr{BaseNode: ast.BaseNode{Sp: ast.Span{Start: start, End: body.Span().End}}, Var: v, Iter: iter, Body: body}
}

func (p *Parser) parseFix() ast.Expr {
	start := p.cur.Pos
	p.next() // 'fix'
	p.expect(token.LPAREN)
	f := p.parseExpr(LOWEST)
	end := p.cur.Pos
	p.expect(token.RPAREN)
	return &ast.FixExpr{BaseNode: ast.BaseNode{Sp: ast.Span{Start: start, End: end}}, Func: f}
}

func (p *Parser) parseInl() ast.Expr {
	start := p.cur.Pos
	p.next()
	p.expect(token.LPAREN)
	v := p.parseExpr(LOWEST)
	end := p.cur.Pos
	p.expect(token.RPAREN)
	return &ast.InlExpr{BaseNode: ast.BaseNode{Sp: ast.Span{Start: start, End: end}}, Value: v}
}

func (p *Parser) parseInr() ast.Expr {
	start := p.cur.Pos
	p.next()
	p.expect(token.LPAREN)
	v := p.parseExpr(LOWEST)
	end := p.cur.Pos
	p.expect(token.RPAREN)
	return &ast.InrExpr{BaseNode: ast.BaseNode{Sp: ast.Span{Start: start, End: end}}, Value: v}
}

// parseCase parses `case e of inl p => e | inr p => e`.
func (p *Parser) parseCase() ast.Expr {
	start := p.cur.Pos
	p.next() // 'case'
	scrutinee := p.parseExpr(LOWEST)
	p.expect(token.OF)

	p.expect(token.INL)
	leftVar := p.expect(token.IDENT).Literal
	p.expect(token.FARROW)
	leftBody := p.parseExpr(LOWEST)

	p.expect(token.PIPE)
	p.expect(token.INR)
	rightVar := p.expect(token.IDENT).Literal
	p.expect(token.FARROW)
	rightBody := p.parseExpr(LOWEST)

	return &ast.CaseExpr{
		BaseNode:  ast.BaseNode{Sp: ast.Span{Start: start, End: rightBody.Span().End}},
		Scrutinee: scrutinee, LeftVar: leftVar, LeftBody: leftBody,
		RightVar: rightVar, RightBody: rightBody,
	}
}

// parsePrimCall parses a primitive invocation `name(arg, ...)`. An empty
// argument list (`print()`) is a parse error because the argument
// production requires a full expression (spec.md §4.1).
func (p *Parser) parsePrimCall() ast.Expr {
	start := p.cur.Pos
	kind := primKeyword[p.cur.Type]
	p.next()
	p.expect(token.LPAREN)

	var args []ast.Expr
	if p.curIs(token.RPAREN) {
		p.errorf(p.cur.Pos, "Expected argument, found ')'")
	} else {
		args = append(args, p.parseExpr(LOWEST))
		for p.curIs(token.COMMA) {
			p.next()
			args = append(args, p.parseExpr(LOWEST))
		}
	}
	end := p.cur.Pos
	p.expect(token.RPAREN)

	if want := primArity[kind]; want != len(args) {
		p.errorCoded(errors.ParInvalidPrimitiveArity, start, "'%s' expects %d argument(s), found %d", kind, want, len(args))
	}

	return &ast.PrimCall{BaseNode: ast.BaseNode{Sp: ast.Span{Start: start, End: end}}, Kind: kind, Args: args}
}
