package parser

import (
	"github.com/corrosion-lang/corrosion/internal/ast"
	"github.com/corrosion-lang/corrosion/internal/token"
)

// parseTypeExpr parses a type annotation: a primitive/user name, `List T`,
// a parenthesized pair/sum `(A, B)` / `(A + B)`, or an arrow `A -> B`.
func (p *Parser) parseTypeExpr() ast.TypeExpr {
	left := p.parseTypeAtom()
	if p.curIs(token.ARROW) {
		p.next()
		right := p.parseTypeExpr()
		return &ast.ArrowType{Param: left, Result: right}
	}
	return left
}

func (p *Parser) parseTypeAtom() ast.TypeExpr {
	switch p.cur.Type {
	case token.IDENT:
		name := p.cur.Literal
		p.next()
		if name == "List" {
			elem := p.parseTypeAtom()
			return &ast.ListType{Elem: elem}
		}
		return &ast.TypeName{Name: name}
	case token.LPAREN:
		p.next()
		first := p.parseTypeExpr()
		switch p.cur.Type {
		case token.COMMA:
			p.next()
			second := p.parseTypeExpr()
			p.expect(token.RPAREN)
			return &ast.PairType{First: first, Second: second}
		case token.PLUS:
			p.next()
			second := p.parseTypeExpr()
			p.expect(token.RPAREN)
			return &ast.SumType{Left: first, Right: second}
		default:
			p.expect(token.RPAREN)
			return first
		}
	default:
		p.errorf(p.cur.Pos, "Expected a type, found '%s'", p.cur.Type)
		tok := p.cur
		p.next()
		return &ast.TypeName{Name: tok.Literal}
	}
}
