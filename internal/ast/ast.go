// Package ast defines the Corrosion abstract syntax tree produced by the
// parser and decorated in place by the type checker.
package ast

import (
	"fmt"

	"github.com/corrosion-lang/corrosion/internal/token"
)

// Pos aliases the lexer's position type; every node carries a Span of two.
type Pos = token.Pos

// Span is the source range of a node, used only in diagnostics.
type Span struct {
	Start Pos
	End   Pos
}

func (s Span) String() string {
	return s.Start.String()
}

// Node is the base interface shared by every AST node.
type Node interface {
	Span() Span
}

// Expr is any Corrosion expression. Named-declaration and import forms also
// satisfy Expr so that a Program/Block is a uniform []Expr, matching
// spec.md's "a statement is an expression followed by ';', OR a
// declaration" rule: declarations are just expressions with no value
// (typed Unit) whose evaluation has a binding side effect.
type Expr interface {
	Node
	exprNode()
}

// BaseNode carries the span field embedded by every concrete node type.
type BaseNode struct {
	Sp Span
}

func (b BaseNode) Span() Span { return b.Sp }

// ---- Literals ----

type IntLit struct {
	BaseNode
	Value int64
}

type BoolLit struct {
	BaseNode
	Value bool
}

type StringLit struct {
	BaseNode
	Value string
}

type UnitLit struct {
	BaseNode
}

// ---- Names ----

// Ident is a bare variable reference.
type Ident struct {
	BaseNode
	Name string
}

// QualifiedIdent is a module-qualified access `module.name`.
type QualifiedIdent struct {
	BaseNode
	Module string
	Name   string
}

// ---- Compound literals ----

type ListLit struct {
	BaseNode
	Elements []Expr
}

type PairLit struct {
	BaseNode
	First  Expr
	Second Expr
}

// ---- Operators ----

type BinOp string

const (
	OpAdd BinOp = "+"
	OpSub BinOp = "-"
	OpMul BinOp = "*"
	OpDiv BinOp = "/"
	OpEq  BinOp = "=="
	OpNeq BinOp = "!="
	OpLt  BinOp = "<"
	OpLte BinOp = "<="
	OpGt  BinOp = ">"
	OpGte BinOp = ">="
	OpAnd BinOp = "&&"
	OpOr  BinOp = "||"
)

type BinaryExpr struct {
	BaseNode
	Op    BinOp
	Left  Expr
	Right Expr
}

type UnOp string

const (
	OpNot   UnOp = "!"
	OpNeg   UnOp = "-"
)

type UnaryExpr struct {
	BaseNode
	Op      UnOp
	Operand Expr
}

// ---- Control flow ----

// IfExpr serves both the statement role (no Else, type Unit) and the
// expression role (Else present, branches unify) per spec.md §4.1.
type IfExpr struct {
	BaseNode
	Cond Expr
	Then *Block
	Else *Block // nil when there is no else branch
}

type ForExpr struct {
	BaseNode
	Var  string
	Iter Expr
	Body *Block
}

// Block is a sequence of statements optionally terminated by a trailing
// value expression; without one the block's value is Unit.
type Block struct {
	BaseNode
	Stmts []Expr
	Tail  Expr // nil when the block has no trailing value expression
}

func (b *Block) exprNode() {}

// ---- Bindings ----

type LetStmt struct {
	BaseNode
	Name    string
	TypeAnn TypeExpr // nil when unannotated
	Value   Expr
}

// TypeAnnotated name used in lambda parameters and let/fn annotations.
type Param struct {
	Name    string
	TypeAnn TypeExpr // nil when unannotated
}

type Lambda struct {
	BaseNode
	Param   Param
	Body    *Block
}

// FuncDecl is a named, recursive function declaration:
//
//	fn name(p1, ..., pn) [-> T] { body }
//
// Its typing and evaluation are equivalent to the desugaring
// `let name = fix(fn(name){ fn(p1){ ... fn(pn){ body } ... } });` — name is
// visible to itself inside body and the declared type is a FixedPoint of
// the curried arrow over its parameters. The parser keeps FuncDecl as its
// own node (rather than eagerly desugaring to nested Lambda/FixExpr) so
// diagnostics can name the declaration directly; the type checker and
// evaluator each apply the equivalent typing/evaluation natively.
type FuncDecl struct {
	BaseNode
	Name    string
	Params  []Param
	RetType TypeExpr // nil when unannotated
	Body    *Block
}

// ---- Application ----

// CallExpr is always single-argument; `f(a, b)` is parsed as
// CallExpr{CallExpr{f, a}, b} (left-to-right currying).
type CallExpr struct {
	BaseNode
	Func Expr
	Arg  Expr
}

// ---- fix ----

type FixExpr struct {
	BaseNode
	Func Expr
}

// ---- Primitives parsed as distinguished single-argument-chain forms ----

type PrimKind string

const (
	PrimCons     PrimKind = "cons"
	PrimHead     PrimKind = "head"
	PrimTail     PrimKind = "tail"
	PrimFst      PrimKind = "fst"
	PrimSnd      PrimKind = "snd"
	PrimRange    PrimKind = "range"
	PrimPrint    PrimKind = "print"
	PrimType     PrimKind = "type"
	PrimLength   PrimKind = "length"
	PrimChar     PrimKind = "char"
	PrimConcat   PrimKind = "concat"
	PrimToString PrimKind = "toString"
)

// PrimCall is a call to a built-in primitive, parsed with known fixed
// arity (1 or 2 arguments) rather than desugared to curried CallExpr, so
// the type checker can give each primitive its own rule (spec.md §4.2).
type PrimCall struct {
	BaseNode
	Kind PrimKind
	Args []Expr
}

// ---- Sums ----

type InlExpr struct {
	BaseNode
	Value Expr
}

type InrExpr struct {
	BaseNode
	Value Expr
}

type CaseExpr struct {
	BaseNode
	Scrutinee Expr
	LeftVar   string
	LeftBody  Expr
	RightVar  string
	RightBody Expr
}

// ---- Modules ----

type ImportDecl struct {
	BaseNode
	Path  string
	Alias string
}

func (e *ImportDecl) exprNode() {}

// ---- Program ----

// Program is the top-level sequence of statements (spec.md §3).
type Program struct {
	Stmts []Expr
}

func (e *IntLit) exprNode()         {}
func (e *BoolLit) exprNode()        {}
func (e *StringLit) exprNode()      {}
func (e *UnitLit) exprNode()        {}
func (e *Ident) exprNode()          {}
func (e *QualifiedIdent) exprNode() {}
func (e *ListLit) exprNode()        {}
func (e *PairLit) exprNode()        {}
func (e *BinaryExpr) exprNode()     {}
func (e *UnaryExpr) exprNode()      {}
func (e *IfExpr) exprNode()         {}
func (e *ForExpr) exprNode()        {}
func (e *LetStmt) exprNode()        {}
func (e *Lambda) exprNode()         {}
func (e *FuncDecl) exprNode()       {}
func (e *CallExpr) exprNode()       {}
func (e *FixExpr) exprNode()        {}
func (e *PrimCall) exprNode()       {}
func (e *InlExpr) exprNode()        {}
func (e *InrExpr) exprNode()        {}
func (e *CaseExpr) exprNode()       {}

// IsValueForm reports whether e may appear where the grammar demands an
// expression (as opposed to a statement-only form). Every AST node Corrosion
// produces is a value form except ImportDecl, LetStmt and FuncDecl, which
// are declarations (spec.md §3).
func IsValueForm(e Expr) bool {
	switch e.(type) {
	case *ImportDecl, *LetStmt, *FuncDecl:
		return false
	default:
		return true
	}
}

// String gives a short debug label; see print.go for the canonical
// pretty-printer used by the parse→print→parse property.
func (e *IntLit) String() string    { return fmt.Sprintf("IntLit(%d)", e.Value) }
func (e *Ident) String() string     { return fmt.Sprintf("Ident(%s)", e.Name) }
