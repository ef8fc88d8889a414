package ast

// TypeExpr is the small surface syntax for type annotations
// (`let x: T = ...`, `fn(x: T)`, `fn f(x: T) -> T`). It is distinct from
// types.Ty, the inferred-type representation the checker unifies over;
// the checker converts one to the other once, at the annotation site.
type TypeExpr interface {
	typeExprNode()
	String() string
}

// TypeName is a primitive or user-named type: Int, Bool, String, Unit.
type TypeName struct {
	Name string
}

func (*TypeName) typeExprNode() {}
func (t *TypeName) String() string { return t.Name }

// ListType is `List T`.
type ListType struct {
	Elem TypeExpr
}

func (*ListType) typeExprNode() {}
func (t *ListType) String() string { return "List " + t.Elem.String() }

// PairType is `(A, B)`.
type PairType struct {
	First, Second TypeExpr
}

func (*PairType) typeExprNode() {}
func (t *PairType) String() string { return "(" + t.First.String() + ", " + t.Second.String() + ")" }

// SumType is `(A + B)`.
type SumType struct {
	Left, Right TypeExpr
}

func (*SumType) typeExprNode() {}
func (t *SumType) String() string { return "(" + t.Left.String() + " + " + t.Right.String() + ")" }

// ArrowType is `A -> B`, right-associative.
type ArrowType struct {
	Param, Result TypeExpr
}

func (*ArrowType) typeExprNode() {}
func (t *ArrowType) String() string { return t.Param.String() + " -> " + t.Result.String() }
