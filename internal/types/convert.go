package types

import "github.com/corrosion-lang/corrosion/internal/ast"

// FromTypeExpr converts a parsed type annotation into a Ty. An unrecognized
// primitive name reports ok=false so the caller can raise a TypeError with
// the annotation's source position.
func FromTypeExpr(te ast.TypeExpr) (Ty, bool) {
	switch t := te.(type) {
	case *ast.TypeName:
		switch t.Name {
		case "Int":
			return TInt{}, true
		case "Bool":
			return TBool{}, true
		case "String":
			return TString{}, true
		case "Unit":
			return TUnit{}, true
		default:
			return nil, false
		}
	case *ast.ListType:
		elem, ok := FromTypeExpr(t.Elem)
		if !ok {
			return nil, false
		}
		return TList{Elem: elem}, true
	case *ast.PairType:
		first, ok1 := FromTypeExpr(t.First)
		second, ok2 := FromTypeExpr(t.Second)
		if !ok1 || !ok2 {
			return nil, false
		}
		return TPair{First: first, Second: second}, true
	case *ast.SumType:
		left, ok1 := FromTypeExpr(t.Left)
		right, ok2 := FromTypeExpr(t.Right)
		if !ok1 || !ok2 {
			return nil, false
		}
		return TSum{Left: left, Right: right}, true
	case *ast.ArrowType:
		param, ok1 := FromTypeExpr(t.Param)
		result, ok2 := FromTypeExpr(t.Result)
		if !ok1 || !ok2 {
			return nil, false
		}
		return TArrow{Param: param, Result: result}, true
	default:
		return nil, false
	}
}
