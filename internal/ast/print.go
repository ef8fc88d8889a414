package ast

import (
	"encoding/json"
	"fmt"
)

// Print produces a deterministic JSON representation of a node, omitting
// spans and other instance-specific metadata. Two ASTs that are
// structurally equal modulo position print identically; this grounds the
// parse→print→parse equivalence property (spec.md §8 property 1): print
// with PrintSource, re-parse, and compare with Print.
func Print(node interface{}) string {
	data, err := json.MarshalIndent(simplify(node), "", "  ")
	if err != nil {
		return fmt.Sprintf("error: %v", err)
	}
	return string(data)
}

func simplifySlice(exprs []Expr) []interface{} {
	out := make([]interface{}, len(exprs))
	for i, e := range exprs {
		out[i] = simplify(e)
	}
	return out
}

func simplify(node interface{}) interface{} {
	if node == nil {
		return nil
	}

	switch n := node.(type) {
	case *Program:
		return map[string]interface{}{"type": "Program", "stmts": simplifySlice(n.Stmts)}

	case *IntLit:
		return map[string]interface{}{"type": "IntLit", "value": n.Value}
	case *BoolLit:
		return map[string]interface{}{"type": "BoolLit", "value": n.Value}
	case *StringLit:
		return map[string]interface{}{"type": "StringLit", "value": n.Value}
	case *UnitLit:
		return map[string]interface{}{"type": "UnitLit"}
	case *Ident:
		return map[string]interface{}{"type": "Ident", "name": n.Name}
	case *QualifiedIdent:
		return map[string]interface{}{"type": "QualifiedIdent", "module": n.Module, "name": n.Name}
	case *ListLit:
		return map[string]interface{}{"type": "ListLit", "elements": simplifySlice(n.Elements)}
	case *PairLit:
		return map[string]interface{}{"type": "PairLit", "first": simplify(n.First), "second": simplify(n.Second)}
	case *BinaryExpr:
		return map[string]interface{}{"type": "BinaryExpr", "op": string(n.Op), "left": simplify(n.Left), "right": simplify(n.Right)}
	case *UnaryExpr:
		return map[string]interface{}{"type": "UnaryExpr", "op": string(n.Op), "operand": simplify(n.Operand)}
	case *IfExpr:
		m := map[string]interface{}{"type": "IfExpr", "cond": simplify(n.Cond), "then": simplify(n.Then)}
		if n.Else != nil {
			m["else"] = simplify(n.Else)
		}
		return m
	case *ForExpr:
		return map[string]interface{}{"type": "ForExpr", "var": n.Var, "iter": simplify(n.Iter), "body": simplify(n.Body)}
	case *Block:
		m := map[string]interface{}{"type": "Block", "stmts": simplifySlice(n.Stmts)}
		if n.Tail != nil {
			m["tail"] = simplify(n.Tail)
		}
		return m
	case *LetStmt:
		m := map[string]interface{}{"type": "LetStmt", "name": n.Name, "value": simplify(n.Value)}
		if n.TypeAnn != nil {
			m["typeAnn"] = n.TypeAnn.String()
		}
		return m
	case *Lambda:
		m := map[string]interface{}{"type": "Lambda", "param": n.Param.Name, "body": simplify(n.Body)}
		if n.Param.TypeAnn != nil {
			m["paramType"] = n.Param.TypeAnn.String()
		}
		return m
	case *FuncDecl:
		params := make([]interface{}, len(n.Params))
		for i, p := range n.Params {
			pm := map[string]interface{}{"name": p.Name}
			if p.TypeAnn != nil {
				pm["typeAnn"] = p.TypeAnn.String()
			}
			params[i] = pm
		}
		m := map[string]interface{}{"type": "FuncDecl", "name": n.Name, "params": params, "body": simplify(n.Body)}
		if n.RetType != nil {
			m["retType"] = n.RetType.String()
		}
		return m
	case *CallExpr:
		return map[string]interface{}{"type": "CallExpr", "func": simplify(n.Func), "arg": simplify(n.Arg)}
	case *FixExpr:
		return map[string]interface{}{"type": "FixExpr", "func": simplify(n.Func)}
	case *PrimCall:
		return map[string]interface{}{"type": "PrimCall", "kind": string(n.Kind), "args": simplifySlice(n.Args)}
	case *InlExpr:
		return map[string]interface{}{"type": "InlExpr", "value": simplify(n.Value)}
	case *InrExpr:
		return map[string]interface{}{"type": "InrExpr", "value": simplify(n.Value)}
	case *CaseExpr:
		return map[string]interface{}{
			"type": "CaseExpr", "scrutinee": simplify(n.Scrutinee),
			"leftVar": n.LeftVar, "leftBody": simplify(n.LeftBody),
			"rightVar": n.RightVar, "rightBody": simplify(n.RightBody),
		}
	case *ImportDecl:
		return map[string]interface{}{"type": "ImportDecl", "path": n.Path, "alias": n.Alias}
	default:
		return map[string]interface{}{"type": fmt.Sprintf("%T", n)}
	}
}
