package ast

import (
	"strconv"
	"strings"
)

// PrintSource renders prog back into valid Corrosion source. It is the
// other half of the parse→print→parse equivalence property (spec.md §8
// property 1): PrintSource(prog) re-parses to a structurally equal AST
// (compare with Print, which ignores spans).
func PrintSource(prog *Program) string {
	var sb strings.Builder
	for _, s := range prog.Stmts {
		sb.WriteString(printStmt(s))
		sb.WriteString("\n")
	}
	return sb.String()
}

func printStmt(e Expr) string {
	switch n := e.(type) {
	case *LetStmt:
		if n.TypeAnn != nil {
			return "let " + n.Name + ": " + n.TypeAnn.String() + " = " + printExpr(n.Value) + ";"
		}
		return "let " + n.Name + " = " + printExpr(n.Value) + ";"
	case *FuncDecl:
		return printFuncDecl(n)
	case *ImportDecl:
		return "import \"" + n.Path + "\" as " + n.Alias + ";"
	default:
		return printExpr(e) + ";"
	}
}

func printFuncDecl(n *FuncDecl) string {
	var sb strings.Builder
	sb.WriteString("fn ")
	sb.WriteString(n.Name)
	sb.WriteString("(")
	for i, p := range n.Params {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(p.Name)
		if p.TypeAnn != nil {
			sb.WriteString(": " + p.TypeAnn.String())
		}
	}
	sb.WriteString(")")
	if n.RetType != nil {
		sb.WriteString(" -> " + n.RetType.String())
	}
	sb.WriteString(" " + printBlock(n.Body))
	return sb.String()
}

func printBlock(b *Block) string {
	var sb strings.Builder
	sb.WriteString("{ ")
	for _, s := range b.Stmts {
		sb.WriteString(printStmt(s))
		sb.WriteString(" ")
	}
	if b.Tail != nil {
		sb.WriteString(printExpr(b.Tail))
		sb.WriteString(" ")
	}
	sb.WriteString("}")
	return sb.String()
}

func printExpr(e Expr) string {
	switch n := e.(type) {
	case *IntLit:
		return strconv.FormatInt(n.Value, 10)
	case *BoolLit:
		if n.Value {
			return "true"
		}
		return "false"
	case *StringLit:
		return "\"" + escapeString(n.Value) + "\""
	case *UnitLit:
		return "()"
	case *Ident:
		return n.Name
	case *QualifiedIdent:
		return n.Module + "." + n.Name
	case *ListLit:
		parts := make([]string, len(n.Elements))
		for i, el := range n.Elements {
			parts[i] = printExpr(el)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case *PairLit:
		return "(" + printExpr(n.First) + ", " + printExpr(n.Second) + ")"
	case *BinaryExpr:
		return "(" + printExpr(n.Left) + " " + string(n.Op) + " " + printExpr(n.Right) + ")"
	case *UnaryExpr:
		return string(n.Op) + printExpr(n.Operand)
	case *IfExpr:
		s := "if " + printExpr(n.Cond) + " " + printBlock(n.Then)
		if n.Else != nil {
			s += " else " + printBlock(n.Else)
		}
		return s
	case *ForExpr:
		return "for " + n.Var + " in " + printExpr(n.Iter) + " " + printBlock(n.Body)
	case *Block:
		return printBlock(n)
	case *Lambda:
		param := n.Param.Name
		if n.Param.TypeAnn != nil {
			param += ": " + n.Param.TypeAnn.String()
		}
		return "fn(" + param + ") " + printBlock(n.Body)
	case *CallExpr:
		return printExpr(n.Func) + "(" + printExpr(n.Arg) + ")"
	case *FixExpr:
		return "fix(" + printExpr(n.Func) + ")"
	case *PrimCall:
		parts := make([]string, len(n.Args))
		for i, a := range n.Args {
			parts[i] = printExpr(a)
		}
		return string(n.Kind) + "(" + strings.Join(parts, ", ") + ")"
	case *InlExpr:
		return "inl(" + printExpr(n.Value) + ")"
	case *InrExpr:
		return "inr(" + printExpr(n.Value) + ")"
	case *CaseExpr:
		return "case " + printExpr(n.Scrutinee) + " of inl " + n.LeftVar + " => " + printExpr(n.LeftBody) +
			" | inr " + n.RightVar + " => " + printExpr(n.RightBody)
	default:
		return "<?>"
	}
}

func escapeString(s string) string {
	r := strings.NewReplacer("\\", "\\\\", "\"", "\\\"", "\n", "\\n", "\t", "\\t")
	return r.Replace(s)
}

