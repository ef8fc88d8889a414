// Package eval is Corrosion's call-by-value tree-walking evaluator
// (spec.md §4.3).
package eval

import (
	"fmt"
	"strings"

	"github.com/corrosion-lang/corrosion/internal/ast"
)

// Value is the closed variant set of runtime values.
type Value interface {
	isValue()
}

type VInt struct{ V int64 }
type VBool struct{ V bool }
type VString struct{ V string }
type VUnit struct{}

func (VInt) isValue()    {}
func (VBool) isValue()   {}
func (VString) isValue() {}
func (VUnit) isValue()   {}

// VList is an immutable, homogeneous list stored head-first.
type VList struct{ Items []Value }

func (VList) isValue() {}

// VPair is a binary pair.
type VPair struct{ First, Second Value }

func (VPair) isValue() {}

// VLeft and VRight are the two tags of a sum value.
type VLeft struct{ V Value }
type VRight struct{ V Value }

func (VLeft) isValue()  {}
func (VRight) isValue() {}

// VClosure captures a lambda's parameter, body and defining environment.
type VClosure struct {
	Param string
	Body  *ast.Block
	Env   *Env
}

func (*VClosure) isValue() {}

// VNativeClosure is a callable built directly in Go rather than from a
// parsed Lambda — used to realize a FuncDecl's curried parameter chain
// without fabricating synthetic AST nodes (see evaluator.go's curry).
type VNativeClosure struct {
	Param string
	Call  func(e *Evaluator, arg Value) (Value, error)
}

func (*VNativeClosure) isValue() {}

// VFixedPoint wraps a closure produced by fix(f) or a recursive fn
// declaration. Calling it applies the underlying closure with itself
// re-bound as the argument's self-reference (see Evaluator.apply's
// VFixedPoint case), realizing call-by-value recursion without
// a mutable closure cell.
type VFixedPoint struct {
	// Func is f in fix(f): a callable of type a -> a whose result, once
	// applied to the fixed point itself, is the recursive function.
	Func Value
}

func (*VFixedPoint) isValue() {}

// VModule is the value of a `module.name` bound by importing another file
// (spec.md §3): a namespace of exported bindings.
type VModule struct {
	Path     string
	Bindings map[string]Value
}

func (*VModule) isValue() {}

// ToDisplayString renders v the way the `print` primitive writes it to
// stdout (spec.md §4.3): integers bare, booleans as true/false, strings
// without quotes, lists/pairs/sums structurally, Unit as "()", closures as
// "<function>", fixed points as "<fixed-point>", and modules as
// "<module PATH>".
func ToDisplayString(v Value) string {
	switch x := v.(type) {
	case VInt:
		return fmt.Sprintf("%d", x.V)
	case VBool:
		if x.V {
			return "true"
		}
		return "false"
	case VString:
		return x.V
	case VUnit:
		return "()"
	case VList:
		parts := make([]string, len(x.Items))
		for i, it := range x.Items {
			parts[i] = ToDisplayString(it)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case VPair:
		return "(" + ToDisplayString(x.First) + ", " + ToDisplayString(x.Second) + ")"
	case VLeft:
		return "Left(" + ToDisplayString(x.V) + ")"
	case VRight:
		return "Right(" + ToDisplayString(x.V) + ")"
	case *VClosure, *VNativeClosure:
		return "<function>"
	case *VFixedPoint:
		return "<fixed-point>"
	case *VModule:
		return "<module " + x.Path + ">"
	default:
		return fmt.Sprintf("%v", v)
	}
}
