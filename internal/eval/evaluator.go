package eval

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/corrosion-lang/corrosion/internal/ast"
	"github.com/corrosion-lang/corrosion/internal/errors"
	"github.com/corrosion-lang/corrosion/internal/types"
)

// ImportLoader type-checks, evaluates and caches the module named by an
// `import` path, returning its exported bindings as a VModule. Injected by
// internal/module so this package never imports it back.
type ImportLoader func(path string) (*VModule, error)

// Evaluator walks a checked AST and produces values (spec.md §4.3).
// Types holds each expression's statically-inferred type, used only by the
// `type` primitive, which reports the argument's static type (e.g.
// "FixedPoint" for a recursive function) rather than inspecting its
// runtime value.
type Evaluator struct {
	Types  map[ast.Expr]types.Ty
	Loader ImportLoader
	Out    io.Writer
}

// NewEvaluator creates an Evaluator. decorations is normally
// (*types.Checker).FinalDecorations() for the program being run.
func NewEvaluator(decorations map[ast.Expr]types.Ty, loader ImportLoader, out io.Writer) *Evaluator {
	return &Evaluator{Types: decorations, Loader: loader, Out: out}
}

func runtimeErr(pos ast.Pos, code errors.Code, format string, args ...interface{}) error {
	return errors.NewRuntimeError(code, pos, fmt.Sprintf(format, args...))
}

// EvalProgram runs every top-level statement against env in order,
// stopping at the first error.
func (e *Evaluator) EvalProgram(prog *ast.Program, env *Env) error {
	for _, stmt := range prog.Stmts {
		if err := e.evalStmt(stmt, env); err != nil {
			return err
		}
	}
	return nil
}

func (e *Evaluator) evalStmt(stmt ast.Expr, env *Env) error {
	switch s := stmt.(type) {
	case *ast.LetStmt:
		v, err := e.eval(s.Value, env)
		if err != nil {
			return err
		}
		env.Define(s.Name, v)
		return nil
	case *ast.FuncDecl:
		return e.evalFuncDecl(s, env)
	case *ast.ImportDecl:
		return e.evalImport(s, env)
	default:
		_, err := e.eval(stmt, env)
		return err
	}
}

func (e *Evaluator) evalImport(s *ast.ImportDecl, env *Env) error {
	if e.Loader == nil {
		return runtimeErr(s.Sp.Start, errors.EvaImportFailed, "cannot load \"%s\"", s.Path)
	}
	mod, err := e.Loader(s.Path)
	if err != nil {
		return runtimeErr(s.Sp.Start, errors.EvaImportFailed, "%s", err.Error())
	}
	env.Define(s.Alias, mod)
	return nil
}

// evalFuncDecl binds f.Name to a value with the same runtime behavior as
// the desugaring `let name = fix(fn(name){ fn(p1){ ... } });` (spec.md
// §4.1). A zero-parameter declaration cannot be a fixed point of a
// function, so its body is evaluated once and bound directly.
func (e *Evaluator) evalFuncDecl(f *ast.FuncDecl, env *Env) error {
	if len(f.Params) == 0 {
		v, err := e.evalBlock(f.Body, env)
		if err != nil {
			return err
		}
		env.Define(f.Name, v)
		return nil
	}

	params := f.Params
	body := f.Body
	step := &VNativeClosure{
		Param: f.Name,
		Call: func(ev *Evaluator, self Value) (Value, error) {
			scope := env.Child()
			scope.Define(f.Name, self)
			return curry(params, body, scope), nil
		},
	}
	env.Define(f.Name, &VFixedPoint{Func: step})
	return nil
}

// curry builds the nested single-argument closure chain for a multi-
// parameter function. Supplying all but the last parameter only
// constructs further closures; the innermost one, once applied, evaluates
// body.
func curry(params []ast.Param, body *ast.Block, scope *Env) Value {
	if len(params) == 1 {
		return &VClosure{Param: params[0].Name, Body: body, Env: scope}
	}
	p := params[0]
	rest := params[1:]
	return &VNativeClosure{
		Param: p.Name,
		Call: func(ev *Evaluator, arg Value) (Value, error) {
			child := scope.Child()
			child.Define(p.Name, arg)
			return curry(rest, body, child), nil
		},
	}
}

// evalBlock evaluates a block's statements in a fresh child scope and
// returns its trailing expression's value, or Unit.
func (e *Evaluator) evalBlock(b *ast.Block, parent *Env) (Value, error) {
	scope := parent.Child()
	for _, s := range b.Stmts {
		if err := e.evalStmt(s, scope); err != nil {
			return nil, err
		}
	}
	if b.Tail == nil {
		return VUnit{}, nil
	}
	return e.eval(b.Tail, scope)
}

// eval is the call-by-value recursive evaluation of a value-form
// expression.
func (e *Evaluator) eval(expr ast.Expr, env *Env) (Value, error) {
	switch n := expr.(type) {
	case *ast.IntLit:
		return VInt{V: n.Value}, nil
	case *ast.BoolLit:
		return VBool{V: n.Value}, nil
	case *ast.StringLit:
		return VString{V: n.Value}, nil
	case *ast.UnitLit:
		return VUnit{}, nil

	case *ast.Ident:
		v, ok := env.Lookup(n.Name)
		if !ok {
			return nil, runtimeErr(n.Sp.Start, errors.TCUndefined, "Undefined variable '%s'", n.Name)
		}
		return v, nil

	case *ast.QualifiedIdent:
		modVal, ok := env.Lookup(n.Module)
		if !ok {
			return nil, runtimeErr(n.Sp.Start, errors.TCUndefined, "Undefined variable '%s'", n.Module+"."+n.Name)
		}
		mod, ok := modVal.(*VModule)
		if !ok {
			return nil, runtimeErr(n.Sp.Start, errors.TCUndefined, "'%s' is not a module", n.Module)
		}
		v, ok := mod.Bindings[n.Name]
		if !ok {
			return nil, runtimeErr(n.Sp.Start, errors.TCUndefined, "Undefined variable '%s'", n.Module+"."+n.Name)
		}
		return v, nil

	case *ast.ListLit:
		items := make([]Value, len(n.Elements))
		for i, el := range n.Elements {
			v, err := e.eval(el, env)
			if err != nil {
				return nil, err
			}
			items[i] = v
		}
		return VList{Items: items}, nil

	case *ast.PairLit:
		first, err := e.eval(n.First, env)
		if err != nil {
			return nil, err
		}
		second, err := e.eval(n.Second, env)
		if err != nil {
			return nil, err
		}
		return VPair{First: first, Second: second}, nil

	case *ast.BinaryExpr:
		return e.evalBinary(n, env)

	case *ast.UnaryExpr:
		return e.evalUnary(n, env)

	case *ast.IfExpr:
		cond, err := e.eval(n.Cond, env)
		if err != nil {
			return nil, err
		}
		if cond.(VBool).V {
			return e.evalBlock(n.Then, env)
		}
		if n.Else == nil {
			return VUnit{}, nil
		}
		return e.evalBlock(n.Else, env)

	case *ast.ForExpr:
		return e.evalFor(n, env)

	case *ast.Lambda:
		return &VClosure{Param: n.Param.Name, Body: n.Body, Env: env}, nil

	case *ast.CallExpr:
		fn, err := e.eval(n.Func, env)
		if err != nil {
			return nil, err
		}
		arg, err := e.eval(n.Arg, env)
		if err != nil {
			return nil, err
		}
		return e.apply(n.Sp.Start, fn, arg)

	case *ast.FixExpr:
		f, err := e.eval(n.Func, env)
		if err != nil {
			return nil, err
		}
		return &VFixedPoint{Func: f}, nil

	case *ast.PrimCall:
		return e.evalPrim(n, env)

	case *ast.InlExpr:
		v, err := e.eval(n.Value, env)
		if err != nil {
			return nil, err
		}
		return VLeft{V: v}, nil

	case *ast.InrExpr:
		v, err := e.eval(n.Value, env)
		if err != nil {
			return nil, err
		}
		return VRight{V: v}, nil

	case *ast.CaseExpr:
		return e.evalCase(n, env)

	case *ast.Block:
		return e.evalBlock(n, env)

	default:
		return nil, runtimeErr(expr.Span().Start, errors.TCMismatch, "cannot evaluate %T", expr)
	}
}

// apply is the single entry point for calling any callable value,
// including realizing fix(f)'s self-application (spec.md §4.1: "fix(f)
// behaves as f(fix(f))").
func (e *Evaluator) apply(pos ast.Pos, fn Value, arg Value) (Value, error) {
	switch f := fn.(type) {
	case *VClosure:
		child := f.Env.Child()
		child.Define(f.Param, arg)
		return e.evalBlock(f.Body, child)
	case *VNativeClosure:
		return f.Call(e, arg)
	case *VFixedPoint:
		real, err := e.apply(pos, f.Func, fn)
		if err != nil {
			return nil, err
		}
		return e.apply(pos, real, arg)
	default:
		return nil, runtimeErr(pos, errors.TCMismatch, "value is not callable")
	}
}

func (e *Evaluator) evalFor(n *ast.ForExpr, env *Env) (Value, error) {
	iterVal, err := e.eval(n.Iter, env)
	if err != nil {
		return nil, err
	}
	list, ok := iterVal.(VList)
	if !ok {
		return nil, runtimeErr(n.Iter.Span().Start, errors.TCMismatch, "for requires a list")
	}
	for _, item := range list.Items {
		scope := env.Child()
		scope.Define(n.Var, item)
		if _, err := e.evalBlock(n.Body, scope); err != nil {
			return nil, err
		}
	}
	return VUnit{}, nil
}

func (e *Evaluator) evalCase(n *ast.CaseExpr, env *Env) (Value, error) {
	scrut, err := e.eval(n.Scrutinee, env)
	if err != nil {
		return nil, err
	}
	switch v := scrut.(type) {
	case VLeft:
		scope := env.Child()
		scope.Define(n.LeftVar, v.V)
		return e.eval(n.LeftBody, scope)
	case VRight:
		scope := env.Child()
		scope.Define(n.RightVar, v.V)
		return e.eval(n.RightBody, scope)
	default:
		return nil, runtimeErr(n.Sp.Start, errors.TCMismatch, "case requires a sum value")
	}
}

func (e *Evaluator) evalUnary(n *ast.UnaryExpr, env *Env) (Value, error) {
	v, err := e.eval(n.Operand, env)
	if err != nil {
		return nil, err
	}
	switch n.Op {
	case ast.OpNot:
		return VBool{V: !v.(VBool).V}, nil
	case ast.OpNeg:
		return VInt{V: -v.(VInt).V}, nil
	default:
		return nil, runtimeErr(n.Sp.Start, errors.TCInvalidOp, "unknown unary operator '%s'", n.Op)
	}
}

func (e *Evaluator) evalBinary(n *ast.BinaryExpr, env *Env) (Value, error) {
	left, err := e.eval(n.Left, env)
	if err != nil {
		return nil, err
	}

	// && and || short-circuit: the right operand is only evaluated when
	// it can affect the result (spec.md §4.3).
	if n.Op == ast.OpAnd {
		if !left.(VBool).V {
			return VBool{V: false}, nil
		}
		right, err := e.eval(n.Right, env)
		if err != nil {
			return nil, err
		}
		return VBool{V: right.(VBool).V}, nil
	}
	if n.Op == ast.OpOr {
		if left.(VBool).V {
			return VBool{V: true}, nil
		}
		right, err := e.eval(n.Right, env)
		if err != nil {
			return nil, err
		}
		return VBool{V: right.(VBool).V}, nil
	}

	right, err := e.eval(n.Right, env)
	if err != nil {
		return nil, err
	}

	switch n.Op {
	case ast.OpAdd:
		if ls, ok := left.(VString); ok {
			return VString{V: ls.V + right.(VString).V}, nil
		}
		return VInt{V: left.(VInt).V + right.(VInt).V}, nil
	case ast.OpSub:
		return VInt{V: left.(VInt).V - right.(VInt).V}, nil
	case ast.OpMul:
		return VInt{V: left.(VInt).V * right.(VInt).V}, nil
	case ast.OpDiv:
		divisor := right.(VInt).V
		if divisor == 0 {
			return nil, runtimeErr(n.Sp.Start, errors.EvaDivByZero, "division by zero")
		}
		return VInt{V: left.(VInt).V / divisor}, nil
	case ast.OpEq:
		return VBool{V: valueEqual(left, right)}, nil
	case ast.OpNeq:
		return VBool{V: !valueEqual(left, right)}, nil
	case ast.OpLt, ast.OpLte, ast.OpGt, ast.OpGte:
		return VBool{V: compareValues(n.Op, left, right)}, nil
	default:
		return nil, runtimeErr(n.Sp.Start, errors.TCInvalidOp, "unknown binary operator '%s'", n.Op)
	}
}

func compareValues(op ast.BinOp, left, right Value) bool {
	if ls, ok := left.(VString); ok {
		rs := right.(VString)
		c := strings.Compare(ls.V, rs.V)
		return compareInt(op, c, 0)
	}
	l, r := left.(VInt).V, right.(VInt).V
	return compareInt(op, int(l), int(r))
}

func compareInt(op ast.BinOp, l, r int) bool {
	switch op {
	case ast.OpLt:
		return l < r
	case ast.OpLte:
		return l <= r
	case ast.OpGt:
		return l > r
	case ast.OpGte:
		return l >= r
	}
	return false
}

// valueEqual is structural equality over the value shapes the type
// checker allows at '==' (arrow-typed operands are rejected before
// evaluation ever sees them).
func valueEqual(a, b Value) bool {
	switch x := a.(type) {
	case VInt:
		y, ok := b.(VInt)
		return ok && x.V == y.V
	case VBool:
		y, ok := b.(VBool)
		return ok && x.V == y.V
	case VString:
		y, ok := b.(VString)
		return ok && x.V == y.V
	case VUnit:
		_, ok := b.(VUnit)
		return ok
	case VList:
		y, ok := b.(VList)
		if !ok || len(x.Items) != len(y.Items) {
			return false
		}
		for i := range x.Items {
			if !valueEqual(x.Items[i], y.Items[i]) {
				return false
			}
		}
		return true
	case VPair:
		y, ok := b.(VPair)
		return ok && valueEqual(x.First, y.First) && valueEqual(x.Second, y.Second)
	case VLeft:
		y, ok := b.(VLeft)
		return ok && valueEqual(x.V, y.V)
	case VRight:
		y, ok := b.(VRight)
		return ok && valueEqual(x.V, y.V)
	default:
		return false
	}
}

func (e *Evaluator) evalPrim(n *ast.PrimCall, env *Env) (Value, error) {
	args := make([]Value, len(n.Args))
	for i, a := range n.Args {
		v, err := e.eval(a, env)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}
	pos := n.Sp.Start

	switch n.Kind {
	case ast.PrimCons:
		list := args[1].(VList)
		items := make([]Value, 0, len(list.Items)+1)
		items = append(items, args[0])
		items = append(items, list.Items...)
		return VList{Items: items}, nil

	case ast.PrimHead:
		list := args[0].(VList)
		if len(list.Items) == 0 {
			return nil, runtimeErr(pos, errors.EvaEmptyList, "head of an empty list")
		}
		return list.Items[0], nil

	case ast.PrimTail:
		list := args[0].(VList)
		if len(list.Items) == 0 {
			return nil, runtimeErr(pos, errors.EvaEmptyList, "tail of an empty list")
		}
		return VList{Items: list.Items[1:]}, nil

	case ast.PrimFst:
		return args[0].(VPair).First, nil

	case ast.PrimSnd:
		return args[0].(VPair).Second, nil

	case ast.PrimRange:
		lo, hi := args[0].(VInt).V, args[1].(VInt).V
		items := make([]Value, 0)
		for i := lo; i < hi; i++ {
			items = append(items, VInt{V: i})
		}
		return VList{Items: items}, nil

	case ast.PrimPrint:
		fmt.Fprintln(e.Out, ToDisplayString(args[0]))
		return VUnit{}, nil

	case ast.PrimType:
		t, ok := e.Types[n.Args[0]]
		if !ok {
			return VString{V: "unknown"}, nil
		}
		return VString{V: t.String()}, nil

	case ast.PrimLength:
		return VInt{V: int64(len([]rune(args[0].(VString).V)))}, nil

	case ast.PrimChar:
		s, idx := args[0].(VString).V, args[1].(VInt).V
		runes := []rune(s)
		if idx < 0 || int(idx) >= len(runes) {
			return nil, runtimeErr(pos, errors.EvaIndexRange, "index %d out of range for string of length %d", idx, len(runes))
		}
		return VString{V: string(runes[idx])}, nil

	case ast.PrimConcat:
		return VString{V: args[0].(VString).V + args[1].(VString).V}, nil

	case ast.PrimToString:
		if s, ok := args[0].(VInt); ok {
			return VString{V: strconv.FormatInt(s.V, 10)}, nil
		}
		return VString{V: ToDisplayString(args[0])}, nil

	default:
		return nil, runtimeErr(pos, errors.TCMismatch, "unknown primitive '%s'", n.Kind)
	}
}
