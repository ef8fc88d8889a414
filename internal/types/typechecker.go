package types

import (
	"fmt"

	"github.com/corrosion-lang/corrosion/internal/ast"
	"github.com/corrosion-lang/corrosion/internal/errors"
)

// Exports is the set of top-level bindings a checked module offers to an
// importer, keyed by name (spec.md §3's Module value's "types" map).
type Exports map[string]Ty

// ImportResolver type-checks (and, transitively, loads) the file named by
// an `import` path and returns its exported types. Injected by
// internal/module so this package never imports it back (avoids a
// parser/types/eval/module import cycle).
type ImportResolver func(path string) (Exports, error)

// Checker performs Corrosion's Hindley–Milner-style inference (spec.md §4.2).
type Checker struct {
	sub     Substitution
	counter varCounter
	modules map[string]Exports

	// Decorations records every expression's inferred (and fully resolved)
	// type, the "decorated AST" spec.md §2 describes. Populated as
	// checking proceeds; read by the evaluator's `type` primitive (via
	// FinalDecorations) and by the REPL's `:type` command (via ResolvedType).
	Decorations map[ast.Expr]Ty

	Resolver ImportResolver
}

// NewChecker creates a Checker. resolver may be nil if the program being
// checked contains no import statements (e.g. a dependency-free script).
func NewChecker(resolver ImportResolver) *Checker {
	return &Checker{
		sub:         make(Substitution),
		modules:     make(map[string]Exports),
		Decorations: make(map[ast.Expr]Ty),
		Resolver:    resolver,
	}
}

func (c *Checker) fresh() Ty { return c.counter.fresh() }

func (c *Checker) decorate(e ast.Expr, t Ty) Ty {
	c.Decorations[e] = t
	return t
}

// ResolvedType returns e's final type after CheckProgram has run, with all
// substitutions applied.
func (c *Checker) ResolvedType(e ast.Expr) Ty {
	t, ok := c.Decorations[e]
	if !ok {
		return TUnknown{}
	}
	return Apply(c.sub, t)
}

// CheckProgram type-checks every top-level statement against env in
// source order, stopping at the first error (spec.md §7: "no error
// recovery").
func (c *Checker) CheckProgram(prog *ast.Program, env *Env) error {
	for _, stmt := range prog.Stmts {
		if err := c.checkStmt(stmt, env); err != nil {
			return err
		}
	}
	return nil
}

// FinalDecorations resolves every recorded expression type against the
// finished substitution, for the evaluator's `type` primitive, which needs
// each node's fully-applied static type, not the possibly-still-open type
// recorded the moment it was inferred.
func (c *Checker) FinalDecorations() map[ast.Expr]Ty {
	out := make(map[ast.Expr]Ty, len(c.Decorations))
	for k, v := range c.Decorations {
		out[k] = Apply(c.sub, v)
	}
	return out
}

// Export snapshots env's locally-bound names with substitutions applied,
// for use as an importer's Exports.
func (c *Checker) Export(env *Env) Exports {
	out := make(Exports)
	for name, t := range env.vars {
		out[name] = Apply(c.sub, t)
	}
	return out
}

func typeErr(pos ast.Pos, code errors.Code, format string, args ...interface{}) error {
	return errors.NewTypeError(code, pos, fmt.Sprintf(format, args...))
}

// unifyErr turns a Unify failure into the spec's canonical diagnostic:
// `Type mismatch at L:C: expected 'A', found 'B'` for a head-constructor
// clash, or a TC005 occurs-check message for an infinite type.
func unifyErr(pos ast.Pos, err error) error {
	if me, ok := err.(*mismatchErr); ok {
		return errors.NewTypeMismatchError(pos, renderForError(me.expected), renderForError(me.found))
	}
	if oe, ok := err.(*occursErr); ok {
		return errors.NewTypeError(errors.TCOccursCheck, pos, oe.Error())
	}
	return errors.NewTypeError(errors.TCMismatch, pos, err.Error())
}

// mismatchAt builds the same diagnostic directly from already-resolved
// expected/found types, for call sites that know both sides without
// going through Unify.
func mismatchAt(pos ast.Pos, expected, found Ty) error {
	return mismatchText(pos, renderForError(expected), found)
}

// mismatchText builds the diagnostic from a literal expected-side string,
// for the two constructs whose placeholder text isn't the generic
// "unknown" sentinel: a non-pair argument reports expected '(error,
// error)', a non-list argument reports expected 'List unknown'
// (spec.md §4.2).
func mismatchText(pos ast.Pos, expectedText string, found Ty) error {
	return errors.NewTypeMismatchError(pos, expectedText, renderForError(found))
}

// checkStmt handles both top-level statements and statements inside a
// block: declarations bind into env; bare expressions are inferred and
// their type discarded (only side effect is any error raised).
func (c *Checker) checkStmt(stmt ast.Expr, env *Env) error {
	switch s := stmt.(type) {
	case *ast.LetStmt:
		return c.checkLet(s, env)
	case *ast.FuncDecl:
		return c.checkFuncDecl(s, env)
	case *ast.ImportDecl:
		return c.checkImport(s, env)
	default:
		_, err := c.infer(stmt, env)
		return err
	}
}

func (c *Checker) checkLet(s *ast.LetStmt, env *Env) error {
	valueTy, err := c.infer(s.Value, env)
	if err != nil {
		return err
	}
	if s.TypeAnn != nil {
		annTy, ok := FromTypeExpr(s.TypeAnn)
		if !ok {
			return typeErr(s.Sp.Start, errors.TCMismatch, "Unknown type annotation '%s'", s.TypeAnn.String())
		}
		if err := Unify(c.sub, valueTy, annTy); err != nil {
			return unifyErr(s.Sp.Start, err)
		}
	}
	if env.DefinedInScope(s.Name) {
		return typeErr(s.Sp.Start, errors.TCRedefined, "Variable '%s' redefined", s.Name)
	}
	env.Define(s.Name, valueTy)
	return nil
}

func (c *Checker) checkImport(s *ast.ImportDecl, env *Env) error {
	if c.Resolver == nil {
		return errors.NewTypeError(errors.TCMismatch, s.Sp.Start, fmt.Sprintf("cannot resolve import \"%s\"", s.Path))
	}
	exports, err := c.Resolver(s.Path)
	if err != nil {
		return errors.NewTypeError(errors.TCMismatch, s.Sp.Start, err.Error())
	}
	c.modules[s.Alias] = exports
	return nil
}

// checkFuncDecl types a named declaration with the same rule as its
// fix-based desugaring (spec.md §4.1, §4.2): the declared name is bound,
// inside its own body, to a fixed point of the curried arrow built from
// its parameters, enabling direct recursion by name. A zero-parameter
// declaration cannot be a fixed point of a function type (spec.md's Ty
// invariant: "Arrow is never nullary"), so it degrades to an ordinary,
// non-recursive let-binding of its body's value.
func (c *Checker) checkFuncDecl(f *ast.FuncDecl, env *Env) error {
	if env.DefinedInScope(f.Name) {
		return typeErr(f.Sp.Start, errors.TCRedefined, "Variable '%s' redefined", f.Name)
	}

	if len(f.Params) == 0 {
		bodyScope := env.Child()
		bodyTy, err := c.inferBlock(f.Body, bodyScope)
		if err != nil {
			return err
		}
		if f.RetType != nil {
			retTy, ok := FromTypeExpr(f.RetType)
			if !ok {
				return typeErr(f.Sp.Start, errors.TCMismatch, "Unknown type annotation '%s'", f.RetType.String())
			}
			if err := Unify(c.sub, bodyTy, retTy); err != nil {
				return unifyErr(f.Sp.Start, err)
			}
		}
		env.Define(f.Name, bodyTy)
		return nil
	}

	selfVar := c.fresh()
	selfScope := env.Child()
	selfScope.Define(f.Name, TFix{Inner: selfVar})

	paramScope := selfScope
	paramTys := make([]Ty, len(f.Params))
	for i, p := range f.Params {
		pt := c.fresh()
		if p.TypeAnn != nil {
			annTy, ok := FromTypeExpr(p.TypeAnn)
			if !ok {
				return typeErr(f.Sp.Start, errors.TCMismatch, "Unknown type annotation '%s'", p.TypeAnn.String())
			}
			if err := Unify(c.sub, pt, annTy); err != nil {
				return unifyErr(f.Sp.Start, err)
			}
		}
		paramTys[i] = pt
		child := paramScope.Child()
		child.Define(p.Name, pt)
		paramScope = child
	}

	bodyTy, err := c.inferBlock(f.Body, paramScope)
	if err != nil {
		return err
	}
	if f.RetType != nil {
		retTy, ok := FromTypeExpr(f.RetType)
		if !ok {
			return typeErr(f.Sp.Start, errors.TCMismatch, "Unknown type annotation '%s'", f.RetType.String())
		}
		if err := Unify(c.sub, bodyTy, retTy); err != nil {
			return unifyErr(f.Sp.Start, err)
		}
	}

	arrowTy := bodyTy
	for i := len(paramTys) - 1; i >= 0; i-- {
		arrowTy = TArrow{Param: paramTys[i], Result: arrowTy}
	}
	if err := Unify(c.sub, selfVar, arrowTy); err != nil {
		return unifyErr(f.Sp.Start, err)
	}

	env.Define(f.Name, TFix{Inner: Apply(c.sub, arrowTy)})
	return nil
}

// inferBlock type-checks a block's statements in a fresh child scope and
// returns its value type: the tail expression's type, or Unit.
func (c *Checker) inferBlock(b *ast.Block, parent *Env) (Ty, error) {
	scope := parent.Child()
	for _, s := range b.Stmts {
		if err := c.checkStmt(s, scope); err != nil {
			return nil, err
		}
	}
	if b.Tail == nil {
		return TUnit{}, nil
	}
	return c.infer(b.Tail, scope)
}

// infer is the constraint-generating recursive walk over value-form
// expressions (spec.md §4.2's "Rules by construct").
func (c *Checker) infer(e ast.Expr, env *Env) (Ty, error) {
	switch n := e.(type) {
	case *ast.IntLit:
		return c.decorate(n, TInt{}), nil
	case *ast.BoolLit:
		return c.decorate(n, TBool{}), nil
	case *ast.StringLit:
		return c.decorate(n, TString{}), nil
	case *ast.UnitLit:
		return c.decorate(n, TUnit{}), nil

	case *ast.Ident:
		t, ok := env.Lookup(n.Name)
		if !ok {
			return nil, typeErr(n.Sp.Start, errors.TCUndefined, "Undefined variable '%s'", n.Name)
		}
		return c.decorate(n, t), nil

	case *ast.QualifiedIdent:
		exports, ok := c.modules[n.Module]
		if !ok {
			return nil, typeErr(n.Sp.Start, errors.TCUndefined, "Undefined variable '%s'", n.Module+"."+n.Name)
		}
		t, ok := exports[n.Name]
		if !ok {
			return nil, typeErr(n.Sp.Start, errors.TCUndefined, "Undefined variable '%s'", n.Module+"."+n.Name)
		}
		return c.decorate(n, t), nil

	case *ast.ListLit:
		return c.inferList(n, env)

	case *ast.PairLit:
		first, err := c.infer(n.First, env)
		if err != nil {
			return nil, err
		}
		second, err := c.infer(n.Second, env)
		if err != nil {
			return nil, err
		}
		return c.decorate(n, TPair{First: first, Second: second}), nil

	case *ast.BinaryExpr:
		return c.inferBinary(n, env)

	case *ast.UnaryExpr:
		return c.inferUnary(n, env)

	case *ast.IfExpr:
		return c.inferIf(n, env)

	case *ast.ForExpr:
		return c.inferFor(n, env)

	case *ast.Lambda:
		return c.inferLambda(n, env)

	case *ast.CallExpr:
		return c.inferCall(n, env)

	case *ast.FixExpr:
		return c.inferFix(n, env)

	case *ast.PrimCall:
		return c.inferPrim(n, env)

	case *ast.InlExpr:
		v, err := c.infer(n.Value, env)
		if err != nil {
			return nil, err
		}
		return c.decorate(n, TSum{Left: v, Right: c.fresh()}), nil

	case *ast.InrExpr:
		v, err := c.infer(n.Value, env)
		if err != nil {
			return nil, err
		}
		return c.decorate(n, TSum{Left: c.fresh(), Right: v}), nil

	case *ast.CaseExpr:
		return c.inferCase(n, env)

	case *ast.Block:
		return c.inferBlock(n, env)

	default:
		return nil, typeErr(e.Span().Start, errors.TCMismatch, "cannot type-check %T", e)
	}
}

func (c *Checker) inferList(n *ast.ListLit, env *Env) (Ty, error) {
	elemTy := Ty(c.fresh())
	for _, el := range n.Elements {
		t, err := c.infer(el, env)
		if err != nil {
			return nil, err
		}
		if err := Unify(c.sub, elemTy, t); err != nil {
			return nil, mismatchAt(el.Span().Start, Apply(c.sub, elemTy), Apply(c.sub, t))
		}
	}
	return c.decorate(n, TList{Elem: elemTy}), nil
}

func (c *Checker) inferBinary(n *ast.BinaryExpr, env *Env) (Ty, error) {
	lt, err := c.infer(n.Left, env)
	if err != nil {
		return nil, err
	}
	rt, err := c.infer(n.Right, env)
	if err != nil {
		return nil, err
	}

	pos := n.Sp.Start
	invalidOp := func() error {
		return errors.NewInvalidOpError(pos, renderForError(Apply(c.sub, lt)), string(n.Op), renderForError(Apply(c.sub, rt)))
	}

	switch n.Op {
	case ast.OpAdd:
		// '+' is overloaded for strings (spec.md §4.2).
		if isString(c.sub, lt) || isString(c.sub, rt) {
			if err := Unify(c.sub, lt, TString{}); err != nil {
				return nil, invalidOp()
			}
			if err := Unify(c.sub, rt, TString{}); err != nil {
				return nil, invalidOp()
			}
			return c.decorate(n, TString{}), nil
		}
		if err := Unify(c.sub, lt, TInt{}); err != nil {
			return nil, invalidOp()
		}
		if err := Unify(c.sub, rt, TInt{}); err != nil {
			return nil, invalidOp()
		}
		return c.decorate(n, TInt{}), nil

	case ast.OpSub, ast.OpMul, ast.OpDiv:
		if err := Unify(c.sub, lt, TInt{}); err != nil {
			return nil, invalidOp()
		}
		if err := Unify(c.sub, rt, TInt{}); err != nil {
			return nil, invalidOp()
		}
		return c.decorate(n, TInt{}), nil

	case ast.OpEq, ast.OpNeq:
		// Structural equality over any unifiable shape; closures unify
		// only by identity (never structurally), so equating two arrow
		// types is rejected here (spec.md §9 open question, resolved).
		if isArrow(c.sub, lt) || isArrow(c.sub, rt) {
			return nil, invalidOp()
		}
		if err := Unify(c.sub, lt, rt); err != nil {
			return nil, invalidOp()
		}
		return c.decorate(n, TBool{}), nil

	case ast.OpLt, ast.OpLte, ast.OpGt, ast.OpGte:
		// Relational ops are defined over Int and String (lexicographic);
		// Bool has no natural order, so it is excluded (spec.md §9 open
		// question, resolved).
		if err := Unify(c.sub, lt, rt); err != nil {
			return nil, invalidOp()
		}
		resolved := Resolve(c.sub, lt)
		if _, ok := resolved.(TInt); !ok {
			if _, ok := resolved.(TString); !ok {
				return nil, invalidOp()
			}
		}
		return c.decorate(n, TBool{}), nil

	case ast.OpAnd, ast.OpOr:
		if err := Unify(c.sub, lt, TBool{}); err != nil {
			return nil, invalidOp()
		}
		if err := Unify(c.sub, rt, TBool{}); err != nil {
			return nil, invalidOp()
		}
		return c.decorate(n, TBool{}), nil

	default:
		return nil, invalidOp()
	}
}

func (c *Checker) inferUnary(n *ast.UnaryExpr, env *Env) (Ty, error) {
	t, err := c.infer(n.Operand, env)
	if err != nil {
		return nil, err
	}
	switch n.Op {
	case ast.OpNot:
		if err := Unify(c.sub, t, TBool{}); err != nil {
			return nil, unifyErr(n.Sp.Start, err)
		}
		return c.decorate(n, TBool{}), nil
	case ast.OpNeg:
		if err := Unify(c.sub, t, TInt{}); err != nil {
			return nil, unifyErr(n.Sp.Start, err)
		}
		return c.decorate(n, TInt{}), nil
	default:
		return nil, typeErr(n.Sp.Start, errors.TCInvalidOp, "unknown unary operator '%s'", n.Op)
	}
}

func (c *Checker) inferIf(n *ast.IfExpr, env *Env) (Ty, error) {
	condTy, err := c.infer(n.Cond, env)
	if err != nil {
		return nil, err
	}
	if err := Unify(c.sub, condTy, TBool{}); err != nil {
		return nil, mismatchAt(n.Cond.Span().Start, TBool{}, Apply(c.sub, condTy))
	}

	thenTy, err := c.inferBlock(n.Then, env)
	if err != nil {
		return nil, err
	}

	if n.Else == nil {
		if err := Unify(c.sub, thenTy, TUnit{}); err != nil {
			return nil, mismatchAt(n.Sp.Start, TUnit{}, Apply(c.sub, thenTy))
		}
		return c.decorate(n, TUnit{}), nil
	}

	elseTy, err := c.inferBlock(n.Else, env)
	if err != nil {
		return nil, err
	}
	if err := Unify(c.sub, thenTy, elseTy); err != nil {
		return nil, mismatchAt(n.Sp.Start, Apply(c.sub, thenTy), Apply(c.sub, elseTy))
	}
	return c.decorate(n, Apply(c.sub, thenTy)), nil
}

func (c *Checker) inferFor(n *ast.ForExpr, env *Env) (Ty, error) {
	iterTy, err := c.infer(n.Iter, env)
	if err != nil {
		return nil, err
	}
	elemTy := Ty(c.fresh())
	if err := Unify(c.sub, iterTy, TList{Elem: elemTy}); err != nil {
		return nil, mismatchText(n.Iter.Span().Start, "List unknown", Apply(c.sub, iterTy))
	}

	scope := env.Child()
	scope.Define(n.Var, elemTy)
	bodyTy, err := c.inferBlock(n.Body, scope)
	if err != nil {
		return nil, err
	}
	if err := Unify(c.sub, bodyTy, TUnit{}); err != nil {
		return nil, mismatchAt(n.Body.Sp.Start, TUnit{}, Apply(c.sub, bodyTy))
	}
	return c.decorate(n, TUnit{}), nil
}

func (c *Checker) inferLambda(n *ast.Lambda, env *Env) (Ty, error) {
	paramTy := Ty(c.fresh())
	if n.Param.TypeAnn != nil {
		annTy, ok := FromTypeExpr(n.Param.TypeAnn)
		if !ok {
			return nil, typeErr(n.Sp.Start, errors.TCMismatch, "Unknown type annotation '%s'", n.Param.TypeAnn.String())
		}
		if err := Unify(c.sub, paramTy, annTy); err != nil {
			return nil, unifyErr(n.Sp.Start, err)
		}
	}
	scope := env.Child()
	scope.Define(n.Param.Name, paramTy)
	bodyTy, err := c.inferBlock(n.Body, scope)
	if err != nil {
		return nil, err
	}
	return c.decorate(n, TArrow{Param: Apply(c.sub, paramTy), Result: bodyTy}), nil
}

func (c *Checker) inferCall(n *ast.CallExpr, env *Env) (Ty, error) {
	fnTy, err := c.infer(n.Func, env)
	if err != nil {
		return nil, err
	}
	argTy, err := c.infer(n.Arg, env)
	if err != nil {
		return nil, err
	}
	callee := unwrapFix(c.sub, fnTy)
	resultTy := c.fresh()
	if err := Unify(c.sub, callee, TArrow{Param: argTy, Result: resultTy}); err != nil {
		return nil, mismatchAt(n.Sp.Start, Apply(c.sub, callee), Apply(c.sub, TArrow{Param: argTy, Result: resultTy}))
	}
	return c.decorate(n, resultTy), nil
}

func (c *Checker) inferFix(n *ast.FixExpr, env *Env) (Ty, error) {
	fTy, err := c.infer(n.Func, env)
	if err != nil {
		return nil, err
	}
	alpha := c.fresh()
	if err := Unify(c.sub, fTy, TArrow{Param: alpha, Result: alpha}); err != nil {
		return nil, mismatchAt(n.Sp.Start, TArrow{Param: TUnknown{}, Result: TUnknown{}}, Apply(c.sub, fTy))
	}
	resolvedAlpha := Resolve(c.sub, alpha)
	if _, ok := resolvedAlpha.(TArrow); !ok {
		if _, isVar := resolvedAlpha.(TVar); !isVar {
			return nil, mismatchAt(n.Sp.Start, TArrow{Param: TUnknown{}, Result: TUnknown{}}, resolvedAlpha)
		}
	}
	return c.decorate(n, TFix{Inner: Apply(c.sub, alpha)}), nil
}

func (c *Checker) inferCase(n *ast.CaseExpr, env *Env) (Ty, error) {
	scrutTy, err := c.infer(n.Scrutinee, env)
	if err != nil {
		return nil, err
	}
	leftTy, rightTy := Ty(c.fresh()), Ty(c.fresh())
	if err := Unify(c.sub, scrutTy, TSum{Left: leftTy, Right: rightTy}); err != nil {
		return nil, mismatchAt(n.Sp.Start, TSum{Left: TUnknown{}, Right: TUnknown{}}, Apply(c.sub, scrutTy))
	}

	leftScope := env.Child()
	leftScope.Define(n.LeftVar, leftTy)
	leftResultTy, err := c.infer(n.LeftBody, leftScope)
	if err != nil {
		return nil, err
	}

	rightScope := env.Child()
	rightScope.Define(n.RightVar, rightTy)
	rightResultTy, err := c.infer(n.RightBody, rightScope)
	if err != nil {
		return nil, err
	}

	if err := Unify(c.sub, leftResultTy, rightResultTy); err != nil {
		return nil, mismatchAt(n.Sp.Start, Apply(c.sub, leftResultTy), Apply(c.sub, rightResultTy))
	}
	return c.decorate(n, Apply(c.sub, leftResultTy)), nil
}

// inferPrim types a built-in primitive call. Arity was already enforced by
// the parser (spec.md §4.1's PAR004), so each case can index Args directly.
func (c *Checker) inferPrim(n *ast.PrimCall, env *Env) (Ty, error) {
	argTys := make([]Ty, len(n.Args))
	for i, a := range n.Args {
		t, err := c.infer(a, env)
		if err != nil {
			return nil, err
		}
		argTys[i] = t
	}

	switch n.Kind {
	case ast.PrimCons:
		listTy := TList{Elem: argTys[0]}
		if err := Unify(c.sub, argTys[1], listTy); err != nil {
			return nil, mismatchText(n.Sp.Start, "List unknown", Apply(c.sub, argTys[1]))
		}
		return c.decorate(n, Apply(c.sub, listTy)), nil

	case ast.PrimHead:
		elemTy := Ty(c.fresh())
		if err := Unify(c.sub, argTys[0], TList{Elem: elemTy}); err != nil {
			return nil, mismatchText(n.Sp.Start, "List unknown", Apply(c.sub, argTys[0]))
		}
		return c.decorate(n, elemTy), nil

	case ast.PrimTail:
		elemTy := Ty(c.fresh())
		if err := Unify(c.sub, argTys[0], TList{Elem: elemTy}); err != nil {
			return nil, mismatchText(n.Sp.Start, "List unknown", Apply(c.sub, argTys[0]))
		}
		return c.decorate(n, TList{Elem: elemTy}), nil

	case ast.PrimFst:
		firstTy, secondTy := Ty(c.fresh()), Ty(c.fresh())
		if err := Unify(c.sub, argTys[0], TPair{First: firstTy, Second: secondTy}); err != nil {
			return nil, mismatchText(n.Sp.Start, "(error, error)", Apply(c.sub, argTys[0]))
		}
		return c.decorate(n, firstTy), nil

	case ast.PrimSnd:
		firstTy, secondTy := Ty(c.fresh()), Ty(c.fresh())
		if err := Unify(c.sub, argTys[0], TPair{First: firstTy, Second: secondTy}); err != nil {
			return nil, mismatchText(n.Sp.Start, "(error, error)", Apply(c.sub, argTys[0]))
		}
		return c.decorate(n, secondTy), nil

	case ast.PrimRange:
		if err := Unify(c.sub, argTys[0], TInt{}); err != nil {
			return nil, mismatchAt(n.Sp.Start, TInt{}, Apply(c.sub, argTys[0]))
		}
		if err := Unify(c.sub, argTys[1], TInt{}); err != nil {
			return nil, mismatchAt(n.Sp.Start, TInt{}, Apply(c.sub, argTys[1]))
		}
		return c.decorate(n, TList{Elem: TInt{}}), nil

	case ast.PrimPrint:
		// print accepts any value; it is not polymorphic in the type-system
		// sense, it simply imposes no constraint.
		return c.decorate(n, TUnit{}), nil

	case ast.PrimType:
		return c.decorate(n, TString{}), nil

	case ast.PrimLength:
		if err := Unify(c.sub, argTys[0], TString{}); err != nil {
			return nil, mismatchAt(n.Sp.Start, TString{}, Apply(c.sub, argTys[0]))
		}
		return c.decorate(n, TInt{}), nil

	case ast.PrimChar:
		if err := Unify(c.sub, argTys[0], TString{}); err != nil {
			return nil, mismatchAt(n.Sp.Start, TString{}, Apply(c.sub, argTys[0]))
		}
		if err := Unify(c.sub, argTys[1], TInt{}); err != nil {
			return nil, mismatchAt(n.Sp.Start, TInt{}, Apply(c.sub, argTys[1]))
		}
		return c.decorate(n, TString{}), nil

	case ast.PrimConcat:
		if err := Unify(c.sub, argTys[0], TString{}); err != nil {
			return nil, mismatchAt(n.Sp.Start, TString{}, Apply(c.sub, argTys[0]))
		}
		if err := Unify(c.sub, argTys[1], TString{}); err != nil {
			return nil, mismatchAt(n.Sp.Start, TString{}, Apply(c.sub, argTys[1]))
		}
		return c.decorate(n, TString{}), nil

	case ast.PrimToString:
		return c.decorate(n, TString{}), nil

	default:
		return nil, typeErr(n.Sp.Start, errors.TCMismatch, "unknown primitive '%s'", n.Kind)
	}
}

func unwrapFix(sub Substitution, t Ty) Ty {
	resolved := Resolve(sub, t)
	if f, ok := resolved.(TFix); ok {
		return f.Inner
	}
	return resolved
}

func isString(sub Substitution, t Ty) bool {
	_, ok := Resolve(sub, t).(TString)
	return ok
}

func isArrow(sub Substitution, t Ty) bool {
	resolved := Resolve(sub, t)
	if _, ok := resolved.(TArrow); ok {
		return true
	}
	if f, ok := resolved.(TFix); ok {
		return isArrow(sub, f.Inner)
	}
	return false
}
