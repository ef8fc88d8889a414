package parser

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/corrosion-lang/corrosion/internal/ast"
)

func mustParse(t *testing.T, input string) *ast.Program {
	t.Helper()
	p := New(input)
	prog := p.Parse()
	if errs := p.Errors(); len(errs) > 0 {
		t.Fatalf("unexpected parse errors for %q: %v", input, errs)
	}
	return prog
}

// TestParsePrintParseEquivalence grounds spec.md §8 property 1: printing
// an AST to source and re-parsing it must yield a structurally equal
// tree (spans aside, which ast.Print already ignores).
func TestParsePrintParseEquivalence(t *testing.T) {
	programs := []string{
		`let x = 5; let y = 10; print(x + y);`,
		`fn factorial(n: Int) -> Int { if n == 0 { 1 } else { n * factorial(n - 1) } }`,
		`for i in range(1, 4) { print(i); };`,
		`let v = inl(100); let r = case v of inl n => n * 2 | inr t => 0; print(r);`,
		`let p = (1, 2); print(fst(p)); print(snd(p));`,
		`let l = [1, 2, 3]; print(head(l)); print(tail(l));`,
		`import "std.corr" as std; print(std.answer);`,
		`print(fix(fn(self) { fn(n: Int) { if n == 0 { 1 } else { n * self(n - 1) } } }));`,
		`print("a\nb\tc");`,
	}

	for _, src := range programs {
		t.Run(src, func(t *testing.T) {
			prog := mustParse(t, src)
			printed := ast.PrintSource(prog)

			reparsed := mustParse(t, printed)

			want := ast.Print(prog)
			got := ast.Print(reparsed)
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("parse->print->parse mismatch for %q (-want +got):\n%s\nprinted source:\n%s", src, diff, printed)
			}
		})
	}
}

// TestOperatorPrecedence checks that `*` binds tighter than `+` by
// inspecting the parsed tree shape directly, grounded on the teacher's
// assertPrecedence helper (parenthesized-form comparison), adapted to
// walk ast nodes instead of re-stringifying to a paren form.
func TestOperatorPrecedence(t *testing.T) {
	prog := mustParse(t, "1 + 2 * 3;")
	if len(prog.Stmts) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(prog.Stmts))
	}
	top, ok := prog.Stmts[0].(*ast.BinaryExpr)
	if !ok || top.Op != "+" {
		t.Fatalf("expected top-level '+', got %#v", prog.Stmts[0])
	}
	right, ok := top.Right.(*ast.BinaryExpr)
	if !ok || right.Op != "*" {
		t.Fatalf("expected '*' nested under '+', got %#v", top.Right)
	}
}

func TestAndBindsTighterThanOr(t *testing.T) {
	prog := mustParse(t, "true || false && true;")
	top, ok := prog.Stmts[0].(*ast.BinaryExpr)
	if !ok || top.Op != "||" {
		t.Fatalf("expected top-level '||', got %#v", prog.Stmts[0])
	}
	if _, ok := top.Right.(*ast.BinaryExpr); !ok {
		t.Fatalf("expected '&&' nested under '||', got %#v", top.Right)
	}
}

func TestPrimitiveArityEnforced(t *testing.T) {
	p := New("head(1, 2);")
	p.Parse()
	if len(p.Errors()) == 0 {
		t.Fatal("expected an arity error for head/1 called with two arguments")
	}
}

func TestPairArityEnforced(t *testing.T) {
	p := New("let p = (1, 2, 3);")
	p.Parse()
	if len(p.Errors()) == 0 {
		t.Fatal("expected an arity error for a three-element pair literal")
	}
}

func TestMissingSemicolonIsParseError(t *testing.T) {
	p := New("let x = 5")
	p.Parse()
	if len(p.Errors()) == 0 {
		t.Fatal("expected a parse error for a missing ';'")
	}
}

func TestLambdaCurrying(t *testing.T) {
	prog := mustParse(t, "fn(a, b) { a };")
	if len(prog.Stmts) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(prog.Stmts))
	}
	outer, ok := prog.Stmts[0].(*ast.Lambda)
	if !ok {
		t.Fatalf("expected *ast.Lambda, got %T", prog.Stmts[0])
	}
	if outer.Param.Name != "a" {
		t.Fatalf("expected outer param 'a', got %q", outer.Param.Name)
	}
	inner, ok := outer.Body.Tail.(*ast.Lambda)
	if !ok {
		t.Fatalf("expected curried inner *ast.Lambda, got %T", outer.Body.Tail)
	}
	if inner.Param.Name != "b" {
		t.Fatalf("expected inner param 'b', got %q", inner.Param.Name)
	}
}
