package types

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/corrosion-lang/corrosion/internal/ast"
	"github.com/corrosion-lang/corrosion/internal/parser"
)

func check(t *testing.T, src string) (*Checker, error) {
	t.Helper()
	p := parser.New(src)
	prog := p.Parse()
	require.Empty(t, p.Errors(), "unexpected parse errors for %q", src)
	c := NewChecker(nil)
	err := c.CheckProgram(prog, NewEnv())
	return c, err
}

func TestArithmeticInfersInt(t *testing.T) {
	_, err := check(t, "let x = 5; let y = 10; print(x + y);")
	require.NoError(t, err)
}

func TestRedefinitionIsRejected(t *testing.T) {
	_, err := check(t, "let x = 10;\nlet x = 20;\n")
	require.Error(t, err)
	require.Equal(t, "Error: Type error: Variable 'x' redefined at line 2, column 1", err.Error())
}

func TestLengthRequiresString(t *testing.T) {
	_, err := check(t, "let len = length(42);\n")
	require.Error(t, err)
	require.Equal(t, "Error: Type error: Type mismatch at line 1, column 11: expected 'String', found 'Int'", err.Error())
}

func TestLengthAcceptsString(t *testing.T) {
	_, err := check(t, `let len = length("hi");`)
	require.NoError(t, err)
}

func TestFstOnNonPairReportsErrorErrorPlaceholder(t *testing.T) {
	_, err := check(t, "let x = fst(5);")
	require.Error(t, err)
	require.Contains(t, err.Error(), "expected '(error, error)'")
}

func TestHeadOnNonListReportsListUnknownPlaceholder(t *testing.T) {
	_, err := check(t, "let x = head(5);")
	require.Error(t, err)
	require.Contains(t, err.Error(), "expected 'List unknown'")
}

func TestClosureEqualityIsRejected(t *testing.T) {
	_, err := check(t, "let f = fn(x: Int) { x }; let g = fn(x: Int) { x }; print(f == g);")
	require.Error(t, err)
}

func TestEmptyListWidensViaFreshTypeVar(t *testing.T) {
	_, err := check(t, "let l = cons(1, []); print(head(l));")
	require.NoError(t, err)
}

func TestRecursiveFuncDeclTypesAsFixedPoint(t *testing.T) {
	c, err := check(t, `fn factorial(n: Int) -> Int { if n == 0 { 1 } else { n * factorial(n - 1) } } print(factorial(5));`)
	require.NoError(t, err)
	found := false
	for e, ty := range c.FinalDecorations() {
		if id, ok := e.(*ast.Ident); ok && id.Name == "factorial" {
			require.IsType(t, TFix{}, ty)
			found = true
		}
	}
	require.True(t, found, "no use of 'factorial' was decorated")
}

func TestRelationalOperatorsRejectBool(t *testing.T) {
	_, err := check(t, "print(true < false);")
	require.Error(t, err)
}

func TestDivisionByZeroTypesFine(t *testing.T) {
	// Division by zero is a runtime concern (spec.md §9), not a type error.
	_, err := check(t, "print(1 / 0);")
	require.NoError(t, err)
}
