package eval_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/corrosion-lang/corrosion/internal/harness"
)

func run(t *testing.T, src string) string {
	t.Helper()
	res := harness.Run(src, t.TempDir())
	require.NoError(t, res.Err, "program: %s", src)
	return res.Stdout
}

func TestArithmeticAndPrint(t *testing.T) {
	require.Equal(t, "15\n", run(t, "let x = 5; let y = 10; print(x + y);"))
}

func TestForLoopIteratesRange(t *testing.T) {
	got := run(t, `for i in range(1, 4) { print(i); };`)
	require.Equal(t, "1\n2\n3\n", got)
}

func TestListPrimitives(t *testing.T) {
	got := run(t, `let l = cons(1, cons(2, [])); print(head(l)); print(tail(l));`)
	require.Equal(t, "1\n[2]\n", got)
}

func TestPairPrimitives(t *testing.T) {
	got := run(t, `let p = (1, 2); print(fst(p)); print(snd(p));`)
	require.Equal(t, "1\n2\n", got)
}

func TestSumCase(t *testing.T) {
	got := run(t, `let v = inl(100); let r = case v of inl n => n * 2 | inr t => 0; print(r);`)
	require.Equal(t, "200\n", got)
}

func TestLengthCountsRunesOfString(t *testing.T) {
	got := run(t, `print(length("hello"));`)
	require.Equal(t, "5\n", got)
}

func TestRecursiveFuncDeclViaFixedPoint(t *testing.T) {
	got := run(t, `fn factorial(n: Int) -> Int { if n == 0 { 1 } else { n * factorial(n - 1) } } print(factorial(5));`)
	require.Equal(t, "120\n", got)
}

func TestFixCombinatorRecursesOverLists(t *testing.T) {
	src := `
let sum = fix(fn(self) {
  fn(l: List Int) {
    if l == [] { 0 } else { head(l) + self(tail(l)) }
  }
});
print(sum([1, 2, 3, 4, 5]));
`
	require.Equal(t, "15\n", run(t, src))
}

func TestDivisionByZeroIsRuntimeError(t *testing.T) {
	res := harness.Run("print(1 / 0);", t.TempDir())
	require.Error(t, res.Err)
}

func TestClosuresCaptureLexicalEnvironment(t *testing.T) {
	src := `
let make_adder = fn(x: Int) { fn(y: Int) { x + y } };
let add5 = make_adder(5);
print(add5(3));
`
	require.Equal(t, "8\n", run(t, src))
}

func TestDisplayOfFunctionValue(t *testing.T) {
	got := run(t, `let f = fn(x: Int) { x }; print(f);`)
	require.Equal(t, "<function>\n", got)
}
