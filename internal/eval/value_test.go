package eval

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestToDisplayStringPrimitives(t *testing.T) {
	require.Equal(t, "5", ToDisplayString(VInt{V: 5}))
	require.Equal(t, "true", ToDisplayString(VBool{V: true}))
	require.Equal(t, "false", ToDisplayString(VBool{V: false}))
	require.Equal(t, "hi", ToDisplayString(VString{V: "hi"}))
	require.Equal(t, "()", ToDisplayString(VUnit{}))
}

func TestToDisplayStringStructural(t *testing.T) {
	list := VList{Items: []Value{VInt{V: 1}, VInt{V: 2}, VInt{V: 3}}}
	require.Equal(t, "[1, 2, 3]", ToDisplayString(list))

	pair := VPair{First: VInt{V: 1}, Second: VBool{V: true}}
	require.Equal(t, "(1, true)", ToDisplayString(pair))

	require.Equal(t, "Left(1)", ToDisplayString(VLeft{V: VInt{V: 1}}))
	require.Equal(t, "Right(2)", ToDisplayString(VRight{V: VInt{V: 2}}))
}

// TestToDisplayStringDistinguishesFixedPointFromClosure grounds spec.md
// §6's value-print table: FixedPoint prints as <fixed-point>, distinct
// from a plain closure's <function>.
func TestToDisplayStringDistinguishesFixedPointFromClosure(t *testing.T) {
	closure := &VClosure{Param: "x", Env: NewEnv()}
	native := &VNativeClosure{Param: "x"}
	fixed := &VFixedPoint{Func: closure}

	require.Equal(t, "<function>", ToDisplayString(closure))
	require.Equal(t, "<function>", ToDisplayString(native))
	require.Equal(t, "<fixed-point>", ToDisplayString(fixed))
}

func TestEnvScopingAndShadowing(t *testing.T) {
	root := NewEnv()
	root.Define("x", VInt{V: 1})

	child := root.Child()
	child.Define("x", VInt{V: 2})

	v, ok := child.Lookup("x")
	require.True(t, ok)
	require.Equal(t, VInt{V: 2}, v)

	rootV, ok := root.Lookup("x")
	require.True(t, ok)
	require.Equal(t, VInt{V: 1}, rootV)

	_, ok = root.Lookup("y")
	require.False(t, ok)
}

func TestEnvBindingsSnapshotsCurrentScopeOnly(t *testing.T) {
	root := NewEnv()
	root.Define("a", VInt{V: 1})
	child := root.Child()
	child.Define("b", VInt{V: 2})

	bindings := child.Bindings()
	require.Equal(t, map[string]Value{"b": VInt{V: 2}}, bindings)
}
