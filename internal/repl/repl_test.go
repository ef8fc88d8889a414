package repl

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/corrosion-lang/corrosion/internal/eval"
	"github.com/corrosion-lang/corrosion/internal/module"
	"github.com/corrosion-lang/corrosion/internal/types"
)

func newSession(t *testing.T, out *bytes.Buffer) *session {
	t.Helper()
	return &session{
		typeEnv: types.NewEnv(),
		evalEnv: eval.NewEnv(),
		loader:  module.NewLoader(t.TempDir(), out),
		out:     out,
	}
}

func TestBareExpressionIsAutoPrinted(t *testing.T) {
	var out bytes.Buffer
	sess := newSession(t, &out)
	sess.eval("1 + 2")
	require.Equal(t, "3\n", out.String())
}

func TestSemicolonTerminatedExpressionIsNotAutoPrinted(t *testing.T) {
	var out bytes.Buffer
	sess := newSession(t, &out)
	sess.eval("1 + 2;")
	require.Equal(t, "", out.String())
}

func TestLetBindingPersistsAcrossEvalCalls(t *testing.T) {
	var out bytes.Buffer
	sess := newSession(t, &out)
	sess.eval("let x = 10;")
	out.Reset()
	sess.eval("x")
	require.Equal(t, "10\n", out.String())
}

func TestTypeErrorIsReportedNotPanicked(t *testing.T) {
	var out bytes.Buffer
	sess := newSession(t, &out)
	sess.eval("1 + true")
	require.Contains(t, out.String(), "Error")
}

func TestResetCommandClearsSession(t *testing.T) {
	var out bytes.Buffer
	sess := newSession(t, &out)
	sess.eval("let x = 10;")
	out.Reset()

	cont := sess.command(":reset")
	require.True(t, cont)
	require.Contains(t, out.String(), "Session cleared.")

	out.Reset()
	sess.eval("x")
	require.Contains(t, out.String(), "Error")
}

func TestClearCommandEmitsScreenClearEscape(t *testing.T) {
	var out bytes.Buffer
	sess := newSession(t, &out)
	cont := sess.command(":clear")
	require.True(t, cont)
	require.Equal(t, "\033[H\033[2J", out.String())
}

func TestTypeCommandShowsInferredType(t *testing.T) {
	var out bytes.Buffer
	sess := newSession(t, &out)
	cont := sess.command(":type 1 + 2")
	require.True(t, cont)
	require.Contains(t, out.String(), "Int")
}

func TestTypeCommandDoesNotBindIntoSession(t *testing.T) {
	var out bytes.Buffer
	sess := newSession(t, &out)
	sess.command(":type let y = 5; y")
	out.Reset()
	sess.eval("y")
	require.Contains(t, out.String(), "Error")
}

func TestLoadCommandEvaluatesFileIntoSession(t *testing.T) {
	var out bytes.Buffer
	dir := t.TempDir()
	path := filepath.Join(dir, "lib.corr")
	require.NoError(t, os.WriteFile(path, []byte("let answer = 42;"), 0644))

	sess := newSession(t, &out)
	sess.loader = module.NewLoader(dir, &out)
	sess.load(path)
	require.Contains(t, out.String(), "loaded")

	out.Reset()
	sess.eval("answer")
	require.Equal(t, "42\n", out.String())
}

func TestUnknownCommandWarns(t *testing.T) {
	var out bytes.Buffer
	sess := newSession(t, &out)
	cont := sess.command(":bogus")
	require.True(t, cont)
	require.Contains(t, out.String(), "unknown command")
}

func TestQuitCommandStopsTheLoop(t *testing.T) {
	var out bytes.Buffer
	sess := newSession(t, &out)
	require.False(t, sess.command(":quit"))
}
