package module

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/corrosion-lang/corrosion/internal/eval"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadExportsAndValues(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "lib.corr", `let answer = 42;`)

	var out bytes.Buffer
	l := NewLoader(dir, &out)

	mod, err := l.Load("lib.corr")
	require.NoError(t, err)
	v, ok := mod.Bindings["answer"]
	require.True(t, ok)
	require.Equal(t, eval.VInt{V: 42}, v)
}

func TestLoadIsCachedByCanonicalPath(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "lib.corr", `let answer = 42;`)

	var out bytes.Buffer
	l := NewLoader(dir, &out)

	first, err := l.Load("lib.corr")
	require.NoError(t, err)
	second, err := l.Load("./lib.corr")
	require.NoError(t, err)
	require.Same(t, first, second, "two spellings of the same path must share one cached module")
}

func TestImportCycleIsRejected(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.corr", `import "b.corr" as b; let x = 1;`)
	writeFile(t, dir, "b.corr", `import "a.corr" as a; let y = 2;`)

	var out bytes.Buffer
	l := NewLoader(dir, &out)

	_, err := l.Load("a.corr")
	require.Error(t, err)
	require.Contains(t, err.Error(), "Import cycle")
}

func TestMissingModuleIsReportedAsError(t *testing.T) {
	dir := t.TempDir()
	var out bytes.Buffer
	l := NewLoader(dir, &out)

	_, err := l.Load("missing.corr")
	require.Error(t, err)
}

func TestExportsExposesOnlyTopLevelBindings(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "lib.corr", `let answer = fn(x: Int) { x + 1 };`)

	var out bytes.Buffer
	l := NewLoader(dir, &out)

	exports, err := l.Exports("lib.corr")
	require.NoError(t, err)
	_, ok := exports["answer"]
	require.True(t, ok)
	_, ok = exports["x"]
	require.False(t, ok, "a lambda parameter is not a top-level binding")
}
