// Package module resolves `import "path" as alias;` statements: it is the
// one place that imports internal/parser, internal/types and
// internal/eval together, wiring each phase's injected callback so
// those packages never need to import module back (spec.md §3, §6).
package module

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/corrosion-lang/corrosion/internal/errors"
	"github.com/corrosion-lang/corrosion/internal/eval"
	"github.com/corrosion-lang/corrosion/internal/parser"
	"github.com/corrosion-lang/corrosion/internal/types"
)

// entry is one loaded module's cached result.
type entry struct {
	exports types.Exports
	value   *eval.VModule
}

// Loader resolves import paths relative to baseDir, caches each module by
// its canonical absolute path, and rejects import cycles (spec.md §3:
// "Import cycle: a -> b -> a").
type Loader struct {
	baseDir   string
	cache     map[string]*entry
	loadStack []string
	out       io.Writer
}

// NewLoader creates a Loader resolving relative import paths against
// baseDir (the importing file's directory).
func NewLoader(baseDir string, out io.Writer) *Loader {
	return &Loader{baseDir: baseDir, cache: make(map[string]*entry), out: out}
}

// canonicalPath resolves path relative to baseDir and evaluates symlinks,
// so two different relative spellings of the same file share one cache
// entry and one cycle-detection identity.
func (l *Loader) canonicalPath(path string) (string, error) {
	full := path
	if !filepath.IsAbs(full) {
		full = filepath.Join(l.baseDir, path)
	}
	abs, err := filepath.Abs(full)
	if err != nil {
		return "", err
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved, nil
	}
	return abs, nil
}

// Load type-checks and evaluates the module at path (if not already
// cached), returning its exported bindings as a VModule.
func (l *Loader) Load(path string) (*eval.VModule, error) {
	canon, err := l.canonicalPath(path)
	if err != nil {
		return nil, fmt.Errorf("cannot resolve import \"%s\": %w", path, err)
	}

	if e, ok := l.cache[canon]; ok {
		if e == nil {
			return nil, l.cycleError(canon)
		}
		return e.value, nil
	}

	for _, seen := range l.loadStack {
		if seen == canon {
			return nil, l.cycleError(canon)
		}
	}

	l.cache[canon] = nil // marks "in progress", for the cycle check above
	l.loadStack = append(l.loadStack, canon)
	defer func() { l.loadStack = l.loadStack[:len(l.loadStack)-1] }()

	src, err := os.ReadFile(canon)
	if err != nil {
		return nil, fmt.Errorf("cannot read \"%s\": %w", path, err)
	}

	sub := &Loader{baseDir: filepath.Dir(canon), cache: l.cache, out: l.out}
	// Share the parent's cache and loadStack so cross-directory cycles
	// (a/x.corr imports ../b/y.corr imports a/x.corr) are still caught.
	sub.loadStack = l.loadStack

	p := parser.New(string(src))
	prog := p.Parse()
	if errs := p.Errors(); len(errs) > 0 {
		return nil, errs[0]
	}

	checker := types.NewChecker(sub.Exports)
	typeEnv := types.NewEnv()
	if err := checker.CheckProgram(prog, typeEnv); err != nil {
		return nil, err
	}

	evaluator := eval.NewEvaluator(checker.FinalDecorations(), func(importPath string) (*eval.VModule, error) {
		return sub.Load(importPath)
	}, l.out)
	evalEnv := eval.NewEnv()
	if err := evaluator.EvalProgram(prog, evalEnv); err != nil {
		return nil, err
	}

	exports := checker.Export(typeEnv)
	value := &eval.VModule{Path: canon, Bindings: evalEnv.Bindings()}
	l.cache[canon] = &entry{exports: exports, value: value}
	return value, nil
}

// Exports loads (if needed) the module at path and returns its exported
// types, for wiring a types.Checker's ImportResolver without re-deriving
// types from already-evaluated runtime values.
func (l *Loader) Exports(path string) (types.Exports, error) {
	if _, err := l.Load(path); err != nil {
		return nil, err
	}
	canon, err := l.canonicalPath(path)
	if err != nil {
		return nil, err
	}
	return l.cache[canon].exports, nil
}

func (l *Loader) cycleError(canon string) error {
	chain := append(append([]string{}, l.loadStack...), canon)
	msg := "Import cycle: "
	for i, p := range chain {
		if i > 0 {
			msg += " -> "
		}
		msg += filepath.Base(p)
	}
	return errors.NewRuntimeErrorNoPos(errors.EvaImportFailed, msg)
}
