package harness

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/corrosion-lang/corrosion/internal/eval"
	"github.com/corrosion-lang/corrosion/internal/module"
	"github.com/corrosion-lang/corrosion/internal/parser"
	"github.com/corrosion-lang/corrosion/internal/types"
)

// Result captures the outcome of running one scenario's program through
// the full pipeline, mirroring the shape of the teacher's RunResult but
// in-process rather than via os/exec, since Corrosion's own pipeline is
// a Go package, not an external interpreter.
type Result struct {
	Stdout   string
	Err      error
	ParseOk  bool
	CheckOk  bool
	RunOk    bool
}

// Run parses, type-checks and evaluates program, capturing everything
// the print primitive writes. baseDir anchors any `import` statement's
// relative paths, matching how the CLI resolves imports against the
// source file's directory.
func Run(program, baseDir string) *Result {
	res := &Result{}

	p := parser.New(program)
	prog := p.Parse()
	if errs := p.Errors(); len(errs) > 0 {
		res.Err = errs[0]
		return res
	}
	res.ParseOk = true

	var out bytes.Buffer
	loader := module.NewLoader(baseDir, &out)
	checker := types.NewChecker(loader.Exports)
	env := types.NewEnv()
	if err := checker.CheckProgram(prog, env); err != nil {
		res.Err = err
		return res
	}
	res.CheckOk = true

	evaluator := eval.NewEvaluator(checker.FinalDecorations(), loader.Load, &out)
	evalEnv := eval.NewEnv()
	if err := evaluator.EvalProgram(prog, evalEnv); err != nil {
		res.Err = err
		res.Stdout = out.String()
		return res
	}
	res.RunOk = true
	res.Stdout = out.String()
	return res
}

// RunScenario runs s.Program (anchored at the scenario fixture's own
// directory, so any `import` it exercises resolves relative to
// testdata/scenarios) and reports whether the observed outcome matches
// what the fixture declares.
func RunScenario(s *Scenario, fixtureDir string) (ok bool, got string) {
	res := Run(s.Program, fixtureDir)
	if s.Fails {
		if res.Err == nil {
			return false, res.Stdout
		}
		return res.Err.Error() == s.Expected, res.Err.Error()
	}
	if res.Err != nil {
		return false, res.Err.Error()
	}
	return res.Stdout == s.Expected, res.Stdout
}

// ScenarioDir returns testdata/scenarios joined to the current working
// directory (under `go test`, the harness package's own directory), or
// the relative path itself if the working directory cannot be read.
func ScenarioDir() string {
	wd, err := os.Getwd()
	if err != nil {
		return "testdata/scenarios"
	}
	return filepath.Join(wd, "testdata", "scenarios")
}
