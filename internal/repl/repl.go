// Package repl implements Corrosion's interactive read-eval-print loop:
// liner-backed line editing with history, colorized diagnostics, and a
// persistent session environment across inputs (spec.md §6 ambient
// tooling).
package repl

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/peterh/liner"

	"github.com/corrosion-lang/corrosion/internal/ast"
	"github.com/corrosion-lang/corrosion/internal/errors"
	"github.com/corrosion-lang/corrosion/internal/eval"
	"github.com/corrosion-lang/corrosion/internal/module"
	"github.com/corrosion-lang/corrosion/internal/parser"
	"github.com/corrosion-lang/corrosion/internal/types"
)

var historyFile = filepath.Join(os.Getenv("HOME"), ".corrosion_history")

var (
	green  = color.New(color.FgGreen).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	cyan   = color.New(color.FgCyan).SprintFunc()
)

// session holds the state a REPL evaluates incrementally against: one
// type environment and one runtime environment, both persistent across
// inputs, plus the module loader used by any `import` statement typed at
// the prompt.
type session struct {
	typeEnv *types.Env
	evalEnv *eval.Env
	loader  *module.Loader
	out     io.Writer
}

// Run starts the REPL, reading from in and writing to out until EOF or an
// explicit `exit`/`quit`.
func Run(in io.Reader, out io.Writer, version string) {
	fmt.Fprintf(out, "corrosion %s\n", version)
	fmt.Fprintln(out, "Type :help for help, exit or quit to leave.")

	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	if f, err := os.Open(historyFile); err == nil {
		line.ReadHistory(f)
		f.Close()
	}

	wd, _ := os.Getwd()
	sess := &session{
		typeEnv: types.NewEnv(),
		evalEnv: eval.NewEnv(),
		loader:  module.NewLoader(wd, out),
		out:     out,
	}

	for {
		input, err := line.Prompt(">>> ")
		if err != nil { // io.EOF or Ctrl-D
			break
		}
		trimmed := strings.TrimSpace(input)
		if trimmed == "" {
			continue
		}
		line.AppendHistory(input)

		if strings.HasPrefix(trimmed, ":") {
			if !sess.command(trimmed) {
				break
			}
			continue
		}
		if trimmed == "exit" || trimmed == "quit" {
			break
		}

		sess.eval(trimmed)
	}

	if f, err := os.Create(historyFile); err == nil {
		line.WriteHistory(f)
		f.Close()
	}
	fmt.Fprintln(out, "Goodbye!")
}

// command handles a `:`-prefixed REPL directive. It returns false when the
// REPL should exit.
func (s *session) command(cmd string) bool {
	fields := strings.Fields(cmd)
	switch fields[0] {
	case ":help":
		fmt.Fprintln(s.out, "Commands:")
		fmt.Fprintln(s.out, "  :help          show this help")
		fmt.Fprintln(s.out, "  :clear         clear the screen")
		fmt.Fprintln(s.out, "  :reset         clear the session's bindings")
		fmt.Fprintln(s.out, "  :load <path>   evaluate a file into the session")
		fmt.Fprintln(s.out, "  :type <expr>   show an expression's inferred type")
		fmt.Fprintln(s.out, "  exit, quit     leave the REPL")
		return true
	case ":clear":
		fmt.Fprint(s.out, "\033[H\033[2J")
		return true
	case ":reset":
		s.typeEnv = types.NewEnv()
		s.evalEnv = eval.NewEnv()
		fmt.Fprintln(s.out, "Session cleared.")
		return true
	case ":load":
		if len(fields) < 2 {
			fmt.Fprintln(s.out, "Usage: :load <path>")
			return true
		}
		s.load(fields[1])
		return true
	case ":type":
		if len(fields) < 2 {
			fmt.Fprintln(s.out, "Usage: :type <expression>")
			return true
		}
		s.showType(strings.TrimPrefix(cmd, ":type "))
		return true
	case ":quit", ":exit":
		return false
	default:
		fmt.Fprintf(s.out, "%s: unknown command '%s'\n", yellow("Warning"), fields[0])
		return true
	}
}

// showType type-checks expr against a scratch child scope (so it can
// never bind a name into the session) and prints its inferred type
// without evaluating it.
func (s *session) showType(expr string) {
	p := parser.New(expr + ";")
	prog := p.Parse()
	if errs := p.Errors(); len(errs) > 0 {
		for _, e := range errs {
			fmt.Fprintln(s.out, red(e.Error()))
		}
		return
	}
	if len(prog.Stmts) != 1 {
		fmt.Fprintln(s.out, red("Error: :type takes a single expression"))
		return
	}
	checker := types.NewChecker(s.loader.Exports)
	scratch := s.typeEnv.Child()
	if err := checker.CheckProgram(prog, scratch); err != nil {
		fmt.Fprintln(s.out, red(err.Error()))
		return
	}
	if target, ok := prog.Stmts[0].(ast.Expr); ok {
		fmt.Fprintf(s.out, "%s\n", cyan(checker.ResolvedType(target).String()))
	}
}

// load reads path as a Corrosion program and folds its declarations into
// the running session, the same way a top-level `import` would expose a
// module's bindings, except flattened into the session's own scope.
func (s *session) load(path string) {
	src, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(s.out, "%s: %v\n", red("Error"), err)
		return
	}
	checker := types.NewChecker(s.loader.Exports)
	p := parser.New(string(src))
	prog := p.Parse()
	if errs := p.Errors(); len(errs) > 0 {
		for _, e := range errs {
			fmt.Fprintln(s.out, red(e.Error()))
		}
		return
	}
	if err := checker.CheckProgram(prog, s.typeEnv); err != nil {
		fmt.Fprintln(s.out, red(err.Error()))
		return
	}
	evaluator := eval.NewEvaluator(checker.FinalDecorations(), s.loader.Load, s.out)
	if err := evaluator.EvalProgram(prog, s.evalEnv); err != nil {
		fmt.Fprintln(s.out, red(err.Error()))
		return
	}
	fmt.Fprintf(s.out, "%s loaded %s\n", green("✓"), path)
}

// isBareMissingSemi reports whether errs is exactly the "Expected ';'"
// diagnostic expectSemi raises for an input with no terminator.
func isBareMissingSemi(errs []error) bool {
	if len(errs) != 1 {
		return false
	}
	pe, ok := errs[0].(*errors.ParseError)
	return ok && pe.Code == errors.ParMissingSemi
}

// eval checks and runs one line of input. A bare value expression (no
// trailing `;`) parses with exactly one recorded error, a missing-semicolon
// complaint at EOF, since expectSemi always fires when the terminator is
// absent. That is the signal used to detect the bare-expression case (a
// clean parse never happens for one) and wrap it in a synthetic print(...)
// so its value is shown, matching how most REPLs auto-display a result.
func (s *session) eval(input string) {
	src := input
	p := parser.New(src)
	prog := p.Parse()
	if len(prog.Stmts) == 1 && isBareMissingSemi(p.Errors()) {
		if expr, ok := prog.Stmts[0].(ast.Expr); ok && ast.IsValueForm(expr) {
			src = "print(" + input + ");"
		}
	}

	p = parser.New(src)
	prog = p.Parse()
	if errs := p.Errors(); len(errs) > 0 {
		for _, e := range errs {
			fmt.Fprintln(s.out, red(e.Error()))
		}
		return
	}

	checker := types.NewChecker(s.loader.Exports)
	if err := checker.CheckProgram(prog, s.typeEnv); err != nil {
		fmt.Fprintln(s.out, red(err.Error()))
		return
	}

	evaluator := eval.NewEvaluator(checker.FinalDecorations(), s.loader.Load, s.out)
	if err := evaluator.EvalProgram(prog, s.evalEnv); err != nil {
		fmt.Fprintln(s.out, red(err.Error()))
		return
	}
}
