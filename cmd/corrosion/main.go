// Command corrosion is the CLI entry point: run a source file, or start
// the REPL when invoked with no arguments (spec.md §6).
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"

	"github.com/corrosion-lang/corrosion/internal/errors"
	"github.com/corrosion-lang/corrosion/internal/eval"
	"github.com/corrosion-lang/corrosion/internal/module"
	"github.com/corrosion-lang/corrosion/internal/parser"
	"github.com/corrosion-lang/corrosion/internal/repl"
	"github.com/corrosion-lang/corrosion/internal/types"
)

var (
	Version = "dev"

	red  = color.New(color.FgRed).SprintFunc()
	bold = color.New(color.Bold).SprintFunc()
)

func main() {
	args := os.Args[1:]

	if len(args) == 0 {
		repl.Run(os.Stdin, os.Stdout, Version)
		return
	}

	switch args[0] {
	case "-version", "--version":
		fmt.Printf("corrosion %s\n", bold(Version))
		return
	case "-help", "--help":
		printHelp()
		return
	}

	os.Exit(runFile(args[0]))
}

func printHelp() {
	fmt.Println(bold("corrosion") + " - a small statically-typed, eagerly-evaluated functional language")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  corrosion                 Start the interactive REPL")
	fmt.Println("  corrosion <file.corr>     Evaluate a source file")
	fmt.Println("  corrosion --version       Print version information")
}

// runFile parses, type-checks and evaluates filename, returning the
// process exit code: 0 on success, 1 on any parse/type/runtime error.
func runFile(filename string) int {
	src, err := os.ReadFile(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: cannot read file '%s': %v\n", red("Error"), filename, err)
		return 1
	}

	p := parser.New(string(src))
	prog := p.Parse()
	if errs := p.Errors(); len(errs) > 0 {
		reportErrors(errs)
		return 1
	}

	loader := module.NewLoader(filepath.Dir(filename), os.Stdout)
	checker := types.NewChecker(loader.Exports)

	env := types.NewEnv()
	if err := checker.CheckProgram(prog, env); err != nil {
		reportErrors([]error{err})
		return 1
	}

	evaluator := eval.NewEvaluator(checker.FinalDecorations(), loader.Load, os.Stdout)
	evalEnv := eval.NewEnv()
	if err := evaluator.EvalProgram(prog, evalEnv); err != nil {
		reportErrors([]error{err})
		return 1
	}
	return 0
}

func reportErrors(errs []error) {
	for _, err := range errs {
		fmt.Fprintln(os.Stderr, red(err.Error()))
	}
	_ = errors.Registry // keep the registry linked for future --explain tooling
}
