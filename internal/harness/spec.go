// Package harness runs the YAML-declared end-to-end scenarios (spec.md
// §8) through the real parse/check/eval pipeline and compares actual
// stdout against each fixture's expected output, the same shape as the
// teacher's eval_harness.BenchmarkSpec but driving Corrosion's own
// pipeline instead of an LLM benchmark run.
package harness

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Scenario describes one end-to-end fixture: a program and what running
// it through the pipeline must print (or the exact diagnostic line it
// must fail with).
type Scenario struct {
	ID       string `yaml:"id"`
	Program  string `yaml:"program"`
	Expected string `yaml:"expected_stdout"`
	Fails    bool   `yaml:"fails"`
}

// LoadScenario reads a single scenario fixture from path.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if s.ID == "" {
		return nil, fmt.Errorf("scenario missing required field: id")
	}
	if s.Program == "" {
		return nil, fmt.Errorf("scenario missing required field: program")
	}
	return &s, nil
}

// LoadAll loads every *.yaml fixture in dir, sorted by filename.
func LoadAll(dir string) ([]*Scenario, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil {
		return nil, err
	}
	scenarios := make([]*Scenario, 0, len(matches))
	for _, m := range matches {
		s, err := LoadScenario(m)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", m, err)
		}
		scenarios = append(scenarios, s)
	}
	return scenarios, nil
}
