package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestScenarios(t *testing.T) {
	fixtureDir := "testdata/scenarios"
	scenarios, err := LoadAll(fixtureDir)
	require.NoError(t, err)
	require.NotEmpty(t, scenarios)

	for _, s := range scenarios {
		s := s
		t.Run(s.ID, func(t *testing.T) {
			ok, got := RunScenario(s, fixtureDir)
			require.True(t, ok, "scenario %q: expected %q, got %q", s.ID, s.Expected, got)
		})
	}
}

func TestLoadScenario_MissingID(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("program: \"print(1);\"\n"), 0644))
	_, err := LoadScenario(path)
	require.Error(t, err)
}
