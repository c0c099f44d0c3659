package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoSim-25-26J-441/cloudtune/pkg/logger"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	orig := logger.Default
	t.Cleanup(func() { logger.SetDefault(orig) })

	var out, errOut bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestProcessorsCommand(t *testing.T) {
	out, err := execute(t, "processors")
	require.NoError(t, err)
	assert.Contains(t, out, "RadiusOutlierRemoval")
	assert.Contains(t, out, "{nb_points=16, radius=0.05}")
	assert.Contains(t, out, "{nb_neighbors=20, std_ratio=2.0}")
}

func TestPlanCommandDefault(t *testing.T) {
	out, err := execute(t, "plan", "--input", "scan.xyz")
	require.NoError(t, err)
	assert.Contains(t, out, "18 trials, objective reduction_percentage")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 20)
	assert.Contains(t, lines[1], "{nb_neighbors=10, std_ratio=1.0}")
}

func TestInitThenPlan(t *testing.T) {
	out, err := execute(t, "init", "--input", "scan.pcd")
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "plan.yaml")
	require.NoError(t, os.WriteFile(path, []byte(out), 0o644))

	out, err = execute(t, "plan", "--config", path, "--objective", "target_reduction", "--target-percent", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "18 trials, objective target_reduction")
}

func TestGenerateThenRun(t *testing.T) {
	dir := t.TempDir()
	cloud := filepath.Join(dir, "synthetic.xyz")
	out, err := execute(t, "generate", "--out", cloud, "--points", "300", "--outliers", "6", "--seed", "5")
	require.NoError(t, err)
	assert.Contains(t, out, "wrote 306 points")

	out, err = execute(t, "run", "--input", cloud, "--output-dir", filepath.Join(dir, "data"), "--log-level", "warn", "--progress")
	require.NoError(t, err)
	assert.Contains(t, out, "Best processor: ")
	assert.Contains(t, out, "Trials: 18 in ")
	assert.Contains(t, out, "RANK")
	assert.Contains(t, out, "StatisticalOutlierRemoval  9")

	runs, err := os.ReadDir(filepath.Join(dir, "data"))
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.True(t, strings.HasPrefix(runs[0].Name(), "synthetic_"))
	assert.FileExists(t, filepath.Join(dir, "data", runs[0].Name(), "noise_filter.txt"))
	assert.FileExists(t, filepath.Join(dir, "data", runs[0].Name(), "summary.json"))
}

func TestRunCommandErrors(t *testing.T) {
	_, err := execute(t, "run")
	require.Error(t, err)

	_, err = execute(t, "run", "--input", "x.xyz", "--objective", "fastest")
	require.Error(t, err)

	_, err = execute(t, "generate")
	require.Error(t, err)
}
