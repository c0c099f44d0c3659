package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoSim-25-26J-441/cloudtune/internal/grid"
)

func TestLoadPlan(t *testing.T) {
	plan, err := LoadPlan("../../config/plan.yaml")
	require.NoError(t, err)
	require.NoError(t, plan.Validate())

	assert.Equal(t, "data/scan.pcd", plan.Input)
	assert.Equal(t, "data", plan.OutputDir)
	assert.Equal(t, "noise_filter.txt", plan.LogFile)
	assert.Equal(t, "reduction_percentage", plan.Objective.Name)
	require.Len(t, plan.Search, 2)

	def := DefaultPlan("data/scan.pcd")
	for i := range def.Search {
		assert.Equal(t, def.Search[i].Processor, plan.Search[i].Processor)
		assert.Equal(t, def.Search[i].Grid.Grid().Axes(), plan.Search[i].Grid.Grid().Axes())
	}
}

func TestLoadPlanMissingFile(t *testing.T) {
	_, err := LoadPlan(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestLoadPlanMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("search: [unclosed"), 0o644))
	_, err := LoadPlan(path)
	require.Error(t, err)
}

func TestDefaultPlan(t *testing.T) {
	plan := DefaultPlan("bunny.pcd")
	require.NoError(t, plan.Validate())

	assert.Equal(t, DefaultOutputDir, plan.OutputDir)
	assert.Equal(t, DefaultLogFile, plan.LogFile)
	assert.Equal(t, DefaultLogLevel, plan.LogLevel)
	require.Len(t, plan.Search, 2)

	sor := plan.Search[0].Grid.Grid()
	assert.Equal(t, []string{"nb_neighbors", "std_ratio"}, sor.Names())
	assert.Equal(t, 9, sor.Size())
	ror := plan.Search[1].Grid.Grid()
	assert.Equal(t, []string{"nb_points", "radius"}, ror.Names())
	assert.Equal(t, 9, ror.Size())

	var first grid.Params
	for p := range sor.All() {
		first = p
		break
	}
	assert.Equal(t, "{nb_neighbors=10, std_ratio=1.0}", first.String())
}

func TestPlanValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(p *Plan)
	}{
		{"missing input", func(p *Plan) { p.Input = "" }},
		{"bad log level", func(p *Plan) { p.LogLevel = "chatty" }},
		{"empty objective", func(p *Plan) { p.Objective.Name = "" }},
		{"negative target", func(p *Plan) { p.Objective.TargetPercent = -1 }},
		{"target above 100", func(p *Plan) { p.Objective.TargetPercent = 101 }},
		{"no search", func(p *Plan) { p.Search = nil }},
		{"empty processor", func(p *Plan) { p.Search[0].Processor = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan := DefaultPlan("cloud.xyz")
			tt.mutate(plan)
			require.Error(t, plan.Validate())
		})
	}
}

func TestPlanValidationLeavesNamesToCaller(t *testing.T) {
	plan := DefaultPlan("cloud.xyz")
	plan.Objective.Name = "fastest"
	plan.Search[0].Processor = "VoxelDownsample"
	g, err := grid.New(grid.NewAxis("leaf_size", grid.Float(0.1)))
	require.NoError(t, err)
	plan.Search[1].Grid = NewParamGrid(g)
	assert.NoError(t, plan.Validate())
}
