package config

import (
	"fmt"
	"os"

	"github.com/GoSim-25-26J-441/cloudtune/internal/grid"
	"github.com/GoSim-25-26J-441/cloudtune/pkg/logger"
)

// LoadPlan loads and parses a search plan file
func LoadPlan(path string) (*Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read plan file %s: %w", path, err)
	}
	plan, err := ParsePlanYAML(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse plan file %s: %w", path, err)
	}
	return plan, nil
}

// DefaultPlan returns the stock search for input: statistical outlier
// removal over nb_neighbors × std_ratio, then radius outlier removal over
// nb_points × radius, scored by reduction percentage.
func DefaultPlan(input string) *Plan {
	statistical, _ := grid.New(
		grid.NewAxis("nb_neighbors", grid.Int(10), grid.Int(20), grid.Int(30)),
		grid.NewAxis("std_ratio", grid.Float(1.0), grid.Float(2.0), grid.Float(3.0)),
	)
	radius, _ := grid.New(
		grid.NewAxis("nb_points", grid.Int(5), grid.Int(10), grid.Int(15)),
		grid.NewAxis("radius", grid.Float(0.05), grid.Float(0.1), grid.Float(0.15)),
	)
	plan := &Plan{
		Input:     input,
		Objective: Objective{Name: DefaultObjective},
		Search: []SearchEntry{
			{Processor: "StatisticalOutlierRemoval", Grid: NewParamGrid(statistical)},
			{Processor: "RadiusOutlierRemoval", Grid: NewParamGrid(radius)},
		},
	}
	plan.applyDefaults()
	return plan
}

// Validate checks the complete plan, input included.
func (p *Plan) Validate() error {
	return validatePlan(p, true)
}

func (p *Plan) applyDefaults() {
	if p.OutputDir == "" {
		p.OutputDir = DefaultOutputDir
	}
	if p.LogFile == "" {
		p.LogFile = DefaultLogFile
	}
	if p.LogLevel == "" {
		p.LogLevel = DefaultLogLevel
	}
	if p.Objective.Name == "" {
		p.Objective.Name = DefaultObjective
	}
}

// validatePlan checks the plan's structure. Processor and objective names
// are resolved by the runner, which owns the registries.
func validatePlan(p *Plan, requireInput bool) error {
	if requireInput && p.Input == "" {
		return fmt.Errorf("input cannot be empty")
	}

	if _, err := logger.ParseLevel(p.LogLevel); err != nil {
		return fmt.Errorf("invalid log_level: %w", err)
	}

	if p.Objective.Name == "" {
		return fmt.Errorf("objective name cannot be empty")
	}
	if p.Objective.TargetPercent < 0 || p.Objective.TargetPercent > 100 {
		return fmt.Errorf("objective target_percent must be between 0 and 100, got %g", p.Objective.TargetPercent)
	}

	if len(p.Search) == 0 {
		return fmt.Errorf("at least one search entry must be defined")
	}
	for i, entry := range p.Search {
		if entry.Processor == "" {
			return fmt.Errorf("search entry %d: processor cannot be empty", i)
		}
	}
	return nil
}
