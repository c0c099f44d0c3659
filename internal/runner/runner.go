// Package runner executes search plans end to end: it loads the input cloud,
// creates the run directory, drives the optimizer and writes the artifacts.
package runner

import (
	"fmt"
	"time"

	"github.com/GoSim-25-26J-441/cloudtune/internal/filter"
	"github.com/GoSim-25-26J-441/cloudtune/internal/grid"
	"github.com/GoSim-25-26J-441/cloudtune/internal/improvement"
	"github.com/GoSim-25-26J-441/cloudtune/internal/metrics"
	"github.com/GoSim-25-26J-441/cloudtune/internal/results"
	"github.com/GoSim-25-26J-441/cloudtune/pkg/config"
	"github.com/GoSim-25-26J-441/cloudtune/pkg/logger"
	"github.com/GoSim-25-26J-441/cloudtune/pkg/pointcloud"
	"github.com/GoSim-25-26J-441/cloudtune/pkg/utils"
)

// Options tunes a run. The zero value is usable.
type Options struct {
	Now      func() time.Time
	Progress improvement.ProgressReporter
}

// Report describes a run that got as far as creating its run directory.
type Report struct {
	RunID       string
	RunDir      *results.RunDir
	TrialLog    string
	SummaryPath string
	Points      int
	Result      *improvement.OptimizationResult
}

// PlannedTrial is one entry of a plan's trial order.
type PlannedTrial struct {
	Index     int
	Processor string
	Params    grid.Params
	Resolved  grid.Params
}

type step struct {
	processor filter.Processor
	grid      *grid.Grid
}

// resolve looks up every search entry's processor and checks its grid
// against the processor's parameters.
func resolve(plan *config.Plan) ([]step, error) {
	steps := make([]step, 0, len(plan.Search))
	for i, entry := range plan.Search {
		p, err := filter.Lookup(entry.Processor)
		if err != nil {
			return nil, fmt.Errorf("search entry %d: %w", i, err)
		}
		g := entry.Grid.Grid()
		if err := g.Validate(p.Defaults()); err != nil {
			return nil, fmt.Errorf("search entry %d (%s): %w", i, p.Name(), err)
		}
		steps = append(steps, step{processor: p, grid: g})
	}
	return steps, nil
}

func objectiveFor(plan *config.Plan) (improvement.Objective, error) {
	obj, err := improvement.NewObjectiveFunction(plan.Objective.Name, plan.Objective.TargetPercent)
	if err != nil {
		return nil, fmt.Errorf("invalid objective: %w", err)
	}
	return obj, nil
}

// Check verifies plan against the built-in objectives and processors without
// reading the input file.
func Check(plan *config.Plan) error {
	if _, err := objectiveFor(plan); err != nil {
		return err
	}
	_, err := resolve(plan)
	return err
}

// Enumerate lists the trials plan would run, in order, without loading data.
func Enumerate(plan *config.Plan) ([]PlannedTrial, error) {
	steps, err := resolve(plan)
	if err != nil {
		return nil, err
	}
	var trials []PlannedTrial
	for _, s := range steps {
		defaults := s.processor.Defaults()
		for params := range s.grid.All() {
			trials = append(trials, PlannedTrial{
				Index:     len(trials),
				Processor: s.processor.Name(),
				Params:    params,
				Resolved:  params.WithDefaults(defaults),
			})
		}
	}
	return trials, nil
}

// Run executes plan. When the search itself fails the returned report still
// points at the run directory, whose trial log holds every completed trial.
func Run(plan *config.Plan, opts Options) (*Report, error) {
	if err := plan.Validate(); err != nil {
		return nil, fmt.Errorf("invalid plan: %w", err)
	}
	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}

	objective, err := objectiveFor(plan)
	if err != nil {
		return nil, err
	}
	steps, err := resolve(plan)
	if err != nil {
		return nil, err
	}

	cloud, err := pointcloud.Load(plan.Input)
	if err != nil {
		return nil, err
	}
	logger.Info("point cloud loaded", "input", plan.Input, "points", cloud.Len())

	started := now()
	dir, err := results.NewRunDir(plan.OutputDir, plan.Input, started)
	if err != nil {
		return nil, err
	}
	report := &Report{
		RunID:       utils.GenerateRunID(started),
		RunDir:      dir,
		TrialLog:    dir.File(plan.LogFile),
		SummaryPath: dir.File(results.DefaultSummaryName),
		Points:      cloud.Len(),
	}
	log := logger.With("run_id", report.RunID)
	log.Info("run directory created", "path", dir.Path)

	trialLog, err := results.OpenTrialLog(report.TrialLog)
	if err != nil {
		return report, err
	}
	defer trialLog.Close()

	collector := metrics.NewCollector()
	opt := improvement.NewOptimizer(cloud, objective, trialLog).
		WithCollector(collector).
		WithProgressReporter(opts.Progress)
	for _, s := range steps {
		if err := opt.AddProcessingOptions(s.processor, s.grid); err != nil {
			return report, err
		}
	}

	res, err := opt.Optimize()
	if err != nil {
		log.Error("run failed", "trials_logged", trialLog.Records(), "trial_log", report.TrialLog, "error", err)
		return report, err
	}
	report.Result = res

	if err := trialLog.Close(); err != nil {
		return report, fmt.Errorf("failed to close trial log: %w", err)
	}

	summary := results.Summary{
		RunID:     report.RunID,
		Input:     plan.Input,
		Points:    cloud.Len(),
		Objective: objective.Name(),
		Started:   started,
		TrialLog:  plan.LogFile,
		Result:    res,
		Collector: collector,
	}
	if err := results.WriteSummary(report.SummaryPath, summary); err != nil {
		return report, err
	}

	log.Info("run completed",
		"trials", res.Trials,
		"elapsed", utils.FormatDuration(res.Elapsed),
		"summary", report.SummaryPath)
	return report, nil
}
