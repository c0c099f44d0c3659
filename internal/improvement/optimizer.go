package improvement

import (
	"fmt"
	"sync"
	"time"

	"github.com/GoSim-25-26J-441/cloudtune/internal/filter"
	"github.com/GoSim-25-26J-441/cloudtune/internal/grid"
	"github.com/GoSim-25-26J-441/cloudtune/internal/metrics"
	"github.com/GoSim-25-26J-441/cloudtune/pkg/logger"
	"github.com/GoSim-25-26J-441/cloudtune/pkg/pointcloud"
)

// RunState is the lifecycle state of an optimizer.
type RunState string

const (
	StateConfigured RunState = "configured"
	StateRunning    RunState = "running"
	StateCompleted  RunState = "completed"
	StateFailed     RunState = "failed"
)

// Registration pairs a processor with the grid to search for it.
type Registration struct {
	Processor filter.Processor
	Grid      *grid.Grid
}

// Progress is reported after every trial.
type Progress struct {
	Completed int
	Total     int
	Last      TrialRecord
	Best      TrialRecord
}

// ProgressReporter receives progress updates on the optimizing goroutine.
type ProgressReporter func(Progress)

// OptimizationResult describes the best trial of a finished search.
type OptimizationResult struct {
	Processor filter.Processor
	Params    grid.Params
	Score     float64
	Best      TrialRecord
	Trials    int
	Elapsed   time.Duration
	History   []TrialRecord
}

// Optimizer runs an exhaustive search over registered processors and their
// parameter grids, in registration order, one trial at a time.
// An Optimizer runs once.
type Optimizer struct {
	original  *pointcloud.Cloud
	objective Objective
	recorder  TrialRecorder
	collector *metrics.Collector
	progress  ProgressReporter

	mu            sync.RWMutex
	registrations []Registration
	state         RunState
}

// NewOptimizer creates an optimizer for one input cloud. recorder receives
// every trial as it completes and may be nil.
func NewOptimizer(original *pointcloud.Cloud, objective Objective, recorder TrialRecorder) *Optimizer {
	return &Optimizer{
		original:  original,
		objective: objective,
		recorder:  recorder,
		state:     StateConfigured,
	}
}

// WithProgressReporter sets a callback invoked after each trial.
func (o *Optimizer) WithProgressReporter(r ProgressReporter) *Optimizer {
	o.progress = r
	return o
}

// WithCollector records per-trial metrics into c.
func (o *Optimizer) WithCollector(c *metrics.Collector) *Optimizer {
	o.collector = c
	return o
}

// AddProcessingOptions registers a processor and its grid. Registering the
// same processor twice appends a second, independent search. The grid is
// checked against the processor's defaults and copied, so later changes by
// the caller do not affect the run.
func (o *Optimizer) AddProcessingOptions(p filter.Processor, g *grid.Grid) error {
	if p == nil {
		return fmt.Errorf("processor is required")
	}
	if err := g.Validate(p.Defaults()); err != nil {
		return fmt.Errorf("invalid grid for %s: %w", p.Name(), err)
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	if o.state != StateConfigured {
		return ErrRunFinished
	}
	cp, err := grid.New(g.Axes()...)
	if err != nil {
		return fmt.Errorf("invalid grid for %s: %w", p.Name(), err)
	}
	o.registrations = append(o.registrations, Registration{Processor: p, Grid: cp})
	return nil
}

// Registrations returns the registered processors in order.
func (o *Optimizer) Registrations() []Registration {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return append([]Registration(nil), o.registrations...)
}

// TotalTrials is the number of trials Optimize will run, saturating at
// math.MaxInt for grids too large to count.
func (o *Optimizer) TotalTrials() int {
	o.mu.RLock()
	defer o.mu.RUnlock()
	total := 0
	for _, r := range o.registrations {
		total = grid.AddSize(total, r.Grid.Size())
	}
	return total
}

// State returns the current lifecycle state.
func (o *Optimizer) State() RunState {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.state
}

func (o *Optimizer) setState(s RunState) {
	o.mu.Lock()
	o.state = s
	o.mu.Unlock()
}

// Optimize evaluates every registered (processor, assignment) pair in order
// and returns the lowest scoring one. Each trial is recorded before the next
// begins. A processor failure aborts the run with a *TrialError; trials
// recorded before it stay recorded.
func (o *Optimizer) Optimize() (*OptimizationResult, error) {
	if o.objective == nil {
		return nil, fmt.Errorf("objective function is required")
	}

	o.mu.Lock()
	if o.state != StateConfigured {
		o.mu.Unlock()
		return nil, ErrRunFinished
	}
	if len(o.registrations) == 0 {
		o.mu.Unlock()
		return nil, ErrNoRegistrations
	}
	registrations := append([]Registration(nil), o.registrations...)
	o.state = StateRunning
	o.mu.Unlock()

	total := o.TotalTrials()
	log := logger.With("objective", o.objective.Name())
	log.Info("optimization started",
		"points", o.original.Len(),
		"registrations", len(registrations),
		"total_trials", total)

	if o.collector != nil {
		o.collector.Start()
		defer o.collector.Stop()
	}

	eval := NewEvaluator(o.original, o.objective, o.recorder)
	var tracker bestTracker
	var history []TrialRecord
	var owners []filter.Processor
	start := time.Now()

	for _, reg := range registrations {
		for params := range reg.Grid.All() {
			rec, err := eval.Evaluate(len(history), reg.Processor, params)
			if err != nil {
				o.setState(StateFailed)
				log.Error("optimization aborted",
					"trial", len(history)+1,
					"processor", reg.Processor.Name(),
					"params", params.String(),
					"error", err)
				return nil, err
			}
			history = append(history, rec)
			owners = append(owners, reg.Processor)

			if o.collector != nil {
				metrics.RecordTrial(o.collector, rec.Processor, rec.Elapsed, rec.Score, rec.Retained)
			}

			log.Debug("trial completed",
				"trial", rec.Index+1,
				"total", total,
				"processor", rec.Processor,
				"params", rec.Params.String(),
				"elapsed", rec.Elapsed,
				"score", grid.FormatFloat(rec.Score))

			if tracker.Offer(rec) {
				log.Info("new best configuration",
					"trial", rec.Index+1,
					"processor", rec.Processor,
					"params", rec.Params.String(),
					"score", grid.FormatFloat(rec.Score))
			}

			if o.progress != nil {
				best, _ := tracker.Best()
				o.progress(Progress{Completed: len(history), Total: total, Last: rec, Best: best})
			}
		}
	}

	best, ok := tracker.Best()
	if !ok {
		o.setState(StateFailed)
		log.Warn("optimization produced no trials")
		return nil, ErrNoTrials
	}

	elapsed := time.Since(start)
	o.setState(StateCompleted)
	log.Info("optimization completed",
		"trials", len(history),
		"elapsed", elapsed,
		"best_processor", best.Processor,
		"best_params", best.Params.String(),
		"best_score", grid.FormatFloat(best.Score))

	return &OptimizationResult{
		Processor: owners[best.Index],
		Params:    best.Params,
		Score:     best.Score,
		Best:      best,
		Trials:    len(history),
		Elapsed:   elapsed,
		History:   history,
	}, nil
}
