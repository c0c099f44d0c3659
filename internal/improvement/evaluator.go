package improvement

import (
	"fmt"
	"time"

	"github.com/GoSim-25-26J-441/cloudtune/internal/filter"
	"github.com/GoSim-25-26J-441/cloudtune/internal/grid"
	"github.com/GoSim-25-26J-441/cloudtune/pkg/pointcloud"
)

// TrialRecord is the outcome of one trial. It is written once and never revised.
type TrialRecord struct {
	Index     int         // position in trial order, from 0
	Processor string      // processor type name
	Params    grid.Params // the grid assignment under test
	Resolved  grid.Params // Params plus defaults, as passed to Apply
	Elapsed   time.Duration
	Score     float64
	Retained  int // points left after filtering
}

// TrialRecorder persists trial records as they are produced.
type TrialRecorder interface {
	Record(rec TrialRecord) error
}

// Evaluator runs single trials against one original cloud.
type Evaluator struct {
	original  *pointcloud.Cloud
	objective Objective
	recorder  TrialRecorder
	clock     func() time.Time
}

// NewEvaluator creates an evaluator. recorder may be nil.
func NewEvaluator(original *pointcloud.Cloud, objective Objective, recorder TrialRecorder) *Evaluator {
	return &Evaluator{
		original:  original,
		objective: objective,
		recorder:  recorder,
		clock:     time.Now,
	}
}

// Evaluate applies p with params to the original cloud, times the call,
// scores the result and records the trial. Only Apply is timed.
// A processor failure is returned as a *TrialError; nothing is recorded for it.
func (e *Evaluator) Evaluate(index int, p filter.Processor, params grid.Params) (TrialRecord, error) {
	resolved := params.WithDefaults(p.Defaults())

	start := e.clock()
	filtered, err := p.Apply(e.original, resolved)
	elapsed := e.clock().Sub(start)
	if err != nil {
		return TrialRecord{}, &TrialError{Index: index, Processor: p.Name(), Params: params, Err: err}
	}

	rec := TrialRecord{
		Index:     index,
		Processor: p.Name(),
		Params:    params,
		Resolved:  resolved,
		Elapsed:   elapsed,
		Score:     e.objective.Score(e.original, filtered),
		Retained:  filtered.Len(),
	}

	if e.recorder != nil {
		if err := e.recorder.Record(rec); err != nil {
			return rec, fmt.Errorf("failed to record trial %d: %w", index+1, err)
		}
	}
	return rec, nil
}
