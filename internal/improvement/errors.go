package improvement

import (
	"errors"
	"fmt"

	"github.com/GoSim-25-26J-441/cloudtune/internal/grid"
)

var (
	// ErrNoRegistrations is returned by Optimize when nothing was registered.
	ErrNoRegistrations = errors.New("no processing options registered")
	// ErrNoTrials is returned when every registered grid expands to nothing.
	ErrNoTrials = errors.New("parameter grids produced no trials")
	// ErrRunFinished is returned when an optimizer is reused after its run.
	ErrRunFinished = errors.New("optimizer has already run")
)

// TrialError reports a processor failure together with the trial it aborted.
type TrialError struct {
	Index     int
	Processor string
	Params    grid.Params
	Err       error
}

func (e *TrialError) Error() string {
	return fmt.Sprintf("trial %d (%s %s): %v", e.Index+1, e.Processor, e.Params, e.Err)
}

func (e *TrialError) Unwrap() error { return e.Err }
