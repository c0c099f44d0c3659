package improvement

import (
	"math"

	"github.com/GoSim-25-26J-441/cloudtune/pkg/pointcloud"
)

// WorstScore is the score an objective returns when a comparison is
// undefined, e.g. for an empty original cloud.
var WorstScore = math.Inf(1)

// Objective scores a filtered cloud against the original it came from.
// Lower scores are better. Implementations must not modify either cloud and
// must return WorstScore rather than fail when the comparison is undefined.
type Objective interface {
	// Score computes the objective value for one trial.
	Score(original, filtered *pointcloud.Cloud) float64

	// Name returns the name of the objective function.
	Name() string
}

// ObjectiveFunc adapts a plain scoring function to Objective.
func ObjectiveFunc(name string, fn func(original, filtered *pointcloud.Cloud) float64) Objective {
	return funcObjective{name: name, fn: fn}
}

type funcObjective struct {
	name string
	fn   func(original, filtered *pointcloud.Cloud) float64
}

func (o funcObjective) Name() string { return o.name }

func (o funcObjective) Score(original, filtered *pointcloud.Cloud) float64 {
	return o.fn(original, filtered)
}

// ObjectiveType represents the type of objective function
type ObjectiveType string

const (
	// ObjectiveReductionPercentage minimizes the share of points removed
	ObjectiveReductionPercentage ObjectiveType = "reduction_percentage"
	// ObjectiveTargetReduction minimizes the distance to a target removal share
	ObjectiveTargetReduction ObjectiveType = "target_reduction"
	// ObjectiveCentroidShift minimizes how far filtering moves the centroid
	ObjectiveCentroidShift ObjectiveType = "centroid_shift"
)

// ObjectiveTypes lists the built-in objectives.
func ObjectiveTypes() []ObjectiveType {
	return []ObjectiveType{ObjectiveReductionPercentage, ObjectiveTargetReduction, ObjectiveCentroidShift}
}

// NewObjectiveFunction creates an objective function from a type string.
// targetPercent is only used by target_reduction.
func NewObjectiveFunction(objType string, targetPercent float64) (Objective, error) {
	switch ObjectiveType(objType) {
	case ObjectiveReductionPercentage:
		return &ReductionObjective{}, nil
	case ObjectiveTargetReduction:
		return &TargetReductionObjective{TargetPercent: targetPercent}, nil
	case ObjectiveCentroidShift:
		return &CentroidShiftObjective{}, nil
	default:
		return nil, &UnknownObjectiveError{ObjectiveType: objType}
	}
}

// ReductionPercentage returns the share of original points that filtering
// removed, in percent, or WorstScore for an empty original.
func ReductionPercentage(original, filtered *pointcloud.Cloud) float64 {
	n := original.Len()
	if n == 0 {
		return WorstScore
	}
	return 100 * float64(n-filtered.Len()) / float64(n)
}

// ReductionObjective prefers the least aggressive filtering
type ReductionObjective struct{}

func (o *ReductionObjective) Name() string {
	return string(ObjectiveReductionPercentage)
}

func (o *ReductionObjective) Score(original, filtered *pointcloud.Cloud) float64 {
	return ReductionPercentage(original, filtered)
}

// TargetReductionObjective prefers filtering that removes close to
// TargetPercent of the points
type TargetReductionObjective struct {
	TargetPercent float64
}

func (o *TargetReductionObjective) Name() string {
	return string(ObjectiveTargetReduction)
}

func (o *TargetReductionObjective) Score(original, filtered *pointcloud.Cloud) float64 {
	r := ReductionPercentage(original, filtered)
	if math.IsInf(r, 1) {
		return r
	}
	return math.Abs(r - o.TargetPercent)
}

// CentroidShiftObjective prefers filtering that leaves the centroid in place.
// Removing every point is treated as the worst outcome.
type CentroidShiftObjective struct{}

func (o *CentroidShiftObjective) Name() string {
	return string(ObjectiveCentroidShift)
}

func (o *CentroidShiftObjective) Score(original, filtered *pointcloud.Cloud) float64 {
	before, ok := original.Centroid()
	if !ok {
		return WorstScore
	}
	after, ok := filtered.Centroid()
	if !ok {
		return WorstScore
	}
	return before.Distance(after)
}

// UnknownObjectiveError indicates an unknown objective type
type UnknownObjectiveError struct {
	ObjectiveType string
}

func (e *UnknownObjectiveError) Error() string {
	return "unknown objective type: " + e.ObjectiveType
}
