package improvement

import (
	"math"
	"testing"

	"github.com/golang/geo/r3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoSim-25-26J-441/cloudtune/pkg/pointcloud"
)

func TestNewObjectiveFunction(t *testing.T) {
	for _, typ := range ObjectiveTypes() {
		obj, err := NewObjectiveFunction(string(typ), 10)
		require.NoError(t, err)
		assert.Equal(t, string(typ), obj.Name())
	}

	_, err := NewObjectiveFunction("p99_latency", 0)
	var unknown *UnknownObjectiveError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "p99_latency", unknown.ObjectiveType)
}

func TestReductionPercentage(t *testing.T) {
	assert.Equal(t, 25.0, ReductionPercentage(lineCloud(4), lineCloud(3)))
	assert.Equal(t, 0.0, ReductionPercentage(lineCloud(4), lineCloud(4)))
	assert.Equal(t, 100.0, ReductionPercentage(lineCloud(4), lineCloud(0)))
	assert.True(t, math.IsInf(ReductionPercentage(lineCloud(0), lineCloud(0)), 1))
	assert.True(t, math.IsInf(ReductionPercentage(nil, nil), 1))
}

func TestTargetReductionObjective(t *testing.T) {
	obj := &TargetReductionObjective{TargetPercent: 10}
	assert.Equal(t, 15.0, obj.Score(lineCloud(4), lineCloud(3)))
	assert.Equal(t, 10.0, obj.Score(lineCloud(4), lineCloud(4)))
	assert.True(t, math.IsInf(obj.Score(lineCloud(0), lineCloud(0)), 1))
}

func TestCentroidShiftObjective(t *testing.T) {
	obj := &CentroidShiftObjective{}
	original := pointcloud.NewCloud([]r3.Vector{{X: 0}, {X: 2}, {X: 10}})
	filtered := pointcloud.NewCloud([]r3.Vector{{X: 0}, {X: 2}})

	assert.InDelta(t, 3.0, obj.Score(original, filtered), 1e-12)
	assert.Equal(t, 0.0, obj.Score(original, original))
	assert.True(t, math.IsInf(obj.Score(original, lineCloud(0)), 1))
	assert.True(t, math.IsInf(obj.Score(lineCloud(0), lineCloud(0)), 1))
}

func TestObjectiveFunc(t *testing.T) {
	obj := ObjectiveFunc("size", func(_, filtered *pointcloud.Cloud) float64 {
		return float64(filtered.Len())
	})
	assert.Equal(t, "size", obj.Name())
	assert.Equal(t, 3.0, obj.Score(nil, lineCloud(3)))
}
