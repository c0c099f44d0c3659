package improvement

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func history() []TrialRecord {
	return []TrialRecord{
		{Index: 0, Processor: "S", Score: 4},
		{Index: 1, Processor: "S", Score: 2},
		{Index: 2, Processor: "R", Score: math.Inf(1)},
		{Index: 3, Processor: "S", Score: 6},
		{Index: 4, Processor: "R", Score: 2},
		{Index: 5, Processor: "R", Score: math.NaN()},
		{Index: 6, Processor: "S", Score: 6},
	}
}

func TestCompareProcessors(t *testing.T) {
	got := CompareProcessors(history())
	require.Len(t, got, 2)

	s := got[0]
	assert.Equal(t, "S", s.Processor)
	assert.Equal(t, 4, s.Trials)
	assert.Equal(t, 1, s.Best.Index)
	assert.Equal(t, 6, s.Worst.Index)
	assert.Equal(t, 4, s.Finite)
	assert.Equal(t, 4.5, s.MeanScore)
	assert.InDelta(t, 2.75, s.ScoreVariance, 1e-12)

	r := got[1]
	assert.Equal(t, "R", r.Processor)
	assert.Equal(t, 3, r.Trials)
	assert.Equal(t, 4, r.Best.Index)
	assert.Equal(t, 5, r.Worst.Index)
	assert.Equal(t, 1, r.Finite)
	assert.Equal(t, 2.0, r.MeanScore)

	assert.Empty(t, CompareProcessors(nil))
}

func TestRank(t *testing.T) {
	h := history()
	ranked := Rank(h)
	idx := make([]int, len(ranked))
	for i, r := range ranked {
		idx[i] = r.Index
	}
	assert.Equal(t, []int{1, 4, 0, 3, 6, 2, 5}, idx)

	// input untouched
	assert.Equal(t, 0, h[0].Index)

	best, ok := SelectBest(h)
	require.True(t, ok)
	assert.Equal(t, best, ranked[0])
}
