package pointcloud

import (
	"testing"

	"github.com/golang/geo/r3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCloudIsIndependentOfInput(t *testing.T) {
	pts := []r3.Vector{{X: 1}, {X: 2}}
	c := NewCloud(pts)
	pts[0].X = 100

	assert.Equal(t, 1.0, c.At(0).X)

	out := c.Points()
	out[1].X = 200
	assert.Equal(t, 2.0, c.At(1).X)
}

func TestCloudSelect(t *testing.T) {
	c := NewCloud([]r3.Vector{{X: 0}, {X: 1}, {X: 2}, {X: 3}})
	s := c.Select([]int{3, 1})

	require.Equal(t, 2, s.Len())
	assert.Equal(t, 3.0, s.At(0).X)
	assert.Equal(t, 1.0, s.At(1).X)
	assert.Equal(t, 4, c.Len())
}

func TestCloudCentroidAndBounds(t *testing.T) {
	c := NewCloud([]r3.Vector{{X: 0, Y: 0, Z: 0}, {X: 2, Y: 4, Z: -2}})

	centroid, ok := c.Centroid()
	require.True(t, ok)
	assert.Equal(t, r3.Vector{X: 1, Y: 2, Z: -1}, centroid)

	lo, hi, ok := c.Bounds()
	require.True(t, ok)
	assert.Equal(t, r3.Vector{X: 0, Y: 0, Z: -2}, lo)
	assert.Equal(t, r3.Vector{X: 2, Y: 4, Z: 0}, hi)

	var empty *Cloud
	assert.Equal(t, 0, empty.Len())
	_, ok = empty.Centroid()
	assert.False(t, ok)
	_, _, ok = NewCloud(nil).Bounds()
	assert.False(t, ok)
}
