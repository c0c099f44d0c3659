// Package pointcloud holds the spatial point dataset and the loaders that
// produce it from files on disk.
package pointcloud

import (
	"math"

	"github.com/golang/geo/r3"
)

// Cloud is an immutable collection of 3-D points. Every operation that
// changes the point set returns a new Cloud.
type Cloud struct {
	points []r3.Vector
}

// NewCloud copies points into a new cloud.
func NewCloud(points []r3.Vector) *Cloud {
	pts := make([]r3.Vector, len(points))
	copy(pts, points)
	return &Cloud{points: pts}
}

// Len returns the number of points. A nil cloud is empty.
func (c *Cloud) Len() int {
	if c == nil {
		return 0
	}
	return len(c.points)
}

// At returns the i-th point.
func (c *Cloud) At(i int) r3.Vector {
	return c.points[i]
}

// Points returns a copy of the points.
func (c *Cloud) Points() []r3.Vector {
	if c == nil {
		return nil
	}
	out := make([]r3.Vector, len(c.points))
	copy(out, c.points)
	return out
}

// Clone returns an independent copy.
func (c *Cloud) Clone() *Cloud {
	return NewCloud(c.Points())
}

// Select returns a new cloud holding the points at the given indices, in the
// order given.
func (c *Cloud) Select(indices []int) *Cloud {
	pts := make([]r3.Vector, len(indices))
	for i, idx := range indices {
		pts[i] = c.points[idx]
	}
	return &Cloud{points: pts}
}

// Centroid returns the mean point. ok is false for an empty cloud.
func (c *Cloud) Centroid() (centroid r3.Vector, ok bool) {
	if c.Len() == 0 {
		return r3.Vector{}, false
	}
	var sum r3.Vector
	for _, p := range c.points {
		sum = sum.Add(p)
	}
	return sum.Mul(1 / float64(len(c.points))), true
}

// Bounds returns the axis-aligned bounding box. ok is false for an empty cloud.
func (c *Cloud) Bounds() (lo, hi r3.Vector, ok bool) {
	if c.Len() == 0 {
		return r3.Vector{}, r3.Vector{}, false
	}
	lo = r3.Vector{X: math.Inf(1), Y: math.Inf(1), Z: math.Inf(1)}
	hi = r3.Vector{X: math.Inf(-1), Y: math.Inf(-1), Z: math.Inf(-1)}
	for _, p := range c.points {
		lo = r3.Vector{X: math.Min(lo.X, p.X), Y: math.Min(lo.Y, p.Y), Z: math.Min(lo.Z, p.Z)}
		hi = r3.Vector{X: math.Max(hi.X, p.X), Y: math.Max(hi.Y, p.Y), Z: math.Max(hi.Z, p.Z)}
	}
	return lo, hi, true
}
