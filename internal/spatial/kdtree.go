// Package spatial provides nearest-neighbour queries over 3-D points.
//
// The tree itself is gonum's k-d tree; this package adapts r3 vectors to it
// and maps results back to indices into the caller's point slice.
package spatial

import (
	"cmp"
	"math"
	"slices"

	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/spatial/kdtree"
)

// Neighbor is one query result: the index of a point in the tree's input
// slice and its squared distance to the query.
type Neighbor struct {
	Index int
	Dist2 float64
}

// Distance returns the Euclidean distance to the query point.
func (n Neighbor) Distance() float64 { return math.Sqrt(n.Dist2) }

// KDTree is a static 3-d tree. It is built once and never modified.
type KDTree struct {
	tree *kdtree.Tree
	n    int
}

// NewKDTree builds a balanced tree over a copy of points.
func NewKDTree(points []r3.Vector) *KDTree {
	if len(points) == 0 {
		return &KDTree{}
	}
	ps := make(pointSet, len(points))
	for i, v := range points {
		ps[i] = point{v: v, index: i}
	}
	return &KDTree{tree: kdtree.New(ps, false), n: len(points)}
}

// Len returns the number of indexed points.
func (t *KDTree) Len() int { return t.n }

// KNearest returns up to k points closest to q, nearest first. A point equal
// to q is included.
func (t *KDTree) KNearest(q r3.Vector, k int) []Neighbor {
	if k <= 0 || t.tree == nil {
		return nil
	}
	keep := kdtree.NewNKeeper(k)
	t.tree.NearestSet(keep, point{v: q, index: -1})
	out := neighbors(keep.Heap)
	slices.SortFunc(out, func(a, b Neighbor) int {
		if c := cmp.Compare(a.Dist2, b.Dist2); c != 0 {
			return c
		}
		return cmp.Compare(a.Index, b.Index)
	})
	return out
}

// CountWithin returns how many points lie at distance <= radius from q,
// q itself included when it is in the tree.
func (t *KDTree) CountWithin(q r3.Vector, radius float64) int {
	return len(t.Within(q, radius))
}

// Within returns every point at distance <= radius from q, in no particular order.
func (t *KDTree) Within(q r3.Vector, radius float64) []Neighbor {
	if radius < 0 || t.tree == nil {
		return nil
	}
	keep := kdtree.NewDistKeeper(radius * radius)
	t.tree.NearestSet(keep, point{v: q, index: -1})
	return neighbors(keep.Heap)
}

// neighbors converts keeper contents, skipping the keeper's nil sentinel.
func neighbors(h kdtree.Heap) []Neighbor {
	out := make([]Neighbor, 0, len(h))
	for _, c := range h {
		if c.Comparable == nil {
			continue
		}
		out = append(out, Neighbor{Index: c.Comparable.(point).index, Dist2: c.Dist})
	}
	return out
}

// point is a cloud point tagged with its position in the input slice.
type point struct {
	v     r3.Vector
	index int
}

func (p point) Compare(c kdtree.Comparable, d kdtree.Dim) float64 {
	return coord(p.v, d) - coord(c.(point).v, d)
}

func (p point) Dims() int { return 3 }

// Distance is the squared Euclidean distance, as kdtree expects.
func (p point) Distance(c kdtree.Comparable) float64 {
	return p.v.Sub(c.(point).v).Norm2()
}

// pointSet implements kdtree.Interface.
type pointSet []point

func (p pointSet) Index(i int) kdtree.Comparable         { return p[i] }
func (p pointSet) Len() int                              { return len(p) }
func (p pointSet) Pivot(d kdtree.Dim) int                { return plane{pointSet: p, dim: d}.pivot() }
func (p pointSet) Slice(start, end int) kdtree.Interface { return p[start:end] }

// plane orders a pointSet along one dimension for median partitioning.
type plane struct {
	pointSet
	dim kdtree.Dim
}

func (p plane) Less(i, j int) bool {
	return coord(p.pointSet[i].v, p.dim) < coord(p.pointSet[j].v, p.dim)
}

func (p plane) Swap(i, j int) { p.pointSet[i], p.pointSet[j] = p.pointSet[j], p.pointSet[i] }

func (p plane) Slice(start, end int) kdtree.SortSlicer {
	return plane{pointSet: p.pointSet[start:end], dim: p.dim}
}

func (p plane) pivot() int { return kdtree.Partition(p, kdtree.MedianOfMedians(p)) }

func coord(v r3.Vector, d kdtree.Dim) float64 {
	switch d {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}
