package pointcloud

import (
	"github.com/golang/geo/r3"

	"github.com/GoSim-25-26J-441/cloudtune/pkg/utils"
)

// SynthOptions describes a synthetic test cloud: a flat square patch of
// jittered surface points plus uniformly scattered outliers.
type SynthOptions struct {
	Points   int     // surface points
	Outliers int     // scattered noise points
	Size     float64 // side length of the patch
	Noise    float64 // standard deviation of the surface jitter along z
	Seed     int64   // zero picks a time-based seed
}

// Synthesize generates a cloud from opts. Surface points come first and lie
// in [0,Size)² around z=0; outliers fill the box extended by Size on every side.
func Synthesize(opts SynthOptions) *Cloud {
	size := opts.Size
	if size <= 0 {
		size = 1
	}
	rng := utils.NewRandSource(opts.Seed)

	pts := make([]r3.Vector, 0, max(opts.Points, 0)+max(opts.Outliers, 0))
	for range opts.Points {
		pts = append(pts, r3.Vector{
			X: rng.UniformFloat64(0, size),
			Y: rng.UniformFloat64(0, size),
			Z: rng.NormFloat64(0, opts.Noise),
		})
	}
	for range opts.Outliers {
		pts = append(pts, r3.Vector{
			X: rng.UniformFloat64(-size, 2*size),
			Y: rng.UniformFloat64(-size, 2*size),
			Z: rng.UniformFloat64(-size, size),
		})
	}
	return &Cloud{points: pts}
}
