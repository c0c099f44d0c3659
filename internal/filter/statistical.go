package filter

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/GoSim-25-26J-441/cloudtune/internal/grid"
	"github.com/GoSim-25-26J-441/cloudtune/internal/spatial"
	"github.com/GoSim-25-26J-441/cloudtune/pkg/pointcloud"
)

// Parameter names and defaults for StatisticalOutlierRemoval.
const (
	ParamNbNeighbors = "nb_neighbors"
	ParamStdRatio    = "std_ratio"

	DefaultNbNeighbors = 20
	DefaultStdRatio    = 2.0
)

// StatisticalOutlierRemoval drops points whose mean distance to their nearest
// neighbours is unusually large compared to the rest of the cloud.
type StatisticalOutlierRemoval struct{}

func (StatisticalOutlierRemoval) Name() string { return "StatisticalOutlierRemoval" }

func (StatisticalOutlierRemoval) Defaults() grid.Params {
	return grid.NewParams(
		grid.Bind(ParamNbNeighbors, grid.Int(DefaultNbNeighbors)),
		grid.Bind(ParamStdRatio, grid.Float(DefaultStdRatio)),
	)
}

// Apply keeps a point when its mean distance to its nb_neighbors nearest
// points (itself included) is positive and below mean + std_ratio*stddev,
// where mean and stddev are taken over the whole cloud.
func (s StatisticalOutlierRemoval) Apply(cloud *pointcloud.Cloud, params grid.Params) (*pointcloud.Cloud, error) {
	params = params.WithDefaults(s.Defaults())
	k, err := params.Int(ParamNbNeighbors)
	if err != nil {
		return nil, err
	}
	ratio, err := params.Float(ParamStdRatio)
	if err != nil {
		return nil, err
	}
	if k < 1 || ratio <= 0 {
		return nil, fmt.Errorf("%w: %s must be >= 1 and %s > 0, got %d and %s",
			ErrInvalidParameters, ParamNbNeighbors, ParamStdRatio, k, grid.FormatFloat(ratio))
	}

	n := cloud.Len()
	if n == 0 {
		return pointcloud.NewCloud(nil), nil
	}

	pts := cloud.Points()
	tree := spatial.NewKDTree(pts)
	avg := make([]float64, n)
	for i, p := range pts {
		nbrs := tree.KNearest(p, k)
		sum := 0.0
		for _, nb := range nbrs {
			sum += nb.Distance()
		}
		avg[i] = sum / float64(len(nbrs))
	}

	// Points whose neighbours all coincide with them (average 0) add nothing
	// to the mean but still count toward n.
	mean := stat.Mean(avg, nil)

	sq := 0.0
	for _, d := range avg {
		if d > 0 {
			sq += (d - mean) * (d - mean)
		}
	}
	std := 0.0
	if n > 1 {
		std = math.Sqrt(sq / float64(n-1))
	}
	threshold := mean + ratio*std

	keep := make([]int, 0, n)
	for i, d := range avg {
		if d > 0 && d < threshold {
			keep = append(keep, i)
		}
	}
	return cloud.Select(keep), nil
}
