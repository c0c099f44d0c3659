package filter

import (
	"fmt"

	"github.com/GoSim-25-26J-441/cloudtune/internal/grid"
	"github.com/GoSim-25-26J-441/cloudtune/internal/spatial"
	"github.com/GoSim-25-26J-441/cloudtune/pkg/pointcloud"
)

// Parameter names and defaults for RadiusOutlierRemoval.
const (
	ParamNbPoints = "nb_points"
	ParamRadius   = "radius"

	DefaultNbPoints = 16
	DefaultRadius   = 0.05
)

// RadiusOutlierRemoval drops points that have too few neighbours within a
// fixed radius.
type RadiusOutlierRemoval struct{}

func (RadiusOutlierRemoval) Name() string { return "RadiusOutlierRemoval" }

func (RadiusOutlierRemoval) Defaults() grid.Params {
	return grid.NewParams(
		grid.Bind(ParamNbPoints, grid.Int(DefaultNbPoints)),
		grid.Bind(ParamRadius, grid.Float(DefaultRadius)),
	)
}

// Apply keeps a point when at least nb_points points, itself included, lie
// within radius of it.
func (r RadiusOutlierRemoval) Apply(cloud *pointcloud.Cloud, params grid.Params) (*pointcloud.Cloud, error) {
	params = params.WithDefaults(r.Defaults())
	minPts, err := params.Int(ParamNbPoints)
	if err != nil {
		return nil, err
	}
	radius, err := params.Float(ParamRadius)
	if err != nil {
		return nil, err
	}
	if minPts < 1 || radius <= 0 {
		return nil, fmt.Errorf("%w: %s must be >= 1 and %s > 0, got %d and %s",
			ErrInvalidParameters, ParamNbPoints, ParamRadius, minPts, grid.FormatFloat(radius))
	}

	if cloud.Len() == 0 {
		return pointcloud.NewCloud(nil), nil
	}

	pts := cloud.Points()
	tree := spatial.NewKDTree(pts)
	keep := make([]int, 0, len(pts))
	for i, p := range pts {
		if tree.CountWithin(p, radius) >= minPts {
			keep = append(keep, i)
		}
	}
	return cloud.Select(keep), nil
}
