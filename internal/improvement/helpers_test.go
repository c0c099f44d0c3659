package improvement

import (
	"errors"
	"testing"

	"github.com/golang/geo/r3"
	"github.com/stretchr/testify/require"

	"github.com/GoSim-25-26J-441/cloudtune/internal/grid"
	"github.com/GoSim-25-26J-441/cloudtune/pkg/pointcloud"
)

// fakeProcessor records every call and delegates to apply, or returns a
// clone of its input when apply is nil.
type fakeProcessor struct {
	name     string
	defaults grid.Params
	apply    func(*pointcloud.Cloud, grid.Params) (*pointcloud.Cloud, error)
	calls    []grid.Params
}

func (p *fakeProcessor) Name() string          { return p.name }
func (p *fakeProcessor) Defaults() grid.Params { return p.defaults }

func (p *fakeProcessor) Apply(c *pointcloud.Cloud, params grid.Params) (*pointcloud.Cloud, error) {
	p.calls = append(p.calls, params)
	if p.apply != nil {
		return p.apply(c, params)
	}
	return c.Clone(), nil
}

var errRecorderFull = errors.New("recorder full")

type memRecorder struct {
	records []TrialRecord
	limit   int // fail once this many records are held; 0 means unlimited
}

func (r *memRecorder) Record(rec TrialRecord) error {
	if r.limit > 0 && len(r.records) >= r.limit {
		return errRecorderFull
	}
	r.records = append(r.records, rec)
	return nil
}

func intDefaults(name string, v int) grid.Params {
	return grid.NewParams(grid.Bind(name, grid.Int(v)))
}

func intGrid(t *testing.T, name string, values ...int) *grid.Grid {
	t.Helper()
	vals := make([]grid.Value, len(values))
	for i, v := range values {
		vals[i] = grid.Int(v)
	}
	g, err := grid.New(grid.NewAxis(name, vals...))
	require.NoError(t, err)
	return g
}

func lineCloud(n int) *pointcloud.Cloud {
	pts := make([]r3.Vector, n)
	for i := range pts {
		pts[i] = r3.Vector{X: float64(i)}
	}
	return pointcloud.NewCloud(pts)
}

// keepFirst keeps as many leading points as the named integer parameter says.
func keepFirst(name string) func(*pointcloud.Cloud, grid.Params) (*pointcloud.Cloud, error) {
	return func(c *pointcloud.Cloud, params grid.Params) (*pointcloud.Cloud, error) {
		n, err := params.Int(name)
		if err != nil {
			return nil, err
		}
		n = min(n, c.Len())
		idx := make([]int, n)
		for i := range idx {
			idx[i] = i
		}
		return c.Select(idx), nil
	}
}
