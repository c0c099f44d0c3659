package pointcloud

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/golang/geo/r3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveThenLoad(t *testing.T) {
	cloud := NewCloud([]r3.Vector{{X: 1, Y: 2, Z: 3}, {X: -0.5, Y: 0.25, Z: 1e-3}})
	dir := t.TempDir()

	for _, name := range []string{"c.xyz", "c.csv", "c.pcd", "c.PTS"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			require.NoError(t, Save(path, cloud))
			got, err := Load(path)
			require.NoError(t, err)
			assert.Equal(t, cloud.Points(), got.Points())
		})
	}
}

func TestSaveFormats(t *testing.T) {
	cloud := NewCloud([]r3.Vector{{X: 1, Y: 2.5, Z: -3}})
	dir := t.TempDir()

	require.NoError(t, Save(filepath.Join(dir, "a.csv"), cloud))
	data, err := os.ReadFile(filepath.Join(dir, "a.csv"))
	require.NoError(t, err)
	assert.Equal(t, "1,2.5,-3\n", string(data))

	require.NoError(t, Save(filepath.Join(dir, "a.pcd"), cloud))
	data, err = os.ReadFile(filepath.Join(dir, "a.pcd"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "POINTS 1\nDATA ascii\n1 2.5 -3\n")

	err = Save(filepath.Join(dir, "a.las"), cloud)
	require.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestSaveEmptyCloud(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.pcd")
	require.NoError(t, Save(path, NewCloud(nil)))
	got, err := Load(path)
	require.NoError(t, err)
	assert.Zero(t, got.Len())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(string(data), "DATA ascii\n"))
}

func TestSynthesize(t *testing.T) {
	opts := SynthOptions{Points: 200, Outliers: 10, Size: 2, Noise: 0.01, Seed: 99}
	a := Synthesize(opts)
	b := Synthesize(opts)
	require.Equal(t, 210, a.Len())
	assert.Equal(t, a.Points(), b.Points())

	for i := range 200 {
		p := a.At(i)
		assert.True(t, p.X >= 0 && p.X < 2 && p.Y >= 0 && p.Y < 2, "surface point %d out of patch: %v", i, p)
	}
	for i := 200; i < 210; i++ {
		p := a.At(i)
		assert.True(t, p.X >= -2 && p.X < 4 && p.Z >= -2 && p.Z < 2, "outlier %d out of box: %v", i, p)
	}
	assert.Zero(t, Synthesize(SynthOptions{}).Len())
}
