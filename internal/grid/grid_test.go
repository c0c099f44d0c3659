package grid

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collect(g *Grid) []Params {
	var out []Params
	for p := range g.All() {
		out = append(out, p)
	}
	return out
}

func TestGridOdometerOrder(t *testing.T) {
	g, err := New(
		NewAxis("nb_neighbors", Int(10), Int(20)),
		NewAxis("std_ratio", Float(1.0), Float(2.0), Float(3.0)),
	)
	require.NoError(t, err)
	require.Equal(t, 6, g.Size())

	got := collect(g)
	require.Len(t, got, 6)

	want := [][2]string{
		{"10", "1.0"}, {"10", "2.0"}, {"10", "3.0"},
		{"20", "1.0"}, {"20", "2.0"}, {"20", "3.0"},
	}
	for i, p := range got {
		assert.Equal(t, []string{"nb_neighbors", "std_ratio"}, p.Names())
		a, _ := p.Get("nb_neighbors")
		b, _ := p.Get("std_ratio")
		assert.Equal(t, want[i][0], a.String(), "trial %d", i)
		assert.Equal(t, want[i][1], b.String(), "trial %d", i)
	}
}

func TestGridSizeMatchesEnumeration(t *testing.T) {
	tests := []struct {
		name    string
		lengths []int
	}{
		{"single axis", []int{4}},
		{"two axes", []int{3, 2}},
		{"three axes", []int{2, 3, 4}},
		{"unit axes", []int{1, 1, 1}},
		{"empty axis", []int{3, 0, 2}},
		{"no axes", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := &Grid{}
			want := 1
			for i, n := range tt.lengths {
				values := make([]Value, n)
				for j := range values {
					values[j] = Int(j)
				}
				require.NoError(t, g.Add(fmt.Sprintf("p%d", i), values...))
				want *= n
			}

			got := collect(g)
			assert.Equal(t, want, g.Size())
			assert.Len(t, got, want)

			seen := make(map[string]bool, len(got))
			for _, p := range got {
				key := p.String()
				assert.False(t, seen[key], "duplicate assignment %s", key)
				seen[key] = true
			}
		})
	}
}

func TestGridEmptyGridYieldsOneEmptyAssignment(t *testing.T) {
	var nilGrid *Grid
	for _, g := range []*Grid{nilGrid, {}} {
		got := collect(g)
		require.Len(t, got, 1)
		assert.Equal(t, 0, got[0].Len())
		assert.Equal(t, 1, g.Size())
	}
}

func TestGridAllIsRestartable(t *testing.T) {
	g, err := New(NewAxis("a", Int(1), Int(2)), NewAxis("b", String("x"), String("y")))
	require.NoError(t, err)

	first := collect(g)
	second := collect(g)
	require.Len(t, second, len(first))
	for i := range first {
		assert.True(t, first[i].Equal(second[i]))
	}
}

func TestGridAllStopsEarly(t *testing.T) {
	g, err := New(NewAxis("a", Int(1), Int(2), Int(3)))
	require.NoError(t, err)

	n := 0
	for range g.All() {
		n++
		if n == 2 {
			break
		}
	}
	assert.Equal(t, 2, n)
}

func TestGridAddRejectsDuplicates(t *testing.T) {
	g := &Grid{}
	require.NoError(t, g.Add("radius", Float(0.05)))
	err := g.Add("radius", Float(0.1))
	assert.ErrorIs(t, err, ErrDuplicateParameter)

	assert.Error(t, g.Add(""))
	assert.Error(t, g.Add("nb_points", Value{}))
}

func TestGridAddCopiesCandidates(t *testing.T) {
	values := []Value{Int(1), Int(2)}
	g := &Grid{}
	require.NoError(t, g.Add("a", values...))
	values[0] = Int(99)

	got := collect(g)
	v, _ := got[0].Get("a")
	assert.Equal(t, "1", v.String())
}

func TestGridValidate(t *testing.T) {
	defaults := NewParams(Bind("nb_points", Int(16)), Bind("radius", Float(0.05)))

	tests := []struct {
		name    string
		axes    []Axis
		wantErr error
	}{
		{"ok", []Axis{NewAxis("nb_points", Int(5)), NewAxis("radius", Float(0.1))}, nil},
		{"int for float", []Axis{NewAxis("radius", Int(1))}, nil},
		{"unknown name", []Axis{NewAxis("nb_neighbors", Int(5))}, ErrUnknownParameter},
		{"float for int", []Axis{NewAxis("nb_points", Float(5.5))}, ErrParameterType},
		{"string for float", []Axis{NewAxis("radius", String("wide"))}, ErrParameterType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := New(tt.axes...)
			require.NoError(t, err)
			err = g.Validate(defaults)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestGridSizeSaturates(t *testing.T) {
	vals := make([]Value, 40)
	for i := range vals {
		vals[i] = Int(i)
	}
	g := &Grid{}
	for i := range 12 {
		require.NoError(t, g.Add(fmt.Sprintf("p%d", i), vals...))
	}
	assert.Equal(t, math.MaxInt, g.Size())

	require.NoError(t, g.Add("empty"))
	assert.Equal(t, 0, g.Size())

	assert.Equal(t, math.MaxInt, AddSize(math.MaxInt-1, 2))
	assert.Equal(t, 5, AddSize(2, 3))
	assert.Equal(t, math.MaxInt, MulSize(math.MaxInt/2, 3))
	assert.Equal(t, 6, MulSize(2, 3))
}
