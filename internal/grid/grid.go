// Package grid expands parameter grids into concrete assignments.
//
// A Grid maps parameter names to ordered candidate lists. Expansion walks the
// cartesian product in odometer order: the first parameter is the outermost
// loop and the last parameter varies fastest. Both the order of names and the
// order of candidates are preserved, so enumeration is deterministic.
package grid

import (
	"errors"
	"fmt"
	"iter"
	"math"
)

var (
	// ErrUnknownParameter is returned for a name the target does not declare.
	ErrUnknownParameter = errors.New("unknown parameter")
	// ErrParameterType is returned when a value's kind does not fit the parameter.
	ErrParameterType = errors.New("parameter type mismatch")
	// ErrDuplicateParameter is returned when a grid names a parameter twice.
	ErrDuplicateParameter = errors.New("duplicate parameter")
)

// Axis is one parameter and its candidate values.
type Axis struct {
	Name   string
	Values []Value
}

// NewAxis is shorthand for an Axis literal.
func NewAxis(name string, values ...Value) Axis {
	return Axis{Name: name, Values: values}
}

// Grid is an ordered mapping from parameter name to candidate values.
// The zero value and a nil *Grid are both empty grids with one assignment.
type Grid struct {
	axes []Axis
}

// New builds a grid from axes in the given order.
func New(axes ...Axis) (*Grid, error) {
	g := &Grid{}
	for _, a := range axes {
		if err := g.Add(a.Name, a.Values...); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// Add appends a parameter axis. Candidate order is kept as given.
func (g *Grid) Add(name string, values ...Value) error {
	if name == "" {
		return fmt.Errorf("parameter name cannot be empty")
	}
	for _, a := range g.axes {
		if a.Name == name {
			return fmt.Errorf("%w: %q", ErrDuplicateParameter, name)
		}
	}
	for i, v := range values {
		if !v.IsValid() {
			return fmt.Errorf("parameter %q: candidate %d is invalid", name, i)
		}
	}
	vals := make([]Value, len(values))
	copy(vals, values)
	g.axes = append(g.axes, Axis{Name: name, Values: vals})
	return nil
}

// Axes returns a copy of the grid's axes.
func (g *Grid) Axes() []Axis {
	if g == nil {
		return nil
	}
	out := make([]Axis, len(g.axes))
	for i, a := range g.axes {
		vals := make([]Value, len(a.Values))
		copy(vals, a.Values)
		out[i] = Axis{Name: a.Name, Values: vals}
	}
	return out
}

// Names returns parameter names in insertion order.
func (g *Grid) Names() []string {
	if g == nil {
		return nil
	}
	names := make([]string, len(g.axes))
	for i, a := range g.axes {
		names[i] = a.Name
	}
	return names
}

// Len returns the number of parameters.
func (g *Grid) Len() int {
	if g == nil {
		return 0
	}
	return len(g.axes)
}

// Size returns the number of assignments All yields: the product of the
// candidate list lengths. A grid with no parameters has exactly one. A product
// that does not fit in an int saturates at math.MaxInt.
func (g *Grid) Size() int {
	n := 1
	if g == nil {
		return n
	}
	for _, a := range g.axes {
		n = MulSize(n, len(a.Values))
	}
	return n
}

// MulSize multiplies two non-negative trial counts, saturating at math.MaxInt.
func MulSize(a, b int) int {
	if a == 0 || b == 0 {
		return 0
	}
	if a > math.MaxInt/b {
		return math.MaxInt
	}
	return a * b
}

// AddSize adds two non-negative trial counts, saturating at math.MaxInt.
func AddSize(a, b int) int {
	if a > math.MaxInt-b {
		return math.MaxInt
	}
	return a + b
}

// All returns a lazy sequence over every assignment in odometer order.
// The sequence can be ranged over any number of times.
func (g *Grid) All() iter.Seq[Params] {
	axes := g.Axes()
	return func(yield func(Params) bool) {
		for _, a := range axes {
			if len(a.Values) == 0 {
				return
			}
		}
		idx := make([]int, len(axes))
		for {
			bindings := make([]Binding, len(axes))
			for i, a := range axes {
				bindings[i] = Binding{Name: a.Name, Value: a.Values[idx[i]]}
			}
			if !yield(Params{bindings: bindings}) {
				return
			}

			i := len(axes) - 1
			for ; i >= 0; i-- {
				idx[i]++
				if idx[i] < len(axes[i].Values) {
					break
				}
				idx[i] = 0
			}
			if i < 0 {
				return
			}
		}
	}
}

// Validate checks every axis against a defaults table: each name must be
// declared and each candidate must be compatible with the default's kind.
func (g *Grid) Validate(defaults Params) error {
	if g == nil {
		return nil
	}
	for _, a := range g.axes {
		def, ok := defaults.Get(a.Name)
		if !ok {
			return fmt.Errorf("%w: %q (declared: %v)", ErrUnknownParameter, a.Name, defaults.Names())
		}
		for _, v := range a.Values {
			if !v.Compatible(def) {
				return fmt.Errorf("%w: %q candidate %s is %s, want %s", ErrParameterType, a.Name, v, v.Kind(), def.Kind())
			}
		}
	}
	return nil
}
