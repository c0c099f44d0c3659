package grid

import (
	"fmt"
	"iter"
	"strings"
)

// Binding assigns one value to one named parameter.
type Binding struct {
	Name  string
	Value Value
}

// Bind is shorthand for a Binding literal.
func Bind(name string, v Value) Binding {
	return Binding{Name: name, Value: v}
}

// Params is an ordered parameter assignment. Iteration order is the order in
// which the bindings were given and is significant for logging.
type Params struct {
	bindings []Binding
}

// NewParams builds an assignment from bindings. A repeated name replaces the
// earlier value in place.
func NewParams(bindings ...Binding) Params {
	var p Params
	for _, b := range bindings {
		p = p.With(b.Name, b.Value)
	}
	return p
}

// Len returns the number of bound parameters.
func (p Params) Len() int { return len(p.bindings) }

// Get returns the value bound to name.
func (p Params) Get(name string) (Value, bool) {
	for _, b := range p.bindings {
		if b.Name == name {
			return b.Value, true
		}
	}
	return Value{}, false
}

// Int returns the integer bound to name.
func (p Params) Int(name string) (int, error) {
	v, ok := p.Get(name)
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownParameter, name)
	}
	i, ok := v.AsInt()
	if !ok {
		return 0, fmt.Errorf("%w: %q is %s, want int", ErrParameterType, name, v.Kind())
	}
	return i, nil
}

// Float returns the number bound to name, widening ints.
func (p Params) Float(name string) (float64, error) {
	v, ok := p.Get(name)
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownParameter, name)
	}
	f, ok := v.AsFloat()
	if !ok {
		return 0, fmt.Errorf("%w: %q is %s, want float", ErrParameterType, name, v.Kind())
	}
	return f, nil
}

// Names returns parameter names in iteration order.
func (p Params) Names() []string {
	names := make([]string, len(p.bindings))
	for i, b := range p.bindings {
		names[i] = b.Name
	}
	return names
}

// Bindings returns a copy of the ordered bindings.
func (p Params) Bindings() []Binding {
	out := make([]Binding, len(p.bindings))
	copy(out, p.bindings)
	return out
}

// All iterates name/value pairs in order.
func (p Params) All() iter.Seq2[string, Value] {
	return func(yield func(string, Value) bool) {
		for _, b := range p.bindings {
			if !yield(b.Name, b.Value) {
				return
			}
		}
	}
}

// With returns a copy of p with name bound to v. An existing binding keeps its
// position; a new one is appended.
func (p Params) With(name string, v Value) Params {
	out := make([]Binding, len(p.bindings), len(p.bindings)+1)
	copy(out, p.bindings)
	for i := range out {
		if out[i].Name == name {
			out[i].Value = v
			return Params{bindings: out}
		}
	}
	return Params{bindings: append(out, Binding{Name: name, Value: v})}
}

// WithDefaults returns p followed by every default that p does not bind,
// in the defaults' order.
func (p Params) WithDefaults(defaults Params) Params {
	out := p.Bindings()
	for _, d := range defaults.bindings {
		if _, ok := p.Get(d.Name); !ok {
			out = append(out, d)
		}
	}
	return Params{bindings: out}
}

// Equal reports whether both assignments bind the same names, in the same
// order, to equal values.
func (p Params) Equal(o Params) bool {
	if len(p.bindings) != len(o.bindings) {
		return false
	}
	for i := range p.bindings {
		if p.bindings[i].Name != o.bindings[i].Name || !p.bindings[i].Value.Equal(o.bindings[i].Value) {
			return false
		}
	}
	return true
}

// Map returns the assignment as a plain map. Order is lost.
func (p Params) Map() map[string]any {
	m := make(map[string]any, len(p.bindings))
	for _, b := range p.bindings {
		m[b.Name] = b.Value.Interface()
	}
	return m
}

func (p Params) String() string {
	parts := make([]string, len(p.bindings))
	for i, b := range p.bindings {
		parts[i] = b.Name + "=" + b.Value.String()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
