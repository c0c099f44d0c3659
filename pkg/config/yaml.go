package config

import (
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/GoSim-25-26J-441/cloudtune/internal/grid"
)

// UnmarshalYAML decodes a grid mapping node by node so that key order is kept.
func (p *ParamGrid) UnmarshalYAML(node *yaml.Node) error {
	node = resolveAlias(node)
	if node.Kind == yaml.ScalarNode && node.ShortTag() == "!!null" {
		p.g = &grid.Grid{}
		return nil
	}
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: grid must be a mapping of parameter name to candidate list", node.Line)
	}

	g := &grid.Grid{}
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, val := node.Content[i], resolveAlias(node.Content[i+1])

		var candidates []*yaml.Node
		switch val.Kind {
		case yaml.SequenceNode:
			candidates = val.Content
		case yaml.ScalarNode:
			candidates = []*yaml.Node{val}
		default:
			return fmt.Errorf("line %d: candidates for %q must be a list of scalars", val.Line, key.Value)
		}

		values := make([]grid.Value, 0, len(candidates))
		for _, c := range candidates {
			v, err := scalarValue(c)
			if err != nil {
				return fmt.Errorf("line %d: parameter %q: %w", c.Line, key.Value, err)
			}
			values = append(values, v)
		}
		if err := g.Add(key.Value, values...); err != nil {
			return fmt.Errorf("line %d: %w", key.Line, err)
		}
	}
	p.g = g
	return nil
}

// MarshalYAML writes the grid as an ordered mapping with flow-style lists.
func (p ParamGrid) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, a := range p.Grid().Axes() {
		seq := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
		for _, v := range a.Values {
			seq.Content = append(seq.Content, valueNode(v))
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: a.Name},
			seq)
	}
	return node, nil
}

func resolveAlias(n *yaml.Node) *yaml.Node {
	for n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	return n
}

// scalarValue maps a YAML scalar to a tagged value by its resolved tag.
func scalarValue(n *yaml.Node) (grid.Value, error) {
	n = resolveAlias(n)
	if n.Kind != yaml.ScalarNode {
		return grid.Value{}, fmt.Errorf("candidate must be a scalar")
	}
	switch tag := n.ShortTag(); tag {
	case "!!int":
		var i int
		if err := n.Decode(&i); err != nil {
			return grid.Value{}, err
		}
		return grid.Int(i), nil
	case "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			return grid.Value{}, err
		}
		return grid.Float(f), nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return grid.Value{}, err
		}
		return grid.Bool(b), nil
	case "!!str":
		return grid.String(n.Value), nil
	default:
		return grid.Value{}, fmt.Errorf("unsupported candidate type %s", tag)
	}
}

func valueNode(v grid.Value) *yaml.Node {
	n := &yaml.Node{Kind: yaml.ScalarNode}
	switch v.Kind() {
	case grid.KindInt:
		i, _ := v.AsInt()
		n.Tag, n.Value = "!!int", strconv.Itoa(i)
	case grid.KindFloat:
		f, _ := v.AsFloat()
		n.Tag, n.Value = "!!float", yamlFloat(f)
	case grid.KindBool:
		b, _ := v.AsBool()
		n.Tag, n.Value = "!!bool", strconv.FormatBool(b)
	default:
		s, _ := v.AsString()
		n.Tag, n.Value = "!!str", s
	}
	return n
}

func yamlFloat(f float64) string {
	switch s := grid.FormatFloat(f); s {
	case "inf":
		return ".inf"
	case "-inf":
		return "-.inf"
	case "nan":
		return ".nan"
	default:
		return s
	}
}
