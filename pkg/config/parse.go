package config

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

// ParsePlanYAML parses a Plan from YAML bytes, fills in defaults and validates
// it. The input path may be left empty for the command line to supply; call
// Validate once it is known.
func ParsePlanYAML(data []byte) (*Plan, error) {
	var plan Plan
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&plan); err != nil {
		return nil, fmt.Errorf("failed to parse plan yaml: %w", err)
	}

	plan.applyDefaults()
	if err := validatePlan(&plan, false); err != nil {
		return nil, fmt.Errorf("invalid plan: %w", err)
	}
	return &plan, nil
}

// ParsePlanYAMLString parses a Plan from a YAML string and validates it.
func ParsePlanYAMLString(yamlText string) (*Plan, error) {
	return ParsePlanYAML([]byte(yamlText))
}

// EncodePlan renders a plan as YAML.
func EncodePlan(plan *Plan) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(plan); err != nil {
		return nil, fmt.Errorf("failed to encode plan: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode plan: %w", err)
	}
	return buf.Bytes(), nil
}
