package config

import (
	"testing"

	"gopkg.in/yaml.v3"
)

func decodeGrid(t *testing.T, text string, pg *ParamGrid) error {
	t.Helper()
	return yaml.Unmarshal([]byte(text), pg)
}
