package config

import "github.com/GoSim-25-26J-441/cloudtune/internal/grid"

// Defaults applied to fields a plan leaves empty.
const (
	DefaultOutputDir = "data"
	DefaultLogFile   = "noise_filter.txt"
	DefaultLogLevel  = "info"
	DefaultObjective = "reduction_percentage"
)

// Plan describes one optimization run: the input cloud, where to write the
// results, how to score trials and which processors to search in order.
type Plan struct {
	Input     string        `yaml:"input"`
	OutputDir string        `yaml:"output_dir,omitempty"`
	LogFile   string        `yaml:"log_file,omitempty"`
	LogLevel  string        `yaml:"log_level,omitempty"`
	Objective Objective     `yaml:"objective"`
	Search    []SearchEntry `yaml:"search"`
}

// Objective selects the scoring function.
type Objective struct {
	Name          string  `yaml:"name"`
	TargetPercent float64 `yaml:"target_percent,omitempty"` // used by target_reduction
}

// SearchEntry registers one processor with the grid to search for it.
// Entries run in plan order.
type SearchEntry struct {
	Processor string    `yaml:"processor"`
	Grid      ParamGrid `yaml:"grid"`
}

// ParamGrid is a parameter grid as written in a plan: a mapping from
// parameter name to a list of candidates (or a single scalar). Key order and
// candidate order are kept as written.
type ParamGrid struct {
	g *grid.Grid
}

// NewParamGrid wraps g for use in a plan.
func NewParamGrid(g *grid.Grid) ParamGrid {
	return ParamGrid{g: g}
}

// Grid returns the parsed grid. A missing grid is empty and runs the
// processor once with its defaults.
func (p ParamGrid) Grid() *grid.Grid {
	if p.g == nil {
		return &grid.Grid{}
	}
	return p.g
}
