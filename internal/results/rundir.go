// Package results persists the artifacts of one optimization run: the run
// directory, the human-readable trial log and the machine-readable summary.
package results

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/GoSim-25-26J-441/cloudtune/pkg/pointcloud"
)

// RunTimestampLayout is the timestamp format used in run directory names.
const RunTimestampLayout = "20060102_150405"

// maxCollisions bounds the suffixes tried when a run directory already exists.
const maxCollisions = 1000

// RunDir is the directory holding every artifact of one run.
type RunDir struct {
	Path    string
	Name    string
	Started time.Time
}

// NewRunDir creates <base>/<stem>_<timestamp> for the input file. If that
// directory already exists a numeric suffix is added, so two runs never share
// a directory.
func NewRunDir(base, input string, now time.Time) (*RunDir, error) {
	if err := os.MkdirAll(base, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory %s: %w", base, err)
	}

	stem := pointcloud.Stem(input)
	if stem == "" {
		stem = "run"
	}
	name := stem + "_" + now.Format(RunTimestampLayout)

	for i := 0; i < maxCollisions; i++ {
		candidate := name
		if i > 0 {
			candidate = fmt.Sprintf("%s_%d", name, i)
		}
		path := filepath.Join(base, candidate)
		err := os.Mkdir(path, 0o755)
		if err == nil {
			return &RunDir{Path: path, Name: candidate, Started: now}, nil
		}
		if !errors.Is(err, fs.ErrExist) {
			return nil, fmt.Errorf("failed to create run directory %s: %w", path, err)
		}
	}
	return nil, fmt.Errorf("failed to create run directory for %s: too many runs at %s", stem, now.Format(RunTimestampLayout))
}

// File returns the path of name inside the run directory.
func (d *RunDir) File(name string) string {
	return filepath.Join(d.Path, name)
}
