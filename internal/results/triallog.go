package results

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/GoSim-25-26J-441/cloudtune/internal/grid"
	"github.com/GoSim-25-26J-441/cloudtune/internal/improvement"
	"github.com/GoSim-25-26J-441/cloudtune/pkg/utils"
)

// DefaultTrialLogName is the trial log file name used when none is configured.
const DefaultTrialLogName = "noise_filter.txt"

// ErrTrialLogClosed is returned when recording to a closed trial log.
var ErrTrialLogClosed = errors.New("trial log is closed")

// TrialLog appends one text block per trial to a file owned by a single run.
// Every Record is written straight to the file.
type TrialLog struct {
	path    string
	f       *os.File
	records int
}

var _ improvement.TrialRecorder = (*TrialLog)(nil)

// OpenTrialLog creates the log file at path. The file must not exist yet.
func OpenTrialLog(path string) (*TrialLog, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to create trial log: %w", err)
	}
	return &TrialLog{path: path, f: f}, nil
}

// Path returns the log file path.
func (l *TrialLog) Path() string { return l.path }

// Records returns how many trials were written.
func (l *TrialLog) Records() int { return l.records }

// Record writes rec as
//
//	Processor: <name>
//	<param>: <value>
//	Time Taken: <ms with two decimals> ms
//	Score: <score>
//
// followed by a blank line. Only the grid assignment is listed.
func (l *TrialLog) Record(rec improvement.TrialRecord) error {
	if l.f == nil {
		return ErrTrialLogClosed
	}
	if _, err := l.f.WriteString(FormatTrial(rec)); err != nil {
		return fmt.Errorf("failed to write trial log %s: %w", l.path, err)
	}
	l.records++
	return nil
}

// Close closes the file. It is safe to call more than once.
func (l *TrialLog) Close() error {
	if l.f == nil {
		return nil
	}
	err := l.f.Close()
	l.f = nil
	return err
}

// FormatTrial renders one trial block, blank separator line included.
func FormatTrial(rec improvement.TrialRecord) string {
	var b strings.Builder
	b.WriteString("Processor: ")
	b.WriteString(rec.Processor)
	b.WriteByte('\n')
	for name, v := range rec.Params.All() {
		b.WriteString(name)
		b.WriteString(": ")
		b.WriteString(v.String())
		b.WriteByte('\n')
	}
	fmt.Fprintf(&b, "Time Taken: %.2f ms\n", utils.TimeToMs(rec.Elapsed))
	b.WriteString("Score: ")
	b.WriteString(grid.FormatFloat(rec.Score))
	b.WriteString("\n\n")
	return b.String()
}
