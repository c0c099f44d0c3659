package results

import (
	"fmt"
	"math"
	"os"
	"time"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/GoSim-25-26J-441/cloudtune/internal/grid"
	"github.com/GoSim-25-26J-441/cloudtune/internal/improvement"
	"github.com/GoSim-25-26J-441/cloudtune/internal/metrics"
	"github.com/GoSim-25-26J-441/cloudtune/pkg/utils"
)

// DefaultSummaryName is the file name of the machine-readable run summary.
const DefaultSummaryName = "summary.json"

// Summary describes a finished run.
type Summary struct {
	RunID     string
	Input     string
	Points    int
	Objective string
	Started   time.Time
	TrialLog  string
	Result    *improvement.OptimizationResult
	Collector *metrics.Collector
}

// Struct converts the summary to a protobuf Struct. Non-finite numbers are
// stored as strings since JSON cannot represent them.
func (s Summary) Struct() (*structpb.Struct, error) {
	doc := map[string]any{
		"run_id":    s.RunID,
		"input":     s.Input,
		"points":    s.Points,
		"objective": s.Objective,
		"trial_log": s.TrialLog,
	}
	if !s.Started.IsZero() {
		doc["started"] = s.Started.UTC().Format(time.RFC3339)
	}

	if res := s.Result; res != nil {
		doc["trials"] = res.Trials
		doc["elapsed_ms"] = utils.Round(utils.TimeToMs(res.Elapsed), 2)
		doc["best"] = map[string]any{
			"trial":     res.Best.Index + 1,
			"processor": res.Best.Processor,
			"params":    paramsDoc(res.Params),
			"score":     number(res.Score),
			"retained":  res.Best.Retained,
		}
		history := make([]any, len(res.History))
		for i, rec := range res.History {
			history[i] = map[string]any{
				"trial":      rec.Index + 1,
				"processor":  rec.Processor,
				"params":     paramsDoc(rec.Params),
				"elapsed_ms": utils.Round(utils.TimeToMs(rec.Elapsed), 2),
				"score":      number(rec.Score),
				"retained":   rec.Retained,
			}
		}
		doc["history"] = history
	}

	if c := s.Collector; c != nil {
		procs := map[string]any{}
		for _, labels := range c.LabelSets(metrics.MetricTrialScore) {
			name := labels[metrics.LabelProcessor]
			procs[name] = map[string]any{
				"duration_ms": aggregationDoc(c.Aggregation(metrics.MetricTrialDuration, labels)),
				"score":       aggregationDoc(c.Aggregation(metrics.MetricTrialScore, labels)),
				"retained":    aggregationDoc(c.Aggregation(metrics.MetricRetainedPoints, labels)),
			}
		}
		doc["processors"] = procs
	}

	st, err := structpb.NewStruct(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to build summary: %w", err)
	}
	return st, nil
}

// Marshal renders the summary as indented JSON.
func (s Summary) Marshal() ([]byte, error) {
	st, err := s.Struct()
	if err != nil {
		return nil, err
	}
	data, err := protojson.MarshalOptions{Multiline: true, Indent: "  "}.Marshal(st)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal summary: %w", err)
	}
	return data, nil
}

// WriteSummary writes the summary as JSON to path.
func WriteSummary(path string, s Summary) error {
	data, err := s.Marshal()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write summary %s: %w", path, err)
	}
	return nil
}

// ReadSummary parses a summary file back into a Struct.
func ReadSummary(path string) (*structpb.Struct, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read summary %s: %w", path, err)
	}
	st := &structpb.Struct{}
	if err := protojson.Unmarshal(data, st); err != nil {
		return nil, fmt.Errorf("failed to parse summary %s: %w", path, err)
	}
	return st, nil
}

func number(f float64) any {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return grid.FormatFloat(f)
	}
	return f
}

func paramsDoc(p grid.Params) map[string]any {
	out := make(map[string]any, p.Len())
	for name, v := range p.All() {
		if f, ok := v.Interface().(float64); ok {
			out[name] = number(f)
			continue
		}
		out[name] = v.Interface()
	}
	return out
}

func aggregationDoc(agg *metrics.Aggregation) map[string]any {
	if agg == nil {
		return map[string]any{"count": 0}
	}
	return map[string]any{
		"count": agg.Count,
		"min":   number(agg.Min),
		"max":   number(agg.Max),
		"mean":  number(agg.Mean),
		"p50":   number(agg.P50),
		"p95":   number(agg.P95),
	}
}
