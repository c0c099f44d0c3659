package metrics

import "time"

// Metric names recorded per trial.
const (
	MetricTrialDuration  = "trial_duration_ms"
	MetricTrialScore     = "trial_score"
	MetricRetainedPoints = "retained_points"
)

// LabelProcessor is the label key identifying a processor type.
const LabelProcessor = "processor"

// ProcessorLabels creates a labels map for a processor type.
func ProcessorLabels(processor string) map[string]string {
	return map[string]string{LabelProcessor: processor}
}

// RecordTrial records the duration, score and retained point count of one trial.
func RecordTrial(c *Collector, processor string, elapsed time.Duration, score float64, retained int) {
	labels := ProcessorLabels(processor)
	c.Record(MetricTrialDuration, float64(elapsed)/float64(time.Millisecond), labels)
	c.Record(MetricTrialScore, score, labels)
	c.Record(MetricRetainedPoints, float64(retained), labels)
}
