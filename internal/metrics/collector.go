package metrics

import (
	"slices"
	"sort"
	"strings"
	"sync"
	"time"
)

// Point is one recorded observation.
type Point struct {
	Seq    int // order of recording across the whole collector
	Value  float64
	Labels map[string]string
}

// Aggregation holds summary statistics over a series.
type Aggregation struct {
	Count int64
	Sum   float64
	Min   float64
	Max   float64
	Mean  float64
	P50   float64
	P95   float64
}

// Collector gathers per-trial series keyed by metric name and label set.
type Collector struct {
	mu sync.RWMutex

	started  time.Time
	stopped  time.Time
	next     int
	series   map[string]map[string][]Point
	labelSet map[string]map[string]map[string]string
}

// NewCollector creates an empty collector.
func NewCollector() *Collector {
	return &Collector{
		series:   make(map[string]map[string][]Point),
		labelSet: make(map[string]map[string]map[string]string),
	}
}

// Start marks the beginning of collection.
func (c *Collector) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.started = time.Now()
}

// Stop marks the end of collection.
func (c *Collector) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopped = time.Now()
}

// Duration is the time between Start and Stop, or zero if either is missing.
func (c *Collector) Duration() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.started.IsZero() || c.stopped.IsZero() {
		return 0
	}
	return c.stopped.Sub(c.started)
}

// Record appends a value to the series for name and labels.
func (c *Collector) Record(name string, value float64, labels map[string]string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := labelKey(labels)
	if c.series[name] == nil {
		c.series[name] = make(map[string][]Point)
		c.labelSet[name] = make(map[string]map[string]string)
	}
	if _, ok := c.labelSet[name][key]; !ok {
		c.labelSet[name][key] = copyLabels(labels)
	}
	c.series[name][key] = append(c.series[name][key], Point{
		Seq:    c.next,
		Value:  value,
		Labels: copyLabels(labels),
	})
	c.next++
}

// Series returns a copy of the points recorded for name and labels.
func (c *Collector) Series(name string, labels map[string]string) []Point {
	c.mu.RLock()
	defer c.mu.RUnlock()

	points := c.series[name][labelKey(labels)]
	if len(points) == 0 {
		return nil
	}
	out := make([]Point, len(points))
	for i, p := range points {
		out[i] = Point{Seq: p.Seq, Value: p.Value, Labels: copyLabels(p.Labels)}
	}
	return out
}

// Aggregation summarizes the series for name and labels. It returns nil when
// nothing was recorded.
func (c *Collector) Aggregation(name string, labels map[string]string) *Aggregation {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return aggregate(c.series[name][labelKey(labels)])
}

// AggregationAll summarizes every point recorded under name, across label sets.
func (c *Collector) AggregationAll(name string) *Aggregation {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var all []Point
	for _, points := range c.series[name] {
		all = append(all, points...)
	}
	return aggregate(all)
}

// MetricNames returns the recorded metric names, sorted.
func (c *Collector) MetricNames() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	names := make([]string, 0, len(c.series))
	for name := range c.series {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LabelSets returns the label combinations recorded for name, in the order
// they were first seen.
func (c *Collector) LabelSets(name string) []map[string]string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	type firstSeen struct {
		seq    int
		labels map[string]string
	}
	var sets []firstSeen
	for key, points := range c.series[name] {
		if len(points) == 0 {
			continue
		}
		sets = append(sets, firstSeen{seq: points[0].Seq, labels: copyLabels(c.labelSet[name][key])})
	}
	slices.SortFunc(sets, func(a, b firstSeen) int { return a.seq - b.seq })

	out := make([]map[string]string, len(sets))
	for i, s := range sets {
		out[i] = s.labels
	}
	return out
}

// Clear drops everything recorded.
func (c *Collector) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.series = make(map[string]map[string][]Point)
	c.labelSet = make(map[string]map[string]map[string]string)
	c.next = 0
	c.started = time.Time{}
	c.stopped = time.Time{}
}

func labelKey(labels map[string]string) string {
	if len(labels) == 0 {
		return ""
	}
	keys := make([]string, 0, len(labels))
	for k := range labels {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(labels[k])
		b.WriteByte(',')
	}
	return b.String()
}

func copyLabels(labels map[string]string) map[string]string {
	if labels == nil {
		return nil
	}
	out := make(map[string]string, len(labels))
	for k, v := range labels {
		out[k] = v
	}
	return out
}

func aggregate(points []Point) *Aggregation {
	if len(points) == 0 {
		return nil
	}

	values := make([]float64, len(points))
	sum := 0.0
	for i, p := range points {
		values[i] = p.Value
		sum += p.Value
	}
	sort.Float64s(values)

	return &Aggregation{
		Count: int64(len(values)),
		Sum:   sum,
		Min:   values[0],
		Max:   values[len(values)-1],
		Mean:  sum / float64(len(values)),
		P50:   percentile(values, 0.50),
		P95:   percentile(values, 0.95),
	}
}

// percentile interpolates linearly within a sorted slice.
func percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	index := p * float64(len(sorted)-1)
	lower := int(index)
	weight := index - float64(lower)
	if weight == 0 || lower+1 >= len(sorted) {
		return sorted[lower]
	}
	return sorted[lower]*(1-weight) + sorted[lower+1]*weight
}
