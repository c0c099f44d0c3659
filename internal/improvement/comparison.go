package improvement

import (
	"math"
	"slices"

	"gonum.org/v1/gonum/stat"
)

// ProcessorComparison summarizes the trials one processor ran within a search.
type ProcessorComparison struct {
	Processor     string
	Trials        int
	Best          TrialRecord
	Worst         TrialRecord
	Finite        int     // trials with a finite score
	MeanScore     float64 // over finite scores only
	ScoreVariance float64
}

// CompareProcessors groups history by processor, in the order processors
// first appear. Best follows the optimizer's rule; Worst is the last trial
// with the highest score, a NaN score counting as highest.
func CompareProcessors(history []TrialRecord) []ProcessorComparison {
	var out []ProcessorComparison
	index := make(map[string]int)
	finite := make(map[string][]float64)

	for _, rec := range history {
		i, ok := index[rec.Processor]
		if !ok {
			i = len(out)
			index[rec.Processor] = i
			out = append(out, ProcessorComparison{Processor: rec.Processor, Best: rec, Worst: rec})
		}
		c := &out[i]
		c.Trials++
		if Better(rec.Score, c.Best.Score) {
			c.Best = rec
		}
		if Better(c.Worst.Score, rec.Score) || rec.Score == c.Worst.Score {
			c.Worst = rec
		}
		if !math.IsInf(rec.Score, 0) && !math.IsNaN(rec.Score) {
			finite[rec.Processor] = append(finite[rec.Processor], rec.Score)
		}
	}

	for i := range out {
		scores := finite[out[i].Processor]
		out[i].Finite = len(scores)
		out[i].MeanScore, out[i].ScoreVariance = meanVariance(scores)
	}
	return out
}

// Rank returns history ordered best first. Equal scores keep trial order and
// NaN scores sort last.
func Rank(history []TrialRecord) []TrialRecord {
	ranked := slices.Clone(history)
	slices.SortStableFunc(ranked, func(a, b TrialRecord) int {
		switch {
		case Better(a.Score, b.Score):
			return -1
		case Better(b.Score, a.Score):
			return 1
		default:
			return 0
		}
	})
	return ranked
}

func meanVariance(values []float64) (mean, variance float64) {
	if len(values) == 0 {
		return 0, 0
	}
	return stat.PopMeanVariance(values, nil)
}
