package improvement

import "math"

// Better reports whether candidate should replace incumbent as the best
// score. Lower wins and ties keep the incumbent, so the earliest of equal
// scores is kept. NaN never beats a number.
func Better(candidate, incumbent float64) bool {
	if math.IsNaN(candidate) {
		return false
	}
	if math.IsNaN(incumbent) {
		return true
	}
	return candidate < incumbent
}

// bestTracker keeps the running best trial of a search.
type bestTracker struct {
	best  TrialRecord
	found bool
}

// Offer considers rec and reports whether it became the new best. The first
// record offered is always taken, so a search in which every trial scores
// WorstScore still reports its first trial.
func (b *bestTracker) Offer(rec TrialRecord) bool {
	if b.found && !Better(rec.Score, b.best.Score) {
		return false
	}
	b.best = rec
	b.found = true
	return true
}

// Best returns the best record seen so far.
func (b *bestTracker) Best() (TrialRecord, bool) {
	return b.best, b.found
}

// SelectBest applies the same rule as the optimizer to a finished list of
// records, in order.
func SelectBest(records []TrialRecord) (TrialRecord, bool) {
	var b bestTracker
	for _, rec := range records {
		b.Offer(rec)
	}
	return b.Best()
}
