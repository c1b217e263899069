package engine

// Game phases partition the match timeline into the five coarse stages the
// build view displays. Bounds are half-open on the minute; the last phase
// is open-ended.
var phaseBounds = []struct {
	Label    string
	StartMin int
	EndMin   int // exclusive; -1 means unbounded
}{
	{"0-5", 0, 5},
	{"5-10", 5, 10},
	{"10-20", 10, 20},
	{"20-30", 20, 30},
	{"30+", 30, -1},
}

const bestPhaseFloor = 500

// PhaseStats is the win/match rollup for one game phase.
type PhaseStats struct {
	Label    string
	StartMin int
	EndMin   int
	Wins     int
	Matches  int
	WinRate  float64
}

// AggregatePhases collapses minute-level stats into the five game phases.
// Every minute record lands in exactly one phase; negative minutes are
// skipped. Always returns all five phases in order, zeroed when empty.
func AggregatePhases(byMinute map[int]BucketRecord) []PhaseStats {
	phases := make([]PhaseStats, len(phaseBounds))
	for i, p := range phaseBounds {
		phases[i] = PhaseStats{Label: p.Label, StartMin: p.StartMin, EndMin: p.EndMin}
	}

	for _, min := range sortedBuckets(byMinute) {
		if min < 0 {
			continue
		}
		rec := byMinute[min]
		for i, p := range phaseBounds {
			if min >= p.StartMin && (p.EndMin < 0 || min < p.EndMin) {
				phases[i].Wins += rec.Wins
				phases[i].Matches += rec.Matches
				break
			}
		}
	}

	for i := range phases {
		if phases[i].Matches > 0 {
			phases[i].WinRate = float64(phases[i].Wins) / float64(phases[i].Matches)
		}
	}
	return phases
}

// BestPhase picks the qualifying phase with the highest win rate, using the
// same admissibility shape as best-bucket selection but with a lower
// absolute floor. Returns nil when no phase qualifies.
func BestPhase(phases []PhaseStats) *PhaseStats {
	total := 0
	for _, p := range phases {
		total += p.Matches
	}
	floor := float64(total) * bestBucketShare
	if floor < bestPhaseFloor {
		floor = bestPhaseFloor
	}

	var best *PhaseStats
	for i := range phases {
		p := &phases[i]
		if float64(p.Matches) < floor {
			continue
		}
		if best == nil || p.WinRate > best.WinRate {
			best = p
		}
	}
	return best
}
