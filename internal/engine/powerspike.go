package engine

import "sort"

// Powerspike windows are intentionally coarser than the display phases: the
// hero-wide timing signal and the per-item phase view serve different
// consumers and keep distinct partitions.
var spikeWindows = []struct {
	StartMin int
	EndMin   int // exclusive
}{
	{0, 10},
	{10, 15},
	{15, 20},
	{20, 25},
	{25, 30},
	{30, 60},
}

const (
	spikeWindowFloor   = 1000
	spikeItemMinTotal  = 100
	spikeItemMinWindow = 500

	soulBracketMinMatch = 100
	maxItemsPerBracket  = 4
)

// SpikeWindow is one candidate powerspike time window with its aggregate
// tally across the whole item set.
type SpikeWindow struct {
	StartMin int
	EndMin   int
	Wins     int
	Matches  int
	WinRate  float64
}

// SoulBracket classifies when an item is typically bought, by the net-worth
// band of its most-played bucket.
type SoulBracket int

const (
	BracketEarly    SoulBracket = iota // < 5000 souls
	BracketMid                         // < 10000
	BracketLate                        // < 20000
	BracketVeryLate                    // >= 20000
)

// String returns the bracket's display label.
func (b SoulBracket) String() string {
	switch b {
	case BracketEarly:
		return "0-5k souls"
	case BracketMid:
		return "5k-10k souls"
	case BracketLate:
		return "10k-20k souls"
	default:
		return "20k+ souls"
	}
}

// SpikeScoredItem is an item scored by its win rate inside the hero's
// powerspike window.
type SpikeScoredItem struct {
	ItemID      int
	Name        string
	Tier        int
	Slot        string
	WinRate     float64
	Matches     int
	SoulBracket SoulBracket
}

// HeroTimeline sums every item's minute-level stats into one hero-wide
// minute aggregate: the hero's overall time-based performance, not any
// single item's.
func HeroTimeline(aggs map[int]*ItemAggregate) map[int]BucketRecord {
	timeline := make(map[int]BucketRecord)
	for _, agg := range aggs {
		for min, rec := range agg.ByMinute {
			t := timeline[min]
			t.Wins += rec.Wins
			t.Matches += rec.Matches
			timeline[min] = t
		}
	}
	for min, t := range timeline {
		if t.Matches > 0 {
			t.WinRate = float64(t.Wins) / float64(t.Matches)
			timeline[min] = t
		}
	}
	return timeline
}

// DetectPowerspike finds the time window of peak hero-wide win rate. A
// window qualifies only with matches >= spikeWindowFloor. Returns nil when
// no window qualifies.
func DetectPowerspike(timeline map[int]BucketRecord) *SpikeWindow {
	var best *SpikeWindow
	for _, w := range spikeWindows {
		sw := SpikeWindow{StartMin: w.StartMin, EndMin: w.EndMin}
		for min, rec := range timeline {
			if min >= w.StartMin && min < w.EndMin {
				sw.Wins += rec.Wins
				sw.Matches += rec.Matches
			}
		}
		if sw.Matches < spikeWindowFloor {
			continue
		}
		sw.WinRate = float64(sw.Wins) / float64(sw.Matches)
		if best == nil || sw.WinRate > best.WinRate {
			copied := sw
			best = &copied
		}
	}
	return best
}

// ScoreInWindow computes an item's own win rate restricted to the given
// window. The item needs matches >= spikeItemMinTotal overall and
// >= spikeItemMinWindow inside the window; otherwise ok is false.
func ScoreInWindow(agg *ItemAggregate, w *SpikeWindow) (winRate float64, matches int, ok bool) {
	if agg.TotalMatches < spikeItemMinTotal {
		return 0, 0, false
	}
	var wins int
	for min, rec := range agg.ByMinute {
		if min >= w.StartMin && min < w.EndMin {
			wins += rec.Wins
			matches += rec.Matches
		}
	}
	if matches < spikeItemMinWindow {
		return 0, 0, false
	}
	return float64(wins) / float64(matches), matches, true
}

// ClassifySoulBracket finds the item's typical purchase point: the net-worth
// bucket with the most matches, requiring at least soulBracketMinMatch.
// Ties resolve to the lowest bucket.
func ClassifySoulBracket(agg *ItemAggregate) (SoulBracket, bool) {
	bestBucket, bestMatches := -1, 0
	for _, b := range sortedBuckets(agg.ByNetWorth) {
		if m := agg.ByNetWorth[b].Matches; m > bestMatches {
			bestBucket, bestMatches = b, m
		}
	}
	if bestBucket < 0 || bestMatches < soulBracketMinMatch {
		return 0, false
	}
	switch {
	case bestBucket < 5000:
		return BracketEarly, true
	case bestBucket < 10000:
		return BracketMid, true
	case bestBucket < 20000:
		return BracketLate, true
	default:
		return BracketVeryLate, true
	}
}

// BuildPhasePlan groups powerspike-scored items by soul bracket, each
// bracket sorted by spike win rate and truncated to the top entries. This
// feeds the four-phase recommended build view. Returns nil when the hero
// has no detectable powerspike.
func BuildPhasePlan(aggs map[int]*ItemAggregate, spike *SpikeWindow) map[SoulBracket][]SpikeScoredItem {
	if spike == nil {
		return nil
	}
	plan := make(map[SoulBracket][]SpikeScoredItem)

	ids := make([]int, 0, len(aggs))
	for id := range aggs {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	for _, id := range ids {
		agg := aggs[id]
		wr, matches, ok := ScoreInWindow(agg, spike)
		if !ok {
			continue
		}
		bracket, ok := ClassifySoulBracket(agg)
		if !ok {
			continue
		}
		plan[bracket] = append(plan[bracket], SpikeScoredItem{
			ItemID:      id,
			Name:        agg.Name,
			Tier:        agg.Tier,
			Slot:        agg.Slot,
			WinRate:     wr,
			Matches:     matches,
			SoulBracket: bracket,
		})
	}

	for bracket := range plan {
		items := plan[bracket]
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].WinRate > items[j].WinRate
		})
		if len(items) > maxItemsPerBracket {
			items = items[:maxItemsPerBracket]
		}
		plan[bracket] = items
	}
	return plan
}
