// Package engine implements the statistical aggregation and recommendation
// core of the build creator. Everything in this package is a pure transform
// over already-fetched data: no I/O, no goroutines, no shared state.
package engine

import "sort"

// StatRow is a single raw bucket record from the analytics API. Bucket is a
// net-worth level for resource-bucketed stats or an in-game minute for
// time-bucketed stats.
type StatRow struct {
	ItemID       int
	Bucket       int
	Wins         int
	Matches      int
	AvgBuyTimeS  float64
	AvgSellTimeS float64
}

// PairRow is a raw co-purchase record for a pair of items.
type PairRow struct {
	ItemIDs []int
	Wins    int
	Matches int
}

// ItemMeta is the assets-API metadata the engine consumes for one item.
type ItemMeta struct {
	ID         int
	Name       string
	Type       string
	Tier       int
	Slot       string
	Cost       int
	Components []int
	Image      string
}

// BucketRecord holds the win/match tally for one bucket of one item.
type BucketRecord struct {
	WinRate float64
	Wins    int
	Matches int
}

// ItemAggregate is the per-item rollup built from raw bucket rows. It is
// constructed once per hero/rank load and never mutated afterwards.
type ItemAggregate struct {
	ItemID       int
	Name         string
	Tier         int
	Slot         string
	Image        string
	TotalWins    int
	TotalMatches int
	ByNetWorth   map[int]BucketRecord
	ByMinute     map[int]BucketRecord
	AvgBuyTimeS  float64
	AvgSellTimeS float64
}

// WinRate returns the item's overall win rate across net-worth buckets,
// or 0 when the item has no matches.
func (a *ItemAggregate) WinRate() float64 {
	if a.TotalMatches == 0 {
		return 0
	}
	return float64(a.TotalWins) / float64(a.TotalMatches)
}

// sortedBuckets returns the keys of a bucket map in ascending order. Bucket
// iteration order matters for every tie-break in this package, so map ranges
// are never used directly on bucket maps.
func sortedBuckets(m map[int]BucketRecord) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}
