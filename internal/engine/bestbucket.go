package engine

// Admissibility floors for best-bucket selection. A bucket must carry either
// 5% of the item's total observations or the absolute floor to be considered
// statistically meaningful.
const (
	bestBucketShare = 0.05
	bestBucketFloor = 1000

	// plateauTolerance widens the best bucket into a range of near-best
	// buckets so the result reads as a plateau rather than a point estimate.
	plateauTolerance = 0.01
)

// BestBucket is the statistically-best net-worth bucket for an item together
// with the plateau of buckets performing within plateauTolerance of it.
type BestBucket struct {
	Bucket     int
	WinRate    float64
	Matches    int
	RangeStart int
	RangeEnd   int
}

// SelectBestBucket finds the admissible bucket with the highest win rate.
// Ties resolve to the lowest bucket. Returns nil when no bucket is
// admissible, which callers must treat as "insufficient data".
func SelectBestBucket(byNetWorth map[int]BucketRecord, totalMatches int) *BestBucket {
	floor := float64(totalMatches) * bestBucketShare
	if floor < bestBucketFloor {
		floor = bestBucketFloor
	}

	var best *BestBucket
	buckets := sortedBuckets(byNetWorth)
	for _, b := range buckets {
		rec := byNetWorth[b]
		if float64(rec.Matches) < floor {
			continue
		}
		if best == nil || rec.WinRate > best.WinRate {
			best = &BestBucket{Bucket: b, WinRate: rec.WinRate, Matches: rec.Matches}
		}
	}
	if best == nil {
		return nil
	}

	threshold := best.WinRate - plateauTolerance
	best.RangeStart = best.Bucket
	best.RangeEnd = best.Bucket
	for _, b := range buckets {
		rec := byNetWorth[b]
		if float64(rec.Matches) < floor || rec.WinRate < threshold {
			continue
		}
		if b < best.RangeStart {
			best.RangeStart = b
		}
		if b > best.RangeEnd {
			best.RangeEnd = b
		}
	}
	return best
}
