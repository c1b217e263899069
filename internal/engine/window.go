package engine

// Purchase-window constants. Peak finding ignores buckets above the souls
// ceiling: only games that are already ahead reach high net worth, which
// inflates late-bucket win rates (survivorship bias). The window itself may
// extend past the ceiling but never past the hard cap.
const (
	windowMatchFloor = 500
	peakSoulsCeiling = 25000
	windowTolerance  = 0.03
	windowHardCap    = 30000
)

// PurchaseWindow is the contiguous net-worth range in which buying an item
// performs within windowTolerance of its peak.
type PurchaseWindow struct {
	Start       int
	End         int
	PeakWinRate float64
	PeakBucket  int
}

// InferPurchaseWindow derives the "good to buy" net-worth range for an item.
// Buckets need matches >= windowMatchFloor to participate at all. Returns
// nil when no bucket qualifies.
func InferPurchaseWindow(byNetWorth map[int]BucketRecord) *PurchaseWindow {
	var qualified []int
	for _, b := range sortedBuckets(byNetWorth) {
		if byNetWorth[b].Matches >= windowMatchFloor {
			qualified = append(qualified, b)
		}
	}
	if len(qualified) == 0 {
		return nil
	}

	// Peak search over buckets at or below the ceiling; if every qualified
	// bucket sits above it, fall back to the full set.
	candidates := qualified[:0:0]
	for _, b := range qualified {
		if b <= peakSoulsCeiling {
			candidates = append(candidates, b)
		}
	}
	if len(candidates) == 0 {
		candidates = qualified
	}

	peakIdx := -1
	for i, b := range qualified {
		inCandidates := false
		for _, c := range candidates {
			if c == b {
				inCandidates = true
				break
			}
		}
		if !inCandidates {
			continue
		}
		if peakIdx < 0 || byNetWorth[b].WinRate > byNetWorth[qualified[peakIdx]].WinRate {
			peakIdx = i
		}
	}

	peak := byNetWorth[qualified[peakIdx]]
	threshold := peak.WinRate - windowTolerance

	start, end := peakIdx, peakIdx
	for start > 0 && byNetWorth[qualified[start-1]].WinRate >= threshold {
		start--
	}
	for end < len(qualified)-1 &&
		byNetWorth[qualified[end+1]].WinRate >= threshold &&
		qualified[end+1] <= windowHardCap {
		end++
	}

	return &PurchaseWindow{
		Start:       qualified[start],
		End:         qualified[end],
		PeakWinRate: peak.WinRate,
		PeakBucket:  qualified[peakIdx],
	}
}
