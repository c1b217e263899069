package engine

import "sort"

// Aggregate merges the two raw stat streams into per-item aggregates.
// Only items present in meta with type "upgrade" and a tier of 1-4 are
// retained; rows for unknown items are dropped silently. Rows with zero
// matches are ignored entirely so that empty buckets never appear in the
// maps. Timing fields are overwritten per row (last write wins) rather than
// averaged; the provider emits one timing pair per item in practice.
func Aggregate(netWorthRows, minuteRows []StatRow, meta map[int]ItemMeta) map[int]*ItemAggregate {
	aggs := make(map[int]*ItemAggregate)

	upsert := func(row StatRow) *ItemAggregate {
		m, ok := meta[row.ItemID]
		if !ok || m.Type != "upgrade" || m.Tier < 1 || m.Tier > 4 {
			return nil
		}
		agg, ok := aggs[row.ItemID]
		if !ok {
			agg = &ItemAggregate{
				ItemID:     m.ID,
				Name:       m.Name,
				Tier:       m.Tier,
				Slot:       m.Slot,
				Image:      m.Image,
				ByNetWorth: make(map[int]BucketRecord),
				ByMinute:   make(map[int]BucketRecord),
			}
			aggs[row.ItemID] = agg
		}
		return agg
	}

	for _, row := range netWorthRows {
		if row.Matches <= 0 {
			continue
		}
		agg := upsert(row)
		if agg == nil {
			continue
		}
		agg.ByNetWorth[row.Bucket] = BucketRecord{
			WinRate: float64(row.Wins) / float64(row.Matches),
			Wins:    row.Wins,
			Matches: row.Matches,
		}
		agg.TotalWins += row.Wins
		agg.TotalMatches += row.Matches
		if row.AvgBuyTimeS > 0 {
			agg.AvgBuyTimeS = row.AvgBuyTimeS
		}
		if row.AvgSellTimeS > 0 {
			agg.AvgSellTimeS = row.AvgSellTimeS
		}
	}

	for _, row := range minuteRows {
		if row.Matches <= 0 || row.Bucket < 0 {
			continue
		}
		agg := upsert(row)
		if agg == nil {
			continue
		}
		agg.ByMinute[row.Bucket] = BucketRecord{
			WinRate: float64(row.Wins) / float64(row.Matches),
			Wins:    row.Wins,
			Matches: row.Matches,
		}
		if row.AvgBuyTimeS > 0 {
			agg.AvgBuyTimeS = row.AvgBuyTimeS
		}
		if row.AvgSellTimeS > 0 {
			agg.AvgSellTimeS = row.AvgSellTimeS
		}
	}

	return aggs
}

// GroupByTier groups aggregates into the four item tiers, each tier sorted
// by weighted win rate descending (the default build-creator ordering).
func GroupByTier(aggs map[int]*ItemAggregate) map[int][]*ItemAggregate {
	tiers := make(map[int][]*ItemAggregate, 4)
	for _, agg := range aggs {
		tiers[agg.Tier] = append(tiers[agg.Tier], agg)
	}
	for tier := range tiers {
		items := tiers[tier]
		sort.Slice(items, func(i, j int) bool {
			wi, wj := items[i].WinRate(), items[j].WinRate()
			if wi != wj {
				return wi > wj
			}
			return items[i].ItemID < items[j].ItemID
		})
	}
	return tiers
}

// SortByPopularity orders items by total matches descending.
func SortByPopularity(items []*ItemAggregate) {
	sort.Slice(items, func(i, j int) bool {
		if items[i].TotalMatches != items[j].TotalMatches {
			return items[i].TotalMatches > items[j].TotalMatches
		}
		return items[i].ItemID < items[j].ItemID
	})
}

// SortByBuyTime orders items by average buy time ascending, so the earliest
// purchases come first. Items with no recorded buy time sort last.
func SortByBuyTime(items []*ItemAggregate) {
	sort.Slice(items, func(i, j int) bool {
		bi, bj := items[i].AvgBuyTimeS, items[j].AvgBuyTimeS
		if bi <= 0 {
			return false
		}
		if bj <= 0 {
			return true
		}
		if bi != bj {
			return bi < bj
		}
		return items[i].ItemID < items[j].ItemID
	})
}
