package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chainMeta builds a small upgrade forest:
//
//	10 (t1 weapon) -> 20 (t2) -> 30 (t3)
//	11 (t1 spirit) -> 21 (t2)
//	12 (t1 vitality, standalone)
func chainMeta() map[int]ItemMeta {
	return map[int]ItemMeta{
		10: {ID: 10, Name: "Basic Mag", Type: "upgrade", Tier: 1, Slot: "weapon", Cost: 800},
		20: {ID: 20, Name: "Titanic Mag", Type: "upgrade", Tier: 2, Slot: "weapon", Cost: 1600, Components: []int{10}},
		30: {ID: 30, Name: "Siphon Rounds", Type: "upgrade", Tier: 3, Slot: "weapon", Components: []int{20}},
		11: {ID: 11, Name: "Spirit Strike", Type: "upgrade", Tier: 1, Slot: "spirit", Cost: 800},
		21: {ID: 21, Name: "Surge of Power", Type: "upgrade", Tier: 2, Slot: "spirit", Cost: 1600, Components: []int{11}},
		12: {ID: 12, Name: "Extra Regen", Type: "upgrade", Tier: 1, Slot: "vitality", Cost: 800},
	}
}

func chainAggs(winRates map[int]float64, matches int) map[int]*ItemAggregate {
	aggs := make(map[int]*ItemAggregate)
	for id, wr := range winRates {
		aggs[id] = &ItemAggregate{
			ItemID:       id,
			TotalWins:    int(wr*float64(matches) + 0.5),
			TotalMatches: matches,
		}
	}
	return aggs
}

func TestBuildChainsEnumeratesPaths(t *testing.T) {
	aggs := chainAggs(map[int]float64{10: 0.5, 20: 0.5, 30: 0.5, 11: 0.5, 21: 0.5}, 1000)
	set := BuildChains(chainMeta(), aggs)
	require.NotNil(t, set)

	// Paths of length > 1: 10->20, 10->20->30, 11->21.
	require.Len(t, set.Chains, 3)
	lengths := map[int]int{}
	for _, c := range set.Chains {
		lengths[len(c.Items)]++
	}
	assert.Equal(t, 2, lengths[2])
	assert.Equal(t, 1, lengths[3])
}

func TestBuildChainsCostFallbackByTier(t *testing.T) {
	aggs := chainAggs(map[int]float64{10: 0.5, 20: 0.5, 30: 0.5}, 1000)
	set := BuildChains(chainMeta(), aggs)

	var full *Chain
	for i := range set.Chains {
		if len(set.Chains[i].Items) == 3 {
			full = &set.Chains[i]
		}
	}
	require.NotNil(t, full)
	// Item 30 has no cost; tier-3 fallback is 3200.
	assert.Equal(t, 800+1600+3200, full.TotalCost)
}

func TestBuildChainsAvgWinRateSkipsMissingData(t *testing.T) {
	// Only item 20 has stats; the chain average uses it alone.
	aggs := chainAggs(map[int]float64{20: 0.62}, 1000)
	set := BuildChains(chainMeta(), aggs)

	for _, c := range set.Chains {
		if len(c.Items) == 2 && c.Items[0].ID == 10 {
			assert.InDelta(t, 0.62, c.AvgWinRate, 1e-9)
		}
	}
}

func TestBuildChainsNeutralPriorWithoutData(t *testing.T) {
	set := BuildChains(chainMeta(), map[int]*ItemAggregate{})
	require.NotEmpty(t, set.Chains)
	for _, c := range set.Chains {
		assert.InDelta(t, neutralWinRatePrior, c.AvgWinRate, 1e-9)
		assert.Zero(t, c.AvgMatches)
	}
}

func TestBuildChainsCycleSafety(t *testing.T) {
	// Malformed metadata: 20 and 30 list each other as components.
	meta := map[int]ItemMeta{
		10: {ID: 10, Name: "Root", Type: "upgrade", Tier: 1, Slot: "weapon"},
		20: {ID: 20, Name: "Loop A", Type: "upgrade", Tier: 2, Slot: "weapon", Components: []int{10, 30}},
		30: {ID: 30, Name: "Loop B", Type: "upgrade", Tier: 3, Slot: "weapon", Components: []int{20}},
	}
	set := BuildChains(meta, map[int]*ItemAggregate{})

	for _, c := range set.Chains {
		seen := map[int]bool{}
		for _, it := range c.Items {
			assert.False(t, seen[it.ID], "chain revisits item %d", it.ID)
			seen[it.ID] = true
		}
	}
}

func TestSelectChainsCaps(t *testing.T) {
	var chains []Chain
	for i := 0; i < 5; i++ {
		chains = append(chains, Chain{
			Items:      []ChainItem{{ID: 100 + i, Slot: "weapon"}},
			AvgWinRate: 0.7 - float64(i)*0.01,
		})
	}
	for i := 0; i < 5; i++ {
		chains = append(chains, Chain{
			Items:      []ChainItem{{ID: 200 + i, Slot: "spirit"}},
			AvgWinRate: 0.6 - float64(i)*0.01,
		})
	}
	for i := 0; i < 5; i++ {
		chains = append(chains, Chain{
			Items:      []ChainItem{{ID: 300 + i, Slot: "vitality"}},
			AvgWinRate: 0.5 - float64(i)*0.01,
		})
	}

	selected := selectChains(chains)
	assert.LessOrEqual(t, len(selected), maxChains)
	perSlot := map[string]int{}
	for _, c := range selected {
		perSlot[c.Slot()]++
	}
	for slot, n := range perSlot {
		assert.LessOrEqual(t, n, maxChainsPerSlot, "slot %s over cap", slot)
	}
	assert.Len(t, selected, 6)
}

func TestBuildChainsStandalones(t *testing.T) {
	aggs := chainAggs(map[int]float64{10: 0.5, 20: 0.5, 12: 0.58}, 1000)
	set := BuildChains(chainMeta(), aggs)

	require.Len(t, set.Standalones, 1)
	s := set.Standalones[0]
	assert.Equal(t, 12, s.ID)
	assert.InDelta(t, 0.58, s.WinRate, 1e-9)
}

func TestBuildChainsStandaloneMatchFloor(t *testing.T) {
	aggs := chainAggs(map[int]float64{12: 0.9}, 49)
	set := BuildChains(chainMeta(), aggs)
	assert.Empty(t, set.Standalones)
}
