package engine

import "sort"

// Display policy for synergies: a pair is only surfaced once it clears both
// the sample floor and the break-even win rate.
const (
	synergyShownMinMatches = 500
	synergyShownMinWinRate = 0.50

	maxCompactSynergies = 2
	maxHeroWidePairs    = 50
)

// SynergyEntry is one direction of a co-purchase pairing.
type SynergyEntry struct {
	PairedItemID int
	WinRate      float64
	Matches      int
}

// SynergyPair is an undirected pair for the hero-wide panel.
type SynergyPair struct {
	ItemA   int
	ItemB   int
	WinRate float64
	Matches int
}

// SynergyIndex maps each item to its co-purchase partners, sorted by win
// rate descending. The index is symmetric: every record inserts both
// directions with identical win rate and match count.
type SynergyIndex map[int][]SynergyEntry

// BuildSynergyIndex builds the bidirectional pair index from raw
// co-purchase rows. Rows with zero matches or without exactly two item IDs
// are discarded.
func BuildSynergyIndex(rows []PairRow) SynergyIndex {
	idx := make(SynergyIndex)
	for _, row := range rows {
		if row.Matches <= 0 || len(row.ItemIDs) != 2 {
			continue
		}
		a, b := row.ItemIDs[0], row.ItemIDs[1]
		wr := float64(row.Wins) / float64(row.Matches)
		idx[a] = append(idx[a], SynergyEntry{PairedItemID: b, WinRate: wr, Matches: row.Matches})
		idx[b] = append(idx[b], SynergyEntry{PairedItemID: a, WinRate: wr, Matches: row.Matches})
	}
	for id := range idx {
		entries := idx[id]
		sort.SliceStable(entries, func(i, j int) bool {
			if entries[i].WinRate != entries[j].WinRate {
				return entries[i].WinRate > entries[j].WinRate
			}
			return entries[i].PairedItemID < entries[j].PairedItemID
		})
	}
	return idx
}

// TopFor returns the item's best displayed synergies, at most
// maxCompactSynergies, after applying the display filter.
func (idx SynergyIndex) TopFor(itemID int) []SynergyEntry {
	var shown []SynergyEntry
	for _, e := range idx[itemID] {
		if e.Matches < synergyShownMinMatches || e.WinRate < synergyShownMinWinRate {
			continue
		}
		shown = append(shown, e)
		if len(shown) >= maxCompactSynergies {
			break
		}
	}
	return shown
}

// TopPairs ranks the hero-wide undirected pairs for the synergy panel:
// match floor applied, sorted by win rate descending, truncated to
// maxHeroWidePairs.
func TopPairs(rows []PairRow) []SynergyPair {
	var pairs []SynergyPair
	for _, row := range rows {
		if row.Matches < synergyShownMinMatches || len(row.ItemIDs) != 2 {
			continue
		}
		a, b := row.ItemIDs[0], row.ItemIDs[1]
		if a > b {
			a, b = b, a
		}
		pairs = append(pairs, SynergyPair{
			ItemA:   a,
			ItemB:   b,
			WinRate: float64(row.Wins) / float64(row.Matches),
			Matches: row.Matches,
		})
	}
	sort.SliceStable(pairs, func(i, j int) bool {
		if pairs[i].WinRate != pairs[j].WinRate {
			return pairs[i].WinRate > pairs[j].WinRate
		}
		return pairs[i].Matches > pairs[j].Matches
	})
	if len(pairs) > maxHeroWidePairs {
		pairs = pairs[:maxHeroWidePairs]
	}
	return pairs
}
