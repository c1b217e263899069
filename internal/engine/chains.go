package engine

import "sort"

// Chain selection policy: up to maxChains total with at most
// maxChainsPerSlot from any one slot category, so the recommended set keeps
// cross-category variety instead of being a straight win-rate top list.
const (
	maxChains        = 6
	maxChainsPerSlot = 2

	maxStandalones      = 4
	standaloneMinMatch  = 50
	neutralWinRatePrior = 0.5
)

// tierCostFallback supplies an item cost by tier when the assets metadata
// carries none.
var tierCostFallback = [4]int{800, 1600, 3200, 6400}

// ChainItem is one link of an upgrade chain.
type ChainItem struct {
	ID   int
	Name string
	Tier int
	Cost int
	Slot string
}

// Chain is an ordered upgrade path from a tier-1 root to a terminal item.
type Chain struct {
	Items      []ChainItem
	TotalCost  int
	AvgWinRate float64
	AvgMatches float64
}

// Slot returns the chain's slot category, taken from its terminal item.
func (c *Chain) Slot() string {
	if len(c.Items) == 0 {
		return ""
	}
	return c.Items[len(c.Items)-1].Slot
}

// StandaloneItem is a tier-1 item with no upgrade relationships, recommended
// on its own merits.
type StandaloneItem struct {
	ID      int
	Name    string
	Slot    string
	Cost    int
	WinRate float64
	Matches int
}

// ChainSet is the output of chain building: the selected chains plus the
// standalone recommendations.
type ChainSet struct {
	Chains      []Chain
	Standalones []StandaloneItem
}

// BuildChains reconstructs the upgrade graph from component metadata, walks
// every path from each tier-1 root, and selects the recommended chains and
// standalone items. Component references in the source metadata are not
// trusted to be acyclic: any identifier revisited within a path terminates
// that branch.
func BuildChains(meta map[int]ItemMeta, aggs map[int]*ItemAggregate) *ChainSet {
	// Reverse adjacency: component id -> items built from it.
	upgrades := make(map[int][]int)
	hasComponents := make(map[int]bool)
	var roots []int

	ids := make([]int, 0, len(meta))
	for id := range meta {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	for _, id := range ids {
		m := meta[id]
		if m.Type != "upgrade" || m.Tier < 1 || m.Tier > 4 {
			continue
		}
		for _, comp := range m.Components {
			upgrades[comp] = append(upgrades[comp], id)
			hasComponents[id] = true
		}
		if m.Tier == 1 {
			roots = append(roots, id)
		}
	}
	for comp := range upgrades {
		sort.Ints(upgrades[comp])
	}

	// Depth-first path enumeration with an explicit stack. Every node
	// reached along a path longer than one item yields a chain.
	var chains []Chain
	for _, root := range roots {
		if len(upgrades[root]) == 0 {
			continue
		}
		stack := [][]int{{root}}
		for len(stack) > 0 {
			path := stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			last := path[len(path)-1]
			for _, next := range upgrades[last] {
				if containsID(path, next) {
					continue // malformed cyclic metadata
				}
				grown := make([]int, len(path), len(path)+1)
				copy(grown, path)
				grown = append(grown, next)
				chains = append(chains, buildChain(grown, meta, aggs))
				stack = append(stack, grown)
			}
		}
	}

	selected := selectChains(chains)

	inChain := make(map[int]bool)
	for _, c := range selected {
		for _, it := range c.Items {
			inChain[it.ID] = true
		}
	}

	var standalones []StandaloneItem
	for _, id := range roots {
		if len(upgrades[id]) > 0 || hasComponents[id] || inChain[id] {
			continue
		}
		agg, ok := aggs[id]
		if !ok || agg.TotalMatches < standaloneMinMatch {
			continue
		}
		m := meta[id]
		standalones = append(standalones, StandaloneItem{
			ID:      id,
			Name:    m.Name,
			Slot:    m.Slot,
			Cost:    itemCost(m),
			WinRate: agg.WinRate(),
			Matches: agg.TotalMatches,
		})
	}
	sort.Slice(standalones, func(i, j int) bool {
		if standalones[i].WinRate != standalones[j].WinRate {
			return standalones[i].WinRate > standalones[j].WinRate
		}
		return standalones[i].ID < standalones[j].ID
	})
	if len(standalones) > maxStandalones {
		standalones = standalones[:maxStandalones]
	}

	return &ChainSet{Chains: selected, Standalones: standalones}
}

func buildChain(path []int, meta map[int]ItemMeta, aggs map[int]*ItemAggregate) Chain {
	chain := Chain{Items: make([]ChainItem, 0, len(path))}
	var wrSum, matchSum float64
	var wrN, matchN int

	for _, id := range path {
		m := meta[id]
		cost := itemCost(m)
		chain.Items = append(chain.Items, ChainItem{
			ID:   id,
			Name: m.Name,
			Tier: m.Tier,
			Cost: cost,
			Slot: m.Slot,
		})
		chain.TotalCost += cost

		if agg, ok := aggs[id]; ok && agg.TotalMatches > 0 {
			wrSum += agg.WinRate()
			wrN++
			matchSum += float64(agg.TotalMatches)
			matchN++
		}
	}

	if wrN > 0 {
		chain.AvgWinRate = wrSum / float64(wrN)
	} else {
		chain.AvgWinRate = neutralWinRatePrior
	}
	if matchN > 0 {
		chain.AvgMatches = matchSum / float64(matchN)
	}
	return chain
}

// selectChains greedily takes the highest-win-rate chains while enforcing
// the per-slot cap and the overall limit.
func selectChains(chains []Chain) []Chain {
	sort.SliceStable(chains, func(i, j int) bool {
		if chains[i].AvgWinRate != chains[j].AvgWinRate {
			return chains[i].AvgWinRate > chains[j].AvgWinRate
		}
		return chains[i].TotalCost < chains[j].TotalCost
	})

	var selected []Chain
	perSlot := make(map[string]int)
	for _, c := range chains {
		if len(selected) >= maxChains {
			break
		}
		if perSlot[c.Slot()] >= maxChainsPerSlot {
			continue
		}
		selected = append(selected, c)
		perSlot[c.Slot()]++
	}
	return selected
}

func itemCost(m ItemMeta) int {
	if m.Cost > 0 {
		return m.Cost
	}
	if m.Tier >= 1 && m.Tier <= 4 {
		return tierCostFallback[m.Tier-1]
	}
	return 0
}

func containsID(path []int, id int) bool {
	for _, p := range path {
		if p == id {
			return true
		}
	}
	return false
}
