// Package builder turns raw analytics rows into a full per-hero build
// analysis: tiered item rankings, purchase timing, upgrade chains,
// powerspikes and synergies.
package builder

import (
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/sxndmxn/deadlock-build-creator/internal/engine"
	"github.com/sxndmxn/deadlock-build-creator/internal/services/assets"
	"github.com/sxndmxn/deadlock-build-creator/internal/services/stats"
)

// SortMode selects how items inside a tier are ordered.
type SortMode int

const (
	SortByWinRate SortMode = iota
	SortByPopularity
	SortByBuyOrder
)

// AssetsSource is the slice of the assets client the builder needs.
type AssetsSource interface {
	Items() ([]assets.Item, error)
	HeroByName(name string) (*assets.Hero, error)
}

// StatsSource is the slice of the analytics client the builder needs.
type StatsSource interface {
	ItemStatsByNetWorth(heroID int, filter stats.RankFilter) ([]stats.ItemStatRow, error)
	ItemStatsByGameTime(heroID int, filter stats.RankFilter) ([]stats.ItemStatRow, error)
	ItemPairStats(heroID int, filter stats.RankFilter) ([]stats.ItemPairRow, error)
}

// ItemAnalysis is the full per-item view: aggregate stats plus the derived
// timing signals.
type ItemAnalysis struct {
	*engine.ItemAggregate
	Best      *engine.BestBucket
	Window    *engine.PurchaseWindow
	Phases    []engine.PhaseStats
	BestPhase *engine.PhaseStats
	Synergies []engine.SynergyEntry
}

// Analysis is the complete build analysis for one hero under one rank
// filter.
type Analysis struct {
	HeroID   int
	HeroName string
	Filter   stats.RankFilter

	Tiers     map[int][]*ItemAnalysis
	Chains    *engine.ChainSet
	Spike     *engine.SpikeWindow
	PhasePlan map[engine.SoulBracket][]engine.SpikeScoredItem
	TopPairs  []engine.SynergyPair

	GeneratedAt time.Time
}

// TierItems returns the items of one tier ordered by the given mode. The
// stored order is win rate; other modes sort a copy.
func (a *Analysis) TierItems(tier int, mode SortMode) []*ItemAnalysis {
	items := a.Tiers[tier]
	if mode == SortByWinRate || len(items) < 2 {
		return items
	}

	sorted := make([]*ItemAnalysis, len(items))
	copy(sorted, items)
	switch mode {
	case SortByPopularity:
		sort.SliceStable(sorted, func(i, j int) bool {
			if sorted[i].TotalMatches != sorted[j].TotalMatches {
				return sorted[i].TotalMatches > sorted[j].TotalMatches
			}
			return sorted[i].ItemID < sorted[j].ItemID
		})
	case SortByBuyOrder:
		sort.SliceStable(sorted, func(i, j int) bool {
			bi, bj := sorted[i].AvgBuyTimeS, sorted[j].AvgBuyTimeS
			if bi <= 0 {
				return false
			}
			if bj <= 0 {
				return true
			}
			return bi < bj
		})
	}
	return sorted
}

// Builder produces and caches per-hero analyses.
type Builder struct {
	assets AssetsSource
	stats  StatsSource
	cache  *analysisCache
}

// NewBuilder creates a new Builder.
func NewBuilder(assetsSource AssetsSource, statsSource StatsSource) *Builder {
	return &Builder{
		assets: assetsSource,
		stats:  statsSource,
		cache:  newAnalysisCache(),
	}
}

// BuildForHero resolves a hero by name and builds its analysis.
func (b *Builder) BuildForHero(heroName string, filter stats.RankFilter) (*Analysis, error) {
	hero, err := b.assets.HeroByName(heroName)
	if err != nil {
		return nil, err
	}
	return b.Build(hero.ID, hero.Name, filter)
}

// Build returns the analysis for a hero, from cache when available.
func (b *Builder) Build(heroID int, heroName string, filter stats.RankFilter) (*Analysis, error) {
	key := cacheKey(heroID, filter)
	if cached := b.cache.get(key); cached != nil {
		return cached, nil
	}

	analysis, err := b.build(heroID, heroName, filter)
	if err != nil {
		return nil, err
	}

	b.cache.put(key, analysis)
	return analysis, nil
}

// SetRankFilter drops every cached analysis. Rank changes invalidate all
// heroes at once, so a wholesale clear beats tracking keys.
func (b *Builder) SetRankFilter() {
	b.cache.clear()
}

func (b *Builder) build(heroID int, heroName string, filter stats.RankFilter) (*Analysis, error) {
	var (
		wg       sync.WaitGroup
		items    []assets.Item
		nwRows   []stats.ItemStatRow
		minRows  []stats.ItemStatRow
		pairRows []stats.ItemPairRow
		errs     [4]error
	)

	wg.Add(4)
	go func() {
		defer wg.Done()
		items, errs[0] = b.assets.Items()
	}()
	go func() {
		defer wg.Done()
		nwRows, errs[1] = b.stats.ItemStatsByNetWorth(heroID, filter)
	}()
	go func() {
		defer wg.Done()
		minRows, errs[2] = b.stats.ItemStatsByGameTime(heroID, filter)
	}()
	go func() {
		defer wg.Done()
		pairRows, errs[3] = b.stats.ItemPairStats(heroID, filter)
	}()
	wg.Wait()

	for _, err := range errs[:3] {
		if err != nil {
			return nil, fmt.Errorf("failed to fetch build data: %w", err)
		}
	}
	// Pair stats are an enrichment; a build without synergies still works.
	if errs[3] != nil {
		log.Printf("Pair stats unavailable for hero %d: %v", heroID, errs[3])
		pairRows = nil
	}

	meta := make(map[int]engine.ItemMeta, len(items))
	for _, it := range items {
		meta[it.ID] = engine.ItemMeta{
			ID:         it.ID,
			Name:       it.Name,
			Type:       it.Type,
			Tier:       it.Tier,
			Slot:       it.Slot,
			Cost:       it.Cost,
			Components: it.ComponentItems,
			Image:      it.Image,
		}
	}

	aggs := engine.Aggregate(statRows(nwRows), statRows(minRows), meta)
	if len(aggs) == 0 {
		return nil, fmt.Errorf("no item data for hero %d", heroID)
	}

	enginePairs := pairEngineRows(pairRows)
	synergy := engine.BuildSynergyIndex(enginePairs)
	spike := engine.DetectPowerspike(engine.HeroTimeline(aggs))

	analysis := &Analysis{
		HeroID:      heroID,
		HeroName:    heroName,
		Filter:      filter,
		Tiers:       make(map[int][]*ItemAnalysis, 4),
		Chains:      engine.BuildChains(meta, aggs),
		Spike:       spike,
		PhasePlan:   engine.BuildPhasePlan(aggs, spike),
		TopPairs:    engine.TopPairs(enginePairs),
		GeneratedAt: time.Now(),
	}

	for tier, tierAggs := range engine.GroupByTier(aggs) {
		views := make([]*ItemAnalysis, 0, len(tierAggs))
		for _, agg := range tierAggs {
			phases := engine.AggregatePhases(agg.ByMinute)
			views = append(views, &ItemAnalysis{
				ItemAggregate: agg,
				Best:          engine.SelectBestBucket(agg.ByNetWorth, agg.TotalMatches),
				Window:        engine.InferPurchaseWindow(agg.ByNetWorth),
				Phases:        phases,
				BestPhase:     engine.BestPhase(phases),
				Synergies:     synergy.TopFor(agg.ItemID),
			})
		}
		analysis.Tiers[tier] = views
	}

	return analysis, nil
}

func statRows(rows []stats.ItemStatRow) []engine.StatRow {
	out := make([]engine.StatRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, engine.StatRow{
			ItemID:       r.ItemID,
			Bucket:       r.Bucket,
			Wins:         r.Wins,
			Matches:      r.Matches,
			AvgBuyTimeS:  r.AvgBuyTimeS,
			AvgSellTimeS: r.AvgSellTimeS,
		})
	}
	return out
}

func pairEngineRows(rows []stats.ItemPairRow) []engine.PairRow {
	out := make([]engine.PairRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, engine.PairRow{
			ItemIDs: r.ItemIDs,
			Wins:    r.Wins,
			Matches: r.Matches,
		})
	}
	return out
}
