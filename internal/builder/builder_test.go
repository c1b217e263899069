package builder

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sxndmxn/deadlock-build-creator/internal/services/assets"
	"github.com/sxndmxn/deadlock-build-creator/internal/services/stats"
)

type fakeAssets struct {
	items    []assets.Item
	itemsErr error
}

func (f *fakeAssets) Items() ([]assets.Item, error) {
	return f.items, f.itemsErr
}

func (f *fakeAssets) HeroByName(name string) (*assets.Hero, error) {
	if name == "Haze" {
		return &assets.Hero{ID: 1, Name: "Haze", Playable: true}, nil
	}
	return nil, errors.New("hero not found")
}

type fakeStats struct {
	nwRows   []stats.ItemStatRow
	minRows  []stats.ItemStatRow
	pairRows []stats.ItemPairRow
	nwErr    error
	pairErr  error

	builds int
}

func (f *fakeStats) ItemStatsByNetWorth(heroID int, filter stats.RankFilter) ([]stats.ItemStatRow, error) {
	f.builds++
	return f.nwRows, f.nwErr
}

func (f *fakeStats) ItemStatsByGameTime(heroID int, filter stats.RankFilter) ([]stats.ItemStatRow, error) {
	return f.minRows, nil
}

func (f *fakeStats) ItemPairStats(heroID int, filter stats.RankFilter) ([]stats.ItemPairRow, error) {
	return f.pairRows, f.pairErr
}

func testSources() (*fakeAssets, *fakeStats) {
	assetsSource := &fakeAssets{
		items: []assets.Item{
			{ID: 10, Name: "Close Quarters", Type: "upgrade", Tier: 1, Slot: "weapon", Cost: 800},
			{ID: 20, Name: "Berserker", Type: "upgrade", Tier: 2, Slot: "weapon", Cost: 1600, ComponentItems: []int{10}},
			{ID: 30, Name: "Extra Spirit", Type: "upgrade", Tier: 1, Slot: "spirit", Cost: 800},
			{ID: 99, Name: "Active Reload", Type: "ability", Tier: 1, Slot: "weapon"},
		},
	}
	statsSource := &fakeStats{
		nwRows: []stats.ItemStatRow{
			{ItemID: 10, Bucket: 1000, Wins: 600, Matches: 1000, AvgBuyTimeS: 240},
			{ItemID: 10, Bucket: 3000, Wins: 550, Matches: 1000, AvgBuyTimeS: 240},
			{ItemID: 20, Bucket: 2000, Wins: 580, Matches: 1000},
			{ItemID: 30, Bucket: 1000, Wins: 25, Matches: 50},
		},
		minRows: []stats.ItemStatRow{
			{ItemID: 10, Bucket: 3, Wins: 60, Matches: 100},
			{ItemID: 10, Bucket: 12, Wins: 700, Matches: 1200},
			{ItemID: 20, Bucket: 12, Wins: 600, Matches: 1100},
		},
		pairRows: []stats.ItemPairRow{
			{ItemIDs: []int{10, 20}, Wins: 600, Matches: 1000},
		},
	}
	return assetsSource, statsSource
}

func TestBuildForHero(t *testing.T) {
	assetsSource, statsSource := testSources()
	b := NewBuilder(assetsSource, statsSource)

	analysis, err := b.BuildForHero("Haze", stats.DefaultRankFilter)
	require.NoError(t, err)

	assert.Equal(t, 1, analysis.HeroID)
	assert.Equal(t, "Haze", analysis.HeroName)

	tier1 := analysis.TierItems(1, SortByWinRate)
	require.Len(t, tier1, 2)
	assert.Equal(t, 10, tier1[0].ItemID)
	assert.Equal(t, 30, tier1[1].ItemID)

	tier2 := analysis.TierItems(2, SortByWinRate)
	require.Len(t, tier2, 1)
	assert.Equal(t, 20, tier2[0].ItemID)

	// Non-upgrade items never reach the analysis.
	for _, items := range analysis.Tiers {
		for _, item := range items {
			assert.NotEqual(t, 99, item.ItemID)
		}
	}
}

func TestBuildForHeroUnknownHero(t *testing.T) {
	assetsSource, statsSource := testSources()
	b := NewBuilder(assetsSource, statsSource)

	_, err := b.BuildForHero("Nobody", stats.DefaultRankFilter)
	assert.Error(t, err)
}

func TestBuildDerivedSignals(t *testing.T) {
	assetsSource, statsSource := testSources()
	b := NewBuilder(assetsSource, statsSource)

	analysis, err := b.Build(1, "Haze", stats.DefaultRankFilter)
	require.NoError(t, err)

	require.NotNil(t, analysis.Chains)
	require.Len(t, analysis.Chains.Chains, 1)
	chain := analysis.Chains.Chains[0]
	require.Len(t, chain.Items, 2)
	assert.Equal(t, "Close Quarters", chain.Items[0].Name)
	assert.Equal(t, "Berserker", chain.Items[1].Name)

	require.Len(t, analysis.Chains.Standalones, 1)
	assert.Equal(t, "Extra Spirit", analysis.Chains.Standalones[0].Name)

	// Both minute-12 rows land in the 10-15 window, clearing its floor.
	require.NotNil(t, analysis.Spike)
	assert.Equal(t, 10, analysis.Spike.StartMin)
	assert.Equal(t, 15, analysis.Spike.EndMin)

	require.Len(t, analysis.TopPairs, 1)
	assert.InDelta(t, 0.60, analysis.TopPairs[0].WinRate, 1e-9)

	tier1 := analysis.TierItems(1, SortByWinRate)
	item10 := tier1[0]
	require.NotNil(t, item10.Best)
	assert.Equal(t, 1000, item10.Best.Bucket)
	require.NotNil(t, item10.Window)
	assert.Equal(t, 1000, item10.Window.Start)

	require.Len(t, item10.Phases, 5)
	assert.Equal(t, 100, item10.Phases[0].Matches)
	assert.Equal(t, 1200, item10.Phases[2].Matches)
}

func TestBuildCaching(t *testing.T) {
	assetsSource, statsSource := testSources()
	b := NewBuilder(assetsSource, statsSource)

	first, err := b.Build(1, "Haze", stats.DefaultRankFilter)
	require.NoError(t, err)
	second, err := b.Build(1, "Haze", stats.DefaultRankFilter)
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, 1, statsSource.builds)

	// A different rank filter is a different cache entry.
	_, err = b.Build(1, "Haze", stats.RankFilter{MinBadge: 81, MaxBadge: 116})
	require.NoError(t, err)
	assert.Equal(t, 2, statsSource.builds)

	// Changing the filter drops everything.
	b.SetRankFilter()
	third, err := b.Build(1, "Haze", stats.DefaultRankFilter)
	require.NoError(t, err)
	assert.NotSame(t, first, third)
	assert.Equal(t, 3, statsSource.builds)
}

func TestBuildPairStatsOptional(t *testing.T) {
	assetsSource, statsSource := testSources()
	statsSource.pairErr = errors.New("pair endpoint down")
	b := NewBuilder(assetsSource, statsSource)

	analysis, err := b.Build(1, "Haze", stats.DefaultRankFilter)
	require.NoError(t, err)
	assert.Empty(t, analysis.TopPairs)
}

func TestBuildRequiredFetchFailure(t *testing.T) {
	assetsSource, statsSource := testSources()
	statsSource.nwErr = errors.New("analytics down")
	b := NewBuilder(assetsSource, statsSource)

	_, err := b.Build(1, "Haze", stats.DefaultRankFilter)
	assert.Error(t, err)
}

func TestTierItemsSortModes(t *testing.T) {
	assetsSource, statsSource := testSources()
	b := NewBuilder(assetsSource, statsSource)

	analysis, err := b.Build(1, "Haze", stats.DefaultRankFilter)
	require.NoError(t, err)

	byPopularity := analysis.TierItems(1, SortByPopularity)
	require.Len(t, byPopularity, 2)
	assert.Equal(t, 10, byPopularity[0].ItemID) // 2000 matches vs 50

	byBuyOrder := analysis.TierItems(1, SortByBuyOrder)
	require.Len(t, byBuyOrder, 2)
	// Item 30 has no buy time recorded, so it sorts last.
	assert.Equal(t, 10, byBuyOrder[0].ItemID)
	assert.Equal(t, 30, byBuyOrder[1].ItemID)

	// Sorting returns a copy; the win-rate order is untouched.
	byWinRate := analysis.TierItems(1, SortByWinRate)
	assert.Equal(t, 10, byWinRate[0].ItemID)
}
