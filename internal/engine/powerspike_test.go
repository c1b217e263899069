package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func minuteAgg(id int, byMinute map[int]BucketRecord, totalMatches int) *ItemAggregate {
	return &ItemAggregate{
		ItemID:       id,
		TotalMatches: totalMatches,
		ByMinute:     byMinute,
		ByNetWorth:   map[int]BucketRecord{},
	}
}

func TestHeroTimelineSumsAcrossItems(t *testing.T) {
	aggs := map[int]*ItemAggregate{
		1: minuteAgg(1, map[int]BucketRecord{5: {Wins: 10, Matches: 20}}, 20),
		2: minuteAgg(2, map[int]BucketRecord{5: {Wins: 5, Matches: 30}}, 30),
	}
	timeline := HeroTimeline(aggs)

	require.Contains(t, timeline, 5)
	assert.Equal(t, 15, timeline[5].Wins)
	assert.Equal(t, 50, timeline[5].Matches)
	assert.InDelta(t, 0.3, timeline[5].WinRate, 1e-9)
}

func TestDetectPowerspikePicksBestQualifyingWindow(t *testing.T) {
	timeline := map[int]BucketRecord{
		5:  {Wins: 700, Matches: 1200},  // 0-10: 0.583
		12: {Wins: 660, Matches: 1100},  // 10-15: 0.60
		22: {Wins: 300, Matches: 900},   // 20-25: under floor
		35: {Wins: 1000, Matches: 2000}, // 30-60: 0.50
	}
	spike := DetectPowerspike(timeline)
	require.NotNil(t, spike)
	assert.Equal(t, 10, spike.StartMin)
	assert.Equal(t, 15, spike.EndMin)
	assert.InDelta(t, 0.60, spike.WinRate, 1e-9)
}

func TestDetectPowerspikeNilWithoutData(t *testing.T) {
	assert.Nil(t, DetectPowerspike(map[int]BucketRecord{
		5: {Wins: 100, Matches: 400},
	}))
}

func TestScoreInWindowFloors(t *testing.T) {
	spike := &SpikeWindow{StartMin: 10, EndMin: 15}

	// Under the overall floor.
	agg := minuteAgg(1, map[int]BucketRecord{12: {Wins: 400, Matches: 600}}, 99)
	_, _, ok := ScoreInWindow(agg, spike)
	assert.False(t, ok)

	// Under the in-window floor despite plenty overall.
	agg = minuteAgg(1, map[int]BucketRecord{12: {Wins: 200, Matches: 499}}, 5000)
	_, _, ok = ScoreInWindow(agg, spike)
	assert.False(t, ok)

	// Qualifies; minutes outside the window are excluded.
	agg = minuteAgg(1, map[int]BucketRecord{
		12: {Wins: 300, Matches: 500},
		20: {Wins: 0, Matches: 400},
	}, 5000)
	wr, matches, ok := ScoreInWindow(agg, spike)
	require.True(t, ok)
	assert.Equal(t, 500, matches)
	assert.InDelta(t, 0.6, wr, 1e-9)
}

func TestClassifySoulBracket(t *testing.T) {
	cases := []struct {
		name    string
		buckets map[int]BucketRecord
		want    SoulBracket
		ok      bool
	}{
		{"early", map[int]BucketRecord{0: {Matches: 500}, 10000: {Matches: 200}}, BracketEarly, true},
		{"mid", map[int]BucketRecord{5000: {Matches: 900}, 15000: {Matches: 100}}, BracketMid, true},
		{"late", map[int]BucketRecord{15000: {Matches: 300}}, BracketLate, true},
		{"very late", map[int]BucketRecord{25000: {Matches: 300}}, BracketVeryLate, true},
		{"too thin", map[int]BucketRecord{5000: {Matches: 99}}, 0, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			agg := &ItemAggregate{ByNetWorth: tc.buckets}
			got, ok := ClassifySoulBracket(agg)
			assert.Equal(t, tc.ok, ok)
			if ok {
				assert.Equal(t, tc.want, got)
			}
		})
	}
}

func TestBuildPhasePlanTruncatesPerBracket(t *testing.T) {
	spike := &SpikeWindow{StartMin: 10, EndMin: 15}
	aggs := make(map[int]*ItemAggregate)
	for i := 0; i < 6; i++ {
		aggs[i+1] = &ItemAggregate{
			ItemID:       i + 1,
			TotalMatches: 2000,
			ByMinute:     map[int]BucketRecord{12: {Wins: 300 + i*10, Matches: 600}},
			ByNetWorth:   map[int]BucketRecord{3000: {Matches: 800}},
		}
	}

	plan := BuildPhasePlan(aggs, spike)
	require.NotNil(t, plan)
	items := plan[BracketEarly]
	require.Len(t, items, maxItemsPerBracket)
	// Sorted by spike win rate descending: item 6 first.
	assert.Equal(t, 6, items[0].ItemID)
	assert.True(t, items[0].WinRate >= items[len(items)-1].WinRate)
}

func TestBuildPhasePlanNilWithoutSpike(t *testing.T) {
	assert.Nil(t, BuildPhasePlan(map[int]*ItemAggregate{}, nil))
}
