package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectBestBucketAdmissibility(t *testing.T) {
	// 5% of 2100 is 105, below the absolute floor of 1000, so only the
	// two 1000-match buckets qualify.
	buckets := map[int]BucketRecord{
		0:    {WinRate: 0.45, Wins: 45, Matches: 100},
		1000: {WinRate: 0.60, Wins: 600, Matches: 1000},
		5000: {WinRate: 0.52, Wins: 520, Matches: 1000},
	}

	best := SelectBestBucket(buckets, 2100)
	require.NotNil(t, best)
	assert.Equal(t, 1000, best.Bucket)
	assert.InDelta(t, 0.60, best.WinRate, 1e-9)
}

func TestSelectBestBucketRelativeFloor(t *testing.T) {
	// With a huge total, the 5% share dominates the absolute floor:
	// 5% of 100000 = 5000, so the 2000-match bucket is inadmissible.
	buckets := map[int]BucketRecord{
		1000: {WinRate: 0.70, Matches: 2000},
		5000: {WinRate: 0.55, Matches: 80000},
	}

	best := SelectBestBucket(buckets, 100000)
	require.NotNil(t, best)
	assert.Equal(t, 5000, best.Bucket)
}

func TestSelectBestBucketNilWhenNothingAdmissible(t *testing.T) {
	buckets := map[int]BucketRecord{
		0:    {WinRate: 0.9, Matches: 50},
		1000: {WinRate: 0.8, Matches: 200},
	}
	assert.Nil(t, SelectBestBucket(buckets, 500))
}

func TestSelectBestBucketTieGoesToLowerBucket(t *testing.T) {
	buckets := map[int]BucketRecord{
		3000: {WinRate: 0.55, Matches: 1500},
		1000: {WinRate: 0.55, Matches: 1500},
	}
	best := SelectBestBucket(buckets, 3000)
	require.NotNil(t, best)
	assert.Equal(t, 1000, best.Bucket)
}

func TestSelectBestBucketPlateauRange(t *testing.T) {
	buckets := map[int]BucketRecord{
		1000: {WinRate: 0.595, Matches: 2000},
		2000: {WinRate: 0.60, Matches: 2000},
		3000: {WinRate: 0.592, Matches: 2000},
		4000: {WinRate: 0.50, Matches: 2000},
	}
	best := SelectBestBucket(buckets, 8000)
	require.NotNil(t, best)
	assert.Equal(t, 2000, best.Bucket)
	// Everything within 0.01 of the peak joins the plateau.
	assert.Equal(t, 1000, best.RangeStart)
	assert.Equal(t, 3000, best.RangeEnd)
}

func TestSelectBestBucketPlateauContainsBest(t *testing.T) {
	buckets := map[int]BucketRecord{
		500:  {WinRate: 0.48, Matches: 1200},
		1500: {WinRate: 0.61, Matches: 1200},
	}
	best := SelectBestBucket(buckets, 2400)
	require.NotNil(t, best)
	assert.LessOrEqual(t, best.RangeStart, best.Bucket)
	assert.GreaterOrEqual(t, best.RangeEnd, best.Bucket)
}
