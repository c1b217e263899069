package stats

// ItemStatRow is one bucketed win/match row from the analytics API.
type ItemStatRow struct {
	ItemID       int     `json:"item_id"`
	Bucket       int     `json:"bucket"`
	Wins         int     `json:"wins"`
	Losses       int     `json:"losses"`
	Matches      int     `json:"matches"`
	AvgBuyTimeS  float64 `json:"avg_buy_time_s"`
	AvgSellTimeS float64 `json:"avg_sell_time_s"`
}

// ItemPairRow is one co-occurrence row from the pair stats endpoint.
type ItemPairRow struct {
	ItemIDs []int `json:"item_ids"`
	Wins    int   `json:"wins"`
	Matches int   `json:"matches"`
}

// RankFilter restricts queries to a badge range. Badge ordinals run from 0
// (Obscurus 1) to 116 (Eternus 6), encoded as tier*10 + subtier.
type RankFilter struct {
	MinBadge int
	MaxBadge int
}

// DefaultRankFilter covers the whole ladder.
var DefaultRankFilter = RankFilter{MinBadge: 0, MaxBadge: 116}

// IsDefault reports whether the filter imposes no real restriction.
func (f RankFilter) IsDefault() bool {
	return f.MinBadge <= 0 && f.MaxBadge >= 116
}
