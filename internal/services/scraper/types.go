package scraper

// HeroMeta is one row of the scraped hero meta table.
type HeroMeta struct {
	HeroName string `json:"hero_name"`
	WinRate  string `json:"win_rate"`  // e.g., "54.5%"
	PickRate string `json:"pick_rate"` // e.g., "12.3%"
}

// MetaSource defines the interface for fetching hero meta data.
type MetaSource interface {
	GetHeroMeta() ([]*HeroMeta, error)
}
