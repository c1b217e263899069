package assets

// Hero is a playable hero from the assets API.
type Hero struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Playable bool   `json:"playable"`
	Image    string `json:"image"`
}

// Item is an item definition from the assets API. The engine only consumes
// entries with Type "upgrade" and a tier of 1-4; everything else (abilities,
// weapon mods) is carried through for display lookups only.
type Item struct {
	ID             int    `json:"id"`
	Name           string `json:"name"`
	Type           string `json:"type"`
	Tier           int    `json:"item_tier"`
	Slot           string `json:"item_slot_type"`
	Cost           int    `json:"cost"`
	ComponentItems []int  `json:"component_items"`
	Image          string `json:"image"`
}

// Rank is one rung of the ranked ladder. Badge ordinals are tier*10+subtier,
// spanning 0 (Obscurus) to 116 (Eternus 6).
type Rank struct {
	Tier int    `json:"tier"`
	Name string `json:"name"`
}
