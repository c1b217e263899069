// Package data loads the bundled item dump used as a fallback when the
// assets API is unreachable.
package data

import (
	"encoding/json"
	"fmt"
	"os"
)

// Item mirrors the assets API item shape in the bundled dump.
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

// LoadItems reads the item dump from disk.
func LoadItems(path string) ([]Item, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read item dump: %w", err)
	}

	var items []Item
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("failed to parse item dump: %w", err)
	}
	return items, nil
}
