package cart

import (
	"encoding/json"
	"fmt"
)

// EncodeSnapshot serialises the full line list as a JSON array of {product, quantity}.
func EncodeSnapshot(items []Item) ([]byte, error) {
	if items == nil {
		items = []Item{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("encode cart snapshot: %w", err)
	}
	return raw, nil
}

// DecodeSnapshot restores lines from raw. It reports false for anything that is not a
// well-formed snapshot, and the caller starts from an empty cart.
func DecodeSnapshot(raw []byte) ([]Item, bool) {
	if len(raw) == 0 {
		return nil, false
	}
	var items []Item
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, false
	}
	if items == nil {
		// JSON null
		return nil, false
	}
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		if item.Product.ID == "" || item.Quantity < 1 {
			return nil, false
		}
		if _, dup := seen[item.Product.ID]; dup {
			return nil, false
		}
		seen[item.Product.ID] = struct{}{}
	}
	return items, true
}
