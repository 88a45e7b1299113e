package enums

import (
	"fmt"
	"strings"
)

// SortKey selects the ordering applied to a filtered catalog view.
type SortKey string

const (
	SortKeyNone      SortKey = ""
	SortKeyPriceAsc  SortKey = "price-asc"
	SortKeyPriceDesc SortKey = "price-desc"
	SortKeyName      SortKey = "name"
	SortKeyNew       SortKey = "new"
)

var validSortKeys = []SortKey{
	SortKeyPriceAsc,
	SortKeyPriceDesc,
	SortKeyName,
	SortKeyNew,
}

// String implements fmt.Stringer.
func (s SortKey) String() string {
	return string(s)
}

// IsValid reports whether the value is a known SortKey. The empty key is valid and keeps catalog order.
func (s SortKey) IsValid() bool {
	if s == SortKeyNone {
		return true
	}
	for _, candidate := range validSortKeys {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseSortKey converts raw input into a SortKey.
func ParseSortKey(value string) (SortKey, error) {
	key := SortKey(strings.ToLower(strings.TrimSpace(value)))
	if key.IsValid() {
		return key, nil
	}
	return "", fmt.Errorf("invalid sort key %q", value)
}
