package product

import (
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/angelmondragon/glowshop-backend/pkg/enums"
)

// Selection is the shopper's current filter state. The zero value selects everything.
type Selection struct {
	Category    string
	Function    string
	SkinType    string
	Ingredients []string
	Sort        enums.SortKey
}

// IsEmpty reports whether the selection neither narrows nor reorders.
func (s Selection) IsEmpty() bool {
	return s.Category == "" && s.Function == "" && s.SkinType == "" && len(s.Ingredients) == 0 && s.Sort == enums.SortKeyNone
}

// Apply returns the products matching every active criterion, optionally reordered.
// The input slice is never modified.
func Apply(products []Product, sel Selection) []Product {
	out := make([]Product, 0, len(products))
	for _, p := range products {
		if matches(p, sel) {
			out = append(out, p)
		}
	}
	sortProducts(out, sel.Sort)
	return out
}

func matches(p Product, sel Selection) bool {
	if sel.Category != "" && p.Category != sel.Category {
		return false
	}
	if sel.Function != "" && !p.HasFunction(sel.Function) {
		return false
	}
	if sel.SkinType != "" && !p.HasSkinType(sel.SkinType) {
		return false
	}
	if len(sel.Ingredients) > 0 && !matchesAnyIngredient(p.Ingredients, sel.Ingredients) {
		return false
	}
	return true
}

// matchesAnyIngredient accepts a product when one of its ingredients contains, or is
// contained in, one of the selected names. Comparison is case-sensitive.
func matchesAnyIngredient(productIngredients, selected []string) bool {
	for _, want := range selected {
		for _, have := range productIngredients {
			if strings.Contains(have, want) || strings.Contains(want, have) {
				return true
			}
		}
	}
	return false
}

func sortProducts(products []Product, key enums.SortKey) {
	switch key {
	case enums.SortKeyPriceAsc:
		slices.SortStableFunc(products, func(a, b Product) int {
			return a.Price.Cmp(b.Price)
		})
	case enums.SortKeyPriceDesc:
		slices.SortStableFunc(products, func(a, b Product) int {
			return b.Price.Cmp(a.Price)
		})
	case enums.SortKeyName:
		// Collator buffers are not safe for concurrent use.
		col := collate.New(language.Spanish)
		slices.SortStableFunc(products, func(a, b Product) int {
			return col.CompareString(a.Name, b.Name)
		})
	case enums.SortKeyNew:
		slices.SortStableFunc(products, func(a, b Product) int {
			switch {
			case a.IsNew == b.IsNew:
				return 0
			case a.IsNew:
				return -1
			default:
				return 1
			}
		})
	}
}
