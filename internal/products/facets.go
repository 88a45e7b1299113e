package product

import "github.com/shopspring/decimal"

// Categories returns the distinct categories in first-seen order.
func Categories(products []Product) []string {
	return distinct(products, func(p Product) []string { return []string{p.Category} })
}

// Functions returns the distinct function tags in first-seen order.
func Functions(products []Product) []string {
	return distinct(products, func(p Product) []string { return p.Function })
}

// SkinTypes returns the distinct skin type tags in first-seen order.
func SkinTypes(products []Product) []string {
	return distinct(products, func(p Product) []string { return p.SkinType })
}

func distinct(products []Product, values func(Product) []string) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, p := range products {
		for _, v := range values(p) {
			if _, ok := seen[v]; ok {
				continue
			}
			seen[v] = struct{}{}
			out = append(out, v)
		}
	}
	return out
}

// PriceRange bounds the prices present in a product set.
type PriceRange struct {
	Min decimal.Decimal `json:"min"`
	Max decimal.Decimal `json:"max"`
}

// FacetSummary feeds the filter controls of the catalog page.
type FacetSummary struct {
	Categories []string   `json:"categories"`
	Functions  []string   `json:"functions"`
	SkinTypes  []string   `json:"skin_types"`
	Price      PriceRange `json:"price"`
	InStock    int        `json:"in_stock"`
	OutOfStock int        `json:"out_of_stock"`
	Total      int        `json:"total"`
}

func Facets(products []Product) FacetSummary {
	summary := FacetSummary{
		Categories: Categories(products),
		Functions:  Functions(products),
		SkinTypes:  SkinTypes(products),
		Total:      len(products),
	}
	for i, p := range products {
		if i == 0 || p.Price.LessThan(summary.Price.Min) {
			summary.Price.Min = p.Price
		}
		if i == 0 || p.Price.GreaterThan(summary.Price.Max) {
			summary.Price.Max = p.Price
		}
		if p.Stock > 0 {
			summary.InStock++
		} else {
			summary.OutOfStock++
		}
	}
	return summary
}

// IngredientGroup is a curated set of ingredient names offered as filter chips.
type IngredientGroup struct {
	Name        string   `json:"name"`
	Ingredients []string `json:"ingredients"`
}

var (
	actives = []string{
		"Ácido Hialurónico",
		"Niacinamida",
		"Vitamina C",
		"Ácido Tranexámico",
		"AHA (Ácido Glicólico)",
		"BHA (Ácido Salicílico)",
	}
	extracts = []string{
		"Centella Asiática",
		"Artemisa",
		"Hoja de Corazón",
		"Propóleo",
		"Soja Fermentada",
		"Galactomyces",
	}
)

// IngredientGroups returns fresh copies of the curated ingredient chips.
func IngredientGroups() []IngredientGroup {
	return []IngredientGroup{
		{Name: "Ácidos y activos", Ingredients: append([]string(nil), actives...)},
		{Name: "Extractos naturales", Ingredients: append([]string(nil), extracts...)},
	}
}
