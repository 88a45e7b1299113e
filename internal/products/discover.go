package product

import "strings"

// DefaultRelatedLimit caps the "you may also like" strip on a product page.
const DefaultRelatedLimit = 4

// Search matches the term case-insensitively against name, brand, category and function tags.
// A blank term yields no results.
func Search(products []Product, term string) []Product {
	needle := strings.ToLower(strings.TrimSpace(term))
	out := make([]Product, 0)
	if needle == "" {
		return out
	}
	for _, p := range products {
		if searchable(p, needle) {
			out = append(out, p)
		}
	}
	return out
}

func searchable(p Product, needle string) bool {
	for _, field := range []string{p.Name, p.Brand, p.Category} {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	for _, fn := range p.Function {
		if strings.Contains(strings.ToLower(fn), needle) {
			return true
		}
	}
	return false
}

// Related returns up to limit products sharing the category or brand of target, excluding target.
func Related(products []Product, target Product, limit int) []Product {
	if limit <= 0 {
		limit = DefaultRelatedLimit
	}
	out := make([]Product, 0, limit)
	for _, p := range products {
		if len(out) == limit {
			break
		}
		if p.ID == target.ID {
			continue
		}
		if p.Category == target.Category || p.Brand == target.Brand {
			out = append(out, p)
		}
	}
	return out
}

func BestSellers(products []Product) []Product {
	return where(products, func(p Product) bool { return p.IsBestSeller })
}

func Featured(products []Product) []Product {
	return where(products, func(p Product) bool { return p.IsFeatured })
}

func NewArrivals(products []Product) []Product {
	return where(products, func(p Product) bool { return p.IsNew })
}

func where(products []Product, keep func(Product) bool) []Product {
	out := make([]Product, 0)
	for _, p := range products {
		if keep(p) {
			out = append(out, p)
		}
	}
	return out
}
