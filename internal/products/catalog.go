package product

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"

	pkgerrors "github.com/angelmondragon/glowshop-backend/pkg/errors"
)

//go:embed seed/products.json
var embeddedSeed []byte

// Catalog is the read-only product list in source order.
type Catalog struct {
	products []Product
	byID     map[string]int
}

// LoadCatalog reads the catalog from path, or from the embedded seed when path is blank.
func LoadCatalog(path string) (*Catalog, error) {
	raw := embeddedSeed
	if strings.TrimSpace(path) != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read catalog %s: %w", path, err)
		}
		raw = data
	}
	return ParseCatalog(raw)
}

// ParseCatalog decodes and validates a JSON product array.
func ParseCatalog(raw []byte) (*Catalog, error) {
	var products []Product
	if err := json.Unmarshal(raw, &products); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "decode catalog")
	}
	return NewCatalog(products)
}

// NewCatalog validates products and indexes them by id.
func NewCatalog(products []Product) (*Catalog, error) {
	v := validator.New()
	byID := make(map[string]int, len(products))
	for i, p := range products {
		if err := v.Struct(p); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, fmt.Sprintf("invalid product at index %d", i))
		}
		if p.Price.IsNegative() {
			return nil, pkgerrors.Newf(pkgerrors.CodeValidation, "product %s has a negative price", p.ID)
		}
		for _, ingredient := range p.Ingredients {
			if strings.TrimSpace(ingredient) == "" {
				return nil, pkgerrors.Newf(pkgerrors.CodeValidation, "product %s has a blank ingredient", p.ID)
			}
		}
		if _, dup := byID[p.ID]; dup {
			return nil, pkgerrors.Newf(pkgerrors.CodeValidation, "duplicate product id %s", p.ID)
		}
		byID[p.ID] = i
	}
	copied := make([]Product, len(products))
	copy(copied, products)
	return &Catalog{products: copied, byID: byID}, nil
}

// All returns the catalog in source order. The slice is a copy; products share their tag slices.
func (c *Catalog) All() []Product {
	if c == nil {
		return nil
	}
	out := make([]Product, len(c.products))
	copy(out, c.products)
	return out
}

func (c *Catalog) Find(id string) (Product, bool) {
	if c == nil {
		return Product{}, false
	}
	idx, ok := c.byID[id]
	if !ok {
		return Product{}, false
	}
	return c.products[idx], true
}

func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.products)
}
