package product

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/glowshop-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/glowshop-backend/pkg/errors"
)

func TestLoadCatalogEmbeddedSeed(t *testing.T) {
	catalog, err := LoadCatalog("")
	if err != nil {
		t.Fatalf("expected seed to load, got %v", err)
	}
	if catalog.Len() != 12 {
		t.Fatalf("expected 12 products, got %d", catalog.Len())
	}
	p, ok := catalog.Find("1")
	if !ok {
		t.Fatal("expected product 1")
	}
	if !p.Price.Equal(decimal.NewFromInt(85000)) {
		t.Fatalf("unexpected price %s", p.Price)
	}
	if p.OriginalPrice == nil || !p.OriginalPrice.Equal(decimal.NewFromInt(105000)) {
		t.Fatalf("unexpected original price %v", p.OriginalPrice)
	}
}

func TestLoadCatalogFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	raw := `[{"id":"x","name":"Uno","brand":"B","category":"C","function":[],"skinType":[],"price":10,"ingredients":["Agua"],"stock":1}]`
	if err := os.WriteFile(path, []byte(raw), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	catalog, err := LoadCatalog(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if catalog.Len() != 1 {
		t.Fatalf("expected 1 product, got %d", catalog.Len())
	}
}

func TestLoadCatalogMissingFile(t *testing.T) {
	if _, err := LoadCatalog(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestNewCatalogRejectsBadData(t *testing.T) {
	blankIngredient := testProduct("a", "A", 1)
	blankIngredient.Ingredients = []string{"Agua", " "}
	negative := testProduct("b", "B", -1)
	missingName := testProduct("c", "", 1)

	cases := map[string][]Product{
		"duplicate id":     {testProduct("a", "A", 1), testProduct("a", "B", 1)},
		"blank ingredient": {blankIngredient},
		"negative price":   {negative},
		"missing name":     {missingName},
	}
	for name, products := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := NewCatalog(products)
			if !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestCatalogAllReturnsCopy(t *testing.T) {
	catalog, err := NewCatalog([]Product{testProduct("a", "A", 1)})
	if err != nil {
		t.Fatalf("new catalog: %v", err)
	}
	all := catalog.All()
	all[0].Name = "changed"
	if p, _ := catalog.Find("a"); p.Name != "A" {
		t.Fatalf("catalog mutated through All: %q", p.Name)
	}
}

func TestProductDiscountAndStock(t *testing.T) {
	p := testProduct("a", "A", 75)
	if p.DiscountPercent() != 0 {
		t.Fatalf("expected no discount without original price")
	}
	original := decimal.NewFromInt(100)
	p.OriginalPrice = &original
	if got := p.DiscountPercent(); got != 25 {
		t.Fatalf("expected 25%% off, got %d", got)
	}

	cases := []struct {
		stock int
		want  enums.StockStatus
	}{
		{0, enums.StockStatusOutOfStock},
		{9, enums.StockStatusLowStock},
		{10, enums.StockStatusInStock},
	}
	for _, tc := range cases {
		p.Stock = tc.stock
		if got := p.StockStatus(); got != tc.want {
			t.Fatalf("stock %d: expected %s, got %s", tc.stock, tc.want, got)
		}
	}
}
