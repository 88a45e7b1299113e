package product

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/glowshop-backend/pkg/enums"
)

func testProduct(id, name string, price int64) Product {
	return Product{
		ID:          id,
		Name:        name,
		Brand:       "Glow Lab",
		Category:    "Serums",
		Function:    []string{"Hidratación"},
		SkinType:    []string{"Seca"},
		Price:       decimal.NewFromInt(price),
		Ingredients: []string{"Glicerina"},
		Stock:       10,
	}
}

func ids(products []Product) []string {
	out := make([]string, len(products))
	for i, p := range products {
		out[i] = p.ID
	}
	return out
}

func equalIDs(t *testing.T, got []Product, want ...string) {
	t.Helper()
	gotIDs := ids(got)
	if len(gotIDs) != len(want) {
		t.Fatalf("expected ids %v, got %v", want, gotIDs)
	}
	for i := range want {
		if gotIDs[i] != want[i] {
			t.Fatalf("expected ids %v, got %v", want, gotIDs)
		}
	}
}

func seedProducts(t *testing.T) []Product {
	t.Helper()
	catalog, err := LoadCatalog("")
	if err != nil {
		t.Fatalf("load seed catalog: %v", err)
	}
	return catalog.All()
}

func TestApplyEmptySelectionIsIdentity(t *testing.T) {
	products := seedProducts(t)
	got := Apply(products, Selection{})
	equalIDs(t, got, ids(products)...)
}

func TestApplyNarrowsMonotonically(t *testing.T) {
	products := seedProducts(t)
	steps := []Selection{
		{},
		{Category: "Cremas"},
		{Category: "Cremas", Function: "Calmante"},
		{Category: "Cremas", Function: "Calmante", SkinType: "Sensible"},
		{Category: "Cremas", Function: "Calmante", SkinType: "Sensible", Ingredients: []string{"Artemisa"}},
	}
	var previous map[string]bool
	for i, sel := range steps {
		got := Apply(products, sel)
		current := make(map[string]bool, len(got))
		for _, p := range got {
			current[p.ID] = true
			if previous != nil && !previous[p.ID] {
				t.Fatalf("step %d: product %s was not in the previous result", i, p.ID)
			}
		}
		previous = current
	}
	if len(previous) != 1 || !previous["9"] {
		t.Fatalf("expected only product 9 after all filters, got %v", previous)
	}
}

func TestApplyIngredientFuzzyMatch(t *testing.T) {
	a := testProduct("a", "Tónico", 100)
	a.Ingredients = []string{"Centella Asiática de Jeju"}
	b := testProduct("b", "Crema", 100)
	b.Ingredients = []string{"Centella"}
	c := testProduct("c", "Gel", 100)
	c.Ingredients = []string{"Aloe Vera"}

	got := Apply([]Product{a, b, c}, Selection{Ingredients: []string{"Centella Asiática"}})
	equalIDs(t, got, "a", "b")
}

func TestApplyIngredientIsCaseSensitive(t *testing.T) {
	p := testProduct("a", "Tónico", 100)
	p.Ingredients = []string{"Centella Asiática"}
	if got := Apply([]Product{p}, Selection{Ingredients: []string{"centella"}}); len(got) != 0 {
		t.Fatalf("expected no match for lowercase ingredient, got %v", ids(got))
	}
}

func TestApplyZeroMatchesIsEmptyNotNil(t *testing.T) {
	got := Apply(seedProducts(t), Selection{Category: "Perfumes"})
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %v", got)
	}
}

func TestApplySortByNewIsStable(t *testing.T) {
	a := testProduct("A", "A", 100)
	a.IsNew = true
	b := testProduct("B", "B", 100)
	c := testProduct("C", "C", 100)
	c.IsNew = true

	got := Apply([]Product{a, b, c}, Selection{Sort: enums.SortKeyNew})
	equalIDs(t, got, "A", "C", "B")
}

func TestApplySortByPrice(t *testing.T) {
	products := []Product{
		testProduct("1", "Uno", 300),
		testProduct("2", "Dos", 100),
		testProduct("3", "Tres", 200),
		testProduct("4", "Cuatro", 100),
	}
	equalIDs(t, Apply(products, Selection{Sort: enums.SortKeyPriceAsc}), "2", "4", "3", "1")
	equalIDs(t, Apply(products, Selection{Sort: enums.SortKeyPriceDesc}), "1", "3", "2", "4")
	equalIDs(t, products, "1", "2", "3", "4")
}

func TestApplySortByNameUsesSpanishCollation(t *testing.T) {
	products := []Product{
		testProduct("1", "Zanahoria", 1),
		testProduct("2", "Ácido", 1),
		testProduct("3", "azúcar", 1),
		testProduct("4", "Bálsamo", 1),
	}
	got := Apply(products, Selection{Sort: enums.SortKeyName})
	equalIDs(t, got, "2", "3", "4", "1")
}

func TestApplyFilterThenSort(t *testing.T) {
	got := Apply(seedProducts(t), Selection{Category: "Serums", Sort: enums.SortKeyPriceDesc})
	equalIDs(t, got, "7", "1")
}
