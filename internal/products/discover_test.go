package product

import "testing"

func TestAccessorsFirstSeenOrder(t *testing.T) {
	a := testProduct("a", "A", 1)
	a.Category = "Cremas"
	a.Function = []string{"Calmante", "Hidratación"}
	b := testProduct("b", "B", 1)
	b.Category = "Serums"
	b.Function = []string{"Hidratación", "Antiedad"}
	c := testProduct("c", "C", 1)
	c.Category = "Cremas"
	c.SkinType = []string{"Grasa", "Seca"}

	products := []Product{a, b, c}
	assertStrings(t, Categories(products), "Cremas", "Serums")
	assertStrings(t, Functions(products), "Calmante", "Hidratación", "Antiedad")
	assertStrings(t, SkinTypes(products), "Seca", "Grasa")
}

func assertStrings(t *testing.T, got []string, want ...string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestFacets(t *testing.T) {
	summary := Facets(seedProducts(t))
	if summary.Total != 12 {
		t.Fatalf("expected 12 products, got %d", summary.Total)
	}
	if summary.OutOfStock != 1 || summary.InStock != 11 {
		t.Fatalf("unexpected stock counts %d/%d", summary.InStock, summary.OutOfStock)
	}
	if summary.Price.Min.IntPart() != 45000 || summary.Price.Max.IntPart() != 120000 {
		t.Fatalf("unexpected price range %s-%s", summary.Price.Min, summary.Price.Max)
	}
}

func TestSearch(t *testing.T) {
	products := seedProducts(t)
	if got := Search(products, "   "); len(got) != 0 {
		t.Fatalf("expected blank search to return nothing, got %v", ids(got))
	}
	equalIDs(t, Search(products, "seoul"), "2", "5", "9")
	equalIDs(t, Search(products, "ANTIMANCHAS"), "7")
}

func TestRelated(t *testing.T) {
	products := seedProducts(t)
	target := products[0]
	got := Related(products, target, 0)
	if len(got) != DefaultRelatedLimit {
		t.Fatalf("expected %d related, got %d", DefaultRelatedLimit, len(got))
	}
	for _, p := range got {
		if p.ID == target.ID {
			t.Fatal("related must exclude the product itself")
		}
		if p.Category != target.Category && p.Brand != target.Brand {
			t.Fatalf("product %s shares neither category nor brand", p.ID)
		}
	}
}

func TestHomeSections(t *testing.T) {
	products := seedProducts(t)
	equalIDs(t, BestSellers(products), "1", "4", "6", "9")
	equalIDs(t, NewArrivals(products), "2", "5", "7", "11")
	equalIDs(t, Featured(products), "1", "3", "7", "10")
}

func TestIngredientGroupsAreCopies(t *testing.T) {
	groups := IngredientGroups()
	if len(groups) != 2 || len(groups[0].Ingredients) != 6 {
		t.Fatalf("unexpected groups %v", groups)
	}
	groups[0].Ingredients[0] = "changed"
	if IngredientGroups()[0].Ingredients[0] != "Ácido Hialurónico" {
		t.Fatal("ingredient groups must not share backing arrays")
	}
}
