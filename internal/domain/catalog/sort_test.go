package catalog

import "testing"

func names(ps []Product) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.Name
	}
	return out
}

func TestSortProductsPriorityFirst(t *testing.T) {
	ps := []Product{
		{Name: "B"},
		{Name: "A", Priority: true, PriorityRank: 1},
		{Name: "C", Priority: true, PriorityRank: 2},
	}
	SortProducts(ps)

	want := []string{"C", "A", "B"}
	for i, n := range names(ps) {
		if n != want[i] {
			t.Fatalf("order = %v, want %v", names(ps), want)
		}
	}
}

func TestSortProductsNameTieBreak(t *testing.T) {
	ps := []Product{
		{Name: "Zari Dupatta", Priority: true, PriorityRank: 1},
		{Name: "Anarkali", Priority: true, PriorityRank: 1},
	}
	SortProducts(ps)
	if ps[0].Name != "Anarkali" {
		t.Fatalf("tie should break on name, got %v", names(ps))
	}
}

func TestOrderCatalogCategoryTiers(t *testing.T) {
	ps := []Product{
		// Unranked category with no priority product.
		{Name: "p1", Category: "Casual"},
		// Ranked category, priority 2.
		{Name: "p2", Category: "Sarees", CategoryPriority: 2},
		// Unranked category holding a priority product.
		{Name: "p3", Category: "Kids", Priority: true},
		// Ranked category, priority 1 — sorts first.
		{Name: "p4", Category: "Festive", CategoryPriority: 1},
		// Another unranked, alphabetically before Casual.
		{Name: "p5", Category: "Accessories"},
	}
	got := OrderCatalog(ps)

	wantCategories := []string{"Festive", "Sarees", "Kids", "Accessories", "Casual"}
	var cats []string
	for _, p := range got {
		if len(cats) == 0 || cats[len(cats)-1] != p.Category {
			cats = append(cats, p.Category)
		}
	}
	if len(cats) != len(wantCategories) {
		t.Fatalf("categories = %v, want %v", cats, wantCategories)
	}
	for i := range cats {
		if cats[i] != wantCategories[i] {
			t.Fatalf("categories = %v, want %v", cats, wantCategories)
		}
	}
}

func TestOrderCatalogSortsWithinCategory(t *testing.T) {
	ps := []Product{
		{Name: "B", Category: "Sarees"},
		{Name: "A", Category: "Sarees", Priority: true},
	}
	got := OrderCatalog(ps)
	if got[0].Name != "A" || got[1].Name != "B" {
		t.Fatalf("within-category priority sort lost: %v", names(got))
	}
}

func TestOrderCatalogDoesNotMutateInput(t *testing.T) {
	ps := []Product{
		{Name: "B", Category: "X"},
		{Name: "A", Category: "X", Priority: true},
	}
	_ = OrderCatalog(ps)
	if ps[0].Name != "B" {
		t.Fatalf("input slice was mutated: %v", names(ps))
	}
}
