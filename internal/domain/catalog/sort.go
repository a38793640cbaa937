// internal/domain/catalog/sort.go
package catalog

import (
	"math"
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// newCollator builds a fresh collator per sort; collate.Collator is not safe
// for concurrent use.
func newCollator() *collate.Collator {
	return collate.New(language.English)
}

// SortProducts orders one product list in place: priority items first, then
// higher priority rank, ties broken by locale comparison of the name.
func SortProducts(products []Product) {
	coll := newCollator()
	sort.SliceStable(products, func(i, j int) bool {
		a, b := products[i], products[j]
		if a.Priority != b.Priority {
			return a.Priority
		}
		if a.PriorityRank != b.PriorityRank {
			return a.PriorityRank > b.PriorityRank
		}
		return coll.CompareString(a.Name, b.Name) < 0
	})
}

// categoryMeta aggregates per-category sort hints from member products
type categoryMeta struct {
	name        string
	priority    float64 // lowest non-zero category_priority, +Inf when unset
	rank        float64 // highest category_rank
	hasPriority bool    // category contains at least one priority product
}

// OrderCatalog arranges a merged multi-category product list for the full
// catalog view: ranked categories first (category priority ascending, rank
// descending, then name), then unranked categories that hold a priority
// product, then the rest alphabetically. Products inside every category get
// the regular priority sort. The input is not mutated.
func OrderCatalog(products []Product) []Product {
	byCategory := make(map[string][]Product)
	meta := make(map[string]*categoryMeta)
	var order []string

	for _, p := range products {
		m, ok := meta[p.Category]
		if !ok {
			m = &categoryMeta{name: p.Category, priority: math.Inf(1)}
			meta[p.Category] = m
			order = append(order, p.Category)
		}
		byCategory[p.Category] = append(byCategory[p.Category], p)

		if p.CategoryPriority != 0 && p.CategoryPriority < m.priority {
			m.priority = p.CategoryPriority
		}
		if p.CategoryRank > m.rank {
			m.rank = p.CategoryRank
		}
		if p.Priority {
			m.hasPriority = true
		}
	}

	coll := newCollator()

	var ranked, withPriority, rest []*categoryMeta
	for _, name := range order {
		m := meta[name]
		switch {
		case !math.IsInf(m.priority, 1):
			ranked = append(ranked, m)
		case m.hasPriority:
			withPriority = append(withPriority, m)
		default:
			rest = append(rest, m)
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.priority != b.priority {
			return a.priority < b.priority
		}
		if a.rank != b.rank {
			return a.rank > b.rank
		}
		return coll.CompareString(a.name, b.name) < 0
	})
	alphabetical := func(ms []*categoryMeta) {
		sort.SliceStable(ms, func(i, j int) bool {
			return coll.CompareString(ms[i].name, ms[j].name) < 0
		})
	}
	alphabetical(withPriority)
	alphabetical(rest)

	out := make([]Product, 0, len(products))
	for _, bucket := range [][]*categoryMeta{ranked, withPriority, rest} {
		for _, m := range bucket {
			group := append([]Product(nil), byCategory[m.name]...)
			SortProducts(group)
			out = append(out, group...)
		}
	}
	return out
}
