package catalog

import (
	"reflect"
	"testing"
)

func TestNormalizeProductDefaults(t *testing.T) {
	// A row with no recognized columns still yields a fully-defined product.
	p := NormalizeProduct(Row{"colour": "red"}, 7, 1000)

	if p.ID != "7" {
		t.Fatalf("expected synthesized id from row position, got %q", p.ID)
	}
	if p.BasePrice != 0 {
		t.Fatalf("expected zero base price, got %v", p.BasePrice)
	}
	if p.Category != "Uncategorized" {
		t.Fatalf("expected default category, got %q", p.Category)
	}
	if p.Name != "" || p.Description != "" {
		t.Fatalf("expected empty name/description, got %q/%q", p.Name, p.Description)
	}
	if len(p.Sizes) != 0 || len(p.Images) != 0 {
		t.Fatalf("expected no sizes/images, got %v/%v", p.Sizes, p.Images)
	}
}

func TestNormalizeProductPriceCoercion(t *testing.T) {
	cases := []struct {
		raw  string
		want float64
	}{
		{"₹1,299.50", 1299.50},
		{"1299", 1299},
		{"Rs. 450", 450},
		{"free", 0},
		{"", 0},
	}
	for _, tc := range cases {
		p := NormalizeProduct(Row{"price": tc.raw}, 1, 1000)
		if p.BasePrice != tc.want {
			t.Fatalf("price %q: got %v, want %v", tc.raw, p.BasePrice, tc.want)
		}
	}
}

func TestNormalizeProductAliasChain(t *testing.T) {
	// "product" is a fallback alias for name, "desc" for description.
	p := NormalizeProduct(Row{"product": "Kurti", "desc": "Cotton kurti"}, 1, 1000)
	if p.Name != "Kurti" {
		t.Fatalf("name alias fallback failed, got %q", p.Name)
	}
	if p.Description != "Cotton kurti" {
		t.Fatalf("description alias fallback failed, got %q", p.Description)
	}

	// The first non-empty alias wins; an empty primary falls through.
	p = NormalizeProduct(Row{"name": "", "product": "Saree"}, 1, 1000)
	if p.Name != "Saree" {
		t.Fatalf("empty primary alias should fall through, got %q", p.Name)
	}
}

func TestNormalizeProductOfferPrice(t *testing.T) {
	p := NormalizeProduct(Row{"price": "1000", "offer_price": "799"}, 1, 1000)
	if p.OfferPrice != 799 {
		t.Fatalf("valid offer price dropped, got %v", p.OfferPrice)
	}
	if p.EffectivePrice() != 799 {
		t.Fatalf("effective price should prefer offer, got %v", p.EffectivePrice())
	}

	// An offer at or above base price is meaningless and dropped.
	p = NormalizeProduct(Row{"price": "1000", "offer_price": "1000"}, 1, 1000)
	if p.OfferPrice != 0 {
		t.Fatalf("offer >= base should be dropped, got %v", p.OfferPrice)
	}
	if p.EffectivePrice() != 1000 {
		t.Fatalf("effective price should be base, got %v", p.EffectivePrice())
	}
}

func TestNormalizeProductSizes(t *testing.T) {
	p := NormalizeProduct(Row{"sizes": " M , L ,, S , M "}, 1, 1000)
	want := []string{"M", "L", "S", "M"}
	if !reflect.DeepEqual(p.Sizes, want) {
		t.Fatalf("sizes = %v, want %v (order preserved, no dedup)", p.Sizes, want)
	}
}

func TestNormalizeProductPriorityFlags(t *testing.T) {
	for _, raw := range []string{"true", "TRUE", "1", "yes", "Y"} {
		p := NormalizeProduct(Row{"priority": raw}, 1, 1000)
		if !p.Priority {
			t.Fatalf("priority %q should parse true", raw)
		}
	}
	for _, raw := range []string{"", "no", "0", "maybe"} {
		p := NormalizeProduct(Row{"priority": raw}, 1, 1000)
		if p.Priority {
			t.Fatalf("priority %q should parse false", raw)
		}
	}

	p := NormalizeProduct(Row{"priority rank": "3", "category priority": "2", "category rank": "9"}, 1, 1000)
	if p.PriorityRank != 3 || p.CategoryPriority != 2 || p.CategoryRank != 9 {
		t.Fatalf("rank parsing failed: %+v", p)
	}
}

func TestNormalizeCollection(t *testing.T) {
	c := NormalizeCollection(Row{"collection": "Festive Wear", "gids": "101, 102; 103"})
	if c.Title != "Festive Wear" {
		t.Fatalf("title = %q", c.Title)
	}
	want := []string{"101", "102", "103"}
	if !reflect.DeepEqual(c.MemberResourceIDs, want) {
		t.Fatalf("members = %v, want %v", c.MemberResourceIDs, want)
	}
	if c.FilterLabel != "Festive Wear" {
		t.Fatalf("filter label should default to title, got %q", c.FilterLabel)
	}

	c = NormalizeCollection(Row{"collection": "Festive Wear", "gids": "101", "filter": "Festive"})
	if c.FilterLabel != "Festive" {
		t.Fatalf("declared filter label lost, got %q", c.FilterLabel)
	}

	if c := NormalizeCollection(Row{"gids": "101"}); c.Title != "" {
		t.Fatalf("titleless row should normalize to zero value, got %+v", c)
	}
	if c := NormalizeCollection(Row{"collection": "Empty"}); c.Title != "" {
		t.Fatalf("memberless row should normalize to zero value, got %+v", c)
	}
}

func TestNormalizeContact(t *testing.T) {
	ct := NormalizeContact(Row{"whatsapp": "917907555924", "instagram": "https://instagram.com/x"})
	if ct.WhatsApp != "917907555924" {
		t.Fatalf("whatsapp = %q", ct.WhatsApp)
	}
	if ct.Instagram != "https://instagram.com/x" {
		t.Fatalf("instagram = %q", ct.Instagram)
	}

	// "phone" is an accepted alias for the destination number.
	ct = NormalizeContact(Row{"phone": "911234567890"})
	if ct.WhatsApp != "911234567890" {
		t.Fatalf("phone alias not resolved, got %q", ct.WhatsApp)
	}
}
