package navigation

import "testing"

func TestParse(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want Token
	}{
		{"empty", "", Token{Kind: KindDefault}},
		{"product", "product=KRT-1", Token{Kind: KindProduct, ProductID: "KRT-1"}},
		{"product with size", "product=KRT-1&size=M", Token{Kind: KindProduct, ProductID: "KRT-1", Size: "M"}},
		{"collection", "collection=Festive%20Wear", Token{Kind: KindCollection, CollectionTitle: "Festive Wear"}},
		{"filter", "filter=Sarees", Token{Kind: KindFilter, FilterLabel: "Sarees"}},
		{"product wins over collection", "collection=X&product=P", Token{Kind: KindProduct, ProductID: "P"}},
		{"collection wins over filter", "filter=X&collection=C", Token{Kind: KindCollection, CollectionTitle: "C"}},
		{"leading hash stripped", "#product=KRT-1", Token{Kind: KindProduct, ProductID: "KRT-1"}},
		{"unknown keys ignored", "utm_source=share&foo=bar", Token{Kind: KindDefault}},
		{"malformed percent escape", "collection=%zz", Token{Kind: KindDefault}},
		{"plus decodes to space", "collection=Festive+Wear", Token{Kind: KindCollection, CollectionTitle: "Festive Wear"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Parse(tc.raw); got != tc.want {
				t.Fatalf("Parse(%q) = %+v, want %+v", tc.raw, got, tc.want)
			}
		})
	}
}

func TestFormatEncodesSpacesAsPercent20(t *testing.T) {
	if got := FormatCollection("Festive Wear"); got != "collection=Festive%20Wear" {
		t.Fatalf("FormatCollection = %q", got)
	}
	if got := FormatProduct("KRT 1", "Free Size"); got != "product=KRT%201&size=Free%20Size" {
		t.Fatalf("FormatProduct = %q", got)
	}
	if got := FormatFilter("New In"); got != "filter=New%20In" {
		t.Fatalf("FormatFilter = %q", got)
	}
}

func TestFormatParseRoundTrip(t *testing.T) {
	tokens := []Token{
		{Kind: KindProduct, ProductID: "KRT-1", Size: "M"},
		{Kind: KindProduct, ProductID: "id with spaces"},
		{Kind: KindCollection, CollectionTitle: "Festive Wear"},
		{Kind: KindFilter, FilterLabel: "Sarees & Co"},
		{Kind: KindDefault},
	}
	for _, tok := range tokens {
		if got := Parse(tok.String()); got != tok {
			t.Fatalf("round trip %+v -> %q -> %+v", tok, tok.String(), got)
		}
	}
}
