// internal/domain/catalog/entity.go
package catalog

// Row is one record from a tabular resource: column name -> raw cell value.
// Keys are normalized by the source (lower-cased, trimmed).
type Row map[string]string

// Product represents one sellable item, normalized from a source row.
// A catalog fetch always produces a fresh snapshot; products are never
// mutated in place.
type Product struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	BasePrice   float64  `json:"base_price"`
	OfferPrice  float64  `json:"offer_price,omitempty"` // kept only when 0 < offer < base
	Sizes       []string `json:"sizes,omitempty"`
	Images      []string `json:"images,omitempty"`

	Priority         bool    `json:"priority"`
	PriorityRank     float64 `json:"priority_rank"`
	CategoryPriority float64 `json:"category_priority"` // 0 means no priority
	CategoryRank     float64 `json:"category_rank"`

	FabricRefID string `json:"fabric_ref_id,omitempty"`
}

// EffectivePrice returns the price a cart line is charged at
func (p Product) EffectivePrice() float64 {
	if p.OfferPrice > 0 && p.OfferPrice < p.BasePrice {
		return p.OfferPrice
	}
	return p.BasePrice
}

// HasSize reports whether label is one of the product's declared sizes
// (exact, case-sensitive match).
func (p Product) HasSize(label string) bool {
	for _, s := range p.Sizes {
		if s == label {
			return true
		}
	}
	return false
}

// Collection is a named shopper-facing grouping of one or more underlying
// resources. Entries sharing a title are merged into one logical listing.
type Collection struct {
	Title             string   `json:"title"`
	MemberResourceIDs []string `json:"member_resource_ids"`
	FilterLabel       string   `json:"filter_label,omitempty"`
}

// Contact holds the store contact block resolved from the contact resource.
// WhatsApp is the checkout destination; the rest is display data.
type Contact struct {
	WhatsApp  string `json:"whatsapp"`
	Email     string `json:"email,omitempty"`
	Instagram string `json:"instagram,omitempty"`
	Facebook  string `json:"facebook,omitempty"`
	Address   string `json:"address,omitempty"`
}
