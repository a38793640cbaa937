// internal/domain/cart/entity.go
package cart

import (
	"errors"
	"time"
)

// Business-rule violations are typed so callers can surface specific,
// actionable messages. Data problems (corrupt persisted carts) never raise.
var (
	// ErrProductUnknown rejects add-to-cart for ids the warm catalog does
	// not know — including "catalog not loaded yet".
	ErrProductUnknown = errors.New("product is not available in the catalog")

	// ErrVariantUnknown rejects a size the product does not offer
	ErrVariantUnknown = errors.New("size is not offered for this product")

	// ErrQuantityLimitExceeded rejects mutations that would push a line past
	// the per-item ceiling; the existing quantity is left unchanged.
	ErrQuantityLimitExceeded = errors.New("maximum quantity per item reached")

	// ErrQuantityBelowMinimum rejects quantities under 1; removal is an
	// explicit operation, not quantity zero.
	ErrQuantityBelowMinimum = errors.New("quantity must be at least 1")

	// ErrLineNotFound rejects an out-of-range line index
	ErrLineNotFound = errors.New("cart line not found")
)

// Line is one cart entry. Price, name and thumbnail are captured when the
// line is added and never re-joined against the live catalog: the cart is a
// record of what the shopper saw, and it survives products vanishing from a
// later catalog snapshot.
type Line struct {
	ProductID    string    `json:"product_id"`
	Variant      string    `json:"variant,omitempty"`
	Quantity     int       `json:"quantity"`
	UnitPrice    float64   `json:"unit_price"`
	DisplayName  string    `json:"display_name"`
	ThumbnailURL string    `json:"thumbnail_url,omitempty"`
	AddedAt      time.Time `json:"added_at"`
}

// sameIdentity implements the line identity rule: product id plus variant,
// exact match, with the empty variant being its own identity.
func (l Line) sameIdentity(productID, variant string) bool {
	return l.ProductID == productID && l.Variant == variant
}

// Cart is the ordered list of lines, serialized and persisted as one unit
type Cart struct {
	Lines []Line `json:"lines"`
}

// Count returns the badge count: the sum of all line quantities
func (c Cart) Count() int {
	total := 0
	for _, l := range c.Lines {
		total += l.Quantity
	}
	return total
}

// Total returns the cart total across all lines
func (c Cart) Total() float64 {
	var total float64
	for _, l := range c.Lines {
		total += l.UnitPrice * float64(l.Quantity)
	}
	return total
}
