// internal/domain/catalog/normalizer.go
package catalog

import (
	"strconv"

	"github.com/prnse-cda/cda-store/internal/pkg/images"
)

// NormalizeProduct converts one source row into a Product. position is the
// 1-based row position within the fetch; it becomes the id when no id column
// carries a value. That synthesized id is only as stable as the source row
// order — reordering the sheet changes it, which breaks old deep links and
// persisted cart lines. Kept for compatibility with the original data.
func NormalizeProduct(row Row, position int, imageWidth int) Product {
	p := Product{
		ID:          row.resolve(ruleFor(productRules, "id")),
		Name:        row.resolve(ruleFor(productRules, "name")),
		Description: row.resolve(ruleFor(productRules, "description")),
		Category:    row.resolve(ruleFor(productRules, "category")),
		FabricRefID: row.resolve(ruleFor(productRules, "fabric_ref_id")),
	}
	if p.ID == "" {
		p.ID = strconv.Itoa(position)
	}
	if p.Category == "" {
		p.Category = "Uncategorized"
	}

	p.BasePrice = parseNumber(row.resolve(ruleFor(productRules, "price")))
	if p.BasePrice < 0 {
		p.BasePrice = 0
	}
	offer := parseNumber(row.resolve(ruleFor(productRules, "offer_price")))
	if offer > 0 && offer < p.BasePrice {
		p.OfferPrice = offer
	}

	p.Sizes = splitList(row.resolve(ruleFor(productRules, "sizes")), ',')
	p.Images = images.ResolveAll(
		splitList(row.resolve(ruleFor(productRules, "images")), ',', ';'),
		imageWidth,
	)

	p.Priority = parseBool(row.resolve(ruleFor(productRules, "priority")))
	p.PriorityRank = parseNumber(row.resolve(ruleFor(productRules, "priority_rank")))
	p.CategoryPriority = parseNumber(row.resolve(ruleFor(productRules, "category_priority")))
	p.CategoryRank = parseNumber(row.resolve(ruleFor(productRules, "category_rank")))

	return p
}

// NormalizeCollection converts one collections-index row into a Collection.
// Rows without a title or without any member resource are not collections;
// callers should skip the zero value.
func NormalizeCollection(row Row) Collection {
	c := Collection{
		Title:             row.resolve(ruleFor(collectionRules, "title")),
		MemberResourceIDs: splitList(row.resolve(ruleFor(collectionRules, "members")), ',', ';'),
		FilterLabel:       row.resolve(ruleFor(collectionRules, "filter_label")),
	}
	if c.Title == "" || len(c.MemberResourceIDs) == 0 {
		return Collection{}
	}
	if c.FilterLabel == "" {
		c.FilterLabel = c.Title
	}
	return c
}

// NormalizeContact converts the first contact-resource row into the store
// contact block.
func NormalizeContact(row Row) Contact {
	return Contact{
		WhatsApp:  row.resolve(ruleFor(contactRules, "whatsapp")),
		Email:     row.resolve(ruleFor(contactRules, "email")),
		Instagram: row.resolve(ruleFor(contactRules, "instagram")),
		Facebook:  row.resolve(ruleFor(contactRules, "facebook")),
		Address:   row.resolve(ruleFor(contactRules, "address")),
	}
}
