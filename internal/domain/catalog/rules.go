// internal/domain/catalog/rules.go
package catalog

import (
	"strconv"
	"strings"
)

// fieldRule maps one canonical field to the ordered list of source-column
// aliases that may carry it. First alias with a non-empty value wins.
// The tables are data so the alias chains stay testable and extensible.
type fieldRule struct {
	canonical string
	aliases   []string
}

var productRules = []fieldRule{
	{"id", []string{"id"}},
	{"name", []string{"name", "product"}},
	{"description", []string{"description", "desc"}},
	{"category", []string{"category"}},
	{"price", []string{"price", "base_price", "base price", "mrp"}},
	{"offer_price", []string{"offer_price", "offer price", "offer", "sale_price", "sale price", "discount_price"}},
	{"sizes", []string{"sizes", "size"}},
	{"images", []string{"image_ids", "image_id", "image", "images", "imageids", "image id", "image-id"}},
	{"priority", []string{"priority", "featured", "is_priority", "is priority"}},
	{"priority_rank", []string{"priority_rank", "priorityrank", "priority rank"}},
	{"category_priority", []string{"category_priority", "category priority", "category-priority"}},
	{"category_rank", []string{"category_rank", "category rank"}},
	{"fabric_ref_id", []string{"fabric_ref_id", "fabric_id", "fabric ref", "fabric"}},
}

var collectionRules = []fieldRule{
	{"title", []string{"collection", "title", "name"}},
	{"members", []string{"gids", "gid", "resource_ids", "resource ids", "sheets", "tabs"}},
	{"filter_label", []string{"filter_label", "filter label", "filter", "label"}},
}

var contactRules = []fieldRule{
	{"whatsapp", []string{"whatsapp", "phone", "contact", "number"}},
	{"email", []string{"email", "mail"}},
	{"instagram", []string{"instagram", "insta"}},
	{"facebook", []string{"facebook", "fb"}},
	{"address", []string{"address", "location"}},
}

func ruleFor(rules []fieldRule, canonical string) fieldRule {
	for _, r := range rules {
		if r.canonical == canonical {
			return r
		}
	}
	return fieldRule{canonical: canonical}
}

// resolve walks the alias chain and returns the first non-empty trimmed value
func (r Row) resolve(rule fieldRule) string {
	for _, alias := range rule.aliases {
		if v, ok := r[alias]; ok {
			if trimmed := strings.TrimSpace(v); trimmed != "" {
				return trimmed
			}
		}
	}
	return ""
}

// NormalizeKey lowercases and trims a column header so alias lookups are
// insensitive to source casing and padding.
func NormalizeKey(key string) string {
	return strings.ToLower(strings.TrimSpace(key))
}

// parseNumber coerces a loosely-formatted numeric cell: every character that
// is not a digit, dot or minus is stripped before parsing ("₹1,299.50"
// parses as 1299.50). Unparseable input coerces to 0.
func parseNumber(raw string) float64 {
	var b strings.Builder
	for _, r := range raw {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			b.WriteRune(r)
		}
	}
	n, err := strconv.ParseFloat(b.String(), 64)
	if err != nil {
		return 0
	}
	return n
}

// parseBool treats "true", "1", "yes" and "y" as true, case-insensitively
func parseBool(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "true", "1", "yes", "y":
		return true
	}
	return false
}

// splitList splits a multi-value cell on the given separators, trims each
// part and drops empties. Order is preserved and duplicates are kept.
func splitList(raw string, seps ...rune) []string {
	if raw == "" {
		return nil
	}
	parts := strings.FieldsFunc(raw, func(r rune) bool {
		for _, sep := range seps {
			if r == sep {
				return true
			}
		}
		return false
	})
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
