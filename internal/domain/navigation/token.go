// internal/domain/navigation/token.go
package navigation

import (
	"net/url"
	"strings"
)

// Kind discriminates what a navigation token points at
type Kind int

const (
	// KindDefault is the storefront landing view
	KindDefault Kind = iota
	// KindProduct opens one product's detail view
	KindProduct
	// KindCollection opens a collection listing by title
	KindCollection
	// KindFilter opens a filtered listing by filter label
	KindFilter
)

// Token is a parsed shareable navigation target. Exactly one of the target
// fields is meaningful, chosen by Kind.
type Token struct {
	Kind            Kind
	ProductID       string
	Size            string
	CollectionTitle string
	FilterLabel     string
}

// Parse reads a raw token in query-string form. Product takes precedence over
// collection over filter when a token carries several keys. Anything
// unreadable or empty falls back to the default view; a shared link never
// hard-fails.
func Parse(raw string) Token {
	raw = strings.TrimPrefix(raw, "#")
	if raw == "" {
		return Token{Kind: KindDefault}
	}
	values, err := url.ParseQuery(raw)
	if err != nil {
		return Token{Kind: KindDefault}
	}

	if id := values.Get("product"); id != "" {
		return Token{Kind: KindProduct, ProductID: id, Size: values.Get("size")}
	}
	if title := values.Get("collection"); title != "" {
		return Token{Kind: KindCollection, CollectionTitle: title}
	}
	if label := values.Get("filter"); label != "" {
		return Token{Kind: KindFilter, FilterLabel: label}
	}
	return Token{Kind: KindDefault}
}

// FormatProduct renders a shareable product token, optionally pinning a size
func FormatProduct(productID, size string) string {
	token := "product=" + encode(productID)
	if size != "" {
		token += "&size=" + encode(size)
	}
	return token
}

// FormatCollection renders a shareable collection token
func FormatCollection(title string) string {
	return "collection=" + encode(title)
}

// FormatFilter renders a shareable filter token
func FormatFilter(label string) string {
	return "filter=" + encode(label)
}

// String renders the token back to its shareable form
func (t Token) String() string {
	switch t.Kind {
	case KindProduct:
		return FormatProduct(t.ProductID, t.Size)
	case KindCollection:
		return FormatCollection(t.CollectionTitle)
	case KindFilter:
		return FormatFilter(t.FilterLabel)
	default:
		return ""
	}
}

// encode percent-encodes a token value with spaces as %20, keeping formatted
// tokens byte-stable for copy-pasted links.
func encode(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

func (k Kind) String() string {
	switch k {
	case KindProduct:
		return "product"
	case KindCollection:
		return "collection"
	case KindFilter:
		return "filter"
	default:
		return "default"
	}
}
