// internal/domain/navigation/resolver.go
package navigation

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/prnse-cda/cda-store/internal/config"
	"github.com/prnse-cda/cda-store/internal/domain/catalog"
)

// View names the storefront view an outcome lands on
type View string

const (
	ViewDefault View = "default"
	ViewProduct View = "product"
	ViewListing View = "listing"
)

// Catalog is the slice of the catalog cache the resolver needs
type Catalog interface {
	Ready() <-chan struct{}
	Lookup(productID string) (catalog.Product, bool)
	ListAll(ctx context.Context) ([]catalog.Product, error)
	ListByCollectionTitle(ctx context.Context, title string) ([]catalog.Product, error)
	ListByFilterLabel(ctx context.Context, label string) ([]catalog.Product, error)
}

// Outcome is a resolved navigation target, ready to render
type Outcome struct {
	View     View
	Token    Token
	Product  *catalog.Product
	Size     string
	Products []catalog.Product
}

// Resolver turns parsed tokens into concrete views against the catalog.
// Product tokens need the catalog warm; the resolver waits for the first
// full load up to a deadline and degrades to the default view past it.
type Resolver struct {
	catalog Catalog
	config  *config.Config
	log     *logrus.Logger
}

// NewResolver creates a deep-link resolver over the catalog
func NewResolver(cat Catalog, cfg *config.Config, log *logrus.Logger) *Resolver {
	return &Resolver{
		catalog: cat,
		config:  cfg,
		log:     log,
	}
}

// Resolve maps a raw token to an outcome. Resolution is soft: unknown
// products, empty listings and load timeouts all land on a renderable view
// rather than an error. The returned error is reserved for catalog failures
// on the default listing itself.
func (r *Resolver) Resolve(ctx context.Context, rawToken string) (Outcome, error) {
	token := Parse(rawToken)

	switch token.Kind {
	case KindProduct:
		return r.resolveProduct(ctx, token)

	case KindCollection:
		products, err := r.catalog.ListByCollectionTitle(ctx, token.CollectionTitle)
		if err != nil {
			return Outcome{}, err
		}
		if len(products) == 0 {
			r.log.WithField("collection", token.CollectionTitle).Info("collection token matched nothing, showing default view")
			return r.defaultView(ctx)
		}
		return Outcome{View: ViewListing, Token: token, Products: products}, nil

	case KindFilter:
		products, err := r.catalog.ListByFilterLabel(ctx, token.FilterLabel)
		if err != nil {
			return Outcome{}, err
		}
		if len(products) == 0 {
			r.log.WithField("filter", token.FilterLabel).Info("filter token matched nothing, showing default view")
			return r.defaultView(ctx)
		}
		return Outcome{View: ViewListing, Token: token, Products: products}, nil

	default:
		return r.defaultView(ctx)
	}
}

// resolveProduct waits for the catalog to finish its first full load before
// looking the product up, bounded by the deep-link deadline. A late catalog
// or a vanished product degrades to the default view.
func (r *Resolver) resolveProduct(ctx context.Context, token Token) (Outcome, error) {
	waitCtx, cancel := context.WithTimeout(ctx, r.config.Store.DeepLinkTimeout)
	defer cancel()

	// ListAll both warms the catalog and closes Ready; kick it off if no
	// one else has.
	go r.catalog.ListAll(context.WithoutCancel(ctx))

	select {
	case <-r.catalog.Ready():
	case <-waitCtx.Done():
		r.log.WithField("product", token.ProductID).Warn("catalog not ready within deep-link deadline, showing default view")
		return r.defaultView(ctx)
	}

	product, ok := r.catalog.Lookup(token.ProductID)
	if !ok {
		r.log.WithField("product", token.ProductID).Info("deep-linked product not in catalog, showing default view")
		return r.defaultView(ctx)
	}

	size := token.Size
	if size != "" && !product.HasSize(size) {
		size = ""
	}
	if size == "" && len(product.Sizes) > 0 {
		size = product.Sizes[0]
	}

	return Outcome{View: ViewProduct, Token: token, Product: &product, Size: size}, nil
}

func (r *Resolver) defaultView(ctx context.Context) (Outcome, error) {
	products, err := r.catalog.ListAll(ctx)
	if err != nil {
		return Outcome{}, err
	}
	return Outcome{View: ViewDefault, Token: Token{Kind: KindDefault}, Products: products}, nil
}
