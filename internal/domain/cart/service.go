// internal/domain/cart/service.go
package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/prnse-cda/cda-store/internal/config"
	"github.com/prnse-cda/cda-store/internal/domain/catalog"
	"github.com/prnse-cda/cda-store/internal/infrastructure/storage"
)

// CatalogLookup resolves a product id against the currently-known catalog
// snapshot. It never triggers a fetch.
type CatalogLookup interface {
	Lookup(productID string) (catalog.Product, bool)
}

// Service handles cart business logic. Every mutation loads the persisted
// cart, applies the change, and writes the whole cart back.
type Service struct {
	kv      storage.KV
	catalog CatalogLookup
	config  *config.Config
	log     *logrus.Logger
}

// NewService creates a new cart service
func NewService(kv storage.KV, cat CatalogLookup, cfg *config.Config, log *logrus.Logger) *Service {
	return &Service{
		kv:      kv,
		catalog: cat,
		config:  cfg,
		log:     log,
	}
}

func cartKey(sessionID string) string {
	return fmt.Sprintf("cart:session:%s", sessionID)
}

// Snapshot returns the persisted cart for the session. Absent or corrupt
// data yields an empty cart, never an error to the shopper.
func (s *Service) Snapshot(ctx context.Context, sessionID string) Cart {
	raw, found, err := s.kv.Get(ctx, cartKey(sessionID))
	if err != nil {
		s.log.WithError(err).Warn("cart load failed, starting empty")
		return Cart{}
	}
	if !found || raw == "" {
		return Cart{}
	}
	var c Cart
	if err := json.Unmarshal([]byte(raw), &c); err != nil {
		s.log.WithError(err).Warn("persisted cart is corrupt, starting empty")
		return Cart{}
	}
	return c
}

// Count returns the badge count for the session
func (s *Service) Count(ctx context.Context, sessionID string) int {
	return s.Snapshot(ctx, sessionID).Count()
}

// AddLine adds quantityDelta of a product/variant to the cart. The product
// must resolve in the warm catalog; display data is captured here and frozen
// into the line. A line with the same identity absorbs the delta instead of
// duplicating.
func (s *Service) AddLine(ctx context.Context, sessionID, productID, variant string, quantityDelta int) (Cart, error) {
	if quantityDelta < 1 {
		return Cart{}, ErrQuantityBelowMinimum
	}

	product, ok := s.catalog.Lookup(productID)
	if !ok {
		return Cart{}, ErrProductUnknown
	}
	if variant != "" && !product.HasSize(variant) {
		return Cart{}, ErrVariantUnknown
	}

	c := s.Snapshot(ctx, sessionID)

	for i := range c.Lines {
		if c.Lines[i].sameIdentity(productID, variant) {
			next := c.Lines[i].Quantity + quantityDelta
			if next > s.config.Store.MaxQtyPerItem {
				return c, ErrQuantityLimitExceeded
			}
			c.Lines[i].Quantity = next
			return c, s.save(ctx, sessionID, c)
		}
	}

	if quantityDelta > s.config.Store.MaxQtyPerItem {
		return c, ErrQuantityLimitExceeded
	}

	thumbnail := s.config.Store.PlaceholderImage
	if len(product.Images) > 0 {
		thumbnail = product.Images[0]
	}
	c.Lines = append(c.Lines, Line{
		ProductID:    productID,
		Variant:      variant,
		Quantity:     quantityDelta,
		UnitPrice:    product.EffectivePrice(),
		DisplayName:  product.Name,
		ThumbnailURL: thumbnail,
		AddedAt:      time.Now().UTC(),
	})
	return c, s.save(ctx, sessionID, c)
}

// SetQuantity sets an existing line to an absolute quantity
func (s *Service) SetQuantity(ctx context.Context, sessionID string, lineIndex, quantity int) (Cart, error) {
	if quantity < 1 {
		return Cart{}, ErrQuantityBelowMinimum
	}
	if quantity > s.config.Store.MaxQtyPerItem {
		return Cart{}, ErrQuantityLimitExceeded
	}

	c := s.Snapshot(ctx, sessionID)
	if lineIndex < 0 || lineIndex >= len(c.Lines) {
		return c, ErrLineNotFound
	}
	c.Lines[lineIndex].Quantity = quantity
	return c, s.save(ctx, sessionID, c)
}

// SetVariant changes the size of an existing line. The new size is checked
// against the product when the catalog still knows it; a line whose product
// has vanished keeps its snapshot data and accepts the change unchecked.
// Two lines may end up with equal identity afterwards; they stay separate,
// as the original behavior did.
func (s *Service) SetVariant(ctx context.Context, sessionID string, lineIndex int, variant string) (Cart, error) {
	c := s.Snapshot(ctx, sessionID)
	if lineIndex < 0 || lineIndex >= len(c.Lines) {
		return c, ErrLineNotFound
	}

	if product, ok := s.catalog.Lookup(c.Lines[lineIndex].ProductID); ok {
		if variant != "" && !product.HasSize(variant) {
			return c, ErrVariantUnknown
		}
	}

	c.Lines[lineIndex].Variant = variant
	return c, s.save(ctx, sessionID, c)
}

// RemoveLine deletes one line by index
func (s *Service) RemoveLine(ctx context.Context, sessionID string, lineIndex int) (Cart, error) {
	c := s.Snapshot(ctx, sessionID)
	if lineIndex < 0 || lineIndex >= len(c.Lines) {
		return c, ErrLineNotFound
	}
	c.Lines = append(c.Lines[:lineIndex], c.Lines[lineIndex+1:]...)
	return c, s.save(ctx, sessionID, c)
}

// Clear empties the cart
func (s *Service) Clear(ctx context.Context, sessionID string) error {
	return s.kv.Delete(ctx, cartKey(sessionID))
}

func (s *Service) save(ctx context.Context, sessionID string, c Cart) error {
	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("serialize cart: %w", err)
	}
	if err := s.kv.Set(ctx, cartKey(sessionID), string(data)); err != nil {
		return fmt.Errorf("persist cart: %w", err)
	}
	return nil
}
