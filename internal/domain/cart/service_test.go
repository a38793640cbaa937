package cart

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/prnse-cda/cda-store/internal/config"
	"github.com/prnse-cda/cda-store/internal/domain/catalog"
	"github.com/prnse-cda/cda-store/internal/infrastructure/storage"
)

type stubCatalog struct {
	products map[string]catalog.Product
}

func (s *stubCatalog) Lookup(productID string) (catalog.Product, bool) {
	p, ok := s.products[productID]
	return p, ok
}

func testService(products ...catalog.Product) (*Service, *storage.Memory) {
	byID := make(map[string]catalog.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	cfg := &config.Config{
		Store: config.StoreConfig{
			MaxQtyPerItem:    5,
			PlaceholderImage: "assets/images/logo.png",
		},
	}
	log := logrus.New()
	log.SetOutput(io.Discard)
	kv := storage.NewMemory()
	return NewService(kv, &stubCatalog{products: byID}, cfg, log), kv
}

func kurti() catalog.Product {
	return catalog.Product{
		ID:        "KRT-1",
		Name:      "Chikankari Kurti",
		BasePrice: 1299,
		Sizes:     []string{"S", "M", "L"},
		Images:    []string{"https://img.example/kurti.jpg"},
	}
}

func TestAddLineMergesSameIdentity(t *testing.T) {
	svc, _ := testService(kurti())
	ctx := context.Background()

	if _, err := svc.AddLine(ctx, "sess", "KRT-1", "M", 1); err != nil {
		t.Fatalf("first add: %v", err)
	}
	c, err := svc.AddLine(ctx, "sess", "KRT-1", "M", 2)
	if err != nil {
		t.Fatalf("second add: %v", err)
	}
	if len(c.Lines) != 1 {
		t.Fatalf("expected merged line, got %d lines", len(c.Lines))
	}
	if c.Lines[0].Quantity != 3 {
		t.Fatalf("quantity = %d, want 3", c.Lines[0].Quantity)
	}
}

func TestAddLineDistinctVariantsStaySeparate(t *testing.T) {
	svc, _ := testService(kurti())
	ctx := context.Background()

	svc.AddLine(ctx, "sess", "KRT-1", "M", 1)
	c, err := svc.AddLine(ctx, "sess", "KRT-1", "L", 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(c.Lines) != 2 {
		t.Fatalf("expected 2 lines for distinct sizes, got %d", len(c.Lines))
	}
}

func TestAddLineUnknownProduct(t *testing.T) {
	svc, _ := testService()
	if _, err := svc.AddLine(context.Background(), "sess", "NOPE", "", 1); !errors.Is(err, ErrProductUnknown) {
		t.Fatalf("err = %v, want ErrProductUnknown", err)
	}
}

func TestAddLineUnknownVariant(t *testing.T) {
	svc, _ := testService(kurti())
	if _, err := svc.AddLine(context.Background(), "sess", "KRT-1", "XXL", 1); !errors.Is(err, ErrVariantUnknown) {
		t.Fatalf("err = %v, want ErrVariantUnknown", err)
	}
}

func TestQuantityCeilingLeavesCartUnchanged(t *testing.T) {
	svc, _ := testService(kurti())
	ctx := context.Background()

	svc.AddLine(ctx, "sess", "KRT-1", "M", 4)
	if _, err := svc.AddLine(ctx, "sess", "KRT-1", "M", 2); !errors.Is(err, ErrQuantityLimitExceeded) {
		t.Fatalf("err = %v, want ErrQuantityLimitExceeded", err)
	}
	if got := svc.Snapshot(ctx, "sess").Lines[0].Quantity; got != 4 {
		t.Fatalf("quantity after rejected add = %d, want 4", got)
	}
}

func TestSetQuantityBounds(t *testing.T) {
	svc, _ := testService(kurti())
	ctx := context.Background()
	svc.AddLine(ctx, "sess", "KRT-1", "M", 1)

	if _, err := svc.SetQuantity(ctx, "sess", 0, 0); !errors.Is(err, ErrQuantityBelowMinimum) {
		t.Fatalf("err = %v, want ErrQuantityBelowMinimum", err)
	}
	if _, err := svc.SetQuantity(ctx, "sess", 0, 6); !errors.Is(err, ErrQuantityLimitExceeded) {
		t.Fatalf("err = %v, want ErrQuantityLimitExceeded", err)
	}
	c, err := svc.SetQuantity(ctx, "sess", 0, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Lines[0].Quantity != 5 {
		t.Fatalf("quantity = %d, want 5", c.Lines[0].Quantity)
	}
}

func TestSetVariantDoesNotMergeLines(t *testing.T) {
	svc, _ := testService(kurti())
	ctx := context.Background()

	svc.AddLine(ctx, "sess", "KRT-1", "M", 1)
	svc.AddLine(ctx, "sess", "KRT-1", "L", 1)
	c, err := svc.SetVariant(ctx, "sess", 1, "M")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(c.Lines) != 2 {
		t.Fatalf("lines collapsed on variant change, got %d", len(c.Lines))
	}
	if c.Lines[0].Variant != "M" || c.Lines[1].Variant != "M" {
		t.Fatalf("variants = %q/%q, want M/M", c.Lines[0].Variant, c.Lines[1].Variant)
	}
}

func TestSetVariantRejectsUnknownSize(t *testing.T) {
	svc, _ := testService(kurti())
	ctx := context.Background()
	svc.AddLine(ctx, "sess", "KRT-1", "M", 1)

	if _, err := svc.SetVariant(ctx, "sess", 0, "XXL"); !errors.Is(err, ErrVariantUnknown) {
		t.Fatalf("err = %v, want ErrVariantUnknown", err)
	}
}

func TestAddLineSnapshotsOfferPriceAndThumbnail(t *testing.T) {
	p := kurti()
	p.OfferPrice = 999
	svc, _ := testService(p)

	c, err := svc.AddLine(context.Background(), "sess", "KRT-1", "S", 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Lines[0].UnitPrice != 999 {
		t.Fatalf("unit price = %v, want offer price 999", c.Lines[0].UnitPrice)
	}
	if c.Lines[0].ThumbnailURL != "https://img.example/kurti.jpg" {
		t.Fatalf("thumbnail = %q", c.Lines[0].ThumbnailURL)
	}
}

func TestAddLinePlaceholderWhenNoImages(t *testing.T) {
	p := kurti()
	p.Images = nil
	svc, _ := testService(p)

	c, _ := svc.AddLine(context.Background(), "sess", "KRT-1", "S", 1)
	if c.Lines[0].ThumbnailURL != "assets/images/logo.png" {
		t.Fatalf("thumbnail = %q, want placeholder", c.Lines[0].ThumbnailURL)
	}
}

func TestCartPersistsAcrossServiceInstances(t *testing.T) {
	svc, kv := testService(kurti())
	ctx := context.Background()
	svc.AddLine(ctx, "sess", "KRT-1", "M", 2)

	cfg := &config.Config{Store: config.StoreConfig{MaxQtyPerItem: 5}}
	log := logrus.New()
	log.SetOutput(io.Discard)
	fresh := NewService(kv, &stubCatalog{products: map[string]catalog.Product{}}, cfg, log)

	c := fresh.Snapshot(ctx, "sess")
	if len(c.Lines) != 1 || c.Lines[0].Quantity != 2 {
		t.Fatalf("reloaded cart = %+v", c)
	}
	if fresh.Count(ctx, "sess") != 2 {
		t.Fatalf("count = %d, want 2", fresh.Count(ctx, "sess"))
	}
}

func TestCorruptPersistedCartStartsEmpty(t *testing.T) {
	svc, kv := testService(kurti())
	ctx := context.Background()
	kv.Set(ctx, "cart:session:sess", "{not json")

	c := svc.Snapshot(ctx, "sess")
	if len(c.Lines) != 0 {
		t.Fatalf("expected empty cart for corrupt payload, got %+v", c)
	}
}

func TestRemoveAndClear(t *testing.T) {
	svc, _ := testService(kurti())
	ctx := context.Background()
	svc.AddLine(ctx, "sess", "KRT-1", "M", 1)
	svc.AddLine(ctx, "sess", "KRT-1", "L", 1)

	c, err := svc.RemoveLine(ctx, "sess", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(c.Lines) != 1 || c.Lines[0].Variant != "L" {
		t.Fatalf("after remove: %+v", c)
	}

	if _, err := svc.RemoveLine(ctx, "sess", 5); !errors.Is(err, ErrLineNotFound) {
		t.Fatalf("err = %v, want ErrLineNotFound", err)
	}

	if err := svc.Clear(ctx, "sess"); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if got := svc.Count(ctx, "sess"); got != 0 {
		t.Fatalf("count after clear = %d, want 0", got)
	}
}

func TestCartTotal(t *testing.T) {
	c := Cart{Lines: []Line{
		{UnitPrice: 100, Quantity: 2},
		{UnitPrice: 50, Quantity: 1},
	}}
	if c.Total() != 250 {
		t.Fatalf("total = %v, want 250", c.Total())
	}
}
