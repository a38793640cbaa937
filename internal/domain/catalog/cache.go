// internal/domain/catalog/cache.go
package catalog

import (
	"context"
	"errors"
	"sync"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"github.com/prnse-cda/cda-store/internal/config"
)

var errEmptyContact = errors.New("contact resource has no rows")

// RowSource fetches the rows of one tabular resource. A source may fail;
// the cache degrades failures to empty results and logs them.
type RowSource interface {
	Fetch(ctx context.Context, resourceID string) ([]Row, error)
}

// defaultCollectionTitle backs catalogs published without a collections
// index: the whole catalog resource is served as one collection.
const defaultCollectionTitle = "All"

// Cache resolves catalog queries against lazily fetched resources.
//
// Each resource id moves NotFetched -> Fetching -> Cached exactly once per
// process lifetime; concurrent requests for the same id share one in-flight
// fetch. A failed fetch caches an empty row set — the storefront stays
// usable on partial data.
type Cache struct {
	src RowSource
	cfg *config.Config
	log *logrus.Logger

	group singleflight.Group

	mu          sync.Mutex
	resources   map[string][]Product // fetched resources, normalized
	known       map[string]Product   // product id -> snapshot, across all fetches
	collections []Collection
	collLoaded  bool
	contact     *Contact
	byTitle     map[string][]Product
	byLabel     map[string][]Product
	all         []Product
	allLoaded   bool

	ready     chan struct{}
	readyOnce sync.Once
}

// NewCache creates a catalog cache over the given row source
func NewCache(src RowSource, cfg *config.Config, log *logrus.Logger) *Cache {
	return &Cache{
		src:       src,
		cfg:       cfg,
		log:       log,
		resources: make(map[string][]Product),
		known:     make(map[string]Product),
		byTitle:   make(map[string][]Product),
		byLabel:   make(map[string][]Product),
		ready:     make(chan struct{}),
	}
}

// Ready returns a channel closed once the first full catalog load completes.
// Deep-link resolution waits on this instead of polling.
func (c *Cache) Ready() <-chan struct{} {
	return c.ready
}

// Lookup returns a product from the currently-known snapshot. It never
// fetches; callers that need the catalog warm must drive a list operation
// first.
func (c *Cache) Lookup(productID string) (Product, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	p, ok := c.known[productID]
	return p, ok
}

// ListAll resolves every known collection's members and returns the merged,
// category-ordered catalog.
func (c *Cache) ListAll(ctx context.Context) ([]Product, error) {
	c.mu.Lock()
	if c.allLoaded {
		out := append([]Product(nil), c.all...)
		c.mu.Unlock()
		return out, nil
	}
	c.mu.Unlock()

	v, _, _ := c.group.Do("list:all", func() (interface{}, error) {
		c.mu.Lock()
		if c.allLoaded {
			out := append([]Product(nil), c.all...)
			c.mu.Unlock()
			return out, nil
		}
		c.mu.Unlock()

		cols := c.loadCollections(ctx)
		merged := c.mergeMembers(ctx, cols)
		ordered := OrderCatalog(merged)

		c.mu.Lock()
		c.all = ordered
		c.allLoaded = true
		c.mu.Unlock()
		c.readyOnce.Do(func() { close(c.ready) })

		return append([]Product(nil), ordered...), nil
	})
	return v.([]Product), nil
}

// ListByCollectionTitle resolves the members of every collection sharing the
// title and returns their merged, sorted products. Results are memoized per
// title, so repeat selection of the same collection is instant.
func (c *Cache) ListByCollectionTitle(ctx context.Context, title string) ([]Product, error) {
	return c.listGroup(ctx, "title:"+title, c.byTitle, title, func(col Collection) bool {
		return col.Title == title
	})
}

// ListByFilterLabel resolves the members of every collection declaring the
// filter label; same caching discipline as collection titles.
func (c *Cache) ListByFilterLabel(ctx context.Context, label string) ([]Product, error) {
	return c.listGroup(ctx, "label:"+label, c.byLabel, label, func(col Collection) bool {
		return col.FilterLabel == label
	})
}

func (c *Cache) listGroup(ctx context.Context, flightKey string, memo map[string][]Product, memoKey string, match func(Collection) bool) ([]Product, error) {
	c.mu.Lock()
	if ps, ok := memo[memoKey]; ok {
		out := append([]Product(nil), ps...)
		c.mu.Unlock()
		return out, nil
	}
	c.mu.Unlock()

	v, _, _ := c.group.Do(flightKey, func() (interface{}, error) {
		c.mu.Lock()
		if ps, ok := memo[memoKey]; ok {
			out := append([]Product(nil), ps...)
			c.mu.Unlock()
			return out, nil
		}
		c.mu.Unlock()

		var matched []Collection
		for _, col := range c.loadCollections(ctx) {
			if match(col) {
				matched = append(matched, col)
			}
		}
		merged := c.mergeMembers(ctx, matched)
		SortProducts(merged)

		c.mu.Lock()
		memo[memoKey] = merged
		c.mu.Unlock()

		return append([]Product(nil), merged...), nil
	})
	return v.([]Product), nil
}

// Collections returns the declared collections, merged by title in
// declaration order (first declared filter label wins). Used for navigation.
func (c *Cache) Collections(ctx context.Context) []Collection {
	seen := make(map[string]int)
	var out []Collection
	for _, col := range c.loadCollections(ctx) {
		if i, ok := seen[col.Title]; ok {
			out[i].MemberResourceIDs = append(out[i].MemberResourceIDs, col.MemberResourceIDs...)
			continue
		}
		seen[col.Title] = len(out)
		out = append(out, Collection{
			Title:             col.Title,
			MemberResourceIDs: append([]string(nil), col.MemberResourceIDs...),
			FilterLabel:       col.FilterLabel,
		})
	}
	return out
}

// Contact returns the store contact block from the contact resource. Unlike
// catalog resources a failed contact fetch is not cached: checkout fails
// closed without a destination, so the next request may retry.
func (c *Cache) Contact(ctx context.Context) (Contact, bool) {
	c.mu.Lock()
	if c.contact != nil {
		ct := *c.contact
		c.mu.Unlock()
		return ct, true
	}
	c.mu.Unlock()

	if c.cfg.Sheets.ContactGID == "" {
		return Contact{}, false
	}

	v, err, _ := c.group.Do("contact", func() (interface{}, error) {
		c.mu.Lock()
		if c.contact != nil {
			ct := *c.contact
			c.mu.Unlock()
			return ct, nil
		}
		c.mu.Unlock()

		rows, err := c.src.Fetch(context.WithoutCancel(ctx), c.cfg.Sheets.ContactGID)
		if err != nil {
			c.log.WithError(err).Warn("contact resource fetch failed")
			return Contact{}, err
		}
		if len(rows) == 0 {
			c.log.Warn("contact resource is empty")
			return Contact{}, errEmptyContact
		}
		ct := NormalizeContact(rows[0])

		c.mu.Lock()
		c.contact = &ct
		c.mu.Unlock()
		return ct, nil
	})
	if err != nil {
		return Contact{}, false
	}
	return v.(Contact), true
}

// loadCollections fetches the collections index once. Without a configured
// index (or when it yields nothing) the whole catalog resource is served as
// a single default collection.
func (c *Cache) loadCollections(ctx context.Context) []Collection {
	c.mu.Lock()
	if c.collLoaded {
		out := append([]Collection(nil), c.collections...)
		c.mu.Unlock()
		return out
	}
	c.mu.Unlock()

	v, _, _ := c.group.Do("collections", func() (interface{}, error) {
		c.mu.Lock()
		if c.collLoaded {
			out := append([]Collection(nil), c.collections...)
			c.mu.Unlock()
			return out, nil
		}
		c.mu.Unlock()

		var cols []Collection
		if gid := c.cfg.Sheets.CollectionsGID; gid != "" {
			rows, err := c.src.Fetch(context.WithoutCancel(ctx), gid)
			if err != nil {
				c.log.WithError(err).WithField("resource_id", gid).Warn("collections index fetch failed")
			}
			for _, row := range rows {
				if col := NormalizeCollection(row); col.Title != "" {
					cols = append(cols, col)
				}
			}
		}
		if len(cols) == 0 {
			cols = []Collection{{
				Title:             defaultCollectionTitle,
				MemberResourceIDs: []string{c.cfg.Sheets.CatalogGID},
				FilterLabel:       defaultCollectionTitle,
			}}
		}

		c.mu.Lock()
		c.collections = cols
		c.collLoaded = true
		c.mu.Unlock()

		return append([]Collection(nil), cols...), nil
	})
	return v.([]Collection)
}

// mergeMembers fetches every member resource of the given collections and
// concatenates the results in collection-declaration then member order.
// Member fetches run concurrently and the merge waits for all of them; a
// failed member simply contributes no rows.
func (c *Cache) mergeMembers(ctx context.Context, cols []Collection) []Product {
	unique := make(map[string]struct{})
	var wg sync.WaitGroup
	for _, col := range cols {
		for _, gid := range col.MemberResourceIDs {
			if _, ok := unique[gid]; ok {
				continue
			}
			unique[gid] = struct{}{}
			wg.Add(1)
			go func(gid string) {
				defer wg.Done()
				c.resourceProducts(ctx, gid)
			}(gid)
		}
	}
	wg.Wait()

	var merged []Product
	for _, col := range cols {
		for _, gid := range col.MemberResourceIDs {
			merged = append(merged, c.resourceProducts(ctx, gid)...)
		}
	}
	return merged
}

// resourceProducts returns the normalized products of one resource, fetching
// it at most once. The fetch deliberately detaches from caller cancellation:
// an abandoned navigation must not kill the fetch for future queries.
func (c *Cache) resourceProducts(ctx context.Context, resourceID string) []Product {
	c.mu.Lock()
	if ps, ok := c.resources[resourceID]; ok {
		c.mu.Unlock()
		return ps
	}
	c.mu.Unlock()

	v, _, _ := c.group.Do("resource:"+resourceID, func() (interface{}, error) {
		c.mu.Lock()
		if ps, ok := c.resources[resourceID]; ok {
			c.mu.Unlock()
			return ps, nil
		}
		c.mu.Unlock()

		rows, err := c.src.Fetch(context.WithoutCancel(ctx), resourceID)
		var products []Product
		if err != nil {
			c.log.WithError(err).WithField("resource_id", resourceID).
				Warn("resource fetch failed, caching empty result")
			products = []Product{}
		} else {
			products = make([]Product, 0, len(rows))
			for i, row := range rows {
				products = append(products, NormalizeProduct(row, i+1, c.cfg.Store.ImageWidth))
			}
		}

		c.mu.Lock()
		c.resources[resourceID] = products
		for _, p := range products {
			c.known[p.ID] = p
		}
		c.mu.Unlock()

		return products, nil
	})
	return v.([]Product)
}
