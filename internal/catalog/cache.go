// Package catalog holds the session-scoped snapshot of products and their
// purchasable variants.
package catalog

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"abod-card-app/internal/model"
)

// Fetcher is the slice of the backend client the cache needs.
type Fetcher interface {
	Products(ctx context.Context) ([]model.Product, error)
	Categories(ctx context.Context) ([]model.CatalogVariant, error)
}

// snapshot is one immutable view of the catalog. Readers always see a whole
// snapshot; Refresh swaps the pointer, never mutates in place.
type snapshot struct {
	products  []model.Product
	byProduct map[string][]model.CatalogVariant
	byID      map[string]model.CatalogVariant
}

// Cache is the in-memory catalog cache. There is no incremental
// invalidation: Refresh replaces the entire snapshot atomically.
type Cache struct {
	fetcher Fetcher

	mu   sync.RWMutex
	snap *snapshot
}

// New creates a catalog cache. No fetch happens until Refresh or the first
// read.
func New(fetcher Fetcher) *Cache {
	return &Cache{fetcher: fetcher}
}

// Refresh re-fetches the whole catalog and atomically replaces the snapshot.
func (c *Cache) Refresh(ctx context.Context) error {
	products, err := c.fetcher.Products(ctx)
	if err != nil {
		return fmt.Errorf("refreshing products: %w", err)
	}
	variants, err := c.fetcher.Categories(ctx)
	if err != nil {
		return fmt.Errorf("refreshing categories: %w", err)
	}

	snap := &snapshot{
		products:  products,
		byProduct: make(map[string][]model.CatalogVariant),
		byID:      make(map[string]model.CatalogVariant, len(variants)),
	}
	for _, v := range variants {
		snap.byProduct[v.ProductID] = append(snap.byProduct[v.ProductID], v)
		snap.byID[v.ID] = v
	}

	c.mu.Lock()
	c.snap = snap
	c.mu.Unlock()
	return nil
}

// current returns the live snapshot, refreshing implicitly if no fetch has
// completed yet. Reads never observe a half-updated catalog.
func (c *Cache) current(ctx context.Context) (*snapshot, error) {
	c.mu.RLock()
	snap := c.snap
	c.mu.RUnlock()

	if snap != nil {
		return snap, nil
	}
	if err := c.Refresh(ctx); err != nil {
		return nil, err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snap, nil
}

// Products returns all products in backend order.
func (c *Cache) Products(ctx context.Context) ([]model.Product, error) {
	snap, err := c.current(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]model.Product, len(snap.products))
	copy(out, snap.products)
	return out, nil
}

// VariantsFor returns the purchasable variants of a product, in the order
// the backend returned them. Unknown products yield an empty slice.
func (c *Cache) VariantsFor(ctx context.Context, productID string) ([]model.CatalogVariant, error) {
	snap, err := c.current(ctx)
	if err != nil {
		return nil, err
	}
	variants := snap.byProduct[productID]
	out := make([]model.CatalogVariant, len(variants))
	copy(out, variants)
	return out, nil
}

// Variant looks up a single variant by id.
func (c *Cache) Variant(ctx context.Context, variantID string) (model.CatalogVariant, bool, error) {
	snap, err := c.current(ctx)
	if err != nil {
		return model.CatalogVariant{}, false, err
	}
	v, ok := snap.byID[variantID]
	return v, ok, nil
}

// Search matches products and variants whose name or description contains
// the query, case-insensitively, over the cached snapshot.
func (c *Cache) Search(ctx context.Context, query string) ([]model.Product, []model.CatalogVariant, error) {
	snap, err := c.current(ctx)
	if err != nil {
		return nil, nil, err
	}

	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil, nil, nil
	}

	var products []model.Product
	for _, p := range snap.products {
		if containsFold(p.Name, q) || containsFold(p.Description, q) {
			products = append(products, p)
		}
	}

	var variants []model.CatalogVariant
	for _, p := range snap.products {
		for _, v := range snap.byProduct[p.ID] {
			if containsFold(v.Name, q) || containsFold(v.Description, q) {
				variants = append(variants, v)
			}
		}
	}
	return products, variants, nil
}

func containsFold(s, lowerQuery string) bool {
	return strings.Contains(strings.ToLower(s), lowerQuery)
}
