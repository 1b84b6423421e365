package ports

import (
	"context"

	"restaurant/internal/core/domain/model/menu"
)

// MenuSource loads the full menu from its authoritative backing store.
// Loads are expected to be slow; callers front it with a caching provider.
type MenuSource interface {
	// Load fetches the complete current menu.
	Load(ctx context.Context) (menu.Menu, error)
}

// MenuCacheStats counts how a caching MenuProvider answered its calls.
type MenuCacheStats struct {
	Hits        int64
	Misses      int64
	StaleServes int64
	Refreshes   int64
}

// MenuProvider serves the menu to queries and order intake. The production
// implementation caches a MenuSource; tests substitute a fixed menu.
type MenuProvider interface {
	// Menu returns the current menu, loading it on demand.
	Menu(ctx context.Context) (menu.Menu, error)

	// Search returns available products matching the query.
	Search(ctx context.Context, query string) ([]menu.Product, error)

	// Invalidate discards any cached menu so the next call reloads.
	Invalidate()

	// Refresh forces a reload from the source. Any cached menu survives a
	// failed reload as the stale fallback.
	Refresh(ctx context.Context) error

	// Stats reports hit/miss counters accumulated since construction.
	Stats() MenuCacheStats
}

// ProductCatalog resolves product references for order intake and kitchen
// routing. Lookups answer from the same menu the MenuProvider serves.
type ProductCatalog interface {
	// Resolve returns the product for the given id, or an error wrapping
	// errs.ErrObjectNotFound when the menu does not carry it.
	Resolve(ctx context.Context, productID int64) (menu.Product, error)

	// CategoryOf returns the category label of the given product.
	CategoryOf(ctx context.Context, productID int64) (string, error)
}
