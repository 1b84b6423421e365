package menu

import (
	"sort"
	"strings"
	"time"
)

// Product is a single sellable item of the menu.
type Product struct {
	ID          int64
	Name        string
	Description string
	Category    string
	PriceCents  int64
	Available   bool
}

// Category groups products under a kitchen-facing label such as
// BEBIDAS or POSTRES.
type Category struct {
	Name     string
	Products []Product
}

// Menu is the read model served to clients and consumed by order intake.
// It is immutable once built; LoadedAt records when the source produced it.
// Stale marks a copy served past its freshness window because the source
// could not be reached.
type Menu struct {
	Categories []Category
	LoadedAt   time.Time
	Stale      bool
}

// IsZero reports whether the menu was never loaded.
func (m Menu) IsZero() bool {
	return m.LoadedAt.IsZero() && len(m.Categories) == 0
}

// Products flattens the menu into a single product list in category order.
func (m Menu) Products() []Product {
	var out []Product
	for _, c := range m.Categories {
		out = append(out, c.Products...)
	}
	return out
}

// Find returns the product with the given id, or false when the menu does
// not carry it.
func (m Menu) Find(productID int64) (Product, bool) {
	for _, c := range m.Categories {
		for _, p := range c.Products {
			if p.ID == productID {
				return p, true
			}
		}
	}
	return Product{}, false
}

// Search returns available products whose name or description contains
// the query, case-insensitively, ordered by name. An empty query matches
// every available product.
func (m Menu) Search(query string) []Product {
	needle := strings.ToLower(strings.TrimSpace(query))

	var out []Product
	for _, p := range m.Products() {
		if !p.Available {
			continue
		}
		if needle == "" ||
			strings.Contains(strings.ToLower(p.Name), needle) ||
			strings.Contains(strings.ToLower(p.Description), needle) {
			out = append(out, p)
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
