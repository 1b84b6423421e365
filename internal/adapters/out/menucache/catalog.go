package menucache

import (
	"context"

	"restaurant/internal/core/domain/model/menu"
	"restaurant/internal/core/ports"
	"restaurant/internal/pkg/errs"
)

// Catalog resolves product references against the cached menu, so order
// intake and kitchen routing see exactly the menu clients were shown.
type Catalog struct {
	provider ports.MenuProvider
}

// NewCatalog creates a catalog over a menu provider.
func NewCatalog(provider ports.MenuProvider) *Catalog {
	return &Catalog{provider: provider}
}

// Resolve returns the product with the given id. A missing product fails
// with an error wrapping errs.ErrObjectNotFound.
func (c *Catalog) Resolve(ctx context.Context, productID int64) (menu.Product, error) {
	m, err := c.provider.Menu(ctx)
	if err != nil {
		return menu.Product{}, err
	}

	product, ok := m.Find(productID)
	if !ok {
		return menu.Product{}, errs.NewObjectNotFoundError("productID", productID)
	}
	return product, nil
}

// CategoryOf returns the category label of the given product.
func (c *Catalog) CategoryOf(ctx context.Context, productID int64) (string, error) {
	product, err := c.Resolve(ctx, productID)
	if err != nil {
		return "", err
	}
	return product.Category, nil
}
