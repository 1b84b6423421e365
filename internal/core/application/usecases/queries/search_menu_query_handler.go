package queries

import (
	"context"

	"restaurant/internal/core/domain/model/menu"
	"restaurant/internal/core/ports"
)

// SearchMenuQueryHandler answers product searches from the caching menu
// provider.
type SearchMenuQueryHandler struct {
	provider ports.MenuProvider
}

// NewSearchMenuQueryHandler creates a handler for menu searches.
func NewSearchMenuQueryHandler(provider ports.MenuProvider) SearchMenuQueryHandler {
	return SearchMenuQueryHandler{provider: provider}
}

// Handle executes the search and returns matches ordered by name.
func (h SearchMenuQueryHandler) Handle(
	ctx context.Context,
	query SearchMenuQuery,
) ([]menu.Product, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	return h.provider.Search(ctx, query.Term())
}
