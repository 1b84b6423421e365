package queries

import (
	"context"

	"restaurant/internal/core/domain/model/menu"
	"restaurant/internal/core/ports"
)

// GetMenuQueryHandler serves the menu through the caching provider, so
// repeated reads do not hit the slow backing source.
type GetMenuQueryHandler struct {
	provider ports.MenuProvider
}

// NewGetMenuQueryHandler creates a handler for menu retrieval.
func NewGetMenuQueryHandler(provider ports.MenuProvider) GetMenuQueryHandler {
	return GetMenuQueryHandler{provider: provider}
}

// Handle executes the query. The returned menu carries the LoadedAt
// timestamp of the cached load it was served from.
func (h GetMenuQueryHandler) Handle(ctx context.Context, query GetMenuQuery) (menu.Menu, error) {
	if err := query.Validate(); err != nil {
		return menu.Menu{}, err
	}

	return h.provider.Menu(ctx)
}
