package queries_test

import (
	"context"
	"testing"
	"time"

	"restaurant/internal/core/application/usecases/queries"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/kitchen"
	"restaurant/internal/core/domain/model/menu"
	"restaurant/internal/core/domain/services"
	"restaurant/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedMenuProvider serves a static menu without any backing source.
type fixedMenuProvider struct {
	menu menu.Menu
}

func (p fixedMenuProvider) Menu(_ context.Context) (menu.Menu, error) { return p.menu, nil }

func (p fixedMenuProvider) Search(_ context.Context, term string) ([]menu.Product, error) {
	return p.menu.Search(term), nil
}

func (p fixedMenuProvider) Invalidate() {}

func (p fixedMenuProvider) Refresh(context.Context) error { return nil }

func (p fixedMenuProvider) Stats() ports.MenuCacheStats { return ports.MenuCacheStats{} }

func fixtureMenu() menu.Menu {
	return menu.Menu{
		LoadedAt: time.Now(),
		Categories: []menu.Category{
			{Name: "BEBIDAS", Products: []menu.Product{
				{ID: 1, Name: "Limonada", Category: "BEBIDAS", PriceCents: 350, Available: true},
			}},
			{Name: "POSTRES", Products: []menu.Product{
				{ID: 6, Name: "Flan", Category: "POSTRES", PriceCents: 500, Available: true},
			}},
		},
	}
}

func TestGetMenuQueryHandler_Handle(t *testing.T) {
	h := queries.NewGetMenuQueryHandler(fixedMenuProvider{menu: fixtureMenu()})

	m, err := h.Handle(t.Context(), queries.NewGetMenuQuery())

	require.NoError(t, err)
	assert.Len(t, m.Categories, 2)
}

func TestGetMenuQueryHandler_Handle_NotConstructed(t *testing.T) {
	h := queries.NewGetMenuQueryHandler(fixedMenuProvider{})
	_, err := h.Handle(t.Context(), queries.GetMenuQuery{})
	require.ErrorIs(t, err, queries.ErrGetMenuQueryIsNotConstructed)
}

func TestSearchMenuQueryHandler_Handle(t *testing.T) {
	h := queries.NewSearchMenuQueryHandler(fixedMenuProvider{menu: fixtureMenu()})

	products, err := h.Handle(t.Context(), queries.NewSearchMenuQuery("  flan "))

	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, int64(6), products[0].ID)
}

func TestGetStationReportsQueryHandler_Handle(t *testing.T) {
	drinks, err := kitchen.NewStation("bebidas", []string{"BEBIDAS"}, 4)
	require.NoError(t, err)
	overflow, err := kitchen.NewStation("cocina", nil, 8)
	require.NoError(t, err)
	router, err := services.NewKitchenRouter([]*kitchen.Station{drinks}, overflow)
	require.NoError(t, err)

	require.True(t, drinks.TryAccept(kitchen.Ticket{
		OrderID: kernel.NewUUID(), ItemIndex: 0, ProductID: 1, Quantity: 2,
	}))

	h := queries.NewGetStationReportsQueryHandler(router)
	reports, err := h.Handle(t.Context(), queries.NewGetStationReportsQuery())

	require.NoError(t, err)
	require.Len(t, reports, 2)
	assert.Equal(t, "bebidas", reports[0].Station)
	assert.Equal(t, 1, reports[0].QueueLength)
	assert.Equal(t, 4, reports[0].Capacity)
	assert.InDelta(t, 0.25, reports[0].Utilization, 0.001)
	assert.Equal(t, "cocina", reports[1].Station)
}

func TestGetOrderHistoryQuery_InvalidID(t *testing.T) {
	_, err := queries.NewGetOrderHistoryQuery(kernel.UUID{})
	require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}

func TestGetActiveOrdersQuery_NotConstructed(t *testing.T) {
	h := queries.NewGetActiveOrdersQueryHandler(nil)
	_, err := h.Handle(t.Context(), queries.GetActiveOrdersQuery{})
	require.ErrorIs(t, err, queries.ErrGetActiveOrdersQueryIsNotConstructed)
}
