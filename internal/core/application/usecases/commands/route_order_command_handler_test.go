package commands_test

import (
	"testing"

	"restaurant/internal/core/application/usecases/commands"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/kitchen"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/core/domain/services"
	"restaurant/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testRouter(t *testing.T, drinkCap, overflowCap int) *services.KitchenRouter {
	t.Helper()
	drinks, err := kitchen.NewStation("bebidas", []string{"BEBIDAS"}, drinkCap)
	require.NoError(t, err)
	overflow, err := kitchen.NewStation("cocina", nil, overflowCap)
	require.NoError(t, err)

	router, err := services.NewKitchenRouter([]*kitchen.Station{drinks}, overflow)
	require.NoError(t, err)
	return router
}

func TestRouteOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	chef := ports.Actor{ID: kernel.NewUUID(), Role: ports.RoleChef}
	aggregate := existingOrder(t, kernel.NewUUID())

	repo, uow, factory := mutationMocks(ctx, aggregate)
	cmd, err := commands.NewRouteOrderCommand(aggregate.ID(), chef.ID)
	require.NoError(t, err)

	h := commands.NewRouteOrderCommandHandler(
		factory, actorsWith(chef), nil, testRouter(t, 2, 2), testCatalog())
	result, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	require.Len(t, result.Items, 1)
	assert.Equal(t, "bebidas", result.Items[0].Station)
	assert.False(t, result.Failed())

	repo.AssertExpectations(t)
	uow.AssertExpectations(t)

	// Routing freezes the history against undo.
	err = aggregate.Undo(chef.ID)
	require.ErrorIs(t, err, order.ErrInvalidTransition)
}

func TestRouteOrderCommandHandler_Handle_AllStationsFull(t *testing.T) {
	ctx := t.Context()
	chef := ports.Actor{ID: kernel.NewUUID(), Role: ports.RoleChef}

	drinks, err := kitchen.NewStation("bebidas", []string{"BEBIDAS"}, 1)
	require.NoError(t, err)
	overflow, err := kitchen.NewStation("cocina", nil, 1)
	require.NoError(t, err)
	router, err := services.NewKitchenRouter([]*kitchen.Station{drinks}, overflow)
	require.NoError(t, err)

	// Occupy the only slot of each station.
	filler := kitchen.Ticket{OrderID: kernel.NewUUID(), ItemIndex: 0, ProductID: 1, Quantity: 1}
	require.True(t, drinks.TryAccept(filler))
	require.True(t, overflow.TryAccept(filler))

	aggregate := existingOrder(t, kernel.NewUUID())

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(repo).Once()
	repo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	cmd, err := commands.NewRouteOrderCommand(aggregate.ID(), chef.ID)
	require.NoError(t, err)

	h := commands.NewRouteOrderCommandHandler(factory, actorsWith(chef), nil, router, testCatalog())
	result, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	require.Len(t, result.Items, 1)
	require.ErrorIs(t, result.Items[0].Err, kitchen.ErrRoutingCapacityExceeded)
	assert.True(t, result.Failed())

	// Nothing reached a station, so undo stays possible.
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestRouteOrderCommandHandler_Handle_TerminalOrderRefused(t *testing.T) {
	ctx := t.Context()
	chef := ports.Actor{ID: kernel.NewUUID(), Role: ports.RoleChef}
	aggregate := existingOrder(t, kernel.NewUUID())
	require.NoError(t, aggregate.Cancel("", chef.ID))
	aggregate.TakeEvents()

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(repo).Once()
	repo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	cmd, err := commands.NewRouteOrderCommand(aggregate.ID(), chef.ID)
	require.NoError(t, err)

	h := commands.NewRouteOrderCommandHandler(
		factory, actorsWith(chef), nil, testRouter(t, 2, 2), testCatalog())
	_, err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, order.ErrInvalidTransition)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}
