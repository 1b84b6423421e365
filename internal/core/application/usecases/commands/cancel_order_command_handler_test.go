package commands_test

import (
	"testing"

	"restaurant/internal/core/application/usecases/commands"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCancelOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	waiter := ports.Actor{ID: kernel.NewUUID(), Name: "Ana", Role: ports.RoleWaiter}
	aggregate := existingOrder(t, waiter.ID)

	repo, uow, factory := mutationMocks(ctx, aggregate)
	dispatcher := &recordingDispatcher{}
	cmd, err := commands.NewCancelOrderCommand(aggregate.ID(), waiter.ID, "cliente se fue")
	require.NoError(t, err)

	h := commands.NewCancelOrderCommandHandler(factory, actorsWith(waiter), nil, dispatcher)
	require.NoError(t, h.Handle(ctx, cmd))

	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	assert.Equal(t, order.Cancelled, aggregate.Status())

	events := dispatcher.Events()
	require.Len(t, events, 1)
	assert.Equal(t, order.EventOrderCancelled, events[0].Type)
	assert.Equal(t, "cliente se fue", events[0].Reason)

	history := aggregate.History()
	last := history[len(history)-1]
	assert.Equal(t, order.CommandCancel, last.Command.Type)
	assert.Contains(t, last.Command.Payload, "cliente se fue")
}

func TestCancelOrderCommandHandler_Handle_ReadyOrderRefused(t *testing.T) {
	ctx := t.Context()
	waiter := ports.Actor{ID: kernel.NewUUID(), Role: ports.RoleWaiter}
	aggregate := existingOrder(t, waiter.ID)
	require.NoError(t, aggregate.Advance(waiter.ID))
	require.NoError(t, aggregate.Complete(waiter.ID))
	aggregate.TakeEvents()

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(repo).Once()
	repo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	cmd, err := commands.NewCancelOrderCommand(aggregate.ID(), waiter.ID, "tarde")
	require.NoError(t, err)

	h := commands.NewCancelOrderCommandHandler(factory, actorsWith(waiter), nil, nil)
	err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, order.ErrInvalidTransition)
	assert.Equal(t, order.Ready, aggregate.Status())
}
