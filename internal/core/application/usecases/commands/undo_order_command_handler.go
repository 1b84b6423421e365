package commands

import (
	"context"

	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/core/ports"
)

// UndoOrderCommandHandler reverts the last lifecycle command of an order.
type UndoOrderCommandHandler struct {
	deps orderActionDeps
}

// NewUndoOrderCommandHandler creates a handler for undoing order mutations.
func NewUndoOrderCommandHandler(
	uowFactory OrderUoWFactory,
	actors ports.ActorRegistry,
	locks OrderLocker,
	dispatcher EventDispatcher,
) UndoOrderCommandHandler {
	return UndoOrderCommandHandler{
		deps: orderActionDeps{
			uowFactory: uowFactory,
			actors:     actors,
			locks:      locks,
			dispatcher: dispatcher,
		},
	}
}

// Handle processes the undo command. Undo is refused when there is nothing
// to revert or when the last command was already routed to the kitchen.
func (h *UndoOrderCommandHandler) Handle(ctx context.Context, cmd UndoOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return h.deps.mutate(ctx, cmd.OrderID(), cmd.ActorID(),
		func(aggregate *order.Order, actor ports.Actor) error {
			return aggregate.Undo(actor.ID)
		})
}
