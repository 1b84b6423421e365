package commands

import (
	"context"

	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/core/ports"
)

// CompleteOrderCommandHandler moves an order into LISTO.
type CompleteOrderCommandHandler struct {
	deps orderActionDeps
}

// NewCompleteOrderCommandHandler creates a handler for marking orders ready.
func NewCompleteOrderCommandHandler(
	uowFactory OrderUoWFactory,
	actors ports.ActorRegistry,
	locks OrderLocker,
	dispatcher EventDispatcher,
) CompleteOrderCommandHandler {
	return CompleteOrderCommandHandler{
		deps: orderActionDeps{
			uowFactory: uowFactory,
			actors:     actors,
			locks:      locks,
			dispatcher: dispatcher,
		},
	}
}

// Handle processes the complete command. The transition is rejected with
// order.ErrInvalidTransition unless the order is in EN_PREPARACION.
func (h *CompleteOrderCommandHandler) Handle(ctx context.Context, cmd CompleteOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return h.deps.mutate(ctx, cmd.OrderID(), cmd.ActorID(),
		func(aggregate *order.Order, actor ports.Actor) error {
			return aggregate.Complete(actor.ID)
		})
}
