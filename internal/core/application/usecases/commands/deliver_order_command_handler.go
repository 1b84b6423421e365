package commands

import (
	"context"

	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/core/ports"
)

// DeliverOrderCommandHandler moves an order into ENTREGADO.
type DeliverOrderCommandHandler struct {
	deps orderActionDeps
}

// NewDeliverOrderCommandHandler creates a handler for delivering orders.
func NewDeliverOrderCommandHandler(
	uowFactory OrderUoWFactory,
	actors ports.ActorRegistry,
	locks OrderLocker,
	dispatcher EventDispatcher,
) DeliverOrderCommandHandler {
	return DeliverOrderCommandHandler{
		deps: orderActionDeps{
			uowFactory: uowFactory,
			actors:     actors,
			locks:      locks,
			dispatcher: dispatcher,
		},
	}
}

// Handle processes the deliver command. The transition is rejected with
// order.ErrInvalidTransition unless the order is in LISTO.
func (h *DeliverOrderCommandHandler) Handle(ctx context.Context, cmd DeliverOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return h.deps.mutate(ctx, cmd.OrderID(), cmd.ActorID(),
		func(aggregate *order.Order, actor ports.Actor) error {
			return aggregate.Deliver(actor.ID)
		})
}
