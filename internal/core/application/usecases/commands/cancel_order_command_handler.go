package commands

import (
	"context"

	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/core/ports"
)

// CancelOrderCommandHandler cancels an order that is not yet ready.
type CancelOrderCommandHandler struct {
	deps orderActionDeps
}

// NewCancelOrderCommandHandler creates a handler for order cancellation.
func NewCancelOrderCommandHandler(
	uowFactory OrderUoWFactory,
	actors ports.ActorRegistry,
	locks OrderLocker,
	dispatcher EventDispatcher,
) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		deps: orderActionDeps{
			uowFactory: uowFactory,
			actors:     actors,
			locks:      locks,
			dispatcher: dispatcher,
		},
	}
}

// Handle processes the cancel command. Cancellation is rejected with
// order.ErrInvalidTransition once the order reached LISTO.
func (h *CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return h.deps.mutate(ctx, cmd.OrderID(), cmd.ActorID(),
		func(aggregate *order.Order, actor ports.Actor) error {
			return aggregate.Cancel(cmd.Reason(), actor.ID)
		})
}
