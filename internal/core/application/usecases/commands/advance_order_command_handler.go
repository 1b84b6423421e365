package commands

import (
	"context"

	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/core/ports"
)

// AdvanceOrderCommandHandler moves an order into EN_PREPARACION.
type AdvanceOrderCommandHandler struct {
	deps orderActionDeps
}

// NewAdvanceOrderCommandHandler creates a handler for starting preparation.
func NewAdvanceOrderCommandHandler(
	uowFactory OrderUoWFactory,
	actors ports.ActorRegistry,
	locks OrderLocker,
	dispatcher EventDispatcher,
) AdvanceOrderCommandHandler {
	return AdvanceOrderCommandHandler{
		deps: orderActionDeps{
			uowFactory: uowFactory,
			actors:     actors,
			locks:      locks,
			dispatcher: dispatcher,
		},
	}
}

// Handle processes the advance command. The transition is rejected with
// order.ErrInvalidTransition unless the order is in CREATED.
func (h *AdvanceOrderCommandHandler) Handle(ctx context.Context, cmd AdvanceOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return h.deps.mutate(ctx, cmd.OrderID(), cmd.ActorID(),
		func(aggregate *order.Order, actor ports.Actor) error {
			return aggregate.Advance(actor.ID)
		})
}
