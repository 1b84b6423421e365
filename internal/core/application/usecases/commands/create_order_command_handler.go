package commands

import (
	"context"
	"fmt"

	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/core/ports"
)

// CreateOrderCommandHandler handles the business logic for opening orders.
// Resolves the acting waiter against the staff registry and prices every
// requested item from the catalog before building the aggregate.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	actors     ports.ActorRegistry
	catalog    ports.ProductCatalog
	dispatcher EventDispatcher
}

// NewCreateOrderCommandHandler creates a handler for order creation operations.
func NewCreateOrderCommandHandler(
	uowFactory OrderUoWFactory,
	actors ports.ActorRegistry,
	catalog ports.ProductCatalog,
	dispatcher EventDispatcher,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		actors:     actors,
		catalog:    catalog,
		dispatcher: dispatcher,
	}
}

// Handle processes the order creation command.
// Creates the order in CREATED status with a single initial history entry
// and dispatches the OrderCreated event after the transaction committed.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	waiter, err := h.actors.Resolve(ctx, cmd.WaiterID())
	if err != nil {
		return err
	}

	items := make([]order.Item, 0, len(cmd.Items()))
	for _, input := range cmd.Items() {
		product, err := h.catalog.Resolve(ctx, input.ProductID)
		if err != nil {
			return err
		}
		if !product.Available {
			return fmt.Errorf("%w: product %d is not available",
				order.ErrInvalidOrder, product.ID)
		}

		extras, err := order.NewExtras(input.Extras)
		if err != nil {
			return err
		}
		item, err := order.NewItem(product.ID, input.Quantity, product.PriceCents, extras)
		if err != nil {
			return err
		}
		items = append(items, item)
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := order.NewOrder(
		cmd.OrderID(), cmd.CustomerID(), cmd.WaiterID(), cmd.TableNumber(), items, waiter.ID)
	if err != nil {
		return err
	}

	if err = uow.OrderRepository().Add(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if h.dispatcher != nil {
		h.dispatcher.Dispatch(ctx, aggregate.TakeEvents())
	}
	return nil
}
