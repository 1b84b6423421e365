package commands

import (
	"context"

	"restaurant/internal/core/domain/services"
	"restaurant/internal/core/ports"
)

// RouteOrderCommandHandler sends an order's items through the kitchen
// router. When at least one item reaches a station the aggregate is marked
// routed, which freezes the history recorded so far against undo.
type RouteOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	actors     ports.ActorRegistry
	locks      OrderLocker
	router     *services.KitchenRouter
	catalog    ports.ProductCatalog
}

// NewRouteOrderCommandHandler creates a handler for kitchen routing.
func NewRouteOrderCommandHandler(
	uowFactory OrderUoWFactory,
	actors ports.ActorRegistry,
	locks OrderLocker,
	router *services.KitchenRouter,
	catalog ports.ProductCatalog,
) RouteOrderCommandHandler {
	return RouteOrderCommandHandler{
		uowFactory: uowFactory,
		actors:     actors,
		locks:      locks,
		router:     router,
		catalog:    catalog,
	}
}

// Handle processes the route command and reports the per-item outcome.
// Items that no station could take carry their error in the result; items
// routed in an earlier call keep their station without re-enqueueing.
func (h *RouteOrderCommandHandler) Handle(
	ctx context.Context, cmd RouteOrderCommand,
) (services.RouteResult, error) {
	if err := cmd.Validate(); err != nil {
		return services.RouteResult{}, err
	}

	if _, err := h.actors.Resolve(ctx, cmd.ActorID()); err != nil {
		return services.RouteResult{}, err
	}

	if h.locks != nil {
		key := cmd.OrderID().String()
		h.locks.Lock(key)
		defer h.locks.Unlock(key)
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return services.RouteResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()
	aggregate, err := repo.Get(ctx, cmd.OrderID())
	if err != nil {
		return services.RouteResult{}, err
	}

	result, err := h.router.Route(ctx, aggregate, h.catalog)
	if err != nil {
		return services.RouteResult{}, err
	}

	routedAny := false
	for _, item := range result.Items {
		if item.Err == nil {
			routedAny = true
			break
		}
	}
	if routedAny {
		aggregate.MarkRouted()
		if err = repo.Update(ctx, aggregate); err != nil {
			return services.RouteResult{}, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return services.RouteResult{}, err
	}

	return result, nil
}
