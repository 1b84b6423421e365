package commands

import (
	"errors"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/pkg/guard"
)

var ErrRouteOrderCommandIsNotConstructed = errors.New(
	"RouteOrderCommand must be created via NewRouteOrderCommand constructor",
)

// RouteOrderCommand requests sending an order's items to the kitchen
// stations. Routing is a side effect in the outside world: once any item
// reached a station, the commands routed over can no longer be undone.
type RouteOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	actorID kernel.UUID

	guard guard.ConstructorGuard
}

// NewRouteOrderCommand creates a command to route an order to the kitchen.
func NewRouteOrderCommand(orderID, actorID kernel.UUID) (RouteOrderCommand, error) {
	cmd := RouteOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setActorID(actorID),
	); err != nil {
		return RouteOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RouteOrderCommand) Validate() error {
	return c.guard.Validate(ErrRouteOrderCommandIsNotConstructed)
}

// OrderID returns the order to route.
func (c RouteOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// ActorID returns the staff member routing the order.
func (c RouteOrderCommand) ActorID() kernel.UUID {
	return c.actorID
}

func (c *RouteOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *RouteOrderCommand) setActorID(actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return err
	}

	c.actorID = actorID
	return nil
}
