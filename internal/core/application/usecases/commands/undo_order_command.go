package commands

import (
	"errors"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/pkg/guard"
)

var ErrUndoOrderCommandIsNotConstructed = errors.New(
	"UndoOrderCommand must be created via NewUndoOrderCommand constructor",
)

// UndoOrderCommand requests reverting the last lifecycle command applied
// to an order. The undo itself is appended to the history, so the audit
// trail records both the mistake and its correction.
type UndoOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	actorID kernel.UUID

	guard guard.ConstructorGuard
}

// NewUndoOrderCommand creates a command to undo the last order mutation.
func NewUndoOrderCommand(orderID, actorID kernel.UUID) (UndoOrderCommand, error) {
	cmd := UndoOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setActorID(actorID),
	); err != nil {
		return UndoOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UndoOrderCommand) Validate() error {
	return c.guard.Validate(ErrUndoOrderCommandIsNotConstructed)
}

// OrderID returns the order to revert.
func (c UndoOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// ActorID returns the staff member requesting the undo.
func (c UndoOrderCommand) ActorID() kernel.UUID {
	return c.actorID
}

func (c *UndoOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *UndoOrderCommand) setActorID(actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return err
	}

	c.actorID = actorID
	return nil
}
