package commands

import (
	"errors"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrTableNumberIsInvalid  = errors.New("table number must be greater than 0")
	ErrItemsAreRequired      = errors.New("at least one item is required")
	ErrItemQuantityIsInvalid = errors.New("item quantity must be greater than 0")
)

// ItemInput names a requested product by id with a quantity and optional
// per-item extras. Prices are not part of the input; the handler resolves
// them from the catalog so clients cannot set their own.
type ItemInput struct {
	ProductID int64
	Quantity  int
	Extras    map[string]any
}

// CreateOrderCommand represents a request to open a new table order.
// The waiter taking the order is the acting staff member and is recorded
// as the actor of the initial history entry.
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID     kernel.UUID
	customerID  kernel.UUID
	waiterID    kernel.UUID
	tableNumber int
	items       []ItemInput

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to open a new order.
// Validates that all ids are constructed, the table number is positive and
// at least one item with a positive quantity was requested.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	customerID kernel.UUID,
	waiterID kernel.UUID,
	tableNumber int,
	items []ItemInput,
) (CreateOrderCommand, error) {
	orderCommand := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderCommand.setOrderID(orderID),
		orderCommand.setCustomerID(customerID),
		orderCommand.setWaiterID(waiterID),
		orderCommand.setTableNumber(tableNumber),
		orderCommand.setItems(items),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return orderCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateOrderCommandIsNotConstructed if validation fails.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the unique identifier for the new order.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// CustomerID returns the customer the order is opened for.
func (c CreateOrderCommand) CustomerID() kernel.UUID {
	return c.customerID
}

// WaiterID returns the waiter taking the order.
func (c CreateOrderCommand) WaiterID() kernel.UUID {
	return c.waiterID
}

// TableNumber returns the table the order is served at.
func (c CreateOrderCommand) TableNumber() int {
	return c.tableNumber
}

// Items returns the requested items.
func (c CreateOrderCommand) Items() []ItemInput {
	return c.items
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}

	c.customerID = customerID
	return nil
}

func (c *CreateOrderCommand) setWaiterID(waiterID kernel.UUID) error {
	if err := waiterID.Validate(); err != nil {
		return err
	}

	c.waiterID = waiterID
	return nil
}

func (c *CreateOrderCommand) setTableNumber(tableNumber int) error {
	if tableNumber <= 0 {
		return ErrTableNumberIsInvalid
	}

	c.tableNumber = tableNumber
	return nil
}

func (c *CreateOrderCommand) setItems(items []ItemInput) error {
	if len(items) == 0 {
		return ErrItemsAreRequired
	}
	for _, item := range items {
		if item.Quantity <= 0 {
			return ErrItemQuantityIsInvalid
		}
	}

	c.items = items
	return nil
}
