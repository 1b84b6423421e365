// Package ports defines the contracts between the application core and
// infrastructure adapters: persistence, the menu source, actor directory
// and outbound notifications. Dependency direction always points inward.
package ports

import (
	"context"
	"errors"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"
)

// ErrStorageUnavailable wraps infrastructure failures of the persistence
// layer so callers can distinguish them from domain rule violations.
var ErrStorageUnavailable = errors.New("storage unavailable")

// OrderRepository defines the persistence contract for order aggregates.
// Implementations persist the order together with its full command history
// and snapshots so restored aggregates can still undo.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate, appending
	// any history entries recorded since the last save.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier, with the
	// complete command history needed to replay and undo.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetAllActive retrieves every order not yet in a terminal state
	// (ENTREGADO or CANCELADO), oldest first.
	GetAllActive(ctx context.Context) ([]*order.Order, error)
}
