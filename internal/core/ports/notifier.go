package ports

import (
	"context"

	"restaurant/internal/core/domain/model/order"
)

// Notifier receives order lifecycle events after the transaction that
// produced them committed. A failing notifier never fails the command;
// the dispatcher logs and moves on to the next subscriber.
type Notifier interface {
	// Name identifies the notifier in logs and subscription management.
	Name() string

	// Notify delivers a single lifecycle event.
	Notify(ctx context.Context, event order.Event) error
}
