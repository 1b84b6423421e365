// Package notify provides in-process notifier implementations: structured
// log output, webhook delivery over HTTP and an in-memory recorder used by
// tests and local development.
package notify

import (
	"context"
	"log/slog"

	"restaurant/internal/core/domain/model/order"
)

// SlogNotifier writes every lifecycle event to the structured log. It is
// always subscribed in production so the log carries the full event stream.
type SlogNotifier struct {
	logger *slog.Logger
}

// NewSlogNotifier creates a notifier that logs events.
func NewSlogNotifier(logger *slog.Logger) *SlogNotifier {
	return &SlogNotifier{logger: logger.With("component", "order_events")}
}

// Name identifies the notifier in subscription management.
func (n *SlogNotifier) Name() string { return "slog" }

// Notify logs the event. It never fails.
func (n *SlogNotifier) Notify(ctx context.Context, event order.Event) error {
	n.logger.InfoContext(ctx, "Order event",
		"event", event.Type.String(),
		"orderId", event.OrderID.String(),
		"table", event.TableNumber,
		"status", event.Status,
		"version", event.Version,
		"reason", event.Reason)
	return nil
}
