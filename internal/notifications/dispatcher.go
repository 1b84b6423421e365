// Package notifications fans order lifecycle events out to subscribed
// notifiers. Command handlers hand events to the dispatcher only after the
// producing transaction committed.
package notifications

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/core/ports"
)

const defaultNotifyTimeout = 5 * time.Second

// subscription pairs a notifier with its event-type filter. A nil filter
// receives every event type.
type subscription struct {
	notifier ports.Notifier
	types    map[order.EventType]struct{}
}

func (s subscription) wants(t order.EventType) bool {
	if s.types == nil {
		return true
	}
	_, ok := s.types[t]
	return ok
}

// Dispatcher delivers events to every subscribed notifier in subscription
// order. Delivery is best effort: a notifier error or panic is logged and
// the remaining notifiers still receive the event. Subscribing and
// unsubscribing are safe while dispatches are in flight.
type Dispatcher struct {
	logger  *slog.Logger
	timeout time.Duration

	mu            sync.RWMutex
	subscriptions []subscription
}

// NewDispatcher creates a dispatcher with no subscribers. A non-positive
// timeout falls back to the default per-notifier delivery timeout.
func NewDispatcher(logger *slog.Logger, timeout time.Duration) *Dispatcher {
	if timeout <= 0 {
		timeout = defaultNotifyTimeout
	}
	return &Dispatcher{
		logger:  logger.With("component", "notification_dispatcher"),
		timeout: timeout,
	}
}

// Subscribe adds a notifier for the given event types; with no types the
// notifier receives every event. A notifier already subscribed under the
// same name is replaced, keeping its position.
func (d *Dispatcher) Subscribe(n ports.Notifier, types ...order.EventType) {
	var filter map[order.EventType]struct{}
	if len(types) > 0 {
		filter = make(map[order.EventType]struct{}, len(types))
		for _, t := range types {
			filter[t] = struct{}{}
		}
	}
	sub := subscription{notifier: n, types: filter}

	d.mu.Lock()
	defer d.mu.Unlock()

	for i, existing := range d.subscriptions {
		if existing.notifier.Name() == n.Name() {
			d.subscriptions[i] = sub
			return
		}
	}
	d.subscriptions = append(d.subscriptions, sub)
}

// Unsubscribe removes the notifier with the given name. Removing an
// unknown name is a no-op.
func (d *Dispatcher) Unsubscribe(name string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	for i, existing := range d.subscriptions {
		if existing.notifier.Name() == name {
			d.subscriptions = append(d.subscriptions[:i], d.subscriptions[i+1:]...)
			return
		}
	}
}

// Subscribers returns the names of the subscribed notifiers in delivery order.
func (d *Dispatcher) Subscribers() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()

	names := make([]string, 0, len(d.subscriptions))
	for _, sub := range d.subscriptions {
		names = append(names, sub.notifier.Name())
	}
	return names
}

// Dispatch delivers each event to every subscriber. Errors never propagate
// to the caller; the command that produced the events already committed.
func (d *Dispatcher) Dispatch(ctx context.Context, events []order.Event) {
	if len(events) == 0 {
		return
	}

	d.mu.RLock()
	subscribers := append([]subscription(nil), d.subscriptions...)
	d.mu.RUnlock()

	for _, event := range events {
		for _, sub := range subscribers {
			if !sub.wants(event.Type) {
				continue
			}
			d.deliver(ctx, sub.notifier, event)
		}
	}
}

func (d *Dispatcher) deliver(ctx context.Context, n ports.Notifier, event order.Event) {
	notifyCtx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	defer func() {
		if r := recover(); r != nil {
			d.logger.ErrorContext(ctx, "Notifier panicked",
				"notifier", n.Name(),
				"event", event.Type.String(),
				"panic", r)
		}
	}()

	if err := n.Notify(notifyCtx, event); err != nil {
		d.logger.ErrorContext(ctx, "Notification delivery failed",
			"notifier", n.Name(),
			"event", event.Type.String(),
			"orderId", event.OrderID.String(),
			"error", err)
	}
}
