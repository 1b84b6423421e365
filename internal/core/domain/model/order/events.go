package order

import (
	"time"

	"restaurant/internal/core/domain/model/kernel"
)

// EventType enumerates the lifecycle events fanned out to subscribers.
type EventType int

const (
	// EventOrderCreated fires once when an order enters CREATED.
	EventOrderCreated EventType = iota + 1

	// EventOrderAdvanced fires when an order enters EN_PREPARACION.
	EventOrderAdvanced

	// EventOrderReady fires when an order enters LISTO, whether via
	// advance or complete.
	EventOrderReady

	// EventOrderDelivered fires when an order enters ENTREGADO.
	EventOrderDelivered

	// EventOrderCancelled fires when an order enters CANCELADO.
	EventOrderCancelled
)

// String returns the stable event name used in logs, webhooks, and queues.
func (t EventType) String() string {
	switch t {
	case EventOrderCreated:
		return "OrderCreated"
	case EventOrderAdvanced:
		return "OrderAdvanced"
	case EventOrderReady:
		return "OrderReady"
	case EventOrderDelivered:
		return "OrderDelivered"
	case EventOrderCancelled:
		return "OrderCancelled"
	default:
		return "Unknown"
	}
}

// Event is one lifecycle notification. Events are collected on the aggregate
// while a command executes and drained by the command handler after the
// transition is durably committed.
type Event struct {
	Type        EventType
	OrderID     kernel.UUID
	TableNumber int
	Status      Status
	Version     int64
	Reason      string
	OccurredAt  time.Time
}

// eventTypeFor maps a resulting status to its lifecycle event. The event is
// keyed by the state entered, not by the verb that caused it: complete and
// advance both fire OrderReady when they land on LISTO.
func eventTypeFor(s Status) (EventType, bool) {
	switch s {
	case InPreparation:
		return EventOrderAdvanced, true
	case Ready:
		return EventOrderReady, true
	case Delivered:
		return EventOrderDelivered, true
	case Cancelled:
		return EventOrderCancelled, true
	default:
		return 0, false
	}
}

// emit queues a lifecycle event for the state just entered.
func (o *Order) emit(t EventType, reason string, at time.Time) {
	o.pending = append(o.pending, Event{
		Type:        t,
		OrderID:     o.id,
		TableNumber: o.tableNumber,
		Status:      o.status,
		Version:     o.version,
		Reason:      reason,
		OccurredAt:  at,
	})
}

// TakeEvents drains and returns the lifecycle events queued since the order
// was loaded. Handlers call it exactly once, after the surrounding
// transaction commits.
func (o *Order) TakeEvents() []Event {
	events := o.pending
	o.pending = nil
	return events
}
