package order

import (
	"errors"
	"fmt"
	"time"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not
	// created through NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

	// ErrInvalidOrder is returned when a draft cannot become an order:
	// no items, malformed items, or unknown product references.
	ErrInvalidOrder = errors.New("invalid order")
)

// Order is the aggregate root for a restaurant order. It owns the canonical
// order record, enforces the lifecycle state machine, and carries the
// append-only command/snapshot history that makes every state change
// auditable and undoable.
//
// Order follows these invariants:
//   - status only ever holds a value reachable from CREATED under the
//     lifecycle graph (see Status)
//   - version strictly increases with each accepted command, never decreases
//   - history is append-only; snapshots are never mutated after capture
//   - command ids equal the version they produced, so history ordering is
//     deterministic without consulting the clock
//
// The struct uses private fields; all mutation goes through validated
// methods. Instances are not safe for concurrent mutation: callers serialize
// per-order operations (the application layer holds a keyed lock).
type Order struct {
	id          kernel.UUID
	customerID  kernel.UUID
	waiterID    kernel.UUID
	tableNumber int

	items   []Item
	status  Status
	version int64

	createdAt time.Time
	updatedAt time.Time

	// history is the ordered (Command, Snapshot) audit trail, oldest first.
	history []HistoryEntry

	// routedVersion is the aggregate version at which kitchen routing last
	// observed this order, 0 when never routed. Undo refuses to erase state
	// the kitchen already acted on.
	routedVersion int64

	// pending holds lifecycle events queued since load, drained by TakeEvents.
	pending []Event

	isConstructed bool
}

// NewOrder creates an order in CREATED at version 1 from an already-priced
// item list. The creating command is recorded in the history together with
// the first snapshot, and an OrderCreated event is queued.
//
// Product resolution happens before this constructor: each Item carries the
// unit price captured from the catalog at creation time. A draft with no
// items or with an invalid item fails with ErrInvalidOrder.
func NewOrder(
	id kernel.UUID,
	customerID kernel.UUID,
	waiterID kernel.UUID,
	tableNumber int,
	items []Item,
	actor kernel.UUID,
) (*Order, error) {
	if err := errors.Join(id.Validate(), customerID.Validate(), waiterID.Validate(), actor.Validate()); err != nil {
		return nil, err
	}
	if tableNumber <= 0 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidOrder,
			errs.NewValueIsInvalidErrorWithCause("tableNumber",
				fmt.Errorf("%d is not greater than 0", tableNumber)))
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: at least one item is required", ErrInvalidOrder)
	}
	for idx, item := range items {
		if err := item.Validate(); err != nil {
			return nil, fmt.Errorf("%w: item %d: %v", ErrInvalidOrder, idx, err)
		}
	}

	now := time.Now()
	o := &Order{
		id:            id,
		customerID:    customerID,
		waiterID:      waiterID,
		tableNumber:   tableNumber,
		items:         copyItems(items),
		status:        Created,
		version:       1,
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}

	o.record(Command{
		ID:         o.version,
		Type:       CommandCreate,
		Actor:      actor,
		ExecutedAt: now,
	}, now)
	o.emit(EventOrderCreated, "", now)

	return o, nil
}

// RestoreOrder reconstructs an order from persistence without re-running
// creation rules. The history must contain at least the creating entry and
// the version must match the latest command id.
func RestoreOrder(
	id kernel.UUID,
	customerID kernel.UUID,
	waiterID kernel.UUID,
	tableNumber int,
	items []Item,
	status Status,
	version int64,
	createdAt time.Time,
	updatedAt time.Time,
	routedVersion int64,
	history []HistoryEntry,
) (*Order, error) {
	if err := errors.Join(id.Validate(), status.Validate()); err != nil {
		return nil, err
	}
	if version < 1 {
		return nil, errs.NewValueIsInvalidErrorWithCause("version",
			fmt.Errorf("%d is not a positive version", version))
	}
	if len(history) == 0 {
		return nil, errs.NewValueIsRequiredError("history")
	}
	if last := history[len(history)-1].Command.ID; last != version {
		return nil, errs.NewValueIsInvalidErrorWithCause("history",
			fmt.Errorf("latest command id %d does not match version %d", last, version))
	}

	entries := make([]HistoryEntry, len(history))
	copy(entries, history)

	return &Order{
		id:            id,
		customerID:    customerID,
		waiterID:      waiterID,
		tableNumber:   tableNumber,
		items:         copyItems(items),
		status:        status,
		version:       version,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
		routedVersion: routedVersion,
		history:       entries,
		isConstructed: true,
	}, nil
}

// Validate ensures the Order was produced by NewOrder or RestoreOrder.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// CustomerID returns the ordering customer's identifier.
func (o *Order) CustomerID() kernel.UUID {
	return o.customerID
}

// WaiterID returns the assigned waiter's identifier.
func (o *Order) WaiterID() kernel.UUID {
	return o.waiterID
}

// TableNumber returns the table the order belongs to.
func (o *Order) TableNumber() int {
	return o.tableNumber
}

// Items returns a copy of the order's item list in order.
func (o *Order) Items() []Item {
	return copyItems(o.items)
}

// Status returns the current lifecycle state.
func (o *Order) Status() Status {
	return o.status
}

// Version returns the monotonic version, incremented per accepted command.
func (o *Order) Version() int64 {
	return o.version
}

// CreatedAt returns the creation timestamp.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// UpdatedAt returns the timestamp of the last accepted command.
func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// RoutedVersion returns the version at which kitchen routing last observed
// the order, 0 when it never did.
func (o *Order) RoutedVersion() int64 {
	return o.routedVersion
}

// TotalCents sums the item subtotals using the unit prices captured at
// creation time.
func (o *Order) TotalCents() int64 {
	var total int64
	for _, item := range o.items {
		total += item.SubtotalCents()
	}
	return total
}

// Advance moves the order exactly one step forward along the strict path
// CREATED -> EN_PREPARACION -> LISTO -> ENTREGADO. Fails with
// ErrInvalidTransition when the order is terminal.
func (o *Order) Advance(actor kernel.UUID) error {
	next, err := o.status.Next()
	if err != nil {
		return err
	}
	return o.transition(next, CommandAdvance, actor, "")
}

// Complete is the semantic alias for the EN_PREPARACION -> LISTO edge.
// Calling it from any other state fails with ErrInvalidTransition.
func (o *Order) Complete(actor kernel.UUID) error {
	if o.status != InPreparation {
		return fmt.Errorf("%w: complete requires %s, order is %s",
			ErrInvalidTransition, InPreparation, o.status)
	}
	return o.transition(Ready, CommandComplete, actor, "")
}

// Deliver is the semantic alias for the LISTO -> ENTREGADO edge.
// Calling it from any other state fails with ErrInvalidTransition.
func (o *Order) Deliver(actor kernel.UUID) error {
	if o.status != Ready {
		return fmt.Errorf("%w: deliver requires %s, order is %s",
			ErrInvalidTransition, Ready, o.status)
	}
	return o.transition(Delivered, CommandDeliver, actor, "")
}

// Cancel moves the order to CANCELADO. Allowed only from CREATED or
// EN_PREPARACION; LISTO and ENTREGADO orders cannot be cancelled.
// The reason is recorded on the Cancel command's payload.
func (o *Order) Cancel(reason string, actor kernel.UUID) error {
	next, err := o.status.Cancel()
	if err != nil {
		return err
	}
	return o.transition(next, CommandCancel, actor, reason)
}

// transition applies an already-validated status change as one atomic unit:
// mutate, bump version, record command and snapshot, queue the event.
func (o *Order) transition(next Status, cmdType CommandType, actor kernel.UUID, payload string) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if err := actor.Validate(); err != nil {
		return err
	}

	now := time.Now()
	o.status = next
	o.version++
	o.updatedAt = now

	o.record(Command{
		ID:         o.version,
		Type:       cmdType,
		Actor:      actor,
		Payload:    payload,
		ExecutedAt: now,
	}, now)

	if eventType, ok := eventTypeFor(next); ok {
		o.emit(eventType, payload, now)
	}

	return nil
}

// Undo restores the order to the snapshot preceding the most recent command
// and records the compensation as a new Undo command with a fresh snapshot.
// History is never rewritten; undo only appends.
//
// Undo is refused with ErrInvalidTransition when:
//   - the most recent command is the creating command (nothing precedes it)
//   - kitchen routing has observed the order at or after the command being
//     undone, so restoring would erase state a station already acted on
func (o *Order) Undo(actor kernel.UUID) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if err := actor.Validate(); err != nil {
		return err
	}
	if len(o.history) < 2 {
		return fmt.Errorf("%w: the creating command cannot be undone", ErrInvalidTransition)
	}

	last := o.history[len(o.history)-1].Command
	if o.routedVersion >= last.ID {
		return fmt.Errorf("%w: command %d was already routed to the kitchen", ErrInvalidTransition, last.ID)
	}

	restore := o.history[len(o.history)-2].Snapshot

	now := time.Now()
	o.status = restore.Status
	o.items = copyItems(restore.Items)
	o.version++
	o.updatedAt = now

	o.record(Command{
		ID:         o.version,
		Type:       CommandUndo,
		Actor:      actor,
		Undoes:     last.ID,
		ExecutedAt: now,
	}, now)

	return nil
}

// MarkRouted records that kitchen routing observed the order at its current
// version. Called by the routing use case after station assignment succeeds.
func (o *Order) MarkRouted() {
	o.routedVersion = o.version
}

// IsEqual compares two orders by identifier.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}
