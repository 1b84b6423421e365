package order

import (
	"errors"
	"fmt"

	"restaurant/internal/pkg/errs"
)

// ErrInvalidTransition is returned for any attempt to move an order along an
// edge that the lifecycle graph does not allow, including undo attempts that
// would land on an unreachable state.
var ErrInvalidTransition = errors.New("invalid order state transition")

// Status represents the lifecycle state of an order.
// It implements a state machine with a strict forward path and two cancel
// edges:
//
//	CREATED ──> EN_PREPARACION ──> LISTO ──> ENTREGADO
//	   │              │
//	   └──────────────┴──────> CANCELADO
//
// ENTREGADO and CANCELADO are terminal. LISTO and ENTREGADO cannot be
// cancelled. Status is a value object that validates transitions and provides
// the canonical string labels used on the wire and in storage.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Created is the initial status of every order.
	Created

	// InPreparation indicates the kitchen has the order.
	InPreparation

	// Ready indicates all items are prepared and the order awaits delivery.
	Ready

	// Delivered indicates the order reached the table. Terminal.
	Delivered

	// Cancelled indicates the order was abandoned before preparation
	// finished. Terminal.
	Cancelled
)

// getStatusStrings returns the canonical labels for all statuses, including
// Unknown. The labels are preserved from the system this service replaced and
// are what clients, the database, and subscribers see.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:       "UNKNOWN",
		Created:       "CREATED",
		InPreparation: "EN_PREPARACION",
		Ready:         "LISTO",
		Delivered:     "ENTREGADO",
		Cancelled:     "CANCELADO",
	}
}

// getValidStatusStrings returns labels for valid statuses only.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Created:       "CREATED",
		InPreparation: "EN_PREPARACION",
		Ready:         "LISTO",
		Delivered:     "ENTREGADO",
		Cancelled:     "CANCELADO",
	}
}

// StatusFromLabel resolves a canonical label back to its Status.
// Used when reconstructing orders from persistence or parsing requests.
func StatusFromLabel(label string) (Status, error) {
	for s, l := range getValidStatusStrings() {
		if l == label {
			return s, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status",
		fmt.Errorf("%q is not a known status label", label))
}

// Validate checks that the Status holds one of the five defined states.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the canonical label of the status. Implements fmt.Stringer
// and is safe to call on any Status value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// IsTerminal reports whether no further transition is possible.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// Next returns the status one step forward along the strict path.
//
// Valid steps:
//   - CREATED -> EN_PREPARACION
//   - EN_PREPARACION -> LISTO
//   - LISTO -> ENTREGADO
//
// Returns ErrInvalidTransition for terminal states and for Unknown.
func (s Status) Next() (Status, error) {
	switch s {
	case Created:
		return InPreparation, nil
	case InPreparation:
		return Ready, nil
	case Ready:
		return Delivered, nil
	default:
		return Unknown, fmt.Errorf("%w: %s has no next state", ErrInvalidTransition, s)
	}
}

// CanCancel reports whether the cancel edge exists from this status.
// Only CREATED and EN_PREPARACION orders can be cancelled.
func (s Status) CanCancel() bool {
	return s == Created || s == InPreparation
}

// Cancel returns Cancelled when the cancel edge exists, or
// ErrInvalidTransition otherwise.
func (s Status) Cancel() (Status, error) {
	if !s.CanCancel() {
		return Unknown, fmt.Errorf("%w: %s cannot be cancelled", ErrInvalidTransition, s)
	}
	return Cancelled, nil
}

// CanRoute reports whether kitchen routing may observe an order in this
// status. Routing is only meaningful before preparation finishes.
func (s Status) CanRoute() bool {
	return s == Created || s == InPreparation
}
