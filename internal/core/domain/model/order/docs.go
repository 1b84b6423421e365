// Package order provides domain entities and business logic for order
// management in the restaurant system. It implements the Order aggregate root
// with lifecycle management, state transitions, and an append-only
// command/snapshot history.
//
// The package includes:
//   - Order: The aggregate root that owns identity, items, lifecycle, and history
//   - Status: A state machine enforcing the strict lifecycle path
//   - Item/Extras: Validated order lines with price snapshots and bounded extras
//   - Command/Snapshot: The auditable, undoable history of every state change
//   - Event: Lifecycle notifications drained by command handlers after commit
//
// Key business rules:
//   - Orders must have at least one valid, catalog-resolved item
//   - Status follows CREATED -> EN_PREPARACION -> LISTO -> ENTREGADO, with
//     cancellation possible only from the first two states
//   - Every accepted command appends a command/snapshot pair; history is
//     never rewritten, undo appends a compensating command instead
//   - The version counter strictly increases and doubles as the command id
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package order
