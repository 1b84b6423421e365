package order

import (
	"time"

	"restaurant/internal/core/domain/model/kernel"
)

// CommandType enumerates the recorded state-changing requests.
type CommandType int

const (
	// CommandCreate records the creation of the order.
	CommandCreate CommandType = iota + 1

	// CommandAdvance records a one-step forward transition.
	CommandAdvance

	// CommandComplete records the EN_PREPARACION -> LISTO edge.
	CommandComplete

	// CommandDeliver records the LISTO -> ENTREGADO edge.
	CommandDeliver

	// CommandCancel records the transition to CANCELADO.
	CommandCancel

	// CommandUndo records the compensation of the previous command.
	CommandUndo
)

// String returns the stable name of the command type.
func (t CommandType) String() string {
	switch t {
	case CommandCreate:
		return "Create"
	case CommandAdvance:
		return "Advance"
	case CommandComplete:
		return "Complete"
	case CommandDeliver:
		return "Deliver"
	case CommandCancel:
		return "Cancel"
	case CommandUndo:
		return "Undo"
	default:
		return "Unknown"
	}
}

// CommandTypeFromName resolves a stable name back to its CommandType.
// Returns 0 for unknown names; callers validate.
func CommandTypeFromName(name string) CommandType {
	switch name {
	case "Create":
		return CommandCreate
	case "Advance":
		return CommandAdvance
	case "Complete":
		return CommandComplete
	case "Deliver":
		return CommandDeliver
	case "Cancel":
		return CommandCancel
	case "Undo":
		return CommandUndo
	default:
		return 0
	}
}

// Command is one recorded state-changing request. Ids are assigned from the
// order's version counter, strictly increasing per order and independent of
// wall-clock time, so history ordering is deterministic under clock skew.
//
// Payload carries command-specific detail (the cancel reason, for instance)
// and is opaque to the history mechanism. Undoes is zero except on Undo
// commands, where it references the compensated command's id.
type Command struct {
	ID         int64
	Type       CommandType
	Actor      kernel.UUID
	Payload    string
	Undoes     int64
	ExecutedAt time.Time
}

// Snapshot is the memento produced by a successful command: the order's state
// and item list at the moment the command was applied. Snapshots are
// immutable once taken; the item slice is deep-copied both ways.
type Snapshot struct {
	OrderID   kernel.UUID
	Status    Status
	Items     []Item
	Version   int64
	CommandID int64
	TakenAt   time.Time
}

// HistoryEntry pairs a command with the snapshot it produced. An order's
// history is the append-only, oldest-first sequence of these entries.
type HistoryEntry struct {
	Command  Command
	Snapshot Snapshot
}

// snapshotNow captures the order's current state as a memento for the
// command that just executed.
func (o *Order) snapshotNow(commandID int64, at time.Time) Snapshot {
	return Snapshot{
		OrderID:   o.id,
		Status:    o.status,
		Items:     copyItems(o.items),
		Version:   o.version,
		CommandID: commandID,
		TakenAt:   at,
	}
}

// record appends a command and its resulting snapshot to the history.
func (o *Order) record(cmd Command, at time.Time) {
	o.history = append(o.history, HistoryEntry{
		Command:  cmd,
		Snapshot: o.snapshotNow(cmd.ID, at),
	})
}

// History returns the order's command/snapshot pairs, oldest first. The
// returned slice is a copy; appending to the order later does not mutate
// previously returned values.
func (o *Order) History() []HistoryEntry {
	entries := make([]HistoryEntry, len(o.history))
	copy(entries, o.history)
	return entries
}
