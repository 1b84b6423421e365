package ports

import (
	"context"
	"errors"

	"restaurant/internal/core/domain/model/kernel"
)

// ErrUnknownActor is returned when a command names an actor the registry
// does not carry.
var ErrUnknownActor = errors.New("unknown actor")

// Role classifies who may drive an order through its lifecycle.
type Role string

const (
	RoleWaiter  Role = "waiter"
	RoleChef    Role = "chef"
	RoleCashier Role = "cashier"
	RoleAdmin   Role = "admin"
)

// Actor identifies a member of staff acting on an order. Every lifecycle
// command records the resolved actor in the audit history.
type Actor struct {
	ID   kernel.UUID
	Name string
	Role Role
}

// ActorRegistry resolves actor ids to staff records. Commands resolve the
// acting staff member before touching the aggregate; resolution failure
// aborts the command with ErrUnknownActor.
type ActorRegistry interface {
	// Resolve returns the actor record for the given id.
	Resolve(ctx context.Context, id kernel.UUID) (Actor, error)
}
