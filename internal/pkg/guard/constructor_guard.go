// Package guard implements a defensive construction check for value objects,
// entities, and commands. Embedding a ConstructorGuard in a struct makes the
// zero value detectably invalid: only instances produced by the designated
// constructor pass Validate.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific
// validation error is supplied for an unconstructed object.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard marks whether its enclosing object went through its
// constructor. The zero value fails validation; NewConstructorGuard passes.
//
// Example:
//
//	type Draft struct {
//	    items []Item
//	    guard guard.ConstructorGuard
//	}
//
//	func NewDraft(items []Item) (Draft, error) {
//	    if len(items) == 0 {
//	        return Draft{}, errors.New("at least one item is required")
//	    }
//	    return Draft{items: items, guard: guard.NewConstructorGuard()}, nil
//	}
//
//	func (d Draft) Validate() error {
//	    return d.guard.Validate(ErrDraftIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard marking the enclosing object as
// properly constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil for a constructed guard. For a zero-value guard it
// returns validationError, or ErrDefaultConstructorGuard when validationError
// is nil.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
