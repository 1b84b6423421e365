package queries

import (
	"errors"
	"strings"

	"restaurant/internal/pkg/guard"
)

var ErrSearchMenuQueryIsNotConstructed = errors.New(
	"SearchMenuQuery must be created via NewSearchMenuQuery constructor",
)

// SearchMenuQuery retrieves available products matching a free-text term
// against product names and category labels.
type SearchMenuQuery struct { //nolint:recvcheck //using for validation
	term string

	guard guard.ConstructorGuard
}

// NewSearchMenuQuery creates a menu search query. An empty term is valid
// and matches every available product.
func NewSearchMenuQuery(term string) SearchMenuQuery {
	return SearchMenuQuery{
		term:  strings.TrimSpace(term),
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the query was created through the constructor.
func (q SearchMenuQuery) Validate() error {
	return q.guard.Validate(ErrSearchMenuQueryIsNotConstructed)
}

// Term returns the normalized search term.
func (q SearchMenuQuery) Term() string {
	return q.term
}
