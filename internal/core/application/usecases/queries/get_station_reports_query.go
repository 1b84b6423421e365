package queries

import (
	"errors"

	"restaurant/internal/pkg/guard"
)

var ErrGetStationReportsQueryIsNotConstructed = errors.New(
	"GetStationReportsQuery must be created via NewGetStationReportsQuery constructor",
)

// GetStationReportsQuery retrieves the current load of every kitchen
// station for the expeditor display.
type GetStationReportsQuery struct {
	guard guard.ConstructorGuard
}

// NewGetStationReportsQuery creates a query for station load reports.
func NewGetStationReportsQuery() GetStationReportsQuery {
	return GetStationReportsQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetStationReportsQuery) Validate() error {
	return q.guard.Validate(ErrGetStationReportsQueryIsNotConstructed)
}

// GetStationReportsQueryResponse represents one station's current load.
type GetStationReportsQueryResponse struct {
	Station     string
	Categories  []string
	QueueLength int
	Capacity    int
	Utilization float64
}
