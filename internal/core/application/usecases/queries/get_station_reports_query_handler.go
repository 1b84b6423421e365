package queries

import (
	"context"

	"restaurant/internal/core/domain/services"
)

// GetStationReportsQueryHandler reads station load from the in-process
// router. Station queues live in memory, so no storage round trip is made.
type GetStationReportsQueryHandler struct {
	router *services.KitchenRouter
}

// NewGetStationReportsQueryHandler creates a handler for station reports.
func NewGetStationReportsQueryHandler(router *services.KitchenRouter) GetStationReportsQueryHandler {
	return GetStationReportsQueryHandler{router: router}
}

// Handle executes the query and returns one report per station in the
// router's priority order, overflow last.
func (h GetStationReportsQueryHandler) Handle(
	_ context.Context,
	query GetStationReportsQuery,
) ([]GetStationReportsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	reports := h.router.Reports()
	responses := make([]GetStationReportsQueryResponse, 0, len(reports))
	for _, report := range reports {
		responses = append(responses, GetStationReportsQueryResponse{
			Station:     report.Station,
			Categories:  report.Categories,
			QueueLength: report.QueueLength,
			Capacity:    report.Capacity,
			Utilization: report.Utilization,
		})
	}

	return responses, nil
}
