package http

import (
	"errors"
	"net/http"
	"time"

	"restaurant/internal/adapters/out/menucache"
	"restaurant/internal/core/application/usecases/queries"
	"restaurant/internal/core/domain/model/kitchen"
	"restaurant/internal/core/domain/model/menu"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/core/domain/services"
	"restaurant/internal/core/ports"
	"restaurant/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// ErrorResponse is the JSON body returned for every failed request.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// NewOrderRequest is the body of POST /api/v1/orders.
type NewOrderRequest struct {
	CustomerID  string             `json:"customerId"`
	WaiterID    string             `json:"waiterId"`
	TableNumber int                `json:"tableNumber"`
	Items       []NewOrderItem     `json:"items"`
}

// NewOrderItem is one requested line of a new order. Extras carry
// free-form per-item options such as "sin_hielo" or a kitchen note.
type NewOrderItem struct {
	ProductID int64          `json:"productId"`
	Quantity  int            `json:"quantity"`
	Extras    map[string]any `json:"extras,omitempty"`
}

// ActionRequest is the body of the lifecycle endpoints
// (advance, complete, deliver, undo, route).
type ActionRequest struct {
	ActorID string `json:"actorId"`
}

// CancelRequest is the body of POST /api/v1/orders/:id/cancel.
type CancelRequest struct {
	ActorID string `json:"actorId"`
	Reason  string `json:"reason"`
}

// ActiveOrder is one row of GET /api/v1/orders/active.
type ActiveOrder struct {
	ID          string    `json:"id"`
	TableNumber int       `json:"tableNumber"`
	Status      string    `json:"status"`
	Version     int64     `json:"version"`
	TotalCents  int64     `json:"totalCents"`
	CreatedAt   time.Time `json:"createdAt"`
}

// HistoryEntry is one row of GET /api/v1/orders/:id/history.
type HistoryEntry struct {
	CommandID   int64     `json:"commandId"`
	Type        string    `json:"type"`
	Actor       string    `json:"actor"`
	Payload     string    `json:"payload,omitempty"`
	Undoes      int64     `json:"undoes,omitempty"`
	StatusAfter string    `json:"statusAfter"`
	ExecutedAt  time.Time `json:"executedAt"`
}

// StationReport is one row of GET /api/v1/stations.
type StationReport struct {
	Station     string   `json:"station"`
	Categories  []string `json:"categories"`
	QueueLength int      `json:"queueLength"`
	Capacity    int      `json:"capacity"`
	Utilization float64  `json:"utilization"`
}

func stationReportFromDomain(r queries.GetStationReportsQueryResponse) StationReport {
	return StationReport{
		Station:     r.Station,
		Categories:  r.Categories,
		QueueLength: r.QueueLength,
		Capacity:    r.Capacity,
		Utilization: r.Utilization,
	}
}

// RouteReport is the body returned by POST /api/v1/orders/:id/route.
// Partial success is expected: items that no station could take carry an
// error message instead of a station name.
type RouteReport struct {
	OrderID string       `json:"orderId"`
	Items   []RoutedItem `json:"items"`
}

// RoutedItem is the per-item outcome of a routing call.
type RoutedItem struct {
	ItemIndex int    `json:"itemIndex"`
	ProductID int64  `json:"productId"`
	Category  string `json:"category,omitempty"`
	Station   string `json:"station,omitempty"`
	Error     string `json:"error,omitempty"`
}

func routeReportFromDomain(result services.RouteResult) RouteReport {
	report := RouteReport{
		OrderID: result.OrderID.String(),
		Items:   make([]RoutedItem, 0, len(result.Items)),
	}
	for _, item := range result.Items {
		routed := RoutedItem{
			ItemIndex: item.ItemIndex,
			ProductID: item.ProductID,
			Category:  item.Category,
			Station:   item.Station,
		}
		if item.Err != nil {
			routed.Error = item.Err.Error()
		}
		report.Items = append(report.Items, routed)
	}
	return report
}

// MenuResponse is the body of GET /api/v1/menu. Stale marks a payload
// served past its freshness window because the menu source was down.
type MenuResponse struct {
	Categories []MenuCategory `json:"categories"`
	LoadedAt   time.Time      `json:"loadedAt"`
	Stale      bool           `json:"stale"`
}

// MenuCategory groups the products of one menu section.
type MenuCategory struct {
	Name     string        `json:"name"`
	Products []MenuProduct `json:"products"`
}

// MenuProduct is one sellable product.
type MenuProduct struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Category    string `json:"category"`
	PriceCents  int64  `json:"priceCents"`
	Available   bool   `json:"available"`
}

func menuProductFromDomain(p menu.Product) MenuProduct {
	return MenuProduct{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Category:    p.Category,
		PriceCents:  p.PriceCents,
		Available:   p.Available,
	}
}

func menuResponseFromDomain(m menu.Menu) MenuResponse {
	response := MenuResponse{
		Categories: make([]MenuCategory, 0, len(m.Categories)),
		LoadedAt:   m.LoadedAt,
		Stale:      m.Stale,
	}
	for _, category := range m.Categories {
		products := make([]MenuProduct, 0, len(category.Products))
		for _, product := range category.Products {
			products = append(products, menuProductFromDomain(product))
		}
		response.Categories = append(response.Categories, MenuCategory{
			Name:     category.Name,
			Products: products,
		})
	}
	return response
}

// CacheStats is the body of GET /api/v1/menu/stats.
type CacheStats struct {
	Hits        int64 `json:"hits"`
	Misses      int64 `json:"misses"`
	StaleServes int64 `json:"staleServes"`
	Refreshes   int64 `json:"refreshes"`
}

func cacheStatsFromDomain(s ports.MenuCacheStats) CacheStats {
	return CacheStats{
		Hits:        s.Hits,
		Misses:      s.Misses,
		StaleServes: s.StaleServes,
		Refreshes:   s.Refreshes,
	}
}

// writeError maps domain and port failure classes to HTTP status codes.
func writeError(ctx echo.Context, err error) error {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		status = http.StatusNotFound
	case errors.Is(err, ports.ErrUnknownActor):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, order.ErrInvalidTransition):
		status = http.StatusConflict
	case errors.Is(err, kitchen.ErrRoutingCapacityExceeded):
		status = http.StatusConflict
	case errors.Is(err, order.ErrInvalidOrder):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, ports.ErrStorageUnavailable),
		errors.Is(err, menucache.ErrSourceUnavailable):
		status = http.StatusServiceUnavailable
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		status = http.StatusBadRequest
	}

	return ctx.JSON(status, ErrorResponse{Code: status, Message: err.Error()})
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, ErrorResponse{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}
