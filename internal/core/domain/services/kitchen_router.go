package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/kitchen"
	"restaurant/internal/core/domain/model/order"
)

// ErrNoStationsConfigured is returned when a router is built without any
// station chain to walk.
var ErrNoStationsConfigured = errors.New("no stations configured")

// CategoryResolver resolves a product reference to its menu category.
// The router consumes it to classify items; the catalog adapter provides it.
type CategoryResolver interface {
	CategoryOf(ctx context.Context, productID int64) (string, error)
}

// ItemRoute is the per-item outcome of a routing call. Exactly one of
// Station or Err is meaningful: a routed item names its station, a failed
// item carries its error (kitchen.ErrRoutingCapacityExceeded when every
// candidate, including overflow, was full).
type ItemRoute struct {
	ItemIndex int
	ProductID int64
	Category  string
	Station   string
	Err       error
}

// RouteResult reports a routing call item by item. Partial success is
// expected: one full station fails only the items it would have taken.
type RouteResult struct {
	OrderID kernel.UUID
	Items   []ItemRoute
}

// Failed reports whether any item could not be routed.
func (r RouteResult) Failed() bool {
	for _, item := range r.Items {
		if item.Err != nil {
			return true
		}
	}
	return false
}

// KitchenRouter assigns order items to preparation stations. Stations form
// an ordered chain walked per item: the first station whose category filter
// accepts the item and that has remaining capacity takes it; items nothing
// accepts fall through to the designated overflow station.
//
// The router tracks an item-to-station assignment map per order, so routing
// the same order twice never re-enqueues or double-counts items.
//
// Business rules:
//   - Only orders in CREATED or EN_PREPARACION may be routed
//   - Station priority is the configured order of the chain
//   - Per-item failure does not abort the call; other items still route
//
// KitchenRouter is safe for concurrent use.
type KitchenRouter struct {
	stations []*kitchen.Station
	overflow *kitchen.Station

	mu sync.Mutex
	// assigned maps order id -> item index -> station name.
	assigned map[string]map[int]string
}

// NewKitchenRouter creates a router over an ordered station chain and a
// designated overflow station. The overflow station may also appear in the
// chain; it is consulted last either way.
func NewKitchenRouter(stations []*kitchen.Station, overflow *kitchen.Station) (*KitchenRouter, error) {
	if len(stations) == 0 {
		return nil, ErrNoStationsConfigured
	}
	for _, s := range stations {
		if err := s.Validate(); err != nil {
			return nil, err
		}
	}
	if err := overflow.Validate(); err != nil {
		return nil, err
	}

	return &KitchenRouter{
		stations: stations,
		overflow: overflow,
		assigned: make(map[string]map[int]string),
	}, nil
}

// Route walks the station chain for each item of the order. Items already
// assigned from a previous call keep their station and are not re-enqueued.
// Returns order.ErrInvalidTransition when the order's state does not admit
// routing (LISTO, ENTREGADO, CANCELADO).
func (r *KitchenRouter) Route(ctx context.Context, o *order.Order, categories CategoryResolver) (RouteResult, error) {
	if err := o.Validate(); err != nil {
		return RouteResult{}, err
	}
	if !o.Status().CanRoute() {
		return RouteResult{}, fmt.Errorf("%w: cannot route order in %s",
			order.ErrInvalidTransition, o.Status())
	}

	orderKey := o.ID().String()
	result := RouteResult{OrderID: o.ID()}

	r.mu.Lock()
	defer r.mu.Unlock()

	assignments := r.assigned[orderKey]
	if assignments == nil {
		assignments = make(map[int]string)
		r.assigned[orderKey] = assignments
	}

	for idx, item := range o.Items() {
		route := ItemRoute{ItemIndex: idx, ProductID: item.ProductID()}

		if station, ok := assignments[idx]; ok {
			route.Station = station
			result.Items = append(result.Items, route)
			continue
		}

		category, err := categories.CategoryOf(ctx, item.ProductID())
		if err != nil {
			route.Err = err
			result.Items = append(result.Items, route)
			continue
		}
		route.Category = category

		ticket := kitchen.Ticket{
			OrderID:   o.ID(),
			ItemIndex: idx,
			ProductID: item.ProductID(),
			Quantity:  item.Quantity(),
		}

		if station := r.accept(category, ticket); station != "" {
			assignments[idx] = station
			route.Station = station
		} else {
			route.Err = fmt.Errorf("%w: product %d (%s)",
				kitchen.ErrRoutingCapacityExceeded, item.ProductID(), category)
		}
		result.Items = append(result.Items, route)
	}

	return result, nil
}

// accept walks the chain in priority order and falls back to overflow.
// Returns the accepting station's name, or "" when everything was full.
func (r *KitchenRouter) accept(category string, t kitchen.Ticket) string {
	for _, s := range r.stations {
		if !s.Accepts(category) {
			continue
		}
		if s.TryAccept(t) {
			return s.Name()
		}
	}

	if r.overflow.TryAccept(t) {
		return r.overflow.Name()
	}
	return ""
}

// Assignments returns a copy of the item-to-station map recorded for an
// order; empty when the order was never routed.
func (r *KitchenRouter) Assignments(orderID kernel.UUID) map[int]string {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make(map[int]string, len(r.assigned[orderID.String()]))
	for idx, station := range r.assigned[orderID.String()] {
		out[idx] = station
	}
	return out
}

// Reports returns a load report per station in chain order, with the
// overflow station appended when it is not part of the chain.
func (r *KitchenRouter) Reports() []kitchen.Report {
	reports := make([]kitchen.Report, 0, len(r.stations)+1)
	inChain := false
	for _, s := range r.stations {
		if s == r.overflow {
			inChain = true
		}
		reports = append(reports, s.Report())
	}
	if !inChain {
		reports = append(reports, r.overflow.Report())
	}
	return reports
}

// Station returns the named station, chain or overflow, for consumers that
// acknowledge tickets. Returns nil when no station carries the name.
func (r *KitchenRouter) Station(name string) *kitchen.Station {
	for _, s := range r.stations {
		if s.Name() == name {
			return s
		}
	}
	if r.overflow.Name() == name {
		return r.overflow
	}
	return nil
}
