// Package http exposes the restaurant API over echo.
package http

import (
	"net/http"

	"restaurant/internal/core/application/usecases/commands"
	"restaurant/internal/core/application/usecases/queries"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/pkg/errs"
	"restaurant/internal/core/ports"

	"github.com/labstack/echo/v4"
)

// Handlers bundles the command and query handlers the server routes to.
type Handlers struct {
	CreateOrder   commands.CreateOrderCommandHandler
	AdvanceOrder  commands.AdvanceOrderCommandHandler
	CompleteOrder commands.CompleteOrderCommandHandler
	DeliverOrder  commands.DeliverOrderCommandHandler
	CancelOrder   commands.CancelOrderCommandHandler
	UndoOrder     commands.UndoOrderCommandHandler
	RouteOrder    commands.RouteOrderCommandHandler

	GetActiveOrders   queries.GetActiveOrdersQueryHandler
	GetOrderHistory   queries.GetOrderHistoryQueryHandler
	GetStationReports queries.GetStationReportsQueryHandler
	GetMenu           queries.GetMenuQueryHandler
	SearchMenu        queries.SearchMenuQueryHandler
}

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	handlers Handlers
	menu     ports.MenuProvider
	settings *Settings
}

// NewServer creates an HTTP server over the given handlers. The menu
// provider backs the cache stats and forced-refresh endpoints; settings
// backs the config view.
func NewServer(handlers Handlers, menu ports.MenuProvider, settings *Settings) *Server {
	return &Server{
		handlers: handlers,
		menu:     menu,
		settings: settings,
	}
}

// RegisterRoutes mounts every route on the given echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)

	api := e.Group("/api/v1")

	api.POST("/orders", s.CreateOrder)
	api.GET("/orders/active", s.GetActiveOrders)
	api.GET("/orders/:id/history", s.GetOrderHistory)
	api.POST("/orders/:id/advance", s.AdvanceOrder)
	api.POST("/orders/:id/complete", s.CompleteOrder)
	api.POST("/orders/:id/deliver", s.DeliverOrder)
	api.POST("/orders/:id/cancel", s.CancelOrder)
	api.POST("/orders/:id/undo", s.UndoOrder)
	api.POST("/orders/:id/route", s.RouteOrder)

	api.GET("/stations", s.GetStations)

	api.GET("/menu", s.GetMenu)
	api.GET("/menu/search", s.SearchMenu)
	api.GET("/menu/stats", s.GetMenuStats)

	api.GET("/config", s.GetConfig)
	api.PATCH("/config", s.PatchConfig)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Healthy")
}

// CreateOrder handles POST /api/v1/orders - opens a new order.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var request NewOrderRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	customerID, err := kernel.UUIDFromString(request.CustomerID)
	if err != nil {
		return badRequest(ctx, "Invalid customer id: "+err.Error())
	}
	waiterID, err := kernel.UUIDFromString(request.WaiterID)
	if err != nil {
		return badRequest(ctx, "Invalid waiter id: "+err.Error())
	}

	items := make([]commands.ItemInput, 0, len(request.Items))
	for _, item := range request.Items {
		items = append(items, commands.ItemInput{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Extras:    item.Extras,
		})
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(
		orderID, customerID, waiterID, request.TableNumber, items)
	if err != nil {
		return badRequest(ctx, "Invalid order data: "+err.Error())
	}

	if err := s.handlers.CreateOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, map[string]string{"id": orderID.String()})
}

// GetActiveOrders handles GET /api/v1/orders/active.
func (s *Server) GetActiveOrders(ctx echo.Context) error {
	query := queries.NewGetActiveOrdersQuery()

	orders, err := s.handlers.GetActiveOrders.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]ActiveOrder, len(orders))
	for i, o := range orders {
		response[i] = ActiveOrder{
			ID:          o.ID.String(),
			TableNumber: o.TableNumber,
			Status:      o.Status,
			Version:     o.Version,
			TotalCents:  o.TotalCents,
			CreatedAt:   o.CreatedAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetOrderHistory handles GET /api/v1/orders/:id/history.
func (s *Server) GetOrderHistory(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order id: "+err.Error())
	}

	query, err := queries.NewGetOrderHistoryQuery(orderID)
	if err != nil {
		return writeError(ctx, err)
	}

	entries, err := s.handlers.GetOrderHistory.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]HistoryEntry, len(entries))
	for i, entry := range entries {
		response[i] = HistoryEntry{
			CommandID:   entry.CommandID,
			Type:        entry.Type,
			Actor:       entry.Actor.String(),
			Payload:     entry.Payload,
			Undoes:      entry.Undoes,
			StatusAfter: entry.StatusAfter,
			ExecutedAt:  entry.ExecutedAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// AdvanceOrder handles POST /api/v1/orders/:id/advance.
func (s *Server) AdvanceOrder(ctx echo.Context) error {
	orderID, actorID, err := s.actionParams(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewAdvanceOrderCommand(orderID, actorID)
	if err != nil {
		return badRequest(ctx, "Invalid request: "+err.Error())
	}
	if err := s.handlers.AdvanceOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// CompleteOrder handles POST /api/v1/orders/:id/complete.
func (s *Server) CompleteOrder(ctx echo.Context) error {
	orderID, actorID, err := s.actionParams(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewCompleteOrderCommand(orderID, actorID)
	if err != nil {
		return badRequest(ctx, "Invalid request: "+err.Error())
	}
	if err := s.handlers.CompleteOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// DeliverOrder handles POST /api/v1/orders/:id/deliver.
func (s *Server) DeliverOrder(ctx echo.Context) error {
	orderID, actorID, err := s.actionParams(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewDeliverOrderCommand(orderID, actorID)
	if err != nil {
		return badRequest(ctx, "Invalid request: "+err.Error())
	}
	if err := s.handlers.DeliverOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// CancelOrder handles POST /api/v1/orders/:id/cancel.
func (s *Server) CancelOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order id: "+err.Error())
	}

	var request CancelRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}
	actorID, err := kernel.UUIDFromString(request.ActorID)
	if err != nil {
		return badRequest(ctx, "Invalid actor id: "+err.Error())
	}

	cmd, err := commands.NewCancelOrderCommand(orderID, actorID, request.Reason)
	if err != nil {
		return badRequest(ctx, "Invalid request: "+err.Error())
	}
	if err := s.handlers.CancelOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// UndoOrder handles POST /api/v1/orders/:id/undo - reverts the most
// recent command unless the kitchen already saw the order.
func (s *Server) UndoOrder(ctx echo.Context) error {
	orderID, actorID, err := s.actionParams(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewUndoOrderCommand(orderID, actorID)
	if err != nil {
		return badRequest(ctx, "Invalid request: "+err.Error())
	}
	if err := s.handlers.UndoOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// RouteOrder handles POST /api/v1/orders/:id/route. The response reports
// every item; a report with failed items comes back as 409.
func (s *Server) RouteOrder(ctx echo.Context) error {
	orderID, actorID, err := s.actionParams(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewRouteOrderCommand(orderID, actorID)
	if err != nil {
		return badRequest(ctx, "Invalid request: "+err.Error())
	}

	result, err := s.handlers.RouteOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	report := routeReportFromDomain(result)
	if result.Failed() {
		return ctx.JSON(http.StatusConflict, report)
	}
	return ctx.JSON(http.StatusOK, report)
}

// GetStations handles GET /api/v1/stations.
func (s *Server) GetStations(ctx echo.Context) error {
	query := queries.NewGetStationReportsQuery()

	reports, err := s.handlers.GetStationReports.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]StationReport, len(reports))
	for i, report := range reports {
		response[i] = stationReportFromDomain(report)
	}
	return ctx.JSON(http.StatusOK, response)
}

// GetMenu handles GET /api/v1/menu. With ?refresh=true a source load is
// forced first; if the source is down the cached copy still answers,
// marked stale.
func (s *Server) GetMenu(ctx echo.Context) error {
	if ctx.QueryParam("refresh") == "true" {
		if err := s.menu.Refresh(ctx.Request().Context()); err != nil {
			return writeError(ctx, err)
		}
	}

	query := queries.NewGetMenuQuery()
	m, err := s.handlers.GetMenu.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, menuResponseFromDomain(m))
}

// SearchMenu handles GET /api/v1/menu/search?q=.
func (s *Server) SearchMenu(ctx echo.Context) error {
	query := queries.NewSearchMenuQuery(ctx.QueryParam("q"))

	products, err := s.handlers.SearchMenu.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]MenuProduct, len(products))
	for i, product := range products {
		response[i] = menuProductFromDomain(product)
	}
	return ctx.JSON(http.StatusOK, response)
}

// GetMenuStats handles GET /api/v1/menu/stats.
func (s *Server) GetMenuStats(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, cacheStatsFromDomain(s.menu.Stats()))
}

// GetConfig handles GET /api/v1/config.
func (s *Server) GetConfig(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, s.settings.Snapshot())
}

// PatchConfig handles PATCH /api/v1/config. Changed values show up in the
// view immediately; running components keep the configuration they were
// built with until restart.
func (s *Server) PatchConfig(ctx echo.Context) error {
	var changes map[string]string
	if err := ctx.Bind(&changes); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	if err := s.settings.Patch(changes); err != nil {
		return writeError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, s.settings.Snapshot())
}

// actionParams extracts the order id path param and actor id body field
// shared by the lifecycle endpoints.
func (s *Server) actionParams(ctx echo.Context) (kernel.UUID, kernel.UUID, error) {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return kernel.UUID{}, kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause("orderId", err)
	}

	var request ActionRequest
	if err := ctx.Bind(&request); err != nil {
		return kernel.UUID{}, kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause("request body", err)
	}

	actorID, err := kernel.UUIDFromString(request.ActorID)
	if err != nil {
		return kernel.UUID{}, kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause("actorId", err)
	}

	return orderID, actorID, nil
}
