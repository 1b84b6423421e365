package cmd

import (
	"fmt"
	"log/slog"

	httpin "restaurant/internal/adapters/in/http"
	"restaurant/internal/adapters/out/amqpnotify"
	"restaurant/internal/adapters/out/menucache"
	"restaurant/internal/adapters/out/notify"
	"restaurant/internal/adapters/out/postgres"
	"restaurant/internal/adapters/out/postgres/menusource"
	"restaurant/internal/adapters/out/postgres/staffrepo"
	"restaurant/internal/core/application/usecases/commands"
	"restaurant/internal/core/application/usecases/queries"
	"restaurant/internal/core/domain/services"
	"restaurant/internal/jobs"
	"restaurant/internal/notifications"
	"restaurant/internal/pkg/locker"

	amqp "github.com/rabbitmq/amqp091-go"
	"gorm.io/gorm"
)

// CompositionRoot wires every adapter and use case of the application.
type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	registry   *staffrepo.GormActorRegistry
	menuProxy  *menucache.Proxy
	catalog    *menucache.Catalog
	router     *services.KitchenRouter
	dispatcher *notifications.Dispatcher
	locks      *locker.KeyedLocker

	amqpConn *amqp.Connection
}

// NewCompositionRoot builds the object graph from the given configuration
// and database handle. Optional notifiers (webhook, AMQP) are subscribed
// only when their configuration is present.
func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) (*CompositionRoot, error) {
	stations, overflow, err := ParseStations(config.StationsJSON)
	if err != nil {
		return nil, err
	}
	router, err := services.NewKitchenRouter(stations, overflow)
	if err != nil {
		return nil, err
	}

	menuProxy := menucache.NewProxy(
		menusource.NewGormMenuSource(gormDB), config.MenuTTL, logger)

	dispatcher := notifications.NewDispatcher(logger, config.NotifyTimeout)
	dispatcher.Subscribe(notify.NewSlogNotifier(logger))

	root := &CompositionRoot{
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		registry:   staffrepo.NewGormActorRegistry(gormDB),
		menuProxy:  menuProxy,
		catalog:    menucache.NewCatalog(menuProxy),
		router:     router,
		dispatcher: dispatcher,
		locks:      locker.NewKeyedLocker(),
	}

	if config.WebhookURL != "" {
		dispatcher.Subscribe(notify.NewWebhookNotifier("webhook", config.WebhookURL, nil))
	}

	if config.AmqpURL != "" {
		conn, err := amqp.Dial(config.AmqpURL)
		if err != nil {
			return nil, fmt.Errorf("amqp dial: %w", err)
		}
		channel, err := conn.Channel()
		if err != nil {
			conn.Close()
			return nil, fmt.Errorf("amqp channel: %w", err)
		}
		publisher, err := amqpnotify.NewPublisher(channel, config.AmqpExchange)
		if err != nil {
			conn.Close()
			return nil, fmt.Errorf("amqp exchange: %w", err)
		}
		dispatcher.Subscribe(publisher)
		root.amqpConn = conn
	}

	return root, nil
}

// Close releases connections held by optional notifiers.
func (c *CompositionRoot) Close() {
	if c.amqpConn != nil {
		c.amqpConn.Close()
	}
}

// MenuProvider exposes the caching menu provider for the HTTP surface.
func (c *CompositionRoot) MenuProvider() *menucache.Proxy {
	return c.menuProxy
}

// Dispatcher exposes the notification dispatcher for subscription changes.
func (c *CompositionRoot) Dispatcher() *notifications.Dispatcher {
	return c.dispatcher
}

// CreateJobManager wires the background jobs.
func (c *CompositionRoot) CreateJobManager(logger *slog.Logger) *jobs.JobManager {
	return jobs.NewJobManager(c.menuProxy, c.router, logger)
}

// CreateHTTPHandlers bundles every command and query handler for the server.
func (c *CompositionRoot) CreateHTTPHandlers() httpin.Handlers {
	return httpin.Handlers{
		CreateOrder:   c.CreateCreateOrderCommandHandler(),
		AdvanceOrder:  c.CreateAdvanceOrderCommandHandler(),
		CompleteOrder: c.CreateCompleteOrderCommandHandler(),
		DeliverOrder:  c.CreateDeliverOrderCommandHandler(),
		CancelOrder:   c.CreateCancelOrderCommandHandler(),
		UndoOrder:     c.CreateUndoOrderCommandHandler(),
		RouteOrder:    c.CreateRouteOrderCommandHandler(),

		GetActiveOrders:   c.CreateGetActiveOrdersQueryHandler(),
		GetOrderHistory:   c.CreateGetOrderHistoryQueryHandler(),
		GetStationReports: c.CreateGetStationReportsQueryHandler(),
		GetMenu:           c.CreateGetMenuQueryHandler(),
		SearchMenu:        c.CreateSearchMenuQueryHandler(),
	}
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(
		c.orderUoWFactory(), c.registry, c.catalog, c.dispatcher)
}

func (c *CompositionRoot) CreateAdvanceOrderCommandHandler() commands.AdvanceOrderCommandHandler {
	return commands.NewAdvanceOrderCommandHandler(
		c.orderUoWFactory(), c.registry, c.locks, c.dispatcher)
}

func (c *CompositionRoot) CreateCompleteOrderCommandHandler() commands.CompleteOrderCommandHandler {
	return commands.NewCompleteOrderCommandHandler(
		c.orderUoWFactory(), c.registry, c.locks, c.dispatcher)
}

func (c *CompositionRoot) CreateDeliverOrderCommandHandler() commands.DeliverOrderCommandHandler {
	return commands.NewDeliverOrderCommandHandler(
		c.orderUoWFactory(), c.registry, c.locks, c.dispatcher)
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	return commands.NewCancelOrderCommandHandler(
		c.orderUoWFactory(), c.registry, c.locks, c.dispatcher)
}

func (c *CompositionRoot) CreateUndoOrderCommandHandler() commands.UndoOrderCommandHandler {
	return commands.NewUndoOrderCommandHandler(
		c.orderUoWFactory(), c.registry, c.locks, c.dispatcher)
}

func (c *CompositionRoot) CreateRouteOrderCommandHandler() commands.RouteOrderCommandHandler {
	return commands.NewRouteOrderCommandHandler(
		c.orderUoWFactory(), c.registry, c.locks, c.router, c.catalog)
}

func (c *CompositionRoot) CreateGetActiveOrdersQueryHandler() queries.GetActiveOrdersQueryHandler {
	return queries.NewGetActiveOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderHistoryQueryHandler() queries.GetOrderHistoryQueryHandler {
	return queries.NewGetOrderHistoryQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetStationReportsQueryHandler() queries.GetStationReportsQueryHandler {
	return queries.NewGetStationReportsQueryHandler(c.router)
}

func (c *CompositionRoot) CreateGetMenuQueryHandler() queries.GetMenuQueryHandler {
	return queries.NewGetMenuQueryHandler(c.menuProxy)
}

func (c *CompositionRoot) CreateSearchMenuQueryHandler() queries.SearchMenuQueryHandler {
	return queries.NewSearchMenuQueryHandler(c.menuProxy)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}
