package commands_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"restaurant/internal/core/application/usecases/commands"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/menu"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/core/ports"
	"restaurant/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if o, ok := args.Get(0).(*order.Order); ok {
		return o, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockOrderRepository) GetAllActive(ctx context.Context) ([]*order.Order, error) {
	args := m.Called(ctx)
	if o, ok := args.Get(0).([]*order.Order); ok {
		return o, args.Error(1)
	}
	return nil, args.Error(1)
}

type MockOrderUoW struct{ mock.Mock }

func (m *MockOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

// stubActors resolves every id in known and rejects the rest.
type stubActors struct {
	known map[string]ports.Actor
}

func actorsWith(actors ...ports.Actor) stubActors {
	s := stubActors{known: make(map[string]ports.Actor)}
	for _, a := range actors {
		s.known[a.ID.String()] = a
	}
	return s
}

func (s stubActors) Resolve(_ context.Context, id kernel.UUID) (ports.Actor, error) {
	if a, ok := s.known[id.String()]; ok {
		return a, nil
	}
	return ports.Actor{}, fmt.Errorf("%w: %s", ports.ErrUnknownActor, id)
}

// stubCatalog answers product lookups from a fixed table.
type stubCatalog struct {
	products map[int64]menu.Product
}

func (s stubCatalog) Resolve(_ context.Context, productID int64) (menu.Product, error) {
	if p, ok := s.products[productID]; ok {
		return p, nil
	}
	return menu.Product{}, errs.NewObjectNotFoundError("productID", productID)
}

func (s stubCatalog) CategoryOf(ctx context.Context, productID int64) (string, error) {
	p, err := s.Resolve(ctx, productID)
	if err != nil {
		return "", err
	}
	return p.Category, nil
}

// recordingDispatcher captures dispatched events for assertions.
type recordingDispatcher struct {
	mu     sync.Mutex
	events []order.Event
}

func (d *recordingDispatcher) Dispatch(_ context.Context, events []order.Event) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, events...)
}

func (d *recordingDispatcher) Events() []order.Event {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]order.Event(nil), d.events...)
}

func testCatalog() stubCatalog {
	return stubCatalog{products: map[int64]menu.Product{
		1: {ID: 1, Name: "Limonada", Category: "BEBIDAS", PriceCents: 350, Available: true},
		6: {ID: 6, Name: "Flan", Category: "POSTRES", PriceCents: 500, Available: true},
		7: {ID: 7, Name: "Tarta", Category: "POSTRES", PriceCents: 650, Available: false},
	}}
}

// existingOrder builds a persisted-looking aggregate with its creation
// event already drained, the way a repository Get would return it.
func existingOrder(t *testing.T, waiter kernel.UUID) *order.Order {
	t.Helper()
	item, err := order.NewItem(1, 2, 350, nil)
	require.NoError(t, err)

	o, err := order.NewOrder(
		kernel.NewUUID(), kernel.NewUUID(), waiter, 4, []order.Item{item}, waiter)
	require.NoError(t, err)
	o.TakeEvents()
	return o
}
