package notifications_test

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/notifications"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captureNotifier struct {
	name string
	fail error

	mu     sync.Mutex
	events []order.Event
}

func (n *captureNotifier) Name() string { return n.name }

func (n *captureNotifier) Notify(_ context.Context, event order.Event) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.fail != nil {
		return n.fail
	}
	n.events = append(n.events, event)
	return nil
}

func (n *captureNotifier) Events() []order.Event {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]order.Event(nil), n.events...)
}

func sampleEvent() order.Event {
	return order.Event{
		Type:        order.EventOrderCreated,
		OrderID:     kernel.NewUUID(),
		TableNumber: 3,
		Status:      order.Created,
		Version:     1,
		OccurredAt:  time.Now(),
	}
}

func newDispatcher() *notifications.Dispatcher {
	return notifications.NewDispatcher(slog.Default(), time.Second)
}

func TestDispatcher_DeliversToAllSubscribers(t *testing.T) {
	d := newDispatcher()
	first := &captureNotifier{name: "first"}
	second := &captureNotifier{name: "second"}
	d.Subscribe(first)
	d.Subscribe(second)

	event := sampleEvent()
	d.Dispatch(t.Context(), []order.Event{event})

	require.Len(t, first.Events(), 1)
	require.Len(t, second.Events(), 1)
	assert.Equal(t, event.OrderID, first.Events()[0].OrderID)
}

func TestDispatcher_FailingSubscriberDoesNotBlockOthers(t *testing.T) {
	d := newDispatcher()
	failing := &captureNotifier{name: "failing", fail: errors.New("boom")}
	healthy := &captureNotifier{name: "healthy"}
	d.Subscribe(failing)
	d.Subscribe(healthy)

	d.Dispatch(t.Context(), []order.Event{sampleEvent()})

	assert.Len(t, healthy.Events(), 1)
}

func TestDispatcher_EventTypeFilter(t *testing.T) {
	d := newDispatcher()
	kitchen := &captureNotifier{name: "kitchen"}
	waiter := &captureNotifier{name: "waiter"}
	d.Subscribe(kitchen, order.EventOrderAdvanced)
	d.Subscribe(waiter, order.EventOrderReady, order.EventOrderDelivered)

	advanced := sampleEvent()
	advanced.Type = order.EventOrderAdvanced
	ready := sampleEvent()
	ready.Type = order.EventOrderReady
	d.Dispatch(t.Context(), []order.Event{advanced, ready})

	require.Len(t, kitchen.Events(), 1)
	assert.Equal(t, order.EventOrderAdvanced, kitchen.Events()[0].Type)
	require.Len(t, waiter.Events(), 1)
	assert.Equal(t, order.EventOrderReady, waiter.Events()[0].Type)
}

func TestDispatcher_PanickingSubscriberDoesNotBlockOthers(t *testing.T) {
	d := newDispatcher()
	d.Subscribe(panicNotifier{})
	healthy := &captureNotifier{name: "healthy"}
	d.Subscribe(healthy)

	require.NotPanics(t, func() {
		d.Dispatch(t.Context(), []order.Event{sampleEvent()})
	})
	assert.Len(t, healthy.Events(), 1)
}

type panicNotifier struct{}

func (panicNotifier) Name() string { return "panicky" }

func (panicNotifier) Notify(context.Context, order.Event) error {
	panic("notifier bug")
}

func TestDispatcher_SubscribeReplacesSameName(t *testing.T) {
	d := newDispatcher()
	old := &captureNotifier{name: "webhook"}
	replacement := &captureNotifier{name: "webhook"}
	d.Subscribe(old)
	d.Subscribe(replacement)

	d.Dispatch(t.Context(), []order.Event{sampleEvent()})

	assert.Empty(t, old.Events())
	assert.Len(t, replacement.Events(), 1)
	assert.Equal(t, []string{"webhook"}, d.Subscribers())
}

func TestDispatcher_Unsubscribe(t *testing.T) {
	d := newDispatcher()
	n := &captureNotifier{name: "gone"}
	d.Subscribe(n)
	d.Unsubscribe("gone")
	d.Unsubscribe("never-there")

	d.Dispatch(t.Context(), []order.Event{sampleEvent()})

	assert.Empty(t, n.Events())
	assert.Empty(t, d.Subscribers())
}

func TestDispatcher_NoEventsIsNoop(t *testing.T) {
	d := newDispatcher()
	n := &captureNotifier{name: "idle"}
	d.Subscribe(n)

	d.Dispatch(t.Context(), nil)

	assert.Empty(t, n.Events())
}
