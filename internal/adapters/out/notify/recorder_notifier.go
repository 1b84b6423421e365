package notify

import (
	"context"
	"sync"

	"restaurant/internal/core/domain/model/order"
)

// RecorderNotifier keeps delivered events in memory. Used by tests and by
// local development to inspect the event stream without external services.
type RecorderNotifier struct {
	name string

	mu     sync.Mutex
	events []order.Event
}

// NewRecorderNotifier creates an empty recorder.
func NewRecorderNotifier(name string) *RecorderNotifier {
	return &RecorderNotifier{name: name}
}

// Name identifies the notifier in subscription management.
func (n *RecorderNotifier) Name() string { return n.name }

// Notify stores the event. It never fails.
func (n *RecorderNotifier) Notify(_ context.Context, event order.Event) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, event)
	return nil
}

// Events returns a copy of everything recorded so far.
func (n *RecorderNotifier) Events() []order.Event {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]order.Event(nil), n.events...)
}

// Reset discards recorded events.
func (n *RecorderNotifier) Reset() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = nil
}
