package kitchen

import (
	"errors"
	"fmt"
	"sync"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/pkg/errs"
)

var (
	// ErrStationIsNotConstructed indicates that a Station was not created
	// through the NewStation constructor.
	ErrStationIsNotConstructed = errors.New("Station must be created via NewStation constructor")

	// ErrStationEmpty is returned by Dequeue when the station has no queued
	// tickets.
	ErrStationEmpty = errors.New("station queue is empty")

	// ErrRoutingCapacityExceeded is the failure class for an item that no
	// station, including the overflow station, could accept.
	ErrRoutingCapacityExceeded = errors.New("routing capacity exceeded")
)

// Ticket is one item reference queued at a preparation station. An item is
// identified by its order and position within the order's item list, so a
// ticket is assignable to at most one station at a time.
type Ticket struct {
	OrderID   kernel.UUID
	ItemIndex int
	ProductID int64
	Quantity  int
}

// Report is a point-in-time view of a station's load.
type Report struct {
	Station     string
	Categories  []string
	QueueLength int
	Capacity    int
	Utilization float64
}

// Station is a kitchen preparation unit. It accepts items whose category is
// in its filter, up to a fixed capacity, and holds them in a FIFO queue until
// a station consumer acknowledges them.
//
// Key business rules:
//   - Must be constructed through NewStation
//   - The capacity check and the enqueue are one critical section, so two
//     concurrent routing calls cannot both claim the last slot
//   - Queue entries leave only through explicit Dequeue acknowledgment
//
// Stations are created once at process start from configuration and live for
// the process lifetime. All methods are safe for concurrent use.
type Station struct {
	name       string
	categories map[string]struct{}
	capacity   int

	mu    sync.Mutex
	queue []Ticket

	isConstructed bool
}

// NewStation creates a preparation station with a category filter and a fixed
// capacity. An empty category list means the station accepts any category
// (the usual shape of the overflow station).
func NewStation(name string, categories []string, capacity int) (*Station, error) {
	if name == "" {
		return nil, errs.NewValueIsRequiredError("station name")
	}
	if capacity <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("capacity",
			fmt.Errorf("%d is not greater than 0", capacity))
	}

	filter := make(map[string]struct{}, len(categories))
	for _, c := range categories {
		if c == "" {
			return nil, errs.NewValueIsRequiredError("station category")
		}
		filter[c] = struct{}{}
	}

	return &Station{
		name:          name,
		categories:    filter,
		capacity:      capacity,
		isConstructed: true,
	}, nil
}

// Validate ensures the Station was created through NewStation.
func (s *Station) Validate() error {
	if s == nil || !s.isConstructed {
		return ErrStationIsNotConstructed
	}
	return nil
}

// Name returns the station's configured name.
func (s *Station) Name() string {
	return s.name
}

// Accepts reports whether the station's category filter matches. A station
// with an empty filter accepts every category.
func (s *Station) Accepts(category string) bool {
	if len(s.categories) == 0 {
		return true
	}
	_, ok := s.categories[category]
	return ok
}

// Categories returns the configured category filter.
func (s *Station) Categories() []string {
	out := make([]string, 0, len(s.categories))
	for c := range s.categories {
		out = append(out, c)
	}
	return out
}

// Capacity returns the fixed queue capacity.
func (s *Station) Capacity() int {
	return s.capacity
}

// TryAccept atomically checks remaining capacity and enqueues the ticket.
// Returns false when the station is full; the caller moves on to the next
// station in the chain.
func (s *Station) TryAccept(t Ticket) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.queue) >= s.capacity {
		return false
	}
	s.queue = append(s.queue, t)
	return true
}

// Dequeue removes and returns the head ticket, freeing one capacity slot.
// This is the station consumer's acknowledgment that the item left the queue.
func (s *Station) Dequeue() (Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.queue) == 0 {
		return Ticket{}, ErrStationEmpty
	}
	head := s.queue[0]
	s.queue = s.queue[1:]
	return head, nil
}

// Queue returns a copy of the queued tickets in FIFO order.
func (s *Station) Queue() []Ticket {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Ticket, len(s.queue))
	copy(out, s.queue)
	return out
}

// Report returns queue length, capacity, and utilization as one consistent
// view taken under the station lock.
func (s *Station) Report() Report {
	s.mu.Lock()
	length := len(s.queue)
	s.mu.Unlock()

	return Report{
		Station:     s.name,
		Categories:  s.Categories(),
		QueueLength: length,
		Capacity:    s.capacity,
		Utilization: float64(length) / float64(s.capacity),
	}
}
