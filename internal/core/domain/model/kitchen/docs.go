// Package kitchen provides domain entities for routing order items to
// preparation stations in the restaurant system.
//
// The package includes:
//   - Station: A preparation unit with a category filter, fixed capacity,
//     and a FIFO queue of item tickets
//   - Ticket: A reference to one order item held in a station queue
//   - Report: A point-in-time view of a station's load
//
// Key business rules:
//   - A ticket is assigned to at most one station at any time
//   - The capacity check and the enqueue form one critical section
//   - Queue entries are only removed by explicit consumer acknowledgment
//
// Stations are configuration-driven: the set of stations, their category
// filters, capacities, and priority order come from process configuration,
// not from a fixed type hierarchy.
package kitchen
