// Package services provides domain services that orchestrate business operations
// across multiple domain entities in the restaurant system. It implements
// complex business workflows that don't naturally belong to a single aggregate
// root.
//
// The package includes:
//   - KitchenRouter: A domain service that assigns order items to preparation
//     stations through an ordered, capacity-checked station chain
//
// Domain services coordinate between aggregates, implementing business logic
// that spans multiple bounded contexts following Domain-Driven Design principles.
package services
