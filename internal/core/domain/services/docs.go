// Package services provides domain services that orchestrate business operations
// across multiple domain entities in the dispatch system. It implements business
// logic that doesn't naturally belong to a single aggregate root.
//
// The package includes:
//   - ProximityFinder: A domain service for ranking available drivers by distance
//     from a venue within a search radius
//
// Domain services coordinate between aggregates, implementing business logic that
// spans multiple bounded contexts following Domain-Driven Design principles.
package services
