// Package services contains stateless domain services that coordinate
// behavior across aggregates.
//
// PricingEngine totals cart lines from menu item snapshots and option picks
// and estimates delivery fees from route distance. DispatchCoordinator ranks
// available riders for a ready order, preferring proximity to the pickup
// point and falling back to least-recently-assigned. Both are pure; durable
// effects such as committing an assignment belong to the application layer.
package services
