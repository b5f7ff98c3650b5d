package ports

import (
	"context"

	"hatod/internal/core/domain/model/kernel"
	"hatod/internal/core/domain/model/rider"
)

// RiderRepository defines the persistence contract for rider aggregates.
type RiderRepository interface {
	// Add persists a new rider aggregate to storage.
	Add(ctx context.Context, aggregate *rider.Rider) error

	// Update persists changes to an existing rider, including availability.
	Update(ctx context.Context, aggregate *rider.Rider) error

	// UpdateAvailability persists the rider's availability conditionally
	// against the availability previously observed. Losing the race returns
	// order.ErrAssignmentConflict and writes nothing; this is what makes a
	// rider claimable by at most one concurrent dispatch.
	UpdateAvailability(ctx context.Context, aggregate *rider.Rider, observed rider.Availability) error

	// Get retrieves a rider aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*rider.Rider, error)

	// GetAllAvailable retrieves all riders currently AVAILABLE for dispatch.
	GetAllAvailable(ctx context.Context) ([]*rider.Rider, error)
}

// AssignmentRepository defines the persistence contract for rider assignment
// facts. Assignments are append-mostly: reassignment releases the prior fact
// and inserts a new one, it never overwrites in place.
type AssignmentRepository interface {
	// Add persists a new assignment fact.
	Add(ctx context.Context, assignment *rider.Assignment) error

	// Update persists a release of an existing assignment.
	Update(ctx context.Context, assignment *rider.Assignment) error

	// GetActiveByOrder retrieves the active assignment for an order, or
	// errs.ErrObjectNotFound when the order has none.
	GetActiveByOrder(ctx context.Context, orderID kernel.UUID) (*rider.Assignment, error)
}
