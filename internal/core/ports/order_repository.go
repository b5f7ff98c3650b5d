// Package ports defines the contracts between the application core and
// infrastructure: repositories, external gateways, the unit of work, and
// event publication. These interfaces establish dependency inversion and
// keep the core testable against in-memory and mock implementations.
package ports

import (
	"context"
	"time"

	"hatod/internal/core/domain/model/kernel"
	"hatod/internal/core/domain/model/order"
)

// PublishedEvent is the wire form of a domain event leaving the outbox.
// EventID is the outbox row's monotonically increasing identifier; relaying
// events in EventID order preserves each order's own transition sequence.
type PublishedEvent struct {
	EventID    int64
	OrderID    kernel.UUID
	Name       string
	Payload    []byte
	OccurredAt time.Time
}

// OrderRepository defines the persistence contract for order aggregates.
//
// Orders are shared mutable state: riders, the merchant, and admins can all
// act on the same order within milliseconds of each other. Every mutating
// method is therefore a single conditional write against the previously
// observed state rather than a read-modify-write spanning two round trips.
type OrderRepository interface {
	// Add persists a new order aggregate together with its lines and any
	// recorded domain events (outbox rows), in the ambient transaction.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order. The status column is
	// written conditionally against the aggregate's persisted status; losing
	// that race returns order.ErrIllegalTransition and writes nothing.
	Update(ctx context.Context, aggregate *order.Order) error

	// AssignRider persists a rider assignment conditionally: the write only
	// succeeds while the order row is still READY_FOR_PICKUP with no rider.
	// Losing the race returns order.ErrAssignmentConflict and writes nothing.
	AssignRider(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate with its lines by identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetFirstReadyUnassigned retrieves the oldest READY_FOR_PICKUP order
	// without a rider, or errs.ErrObjectNotFound when none is waiting.
	// Used by the automatic dispatch loop.
	GetFirstReadyUnassigned(ctx context.Context) (*order.Order, error)

	// GetUnpublishedEvents retrieves up to limit outbox rows that have not
	// been relayed yet, in EventID order.
	GetUnpublishedEvents(ctx context.Context, limit int) ([]PublishedEvent, error)

	// MarkEventsPublished marks outbox rows as relayed.
	MarkEventsPublished(ctx context.Context, eventIDs []int64) error
}
