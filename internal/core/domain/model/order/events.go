package order

import (
	"time"

	"hatod/internal/core/domain/model/kernel"
)

// Event names published to the event bus. Downstream consumers (merchant,
// rider, customer and admin apps) subscribe by these names.
const (
	EventOrderCreated       = "order.created"
	EventOrderStatusChanged = "order.statusChanged"
	EventOrderAssigned      = "order.assigned"
	EventOrderCancelled     = "order.cancelled"
)

// Event is a lifecycle fact recorded by the Order aggregate. Events are
// appended to the transactional outbox in the same unit of work as the state
// change they describe: no event ever describes a change that did not
// durably happen, and no change goes silently un-announced.
type Event interface {
	// Name returns the event name, e.g. "order.statusChanged".
	Name() string
	// AggregateID returns the order the event belongs to.
	AggregateID() kernel.UUID
}

// CreatedEvent is emitted once, when checkout creates the order in Pending.
type CreatedEvent struct {
	OrderID    kernel.UUID
	CustomerID kernel.UUID
	MerchantID kernel.UUID
	Total      kernel.Money
	At         time.Time
}

// Name implements Event.
func (CreatedEvent) Name() string { return EventOrderCreated }

// AggregateID implements Event.
func (e CreatedEvent) AggregateID() kernel.UUID { return e.OrderID }

// StatusChangedEvent is emitted on every successful lifecycle transition,
// including cancellation. Per-order emission order matches transition order.
type StatusChangedEvent struct {
	OrderID kernel.UUID
	From    Status
	To      Status
	Actor   Actor
	At      time.Time
}

// Name implements Event.
func (StatusChangedEvent) Name() string { return EventOrderStatusChanged }

// AggregateID implements Event.
func (e StatusChangedEvent) AggregateID() kernel.UUID { return e.OrderID }

// AssignedEvent is emitted when a rider is bound to the order. The order's
// status does not change on assignment.
type AssignedEvent struct {
	OrderID    kernel.UUID
	RiderID    kernel.UUID
	AssignedAt time.Time
}

// Name implements Event.
func (AssignedEvent) Name() string { return EventOrderAssigned }

// AggregateID implements Event.
func (e AssignedEvent) AggregateID() kernel.UUID { return e.OrderID }

// CancelledEvent is emitted alongside the terminal StatusChangedEvent when an
// order is cancelled. Compensations (refund, rider release notifications)
// are driven by consumers observing this event, not by undo operations.
type CancelledEvent struct {
	OrderID     kernel.UUID
	Reason      string
	CancelledBy Actor
	At          time.Time
}

// Name implements Event.
func (CancelledEvent) Name() string { return EventOrderCancelled }

// AggregateID implements Event.
func (e CancelledEvent) AggregateID() kernel.UUID { return e.OrderID }
