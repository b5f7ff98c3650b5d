package rider

import (
	"errors"
	"time"

	"hatod/internal/core/domain/model/kernel"
	"hatod/internal/pkg/guard"
)

// Domain errors for assignment operations.
var (
	// ErrAssignmentIsNotConstructed is returned when using an improperly initialized Assignment.
	ErrAssignmentIsNotConstructed = errors.New(
		"Assignment must be created via NewAssignment or RestoreAssignment constructor")
	// ErrAssignmentAlreadyReleased is returned when releasing an assignment twice.
	ErrAssignmentAlreadyReleased = errors.New("assignment is already released")
)

// Assignment is the durable record that a rider was matched to an order.
// An order has at most one active assignment at a time. When an order is
// cancelled or reassigned the assignment is released rather than deleted,
// so dispatch history survives as superseded facts.
type Assignment struct {
	id         kernel.UUID
	orderID    kernel.UUID
	riderID    kernel.UUID
	assignedAt time.Time
	releasedAt *time.Time
	active     bool

	guard guard.ConstructorGuard
}

// NewAssignment creates an active assignment of a rider to an order.
func NewAssignment(id kernel.UUID, orderID kernel.UUID, riderID kernel.UUID, at time.Time) (*Assignment, error) {
	if err := errors.Join(id.Validate(), orderID.Validate(), riderID.Validate()); err != nil {
		return nil, err
	}

	return &Assignment{
		id:         id,
		orderID:    orderID,
		riderID:    riderID,
		assignedAt: at,
		active:     true,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// RestoreAssignment reconstructs an Assignment from persistent storage.
func RestoreAssignment(
	id kernel.UUID,
	orderID kernel.UUID,
	riderID kernel.UUID,
	assignedAt time.Time,
	releasedAt *time.Time,
	active bool,
) (*Assignment, error) {
	assignment, err := NewAssignment(id, orderID, riderID, assignedAt)
	if err != nil {
		return nil, err
	}

	assignment.releasedAt = releasedAt
	assignment.active = active
	return assignment, nil
}

// Validate checks the Assignment was created through a constructor.
func (a *Assignment) Validate() error {
	if a == nil {
		return ErrAssignmentIsNotConstructed
	}
	return a.guard.Validate(ErrAssignmentIsNotConstructed)
}

// ID returns the assignment identifier.
func (a *Assignment) ID() kernel.UUID { return a.id }

// OrderID returns the assigned order.
func (a *Assignment) OrderID() kernel.UUID { return a.orderID }

// RiderID returns the assigned rider.
func (a *Assignment) RiderID() kernel.UUID { return a.riderID }

// AssignedAt returns when the assignment was made.
func (a *Assignment) AssignedAt() time.Time { return a.assignedAt }

// ReleasedAt returns when the assignment was released, or nil while active.
func (a *Assignment) ReleasedAt() *time.Time { return a.releasedAt }

// IsActive reports whether the assignment is still in force.
func (a *Assignment) IsActive() bool { return a.active }

// Release marks the assignment as superseded. Releasing twice is an error.
func (a *Assignment) Release(at time.Time) error {
	if err := a.Validate(); err != nil {
		return err
	}
	if !a.active {
		return ErrAssignmentAlreadyReleased
	}

	a.active = false
	a.releasedAt = &at
	return nil
}
