package order

import (
	"errors"
	"fmt"
)

// Sentinel errors for order operations. Callers classify failures with
// errors.Is: an IllegalTransition means the caller acted on stale state or
// outside its authority; an AssignmentConflict means it lost a legitimate
// race for the order/rider pairing.
var (
	// ErrIllegalTransition is the sentinel for lifecycle rule violations:
	// a non-adjacent edge, a terminal state, or an unauthorized actor.
	ErrIllegalTransition = errors.New("illegal order status transition")

	// ErrAssignmentConflict is the sentinel returned when a rider assignment
	// cannot be made: the order already has a rider, is not ready for pickup,
	// or the rider is no longer available at the instant of commit.
	ErrAssignmentConflict = errors.New("order assignment conflict")
)

// IllegalTransitionError describes a rejected lifecycle transition.
// It unwraps to ErrIllegalTransition.
type IllegalTransitionError struct {
	From Status
	To   Status
	Role Role
}

// NewIllegalTransitionError creates an IllegalTransitionError for the edge
// from -> to attempted by role.
func NewIllegalTransitionError(from Status, to Status, role Role) *IllegalTransitionError {
	return &IllegalTransitionError{From: from, To: to, Role: role}
}

func (e *IllegalTransitionError) Error() string {
	return fmt.Sprintf("%s: %s -> %s by %s", ErrIllegalTransition, e.From, e.To, e.Role)
}

func (e *IllegalTransitionError) Unwrap() error {
	return ErrIllegalTransition
}
