package order

import (
	"fmt"

	"hatod/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
// It implements a state machine with defined transitions so that orders
// follow the marketplace workflow from placement to delivery.
//
// State transitions:
//
//	Pending ──> Confirmed ──> Preparing ──> ReadyForPickup ──> PickedUp ──> Delivering ──> Delivered
//	   │             │            │               │                │             │
//	   └─────────────┴────────────┴───────────────┴────────────────┴─────────────┴──> Cancelled
//
// Delivered and Cancelled are terminal: no further transition is permitted.
// Every edge is additionally gated by the actor role attempting it; see
// CanTransition.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status when a checkout creates an order.
	// The merchant has not yet accepted it.
	Pending

	// Confirmed indicates the merchant accepted the order.
	Confirmed

	// Preparing indicates the merchant is preparing the order.
	Preparing

	// ReadyForPickup indicates the order awaits a rider. Rider assignment
	// happens in this status without changing it; the status only advances
	// when the assigned rider physically picks the order up.
	ReadyForPickup

	// PickedUp indicates the assigned rider has collected the order.
	PickedUp

	// Delivering indicates the rider is en route to the customer.
	Delivering

	// Delivered indicates the order reached the customer. Terminal.
	Delivered

	// Cancelled indicates the order was cancelled before delivery. Terminal.
	Cancelled
)

// getStatusStrings returns a map of Status values to their string representations.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:        "Unknown",
		Pending:        "Pending",
		Confirmed:      "Confirmed",
		Preparing:      "Preparing",
		ReadyForPickup: "ReadyForPickup",
		PickedUp:       "PickedUp",
		Delivering:     "Delivering",
		Delivered:      "Delivered",
		Cancelled:      "Cancelled",
	}
}

// Validate checks if the Status value is one of the defined lifecycle states.
// Unknown (0) and out-of-range values are invalid.
func (s Status) Validate() error {
	if s < Pending || s > Cancelled {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
// It implements fmt.Stringer and is safe on any value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// StatusFromString parses a status name produced by Status.String.
func StatusFromString(s string) (Status, error) {
	for status, str := range getStatusStrings() {
		if str == s && status != Unknown {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

// IsTerminal reports whether no further transition is permitted from s.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// transitionKey identifies one edge of the lifecycle table.
type transitionKey struct {
	from Status
	to   Status
}

// transitionRoles is the lifecycle table: for each allowed edge, the actor
// roles that may trigger it. Rider edges additionally require the acting
// rider to be the one assigned to the order, which the Order aggregate
// enforces since the table cannot know assignment identity.
//
// Admin cancellation from any non-terminal state is handled separately in
// CanTransition as an emergency override rather than enumerated here.
func transitionRoles() map[transitionKey][]Role {
	return map[transitionKey][]Role{
		{from: Pending, to: Confirmed}:        {RoleMerchant, RoleAdmin},
		{from: Pending, to: Cancelled}:        {RoleMerchant, RoleAdmin, RoleCustomer},
		{from: Confirmed, to: Preparing}:      {RoleMerchant},
		{from: Confirmed, to: Cancelled}:      {RoleMerchant, RoleAdmin},
		{from: Preparing, to: ReadyForPickup}: {RoleMerchant},
		{from: Preparing, to: Cancelled}:      {RoleMerchant, RoleAdmin},
		{from: ReadyForPickup, to: PickedUp}:  {RoleRider},
		{from: PickedUp, to: Delivering}:      {RoleRider},
		{from: Delivering, to: Delivered}:     {RoleRider},
	}
}

// CanTransition checks whether role may move an order from s to target.
// It returns an IllegalTransitionError when the edge does not exist in the
// lifecycle table, when s is terminal, or when the role is not authorized
// for that edge. Admins may cancel from any non-terminal state.
func (s Status) CanTransition(target Status, role Role) error {
	if err := s.Validate(); err != nil {
		return err
	}
	if err := target.Validate(); err != nil {
		return err
	}

	if s.IsTerminal() {
		return NewIllegalTransitionError(s, target, role)
	}

	// Emergency override: admin can always cancel a live order.
	if target == Cancelled && role == RoleAdmin {
		return nil
	}

	roles, ok := transitionRoles()[transitionKey{from: s, to: target}]
	if !ok {
		return NewIllegalTransitionError(s, target, role)
	}

	for _, r := range roles {
		if r == role {
			return nil
		}
	}

	return NewIllegalTransitionError(s, target, role)
}

// ValidateCanHaveRider validates the consistency between order status and
// rider assignment. A rider may only be attached from ReadyForPickup onward,
// and must be attached once the order has been picked up.
func (s Status) ValidateCanHaveRider(hasRider bool) error {
	if hasRider && s != ReadyForPickup && s != PickedUp && s != Delivering && s != Delivered {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not a valid status to have a rider", s.String()),
		)
	}

	if !hasRider && (s == PickedUp || s == Delivering || s == Delivered) {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not a valid status to have no rider", s.String()),
		)
	}

	return nil
}
