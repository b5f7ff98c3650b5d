package order

import (
	"errors"
	"fmt"
	"time"

	"hatod/internal/core/domain/model/kernel"
	"hatod/internal/pkg/errs"
	"hatod/internal/pkg/guard"
)

// Domain errors for order construction.
var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created
	// through NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructor")
	// ErrOrderNumberIsRequired is returned when an order has no human-readable number.
	ErrOrderNumberIsRequired = errs.NewValueIsRequiredError("order number")
	// ErrOrderHasNoLines is returned when an order is created without lines.
	ErrOrderHasNoLines = errs.NewValueIsRequiredError("order lines")
	// ErrFeeIsNegative is returned when a delivery or platform fee is negative.
	ErrFeeIsNegative = errs.NewValueIsInvalidError("fee")
	// ErrTotalsDoNotReconcile is returned when total != subtotal + deliveryFee + platformFee.
	ErrTotalsDoNotReconcile = errs.NewValueIsInvalidError("total does not equal subtotal + deliveryFee + platformFee")
)

// Order is the aggregate root of the order lifecycle. It owns its lines,
// its monetary breakdown and its status, and is the only place transitions
// and rider assignment are validated.
//
// Invariants:
//   - total == subtotal + deliveryFee + platformFee at all times
//   - a rider is attached iff the status allows it (see Status.ValidateCanHaveRider)
//   - status only ever moves along the lifecycle table; terminal states are final
//   - lines are immutable once the order exists
//
// Mutations record domain events; repositories persist state and events in
// one transaction and then call MarkPersisted.
type Order struct {
	id           kernel.UUID
	number       string
	customerID   kernel.UUID
	merchantID   kernel.UUID
	riderID      *kernel.UUID
	lines        []Line
	subtotal     kernel.Money
	deliveryFee  kernel.Money
	platformFee  kernel.Money
	total        kernel.Money
	status       Status
	cancelReason *string
	createdAt    time.Time
	updatedAt    time.Time

	// persistedStatus is the status the storage row is known to hold.
	// Repositories use it as the compare value of the conditional status
	// write, which serializes transitions per order.
	persistedStatus Status

	events []Event
	guard  guard.ConstructorGuard
}

// NewOrder creates an order in Pending from a checkout snapshot.
// The subtotal is derived from the lines; the total is subtotal plus both
// fees. A CreatedEvent is recorded for the outbox.
func NewOrder(
	id kernel.UUID,
	number string,
	customerID kernel.UUID,
	merchantID kernel.UUID,
	lines []Line,
	deliveryFee kernel.Money,
	platformFee kernel.Money,
	now time.Time,
) (*Order, error) {
	if err := errors.Join(id.Validate(), customerID.Validate(), merchantID.Validate()); err != nil {
		return nil, err
	}
	if number == "" {
		return nil, ErrOrderNumberIsRequired
	}
	if len(lines) == 0 {
		return nil, ErrOrderHasNoLines
	}
	if deliveryFee.IsNegative() || platformFee.IsNegative() {
		return nil, ErrFeeIsNegative
	}

	var subtotal kernel.Money
	for _, line := range lines {
		if err := line.Validate(); err != nil {
			return nil, err
		}
		subtotal = subtotal.Add(line.Total())
	}

	o := &Order{
		id:              id,
		number:          number,
		customerID:      customerID,
		merchantID:      merchantID,
		lines:           lines,
		subtotal:        subtotal,
		deliveryFee:     deliveryFee,
		platformFee:     platformFee,
		total:           subtotal.Add(deliveryFee).Add(platformFee),
		status:          Pending,
		persistedStatus: Pending,
		createdAt:       now,
		updatedAt:       now,
		guard:           guard.NewConstructorGuard(),
	}

	o.events = append(o.events, CreatedEvent{
		OrderID:    id,
		CustomerID: customerID,
		MerchantID: merchantID,
		Total:      o.total,
		At:         now,
	})

	return o, nil
}

// RestoreOrder reconstructs an order from persistence. It re-checks the
// monetary and rider/status invariants so corrupted rows cannot re-enter the
// domain, and records no events.
func RestoreOrder(
	id kernel.UUID,
	number string,
	customerID kernel.UUID,
	merchantID kernel.UUID,
	riderID *kernel.UUID,
	lines []Line,
	subtotal kernel.Money,
	deliveryFee kernel.Money,
	platformFee kernel.Money,
	total kernel.Money,
	status Status,
	cancelReason *string,
	createdAt time.Time,
	updatedAt time.Time,
) (*Order, error) {
	if err := errors.Join(id.Validate(), customerID.Validate(), merchantID.Validate(), status.Validate()); err != nil {
		return nil, err
	}
	if number == "" {
		return nil, ErrOrderNumberIsRequired
	}
	if riderID != nil {
		if err := riderID.Validate(); err != nil {
			return nil, err
		}
	}
	if err := status.ValidateCanHaveRider(riderID != nil); err != nil {
		return nil, err
	}
	if total != subtotal.Add(deliveryFee).Add(platformFee) {
		return nil, ErrTotalsDoNotReconcile
	}

	return &Order{
		id:              id,
		number:          number,
		customerID:      customerID,
		merchantID:      merchantID,
		riderID:         riderID,
		lines:           lines,
		subtotal:        subtotal,
		deliveryFee:     deliveryFee,
		platformFee:     platformFee,
		total:           total,
		status:          status,
		persistedStatus: status,
		cancelReason:    cancelReason,
		createdAt:       createdAt,
		updatedAt:       updatedAt,
		guard:           guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the Order was created through a constructor.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// IsEqual compares two orders by identity.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// Number returns the human-readable order number assigned at creation.
func (o *Order) Number() string {
	return o.number
}

// CustomerID returns the ordering customer.
func (o *Order) CustomerID() kernel.UUID {
	return o.customerID
}

// MerchantID returns the fulfilling merchant.
func (o *Order) MerchantID() kernel.UUID {
	return o.merchantID
}

// RiderID returns the assigned rider, or nil before assignment.
func (o *Order) RiderID() *kernel.UUID {
	return o.riderID
}

// Lines returns the order's lines.
func (o *Order) Lines() []Line {
	return o.lines
}

// Subtotal returns the sum of line totals.
func (o *Order) Subtotal() kernel.Money {
	return o.subtotal
}

// DeliveryFee returns the delivery fee snapshotted at checkout.
func (o *Order) DeliveryFee() kernel.Money {
	return o.deliveryFee
}

// PlatformFee returns the marketplace fee snapshotted at checkout.
func (o *Order) PlatformFee() kernel.Money {
	return o.platformFee
}

// Total returns subtotal + deliveryFee + platformFee.
func (o *Order) Total() kernel.Money {
	return o.total
}

// Status returns the current lifecycle status.
func (o *Order) Status() Status {
	return o.status
}

// CancelReason returns the recorded cancellation reason, or nil.
func (o *Order) CancelReason() *string {
	return o.cancelReason
}

// CreatedAt returns the creation timestamp.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// UpdatedAt returns the last mutation timestamp.
func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// PersistedStatus returns the status the storage row is known to hold.
// It changes only through RestoreOrder and MarkPersisted.
func (o *Order) PersistedStatus() Status {
	return o.persistedStatus
}

// PendingEvents returns events recorded since the last persistence.
func (o *Order) PendingEvents() []Event {
	return o.events
}

// MarkPersisted acknowledges that the aggregate's current state and pending
// events have been durably stored. Repositories call it after a successful
// write; it must never be called on a failed one.
func (o *Order) MarkPersisted() {
	o.persistedStatus = o.status
	o.events = nil
}

// ChangeStatus applies a non-cancel lifecycle transition on behalf of actor.
// The edge must exist in the lifecycle table for the actor's role, and rider
// edges may only be driven by the assigned rider. On success the status
// advances and a StatusChangedEvent is recorded.
//
// Cancellation goes through Cancel, which also records the reason.
func (o *Order) ChangeStatus(target Status, actor Actor, now time.Time) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if err := actor.Validate(); err != nil {
		return err
	}
	if target == Cancelled {
		return NewIllegalTransitionError(o.status, target, actor.Role())
	}

	if err := o.status.CanTransition(target, actor.Role()); err != nil {
		return err
	}

	if err := o.requireAssignedRider(target, actor); err != nil {
		return err
	}

	from := o.status
	o.status = target
	o.updatedAt = now
	o.events = append(o.events, StatusChangedEvent{
		OrderID: o.id,
		From:    from,
		To:      target,
		Actor:   actor,
		At:      now,
	})

	return nil
}

// Cancel moves the order to Cancelled, records the reason and detaches any
// assigned rider (the availability flip and assignment release are separate
// compensations driven by the handler in the same unit of work). Emits a
// StatusChangedEvent followed by a CancelledEvent.
func (o *Order) Cancel(reason string, actor Actor, now time.Time) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if err := actor.Validate(); err != nil {
		return err
	}
	if reason == "" {
		return errs.NewValueIsRequiredError("cancel reason")
	}

	if err := o.status.CanTransition(Cancelled, actor.Role()); err != nil {
		return err
	}

	from := o.status
	o.status = Cancelled
	o.cancelReason = &reason
	o.riderID = nil
	o.updatedAt = now
	o.events = append(o.events,
		StatusChangedEvent{OrderID: o.id, From: from, To: Cancelled, Actor: actor, At: now},
		CancelledEvent{OrderID: o.id, Reason: reason, CancelledBy: actor, At: now},
	)

	return nil
}

// AssignRider binds a rider to the order without changing its status.
// The order must be ReadyForPickup with no rider attached; otherwise the
// caller lost the race or acted on stale state and gets ErrAssignmentConflict.
// Merchants, admins and the dispatcher may assign any rider; a rider may only
// claim for themselves. Emits an AssignedEvent.
func (o *Order) AssignRider(riderID kernel.UUID, actor Actor, now time.Time) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if err := riderID.Validate(); err != nil {
		return err
	}
	if err := actor.Validate(); err != nil {
		return err
	}

	switch actor.Role() {
	case RoleMerchant, RoleAdmin, RoleDispatcher:
	case RoleRider:
		if !actor.ID().IsEqual(riderID) {
			return fmt.Errorf("rider %s may only claim for themselves: %w", actor.ID(), ErrIllegalTransition)
		}
	default:
		return fmt.Errorf("%s may not assign riders: %w", actor.Role(), ErrIllegalTransition)
	}

	if o.status != ReadyForPickup {
		return fmt.Errorf("order %s is %s, not ready for pickup: %w", o.id, o.status, ErrAssignmentConflict)
	}
	if o.riderID != nil {
		return fmt.Errorf("order %s already has a rider: %w", o.id, ErrAssignmentConflict)
	}

	o.riderID = &riderID
	o.updatedAt = now
	o.events = append(o.events, AssignedEvent{
		OrderID:    o.id,
		RiderID:    riderID,
		AssignedAt: now,
	})

	return nil
}

// requireAssignedRider enforces that rider-driven edges are taken by the
// rider currently bound to the order.
func (o *Order) requireAssignedRider(target Status, actor Actor) error {
	if target != PickedUp && target != Delivering && target != Delivered {
		return nil
	}

	if o.riderID == nil || actor.Role() != RoleRider || !actor.ID().IsEqual(*o.riderID) {
		return NewIllegalTransitionError(o.status, target, actor.Role())
	}

	return nil
}
