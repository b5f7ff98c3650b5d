package commands

import (
	"errors"

	"hatod/internal/core/domain/model/kernel"
	"hatod/internal/core/domain/model/order"
	"hatod/internal/pkg/guard"
)

var ErrChangeOrderStatusCommandIsNotConstructed = errors.New(
	"ChangeOrderStatusCommand must be created via NewChangeOrderStatusCommand constructor",
)

// ChangeOrderStatusCommand represents a request to advance an order along its
// lifecycle. Cancellation has its own command; a CANCELLED target is rejected
// by the aggregate.
//
// Example:
//
//	actor, _ := order.NewActor(order.RoleMerchant, merchantID)
//	cmd, err := NewChangeOrderStatusCommand(orderID, order.Confirmed, actor)
//	if err != nil {
//	    return err
//	}
//	if err := handler.Handle(ctx, cmd); errors.Is(err, order.ErrIllegalTransition) {
//	    // stale client state: the order has moved on
//	}
type ChangeOrderStatusCommand struct {
	orderID kernel.UUID
	target  order.Status
	actor   order.Actor

	guard guard.ConstructorGuard
}

// NewChangeOrderStatusCommand creates a command to advance an order's status.
func NewChangeOrderStatusCommand(
	orderID kernel.UUID,
	target order.Status,
	actor order.Actor,
) (ChangeOrderStatusCommand, error) {
	if err := errors.Join(orderID.Validate(), target.Validate(), actor.Validate()); err != nil {
		return ChangeOrderStatusCommand{}, err
	}

	return ChangeOrderStatusCommand{
		orderID: orderID,
		target:  target,
		actor:   actor,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ChangeOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrChangeOrderStatusCommandIsNotConstructed)
}

// OrderID returns the order to advance.
func (c ChangeOrderStatusCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Target returns the requested next status.
func (c ChangeOrderStatusCommand) Target() order.Status {
	return c.target
}

// Actor returns who requests the transition.
func (c ChangeOrderStatusCommand) Actor() order.Actor {
	return c.actor
}
