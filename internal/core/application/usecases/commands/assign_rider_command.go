package commands

import (
	"errors"

	"hatod/internal/core/domain/model/kernel"
	"hatod/internal/core/domain/model/order"
	"hatod/internal/pkg/guard"
)

var ErrAssignRiderCommandIsNotConstructed = errors.New(
	"AssignRiderCommand must be created via NewAssignRiderCommand constructor",
)

// AssignRiderCommand represents an explicit request to bind a specific rider
// to a ready order, issued by the merchant or an admin from the candidate
// list. Riders taking an order themselves use ClaimOrderCommand instead.
type AssignRiderCommand struct {
	orderID kernel.UUID
	riderID kernel.UUID
	actor   order.Actor

	guard guard.ConstructorGuard
}

// NewAssignRiderCommand creates a command to assign a rider to an order.
func NewAssignRiderCommand(
	orderID kernel.UUID,
	riderID kernel.UUID,
	actor order.Actor,
) (AssignRiderCommand, error) {
	if err := errors.Join(orderID.Validate(), riderID.Validate(), actor.Validate()); err != nil {
		return AssignRiderCommand{}, err
	}

	return AssignRiderCommand{
		orderID: orderID,
		riderID: riderID,
		actor:   actor,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c AssignRiderCommand) Validate() error {
	return c.guard.Validate(ErrAssignRiderCommandIsNotConstructed)
}

// OrderID returns the order to assign.
func (c AssignRiderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// RiderID returns the rider to bind.
func (c AssignRiderCommand) RiderID() kernel.UUID {
	return c.riderID
}

// Actor returns who requests the assignment.
func (c AssignRiderCommand) Actor() order.Actor {
	return c.actor
}
