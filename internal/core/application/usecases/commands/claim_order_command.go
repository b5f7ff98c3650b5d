package commands

import (
	"context"
	"errors"
	"time"

	"hatod/internal/core/domain/model/kernel"
	"hatod/internal/core/domain/model/order"
	"hatod/internal/pkg/guard"
)

var ErrClaimOrderCommandIsNotConstructed = errors.New(
	"ClaimOrderCommand must be created via NewClaimOrderCommand constructor",
)

// ClaimOrderCommand represents a rider's request to take ownership of an
// unassigned, ready order. Many riders can race to claim the same order;
// exactly one wins, the rest receive order.ErrAssignmentConflict.
//
// Example:
//
//	cmd, _ := NewClaimOrderCommand(orderID, riderID)
//	err := handler.Handle(ctx, cmd)
//	if errors.Is(err, order.ErrAssignmentConflict) {
//	    // order no longer available, refresh the list
//	}
type ClaimOrderCommand struct {
	orderID kernel.UUID
	riderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewClaimOrderCommand creates a command for a rider self-claim.
func NewClaimOrderCommand(orderID kernel.UUID, riderID kernel.UUID) (ClaimOrderCommand, error) {
	if err := errors.Join(orderID.Validate(), riderID.Validate()); err != nil {
		return ClaimOrderCommand{}, err
	}

	return ClaimOrderCommand{
		orderID: orderID,
		riderID: riderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ClaimOrderCommand) Validate() error {
	return c.guard.Validate(ErrClaimOrderCommandIsNotConstructed)
}

// OrderID returns the order being claimed.
func (c ClaimOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// RiderID returns the claiming rider.
func (c ClaimOrderCommand) RiderID() kernel.UUID {
	return c.riderID
}

// ClaimOrderCommandHandler handles rider self-claims.
// A claim is an assignment where the actor is the rider itself; it shares
// assignOrder's atomicity contract with explicit assignment, so a claim and
// an assignment racing for the same order still produce exactly one winner.
type ClaimOrderCommandHandler struct {
	uowFactory DispatchUoWFactory
}

// NewClaimOrderCommandHandler creates a handler for rider self-claims.
func NewClaimOrderCommandHandler(uowFactory DispatchUoWFactory) ClaimOrderCommandHandler {
	return ClaimOrderCommandHandler{uowFactory: uowFactory}
}

// Handle processes the claim.
func (h ClaimOrderCommandHandler) Handle(ctx context.Context, cmd ClaimOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	actor, err := order.NewActor(order.RoleRider, cmd.RiderID())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	candidate, err := uow.RiderRepository().Get(ctx, cmd.RiderID())
	if err != nil {
		return err
	}

	if err = assignOrder(ctx, uow, aggregate, candidate, actor, time.Now().UTC()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
