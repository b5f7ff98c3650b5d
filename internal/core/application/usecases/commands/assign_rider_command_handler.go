package commands

import (
	"context"
	"time"
)

// AssignRiderCommandHandler handles explicit rider assignment.
// The actual binding is shared with self-claim and automatic dispatch; see
// assignOrder for the conditional-write contract that makes concurrent
// attempts on the same order resolve to exactly one winner.
type AssignRiderCommandHandler struct {
	uowFactory DispatchUoWFactory
}

// NewAssignRiderCommandHandler creates a handler for explicit assignment.
func NewAssignRiderCommandHandler(uowFactory DispatchUoWFactory) AssignRiderCommandHandler {
	return AssignRiderCommandHandler{uowFactory: uowFactory}
}

// Handle processes the assignment command.
// Fails with order.ErrAssignmentConflict when the order already has a rider,
// has left READY_FOR_PICKUP, or the rider is no longer AVAILABLE.
func (h AssignRiderCommandHandler) Handle(ctx context.Context, cmd AssignRiderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
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

	if err = assignOrder(ctx, uow, aggregate, candidate, cmd.Actor(), time.Now().UTC()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
