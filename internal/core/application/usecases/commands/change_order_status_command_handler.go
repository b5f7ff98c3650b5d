package commands

import (
	"context"
	"time"

	"hatod/internal/core/domain/model/order"
)

// ChangeOrderStatusCommandHandler applies lifecycle transitions to orders.
//
// The status write is conditional on the status the order was loaded with,
// so no two transitions for the same order can commit concurrently: the
// loser of the race gets order.ErrIllegalTransition and nothing is written.
// Reaching DELIVERED additionally releases the rider and deactivates the
// assignment fact inside the same transaction.
type ChangeOrderStatusCommandHandler struct {
	uowFactory DispatchUoWFactory
}

// NewChangeOrderStatusCommandHandler creates a handler for lifecycle transitions.
func NewChangeOrderStatusCommandHandler(uowFactory DispatchUoWFactory) ChangeOrderStatusCommandHandler {
	return ChangeOrderStatusCommandHandler{uowFactory: uowFactory}
}

// Handle processes the transition command.
func (h ChangeOrderStatusCommandHandler) Handle(ctx context.Context, cmd ChangeOrderStatusCommand) error {
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

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	if err = aggregate.ChangeStatus(cmd.Target(), cmd.Actor(), now); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if cmd.Target() == order.Delivered {
		if err = releaseRider(ctx, uow, cmd.OrderID(), now); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}
