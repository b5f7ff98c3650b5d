package commands

import (
	"context"
	"time"
)

// CancelOrderCommandHandler cancels orders.
//
// Cancellation is an ordinary conditional status write; compensating actions
// for downstream systems (refunds, notifications) react to the emitted
// order.cancelled event, they are not performed here. What is performed here
// is rider release: a cancelled order that had a rider frees it and releases
// the assignment fact in the same transaction.
type CancelOrderCommandHandler struct {
	uowFactory DispatchUoWFactory
}

// NewCancelOrderCommandHandler creates a handler for order cancellation.
func NewCancelOrderCommandHandler(uowFactory DispatchUoWFactory) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{uowFactory: uowFactory}
}

// Handle processes the cancellation command.
// Fails with order.ErrIllegalTransition when the order is already terminal
// or the actor may not cancel from the current status.
func (h CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) error {
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

	hadRider := aggregate.RiderID() != nil

	now := time.Now().UTC()
	if err = aggregate.Cancel(cmd.Reason(), cmd.Actor(), now); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if hadRider {
		if err = releaseRider(ctx, uow, cmd.OrderID(), now); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}
