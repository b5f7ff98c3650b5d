package commands

import (
	"context"
	"errors"
	"time"

	"hatod/internal/core/domain/model/kernel"
	"hatod/internal/core/domain/model/order"
	"hatod/internal/core/domain/model/rider"
	"hatod/internal/pkg/errs"
)

// assignOrder binds a rider to an order inside the caller's transaction.
// It is the single code path behind explicit assignment, rider self-claim,
// and automatic dispatch.
//
// Three conditional writes make concurrent claims safe: the order row is
// written only while still READY_FOR_PICKUP with no rider, the rider's
// availability only while it still matches what this transaction observed,
// and the assignment fact is inserted alongside them. All three commit or
// none do, so a lost race leaves no partial state; the loser gets
// order.ErrAssignmentConflict.
func assignOrder(
	ctx context.Context,
	uow DispatchUoW,
	aggregate *order.Order,
	candidate *rider.Rider,
	actor order.Actor,
	now time.Time,
) error {
	observed := candidate.Availability()

	if err := aggregate.AssignRider(candidate.ID(), actor, now); err != nil {
		return err
	}
	if err := candidate.MarkBusy(now); err != nil {
		if errors.Is(err, rider.ErrRiderIsNotAvailable) {
			return order.ErrAssignmentConflict
		}
		return err
	}

	if err := uow.OrderRepository().AssignRider(ctx, aggregate); err != nil {
		return err
	}
	if err := uow.RiderRepository().UpdateAvailability(ctx, candidate, observed); err != nil {
		return err
	}

	assignment, err := rider.NewAssignment(kernel.NewUUID(), aggregate.ID(), candidate.ID(), now)
	if err != nil {
		return err
	}

	return uow.AssignmentRepository().Add(ctx, assignment)
}

// releaseRider frees the rider bound to an order: the active assignment fact
// is released (kept, not deleted) and the rider flips back to AVAILABLE with
// a conditional write on its observed availability. Orders that never had a
// rider release nothing.
func releaseRider(ctx context.Context, uow DispatchUoW, orderID kernel.UUID, now time.Time) error {
	assignmentRepo := uow.AssignmentRepository()

	assignment, err := assignmentRepo.GetActiveByOrder(ctx, orderID)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	if err = assignment.Release(now); err != nil {
		return err
	}
	if err = assignmentRepo.Update(ctx, assignment); err != nil {
		return err
	}

	riderRepo := uow.RiderRepository()
	assigned, err := riderRepo.Get(ctx, assignment.RiderID())
	if err != nil {
		return err
	}

	observed := assigned.Availability()
	if err = assigned.Release(); err != nil {
		return err
	}

	return riderRepo.UpdateAvailability(ctx, assigned, observed)
}
