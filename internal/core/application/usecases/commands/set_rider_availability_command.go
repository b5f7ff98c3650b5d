package commands

import (
	"context"
	"errors"

	"hatod/internal/core/domain/model/kernel"
	"hatod/internal/core/domain/model/rider"
	"hatod/internal/pkg/errs"
	"hatod/internal/pkg/guard"
)

var ErrSetRiderAvailabilityCommandIsNotConstructed = errors.New(
	"SetRiderAvailabilityCommand must be created via NewSetRiderAvailabilityCommand constructor",
)

// SetRiderAvailabilityCommand represents a rider's own shift toggle.
// Only AVAILABLE and OFFLINE can be requested; BUSY is owned by dispatch
// and never set directly.
type SetRiderAvailabilityCommand struct {
	riderID kernel.UUID
	target  rider.Availability

	guard guard.ConstructorGuard
}

// NewSetRiderAvailabilityCommand creates a command to toggle a rider's shift.
func NewSetRiderAvailabilityCommand(
	riderID kernel.UUID,
	target rider.Availability,
) (SetRiderAvailabilityCommand, error) {
	if err := riderID.Validate(); err != nil {
		return SetRiderAvailabilityCommand{}, err
	}
	if target != rider.AvailabilityAvailable && target != rider.AvailabilityOffline {
		return SetRiderAvailabilityCommand{}, errs.NewValueIsInvalidError("availability")
	}

	return SetRiderAvailabilityCommand{
		riderID: riderID,
		target:  target,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c SetRiderAvailabilityCommand) Validate() error {
	return c.guard.Validate(ErrSetRiderAvailabilityCommandIsNotConstructed)
}

// RiderID returns the rider toggling its shift.
func (c SetRiderAvailabilityCommand) RiderID() kernel.UUID {
	return c.riderID
}

// Target returns the requested availability.
func (c SetRiderAvailabilityCommand) Target() rider.Availability {
	return c.target
}

// SetRiderAvailabilityCommandHandler handles shift toggles.
// The availability write is conditional on the availability the rider was
// loaded with, so a toggle racing a dispatch cannot silently free a rider
// that just went BUSY.
type SetRiderAvailabilityCommandHandler struct {
	uowFactory RiderUoWFactory
}

// NewSetRiderAvailabilityCommandHandler creates a handler for shift toggles.
func NewSetRiderAvailabilityCommandHandler(uowFactory RiderUoWFactory) SetRiderAvailabilityCommandHandler {
	return SetRiderAvailabilityCommandHandler{uowFactory: uowFactory}
}

// Handle processes the toggle.
// Fails with rider.ErrRiderIsBusy when a rider with an active order tries
// to change its shift state; a BUSY rider is freed only when its order
// finishes.
func (h SetRiderAvailabilityCommandHandler) Handle(ctx context.Context, cmd SetRiderAvailabilityCommand) error {
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

	riderRepo := uow.RiderRepository()
	aggregate, err := riderRepo.Get(ctx, cmd.RiderID())
	if err != nil {
		return err
	}

	observed := aggregate.Availability()

	switch cmd.Target() {
	case rider.AvailabilityAvailable:
		err = aggregate.MarkAvailable()
	case rider.AvailabilityOffline:
		err = aggregate.MarkOffline()
	default:
		err = errs.NewValueIsInvalidError("availability")
	}
	if err != nil {
		return err
	}

	if err = riderRepo.UpdateAvailability(ctx, aggregate, observed); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
