package commands

import (
	"context"
	"errors"
	"time"

	"hatod/internal/core/domain/model/kernel"
	"hatod/internal/pkg/guard"
)

var ErrRemoveCartLineCommandIsNotConstructed = errors.New(
	"RemoveCartLineCommand must be created via NewRemoveCartLineCommand constructor",
)

// RemoveCartLineCommand represents a request to delete a line from a draft.
type RemoveCartLineCommand struct {
	customerID kernel.UUID
	lineID     kernel.UUID

	guard guard.ConstructorGuard
}

// NewRemoveCartLineCommand creates a command to delete a draft line.
func NewRemoveCartLineCommand(customerID kernel.UUID, lineID kernel.UUID) (RemoveCartLineCommand, error) {
	if err := errors.Join(customerID.Validate(), lineID.Validate()); err != nil {
		return RemoveCartLineCommand{}, err
	}

	return RemoveCartLineCommand{
		customerID: customerID,
		lineID:     lineID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c RemoveCartLineCommand) Validate() error {
	return c.guard.Validate(ErrRemoveCartLineCommandIsNotConstructed)
}

// CustomerID returns the cart owner's identifier.
func (c RemoveCartLineCommand) CustomerID() kernel.UUID {
	return c.customerID
}

// LineID returns the draft line to remove.
func (c RemoveCartLineCommand) LineID() kernel.UUID {
	return c.lineID
}

// RemoveCartLineCommandHandler handles draft line removal.
type RemoveCartLineCommandHandler struct {
	uowFactory CartUoWFactory
}

// NewRemoveCartLineCommandHandler creates a handler for draft line removal.
func NewRemoveCartLineCommandHandler(uowFactory CartUoWFactory) RemoveCartLineCommandHandler {
	return RemoveCartLineCommandHandler{uowFactory: uowFactory}
}

// Handle processes the removal.
// Returns errs.ErrObjectNotFound when the draft has no such line.
func (h RemoveCartLineCommandHandler) Handle(ctx context.Context, cmd RemoveCartLineCommand) error {
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

	cartRepo := uow.CartRepository()
	draft, err := cartRepo.Get(ctx, cmd.CustomerID())
	if err != nil {
		return err
	}

	if err = draft.RemoveLine(cmd.LineID(), time.Now().UTC()); err != nil {
		return err
	}

	if err = cartRepo.Save(ctx, draft); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
