package commands

import (
	"context"
	"time"
)

// UpdateCartLineQuantityCommandHandler handles quantity changes on draft lines.
type UpdateCartLineQuantityCommandHandler struct {
	uowFactory CartUoWFactory
}

// NewUpdateCartLineQuantityCommandHandler creates a handler for quantity changes.
func NewUpdateCartLineQuantityCommandHandler(uowFactory CartUoWFactory) UpdateCartLineQuantityCommandHandler {
	return UpdateCartLineQuantityCommandHandler{uowFactory: uowFactory}
}

// Handle processes the quantity change.
// Returns errs.ErrObjectNotFound when the draft has no such line.
func (h UpdateCartLineQuantityCommandHandler) Handle(ctx context.Context, cmd UpdateCartLineQuantityCommand) error {
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

	if err = draft.UpdateQuantity(cmd.LineID(), cmd.Quantity(), time.Now().UTC()); err != nil {
		return err
	}

	if err = cartRepo.Save(ctx, draft); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
